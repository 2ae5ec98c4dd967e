package services

import (
	"context"
	"errors"
	"testing"
)

func TestAddChatMessage(t *testing.T) {
	h := newHarness(t)
	arun := h.addUser(t, "Arun Kumar", "Arun123", false)

	if _, err := h.svc.AddChatMessage(context.Background(), arun, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	for _, msg := range []string{"first", "second"} {
		if _, err := h.svc.AddChatMessage(context.Background(), arun, msg); err != nil {
			t.Fatalf("AddChatMessage() error = %v", err)
		}
	}
	msgs := h.dir.Snapshot().ChatMessages
	if len(msgs) != 2 || msgs[0].Message != "first" || msgs[1].Message != "second" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
	if msgs[0].UserID != arun.ID || msgs[0].UserName != arun.Name || msgs[0].IsAI {
		t.Fatalf("unexpected author: %+v", msgs[0])
	}
}

func TestClearChat(t *testing.T) {
	h := newHarness(t)
	lead := h.addUser(t, "Pranava Kumar", "Pranava123", true)
	arun := h.addUser(t, "Arun Kumar", "Arun123", false)
	for i := 0; i < 3; i++ {
		if _, err := h.svc.AddChatMessage(context.Background(), arun, "hello"); err != nil {
			t.Fatalf("AddChatMessage() error = %v", err)
		}
	}

	if err := h.svc.ClearChat(context.Background(), arun); err != nil {
		t.Fatalf("ClearChat(member) error = %v", err)
	}
	if n := len(h.dir.Snapshot().ChatMessages); n != 3 {
		t.Fatalf("member cleared chat, %d left", n)
	}

	events, cancel := h.dir.Subscribe("chatMessages")
	defer cancel()
	<-events

	before := h.remote.count()
	if err := h.svc.ClearChat(context.Background(), lead); err != nil {
		t.Fatalf("ClearChat() error = %v", err)
	}
	if h.remote.count() != before+1 {
		t.Fatalf("clear took %d writes, want one", h.remote.count()-before)
	}
	// one replacement, straight from three messages to none
	ev := <-events
	if len(ev.Snapshot.ChatMessages) != 0 {
		t.Fatalf("intermediate snapshot observed: %d messages", len(ev.Snapshot.ChatMessages))
	}
	if h.mem.Len("chatMessages") != 0 {
		t.Fatal("messages left in store")
	}
}
