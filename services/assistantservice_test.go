package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"teamhub/model"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestExplainTaskByID(t *testing.T) {
	h := newHarness(t)
	sub := leafTask("s1", "arun-kumar")
	sub.Title = "Detailed CAD Modeling"
	h.addTask(t, containerTask("phase-2", "arun-kumar", sub))
	gen := &fakeGenerator{reply: "Start with the frame."}
	ai := NewAssistant(h.svc, gen)

	text, ok := ai.ExplainTaskByID(context.Background(), "s1")
	if !ok || text != "Start with the frame." {
		t.Fatalf("ExplainTaskByID() = %q, %v", text, ok)
	}
	if !strings.Contains(gen.prompts[0], "Task: Detailed CAD Modeling") {
		t.Fatalf("prompt misses task title:\n%s", gen.prompts[0])
	}
	if _, ok := ai.ExplainTaskByID(context.Background(), "missing"); ok {
		t.Fatal("explained an unknown task")
	}
}

func TestAssistantFallbacks(t *testing.T) {
	h := newHarness(t)
	ai := NewAssistant(h.svc, &fakeGenerator{err: errors.New("quota")})

	if got := ai.ExplainTask(context.Background(), "t", "d"); got != fallbackExplanation {
		t.Fatalf("ExplainTask() = %q", got)
	}
	if got := ai.ProjectInsights(context.Background()); got != fallbackInsights {
		t.Fatalf("ProjectInsights() = %q", got)
	}
	reply, err := ai.ChatReply(context.Background(), "hi", "", false)
	if err != nil || reply != fallbackChatReply {
		t.Fatalf("ChatReply() = %q, %v", reply, err)
	}

	noGen := NewAssistant(h.svc, nil)
	if got := noGen.ExplainTask(context.Background(), "t", "d"); got != fallbackExplanation {
		t.Fatalf("ExplainTask() without generator = %q", got)
	}
}

func TestChatReplyPostsAssistantMessage(t *testing.T) {
	h := newHarness(t)
	gen := &fakeGenerator{reply: "Check the ESC calibration."}
	ai := NewAssistant(h.svc, gen)

	reply, err := ai.ChatReply(context.Background(), "motor jitter?", "Phase 3 prototype", true)
	if err != nil {
		t.Fatalf("ChatReply() error = %v", err)
	}
	if !strings.Contains(gen.prompts[0], "Context: Phase 3 prototype") {
		t.Fatalf("prompt misses context:\n%s", gen.prompts[0])
	}
	msgs := h.dir.Snapshot().ChatMessages
	if len(msgs) != 1 {
		t.Fatalf("messages = %+v", msgs)
	}
	want := model.ChatMessage{ID: msgs[0].ID, UserID: "ai-assistant", UserName: "AI Assistant", Message: reply, Timestamp: msgs[0].Timestamp, IsAI: true}
	if msgs[0] != want {
		t.Fatalf("message = %+v", msgs[0])
	}

	if _, err := ai.ChatReply(context.Background(), "", "", true); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}
