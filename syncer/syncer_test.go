package syncer

import (
	"context"
	"testing"
	"time"

	"teamhub/docstore"
	"teamhub/model"
	"teamhub/store"
)

func TestSyncerReplacesCollections(t *testing.T) {
	remote := docstore.NewMemoryStore()
	dir := store.NewDirectory()
	ctx := context.Background()
	at := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	_ = remote.Set(ctx, docstore.CollectionUsers, "arun-kumar", EncodeUser(model.User{Name: "Arun Kumar", CreatedAt: at}))

	s := New(remote, dir)
	s.Start(ctx)
	defer s.Stop()

	if users := dir.Snapshot().Users; len(users) != 1 || users[0].ID != "arun-kumar" {
		t.Fatalf("initial users = %+v", users)
	}

	_ = remote.Set(ctx, docstore.CollectionAnnouncements, "a1", EncodeAnnouncement(model.Announcement{Title: "old", Timestamp: at}))
	_ = remote.Set(ctx, docstore.CollectionAnnouncements, "a2", EncodeAnnouncement(model.Announcement{Title: "new", Timestamp: at.Add(time.Hour)}))
	anns := dir.Snapshot().Announcements
	if len(anns) != 2 || anns[0].Title != "new" {
		t.Fatalf("announcements not newest first: %+v", anns)
	}

	for _, c := range store.Collections {
		if dir.Snapshot().Version[c] == 0 {
			t.Fatalf("collection %s never replaced", c)
		}
	}
}

func TestSyncerSkipsMalformedRecords(t *testing.T) {
	remote := docstore.NewMemoryStore()
	dir := store.NewDirectory()
	ctx := context.Background()
	at := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	s := New(remote, dir)
	s.Start(ctx)
	defer s.Stop()

	_ = remote.Set(ctx, docstore.CollectionChatMessages, "good", EncodeChatMessage(model.ChatMessage{Message: "hi", Timestamp: at}))
	_ = remote.Set(ctx, docstore.CollectionChatMessages, "bad", map[string]interface{}{"timestamp": "not a time"})

	msgs := dir.Snapshot().ChatMessages
	if len(msgs) != 1 || msgs[0].ID != "good" {
		t.Fatalf("messages = %+v", msgs)
	}
	select {
	case err := <-s.Errors():
		if err == nil {
			t.Fatal("nil error reported")
		}
	case <-time.After(time.Second):
		t.Fatal("decode failure not reported")
	}
}

func TestSyncerStopEndsUpdates(t *testing.T) {
	remote := docstore.NewMemoryStore()
	dir := store.NewDirectory()
	ctx := context.Background()

	s := New(remote, dir)
	s.Start(ctx)
	s.Stop()

	_ = remote.Set(ctx, docstore.CollectionDocuments, "d1", EncodeDocument(model.Document{UploadedAt: time.Now()}))
	if docs := dir.Snapshot().Documents; len(docs) != 0 {
		t.Fatalf("directory updated after Stop: %+v", docs)
	}
}

func TestSyncerRecoversFromPanics(t *testing.T) {
	dir := store.NewDirectory()
	s := New(docstore.NewMemoryStore(), dir)
	b := binding{
		query: docstore.Query{Collection: "boom"},
		apply: func([]docstore.Record) []error { panic("bad snapshot") },
	}
	s.handle(b, nil, nil)
	select {
	case err := <-s.Errors():
		if err == nil {
			t.Fatal("nil error reported")
		}
	default:
		t.Fatal("panic not reported")
	}
}
