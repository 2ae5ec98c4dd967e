package services

import (
	"context"
	"testing"
)

func TestAnnouncementsAreLeaderOnly(t *testing.T) {
	h := newHarness(t)
	lead := h.addUser(t, "Pranava Kumar", "Pranava123", true)
	arun := h.addUser(t, "Arun Kumar", "Arun123", false)

	id, err := h.svc.AddAnnouncement(context.Background(), arun, "Flight test", "Saturday 7am")
	if err != nil || id != "" {
		t.Fatalf("AddAnnouncement(member) = %q, %v", id, err)
	}
	if h.remote.count() != 0 {
		t.Fatal("member announcement reached the store")
	}

	id, err = h.svc.AddAnnouncement(context.Background(), lead, "  Flight test ", "Saturday 7am")
	if err != nil {
		t.Fatalf("AddAnnouncement() error = %v", err)
	}
	items := h.dir.Snapshot().Announcements
	if len(items) != 1 || items[0].ID != id || items[0].Title != "Flight test" || items[0].AuthorID != lead.ID {
		t.Fatalf("unexpected announcements: %+v", items)
	}

	if err := h.svc.DeleteAnnouncement(context.Background(), arun, id); err != nil {
		t.Fatalf("DeleteAnnouncement(member) error = %v", err)
	}
	if len(h.dir.Snapshot().Announcements) != 1 {
		t.Fatal("member deleted an announcement")
	}
	if err := h.svc.DeleteAnnouncement(context.Background(), lead, id); err != nil {
		t.Fatalf("DeleteAnnouncement() error = %v", err)
	}
	if len(h.dir.Snapshot().Announcements) != 0 {
		t.Fatal("announcement still listed after delete")
	}
	if err := h.svc.DeleteAnnouncement(context.Background(), lead, "missing"); err != nil {
		t.Fatalf("DeleteAnnouncement(missing) error = %v", err)
	}
}
