package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"teamhub/docstore"
	"teamhub/model"
	"teamhub/syncer"
)

// AddAnnouncement posts an announcement authored by principal.
func (s *Service) AddAnnouncement(ctx context.Context, principal model.User, title, content string) (string, error) {
	if !CanDelete(principal) {
		log.Printf("add announcement: %s is not a leader, ignoring", principal.ID)
		return "", nil
	}
	a := model.Announcement{
		ID:         s.NewID(),
		Title:      strings.TrimSpace(title),
		Content:    content,
		AuthorID:   principal.ID,
		AuthorName: principal.Name,
		Timestamp:  s.Now(),
	}
	if err := s.remote.Set(ctx, docstore.CollectionAnnouncements, a.ID, syncer.EncodeAnnouncement(a)); err != nil {
		return "", fmt.Errorf("add announcement: %w", err)
	}
	return a.ID, nil
}

func (s *Service) DeleteAnnouncement(ctx context.Context, principal model.User, id string) error {
	if !CanDelete(principal) {
		log.Printf("delete announcement %s: %s is not a leader, ignoring", id, principal.ID)
		return nil
	}
	if err := s.remote.Delete(ctx, docstore.CollectionAnnouncements, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete announcement %s: %w", id, err)
	}
	return nil
}
