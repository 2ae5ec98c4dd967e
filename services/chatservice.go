package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"teamhub/docstore"
	"teamhub/model"
	"teamhub/syncer"
)

const (
	assistantUserID   = "ai-assistant"
	assistantUserName = "AI Assistant"
)

// AddChatMessage appends a message from principal to the team chat.
func (s *Service) AddChatMessage(ctx context.Context, principal model.User, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	return s.postChat(ctx, model.ChatMessage{
		UserID:   principal.ID,
		UserName: principal.Name,
		Message:  message,
	})
}

func (s *Service) addAssistantMessage(ctx context.Context, message string) (string, error) {
	return s.postChat(ctx, model.ChatMessage{
		UserID:   assistantUserID,
		UserName: assistantUserName,
		Message:  message,
		IsAI:     true,
	})
}

func (s *Service) postChat(ctx context.Context, m model.ChatMessage) (string, error) {
	m.ID = s.NewID()
	m.Timestamp = s.Now()
	if err := s.remote.Set(ctx, docstore.CollectionChatMessages, m.ID, syncer.EncodeChatMessage(m)); err != nil {
		return "", fmt.Errorf("add chat message: %w", err)
	}
	return m.ID, nil
}

// ClearChat removes every chat message in one transaction, so either all of
// them go or none do.
func (s *Service) ClearChat(ctx context.Context, principal model.User) error {
	if !CanDelete(principal) {
		log.Printf("clear chat: %s is not a leader, ignoring", principal.ID)
		return nil
	}
	if err := s.remote.DeleteAll(ctx, docstore.CollectionChatMessages); err != nil {
		return fmt.Errorf("clear chat: %w", err)
	}
	return nil
}
