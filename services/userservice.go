package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"teamhub/docstore"
	"teamhub/model"
	"teamhub/syncer"
)

const (
	defaultRole           = "Team Member"
	defaultSpecialization = "General"

	// bcrypt only reads the first 72 bytes and refuses longer input.
	maxPasswordBytes = 72
)

func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Login resolves identifier by name (ignoring case and whitespace) or by
// slug and checks the password. On failure the returned session is the
// unauthenticated zero value.
func (s *Service) Login(identifier, password string) (model.Session, bool) {
	user, ok := s.dir.Snapshot().FindUser(identifier)
	if !ok || password == "" {
		return model.Session{}, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.Session{}, false
	}
	session := model.Session{CurrentUser: &user, IsAuthenticated: true}
	if s.sessions != nil {
		token, expiresAt, err := s.sessions.Issue(user)
		if err != nil {
			log.Printf("login %s: %v", user.ID, err)
			return model.Session{}, false
		}
		session.Token = token
		session.ExpiresAt = expiresAt
	}
	return session, true
}

// Register creates a non-leader account. It returns false when the name or
// its slug is taken, or when the password is empty or too long. Two
// concurrent registrations of the same slug are settled by the store: the
// first create wins.
func (s *Service) Register(ctx context.Context, name, password string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" || len(password) > maxPasswordBytes {
		return false, nil
	}
	id := model.Slug(name)
	state := s.dir.Snapshot()
	for _, u := range state.Users {
		if model.NormalizeName(u.Name) == model.NormalizeName(name) || u.ID == id {
			return false, nil
		}
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	user := model.User{
		ID:             id,
		Name:           name,
		Role:           defaultRole,
		Specialization: defaultSpecialization,
		IsLeader:       false,
		PasswordHash:   hash,
		CreatedAt:      s.Now(),
	}
	if err := s.remote.Create(ctx, docstore.CollectionUsers, id, syncer.EncodeUser(user)); err != nil {
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("register %s: %w", id, err)
	}
	return true, nil
}

// RequestPasswordReset queues a proposed password for leader approval. It
// returns false for an unknown user or when one request is already pending.
func (s *Service) RequestPasswordReset(ctx context.Context, identifier, newPassword string) (bool, error) {
	if newPassword == "" || len(newPassword) > maxPasswordBytes {
		return false, nil
	}
	state := s.dir.Snapshot()
	user, ok := state.FindUser(identifier)
	if !ok {
		return false, nil
	}
	if _, pending := state.PendingResetFor(user.ID); pending {
		return false, nil
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return false, err
	}
	req := model.PasswordResetRequest{
		ID:              s.NewID(),
		UserID:          user.ID,
		UserName:        user.Name,
		RequestedAt:     s.Now(),
		Status:          model.ResetPending,
		NewPasswordHash: hash,
	}
	if err := s.remote.Set(ctx, docstore.CollectionPasswordResets, req.ID, syncer.EncodePasswordReset(req)); err != nil {
		return false, fmt.Errorf("request password reset: %w", err)
	}
	return true, nil
}

// ApprovePasswordReset replaces the user's password with the requested one.
// Non-leaders, unknown ids and already triaged requests are ignored.
func (s *Service) ApprovePasswordReset(ctx context.Context, principal model.User, requestID string) error {
	req, ok := s.pendingReset(principal, requestID)
	if !ok {
		return nil
	}
	if req.NewPasswordHash != "" {
		err := s.remote.Update(ctx, docstore.CollectionUsers, req.UserID, map[string]interface{}{
			"passwordHash": req.NewPasswordHash,
		})
		if err != nil && !errors.Is(err, docstore.ErrNotFound) {
			return fmt.Errorf("approve reset %s: %w", requestID, err)
		}
	}
	return s.resolveReset(ctx, principal, req, model.ResetApproved)
}

func (s *Service) RejectPasswordReset(ctx context.Context, principal model.User, requestID string) error {
	req, ok := s.pendingReset(principal, requestID)
	if !ok {
		return nil
	}
	return s.resolveReset(ctx, principal, req, model.ResetRejected)
}

func (s *Service) pendingReset(principal model.User, requestID string) (model.PasswordResetRequest, bool) {
	if !CanDelete(principal) {
		log.Printf("password reset %s: %s is not a leader, ignoring", requestID, principal.ID)
		return model.PasswordResetRequest{}, false
	}
	req, ok := s.dir.Snapshot().FindPasswordReset(requestID)
	if !ok || req.Status != model.ResetPending {
		return model.PasswordResetRequest{}, false
	}
	return req, true
}

func (s *Service) resolveReset(ctx context.Context, principal model.User, req model.PasswordResetRequest, status model.ResetStatus) error {
	err := s.remote.Update(ctx, docstore.CollectionPasswordResets, req.ID, map[string]interface{}{
		"status":     string(status),
		"resolvedAt": s.Now(),
		"resolvedBy": principal.ID,
	})
	if err != nil && !errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("resolve reset %s: %w", req.ID, err)
	}
	return nil
}

// Principal looks up the current record of a user, so leadership edits made
// directly in the store apply to already issued sessions.
func (s *Service) Principal(userID string) (model.User, bool) {
	return s.dir.Snapshot().UserByID(userID)
}
