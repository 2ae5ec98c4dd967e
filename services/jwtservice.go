package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"teamhub/model"
)

const tokenIssuer = "teamhub"

// SessionManager signs session tokens with an absolute expiry and restores
// them only while that expiry lies in the future.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	Now    func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl, Now: time.Now}
}

// Issue creates a signed token for u and returns it with its expiry.
func (m *SessionManager) Issue(u model.User) (string, time.Time, error) {
	now := m.Now()
	expiresAt := now.Add(m.ttl)
	claims := &model.SessionClaims{
		UserID:   u.ID,
		Name:     u.Name,
		IsLeader: u.IsLeader,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, expiresAt, nil
}

// Restore validates a token. Expired, foreign or tampered tokens all yield
// ErrInvalidToken.
func (m *SessionManager) Restore(tokenString string) (*model.SessionClaims, error) {
	claims := &model.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.Now), jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
