package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of a signed session token.
type SessionClaims struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	IsLeader bool   `json:"isLeader"`
	jwt.RegisteredClaims
}

// Session is the authenticated state handed back by login. The zero value is
// an unauthenticated session with no current user.
type Session struct {
	CurrentUser     *User     `json:"currentUser"`
	IsAuthenticated bool      `json:"isAuthenticated"`
	Token           string    `json:"token,omitempty"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// Active reports whether the session is authenticated and not yet expired.
func (s Session) Active(now time.Time) bool {
	return s.IsAuthenticated && s.CurrentUser != nil && now.Before(s.ExpiresAt)
}
