package model

import (
	"strings"
	"time"
)

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Specialization string    `json:"specialization"`
	IsLeader       bool      `json:"isLeader"`
	PasswordHash   string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Slug derives a user id from a display name: "Pranava Kumar" -> "pranava-kumar".
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// NormalizeName drops case and all whitespace so "Arun  kumar" matches "ArunKumar".
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "")
}

// Matches reports whether identifier names this user, either by normalized
// name or by slug.
func (u User) Matches(identifier string) bool {
	if identifier == "" {
		return false
	}
	return NormalizeName(u.Name) == NormalizeName(identifier) || u.ID == Slug(identifier)
}
