package model

import "time"

type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	FileName    string    `json:"fileName"`
	FileSize    string    `json:"fileSize"`
	UploadedBy  string    `json:"uploadedBy"`
	UploadedAt  time.Time `json:"uploadedAt"`
	FileURL     string    `json:"fileUrl,omitempty"`
	FileType    string    `json:"fileType"`
}

type ResetStatus string

const (
	ResetPending  ResetStatus = "pending"
	ResetApproved ResetStatus = "approved"
	ResetRejected ResetStatus = "rejected"
)

// PasswordResetRequest holds a proposed password awaiting leader triage.
// Only the bcrypt hash of the proposed password is kept.
type PasswordResetRequest struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	UserName        string      `json:"userName"`
	RequestedAt     time.Time   `json:"requestedAt"`
	Status          ResetStatus `json:"status"`
	NewPasswordHash string      `json:"-"`
	ResolvedAt      *time.Time  `json:"resolvedAt,omitempty"`
	ResolvedBy      string      `json:"resolvedBy,omitempty"`
}
