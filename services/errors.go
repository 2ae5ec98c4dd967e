package services

import "errors"

var (
	ErrTaskTooDeep     = errors.New("subtasks cannot have subtasks")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrPasswordTooLong = errors.New("password is longer than 72 bytes")
	ErrInvalidToken    = errors.New("session token is invalid or expired")
)

// IsValidation reports whether err was caused by bad input rather than by
// the remote stores.
func IsValidation(err error) bool {
	for _, target := range []error{ErrTaskTooDeep, ErrInvalidStatus, ErrInvalidPriority, ErrInvalidProgress, ErrEmptyMessage, ErrPasswordTooLong} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
