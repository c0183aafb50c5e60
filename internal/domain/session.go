package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound indicates that the session is unknown or no longer valid.
var ErrSessionNotFound = errors.New("session not found")

// Session is the authenticated handle held by a caller between a
// successful login and logout or account deletion.
type Session struct {
	ID            uuid.UUID
	AccountNumber string
	CreatedAt     time.Time
}
