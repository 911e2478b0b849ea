package domain

import (
	"time"

	"github.com/google/uuid"
)

// BlacklistedToken is a bearer token that was explicitly invalidated by a
// sign-out before its natural expiry. Entries are written, never deleted
// here; removal of expired rows is left to an external cleanup job.
type BlacklistedToken struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
