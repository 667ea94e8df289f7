package scorer

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7: 48 bits of Unix milliseconds followed
// by 74 random bits from crypto/rand. Safe for concurrent use.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
