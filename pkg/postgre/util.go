package postgres

import (
	"fmt"

	"github.com/google/uuid"
)

// IsUUID reports via error whether u parses as a UUID. Row ids and chat
// correlation ids are validated with this before they reach a query, so
// a malformed id never turns into a database round trip.
func IsUUID(u string) error {
	if u == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidUUID)
	}
	if _, err := uuid.Parse(u); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUUID, err)
	}
	return nil
}

// NewUUID returns a fresh random UUID in string form.
func NewUUID() string {
	return uuid.NewString()
}
