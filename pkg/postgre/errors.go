package postgres

import "errors"

// ErrInvalidUUID wraps every id validation failure from this package.
var ErrInvalidUUID = errors.New("invalid UUID format")
