package hub

import "errors"

var (
	// ErrInvalidToken is returned when the JWT token is invalid
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrMissingToken is returned when the JWT token is missing
	ErrMissingToken = errors.New("missing token")

	// ErrNotRunning is returned when an emit is attempted before Run or
	// after Shutdown
	ErrNotRunning = errors.New("hub is not running")

	// ErrInvalidConnection is returned when Register receives a transport
	// of an unexpected type
	ErrInvalidConnection = errors.New("invalid connection type")

	// ErrInvalidChannel is returned when a channel name cannot be parsed
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrMaxConnectionsReached is returned when the connection limit is hit
	ErrMaxConnectionsReached = errors.New("maximum connections reached")
)
