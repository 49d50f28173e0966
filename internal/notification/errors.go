package notification

import "errors"

var (
	ErrNotFound         = errors.New("notification not found")
	ErrInvalidType      = errors.New("invalid notification type")
	ErrInvalidRecipient = errors.New("recipient is required")
)
