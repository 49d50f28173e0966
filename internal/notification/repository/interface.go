package repository

import (
	"context"
	"errors"

	"signage-hub/internal/model"
)

// ErrNotFound is returned when no record matches the query.
var ErrNotFound = errors.New("record not found")

// Repository is the persistence contract for notification records.
//
// Implementations must keep the unread count derivable from the record set:
// CountUnread is always computed over rows, never from a separate counter.
type Repository interface {
	Create(ctx context.Context, opts CreateOptions) (model.Notification, error)
	List(ctx context.Context, opts ListOptions) ([]model.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, opts MarkReadOptions) error
	MarkAllRead(ctx context.Context, recipientID string) error
	MarkReadByTypeAndSender(ctx context.Context, opts ClearOptions) error
}
