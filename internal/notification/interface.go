package notification

import (
	"context"

	"signage-hub/internal/model"
)

// UseCase is the notification store contract.
//
// Create is server-side only: records are authored by the hub (direct-chat
// badges) or by trusted internal callers (friend requests, invites, system
// alerts), never directly by clients. All read/mutate operations are scoped
// to the authenticated recipient.
type UseCase interface {
	Create(ctx context.Context, ip CreateInput) (model.Notification, error)
	List(ctx context.Context, sc model.Scope, ip ListInput) (ListOutput, error)
	UnreadCount(ctx context.Context, sc model.Scope) (int64, error)
	MarkRead(ctx context.Context, sc model.Scope, id string) error
	MarkAllRead(ctx context.Context, sc model.Scope) error
	MarkByTypeAndSender(ctx context.Context, sc model.Scope, ip ClearInput) error
}
