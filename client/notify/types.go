package notify

import (
	"context"

	"signage-hub/internal/model"
)

// State is the session lifecycle of the notification center.
type State string

const (
	// StateBootstrapping means durable history is being fetched.
	StateBootstrapping State = "bootstrapping"
	// StateLive means the socket is connected and pushed events are
	// being reconciled.
	StateLive State = "live"
	// StateReconnecting means the socket dropped. Counters freeze at
	// their last known value until channels are re-joined.
	StateReconnecting State = "reconnecting"
)

// ListResult is the bootstrap payload from the notification REST API.
type ListResult struct {
	Notifications []model.Notification
	UnreadCount   int64
}

// API is the durable-store surface the center consumes. Implemented by
// Client against the hub's REST endpoints.
type API interface {
	ListNotifications(ctx context.Context) (ListResult, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	ClearChat(ctx context.Context, notificationType, senderID string) error
}

// Counts is a snapshot of the derived unread counters.
type Counts struct {
	// Bell counts unread non-chat notifications.
	Bell int
	// CompanyChat counts unseen board messages.
	CompanyChat int
	// DirectChat maps peer id to unseen direct messages from that peer.
	DirectChat map[string]int
}
