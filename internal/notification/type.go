package notification

import (
	"signage-hub/internal/model"
)

// CreateInput is the input for creating a notification record.
type CreateInput struct {
	RecipientID string
	SenderID    string // optional
	Type        model.NotificationType
	Title       string
	Message     string
	Data        map[string]any // optional
}

// ListInput is the input for listing a user's notifications.
type ListInput struct {
	Limit int
	Types []model.NotificationType // optional filter
}

// ListOutput bundles a notification page with the derived unread count.
type ListOutput struct {
	Notifications []model.Notification
	UnreadCount   int64
}

// ClearInput is the input for bulk-clearing a conversation thread.
// SenderID empty clears all notifications of Type for the user.
type ClearInput struct {
	Type     model.NotificationType
	SenderID string
}
