package repository

import "signage-hub/internal/model"

// CreateOptions is the input for Repository.Create.
type CreateOptions struct {
	Notification model.Notification
}

// ListOptions is the input for Repository.List.
// Only active records are returned, newest first.
type ListOptions struct {
	RecipientID string
	Limit       int
	Types       []model.NotificationType
}

// MarkReadOptions is the input for Repository.MarkRead.
// RecipientID guards against marking another user's record.
type MarkReadOptions struct {
	ID          string
	RecipientID string
}

// ClearOptions is the input for Repository.MarkReadByTypeAndSender.
// SenderID empty matches all senders.
type ClearOptions struct {
	RecipientID string
	Type        model.NotificationType
	SenderID    string
}
