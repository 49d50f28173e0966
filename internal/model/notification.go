package model

import "time"

// NotificationType classifies a directed notification.
type NotificationType string

const (
	NotificationTypeFriendRequest NotificationType = "friend_request"
	NotificationTypeNewChat       NotificationType = "new_chat"
	NotificationTypeCompanyInvite NotificationType = "company_invite"
	NotificationTypeSystemAlert   NotificationType = "system_alert"
)

// IsValid reports whether t is a known notification type.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeFriendRequest,
		NotificationTypeNewChat,
		NotificationTypeCompanyInvite,
		NotificationTypeSystemAlert:
		return true
	}
	return false
}

// NotificationStatus is the lifecycle state of a notification record.
type NotificationStatus string

const (
	NotificationStatusActive   NotificationStatus = "active"
	NotificationStatusArchived NotificationStatus = "archived"
)

// DataKeyMessageID is the key under Notification.Data carrying the chat
// message correlation id, so live chat events and durable records for the
// same logical message can be matched deterministically.
const DataKeyMessageID = "message_id"

// Notification represents a durable directed notification.
// Records are created server-side only and mutated only by the recipient's
// own mark-read actions.
type Notification struct {
	ID          string             `json:"id"`
	RecipientID string             `json:"recipient_id"`
	SenderID    *string            `json:"sender_id,omitempty"`
	Type        NotificationType   `json:"type"`
	Title       string             `json:"title"`
	Message     string             `json:"message"`
	IsRead      bool               `json:"is_read"`
	Data        map[string]any     `json:"data,omitempty"`
	Status      NotificationStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
}

// MessageID returns the chat correlation id carried in Data, if any.
func (n Notification) MessageID() string {
	if n.Data == nil {
		return ""
	}
	if id, ok := n.Data[DataKeyMessageID].(string); ok {
		return id
	}
	return ""
}
