package model

import "time"

// Chat addressing kinds as seen on the wire.
const (
	ChatKindCompany = "company"
	ChatKindPrivate = "private"
)

// ChatMessage is the transient chat payload routed by the hub.
// Exactly one of RecipientID/CompanyID is set after validation; the durable
// copy of board/direct messages lives in the external message store.
type ChatMessage struct {
	MessageID   string    `json:"message_id"`
	Kind        string    `json:"type"`
	Text        string    `json:"text"`
	SenderID    string    `json:"sender_id"`
	SenderName  string    `json:"sender_name"`
	RecipientID string    `json:"recipient_id,omitempty"`
	CompanyID   string    `json:"company_id,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsDirect reports whether the message is addressed to a single user.
func (m ChatMessage) IsDirect() bool {
	return m.Kind == ChatKindPrivate
}
