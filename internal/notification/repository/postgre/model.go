package postgres

import (
	"encoding/json"
	"time"

	"signage-hub/internal/model"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
)

// notificationRow mirrors the notifications table.
type notificationRow struct {
	ID          string      `boil:"id"`
	RecipientID string      `boil:"recipient_id"`
	SenderID    null.String `boil:"sender_id"`
	Type        string      `boil:"type"`
	Title       string      `boil:"title"`
	Message     string      `boil:"message"`
	IsRead      bool        `boil:"is_read"`
	Data        null.JSON   `boil:"data"`
	Status      string      `boil:"status"`
	CreatedAt   time.Time   `boil:"created_at"`
}

func (r *notificationRow) toModel() (model.Notification, error) {
	n := model.Notification{
		ID:          r.ID,
		RecipientID: r.RecipientID,
		Type:        model.NotificationType(r.Type),
		Title:       r.Title,
		Message:     r.Message,
		IsRead:      r.IsRead,
		Status:      model.NotificationStatus(r.Status),
		CreatedAt:   r.CreatedAt,
	}
	if r.SenderID.Valid {
		n.SenderID = &r.SenderID.String
	}
	if r.Data.Valid && len(r.Data.JSON) > 0 {
		if err := json.Unmarshal(r.Data.JSON, &n.Data); err != nil {
			return model.Notification{}, errors.Wrap(err, "unmarshal notification data")
		}
	}
	return n, nil
}

func newRow(n model.Notification) (notificationRow, error) {
	row := notificationRow{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		IsRead:      n.IsRead,
		Status:      string(n.Status),
		CreatedAt:   n.CreatedAt,
	}
	if n.SenderID != nil && *n.SenderID != "" {
		row.SenderID = null.StringFrom(*n.SenderID)
	}
	if n.Data != nil {
		raw, err := json.Marshal(n.Data)
		if err != nil {
			return notificationRow{}, errors.Wrap(err, "marshal notification data")
		}
		row.Data = null.JSONFrom(raw)
	}
	return row, nil
}
