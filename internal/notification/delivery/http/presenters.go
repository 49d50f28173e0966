package http

import (
	"time"

	"signage-hub/internal/model"
	"signage-hub/internal/notification"
)

type listReq struct {
	Limit int      `form:"limit"`
	Types []string `form:"type"`
}

func (r listReq) toInput() notification.ListInput {
	types := make([]model.NotificationType, 0, len(r.Types))
	for _, t := range r.Types {
		types = append(types, model.NotificationType(t))
	}
	return notification.ListInput{
		Limit: r.Limit,
		Types: types,
	}
}

type clearReq struct {
	Type     string `json:"type" binding:"required"`
	SenderID string `json:"sender_id"`
}

func (r clearReq) toInput() notification.ClearInput {
	return notification.ClearInput{
		Type:     model.NotificationType(r.Type),
		SenderID: r.SenderID,
	}
}

type createReq struct {
	RecipientID string         `json:"recipient_id" binding:"required"`
	SenderID    string         `json:"sender_id"`
	Type        string         `json:"type" binding:"required"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Data        map[string]any `json:"data"`
}

func (r createReq) toInput() notification.CreateInput {
	return notification.CreateInput{
		RecipientID: r.RecipientID,
		SenderID:    r.SenderID,
		Type:        model.NotificationType(r.Type),
		Title:       r.Title,
		Message:     r.Message,
		Data:        r.Data,
	}
}

type notificationItem struct {
	ID          string         `json:"id"`
	RecipientID string         `json:"recipient_id"`
	SenderID    string         `json:"sender_id,omitempty"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	IsRead      bool           `json:"is_read"`
	Data        map[string]any `json:"data,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type listResp struct {
	Notifications []notificationItem `json:"notifications"`
	UnreadCount   int64              `json:"unread_count"`
}

type unreadCountResp struct {
	UnreadCount int64 `json:"unread_count"`
}

func newNotificationItem(n model.Notification) notificationItem {
	item := notificationItem{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		IsRead:      n.IsRead,
		Data:        n.Data,
		CreatedAt:   n.CreatedAt,
	}
	if n.SenderID != nil {
		item.SenderID = *n.SenderID
	}
	return item
}

func newListResp(out notification.ListOutput) listResp {
	items := make([]notificationItem, 0, len(out.Notifications))
	for _, n := range out.Notifications {
		items = append(items, newNotificationItem(n))
	}
	return listResp{
		Notifications: items,
		UnreadCount:   out.UnreadCount,
	}
}
