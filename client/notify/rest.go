package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"signage-hub/internal/model"
)

const defaultRequestTimeout = 10 * time.Second

// Client talks to the hub's notification REST API. It implements API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

var _ API = &Client{}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}
}

// respEnvelope matches the hub's standard response shape.
type respEnvelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

type listData struct {
	Notifications []notificationData `json:"notifications"`
	UnreadCount   int64              `json:"unread_count"`
}

type notificationData struct {
	ID          string         `json:"id"`
	RecipientID string         `json:"recipient_id"`
	SenderID    string         `json:"sender_id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	IsRead      bool           `json:"is_read"`
	Data        map[string]any `json:"data"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (d notificationData) toModel() model.Notification {
	n := model.Notification{
		ID:          d.ID,
		RecipientID: d.RecipientID,
		Type:        model.NotificationType(d.Type),
		Title:       d.Title,
		Message:     d.Message,
		IsRead:      d.IsRead,
		Data:        d.Data,
		Status:      model.NotificationStatusActive,
		CreatedAt:   d.CreatedAt,
	}
	if d.SenderID != "" {
		n.SenderID = &d.SenderID
	}
	return n
}

func (c *Client) ListNotifications(ctx context.Context) (ListResult, error) {
	var data listData
	if err := c.do(ctx, http.MethodGet, "/api/v1/notifications", nil, &data); err != nil {
		return ListResult{}, err
	}

	res := ListResult{UnreadCount: data.UnreadCount}
	for _, d := range data.Notifications {
		res.Notifications = append(res.Notifications, d.toModel())
	}
	return res, nil
}

func (c *Client) MarkRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/api/v1/notifications/"+id+"/read", nil, nil)
}

func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPatch, "/api/v1/notifications/read-all", nil, nil)
}

func (c *Client) ClearChat(ctx context.Context, notificationType, senderID string) error {
	body := map[string]string{"type": notificationType}
	if senderID != "" {
		body["sender_id"] = senderID
	}
	return c.do(ctx, http.MethodPatch, "/api/v1/notifications/clear-chat", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env respEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response (%d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: %s (%d)", method, path, env.Message, resp.StatusCode)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
