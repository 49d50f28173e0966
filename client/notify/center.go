package notify

import (
	"context"
	"sync"

	"signage-hub/internal/model"
	"signage-hub/pkg/log"
)

// Center reconciles live pushed events with durable fetched history into
// the three unread counters the UI renders: the bell (non-chat
// notifications), the company board badge, and the per-peer direct-chat
// badges.
//
// Live events and bootstrap records describe the same logical
// notifications, so every applied record is remembered by its correlation
// id; whichever source arrives second for a given message is a no-op.
type Center struct {
	mu sync.Mutex

	l   log.Logger
	api API

	// selfID identifies the local user so chat echoes don't count.
	selfID string

	state State

	// Bell-eligible notifications, newest first.
	bell       []model.Notification
	bellUnread int

	companyChatUnread int
	directChatUnread  map[string]int

	// applied holds the correlation id of every notification already
	// counted, from either source.
	applied map[string]struct{}

	// Suppression state: a section currently in view stops new badge
	// increments without clearing existing counts.
	companyViewActive bool
	activePeerID      string
}

func NewCenter(l log.Logger, api API, selfID string) *Center {
	return &Center{
		l:                l,
		api:              api,
		selfID:           selfID,
		state:            StateBootstrapping,
		directChatUnread: make(map[string]int),
		applied:          make(map[string]struct{}),
	}
}

// correlationID identifies the logical notification across both sources:
// the chat message id when present, the record id otherwise.
func correlationID(n model.Notification) string {
	if id := n.MessageID(); id != "" {
		return id
	}
	return n.ID
}

// Bootstrap fetches the durable history once and seeds every counter from
// it. Unread new_chat records seed the per-peer map; everything else
// seeds the bell.
func (c *Center) Bootstrap(ctx context.Context) error {
	res, err := c.api.ListNotifications(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range res.Notifications {
		key := correlationID(n)
		if _, ok := c.applied[key]; ok {
			continue
		}
		c.applied[key] = struct{}{}

		if n.Type == model.NotificationTypeNewChat {
			if !n.IsRead && n.SenderID != nil {
				c.directChatUnread[*n.SenderID]++
			}
			continue
		}

		c.bell = append(c.bell, n)
		if !n.IsRead {
			c.bellUnread++
		}
	}

	c.state = StateLive
	return nil
}

// OnNewNotification applies a live new_notification event. new_chat is
// intentionally ignored here: chat badges are driven exclusively by the
// new_chat event path, which prevents double counting.
func (c *Center) OnNewNotification(n model.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLive {
		return
	}
	if n.Type == model.NotificationTypeNewChat {
		return
	}

	key := correlationID(n)
	if _, ok := c.applied[key]; ok {
		return
	}
	c.applied[key] = struct{}{}

	c.bell = append([]model.Notification{n}, c.bell...)
	if !n.IsRead {
		c.bellUnread++
	}
}

// OnNewChat applies a live new_chat event. Echoes of the user's own
// messages never count. A section currently in view suppresses the
// increment for that section only.
func (c *Center) OnNewChat(msg model.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLive {
		return
	}
	if msg.SenderID == c.selfID {
		return
	}

	if msg.MessageID != "" {
		if _, ok := c.applied[msg.MessageID]; ok {
			return
		}
		c.applied[msg.MessageID] = struct{}{}
	}

	if msg.Kind == model.ChatKindCompany {
		if c.companyViewActive {
			return
		}
		c.companyChatUnread++
		return
	}

	if msg.SenderID == c.activePeerID {
		return
	}
	c.directChatUnread[msg.SenderID]++
}

// SetCompanyViewActive marks the board section as in view. Existing
// counts stay until explicitly cleared.
func (c *Center) SetCompanyViewActive(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.companyViewActive = active
}

// SetActivePeer marks one direct conversation as open. Arrivals from that
// peer stop incrementing; other peers keep counting. Pass "" when no
// conversation is open.
func (c *Center) SetActivePeer(peerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activePeerID = peerID
}

// MarkRead optimistically marks one bell notification read, then issues
// the durable write. A failed write is logged and not rolled back; a
// local under-count is preferred over badge flicker.
func (c *Center) MarkRead(ctx context.Context, id string) {
	c.mu.Lock()
	for i := range c.bell {
		if c.bell[i].ID == id && !c.bell[i].IsRead {
			c.bell[i].IsRead = true
			c.bellUnread--
			break
		}
	}
	c.mu.Unlock()

	if err := c.api.MarkRead(ctx, id); err != nil {
		c.l.Warnf(ctx, "mark read failed for %s, local state kept: %v", id, err)
	}
}

// MarkAllRead optimistically zeroes the bell, then issues the durable
// write. Not rolled back on failure.
func (c *Center) MarkAllRead(ctx context.Context) {
	c.mu.Lock()
	for i := range c.bell {
		c.bell[i].IsRead = true
	}
	c.bellUnread = 0
	c.mu.Unlock()

	if err := c.api.MarkAllRead(ctx); err != nil {
		c.l.Warnf(ctx, "mark all read failed, local state kept: %v", err)
	}
}

// ClearChatNotifications optimistically zeroes a chat counter, then
// clears the matching thread in the store. peerID "" clears the company
// board counter and all direct counters. Not rolled back on failure.
func (c *Center) ClearChatNotifications(ctx context.Context, peerID string) {
	c.mu.Lock()
	if peerID == "" {
		c.companyChatUnread = 0
		c.directChatUnread = make(map[string]int)
	} else {
		delete(c.directChatUnread, peerID)
	}
	c.mu.Unlock()

	if err := c.api.ClearChat(ctx, string(model.NotificationTypeNewChat), peerID); err != nil {
		c.l.Warnf(ctx, "clear chat failed for peer %q, local state kept: %v", peerID, err)
	}
}

// OnDisconnect freezes the counters until the socket is back.
func (c *Center) OnDisconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateLive {
		c.state = StateReconnecting
	}
}

// OnReconnect resumes live reconciliation. The caller is responsible for
// re-announcing channel interest on the new socket; the hub holds no
// session affinity.
func (c *Center) OnReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateReconnecting {
		c.state = StateLive
	}
}

// State returns the current session state.
func (c *Center) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Counts snapshots the derived counters.
func (c *Center) Counts() Counts {
	c.mu.Lock()
	defer c.mu.Unlock()

	direct := make(map[string]int, len(c.directChatUnread))
	for k, v := range c.directChatUnread {
		direct[k] = v
	}
	return Counts{
		Bell:        c.bellUnread,
		CompanyChat: c.companyChatUnread,
		DirectChat:  direct,
	}
}

// Bell returns the bell notifications, newest first.
func (c *Center) Bell() []model.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.Notification, len(c.bell))
	copy(out, c.bell)
	return out
}
