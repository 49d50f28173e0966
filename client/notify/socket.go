package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"signage-hub/internal/model"
	"signage-hub/pkg/log"
)

const (
	reconnectBaseDelay = time.Second
	reconnectMaxDelay  = 30 * time.Second
)

// socket event names, mirroring the hub wire protocol.
const (
	eventNewChat         = "new_chat"
	eventNewNotification = "new_notification"
	eventJoinUser        = "join_user"
	eventJoinCompany     = "join_company"
)

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Socket keeps a live connection to the hub and feeds events into a
// Center. On every (re)connect it re-announces channel interest: the hub
// holds no session affinity, membership is rebuilt from join events.
type Socket struct {
	l      log.Logger
	url    string
	center *Center

	userID    string
	companyID string
}

func NewSocket(l log.Logger, url string, center *Center, userID, companyID string) *Socket {
	return &Socket{
		l:         l,
		url:       url,
		center:    center,
		userID:    userID,
		companyID: companyID,
	}
}

// Run connects and keeps reconnecting with exponential backoff until ctx
// is cancelled.
func (s *Socket) Run(ctx context.Context) {
	delay := reconnectBaseDelay

	for {
		if err := s.connectAndListen(ctx); err != nil {
			s.l.Warnf(ctx, "socket disconnected: %v", err)
		}
		s.center.OnDisconnect()

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > reconnectMaxDelay {
			delay = reconnectMaxDelay
		}
	}
}

func (s *Socket) connectAndListen(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := s.joinChannels(conn); err != nil {
		return err
	}
	s.center.OnReconnect()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		s.dispatch(ctx, raw)
	}
}

func (s *Socket) joinChannels(conn *websocket.Conn) error {
	joins := []frame{
		{Event: eventJoinUser, Data: mustJSON(map[string]string{"user_id": s.userID})},
	}
	if s.companyID != "" {
		joins = append(joins, frame{Event: eventJoinCompany, Data: mustJSON(map[string]string{"company_id": s.companyID})})
	}

	for _, f := range joins {
		raw, err := json.Marshal(f)
		if err != nil {
			return err
		}
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			return err
		}
	}
	return nil
}

func (s *Socket) dispatch(ctx context.Context, raw []byte) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		s.l.Debugf(ctx, "dropping malformed frame: %v", err)
		return
	}

	switch f.Event {
	case eventNewChat:
		var msg model.ChatMessage
		if err := json.Unmarshal(f.Data, &msg); err != nil {
			s.l.Debugf(ctx, "dropping malformed new_chat: %v", err)
			return
		}
		s.center.OnNewChat(msg)

	case eventNewNotification:
		var n model.Notification
		if err := json.Unmarshal(f.Data, &n); err != nil {
			s.l.Debugf(ctx, "dropping malformed new_notification: %v", err)
			return
		}
		s.center.OnNewNotification(n)

	default:
		// Other events (friend requests, screen control) are consumed by
		// their own UI surfaces, not the notification center.
	}
}

func mustJSON(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}
