package usecase

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"signage-hub/config"
	"signage-hub/internal/hub"
	"signage-hub/internal/model"
	"signage-hub/internal/notification"
	"signage-hub/pkg/log"
)

// Chat text is truncated for the notification preview.
const notificationPreviewLen = 50

// implUseCase implements hub.UseCase.
type implUseCase struct {
	hub    *Hub
	logger log.Logger

	notificationUC notification.UseCase

	wsCfg config.WebSocketConfig

	storeFailures atomic.Int64

	clock func() time.Time
	newID func() string
}

// New creates the event router. The returned value must be started with
// Run before any emit succeeds.
func New(logger log.Logger, wsCfg config.WebSocketConfig, notificationUC notification.UseCase) hub.UseCase {
	return &implUseCase{
		hub:            newHub(logger, wsCfg.MaxConnections),
		logger:         logger,
		notificationUC: notificationUC,
		wsCfg:          wsCfg,
		clock:          time.Now,
		newID:          uuid.NewString,
	}
}

func (uc *implUseCase) Run() {
	uc.hub.run()
}

func (uc *implUseCase) Shutdown(ctx context.Context) error {
	return uc.hub.shutdown(ctx)
}

func (uc *implUseCase) Register(ctx context.Context, input hub.ConnectionInput) error {
	conn, ok := input.Conn.(*websocket.Conn)
	if !ok {
		return hub.ErrInvalidConnection
	}

	c := &Connection{
		uc:     uc,
		conn:   conn,
		id:     uc.newID(),
		scope:  input.Scope,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		logger: uc.logger,
	}

	uc.hub.register <- c

	go c.writePump()
	go c.readPump()

	return nil
}

func (uc *implUseCase) GetStats(ctx context.Context) (hub.HubStats, error) {
	stats := uc.hub.stats()
	stats.StoreFailures = uc.storeFailures.Load()
	return stats, nil
}

func (uc *implUseCase) EmitToUser(ctx context.Context, userID, event string, data any) error {
	return uc.emitEvent(ctx, hub.UserChannel(userID), event, data)
}

func (uc *implUseCase) EmitToCompany(ctx context.Context, companyID, event string, data any) error {
	return uc.emitEvent(ctx, hub.CompanyChannel(companyID), event, data)
}

func (uc *implUseCase) EmitToScreen(ctx context.Context, screenID, event string, data any) error {
	return uc.emitEvent(ctx, hub.ScreenChannel(screenID), event, data)
}

func (uc *implUseCase) emitEvent(ctx context.Context, ch hub.Channel, event string, data any) error {
	if !uc.hub.running.Load() {
		return hub.ErrNotRunning
	}
	if !ch.Valid() || event == "" {
		return hub.ErrInvalidChannel
	}

	frame, err := encodeEvent(event, data)
	if err != nil {
		uc.logger.Errorf(ctx, "internal.hub.usecase.emitEvent.encode: %v", err)
		return err
	}

	uc.hub.emit(ch, frame)
	return nil
}

// ProcessControl routes a raw control-plane frame to a channel by its
// canonical name. Malformed channels or frames are dropped silently so a
// misbehaving publisher cannot wedge the subscriber loop.
func (uc *implUseCase) ProcessControl(ctx context.Context, input hub.ControlInput) error {
	if !uc.hub.running.Load() {
		return hub.ErrNotRunning
	}

	ch, ok := hub.ParseChannel(input.Channel)
	if !ok {
		uc.logger.Warnf(ctx, "Dropping control event with invalid channel: %q", input.Channel)
		return nil
	}

	var env envelope
	if err := json.Unmarshal(input.Payload, &env); err != nil || env.Event == "" {
		uc.logger.Warnf(ctx, "Dropping malformed control event on %s: %v", ch, err)
		return nil
	}

	frame, err := json.Marshal(env)
	if err != nil {
		uc.logger.Warnf(ctx, "Dropping control event on %s: %v", ch, err)
		return nil
	}

	uc.hub.emit(ch, frame)
	return nil
}

// handleInbound validates and dispatches one client frame. Untrusted input
// never errors back to the client and never disconnects it: anything that
// does not match a known shape is dropped.
func (uc *implUseCase) handleInbound(ctx context.Context, c *Connection, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		uc.logger.Debugf(ctx, "Dropping malformed frame from conn %s: %v", c.id, err)
		return
	}

	switch env.Event {
	case inboundJoinScreen:
		var p joinScreenPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		uc.hub.registry.join(c, hub.ScreenChannel(p.ScreenID))

	case inboundJoinCompany:
		var p joinCompanyPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		uc.hub.registry.join(c, hub.CompanyChannel(p.CompanyID))

	case inboundJoinUser:
		var p joinUserPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		uc.hub.registry.join(c, hub.UserChannel(p.UserID))

	case inboundSendChat:
		var p sendChatPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		uc.handleSendChat(ctx, c, p)

	default:
		uc.logger.Debugf(ctx, "Dropping unknown event %q from conn %s", env.Event, c.id)
	}
}

// handleSendChat routes one chat message. When both company and recipient
// are set, the company path wins; this precedence is fixed, never
// alternated.
func (uc *implUseCase) handleSendChat(ctx context.Context, c *Connection, p sendChatPayload) {
	if p.Text == "" {
		return
	}

	senderID := c.scope.UserID
	if senderID == "" {
		senderID = p.SenderID
	}
	if senderID == "" {
		return
	}

	msg := model.ChatMessage{
		MessageID:  uc.newID(),
		Text:       p.Text,
		SenderID:   senderID,
		SenderName: p.SenderName,
		Avatar:     p.Avatar,
		CreatedAt:  uc.clock(),
	}

	if p.CompanyID != "" {
		msg.Kind = model.ChatKindCompany
		msg.CompanyID = p.CompanyID
		uc.emitChat(ctx, hub.CompanyChannel(p.CompanyID), msg)
		return
	}

	if p.RecipientID == "" {
		return
	}
	msg.Kind = model.ChatKindPrivate
	msg.RecipientID = p.RecipientID

	// Echo first: the live message is never gated on storage latency.
	// The recipient gets the message, the sender's other tabs sync.
	// A self-addressed message has one channel, so one emit.
	uc.emitChat(ctx, hub.UserChannel(p.RecipientID), msg)
	if senderID != p.RecipientID {
		uc.emitChat(ctx, hub.UserChannel(senderID), msg)
	}

	// Then the durable badge record. The notification event carries the
	// record only after the write succeeds, so a client never sees a
	// badge for a record it cannot fetch.
	created, err := uc.persistChatNotification(msg)
	if err != nil {
		uc.storeFailures.Add(1)
		uc.logger.Errorf(ctx, "Chat notification write failed, badge lost for message %s: %v", msg.MessageID, err)
		return
	}

	if err := uc.emitEvent(ctx, hub.UserChannel(p.RecipientID), hub.EventNewNotification, created); err != nil {
		uc.logger.Errorf(ctx, "internal.hub.usecase.handleSendChat.emit: %v", err)
	}
}

func (uc *implUseCase) emitChat(ctx context.Context, ch hub.Channel, msg model.ChatMessage) {
	if err := uc.emitEvent(ctx, ch, hub.EventNewChat, msg); err != nil {
		uc.logger.Errorf(ctx, "internal.hub.usecase.emitChat: %v", err)
	}
}

func (uc *implUseCase) persistChatNotification(msg model.ChatMessage) (model.Notification, error) {
	timeout := uc.wsCfg.PersistTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return uc.notificationUC.Create(ctx, notification.CreateInput{
		RecipientID: msg.RecipientID,
		SenderID:    msg.SenderID,
		Type:        model.NotificationTypeNewChat,
		Title:       msg.SenderName,
		Message:     truncate(msg.Text, notificationPreviewLen),
		Data:        map[string]any{model.DataKeyMessageID: msg.MessageID},
	})
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
