package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signage-hub/config"
	"signage-hub/internal/hub"
	"signage-hub/internal/model"
	"signage-hub/internal/notification"
)

// testLogger implements log.Logger for testing
type testLogger struct{}

func (m *testLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *testLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *testLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// stubStore implements notification.UseCase backed by a slice, with a
// switchable failure mode for degraded-path tests.
type stubStore struct {
	mu         sync.Mutex
	seq        int
	records    []model.Notification
	failCreate bool
}

var _ notification.UseCase = &stubStore{}

func (s *stubStore) Create(ctx context.Context, ip notification.CreateInput) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failCreate {
		return model.Notification{}, fmt.Errorf("store unavailable")
	}

	s.seq++
	n := model.Notification{
		ID:          fmt.Sprintf("n-%d", s.seq),
		RecipientID: ip.RecipientID,
		Type:        ip.Type,
		Title:       ip.Title,
		Message:     ip.Message,
		Data:        ip.Data,
		Status:      model.NotificationStatusActive,
		CreatedAt:   time.Now(),
	}
	if ip.SenderID != "" {
		n.SenderID = &ip.SenderID
	}
	s.records = append(s.records, n)
	return n, nil
}

func (s *stubStore) List(ctx context.Context, sc model.Scope, ip notification.ListInput) (notification.ListOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out notification.ListOutput
	for _, n := range s.records {
		if n.RecipientID == sc.UserID {
			out.Notifications = append(out.Notifications, n)
			if !n.IsRead {
				out.UnreadCount++
			}
		}
	}
	return out, nil
}

func (s *stubStore) UnreadCount(ctx context.Context, sc model.Scope) (int64, error) {
	out, _ := s.List(ctx, sc, notification.ListInput{})
	return out.UnreadCount, nil
}

func (s *stubStore) MarkRead(ctx context.Context, sc model.Scope, id string) error    { return nil }
func (s *stubStore) MarkAllRead(ctx context.Context, sc model.Scope) error            { return nil }
func (s *stubStore) MarkByTypeAndSender(ctx context.Context, sc model.Scope, ip notification.ClearInput) error {
	return nil
}

func newTestRouter(t *testing.T) (*implUseCase, *stubStore) {
	t.Helper()

	store := &stubStore{}
	uc := New(&testLogger{}, config.WebSocketConfig{
		MaxConnections: 100,
		PersistTimeout: time.Second,
	}, store).(*implUseCase)

	var seq int
	var mu sync.Mutex
	uc.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		seq++
		return fmt.Sprintf("id-%d", seq)
	}

	go uc.Run()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		uc.Shutdown(ctx)
	})

	deadline := time.Now().Add(time.Second)
	for !uc.hub.running.Load() {
		if time.Now().After(deadline) {
			t.Fatal("hub did not start")
		}
		time.Sleep(time.Millisecond)
	}
	return uc, store
}

func userConn(uc *implUseCase, userID string) *Connection {
	c := &Connection{
		uc:     uc,
		id:     uc.newID(),
		scope:  model.Scope{UserID: userID},
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		logger: uc.logger,
	}
	uc.hub.registry.join(c, hub.UserChannel(userID))
	return c
}

// drain decodes every frame currently buffered on the connection.
func drain(t *testing.T, c *Connection) []envelope {
	t.Helper()

	var frames []envelope
	for {
		select {
		case raw := <-c.send:
			var env envelope
			require.NoError(t, json.Unmarshal(raw, &env))
			frames = append(frames, env)
		default:
			return frames
		}
	}
}

func eventNames(frames []envelope) []string {
	names := make([]string, 0, len(frames))
	for _, f := range frames {
		names = append(names, f.Event)
	}
	return names
}

func sendChatFrame(t *testing.T, payload sendChatPayload) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	raw, err := json.Marshal(envelope{Event: inboundSendChat, Data: data})
	require.NoError(t, err)
	return raw
}

func TestDirectChatFanOut(t *testing.T) {
	uc, store := newTestRouter(t)
	ctx := context.Background()

	senderTab1 := userConn(uc, "sender")
	senderTab2 := userConn(uc, "sender")
	recipient := userConn(uc, "recipient")
	bystander := userConn(uc, "bystander")
	uc.hub.registry.join(bystander, hub.CompanyChannel("acme"))

	uc.handleInbound(ctx, senderTab1, sendChatFrame(t, sendChatPayload{
		Text:        "hi",
		RecipientID: "recipient",
		SenderName:  "Sender",
	}))

	// Exactly one new_chat per sender tab: the sender's other open tabs
	// stay in sync.
	for _, tab := range []*Connection{senderTab1, senderTab2} {
		frames := drain(t, tab)
		assert.Equal(t, []string{hub.EventNewChat}, eventNames(frames))
	}

	// The recipient gets the chat echo and, after the record is written,
	// the badge event, in that order.
	frames := drain(t, recipient)
	require.Equal(t, []string{hub.EventNewChat, hub.EventNewNotification}, eventNames(frames))

	var msg model.ChatMessage
	require.NoError(t, json.Unmarshal(frames[0].Data, &msg))
	assert.Equal(t, model.ChatKindPrivate, msg.Kind)
	assert.Equal(t, "hi", msg.Text)
	assert.Equal(t, "sender", msg.SenderID)
	assert.Equal(t, "recipient", msg.RecipientID)
	assert.NotEmpty(t, msg.MessageID)

	// The badge event corresponds to a retrievable record and carries the
	// chat correlation id.
	var n model.Notification
	require.NoError(t, json.Unmarshal(frames[1].Data, &n))
	assert.Equal(t, msg.MessageID, n.MessageID())

	out, err := store.List(ctx, model.Scope{UserID: "recipient"}, notification.ListInput{})
	require.NoError(t, err)
	require.Len(t, out.Notifications, 1)
	assert.Equal(t, n.ID, out.Notifications[0].ID)
	assert.Equal(t, model.NotificationTypeNewChat, out.Notifications[0].Type)

	// Unrelated channels see nothing.
	assert.Empty(t, drain(t, bystander))
}

func TestCompanyChatFanOut(t *testing.T) {
	uc, store := newTestRouter(t)
	ctx := context.Background()

	sender := userConn(uc, "sender")
	uc.hub.registry.join(sender, hub.CompanyChannel("acme"))
	colleague := userConn(uc, "colleague")
	uc.hub.registry.join(colleague, hub.CompanyChannel("acme"))
	outsider := userConn(uc, "outsider")

	uc.handleInbound(ctx, sender, sendChatFrame(t, sendChatPayload{
		Text:      "hello board",
		CompanyID: "acme",
	}))

	for _, c := range []*Connection{sender, colleague} {
		frames := drain(t, c)
		require.Equal(t, []string{hub.EventNewChat}, eventNames(frames))

		var msg model.ChatMessage
		require.NoError(t, json.Unmarshal(frames[0].Data, &msg))
		assert.Equal(t, model.ChatKindCompany, msg.Kind)
		assert.Equal(t, "acme", msg.CompanyID)
	}

	assert.Empty(t, drain(t, outsider))

	// Board messages never create notification records here.
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.records)
}

func TestBothAddressesCompanyWins(t *testing.T) {
	uc, store := newTestRouter(t)
	ctx := context.Background()

	sender := userConn(uc, "sender")
	uc.hub.registry.join(sender, hub.CompanyChannel("acme"))
	recipient := userConn(uc, "recipient")

	// Send twice to check the interpretation never alternates.
	for i := 0; i < 2; i++ {
		uc.handleInbound(ctx, sender, sendChatFrame(t, sendChatPayload{
			Text:        "ambiguous",
			CompanyID:   "acme",
			RecipientID: "recipient",
		}))
	}

	frames := drain(t, sender)
	require.Len(t, frames, 2)
	for _, f := range frames {
		assert.Equal(t, hub.EventNewChat, f.Event)
		var msg model.ChatMessage
		require.NoError(t, json.Unmarshal(f.Data, &msg))
		assert.Equal(t, model.ChatKindCompany, msg.Kind)
		assert.Empty(t, msg.RecipientID)
	}

	// The direct path never ran: nothing to the recipient, no record.
	assert.Empty(t, drain(t, recipient))
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.records)
}

func TestStoreFailureStillEchoes(t *testing.T) {
	uc, store := newTestRouter(t)
	ctx := context.Background()

	sender := userConn(uc, "sender")
	recipient := userConn(uc, "recipient")
	store.failCreate = true

	uc.handleInbound(ctx, sender, sendChatFrame(t, sendChatPayload{
		Text:        "hi",
		RecipientID: "recipient",
	}))

	// Echo proceeds, badge event is lost, nothing fatal.
	assert.Equal(t, []string{hub.EventNewChat}, eventNames(drain(t, recipient)))
	assert.Equal(t, []string{hub.EventNewChat}, eventNames(drain(t, sender)))

	stats, err := uc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.StoreFailures)
}

func TestMalformedInputSilentlyDropped(t *testing.T) {
	uc, store := newTestRouter(t)
	ctx := context.Background()

	c := userConn(uc, "user")

	inputs := [][]byte{
		[]byte(`not json`),
		[]byte(`{"event":"unknown_event","data":{}}`),
		[]byte(`{"event":"join_company","data":{"company_id":""}}`),
		[]byte(`{"event":"join_company","data":"not an object"}`),
		[]byte(`{"event":"send_chat","data":{"text":""}}`),
		[]byte(`{"event":"send_chat","data":{"text":"hi"}}`),
	}
	for _, raw := range inputs {
		uc.handleInbound(ctx, c, raw)
	}

	assert.Empty(t, drain(t, c))
	assert.Empty(t, uc.hub.registry.membersOf(hub.CompanyChannel("")))
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.records)
}

func TestJoinEvents(t *testing.T) {
	uc, _ := newTestRouter(t)
	ctx := context.Background()

	c := &Connection{
		uc:    uc,
		id:    "c1",
		scope: model.Scope{UserID: "u1"},
		send:  make(chan []byte, sendBufferSize),
		done:  make(chan struct{}),
	}

	uc.handleInbound(ctx, c, []byte(`{"event":"join_user","data":{"user_id":"u1"}}`))
	uc.handleInbound(ctx, c, []byte(`{"event":"join_company","data":{"company_id":"acme"}}`))
	uc.handleInbound(ctx, c, []byte(`{"event":"join_screen","data":{"screen_id":"s1"}}`))
	// Repeat join is a no-op.
	uc.handleInbound(ctx, c, []byte(`{"event":"join_company","data":{"company_id":"acme"}}`))

	assert.Len(t, uc.hub.registry.membersOf(hub.UserChannel("u1")), 1)
	assert.Len(t, uc.hub.registry.membersOf(hub.CompanyChannel("acme")), 1)
	assert.Len(t, uc.hub.registry.membersOf(hub.ScreenChannel("s1")), 1)
}

func TestEmitBeforeRun(t *testing.T) {
	store := &stubStore{}
	uc := New(&testLogger{}, config.WebSocketConfig{}, store)

	err := uc.EmitToUser(context.Background(), "u1", hub.EventTriggerUpdate, nil)
	assert.ErrorIs(t, err, hub.ErrNotRunning)
}

func TestEmitToScreenAndControlPlane(t *testing.T) {
	uc, _ := newTestRouter(t)
	ctx := context.Background()

	screen := &Connection{
		uc:   uc,
		id:   "screen-conn",
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
	uc.hub.registry.join(screen, hub.ScreenChannel("s1"))

	require.NoError(t, uc.EmitToScreen(ctx, "s1", hub.EventScreenCommand, map[string]string{"command": "force_refresh"}))

	frames := drain(t, screen)
	require.Equal(t, []string{hub.EventScreenCommand}, eventNames(frames))
	var cmd map[string]string
	require.NoError(t, json.Unmarshal(frames[0].Data, &cmd))
	assert.Equal(t, "force_refresh", cmd["command"])

	// Control-plane frames route by canonical channel name.
	require.NoError(t, uc.ProcessControl(ctx, hub.ControlInput{
		Channel: "screen:s1",
		Payload: []byte(`{"event":"content_update","data":{"playlist_id":"p1"}}`),
	}))
	frames = drain(t, screen)
	assert.Equal(t, []string{hub.EventContentUpdate}, eventNames(frames))

	// Malformed control input is dropped without error.
	require.NoError(t, uc.ProcessControl(ctx, hub.ControlInput{Channel: "bogus", Payload: []byte(`{}`)}))
	require.NoError(t, uc.ProcessControl(ctx, hub.ControlInput{Channel: "screen:s1", Payload: []byte(`garbage`)}))
	require.NoError(t, uc.ProcessControl(ctx, hub.ControlInput{Channel: "screen:s1", Payload: []byte(`{"data":{}}`)}))
	assert.Empty(t, drain(t, screen))
}

func TestCapacityRejectionCleansMembership(t *testing.T) {
	uc, _ := newTestRouter(t)
	uc.hub.maxConnections = 1

	first := userConn(uc, "u1")
	uc.hub.registerConnection(first)

	// Joins run on the read pump, so a connection rejected at capacity can
	// still have joined channels before the rejection landed. Its teardown
	// must drop those memberships even though it was never registered.
	second := userConn(uc, "u2")
	uc.hub.registerConnection(second)
	uc.hub.unregisterConnection(second)

	assert.Empty(t, uc.hub.registry.membersOf(hub.UserChannel("u2")))
	assert.Len(t, uc.hub.registry.membersOf(hub.UserChannel("u1")), 1)

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ActiveConnections)
}

func TestSelfChatSingleEcho(t *testing.T) {
	uc, store := newTestRouter(t)
	ctx := context.Background()

	tab1 := userConn(uc, "solo")
	tab2 := userConn(uc, "solo")

	uc.handleInbound(ctx, tab1, sendChatFrame(t, sendChatPayload{
		Text:        "note to self",
		RecipientID: "solo",
	}))

	// Sender and recipient share one channel here, so each tab gets the
	// chat frame once, then the badge event.
	for _, tab := range []*Connection{tab1, tab2} {
		frames := drain(t, tab)
		assert.Equal(t, []string{hub.EventNewChat, hub.EventNewNotification}, eventNames(frames))
	}

	out, err := store.List(ctx, model.Scope{UserID: "solo"}, notification.ListInput{})
	require.NoError(t, err)
	assert.Len(t, out.Notifications, 1)
}

func TestChatPreviewTruncation(t *testing.T) {
	uc, store := newTestRouter(t)
	ctx := context.Background()

	sender := userConn(uc, "sender")
	long := ""
	for i := 0; i < 20; i++ {
		long += "0123456789"
	}

	uc.handleInbound(ctx, sender, sendChatFrame(t, sendChatPayload{
		Text:        long,
		RecipientID: "recipient",
	}))

	out, err := store.List(ctx, model.Scope{UserID: "recipient"}, notification.ListInput{})
	require.NoError(t, err)
	require.Len(t, out.Notifications, 1)
	assert.Len(t, out.Notifications[0].Message, notificationPreviewLen)

	// The full text still went out live.
	frames := drain(t, sender)
	require.NotEmpty(t, frames)
	var msg model.ChatMessage
	require.NoError(t, json.Unmarshal(frames[0].Data, &msg))
	assert.Equal(t, long, msg.Text)
}
