package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signage-hub/internal/model"
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

// stubAPI implements API with canned history and call recording.
type stubAPI struct {
	history  []model.Notification
	fail     bool
	markRead []string
	cleared  []string
}

func (s *stubAPI) ListNotifications(ctx context.Context) (ListResult, error) {
	if s.fail {
		return ListResult{}, fmt.Errorf("store down")
	}
	var unread int64
	for _, n := range s.history {
		if !n.IsRead {
			unread++
		}
	}
	return ListResult{Notifications: s.history, UnreadCount: unread}, nil
}

func (s *stubAPI) MarkRead(ctx context.Context, id string) error {
	if s.fail {
		return fmt.Errorf("store down")
	}
	s.markRead = append(s.markRead, id)
	return nil
}

func (s *stubAPI) MarkAllRead(ctx context.Context) error {
	if s.fail {
		return fmt.Errorf("store down")
	}
	return nil
}

func (s *stubAPI) ClearChat(ctx context.Context, notificationType, senderID string) error {
	if s.fail {
		return fmt.Errorf("store down")
	}
	s.cleared = append(s.cleared, notificationType+":"+senderID)
	return nil
}

func chatNotification(id, msgID, sender string, read bool) model.Notification {
	s := sender
	return model.Notification{
		ID:          id,
		RecipientID: "me",
		SenderID:    &s,
		Type:        model.NotificationTypeNewChat,
		Title:       sender,
		Message:     "hi",
		IsRead:      read,
		Data:        map[string]any{model.DataKeyMessageID: msgID},
		Status:      model.NotificationStatusActive,
		CreatedAt:   time.Now(),
	}
}

func bellNotification(id string, typ model.NotificationType, read bool) model.Notification {
	return model.Notification{
		ID:          id,
		RecipientID: "me",
		Type:        typ,
		Title:       "t",
		Message:     "m",
		IsRead:      read,
		Status:      model.NotificationStatusActive,
		CreatedAt:   time.Now(),
	}
}

func directChat(msgID, sender string) model.ChatMessage {
	return model.ChatMessage{
		MessageID:   msgID,
		Kind:        model.ChatKindPrivate,
		Text:        "hi",
		SenderID:    sender,
		RecipientID: "me",
		CreatedAt:   time.Now(),
	}
}

func TestBootstrapSeedsCounters(t *testing.T) {
	api := &stubAPI{history: []model.Notification{
		bellNotification("n1", model.NotificationTypeFriendRequest, false),
		bellNotification("n2", model.NotificationTypeSystemAlert, true),
		chatNotification("n3", "m3", "bob", false),
		chatNotification("n4", "m4", "bob", false),
		chatNotification("n5", "m5", "carol", false),
		chatNotification("n6", "m6", "carol", true),
	}}
	c := NewCenter(&testLogger{}, api, "me")

	assert.Equal(t, StateBootstrapping, c.State())
	require.NoError(t, c.Bootstrap(context.Background()))
	assert.Equal(t, StateLive, c.State())

	counts := c.Counts()
	assert.Equal(t, 1, counts.Bell)
	assert.Equal(t, 2, counts.DirectChat["bob"])
	assert.Equal(t, 1, counts.DirectChat["carol"])

	// Chat records never land in the bell list.
	assert.Len(t, c.Bell(), 2)
}

func TestNoDoubleCountLiveThenBootstrap(t *testing.T) {
	// A live event is applied first; the later bootstrap returns the
	// durable record for the same logical message.
	api := &stubAPI{history: []model.Notification{
		chatNotification("n1", "m1", "bob", false),
	}}
	c := NewCenter(&testLogger{}, api, "me")

	// Force live mode before bootstrap to simulate the race.
	c.state = StateLive
	c.OnNewChat(directChat("m1", "bob"))
	assert.Equal(t, 1, c.Counts().DirectChat["bob"])

	require.NoError(t, c.Bootstrap(context.Background()))
	assert.Equal(t, 1, c.Counts().DirectChat["bob"], "bootstrap must not double-apply the same message")
}

func TestNoDoubleCountBootstrapThenLive(t *testing.T) {
	// The durable record is fetched first; then the live event for the
	// same message arrives.
	api := &stubAPI{history: []model.Notification{
		chatNotification("n1", "m1", "bob", false),
	}}
	c := NewCenter(&testLogger{}, api, "me")
	require.NoError(t, c.Bootstrap(context.Background()))
	assert.Equal(t, 1, c.Counts().DirectChat["bob"])

	c.OnNewChat(directChat("m1", "bob"))
	assert.Equal(t, 1, c.Counts().DirectChat["bob"], "live event must not double-apply the same message")
}

func TestNewChatNotificationIgnoredOnBellPath(t *testing.T) {
	api := &stubAPI{}
	c := NewCenter(&testLogger{}, api, "me")
	require.NoError(t, c.Bootstrap(context.Background()))

	// The new_notification event for a chat is handled exclusively via
	// the new_chat path.
	c.OnNewNotification(chatNotification("n1", "m1", "bob", false))
	counts := c.Counts()
	assert.Equal(t, 0, counts.Bell)
	assert.Equal(t, 0, counts.DirectChat["bob"])

	c.OnNewChat(directChat("m1", "bob"))
	assert.Equal(t, 1, c.Counts().DirectChat["bob"])
}

func TestOwnEchoDoesNotCount(t *testing.T) {
	api := &stubAPI{}
	c := NewCenter(&testLogger{}, api, "me")
	require.NoError(t, c.Bootstrap(context.Background()))

	c.OnNewChat(directChat("m1", "me"))
	c.OnNewChat(model.ChatMessage{
		MessageID: "m2",
		Kind:      model.ChatKindCompany,
		Text:      "hi all",
		SenderID:  "me",
		CompanyID: "acme",
	})

	counts := c.Counts()
	assert.Equal(t, 0, counts.CompanyChat)
	assert.Empty(t, counts.DirectChat)
}

func TestSuppressionDoesNotClear(t *testing.T) {
	api := &stubAPI{}
	c := NewCenter(&testLogger{}, api, "me")
	require.NoError(t, c.Bootstrap(context.Background()))

	for i := 0; i < 3; i++ {
		c.OnNewChat(directChat(fmt.Sprintf("m%d", i), "peer"))
	}
	require.Equal(t, 3, c.Counts().DirectChat["peer"])

	// Opening the conversation suppresses new increments but leaves the
	// existing count visible until an explicit clear.
	c.SetActivePeer("peer")
	assert.Equal(t, 3, c.Counts().DirectChat["peer"])

	c.OnNewChat(directChat("m10", "peer"))
	assert.Equal(t, 3, c.Counts().DirectChat["peer"], "active peer arrivals must not increment")

	// Arrivals from other peers keep counting normally.
	c.OnNewChat(directChat("m11", "other"))
	assert.Equal(t, 1, c.Counts().DirectChat["other"])

	c.ClearChatNotifications(context.Background(), "peer")
	assert.Equal(t, 0, c.Counts().DirectChat["peer"])
	assert.Equal(t, 1, c.Counts().DirectChat["other"])
	assert.Contains(t, api.cleared, "new_chat:peer")
}

func TestCompanySuppression(t *testing.T) {
	api := &stubAPI{}
	c := NewCenter(&testLogger{}, api, "me")
	require.NoError(t, c.Bootstrap(context.Background()))

	board := func(id string) model.ChatMessage {
		return model.ChatMessage{MessageID: id, Kind: model.ChatKindCompany, Text: "x", SenderID: "bob", CompanyID: "acme"}
	}

	c.OnNewChat(board("m1"))
	c.OnNewChat(board("m2"))
	require.Equal(t, 2, c.Counts().CompanyChat)

	c.SetCompanyViewActive(true)
	c.OnNewChat(board("m3"))
	assert.Equal(t, 2, c.Counts().CompanyChat, "board arrivals while in view must not increment")

	c.SetCompanyViewActive(false)
	c.OnNewChat(board("m4"))
	assert.Equal(t, 3, c.Counts().CompanyChat)
}

func TestOptimisticMarkReadNoRollback(t *testing.T) {
	api := &stubAPI{history: []model.Notification{
		bellNotification("n1", model.NotificationTypeCompanyInvite, false),
		bellNotification("n2", model.NotificationTypeSystemAlert, false),
	}}
	c := NewCenter(&testLogger{}, api, "me")
	require.NoError(t, c.Bootstrap(context.Background()))
	require.Equal(t, 2, c.Counts().Bell)

	// The durable write fails; the optimistic decrement stays.
	api.fail = true
	c.MarkRead(context.Background(), "n1")
	assert.Equal(t, 1, c.Counts().Bell)

	// Marking the same record again is a no-op.
	c.MarkRead(context.Background(), "n1")
	assert.Equal(t, 1, c.Counts().Bell)

	c.MarkAllRead(context.Background())
	assert.Equal(t, 0, c.Counts().Bell)
}

func TestReconnectFreezesCounters(t *testing.T) {
	api := &stubAPI{}
	c := NewCenter(&testLogger{}, api, "me")
	require.NoError(t, c.Bootstrap(context.Background()))

	c.OnNewChat(directChat("m1", "bob"))
	require.Equal(t, 1, c.Counts().DirectChat["bob"])

	c.OnDisconnect()
	assert.Equal(t, StateReconnecting, c.State())

	// Events never arrive on a dropped socket; any stray application is
	// ignored and the counters hold their last known value.
	c.OnNewChat(directChat("m2", "bob"))
	c.OnNewNotification(bellNotification("n9", model.NotificationTypeSystemAlert, false))
	counts := c.Counts()
	assert.Equal(t, 1, counts.DirectChat["bob"])
	assert.Equal(t, 0, counts.Bell)

	c.OnReconnect()
	assert.Equal(t, StateLive, c.State())
	c.OnNewChat(directChat("m3", "bob"))
	assert.Equal(t, 2, c.Counts().DirectChat["bob"])
}

func TestLiveBellNotification(t *testing.T) {
	api := &stubAPI{}
	c := NewCenter(&testLogger{}, api, "me")
	require.NoError(t, c.Bootstrap(context.Background()))

	c.OnNewNotification(bellNotification("n1", model.NotificationTypeFriendRequest, false))
	assert.Equal(t, 1, c.Counts().Bell)

	// Duplicate delivery of the same record is a no-op.
	c.OnNewNotification(bellNotification("n1", model.NotificationTypeFriendRequest, false))
	assert.Equal(t, 1, c.Counts().Bell)

	bell := c.Bell()
	require.Len(t, bell, 1)
	assert.Equal(t, "n1", bell[0].ID)
}
