package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signage-hub/internal/model"
	"signage-hub/internal/notification"
	"signage-hub/internal/notification/repository"
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

// memoryRepository is an in-memory repository.Repository used to exercise
// the usecase without a database.
type memoryRepository struct {
	mu      sync.Mutex
	seq     int
	records []model.Notification
}

var _ repository.Repository = &memoryRepository{}

func (r *memoryRepository) Create(ctx context.Context, opts repository.CreateOptions) (model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := opts.Notification
	r.seq++
	if n.ID == "" {
		n.ID = fmt.Sprintf("n-%04d", r.seq)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Unix(int64(1700000000+r.seq), 0)
	}
	r.records = append(r.records, n)
	return n, nil
}

func (r *memoryRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res []model.Notification
	for _, n := range r.records {
		if n.RecipientID != opts.RecipientID || n.Status != model.NotificationStatusActive {
			continue
		}
		if len(opts.Types) > 0 {
			matched := false
			for _, t := range opts.Types {
				if n.Type == t {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		res = append(res, n)
	}

	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID > res[j].ID
	})
	if opts.Limit > 0 && len(res) > opts.Limit {
		res = res[:opts.Limit]
	}
	return res, nil
}

func (r *memoryRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, n := range r.records {
		if n.RecipientID == recipientID && n.Status == model.NotificationStatusActive && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepository) MarkRead(ctx context.Context, opts repository.MarkReadOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		n := &r.records[i]
		if n.ID == opts.ID && n.RecipientID == opts.RecipientID && n.Status == model.NotificationStatusActive {
			n.IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memoryRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].RecipientID == recipientID && r.records[i].Status == model.NotificationStatusActive {
			r.records[i].IsRead = true
		}
	}
	return nil
}

func (r *memoryRepository) MarkReadByTypeAndSender(ctx context.Context, opts repository.ClearOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		n := &r.records[i]
		if n.RecipientID != opts.RecipientID || n.Type != opts.Type || n.Status != model.NotificationStatusActive {
			continue
		}
		if opts.SenderID != "" && (n.SenderID == nil || *n.SenderID != opts.SenderID) {
			continue
		}
		n.IsRead = true
	}
	return nil
}

func TestCreateValidation(t *testing.T) {
	uc := New(&testLogger{}, &memoryRepository{})
	ctx := context.Background()

	_, err := uc.Create(ctx, notification.CreateInput{
		Type:    model.NotificationTypeNewChat,
		Title:   "New message",
		Message: "hello",
	})
	assert.ErrorIs(t, err, notification.ErrInvalidRecipient)

	_, err = uc.Create(ctx, notification.CreateInput{
		RecipientID: "user-1",
		Type:        model.NotificationType("push"),
	})
	assert.ErrorIs(t, err, notification.ErrInvalidType)

	created, err := uc.Create(ctx, notification.CreateInput{
		RecipientID: "user-1",
		SenderID:    "user-2",
		Type:        model.NotificationTypeNewChat,
		Title:       "New message",
		Message:     "hello",
		Data:        map[string]any{model.DataKeyMessageID: "msg-1"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.SenderID)
	assert.Equal(t, "user-2", *created.SenderID)
	assert.Equal(t, "msg-1", created.MessageID())
	assert.False(t, created.IsRead)
}

func TestListScopedToRecipient(t *testing.T) {
	repo := &memoryRepository{}
	uc := New(&testLogger{}, repo)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := uc.Create(ctx, notification.CreateInput{
			RecipientID: "alice",
			Type:        model.NotificationTypeNewChat,
			Message:     fmt.Sprintf("to alice %d", i),
		})
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, notification.CreateInput{
		RecipientID: "bob",
		Type:        model.NotificationTypeSystemAlert,
		Message:     "to bob",
	})
	require.NoError(t, err)

	out, err := uc.List(ctx, model.Scope{UserID: "alice"}, notification.ListInput{})
	require.NoError(t, err)
	assert.Len(t, out.Notifications, 5)
	assert.Equal(t, int64(5), out.UnreadCount)
	for _, n := range out.Notifications {
		assert.Equal(t, "alice", n.RecipientID)
	}

	// Newest first.
	for i := 1; i < len(out.Notifications); i++ {
		prev, cur := out.Notifications[i-1], out.Notifications[i]
		assert.False(t, prev.CreatedAt.Before(cur.CreatedAt))
	}
}

func TestListLimitAndTypeFilter(t *testing.T) {
	repo := &memoryRepository{}
	uc := New(&testLogger{}, repo)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		typ := model.NotificationTypeNewChat
		if i%3 == 0 {
			typ = model.NotificationTypeFriendRequest
		}
		_, err := uc.Create(ctx, notification.CreateInput{
			RecipientID: "alice",
			Type:        typ,
			Message:     fmt.Sprintf("msg %d", i),
		})
		require.NoError(t, err)
	}

	// Default limit applies when unset.
	out, err := uc.List(ctx, model.Scope{UserID: "alice"}, notification.ListInput{})
	require.NoError(t, err)
	assert.Len(t, out.Notifications, defaultListLimit)

	out, err = uc.List(ctx, model.Scope{UserID: "alice"}, notification.ListInput{
		Limit: 50,
		Types: []model.NotificationType{model.NotificationTypeFriendRequest},
	})
	require.NoError(t, err)
	assert.Len(t, out.Notifications, 10)
	for _, n := range out.Notifications {
		assert.Equal(t, model.NotificationTypeFriendRequest, n.Type)
	}

	_, err = uc.List(ctx, model.Scope{UserID: "alice"}, notification.ListInput{
		Types: []model.NotificationType{"bogus"},
	})
	assert.ErrorIs(t, err, notification.ErrInvalidType)
}

func TestMarkReadOwnership(t *testing.T) {
	repo := &memoryRepository{}
	uc := New(&testLogger{}, repo)
	ctx := context.Background()

	created, err := uc.Create(ctx, notification.CreateInput{
		RecipientID: "alice",
		Type:        model.NotificationTypeCompanyInvite,
		Message:     "join us",
	})
	require.NoError(t, err)

	// Another user cannot mark it read.
	err = uc.MarkRead(ctx, model.Scope{UserID: "mallory"}, created.ID)
	assert.ErrorIs(t, err, notification.ErrNotFound)

	unread, err := uc.UnreadCount(ctx, model.Scope{UserID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, uc.MarkRead(ctx, model.Scope{UserID: "alice"}, created.ID))

	// Marking read twice is idempotent.
	require.NoError(t, uc.MarkRead(ctx, model.Scope{UserID: "alice"}, created.ID))

	unread, err = uc.UnreadCount(ctx, model.Scope{UserID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	err = uc.MarkRead(ctx, model.Scope{UserID: "alice"}, "missing-id")
	assert.ErrorIs(t, err, notification.ErrNotFound)
}

func TestMarkByTypeAndSender(t *testing.T) {
	repo := &memoryRepository{}
	uc := New(&testLogger{}, repo)
	ctx := context.Background()

	senders := []string{"bob", "bob", "carol"}
	for _, s := range senders {
		_, err := uc.Create(ctx, notification.CreateInput{
			RecipientID: "alice",
			SenderID:    s,
			Type:        model.NotificationTypeNewChat,
			Message:     "ping",
		})
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, notification.CreateInput{
		RecipientID: "alice",
		SenderID:    "bob",
		Type:        model.NotificationTypeFriendRequest,
		Message:     "add me",
	})
	require.NoError(t, err)

	// Clearing the bob chat thread leaves carol's chat and bob's friend
	// request untouched.
	err = uc.MarkByTypeAndSender(ctx, model.Scope{UserID: "alice"}, notification.ClearInput{
		Type:     model.NotificationTypeNewChat,
		SenderID: "bob",
	})
	require.NoError(t, err)

	unread, err := uc.UnreadCount(ctx, model.Scope{UserID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)
}

// TestUnreadCountAlwaysDerived runs a randomized mix of creates and mark-read
// operations and checks after every step that the reported unread count
// matches a recount of the visible records. The count is computed, never
// maintained as a separate counter, so it can never drift.
func TestUnreadCountAlwaysDerived(t *testing.T) {
	repo := &memoryRepository{}
	uc := New(&testLogger{}, repo)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	sc := model.Scope{UserID: "alice"}

	types := []model.NotificationType{
		model.NotificationTypeNewChat,
		model.NotificationTypeFriendRequest,
		model.NotificationTypeCompanyInvite,
		model.NotificationTypeSystemAlert,
	}
	senders := []string{"bob", "carol", "dave"}
	var ids []string

	recount := func() int64 {
		rows, err := repo.List(ctx, repository.ListOptions{RecipientID: sc.UserID})
		require.NoError(t, err)
		var n int64
		for _, item := range rows {
			if !item.IsRead {
				n++
			}
		}
		return n
	}

	for step := 0; step < 300; step++ {
		switch rng.Intn(4) {
		case 0, 1: // bias toward creates so the set keeps growing
			created, err := uc.Create(ctx, notification.CreateInput{
				RecipientID: sc.UserID,
				SenderID:    senders[rng.Intn(len(senders))],
				Type:        types[rng.Intn(len(types))],
				Message:     fmt.Sprintf("msg %d", step),
			})
			require.NoError(t, err)
			ids = append(ids, created.ID)
		case 2:
			if len(ids) == 0 {
				continue
			}
			err := uc.MarkRead(ctx, sc, ids[rng.Intn(len(ids))])
			require.NoError(t, err)
		case 3:
			err := uc.MarkByTypeAndSender(ctx, sc, notification.ClearInput{
				Type:     types[rng.Intn(len(types))],
				SenderID: senders[rng.Intn(len(senders))],
			})
			require.NoError(t, err)
		}

		unread, err := uc.UnreadCount(ctx, sc)
		require.NoError(t, err)
		assert.Equal(t, recount(), unread, "step %d", step)
	}

	require.NoError(t, uc.MarkAllRead(ctx, sc))
	unread, err := uc.UnreadCount(ctx, sc)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}
