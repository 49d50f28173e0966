package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"signage-hub/internal/hub"
	"signage-hub/pkg/log"
)

// Hub owns every open connection and all channel membership. It is the
// single fan-out authority: every outbound event goes through emit, which
// delivers to the current members of one channel in emission order.
type Hub struct {
	registry *registry

	// Registered connections
	conns map[*Connection]struct{}
	mu    sync.RWMutex

	register   chan *Connection
	unregister chan *Connection

	maxConnections int

	messagesSent    atomic.Int64
	messagesDropped atomic.Int64

	logger log.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	running atomic.Bool
}

func newHub(logger log.Logger, maxConnections int) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		registry:       newRegistry(),
		conns:          make(map[*Connection]struct{}),
		register:       make(chan *Connection, 100),
		unregister:     make(chan *Connection, 100),
		maxConnections: maxConnections,
		logger:         logger,
		ctx:            ctx,
		cancel:         cancel,
		done:           make(chan struct{}),
	}
}

// run is the hub's main loop. Registration and teardown are serialized
// here; fan-out happens on the emitter's goroutine against a snapshot of
// the member set.
func (h *Hub) run() {
	h.running.Store(true)
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.running.Store(false)
			h.logger.Info(context.Background(), "Hub shutting down")
			h.closeAllConnections()
			return

		case conn := <-h.register:
			h.registerConnection(conn)

		case conn := <-h.unregister:
			h.unregisterConnection(conn)
		}
	}
}

func (h *Hub) registerConnection(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.maxConnections > 0 && len(h.conns) >= h.maxConnections {
		h.logger.Warnf(context.Background(), "Max connections reached, rejecting user: %s", conn.scope.UserID)
		go conn.Close()
		return
	}

	h.conns[conn] = struct{}{}
	h.logger.Infof(context.Background(), "Connection registered: %s (user: %s, total: %d)",
		conn.id, conn.scope.UserID, len(h.conns))
}

func (h *Hub) unregisterConnection(conn *Connection) {
	// Disconnect drops every membership with no further side effect:
	// no leave broadcast, no unread flush. This runs even for connections
	// that were rejected at capacity and never registered, since their
	// read pump may have processed joins before the rejection landed.
	h.registry.onDisconnect(conn)
	conn.Close()

	h.mu.Lock()
	if _, ok := h.conns[conn]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.conns, conn)
	total := len(h.conns)
	h.mu.Unlock()

	h.logger.Infof(context.Background(), "Connection unregistered: %s (user: %s, total: %d)",
		conn.id, conn.scope.UserID, total)
}

// emit delivers one encoded event to every current member of the channel.
// Delivery is best-effort: a member whose send buffer is full has the
// frame dropped rather than blocking the fan-out path.
func (h *Hub) emit(ch hub.Channel, message []byte) {
	for _, conn := range h.registry.membersOf(ch) {
		select {
		case conn.send <- message:
			h.messagesSent.Add(1)
		default:
			h.messagesDropped.Add(1)
			h.logger.Warnf(context.Background(), "Send buffer full, dropping frame: conn=%s channel=%s",
				conn.id, ch)
		}
	}
}

func (h *Hub) closeAllConnections() {
	h.mu.Lock()
	conns := make([]*Connection, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.conns = make(map[*Connection]struct{})
	h.mu.Unlock()

	for _, c := range conns {
		h.registry.onDisconnect(c)
		c.Close()
	}
}

// shutdown stops the run loop and waits for it to drain, bounded by ctx.
func (h *Hub) shutdown(ctx context.Context) error {
	h.running.Store(false)
	h.cancel()

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) stats() hub.HubStats {
	h.mu.RLock()
	active := len(h.conns)
	h.mu.RUnlock()

	return hub.HubStats{
		ActiveConnections: active,
		ActiveChannels:    h.registry.channelCount(),
		MessagesSent:      h.messagesSent.Load(),
		MessagesDropped:   h.messagesDropped.Load(),
	}
}
