package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"signage-hub/internal/model"
	"signage-hub/pkg/log"
)

const sendBufferSize = 256

// Connection is one live transport session. It owns nothing but its own
// pumps; channel membership lives in the registry and is dropped wholesale
// when the read pump exits.
type Connection struct {
	uc *implUseCase

	conn *websocket.Conn

	// Opaque connection id, distinct from the user id: one user may hold
	// several connections (multiple tabs).
	id    string
	scope model.Scope

	// Buffered channel of outbound frames
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once

	logger log.Logger
}

// readPump pumps frames from the transport into the inbound dispatcher.
//
// There is at most one reader per connection: all reads happen on this
// goroutine, and inbound events for one connection are processed strictly
// in arrival order.
func (c *Connection) readPump() {
	defer func() {
		c.uc.hub.unregister <- c
		c.conn.Close()
	}()

	cfg := c.uc.wsCfg
	c.conn.SetReadLimit(cfg.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warnf(context.Background(), "WebSocket read error for user %s: %v", c.scope.UserID, err)
			}
			break
		}

		c.uc.handleInbound(context.Background(), c, message)
	}
}

// writePump pumps frames from the send buffer to the transport and keeps
// the connection alive with pings.
//
// There is at most one writer per connection: all writes happen on this
// goroutine.
func (c *Connection) writePump() {
	cfg := c.uc.wsCfg
	ticker := time.NewTicker(cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

// Close signals the pumps to stop. Safe to call more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}
