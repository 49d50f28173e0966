package usecase

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"signage-hub/internal/hub"
)

func testConn(id string) *Connection {
	return &Connection{
		id:   id,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

func TestRegistryJoinIdempotent(t *testing.T) {
	r := newRegistry()
	c := testConn("c1")
	ch := hub.CompanyChannel("acme")

	r.join(c, ch)
	r.join(c, ch)

	members := r.membersOf(ch)
	assert.Len(t, members, 1)
	assert.Same(t, c, members[0])
}

func TestRegistryJoinInvalidChannelIsNoop(t *testing.T) {
	r := newRegistry()
	c := testConn("c1")

	r.join(c, hub.CompanyChannel(""))
	r.join(c, hub.Channel{Kind: "job", ID: "1"})
	r.join(nil, hub.CompanyChannel("acme"))

	assert.Equal(t, 0, r.channelCount())
	assert.Empty(t, r.membersOf(hub.CompanyChannel("acme")))
}

func TestRegistryLeaveIdempotent(t *testing.T) {
	r := newRegistry()
	c := testConn("c1")
	ch := hub.UserChannel("u1")

	r.join(c, ch)
	r.leave(c, ch)
	r.leave(c, ch)

	assert.Empty(t, r.membersOf(ch))
	assert.Equal(t, 0, r.channelCount())
}

func TestRegistryDisconnectCleanup(t *testing.T) {
	r := newRegistry()
	c := testConn("c1")
	other := testConn("c2")

	a := hub.UserChannel("u1")
	b := hub.CompanyChannel("acme")
	s := hub.ScreenChannel("s1")

	// Interleave c's joins with another connection's joins and leaves.
	r.join(c, a)
	r.join(other, a)
	r.join(c, b)
	r.join(other, b)
	r.leave(other, a)
	r.join(c, s)
	r.join(other, s)

	r.onDisconnect(c)

	for _, ch := range []hub.Channel{a, b, s} {
		for _, m := range r.membersOf(ch) {
			assert.NotSame(t, c, m, "channel %s still contains disconnected connection", ch)
		}
	}

	// The other connection's memberships are untouched.
	assert.Len(t, r.membersOf(b), 1)
	assert.Len(t, r.membersOf(s), 1)
	assert.Empty(t, r.membersOf(a))

	// Disconnecting again is a no-op.
	r.onDisconnect(c)
}

func TestRegistryConcurrentJoins(t *testing.T) {
	r := newRegistry()
	ch := hub.CompanyChannel("acme")

	const n = 50
	conns := make([]*Connection, n)
	for i := range conns {
		conns[i] = testConn(fmt.Sprintf("c%d", i))
	}

	var wg sync.WaitGroup
	for _, c := range conns {
		wg.Add(1)
		go func(c *Connection) {
			defer wg.Done()
			r.join(c, ch)
			r.join(c, hub.UserChannel(c.id))
		}(c)
	}
	wg.Wait()

	assert.Len(t, r.membersOf(ch), n)

	var wg2 sync.WaitGroup
	for _, c := range conns[:n/2] {
		wg2.Add(1)
		go func(c *Connection) {
			defer wg2.Done()
			r.onDisconnect(c)
		}(c)
	}
	wg2.Wait()

	assert.Len(t, r.membersOf(ch), n/2)
}
