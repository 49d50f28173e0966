package usecase

import (
	"sync"

	"signage-hub/internal/hub"
)

// registry maps connections to the channels they joined. Membership is
// entirely in-memory: it is rebuilt from client join events after every
// reconnect and dropped wholesale on disconnect.
//
// Both directions are indexed so that disconnect cleanup walks only the
// channels the connection joined, never the full channel table.
type registry struct {
	mu sync.RWMutex

	// channel -> set of member connections
	members map[hub.Channel]map[*Connection]struct{}

	// connection -> set of joined channels
	joined map[*Connection]map[hub.Channel]struct{}
}

func newRegistry() *registry {
	return &registry{
		members: make(map[hub.Channel]map[*Connection]struct{}),
		joined:  make(map[*Connection]map[hub.Channel]struct{}),
	}
}

// join adds the connection to the channel. Idempotent; joining an invalid
// channel is a silent no-op, untrusted input never errors here.
func (r *registry) join(c *Connection, ch hub.Channel) {
	if c == nil || !ch.Valid() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[ch]; !ok {
		r.members[ch] = make(map[*Connection]struct{})
	}
	r.members[ch][c] = struct{}{}

	if _, ok := r.joined[c]; !ok {
		r.joined[c] = make(map[hub.Channel]struct{})
	}
	r.joined[c][ch] = struct{}{}
}

// leave removes the connection from the channel. Idempotent.
func (r *registry) leave(c *Connection, ch hub.Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if set, ok := r.members[ch]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(r.members, ch)
		}
	}
	if set, ok := r.joined[c]; ok {
		delete(set, ch)
		if len(set) == 0 {
			delete(r.joined, c)
		}
	}
}

// membersOf snapshots the current member set of a channel. The slice is a
// copy, safe to iterate without holding the lock.
func (r *registry) membersOf(ch hub.Channel) []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.members[ch]
	if !ok {
		return nil
	}
	conns := make([]*Connection, 0, len(set))
	for c := range set {
		conns = append(conns, c)
	}
	return conns
}

// onDisconnect removes the connection from every channel it joined, in
// O(channels joined). Unknown connections are a no-op.
func (r *registry) onDisconnect(c *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ch := range r.joined[c] {
		if set, ok := r.members[ch]; ok {
			delete(set, c)
			if len(set) == 0 {
				delete(r.members, ch)
			}
		}
	}
	delete(r.joined, c)
}

// channelCount returns the number of channels with at least one member.
func (r *registry) channelCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}
