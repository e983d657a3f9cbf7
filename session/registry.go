package session

import (
	"sync"

	"github.com/hoysala26/multiplayer-gaming-server/game"
)

// Registry is the one broadly shared structure of the server: the set of all
// connected clients. It supports concurrent register/unregister/broadcast/
// claim from arbitrarily many connection goroutines. Iteration order is
// insertion order, which is also the matchmaking tie-break.
type Registry struct {
	mu      sync.RWMutex
	clients []*Client
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a client. A client already present is not added twice.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.clients {
		if existing == c {
			return
		}
	}
	r.clients = append(r.clients, c)
}

// Unregister removes a client. Removing an absent client is a no-op.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.clients {
		if existing == c {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return
		}
	}
}

// Snapshot returns the current clients in insertion order. The returned slice
// is a copy; mutating it does not affect the registry.
func (r *Registry) Snapshot() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Client, len(r.clients))
	copy(out, r.clients)
	return out
}

// Count returns the number of registered clients.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Broadcast sends a line to every registered client except exclude. Delivery
// is best-effort: a client whose socket has failed simply stops receiving.
func (r *Registry) Broadcast(line string, exclude *Client) {
	for _, c := range r.Snapshot() {
		if c != exclude {
			c.Send(line)
		}
	}
}

// FindAndClaimOpponent scans for an idle client waiting for the same game
// type and atomically claims it: the candidate's waiting state is cleared
// before it is returned, so no second requester can match it. The requester's
// own waiting state is cleared on success. Returns nil when nobody suitable
// is waiting; the caller then parks the requester.
func (r *Registry) FindAndClaimOpponent(requester *Client, t game.Type) *Client {
	for _, c := range r.Snapshot() {
		if c == requester {
			continue
		}
		if c.claimWaiting(t) {
			requester.cancelWaiting()
			return c
		}
	}
	return nil
}
