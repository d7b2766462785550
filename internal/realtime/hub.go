// Package realtime fans out collection snapshots to a user's live subscribers.
package realtime

import (
	"sync"

	"ridebook/internal/observability"
)

// Collections a user can subscribe to.
const (
	CollectionFavoriteDrivers   = "favoriteDrivers"
	CollectionFavoriteLocations = "favoriteLocations"
	CollectionSavedRoutes       = "savedRoutes"
)

const defaultBuffer = 16

// Message is a full snapshot of one collection for one user.
type Message struct {
	Collection string `json:"collection"`
	Docs       any    `json:"docs"`
}

// Subscriber receives snapshots for a single user.
type Subscriber struct {
	userID string
	send   chan Message
	once   sync.Once
}

// Messages returns the channel snapshots are delivered on. It is closed when the
// subscriber is removed from the hub.
func (s *Subscriber) Messages() <-chan Message {
	return s.send
}

// UserID returns the user the subscriber listens to.
func (s *Subscriber) UserID() string {
	return s.userID
}

func (s *Subscriber) close() {
	s.once.Do(func() { close(s.send) })
}

// Hub tracks subscribers per user.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscriber]struct{}
	closed bool
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscriber]struct{})}
}

// Subscribe registers a new subscriber for userID. A closed hub returns a
// subscriber whose channel is already closed.
func (h *Hub) Subscribe(userID string) *Subscriber {
	sub := &Subscriber{userID: userID, send: make(chan Message, defaultBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		sub.close()
		return sub
	}
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*Subscriber]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	observability.Subscribers.Inc()
	return sub
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call twice.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub)
}

func (h *Hub) removeLocked(sub *Subscriber) {
	set, ok := h.subs[sub.userID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.userID)
	}
	sub.close()
	observability.Subscribers.Dec()
}

// HasSubscribers reports whether anyone listens to userID.
func (h *Hub) HasSubscribers(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID]) > 0
}

// Publish delivers msg to every subscriber of userID without blocking. A
// subscriber whose buffer is full is dropped. Returns the number of deliveries.
func (h *Hub) Publish(userID string, msg Message) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for sub := range h.subs[userID] {
		select {
		case sub.send <- msg:
			delivered++
		default:
			h.removeLocked(sub)
		}
	}
	return delivered
}

// Close removes every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for _, set := range h.subs {
		for sub := range set {
			h.removeLocked(sub)
		}
	}
}
