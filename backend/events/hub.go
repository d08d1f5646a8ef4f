// Package events carries goal lifecycle notifications from the handlers that
// persist them to whatever real-time layer the server wires in. The hub is
// fire-and-forget: publishing never blocks on a slow subscriber and never
// fails the request that triggered it.
package events

import (
	"sync"
	"time"
	"zomgpow/backend/models"

	"github.com/google/uuid"
)

type EventType string

const (
	GoalCreated EventType = "goal.created"
	GoalUpdated EventType = "goal.updated"
)

type Event struct {
	Type       EventType   `json:"type"`
	ClassID    uint        `json:"class_id"`
	Goal       models.Goal `json:"goal"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// subscriberBuffer bounds how far a subscriber may fall behind before its
// events get dropped.
const subscriberBuffer = 16

type Hub struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]chan Event
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]chan Event)}
}

// Subscribe registers a new subscriber and returns its handle together with
// the channel events arrive on. The channel is closed on Unsubscribe or when
// the hub shuts down.
func (h *Hub) Subscribe() (uuid.UUID, <-chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New()
	ch := make(chan Event, subscriberBuffer)
	if h.closed {
		close(ch)
		return id, ch
	}
	h.subs[id] = ch
	return id, ch
}

func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Publish fans the event out to every subscriber. A subscriber whose buffer
// is full misses the event; goal state lives in the database, so a consumer
// can always re-read.
func (h *Hub) Publish(event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
