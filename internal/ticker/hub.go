package ticker

import (
	"cryptodesk/internal/platform/metrics"
	"sync"
)

const (
	EventConnected = "connected"
	EventUpdate    = "ticker_update"
)

// Event is one frame sent to subscribers.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

// Hub fans events out to subscribers. Publishing never blocks: a subscriber
// whose buffer is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	buffer int
}

type Subscription struct {
	hub    *Hub
	events chan Event
	once   sync.Once
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{subs: make(map[*Subscription]struct{}), buffer: buffer}
}

// Subscribe registers a subscriber whose first event is the connection ack.
// Past events are not replayed.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{hub: h, events: make(chan Event, h.buffer)}
	sub.events <- Event{Name: EventConnected, Data: map[string]bool{"ok": true}}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()
	metrics.TickerSubscribers.Set(float64(n))
	return sub
}

// Publish reports how many subscribers received ev.
func (h *Hub) Publish(ev Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for sub := range h.subs {
		select {
		case sub.events <- ev:
			delivered++
		default:
		}
	}
	return delivered
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close unsubscribes and closes the events channel. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		close(s.events)
		n := len(s.hub.subs)
		s.hub.mu.Unlock()
		metrics.TickerSubscribers.Set(float64(n))
	})
}
