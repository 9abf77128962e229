package events

import (
	"sync"

	"github.com/andrescamacho/homestead-go/internal/domain/building"
)

// Handler reacts to one event. Handlers run on the publisher's goroutine.
type Handler func(event building.Event)

type subscription struct {
	names map[string]bool
	fn    Handler
}

// Bus is a synchronous observer list. Events reach subscribers in subscription order
// before Publish returns, so a placement event is always seen before the notification
// that follows it.
type Bus struct {
	mu   sync.RWMutex
	subs []subscription
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for the given event names, or for every event when none are given
func (b *Bus) Subscribe(fn Handler, names ...string) {
	sub := subscription{fn: fn}
	if len(names) > 0 {
		sub.names = make(map[string]bool, len(names))
		for _, n := range names {
			sub.names[n] = true
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, sub)
}

// Publish implements building.EventSink
func (b *Bus) Publish(event building.Event) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs...)
	b.mu.RUnlock()

	for _, sub := range subs {
		if sub.names == nil || sub.names[event.EventName()] {
			sub.fn(event)
		}
	}
}

// History keeps the most recent events for status reporting
type History struct {
	mu     sync.Mutex
	limit  int
	events []building.Event
}

// NewHistory creates a history holding at most limit events
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 100
	}
	return &History{limit: limit}
}

// Record is a Handler appending to the history
func (h *History) Record(event building.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	if len(h.events) > h.limit {
		h.events = h.events[len(h.events)-h.limit:]
	}
}

// Recent returns up to n most recent events, oldest first
func (h *History) Recent(n int) []building.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n <= 0 || n > len(h.events) {
		n = len(h.events)
	}
	return append([]building.Event(nil), h.events[len(h.events)-n:]...)
}
