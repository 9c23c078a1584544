package api

import (
	"sync"
)

// Event is a push notification to external controllers.
type Event struct {
	Type      string `json:"type"`
	AnyHooked bool   `json:"any_hooked"`
}

// EventHookedChanged is raised on every edge of the any_hooked aggregate.
const EventHookedChanged = "HookedSourcesChanged"

// Hub fans events out to websocket subscribers. Slow subscribers drop
// events rather than stall the notifier.
type Hub struct {
	mu        sync.RWMutex
	listeners []chan Event
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe adds a listener channel.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 10)
	h.mu.Lock()
	h.listeners = append(h.listeners, ch)
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a listener channel.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, listener := range h.listeners {
		if listener == ch {
			h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
			close(ch)
			break
		}
	}
}

// BroadcastHooked pushes a HookedSourcesChanged event to all listeners.
func (h *Hub) BroadcastHooked(anyHooked bool) {
	ev := Event{Type: EventHookedChanged, AnyHooked: anyHooked}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, listener := range h.listeners {
		select {
		case listener <- ev:
		default:
			// Skip if channel is full
		}
	}
}
