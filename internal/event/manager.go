// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/sprig/internal/logger"
)

// Handler is an event subscriber. It returns true if it consumed the event;
// dispatch currently runs every handler regardless.
type Handler func(e Event) bool

// Manager handles event subscriptions and synchronous dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.DebugTagf("event", "Event Manager: handler subscribed to %v", eventType)
}

// Dispatch sends an event to every handler registered for its type, in
// subscription order, on the caller's goroutine.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	m.mu.RLock()
	handlers := append([]Handler(nil), m.handlers[eventType]...) // handlers may subscribe during dispatch
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}
	logger.DebugTagf("event", "Event Manager: dispatching %v to %d handler(s)", eventType, len(handlers))

	e := Event{Type: eventType, Data: data}
	for _, handler := range handlers {
		handler(e)
	}
}
