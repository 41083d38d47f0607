// Package bus is the in-process event source the push hub subscribes to.
// Publishers hand it application events; every subscriber gets notified of
// each event in publish order.
package bus

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"go-event-push/internal/infrastructure/logger"
)

// Event is one application event as it arrives from upstream.
type Event struct {
	ID      string    `json:"id"`
	Topic   string    `json:"topic"`
	Payload any       `json:"payload,omitempty"`
	Time    time.Time `json:"time"`
}

func NewEvent(topic string, payload any) Event {
	return Event{
		ID:      uuid.NewString(),
		Topic:   topic,
		Payload: payload,
		Time:    time.Now().UTC(),
	}
}

// Handler receives one event notification. It must not block: the push side
// of the system is non-blocking end to end.
type Handler func(Event)

type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   logger.Logger
}

func New(log logger.Logger) *Bus {
	return &Bus{
		logger: log.WithField("component", "bus"),
	}
}

// Subscribe adds a handler for all subsequent events.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish notifies every subscriber of e, in the caller's goroutine so
// publish order is preserved per subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}

	b.logger.Debugf("event %s published on topic %s to %d subscribers", e.ID, e.Topic, len(handlers))
}
