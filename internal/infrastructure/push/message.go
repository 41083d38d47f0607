package push

import (
	"time"

	"github.com/google/uuid"
)

// Well-known event names.
const (
	EventConnected = "connected"
	EventHeartbeat = "keepalive"
)

// Message is one unit of server-originated data delivered to connected
// clients: either an application event or a synthetic heartbeat. It carries
// no delivery guarantee; ordering is per-channel FIFO only.
type Message struct {
	ID    string    `json:"id"`
	Event string    `json:"event"`
	Data  any       `json:"data,omitempty"`
	Time  time.Time `json:"time"`
}

// NewMessage builds an application message with a fresh id.
func NewMessage(event string, data any) Message {
	return Message{
		ID:    uuid.NewString(),
		Event: event,
		Data:  data,
		Time:  time.Now().UTC(),
	}
}

func (m Message) IsHeartbeat() bool {
	return m.Event == EventHeartbeat
}

// heartbeatMessage carries no payload semantics beyond "connection alive".
func heartbeatMessage(now time.Time) Message {
	return Message{
		ID:    uuid.NewString(),
		Event: EventHeartbeat,
		Time:  now.UTC(),
	}
}
