package push

import (
	"sync"
)

// Channel is the buffered, asynchronous delivery path between the broadcast
// engine and the network write side of one streaming connection. It is owned
// exclusively by the connection that created it.
//
// Application messages ride the bounded queue; heartbeats ride a separate
// single-slot lane so keep-alive traffic never competes with application
// messages for queue capacity. The transport writer merges both by selecting
// over Messages and Heartbeats until Done fires.
type Channel struct {
	identity Identity
	policy   OverflowPolicy

	// mu serializes concurrent offers so per-channel queue order matches
	// offer order even when broadcasts race.
	mu    sync.Mutex
	queue chan Message

	heartbeat chan Message

	done      chan struct{}
	closeOnce sync.Once
	cause     error
}

func newChannel(identity Identity, capacity int, policy OverflowPolicy) *Channel {
	return &Channel{
		identity:  identity,
		policy:    policy,
		queue:     make(chan Message, capacity),
		heartbeat: make(chan Message, 1),
		done:      make(chan struct{}),
	}
}

func (c *Channel) Identity() Identity {
	return c.identity
}

// Offer attempts to enqueue msg without blocking. It reports
// ErrChannelClosed after the completion signal has fired and ErrQueueFull
// when the bounded queue cannot accept the message under the channel's
// overflow policy. A failed offer is a delivery failure the hub answers with
// eviction.
func (c *Channel) Offer(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}

	select {
	case c.queue <- msg:
		return nil
	default:
	}

	if c.policy == DropOldest {
		select {
		case <-c.queue:
		default:
		}
		select {
		case c.queue <- msg:
			return nil
		default:
		}
	}
	return ErrQueueFull
}

// offerHeartbeat places msg on the heartbeat lane if the slot is free.
// A pending heartbeat already signals liveness, so an occupied slot simply
// coalesces; non-delivery of a heartbeat is never a failure.
func (c *Channel) offerHeartbeat(msg Message) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.heartbeat <- msg:
	default:
	}
}

// Messages is the application message stream consumed by the transport
// writer. The channel is never closed; consumers exit on Done.
func (c *Channel) Messages() <-chan Message {
	return c.queue
}

// Heartbeats is the keep-alive lane consumed by the transport writer.
func (c *Channel) Heartbeats() <-chan Message {
	return c.heartbeat
}

// Done is the completion signal. It fires exactly once, when either side
// closes the channel, and is terminal.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Close resolves the completion signal with the given cause. The first call
// wins; later calls are no-ops. A nil cause means a normal close.
func (c *Channel) Close(cause error) {
	c.closeOnce.Do(func() {
		c.cause = cause
		close(c.done)
	})
}

// Err reports the close cause once Done has fired, nil before that.
func (c *Channel) Err() error {
	select {
	case <-c.done:
		return c.cause
	default:
		return nil
	}
}

func (c *Channel) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Pending reports the number of queued application messages.
func (c *Channel) Pending() int {
	return len(c.queue)
}
