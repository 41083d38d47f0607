package push

import (
	"fmt"
	"time"
)

// OverflowPolicy selects what Offer does when a channel's queue is full.
type OverflowPolicy string

const (
	// RejectNew fails the offer and lets the hub evict the connection.
	RejectNew OverflowPolicy = "reject"
	// DropOldest discards the oldest queued message to make room.
	DropOldest OverflowPolicy = "drop-oldest"
)

const (
	DefaultKeepAliveInterval = 5 * time.Second
	DefaultChannelCapacity   = 64
)

// Config carries the externally supplied tuning knobs of the hub. It is
// validated once at startup; a bad value is fatal before any connection is
// served.
type Config struct {
	// KeepAliveInterval is the heartbeat period.
	KeepAliveInterval time.Duration
	// ChannelCapacity bounds each connection's outbound queue.
	ChannelCapacity int
	// Overflow is the queue-full policy applied by every channel.
	Overflow OverflowPolicy
}

func NewDefaultConfig() *Config {
	return &Config{
		KeepAliveInterval: DefaultKeepAliveInterval,
		ChannelCapacity:   DefaultChannelCapacity,
		Overflow:          RejectNew,
	}
}

func (c *Config) Validate() error {
	if c.KeepAliveInterval <= 0 {
		return fmt.Errorf("keep-alive interval must be positive, got %v", c.KeepAliveInterval)
	}
	if c.ChannelCapacity <= 0 {
		return fmt.Errorf("channel capacity must be positive, got %d", c.ChannelCapacity)
	}
	switch c.Overflow {
	case RejectNew, DropOldest:
	default:
		return fmt.Errorf("unknown overflow policy %q", c.Overflow)
	}
	return nil
}
