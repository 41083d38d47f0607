package push

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"

	"go-event-push/internal/infrastructure/logger"
)

// ConnectHook runs exactly once per newly admitted connection, before the
// connection joins the registry, so an initial burst (e.g. a full-state
// snapshot) can be queued ahead of any broadcast traffic. A hook error
// aborts admission.
type ConnectHook func(ctx context.Context, ch *Channel) error

// Hub is the connection registry and broadcast/backpressure engine. It
// admits streaming connections, fans published messages out to every
// registered channel, evicts connections whose channel refuses an offer,
// and emits heartbeats on a fixed cadence.
type Hub struct {
	cfg       *Config
	registry  *registry
	logger    logger.Logger
	clock     clockwork.Clock
	onConnect ConnectHook

	running   bool
	runningMu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

type Option func(*Hub)

// WithConnectHook installs the per-connection admission hook.
func WithConnectHook(hook ConnectHook) Option {
	return func(h *Hub) { h.onConnect = hook }
}

// WithClock replaces the wall clock driving the keep-alive generator.
func WithClock(clock clockwork.Clock) Option {
	return func(h *Hub) { h.clock = clock }
}

// New builds a hub from cfg. A malformed configuration is rejected here,
// before the hub can serve any connection.
func New(cfg *Config, log logger.Logger, opts ...Option) (*Hub, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("push config: %w", err)
	}

	h := &Hub{
		cfg:      cfg,
		registry: newRegistry(),
		logger:   log.WithField("component", "push-hub"),
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Start launches the keep-alive generator and opens the hub for admission.
func (h *Hub) Start(ctx context.Context) error {
	h.runningMu.Lock()
	defer h.runningMu.Unlock()

	if h.running {
		return fmt.Errorf("hub is already running")
	}

	h.ctx, h.cancel = context.WithCancel(ctx)
	h.running = true

	go h.keepAliveLoop()

	h.logger.Infof("hub started, keep-alive interval %v, channel capacity %d, overflow %s",
		h.cfg.KeepAliveInterval, h.cfg.ChannelCapacity, h.cfg.Overflow)
	return nil
}

// Stop closes every live channel with a shutdown cause and stops the
// keep-alive generator. Safe to call more than once.
func (h *Hub) Stop(ctx context.Context) error {
	h.runningMu.Lock()
	defer h.runningMu.Unlock()

	if !h.running {
		return nil
	}

	h.cancel()

	for _, e := range h.registry.drain() {
		e.channel.Close(ErrShutdown)
	}

	h.running = false
	h.logger.Info("hub stopped")
	return nil
}

func (h *Hub) IsRunning() bool {
	h.runningMu.RLock()
	defer h.runningMu.RUnlock()
	return h.running
}

// Admit binds a new outbound channel to identity and registers it for
// broadcast traffic. The connect hook runs before registration. The caller
// attaches the returned channel to the streaming response and closes it when
// the transport goes away.
func (h *Hub) Admit(ctx context.Context, identity Identity) (*Channel, error) {
	if !h.IsRunning() {
		return nil, ErrNotRunning
	}
	if identity.RemoteAddr == "" {
		return nil, ErrInvalidIdentity
	}

	ch := newChannel(identity, h.cfg.ChannelCapacity, h.cfg.Overflow)

	if h.onConnect != nil {
		if err := h.onConnect(ctx, ch); err != nil {
			ch.Close(err)
			return nil, fmt.Errorf("connect hook: %w", err)
		}
	}

	if prev := h.registry.register(identity, ch); prev != nil {
		prev.Close(ErrSuperseded)
		h.logger.Warnf("connection %s superseded previous channel", identity)
	}

	go h.watch(ch)

	h.logger.Infof("connection %s admitted", identity)
	return ch, nil
}

// watch unregisters the connection once its completion signal fires. The
// unregister is guarded by channel identity so it cannot remove a
// replacement registered under the same remote address.
func (h *Hub) watch(ch *Channel) {
	<-ch.Done()
	if _, ok := h.registry.unregister(ch.Identity().Key(), ch); ok {
		if cause := ch.Err(); cause != nil {
			h.logger.Infof("connection %s closed: %v", ch.Identity(), cause)
		} else {
			h.logger.Infof("connection %s closed", ch.Identity())
		}
	}
}

// PushToAll offers msg to every channel present in the registry snapshot
// taken at call time. Fire and forget: delivery failures evict the failing
// connection and are never surfaced to the publisher.
func (h *Hub) PushToAll(msg Message) {
	for _, e := range h.registry.snapshot() {
		h.offer(e.channel, msg)
	}
}

// PushTo offers msg to the single connection addressed by identity. No-op
// when the identity is not registered.
func (h *Hub) PushTo(identity Identity, msg Message) {
	ch, ok := h.registry.get(identity.Key())
	if !ok {
		return
	}
	h.offer(ch, msg)
}

func (h *Hub) offer(ch *Channel, msg Message) {
	if err := ch.Offer(msg); err != nil {
		h.evict(ch, err)
	}
}

// evict removes a connection whose offer failed. One broken client is
// dropped; nothing propagates to the publisher or to other connections.
func (h *Hub) evict(ch *Channel, cause error) {
	ch.Close(cause)
	if _, ok := h.registry.unregister(ch.Identity().Key(), ch); ok {
		h.logger.Warnf("evicting connection %s: %v", ch.Identity(), cause)
	}
}

// HasConnections reports whether publishing work is worth doing.
func (h *Hub) HasConnections() bool {
	return !h.registry.isEmpty()
}

func (h *Hub) ConnectionCount() int {
	return h.registry.len()
}

func (h *Hub) Contains(identity Identity) bool {
	return h.registry.contains(identity.Key())
}

// keepAliveLoop offers a heartbeat to every registered channel on each tick,
// independent of application traffic. Heartbeats ride each channel's
// coalescing lane, so a slow reader collapses pending heartbeats to one and
// a full application queue never suppresses the liveness signal.
func (h *Hub) keepAliveLoop() {
	ticker := h.clock.NewTicker(h.cfg.KeepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			hb := heartbeatMessage(h.clock.Now())
			for _, e := range h.registry.snapshot() {
				e.channel.offerHeartbeat(hb)
			}
		case <-h.ctx.Done():
			return
		}
	}
}
