package push

import "errors"

var (
	// ErrQueueFull is reported by Offer when a channel's bounded queue
	// cannot accept another message under its overflow policy.
	ErrQueueFull = errors.New("outbound queue is full")

	// ErrChannelClosed is reported by Offer after the channel's completion
	// signal has fired.
	ErrChannelClosed = errors.New("outbound channel is closed")

	// ErrInvalidIdentity means a connection identity could not be derived
	// from the incoming request.
	ErrInvalidIdentity = errors.New("connection identity is incomplete")

	// ErrNotRunning is returned by hub operations before Start or after Stop.
	ErrNotRunning = errors.New("push hub is not running")

	// ErrSuperseded is the close cause for a channel replaced by a newer
	// connection from the same remote address.
	ErrSuperseded = errors.New("connection superseded by newer connection from same remote address")

	// ErrShutdown is the close cause applied to every live channel when the
	// hub stops.
	ErrShutdown = errors.New("hub shutting down")
)
