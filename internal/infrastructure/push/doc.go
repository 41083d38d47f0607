// Package push is the connection registry and broadcast engine behind the
// streaming endpoints. It admits long-lived client connections, binds each
// one to a bounded outbound channel, fans published messages out to every
// registered channel, and emits keep-alive signals on a fixed cadence.
//
// Backpressure is drop-the-connection: a channel that refuses an offer
// (queue full or already closed) gets its connection evicted so a single
// slow client can never stall delivery to the rest. Delivery is best effort,
// per-channel FIFO, with no replay of missed messages.
package push
