package ipc

import (
	"sync/atomic"

	"github.com/XingguoTian/portus/internal/portuslog"
)

// recvBufSize is the staging buffer size for each receive iteration.
const recvBufSize = 1024

// inboundCap is deliberately large: a bounded-capacity, unbounded-in-practice
// channel, rather than an actually-unbounded one.
const inboundCap = 4096

// Backend owns a Substrate and a background receive loop that fans
// incoming frames into an inbound channel. All Backend methods are safe
// to call concurrently, and every value returned by New shares the same
// substrate, receive goroutine, and shutdown flag.
type Backend struct {
	sock    Substrate
	inbound chan []byte
	stopped atomic.Bool
	log     portuslog.Logger
}

// New wraps sock in a Backend, starts its receive loop, and returns the
// backend handle along with the receive side of its inbound channel. log
// may be nil, in which case receive errors are swallowed without being
// recorded anywhere: errors are always logged-and-swallowed, never
// propagated to a caller, and a nil logger only changes where the line
// goes, not whether the policy applies.
func New(sock Substrate, log portuslog.Logger) (*Backend, <-chan []byte) {
	b := &Backend{
		sock:    sock,
		inbound: make(chan []byte, inboundCap),
		log:     log,
	}
	go b.receiveLoop()
	return b, b.inbound
}

// Send performs a blocking send of msg to addr over the shared substrate.
func (b *Backend) Send(addr *Addr, msg []byte) error {
	if err := b.sock.Send(addr, msg); err != nil {
		return newSubstrateError("send", err)
	}
	return nil
}

// receiveLoop runs on its own goroutine for the lifetime of the Backend.
// The loop runs while NOT stopped, not while stopped — an inverted
// predicate here would mean the loop body never runs at all.
func (b *Backend) receiveLoop() {
	buf := make([]byte, recvBufSize)
	for !b.stopped.Load() {
		n, err := b.sock.Recv(buf)
		if err != nil {
			portuslog.Error(b.log, "ipc: recv: %v", err)
			continue
		}
		if n == 0 {
			continue
		}
		frame := make([]byte, n)
		copy(frame, buf[:n])
		select {
		case b.inbound <- frame:
		default:
			portuslog.Error(b.log, "ipc: inbound channel full, dropping frame")
		}
	}
	close(b.inbound)
}

// Close sets the shutdown flag and closes the underlying substrate.
// Setting the flag alone would leave a goroutine blocked in Recv pinned
// forever; closing the substrate here unblocks it so the
// receive loop's next iteration observes the flag and exits, closing the
// inbound channel behind it.
func (b *Backend) Close() error {
	b.stopped.Store(true)
	if err := b.sock.Close(); err != nil {
		return newSubstrateError("close", err)
	}
	return nil
}
