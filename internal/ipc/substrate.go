// Package ipc implements the substrate-agnostic blocking backend: one
// receive goroutine fans frames from a Substrate into a consumer channel,
// and a shared Backend handle exposes a blocking Send.
package ipc

// Substrate is the transport a Backend sends and receives frames over.
// Implementations must support concurrent Send and Recv from different
// goroutines.
type Substrate interface {
	// Send blocks until msg has been written to addr (if the substrate is
	// addressed) or to its single peer (if not).
	Send(addr *Addr, msg []byte) error
	// Recv blocks until a frame is available, writes it into buf, and
	// returns the number of bytes written.
	Recv(buf []byte) (int, error)
	// Close releases the substrate's underlying resources and unblocks
	// any goroutine parked in Recv.
	Close() error
}

// Addr names a substrate-specific peer. A nil *Addr means the substrate's
// one fixed peer (e.g. a connected Unix socket).
type Addr struct {
	Network string
	Address string
}
