package ipc

import "net"

// UnixSubstrate is a stream-oriented Substrate over a connected
// net.UnixConn on a local-domain socket, used as a test/fallback
// transport when no kernel-native channel is available.
type UnixSubstrate struct {
	conn *net.UnixConn
}

// NewUnixSubstrate dials path as a SOCK_STREAM unix-domain socket.
func NewUnixSubstrate(path string) (*UnixSubstrate, error) {
	conn, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, newSubstrateError("unix: dial", err)
	}
	return &UnixSubstrate{conn: conn}, nil
}

// NewUnixSubstrateFromConn wraps an already-connected unix socket, e.g.
// one side of net.Pipe-like testing setups or a socket accepted by a
// listener.
func NewUnixSubstrateFromConn(conn *net.UnixConn) *UnixSubstrate {
	return &UnixSubstrate{conn: conn}
}

// Send writes msg to the substrate's single connected peer. addr is
// ignored: a stream socket has exactly one peer for its lifetime.
func (s *UnixSubstrate) Send(_ *Addr, msg []byte) error {
	if _, err := s.conn.Write(msg); err != nil {
		return newSubstrateError("unix: write", err)
	}
	return nil
}

func (s *UnixSubstrate) Recv(buf []byte) (int, error) {
	n, err := s.conn.Read(buf)
	if err != nil {
		return 0, newSubstrateError("unix: read", err)
	}
	return n, nil
}

func (s *UnixSubstrate) Close() error {
	if err := s.conn.Close(); err != nil {
		return newSubstrateError("unix: close", err)
	}
	return nil
}
