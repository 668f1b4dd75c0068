package ipc

import "net"

// UDPSubstrate is a datagram-oriented Substrate over net.UDPConn,
// standing in for a kernel netlink channel on platforms that don't
// expose one to user space.
type UDPSubstrate struct {
	conn *net.UDPConn
}

// NewUDPSubstrate binds a UDP socket at laddr. If raddr is non-nil, the
// socket is connected to it and Send's addr argument is ignored; otherwise
// every Send call must supply a destination.
func NewUDPSubstrate(laddr, raddr *net.UDPAddr) (*UDPSubstrate, error) {
	var conn *net.UDPConn
	var err error
	if raddr != nil {
		conn, err = net.DialUDP("udp", laddr, raddr)
	} else {
		conn, err = net.ListenUDP("udp", laddr)
	}
	if err != nil {
		return nil, newSubstrateError("udp: open", err)
	}
	return &UDPSubstrate{conn: conn}, nil
}

func (s *UDPSubstrate) Send(addr *Addr, msg []byte) error {
	if addr == nil || s.conn.RemoteAddr() != nil {
		_, err := s.conn.Write(msg)
		if err != nil {
			return newSubstrateError("udp: write", err)
		}
		return nil
	}
	raddr, err := net.ResolveUDPAddr("udp", addr.Address)
	if err != nil {
		return newSubstrateError("udp: resolve", err)
	}
	if _, err := s.conn.WriteToUDP(msg, raddr); err != nil {
		return newSubstrateError("udp: writeto", err)
	}
	return nil
}

func (s *UDPSubstrate) Recv(buf []byte) (int, error) {
	n, _, err := s.conn.ReadFromUDP(buf)
	if err != nil {
		return 0, newSubstrateError("udp: read", err)
	}
	return n, nil
}

func (s *UDPSubstrate) Close() error {
	if err := s.conn.Close(); err != nil {
		return newSubstrateError("udp: close", err)
	}
	return nil
}
