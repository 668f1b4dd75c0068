package ipc

import (
	"net"
	"testing"

	"github.com/XingguoTian/portus/internal/testing/require"
)

func TestUDPSubstrate_ConnectedSendRecvRoundTrip(t *testing.T) {
	loopback := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}

	serverLaddr := loopback
	serverRaw, err := net.ListenUDP("udp", serverLaddr)
	require.NoError(t, err)
	server := &UDPSubstrate{conn: serverRaw}
	defer server.Close()

	client, err := NewUDPSubstrate(loopback, server.conn.LocalAddr().(*net.UDPAddr))
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Send(nil, []byte("hello")))

	buf := make([]byte, 64)
	n, err := server.Recv(buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))
}

func TestUDPSubstrate_SendToExplicitAddr(t *testing.T) {
	loopback := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}

	server, err := NewUDPSubstrate(loopback, nil)
	require.NoError(t, err)
	defer server.Close()

	client, err := NewUDPSubstrate(loopback, nil)
	require.NoError(t, err)
	defer client.Close()

	addr := &Addr{Network: "udp", Address: server.conn.LocalAddr().String()}
	require.NoError(t, client.Send(addr, []byte("direct")))

	buf := make([]byte, 64)
	n, err := server.Recv(buf)
	require.NoError(t, err)
	require.Equal(t, "direct", string(buf[:n]))
}
