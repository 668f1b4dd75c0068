// Package wire implements the 3-field frame header, the register/instruction
// encoding for a compiled lang.Bin, and the control-message kinds that cross
// the IPC boundary.
package wire

import (
	"bytes"

	"github.com/XingguoTian/portus/internal/u32"
)

// Kind tags a control message's wire format.
type Kind uint8

const (
	KindCreate Kind = iota
	KindMeasure
	KindInstall
	KindUpdate
	KindChangeProg
	KindReady
)

func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "Create"
	case KindMeasure:
		return "Measure"
	case KindInstall:
		return "Install"
	case KindUpdate:
		return "Update"
	case KindChangeProg:
		return "ChangeProg"
	case KindReady:
		return "Ready"
	default:
		return "Unknown"
	}
}

// HeaderLength is the fixed size, in bytes, of every frame's header:
// kind (1 byte) + length (4 bytes LE) + stream id (4 bytes LE).
const HeaderLength = 1 + 4 + 4

// Header is the 3-field header shared by every frame: kind, the full frame
// length (including this header), and the stream id.
type Header struct {
	Kind   Kind
	Length uint32
	Sid    uint32
}

func writeHeader(buf *bytes.Buffer, kind Kind, length, sid uint32) {
	buf.WriteByte(byte(kind))
	buf.Write(u32.LeBytes(length))
	buf.Write(u32.LeBytes(sid))
}

func readHeader(b []byte) (Header, error) {
	if len(b) < HeaderLength {
		return Header{}, newDecodeError("header", "short frame: need %d bytes, got %d", HeaderLength, len(b))
	}
	return Header{
		Kind:   Kind(b[0]),
		Length: u32.FromLeBytes(b[1:5]),
		Sid:    u32.FromLeBytes(b[5:9]),
	}, nil
}
