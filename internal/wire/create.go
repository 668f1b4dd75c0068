package wire

import (
	"bytes"
	"unicode/utf8"

	"github.com/XingguoTian/portus/internal/u32"
)

// createFieldsLen is the byte size of Create's fixed u32 area: init_cwnd,
// mss, src_ip, src_port, dst_ip, dst_port.
const createFieldsLen = 6 * 4

// CreateMsg announces that the datapath opened a new flow.
// CongAlg is a variable-length UTF-8 string occupying the frame's trailing
// bytes, grounded on original_source/src/serialize/create.rs.
type CreateMsg struct {
	Sid      uint32
	InitCwnd uint32
	Mss      uint32
	SrcIP    uint32
	SrcPort  uint32
	DstIP    uint32
	DstPort  uint32
	CongAlg  string
}

func (m *CreateMsg) encode() []byte {
	var fields bytes.Buffer
	fields.Write(u32.LeBytes(m.InitCwnd))
	fields.Write(u32.LeBytes(m.Mss))
	fields.Write(u32.LeBytes(m.SrcIP))
	fields.Write(u32.LeBytes(m.SrcPort))
	fields.Write(u32.LeBytes(m.DstIP))
	fields.Write(u32.LeBytes(m.DstPort))

	raw := rawMsg{kind: KindCreate, sid: m.Sid, fields: fields.Bytes(), trailer: []byte(m.CongAlg)}
	return raw.encode()
}

func decodeCreateMsg(frame []byte) (*CreateMsg, error) {
	raw, err := splitRawMsg(frame, createFieldsLen)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw.trailer) {
		return nil, newDecodeError("create", "cong_alg is not valid UTF-8")
	}
	f := raw.fields
	return &CreateMsg{
		Sid:      raw.sid,
		InitCwnd: u32.FromLeBytes(f[0:4]),
		Mss:      u32.FromLeBytes(f[4:8]),
		SrcIP:    u32.FromLeBytes(f[8:12]),
		SrcPort:  u32.FromLeBytes(f[12:16]),
		DstIP:    u32.FromLeBytes(f[16:20]),
		DstPort:  u32.FromLeBytes(f[20:24]),
		CongAlg:  string(raw.trailer),
	}, nil
}
