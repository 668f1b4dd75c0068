package wire

import (
	"bytes"

	"github.com/XingguoTian/portus/internal/u32"
	"github.com/XingguoTian/portus/internal/u64"
)

const measureFieldsLen = 4 // num_fields

// MeasureMsg reports the current values of a flow's permanent registers,
// in Scope permanent-declaration order, after a fold ran.
type MeasureMsg struct {
	Sid    uint32
	Fields []uint64
}

func (m *MeasureMsg) encode() []byte {
	var fields bytes.Buffer
	fields.Write(u32.LeBytes(uint32(len(m.Fields))))

	var trailer bytes.Buffer
	for _, v := range m.Fields {
		trailer.Write(u64.LeBytes(v))
	}

	raw := rawMsg{kind: KindMeasure, sid: m.Sid, fields: fields.Bytes(), trailer: trailer.Bytes()}
	return raw.encode()
}

func decodeMeasureMsg(frame []byte) (*MeasureMsg, error) {
	raw, err := splitRawMsg(frame, measureFieldsLen)
	if err != nil {
		return nil, err
	}
	count := u32.FromLeBytes(raw.fields)
	if len(raw.trailer) < int(count)*8 {
		return nil, newDecodeError("measure", "trailer too short for %d fields", count)
	}
	out := make([]uint64, count)
	for i := uint32(0); i < count; i++ {
		out[i] = u64.FromLeBytes(raw.trailer[i*8 : i*8+8])
	}
	return &MeasureMsg{Sid: raw.sid, Fields: out}, nil
}
