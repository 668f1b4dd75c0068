package wire

import (
	"bytes"

	"github.com/XingguoTian/portus/internal/u32"
	"github.com/XingguoTian/portus/internal/u64"
)

const updateFieldsLen = 4 // num_updates

// updateEntryLen is the trailer width per update: a permanent-register
// index (u32) plus the new value (u64).
const updateEntryLen = 4 + 8

// NamedUpdate pokes a single permanent register to a new value without a
// recompile, e.g. an algorithm adjusting an Ewma weight mid-flow.
type NamedUpdate struct {
	PermIndex uint32
	Value     uint64
}

// UpdateMsg carries a batch of per-flow register updates an algorithm
// issues back to the datapath.
type UpdateMsg struct {
	Sid     uint32
	Updates []NamedUpdate
}

func (m *UpdateMsg) encode() []byte {
	var fields bytes.Buffer
	fields.Write(u32.LeBytes(uint32(len(m.Updates))))

	var trailer bytes.Buffer
	for _, u := range m.Updates {
		trailer.Write(u32.LeBytes(u.PermIndex))
		trailer.Write(u64.LeBytes(u.Value))
	}

	raw := rawMsg{kind: KindUpdate, sid: m.Sid, fields: fields.Bytes(), trailer: trailer.Bytes()}
	return raw.encode()
}

func decodeUpdateMsg(frame []byte) (*UpdateMsg, error) {
	raw, err := splitRawMsg(frame, updateFieldsLen)
	if err != nil {
		return nil, err
	}
	count := u32.FromLeBytes(raw.fields)
	if len(raw.trailer) < int(count)*updateEntryLen {
		return nil, newDecodeError("update", "trailer too short for %d updates", count)
	}
	out := make([]NamedUpdate, count)
	for i := uint32(0); i < count; i++ {
		off := i * updateEntryLen
		out[i] = NamedUpdate{
			PermIndex: u32.FromLeBytes(raw.trailer[off : off+4]),
			Value:     u64.FromLeBytes(raw.trailer[off+4 : off+12]),
		}
	}
	return &UpdateMsg{Sid: raw.sid, Updates: out}, nil
}
