package wire

import (
	"github.com/XingguoTian/portus/internal/lang"
	"github.com/XingguoTian/portus/internal/u32"
)

// ChangeProgMsg swaps the currently installed program for sid without
// waiting for a new Create, e.g. when an algorithm recompiles its fold
// after a congestion event changes what it needs to track.
type ChangeProgMsg struct {
	Sid    uint32
	ProgID uint32
	Bin    *lang.Bin
}

func (m *ChangeProgMsg) encode() []byte {
	raw := rawMsg{kind: KindChangeProg, sid: m.Sid, fields: u32.LeBytes(m.ProgID), trailer: EncodeBin(m.Bin)}
	return raw.encode()
}

func decodeChangeProgMsg(frame []byte) (*ChangeProgMsg, error) {
	raw, err := splitRawMsg(frame, progFieldsLen)
	if err != nil {
		return nil, err
	}
	bin, err := DecodeBin(raw.trailer)
	if err != nil {
		return nil, err
	}
	return &ChangeProgMsg{Sid: raw.sid, ProgID: u32.FromLeBytes(raw.fields), Bin: bin}, nil
}
