package wire

import (
	"github.com/XingguoTian/portus/internal/lang"
	"github.com/XingguoTian/portus/internal/u32"
)

const progFieldsLen = 4 // prog_id

// InstallMsg installs a freshly compiled fold/predicate program on a flow.
// ProgID lets the datapath and the algorithm agree on which installed
// program a later Measure's fields correspond to.
type InstallMsg struct {
	Sid    uint32
	ProgID uint32
	Bin    *lang.Bin
}

func (m *InstallMsg) encode(kind Kind) []byte {
	raw := rawMsg{kind: kind, sid: m.Sid, fields: u32.LeBytes(m.ProgID), trailer: EncodeBin(m.Bin)}
	return raw.encode()
}

func decodeInstallMsg(frame []byte, kind Kind) (*InstallMsg, error) {
	raw, err := splitRawMsg(frame, progFieldsLen)
	if err != nil {
		return nil, err
	}
	bin, err := DecodeBin(raw.trailer)
	if err != nil {
		return nil, err
	}
	return &InstallMsg{Sid: raw.sid, ProgID: u32.FromLeBytes(raw.fields), Bin: bin}, nil
}
