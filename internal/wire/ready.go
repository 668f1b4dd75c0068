package wire

// ReadyMsg announces that the datapath has finished initializing for sid
// and is ready to receive an Install. It carries no fields beyond the
// header.
type ReadyMsg struct {
	Sid uint32
}

func (m *ReadyMsg) encode() []byte {
	raw := rawMsg{kind: KindReady, sid: m.Sid}
	return raw.encode()
}

func decodeReadyMsg(frame []byte) (*ReadyMsg, error) {
	raw, err := splitRawMsg(frame, 0)
	if err != nil {
		return nil, err
	}
	return &ReadyMsg{Sid: raw.sid}, nil
}
