package wire

import "bytes"

// Message is a decoded control frame, tagged by Kind with exactly one of
// its payload fields populated — the Go rendering of portus's
// `enum Msg { Cr(create::Msg), ... }` (original_source/src/serialize), since
// Go has no sum-type sugar.
type Message struct {
	Kind       Kind
	Create     *CreateMsg
	Measure    *MeasureMsg
	Install    *InstallMsg
	Update     *UpdateMsg
	ChangeProg *ChangeProgMsg
	Ready      *ReadyMsg
}

// rawMsg is the common shape every message kind reduces to before framing:
// a fixed-field area (the "u32 area") and a trailing byte payload whose
// length is implied by the frame length.
type rawMsg struct {
	kind    Kind
	sid     uint32
	fields  []byte
	trailer []byte
}

func (m rawMsg) encode() []byte {
	length := uint32(HeaderLength + len(m.fields) + len(m.trailer))
	var buf bytes.Buffer
	writeHeader(&buf, m.kind, length, m.sid)
	buf.Write(m.fields)
	buf.Write(m.trailer)
	return buf.Bytes()
}

// splitRawMsg reads a frame's header and slices out its fields/trailer
// regions, without yet interpreting them — the shared first step every
// per-kind decoder builds on.
func splitRawMsg(frame []byte, fieldsLen int) (rawMsg, error) {
	hdr, err := readHeader(frame)
	if err != nil {
		return rawMsg{}, err
	}
	if int(hdr.Length) > len(frame) {
		return rawMsg{}, newDecodeError("frame", "header claims length %d, buffer has %d bytes", hdr.Length, len(frame))
	}
	if hdr.Length < HeaderLength {
		return rawMsg{}, newDecodeError("frame", "header claims length %d, shorter than header size %d", hdr.Length, HeaderLength)
	}
	body := frame[HeaderLength:hdr.Length]
	if len(body) < fieldsLen {
		return rawMsg{}, newDecodeError("frame", "body too short for fixed fields: need %d, got %d", fieldsLen, len(body))
	}
	return rawMsg{
		kind:    hdr.Kind,
		sid:     hdr.Sid,
		fields:  body[:fieldsLen],
		trailer: body[fieldsLen:],
	}, nil
}

// EncodeMessage frames m, dispatching on its populated payload field.
func EncodeMessage(m Message) ([]byte, error) {
	switch m.Kind {
	case KindCreate:
		return m.Create.encode(), nil
	case KindMeasure:
		return m.Measure.encode(), nil
	case KindInstall:
		return m.Install.encode(KindInstall), nil
	case KindChangeProg:
		return m.ChangeProg.encode(), nil
	case KindUpdate:
		return m.Update.encode(), nil
	case KindReady:
		return m.Ready.encode(), nil
	default:
		return nil, newDecodeError("message", "unknown message kind %d", m.Kind)
	}
}

// DecodeMessage reads a frame's header to learn its kind, then dispatches
// to that kind's decoder.
func DecodeMessage(frame []byte) (Message, error) {
	hdr, err := readHeader(frame)
	if err != nil {
		return Message{}, err
	}
	switch hdr.Kind {
	case KindCreate:
		m, err := decodeCreateMsg(frame)
		return Message{Kind: KindCreate, Create: m}, err
	case KindMeasure:
		m, err := decodeMeasureMsg(frame)
		return Message{Kind: KindMeasure, Measure: m}, err
	case KindInstall:
		m, err := decodeInstallMsg(frame, KindInstall)
		return Message{Kind: KindInstall, Install: m}, err
	case KindChangeProg:
		m, err := decodeChangeProgMsg(frame)
		return Message{Kind: KindChangeProg, ChangeProg: m}, err
	case KindUpdate:
		m, err := decodeUpdateMsg(frame)
		return Message{Kind: KindUpdate, Update: m}, err
	case KindReady:
		m, err := decodeReadyMsg(frame)
		return Message{Kind: KindReady, Ready: m}, err
	default:
		return Message{}, newDecodeError("message", "unknown message kind %d", hdr.Kind)
	}
}
