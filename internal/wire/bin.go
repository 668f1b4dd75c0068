package wire

import (
	"bytes"

	"github.com/XingguoTian/portus/internal/lang"
	"github.com/XingguoTian/portus/internal/u32"
)

func encodeInstr(buf *bytes.Buffer, in lang.Instr) {
	buf.WriteByte(byte(in.Op))
	encodeReg(buf, in.Res)
	encodeReg(buf, in.Left)
	encodeReg(buf, in.Right)
}

func decodeInstr(b []byte) (lang.Instr, int, error) {
	if len(b) < 1 {
		return lang.Instr{}, 0, newDecodeError("instruction", "short buffer for op code")
	}
	op := lang.Op(b[0])
	pos := 1

	res, n, err := decodeReg(b[pos:])
	if err != nil {
		return lang.Instr{}, 0, err
	}
	pos += n

	left, n, err := decodeReg(b[pos:])
	if err != nil {
		return lang.Instr{}, 0, err
	}
	pos += n

	right, n, err := decodeReg(b[pos:])
	if err != nil {
		return lang.Instr{}, 0, err
	}
	pos += n

	return lang.Instr{Res: res, Op: op, Left: left, Right: right}, pos, nil
}

// EncodeBin serializes bin as an instruction count (4 bytes LE) followed by
// each instruction in order. This is the payload carried by Install and
// ChangeProg messages.
func EncodeBin(bin *lang.Bin) []byte {
	var buf bytes.Buffer
	buf.Write(u32.LeBytes(uint32(len(bin.Instrs))))
	for _, in := range bin.Instrs {
		encodeInstr(&buf, in)
	}
	return buf.Bytes()
}

// DecodeBin is the inverse of EncodeBin. For any bin produced by a
// successful compilation, DecodeBin(EncodeBin(bin)) equals bin.
func DecodeBin(b []byte) (*lang.Bin, error) {
	if len(b) < 4 {
		return nil, newDecodeError("bin", "short buffer for instruction count")
	}
	count := u32.FromLeBytes(b[:4])
	pos := 4

	instrs := make([]lang.Instr, 0, count)
	for i := uint32(0); i < count; i++ {
		in, n, err := decodeInstr(b[pos:])
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, in)
		pos += n
	}
	return &lang.Bin{Instrs: instrs}, nil
}
