package wire

import (
	"bytes"

	"github.com/XingguoTian/portus/internal/lang"
	"github.com/XingguoTian/portus/internal/u64"
)

// encodeType writes t as: kind tag (1 byte), then, for Bool/Num, a
// has-literal flag (1 byte) and the literal itself if present. Name never
// reaches the wire — it is a parse-time-only tag that a compiled Bin's
// registers never carry (see Reg.GetType) — and None carries nothing more.
func encodeType(buf *bytes.Buffer, t lang.Type) {
	buf.WriteByte(byte(t.Kind))
	switch t.Kind {
	case lang.KindBool:
		if t.BoolVal != nil {
			buf.WriteByte(1)
			writeBool(buf, *t.BoolVal)
		} else {
			buf.WriteByte(0)
		}
	case lang.KindNum:
		if t.NumVal != nil {
			buf.WriteByte(1)
			buf.Write(u64.LeBytes(*t.NumVal))
		} else {
			buf.WriteByte(0)
		}
	case lang.KindName:
		panic("wire: compiler bug: Name type reached serialization")
	case lang.KindNone:
		// nothing more
	}
}

// decodeType returns the decoded Type and the number of bytes consumed
// from b.
func decodeType(b []byte) (lang.Type, int, error) {
	if len(b) < 1 {
		return lang.Type{}, 0, newDecodeError("type", "short buffer for type tag")
	}
	switch lang.Kind(b[0]) {
	case lang.KindBool:
		if len(b) < 2 {
			return lang.Type{}, 0, newDecodeError("type", "short buffer for bool literal flag")
		}
		if b[1] == 0 {
			return lang.BoolType(nil), 2, nil
		}
		if len(b) < 3 {
			return lang.Type{}, 0, newDecodeError("type", "short buffer for bool literal value")
		}
		v := b[2] != 0
		return lang.BoolType(&v), 3, nil
	case lang.KindNum:
		if len(b) < 2 {
			return lang.Type{}, 0, newDecodeError("type", "short buffer for num literal flag")
		}
		if b[1] == 0 {
			return lang.NumType(nil), 2, nil
		}
		if len(b) < 10 {
			return lang.Type{}, 0, newDecodeError("type", "short buffer for num literal value")
		}
		v := u64.FromLeBytes(b[2:10])
		return lang.NumType(&v), 10, nil
	case lang.KindNone:
		return lang.NoneType(), 1, nil
	default:
		return lang.Type{}, 0, newDecodeError("type", "unknown type tag %d", b[0])
	}
}

func writeBool(buf *bytes.Buffer, v bool) {
	if v {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

// encodeReg writes r as: class tag (1 byte), then a class-specific payload:
// ImmNum carries 8 bytes LE, ImmBool carries 1 byte, Const/Perm/Tmp carry
// a 1-byte index followed by an encoded Type, None carries nothing more.
func encodeReg(buf *bytes.Buffer, r lang.Reg) {
	buf.WriteByte(byte(r.Class))
	switch r.Class {
	case lang.RegClassImmNum:
		buf.Write(u64.LeBytes(r.ImmNum))
	case lang.RegClassImmBool:
		writeBool(buf, r.ImmBool)
	case lang.RegClassConst, lang.RegClassPerm, lang.RegClassTmp:
		buf.WriteByte(r.Index)
		encodeType(buf, r.Type)
	case lang.RegClassNone:
		// nothing more
	}
}

// decodeReg returns the decoded Reg and the number of bytes consumed.
func decodeReg(b []byte) (lang.Reg, int, error) {
	if len(b) < 1 {
		return lang.Reg{}, 0, newDecodeError("register", "short buffer for class tag")
	}
	class := lang.RegClass(b[0])
	switch class {
	case lang.RegClassImmNum:
		if len(b) < 9 {
			return lang.Reg{}, 0, newDecodeError("register", "short buffer for ImmNum")
		}
		return lang.ImmNum(u64.FromLeBytes(b[1:9])), 9, nil
	case lang.RegClassImmBool:
		if len(b) < 2 {
			return lang.Reg{}, 0, newDecodeError("register", "short buffer for ImmBool")
		}
		return lang.ImmBool(b[1] != 0), 2, nil
	case lang.RegClassConst, lang.RegClassPerm, lang.RegClassTmp:
		if len(b) < 2 {
			return lang.Reg{}, 0, newDecodeError("register", "short buffer for indexed register")
		}
		idx := b[1]
		t, n, err := decodeType(b[2:])
		if err != nil {
			return lang.Reg{}, 0, err
		}
		return buildReg(class, idx, t), 2 + n, nil
	case lang.RegClassNone:
		return lang.NoneReg(), 1, nil
	default:
		return lang.Reg{}, 0, newDecodeError("register", "unknown register class tag %d", b[0])
	}
}

func buildReg(class lang.RegClass, idx uint8, t lang.Type) lang.Reg {
	switch class {
	case lang.RegClassConst:
		return lang.Const(idx, t)
	case lang.RegClassPerm:
		return lang.Perm(idx, t)
	case lang.RegClassTmp:
		return lang.Tmp(idx, t)
	default:
		panic("wire: compiler bug: buildReg called with a non-indexed class")
	}
}
