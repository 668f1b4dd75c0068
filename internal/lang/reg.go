package lang

import "fmt"

// RegClass tags a Reg's addressing mode.
type RegClass int

const (
	RegClassImmNum RegClass = iota
	RegClassImmBool
	RegClassConst
	RegClassPerm
	RegClassTmp
	// RegClassNone is the sentinel class: legal only as the intermediate
	// result of If/!If/Ewma awaiting a parent Bind to patch it in, or on
	// the wire if a lowering bug fails to do so (see Instr.isPlaceholder).
	RegClassNone
)

// NumPrimitives is the number of read-only measurement primitives the
// datapath exposes, indices 0..7: Ack, Ecn, Loss, Mss, RcvRate, Rtt,
// SndCwnd, SndRate, in that alphabetical order.
const NumPrimitives = 8

// Reg is a tagged value addressing a location in the datapath VM.
type Reg struct {
	Class   RegClass
	Index   uint8 // meaningful for Const, Perm, Tmp
	ImmNum  uint64
	ImmBool bool
	Type    Type // meaningful for Const, Perm, Tmp
}

func ImmNum(n uint64) Reg        { return Reg{Class: RegClassImmNum, ImmNum: n} }
func ImmBool(b bool) Reg         { return Reg{Class: RegClassImmBool, ImmBool: b} }
func Const(i uint8, t Type) Reg  { return Reg{Class: RegClassConst, Index: i, Type: t} }
func Perm(i uint8, t Type) Reg   { return Reg{Class: RegClassPerm, Index: i, Type: t} }
func Tmp(i uint8, t Type) Reg    { return Reg{Class: RegClassTmp, Index: i, Type: t} }
func NoneReg() Reg               { return Reg{Class: RegClassNone} }

// GetType returns the Type this register carries; every register addresses
// a known type, with Imm registers synthesizing a literal Type from their
// immediate value.
func (r Reg) GetType() Type {
	switch r.Class {
	case RegClassImmNum:
		return numLit(r.ImmNum)
	case RegClassImmBool:
		return boolLit(r.ImmBool)
	case RegClassConst, RegClassPerm, RegClassTmp:
		return r.Type
	default:
		return NoneType()
	}
}

// IsNum reports whether this register's type is Num, the precondition for
// arithmetic and comparison operands.
func (r Reg) IsNum() bool { return r.GetType().Kind == KindNum }

func (r Reg) String() string {
	switch r.Class {
	case RegClassImmNum:
		return fmt.Sprintf("ImmNum(%d)", r.ImmNum)
	case RegClassImmBool:
		return fmt.Sprintf("ImmBool(%v)", r.ImmBool)
	case RegClassConst:
		return fmt.Sprintf("Const(%d,%s)", r.Index, r.Type)
	case RegClassPerm:
		return fmt.Sprintf("Perm(%d,%s)", r.Index, r.Type)
	case RegClassTmp:
		return fmt.Sprintf("Tmp(%d,%s)", r.Index, r.Type)
	default:
		return "None"
	}
}
