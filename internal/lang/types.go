package lang

import "fmt"

// Kind tags a Type's variant, playing the role of the original's
// Type enum (Bool(Option<bool>), Num(Option<u64>), Name(String), None).
// Go has no sum-type sugar, so Kind plus a handful of optional payload
// fields stands in for the Rust enum.
type Kind int

const (
	KindBool Kind = iota
	KindNum
	KindName
	KindNone
)

// Type is a primitive value's type tag, optionally carrying the literal
// constant used at bind/def time (e.g. Num with NumVal pointing at 0 means
// "declared with initial value 0"; a nil NumVal means no literal is known).
type Type struct {
	Kind    Kind
	NumVal  *uint64
	BoolVal *bool
	Name    string
}

func NumType(v *uint64) Type   { return Type{Kind: KindNum, NumVal: v} }
func BoolType(v *bool) Type    { return Type{Kind: KindBool, BoolVal: v} }
func NameType(name string) Type { return Type{Kind: KindName, Name: name} }
func NoneType() Type           { return Type{Kind: KindNone} }

func numLit(n uint64) Type {
	return NumType(&n)
}

func boolLit(b bool) Type {
	return BoolType(&b)
}

func (t Type) String() string {
	switch t.Kind {
	case KindBool:
		if t.BoolVal != nil {
			return fmt.Sprintf("Bool(%v)", *t.BoolVal)
		}
		return "Bool(None)"
	case KindNum:
		if t.NumVal != nil {
			return fmt.Sprintf("Num(%d)", *t.NumVal)
		}
		return "Num(None)"
	case KindName:
		return fmt.Sprintf("Name(%s)", t.Name)
	default:
		return "None"
	}
}
