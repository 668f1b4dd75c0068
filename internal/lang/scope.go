package lang

import "strings"

// primitiveNames is the fixed, alphabetically-ordered vector of measurement
// primitives every datapath recognizes (Const indices 0..7).
var primitiveNames = [NumPrimitives]string{
	"Ack", "Ecn", "Loss", "Mss", "RcvRate", "Rtt", "SndCwnd", "SndRate",
}

// normalizeName strips the dotted namespace component source programs may
// write on a name, so a reference and its declaration resolve to the same
// entry regardless of which namespace the reference was written under.
// A primitive reference like Ack.bytes_acked names the primitive itself,
// with the suffix serving only as documentation, so it normalizes to the
// prefix; anything else (Flow.foo, Report.foo) names a permanent register
// declared under the bare suffix, so it normalizes to that suffix.
func normalizeName(name string) string {
	dot := strings.IndexByte(name, '.')
	if dot < 0 {
		return name
	}
	prefix := name[:dot]
	for _, p := range primitiveNames {
		if p == prefix {
			return prefix
		}
	}
	return name[dot+1:]
}

// Scope is the name environment: reserved primitive names, user-declared
// permanent registers, and scratch temporaries, fused with the allocator
// that hands out the next Tmp/Perm index.
type Scope struct {
	named     map[string]Reg
	primitive [NumPrimitives]Reg
	permanent []Reg
	permNames []string
	tmp       []Reg
}

// NewScope builds a Scope seeded with the 8 measurement primitives and the
// implicit isUrgent permanent register (Perm(0, Bool(None))).
func NewScope() *Scope {
	s := &Scope{
		named:     make(map[string]Reg),
		permanent: []Reg{Perm(0, BoolType(nil))},
		permNames: []string{"isUrgent"},
	}
	for i, name := range primitiveNames {
		s.primitive[i] = Const(uint8(i), NumType(nil))
		s.named[name] = s.primitive[i]
	}
	s.named["isUrgent"] = s.permanent[0]
	return s
}

// Get resolves a name against the scope, after stripping any dotted
// namespace component (Flow.foo, Report.foo, and Ack.bytes_acked all
// resolve the same as foo and Ack respectively). The bool is false if
// name is undeclared.
func (s *Scope) Get(name string) (Reg, bool) {
	r, ok := s.named[normalizeName(name)]
	return r, ok
}

// Declared reports whether name has already been bound in this scope,
// used to reject redeclaration with a descriptive error.
func (s *Scope) Declared(name string) bool {
	_, ok := s.named[normalizeName(name)]
	return ok
}

// DeclarePerm installs a new user-declared permanent register with a
// literal initial value, as a (def NAME initial) declaration does. It is
// a TypeError to redeclare an existing name.
func (s *Scope) DeclarePerm(name string, initial uint64) (Reg, error) {
	name = normalizeName(name)
	if s.Declared(name) {
		return Reg{}, newTypeError("def", "name already declared: %s", name)
	}
	idx := len(s.permanent)
	r := Perm(uint8(idx), numLit(initial))
	s.permanent = append(s.permanent, r)
	s.permNames = append(s.permNames, name)
	s.named[name] = r
	return r, nil
}

// PermName returns the declared name of the permanent register at idx
// (e.g. "isUrgent" for index 0), used by a driver to decode a Measure
// report's positional fields back into named values.
func (s *Scope) PermName(idx uint8) (string, bool) {
	if int(idx) >= len(s.permNames) {
		return "", false
	}
	return s.permNames[idx], true
}

// PermCount returns the number of declared permanent registers, including
// the implicit isUrgent register at index 0.
func (s *Scope) PermCount() int { return len(s.permanent) }

// NewTmp allocates the next scratch temporary of type t. Tmp indices are
// assigned in call order, which a left-first DFS over the AST makes fully
// deterministic.
func (s *Scope) NewTmp(t Type) Reg {
	idx := len(s.tmp)
	r := Tmp(uint8(idx), t)
	s.tmp = append(s.tmp, r)
	return r
}

// TmpCount returns the number of Tmp allocations performed since the last
// ClearTmps, used by the "Tmp reset" property test.
func (s *Scope) TmpCount() int { return len(s.tmp) }

// ClearTmps resets the scratch-temporary vector at each top-level
// expression boundary.
func (s *Scope) ClearTmps() { s.tmp = s.tmp[:0] }

// DefInstrs yields one Def instruction per permanent register whose type
// carries a literal (Num(Some) or Bool(Some)), skipping the implicit
// Perm(0, Bool(None)) isUrgent register. These instructions prefix the
// compiled program, in permanent-declaration order.
func (s *Scope) DefInstrs() []Instr {
	var defs []Instr
	for _, r := range s.permanent {
		switch {
		case r.Class == RegClassPerm && r.Type.Kind == KindNum && r.Type.NumVal != nil:
			defs = append(defs, Instr{Res: r, Op: OpDef, Left: r, Right: ImmNum(*r.Type.NumVal)})
		case r.Class == RegClassPerm && r.Type.Kind == KindBool && r.Type.BoolVal != nil:
			defs = append(defs, Instr{Res: r, Op: OpDef, Left: r, Right: ImmBool(*r.Type.BoolVal)})
		default:
			// implicit Bool(None) isUrgent register, or any other
			// permanent with no literal: no Def is emitted for it.
		}
	}
	return defs
}
