package lang

// Instr is a single datapath instruction: (res, op, left, right).
type Instr struct {
	Res   Reg
	Op    Op
	Left  Reg
	Right Reg
}

// isPlaceholder reports whether this instruction's Res is the unpatched
// None sentinel a control op emits while awaiting a parent Bind.
func (i Instr) isPlaceholder() bool {
	return i.Res.Class == RegClassNone
}

// Bin is the compiled, linear instruction stream for a program: all Def
// instructions for user-declared permanents, then each top-level
// expression's lowered instructions in source order.
type Bin struct {
	Instrs []Instr
}

// HasPlaceholder reports whether any instruction's Res was never patched
// from None. A Bin in this state never leaves the compiler; the compiler
// asserts against it before returning.
func (b *Bin) HasPlaceholder() bool {
	for _, instr := range b.Instrs {
		if instr.isPlaceholder() {
			return true
		}
	}
	return false
}
