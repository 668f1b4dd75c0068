package lang

// loweredValue is the lowering-time intermediate result of an Expr: either
// a concrete register, or a signal that the expression is a control
// operator (Ewma/If/!If) awaiting a parent Bind to patch its placeholder
// register in.
//
// The tag lives here, in the lowering pass, as a cleaner alternative to
// overloading Reg's None class for both "no value" and "awaiting bind";
// the emitted Instr still carries a RegClassNone res for any control
// instruction not yet patched — so a lowering bug that fails to patch one
// still round-trips through the wire format the same shape the source
// used, instead of silently producing a different encoding.
type loweredValue struct {
	reg      Reg
	awaiting bool
}

// Compile parses src and lowers it to bytecode in one call, combining
// Parse and CompileProgram.
func Compile(src []byte) (*Bin, *Scope, error) {
	prog, scope, err := Parse(src)
	if err != nil {
		return nil, nil, err
	}
	bin, err := CompileProgram(prog, scope)
	if err != nil {
		return nil, nil, err
	}
	return bin, scope, nil
}

// CompileProgram lowers an already-parsed Prog against its Scope into a
// Bin: Scope's Def instructions first, then each top-level expression's
// instructions in source order, with Tmp indices reset at each boundary.
func CompileProgram(p *Prog, scope *Scope) (*Bin, error) {
	instrs := append([]Instr{}, scope.DefInstrs()...)

	for _, e := range p.Exprs {
		scope.ClearTmps()
		exprInstrs, _, err := lowerExpr(e, scope)
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, exprInstrs...)
	}

	bin := &Bin{Instrs: instrs}
	if bin.HasPlaceholder() {
		// A correct lowering pass always patches a control op's res before
		// returning from the enclosing Bind; reaching this means the
		// compiler itself has a bug, not that the source program is bad.
		panic("lang: compiler bug: unpatched control-op placeholder left in Bin")
	}
	return bin, nil
}

// lowerExpr performs a left-first recursive descent over e, returning the
// instructions needed to evaluate it and the register (or awaiting-bind
// signal) holding its result.
func lowerExpr(e *Expr, scope *Scope) ([]Instr, loweredValue, error) {
	switch e.kind {
	case exprNum:
		return nil, loweredValue{reg: ImmNum(e.numVal)}, nil
	case exprBool:
		return nil, loweredValue{reg: ImmBool(e.boolVal)}, nil
	case exprName:
		reg, ok := scope.Get(e.name)
		if !ok {
			return nil, loweredValue{}, newTypeError("name resolution", "unknown name %q", e.name)
		}
		return nil, loweredValue{reg: reg}, nil
	case exprSexp:
		return lowerSexp(e, scope)
	default:
		panic("lang: compiler bug: unknown expr kind")
	}
}

func lowerSexp(e *Expr, scope *Scope) ([]Instr, loweredValue, error) {
	leftInstrs, left, err := lowerExpr(e.left, scope)
	if err != nil {
		return nil, loweredValue{}, err
	}
	rightInstrs, right, err := lowerExpr(e.right, scope)
	if err != nil {
		return nil, loweredValue{}, err
	}
	instrs := append(leftInstrs, rightInstrs...)

	switch {
	case e.op.isArithmetic():
		if !left.reg.IsNum() {
			return nil, loweredValue{}, newTypeError(e.op.String(), "expected Num, got %s", left.reg.GetType())
		}
		if !right.reg.IsNum() {
			return nil, loweredValue{}, newTypeError(e.op.String(), "expected Num, got %s", right.reg.GetType())
		}
		t := scope.NewTmp(NumType(nil))
		instrs = append(instrs, Instr{Res: t, Op: e.op, Left: left.reg, Right: right.reg})
		return instrs, loweredValue{reg: t}, nil

	case e.op.isComparison():
		if !left.reg.IsNum() {
			return nil, loweredValue{}, newTypeError(e.op.String(), "expected Num, got %s", left.reg.GetType())
		}
		if !right.reg.IsNum() {
			return nil, loweredValue{}, newTypeError(e.op.String(), "expected Num, got %s", right.reg.GetType())
		}
		t := scope.NewTmp(BoolType(nil))
		instrs = append(instrs, Instr{Res: t, Op: e.op, Left: left.reg, Right: right.reg})
		return instrs, loweredValue{reg: t}, nil

	case e.op == OpBind:
		return lowerBind(instrs, left, right)

	case e.op == OpLet:
		// The left side was a naming side-effect only; its instructions
		// are still emitted (if it had any), but the expression's value is
		// the right side's.
		return instrs, right, nil

	case e.op.isControl():
		instrs = append(instrs, Instr{Res: NoneReg(), Op: e.op, Left: left.reg, Right: right.reg})
		return instrs, loweredValue{reg: NoneReg(), awaiting: true}, nil

	case e.op == OpDef:
		panic("lang: compiler bug: Def reached lowering in expression position")

	default:
		panic("lang: compiler bug: unhandled operator")
	}
}

func lowerBind(instrs []Instr, left, right loweredValue) ([]Instr, loweredValue, error) {
	switch {
	case left.reg.Class == RegClassPerm && right.awaiting:
		if len(instrs) == 0 || !instrs[len(instrs)-1].isPlaceholder() {
			panic("lang: compiler bug: expected a placeholder instruction to patch")
		}
		instrs[len(instrs)-1].Res = left.reg
		return instrs, loweredValue{reg: left.reg}, nil

	case left.reg.Class == RegClassTmp && right.awaiting:
		return nil, loweredValue{}, newTypeError("bind", "cannot bind a control instruction to a Tmp register")

	case left.reg.Class == RegClassPerm || left.reg.Class == RegClassTmp:
		instrs = append(instrs, Instr{Res: left.reg, Op: OpBind, Left: left.reg, Right: right.reg})
		return instrs, loweredValue{reg: left.reg}, nil

	default:
		return nil, loweredValue{}, newTypeError("bind", "bind target must be a mutable register, got %s", left.reg)
	}
}
