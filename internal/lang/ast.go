package lang

// exprKind tags an Expr node's variant: one of the three atom kinds, or a
// binary Sexp node.
type exprKind int

const (
	exprNum exprKind = iota
	exprBool
	exprName
	exprSexp
)

// Expr is an AST node. Atoms carry a literal or a name; compound nodes are
// always binary (`'(' op expr expr ')'`) — there is no unary operator in
// this language's surface syntax, so Expr never needs a placeholder slot at
// the AST level (only at the Reg level, for control operators awaiting a
// parent Bind; see compiler.go).
type Expr struct {
	kind    exprKind
	numVal  uint64
	boolVal bool
	name    string
	op      Op
	left    *Expr
	right   *Expr
}

func numExpr(n uint64) *Expr   { return &Expr{kind: exprNum, numVal: n} }
func boolExpr(b bool) *Expr    { return &Expr{kind: exprBool, boolVal: b} }
func nameExpr(s string) *Expr  { return &Expr{kind: exprName, name: s} }
func sexpExpr(op Op, l, r *Expr) *Expr {
	return &Expr{kind: exprSexp, op: op, left: l, right: r}
}

// Prog is the parsed program body: the def declarations have already been
// installed into the accompanying Scope by the time parsing finishes;
// Prog holds only the remaining top-level expressions, in source order.
type Prog struct {
	Exprs []*Expr
}
