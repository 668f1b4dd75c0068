package lang

import (
	"testing"

	"github.com/XingguoTian/portus/internal/testing/require"
)

// TestCompile_Scenarios checks a spread of canonical compiled shapes.
func TestCompile_Scenarios(t *testing.T) {
	t.Run("simple bind", func(t *testing.T) {
		bin, _, err := Compile([]byte(`
			(def (foo 0))
			(bind Flow.foo 4)
		`))
		require.NoError(t, err)
		require.Equal(t, &Bin{Instrs: []Instr{
			{Res: Perm(1, numLit(0)), Op: OpDef, Left: Perm(1, numLit(0)), Right: ImmNum(0)},
			{Res: Perm(1, numLit(0)), Op: OpBind, Left: Perm(1, numLit(0)), Right: ImmNum(4)},
		}}, bin)
	})

	t.Run("bind of arithmetic", func(t *testing.T) {
		bin, _, err := Compile([]byte(`
			(def (foo 0))
			(bind Flow.foo (+ 2 3))
		`))
		require.NoError(t, err)
		require.Equal(t, &Bin{Instrs: []Instr{
			{Res: Perm(1, numLit(0)), Op: OpDef, Left: Perm(1, numLit(0)), Right: ImmNum(0)},
			{Res: Tmp(0, NumType(nil)), Op: OpAdd, Left: ImmNum(2), Right: ImmNum(3)},
			{Res: Perm(1, numLit(0)), Op: OpBind, Left: Perm(1, numLit(0)), Right: Tmp(0, NumType(nil))},
		}}, bin)
	})

	t.Run("ewma patched, no explicit bind instr", func(t *testing.T) {
		bin, _, err := Compile([]byte(`
			(def (foo 0))
			(bind Flow.foo (ewma 2 SndRate))
		`))
		require.NoError(t, err)
		require.Equal(t, &Bin{Instrs: []Instr{
			{Res: Perm(1, numLit(0)), Op: OpDef, Left: Perm(1, numLit(0)), Right: ImmNum(0)},
			{Res: Perm(1, numLit(0)), Op: OpEwma, Left: ImmNum(2), Right: Const(7, NumType(nil))},
		}}, bin)
	})

	t.Run("if over comparison", func(t *testing.T) {
		bin, _, err := Compile([]byte(`
			(def (foo 100000000))
			(bind Flow.foo (if (< Rtt Flow.foo) Rtt))
		`))
		require.NoError(t, err)
		require.Equal(t, &Bin{Instrs: []Instr{
			{Res: Perm(1, numLit(100000000)), Op: OpDef, Left: Perm(1, numLit(100000000)), Right: ImmNum(100000000)},
			{Res: Tmp(0, BoolType(nil)), Op: OpLt, Left: Const(5, NumType(nil)), Right: Perm(1, numLit(100000000))},
			{Res: Perm(1, numLit(100000000)), Op: OpIf, Left: Tmp(0, BoolType(nil)), Right: Const(5, NumType(nil))},
		}}, bin)
	})

	t.Run("tmp indices reset across top-level expressions", func(t *testing.T) {
		bin, _, err := Compile([]byte(`
			(def (foo 0) (bar 0))
			(bind Flow.foo (+ (+ 1 2) 3))
			(bind Flow.bar (+ (+ 4 5) 6))
		`))
		require.NoError(t, err)
		require.Equal(t, &Bin{Instrs: []Instr{
			{Res: Perm(1, numLit(0)), Op: OpDef, Left: Perm(1, numLit(0)), Right: ImmNum(0)},
			{Res: Perm(2, numLit(0)), Op: OpDef, Left: Perm(2, numLit(0)), Right: ImmNum(0)},
			{Res: Tmp(0, NumType(nil)), Op: OpAdd, Left: ImmNum(1), Right: ImmNum(2)},
			{Res: Tmp(1, NumType(nil)), Op: OpAdd, Left: Tmp(0, NumType(nil)), Right: ImmNum(3)},
			{Res: Perm(1, numLit(0)), Op: OpBind, Left: Perm(1, numLit(0)), Right: Tmp(1, NumType(nil))},
			{Res: Tmp(0, NumType(nil)), Op: OpAdd, Left: ImmNum(4), Right: ImmNum(5)},
			{Res: Tmp(1, NumType(nil)), Op: OpAdd, Left: Tmp(0, NumType(nil)), Right: ImmNum(6)},
			{Res: Perm(2, numLit(0)), Op: OpBind, Left: Perm(2, numLit(0)), Right: Tmp(1, NumType(nil))},
		}}, bin)
	})

	t.Run("determinism", func(t *testing.T) {
		src := []byte(`
			(def (foo 0) (bar 0))
			(bind Flow.foo (+ (+ 1 2) 3))
			(bind Flow.bar (+ (+ 4 5) 6))
		`)
		bin1, _, err := Compile(src)
		require.NoError(t, err)
		bin2, _, err := Compile(src)
		require.NoError(t, err)
		require.Equal(t, bin1, bin2)
	})
}

func TestCompile_EwmaBindsLiteralOperands(t *testing.T) {
	bin, _, err := Compile([]byte(`
		(def (foo 0))
		(bind Flow.foo (ewma 2 3))
	`))
	require.NoError(t, err)
	require.False(t, bin.HasPlaceholder())
}

func TestCompile_Negative(t *testing.T) {
	t.Run("bind control op to tmp fails", func(t *testing.T) {
		_, _, err := Compile([]byte(`(:= tmp0 (if true 3))`))
		require.Error(t, err)
	})

	t.Run("undeclared name fails", func(t *testing.T) {
		_, _, err := Compile([]byte(`(bind Flow.undeclared 4)`))
		require.Error(t, err)
	})

	t.Run("type mismatch fails", func(t *testing.T) {
		_, _, err := Compile([]byte(`(+ true 3)`))
		require.Error(t, err)
	})

	t.Run("redeclared name fails", func(t *testing.T) {
		_, _, err := Compile([]byte(`(def (foo 0) (foo 1)) (bind Flow.foo 1)`))
		require.Error(t, err)
	})

	t.Run("unknown operator fails", func(t *testing.T) {
		_, _, err := Compile([]byte(`(frobnicate 1 2)`))
		require.Error(t, err)
	})

	t.Run("non-numeric initial value fails", func(t *testing.T) {
		_, _, err := Compile([]byte(`(def (foo true)) (bind Flow.foo 1)`))
		require.Error(t, err)
	})
}

func TestCompile_TmpResetProperty(t *testing.T) {
	// The highest Tmp index used in the Kth binding is at most the number
	// of Tmp allocations performed by that binding alone.
	src := []byte(`
		(def (foo 0) (bar 0) (baz 0))
		(bind Flow.foo (+ (+ 1 2) 3))
		(bind Flow.bar (+ 1 2))
		(bind Flow.baz (+ (+ (+ 1 2) 3) 4))
	`)
	prog, scope, err := Parse(src)
	require.NoError(t, err)

	for _, e := range prog.Exprs {
		scope.ClearTmps()
		instrs, _, err := lowerExpr(e, scope)
		require.NoError(t, err)
		maxTmp := -1
		for _, in := range instrs {
			for _, r := range []Reg{in.Res, in.Left, in.Right} {
				if r.Class == RegClassTmp && int(r.Index) > maxTmp {
					maxTmp = int(r.Index)
				}
			}
		}
		require.True(t, maxTmp < scope.TmpCount())
	}
}
