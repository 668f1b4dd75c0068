package lang

import (
	"testing"

	"github.com/XingguoTian/portus/internal/testing/require"
)

func TestParse_InstallsDefsIntoScope(t *testing.T) {
	_, scope, err := Parse([]byte(`
		(def (foo 0) (bar 1))
		(bind Flow.foo 4)
	`))
	require.NoError(t, err)

	foo, ok := scope.Get("foo")
	require.True(t, ok)
	require.Equal(t, Perm(1, numLit(0)), foo)

	bar, ok := scope.Get("bar")
	require.True(t, ok)
	require.Equal(t, Perm(2, numLit(1)), bar)
}

func TestParse_NoDefBlock(t *testing.T) {
	prog, _, err := Parse([]byte(`(+ 1 2)`))
	require.NoError(t, err)
	require.Equal(t, 1, len(prog.Exprs))
}

func TestParse_NamesWithDots(t *testing.T) {
	prog, scope, err := Parse([]byte(`
		(def (Flow.foo 0))
		(bind Flow.foo (+ Ack.bytes_acked 1))
	`))
	require.NoError(t, err) // Ack.bytes_acked names the Ack primitive
	require.Equal(t, 1, len(prog.Exprs))
	_ = scope
}

func TestParse_Comments(t *testing.T) {
	prog, _, err := Parse([]byte(`
		; a leading comment
		(+ 1 2) ; trailing comment
	`))
	require.NoError(t, err)
	require.Equal(t, 1, len(prog.Exprs))
}

func TestParse_MalformedSyntax(t *testing.T) {
	_, _, err := Parse([]byte(`(+ 1 2`))
	require.Error(t, err)
}
