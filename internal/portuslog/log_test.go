package portuslog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/XingguoTian/portus/internal/testing/require"
)

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)

	Info(log, "installed sid=%d", 4)
	Error(log, "decode failed: %s", "short read")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, 2, len(lines))
	require.Contains(t, lines[0], "info")
	require.Contains(t, lines[0], "installed sid=4")
	require.Contains(t, lines[1], "error")
	require.Contains(t, lines[1], "decode failed: short read")
}

func TestNilLoggerIsNoop(t *testing.T) {
	Info(nil, "should not panic")
	Error(nil, "should not panic")
}
