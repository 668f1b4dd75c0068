package ipc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBackend_PreservesFrameOrder exercises the ordering guarantee:
// within a single substrate, frame N is pushed to the channel before
// frame N+1 is read.
func TestBackend_PreservesFrameOrder(t *testing.T) {
	sub := newFakeSubstrate()
	b, inbound := New(sub, nil)
	defer b.Close()

	want := [][]byte{[]byte("a"), []byte("b"), []byte("c"), []byte("d")}
	for _, frame := range want {
		sub.enqueue(frame)
	}

	for _, w := range want {
		got := <-inbound
		require.NotNil(t, got)
		assert.Equal(t, w, got)
	}
}
