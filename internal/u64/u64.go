// Package u64 contains little-endian encoding helpers for uint64, shared by
// internal/wire so call sites don't reach for encoding/binary ad hoc.
package u64

import "encoding/binary"

// LeBytes encodes v as 8 little-endian bytes.
func LeBytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// FromLeBytes decodes the first 8 bytes of b as a little-endian uint64.
// Panics if b has fewer than 8 bytes; callers are expected to have already
// checked frame length.
func FromLeBytes(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}
