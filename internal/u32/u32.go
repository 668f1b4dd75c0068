// Package u32 contains little-endian encoding helpers for uint32, shared by
// internal/wire so call sites don't reach for encoding/binary ad hoc.
package u32

import "encoding/binary"

// LeBytes encodes v as 4 little-endian bytes.
func LeBytes(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// FromLeBytes decodes the first 4 bytes of b as a little-endian uint32.
// Panics if b has fewer than 4 bytes; callers are expected to have already
// checked frame length.
func FromLeBytes(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}
