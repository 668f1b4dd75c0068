package driver

import "sync/atomic"

var progIDCounter atomic.Uint32

// nextProgID hands out a process-wide unique program id, so the datapath
// and an algorithm agree on which installed program a later Measure's
// fields correspond to.
func nextProgID() uint32 {
	return progIDCounter.Add(1)
}
