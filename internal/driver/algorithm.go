package driver

import "github.com/XingguoTian/portus/internal/wire"

// Report is a Measure message decoded against the Scope of the program
// that produced it: positional fields resolved back to their declared
// permanent-register names.
type Report struct {
	Sid    uint32
	Fields map[string]uint64
}

// Algorithm is per-flow congestion-control state, created on Create and
// driven by Measure reports.
type Algorithm interface {
	// OnReport is called once per Measure frame addressed to this flow.
	OnReport(report Report)
}

// Factory constructs a new Algorithm instance for a flow that just
// opened, given the Control handle it should use to talk back to the
// datapath and the Create message that announced the flow.
type Factory interface {
	NewFlow(control *Control, create *wire.CreateMsg) Algorithm
}
