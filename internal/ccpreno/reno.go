// Package ccpreno is a worked example of the Algorithm contract: a
// Reno-style controller that installs foldProgram on every new flow,
// grows its congestion window additively on each report, and halves it
// when the program's isUrgent predicate fires on loss.
package ccpreno

import (
	"github.com/XingguoTian/portus/internal/driver"
	"github.com/XingguoTian/portus/internal/wire"
)

const initCwndSegments = 10

// Reno is one flow's congestion-control state.
type Reno struct {
	control     *driver.Control
	mss         uint64
	cwnd        uint64
	cwndPermIdx uint32
}

// Factory constructs a Reno instance per Create message, implementing
// driver.Factory.
type Factory struct{}

// NewFlow installs foldProgram on the new flow and seeds its congestion
// window at InitCwnd (falling back to initCwndSegments*Mss if the
// datapath reported no initial window).
func (Factory) NewFlow(control *driver.Control, create *wire.CreateMsg) driver.Algorithm {
	mss := uint64(create.Mss)
	if mss == 0 {
		mss = 1448
	}
	cwnd := uint64(create.InitCwnd)
	if cwnd == 0 {
		cwnd = initCwndSegments * mss
	}

	r := &Reno{control: control, mss: mss, cwnd: cwnd}

	_, scope, err := control.Install([]byte(foldProgram))
	if err != nil {
		// The program above is a fixed literal verified at development
		// time; a compile failure here means this package itself is
		// broken, not that the flow's input was bad.
		panic("ccpreno: foldProgram failed to compile: " + err.Error())
	}
	if reg, ok := scope.Get("Cwnd"); ok {
		r.cwndPermIdx = uint32(reg.Index)
	}
	return r
}

// OnReport implements the classic Reno response: halve the window on any
// reported loss, otherwise grow it by one segment's worth of bytes per
// window's worth of acked bytes (the standard congestion-avoidance
// approximation to +1 MSS per RTT).
func (r *Reno) OnReport(report driver.Report) {
	if report.Fields["isUrgent"] != 0 {
		r.cwnd /= 2
		if r.cwnd < r.mss {
			r.cwnd = r.mss
		}
	} else if acked := report.Fields["AckedBytes"]; acked > 0 && r.cwnd > 0 {
		r.cwnd += (r.mss * acked) / r.cwnd
	}

	_ = r.control.Update([]wire.NamedUpdate{{PermIndex: r.cwndPermIdx, Value: r.cwnd}})
}
