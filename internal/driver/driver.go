// Package driver implements a stream-id-keyed dispatcher: it owns a
// mapping from sid to Algorithm instance, dispatches inbound frames by
// (kind, sid), and is the one concrete collaborator between the IPC
// backend and an Algorithm implementation like internal/ccpreno.
package driver

import (
	"sync"

	"github.com/XingguoTian/portus/internal/ipc"
	"github.com/XingguoTian/portus/internal/lang"
	"github.com/XingguoTian/portus/internal/portuslog"
	"github.com/XingguoTian/portus/internal/wire"
)

type flowState struct {
	algo  Algorithm
	scope *lang.Scope
}

// Driver consumes frames from a Backend's inbound channel and drives
// per-flow Algorithm state machines. Unknown sids are dropped; a second
// Create for an already-known sid replaces the prior instance.
type Driver struct {
	mu      sync.Mutex
	factory Factory
	backend *ipc.Backend
	addr    *ipc.Addr
	log     portuslog.Logger
	flows   map[uint32]*flowState
}

// New builds a Driver that installs programs and sends updates through
// backend, addressed to addr (nil if the substrate has a single fixed
// peer). log may be nil.
func New(factory Factory, backend *ipc.Backend, addr *ipc.Addr, log portuslog.Logger) *Driver {
	return &Driver{
		factory: factory,
		backend: backend,
		addr:    addr,
		log:     log,
		flows:   make(map[uint32]*flowState),
	}
}

// Run ranges over inbound, dispatching each frame until the channel is
// closed (i.e. until the Backend that produced it shuts down). It is
// meant to be called from the driver's main goroutine.
func (d *Driver) Run(inbound <-chan []byte) {
	for frame := range inbound {
		d.Dispatch(frame)
	}
}

// Dispatch decodes a single frame and routes it by (kind, sid). A
// malformed frame is dropped and logged rather than propagated as an
// error.
func (d *Driver) Dispatch(frame []byte) {
	msg, err := wire.DecodeMessage(frame)
	if err != nil {
		portuslog.Error(d.log, "driver: dropping malformed frame: %v", err)
		return
	}
	switch msg.Kind {
	case wire.KindCreate:
		d.handleCreate(msg.Create)
	case wire.KindMeasure:
		d.handleMeasure(msg.Measure)
	case wire.KindReady:
		portuslog.Info(d.log, "driver: datapath ready for sid=%d", msg.Ready.Sid)
	default:
		portuslog.Error(d.log, "driver: unexpected inbound kind %s, dropping", msg.Kind)
	}
}

func (d *Driver) handleCreate(create *wire.CreateMsg) {
	control := &Control{Sid: create.Sid, addr: d.addr, backend: d.backend, driver: d}

	// The flow is registered before NewFlow runs, so a program the factory
	// installs from inside NewFlow has its Scope recorded on this flow.
	fs := &flowState{}
	d.mu.Lock()
	d.flows[create.Sid] = fs
	d.mu.Unlock()

	algo := d.factory.NewFlow(control, create)

	d.mu.Lock()
	fs.algo = algo
	d.mu.Unlock()

	portuslog.Info(d.log, "driver: created flow sid=%d cong_alg=%s", create.Sid, create.CongAlg)
}

func (d *Driver) handleMeasure(m *wire.MeasureMsg) {
	d.mu.Lock()
	fs, ok := d.flows[m.Sid]
	d.mu.Unlock()
	if !ok {
		portuslog.Error(d.log, "driver: measure for unknown sid=%d, dropping", m.Sid)
		return
	}
	if fs.scope == nil {
		portuslog.Error(d.log, "driver: measure for sid=%d before any program installed, dropping", m.Sid)
		return
	}

	fields := make(map[string]uint64, len(m.Fields))
	for i, v := range m.Fields {
		name, ok := fs.scope.PermName(uint8(i))
		if !ok {
			continue
		}
		fields[name] = v
	}
	fs.algo.OnReport(Report{Sid: m.Sid, Fields: fields})
}

func (d *Driver) setScope(sid uint32, scope *lang.Scope) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if fs, ok := d.flows[sid]; ok {
		fs.scope = scope
	}
}
