package driver

import (
	"github.com/XingguoTian/portus/internal/ipc"
	"github.com/XingguoTian/portus/internal/lang"
	"github.com/XingguoTian/portus/internal/wire"
)

// Control is the per-flow handle a Driver gives an Algorithm instance, so
// the algorithm can install programs and send updates without holding the
// Driver or the Backend directly.
type Control struct {
	Sid     uint32
	addr    *ipc.Addr
	backend *ipc.Backend
	driver  *Driver
}

// Install compiles src, ships it to the datapath as an Install message
// tagged with a fresh program id, and records the Scope against this
// flow's sid so the Driver can decode future Measure reports against it.
func (c *Control) Install(src []byte) (progID uint32, scope *lang.Scope, err error) {
	bin, scope, err := lang.Compile(src)
	if err != nil {
		return 0, nil, err
	}
	progID = nextProgID()
	frame, err := wire.EncodeMessage(wire.Message{
		Kind:    wire.KindInstall,
		Install: &wire.InstallMsg{Sid: c.Sid, ProgID: progID, Bin: bin},
	})
	if err != nil {
		return 0, nil, err
	}
	if err := c.backend.Send(c.addr, frame); err != nil {
		return 0, nil, err
	}
	c.driver.setScope(c.Sid, scope)
	return progID, scope, nil
}

// ChangeProg behaves like Install but issues a ChangeProg message instead,
// for swapping an already-running flow's program without a new Create.
func (c *Control) ChangeProg(src []byte) (progID uint32, scope *lang.Scope, err error) {
	bin, scope, err := lang.Compile(src)
	if err != nil {
		return 0, nil, err
	}
	progID = nextProgID()
	frame, err := wire.EncodeMessage(wire.Message{
		Kind:       wire.KindChangeProg,
		ChangeProg: &wire.ChangeProgMsg{Sid: c.Sid, ProgID: progID, Bin: bin},
	})
	if err != nil {
		return 0, nil, err
	}
	if err := c.backend.Send(c.addr, frame); err != nil {
		return 0, nil, err
	}
	c.driver.setScope(c.Sid, scope)
	return progID, scope, nil
}

// Update pokes a batch of permanent-register values on the already
// installed program, without recompiling (e.g. adjusting an Ewma weight).
func (c *Control) Update(updates []wire.NamedUpdate) error {
	frame, err := wire.EncodeMessage(wire.Message{
		Kind:   wire.KindUpdate,
		Update: &wire.UpdateMsg{Sid: c.Sid, Updates: updates},
	})
	if err != nil {
		return err
	}
	return c.backend.Send(c.addr, frame)
}
