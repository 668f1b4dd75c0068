package driver

import (
	"sync"
	"testing"

	"github.com/XingguoTian/portus/internal/ipc"
	"github.com/XingguoTian/portus/internal/testing/require"
	"github.com/XingguoTian/portus/internal/wire"
)

// fakeSubstrate records every Send and never produces a Recv until closed;
// Dispatch is driven directly in these tests, not through a live receive
// loop.
type fakeSubstrate struct {
	mu     sync.Mutex
	sent   [][]byte
	closed chan struct{}
}

func newFakeSubstrate() *fakeSubstrate {
	return &fakeSubstrate{closed: make(chan struct{})}
}

func (f *fakeSubstrate) Send(_ *ipc.Addr, msg []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, append([]byte(nil), msg...))
	return nil
}

func (f *fakeSubstrate) Recv(_ []byte) (int, error) {
	<-f.closed
	return 0, nil
}

func (f *fakeSubstrate) Close() error {
	close(f.closed)
	return nil
}

func (f *fakeSubstrate) sentFrames() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent
}

type recordingAlgorithm struct {
	reports []Report
}

func (a *recordingAlgorithm) OnReport(r Report) {
	a.reports = append(a.reports, r)
}

type recordingFactory struct {
	installSrc string
	created    []*recordingAlgorithm
}

func (f *recordingFactory) NewFlow(control *Control, create *wire.CreateMsg) Algorithm {
	algo := &recordingAlgorithm{}
	f.created = append(f.created, algo)
	if f.installSrc != "" {
		_, _, err := control.Install([]byte(f.installSrc))
		if err != nil {
			panic(err)
		}
	}
	return algo
}

func TestDriver_CreateThenMeasure(t *testing.T) {
	sub := newFakeSubstrate()
	backend, _ := ipc.New(sub, nil)
	defer backend.Close()

	factory := &recordingFactory{installSrc: `(def (cwnd 10)) (bind cwnd (+ cwnd 1))`}
	d := New(factory, backend, nil, nil)

	createFrame, err := wire.EncodeMessage(wire.Message{
		Kind:   wire.KindCreate,
		Create: &wire.CreateMsg{Sid: 1, InitCwnd: 10, Mss: 1448, CongAlg: "reno"},
	})
	require.NoError(t, err)
	d.Dispatch(createFrame)

	require.Equal(t, 1, len(factory.created))
	require.Equal(t, 1, len(sub.sentFrames()))

	measureFrame, err := wire.EncodeMessage(wire.Message{
		Kind:    wire.KindMeasure,
		Measure: &wire.MeasureMsg{Sid: 1, Fields: []uint64{0, 11}},
	})
	require.NoError(t, err)
	d.Dispatch(measureFrame)

	algo := factory.created[0]
	require.Equal(t, 1, len(algo.reports))
	require.Equal(t, uint64(11), algo.reports[0].Fields["cwnd"])
}

func TestDriver_MeasureForUnknownSidIsDropped(t *testing.T) {
	sub := newFakeSubstrate()
	backend, _ := ipc.New(sub, nil)
	defer backend.Close()

	factory := &recordingFactory{}
	d := New(factory, backend, nil, nil)

	frame, err := wire.EncodeMessage(wire.Message{
		Kind:    wire.KindMeasure,
		Measure: &wire.MeasureMsg{Sid: 99, Fields: []uint64{1}},
	})
	require.NoError(t, err)
	d.Dispatch(frame) // must not panic
}

func TestDriver_MeasureBeforeInstallIsDropped(t *testing.T) {
	sub := newFakeSubstrate()
	backend, _ := ipc.New(sub, nil)
	defer backend.Close()

	factory := &recordingFactory{} // no install
	d := New(factory, backend, nil, nil)

	createFrame, err := wire.EncodeMessage(wire.Message{
		Kind:   wire.KindCreate,
		Create: &wire.CreateMsg{Sid: 2, CongAlg: "noop"},
	})
	require.NoError(t, err)
	d.Dispatch(createFrame)

	measureFrame, err := wire.EncodeMessage(wire.Message{
		Kind:    wire.KindMeasure,
		Measure: &wire.MeasureMsg{Sid: 2, Fields: []uint64{5}},
	})
	require.NoError(t, err)
	d.Dispatch(measureFrame)

	require.Equal(t, 0, len(factory.created[0].reports))
}

func TestDriver_DuplicateCreateReplacesPriorInstance(t *testing.T) {
	sub := newFakeSubstrate()
	backend, _ := ipc.New(sub, nil)
	defer backend.Close()

	factory := &recordingFactory{installSrc: `(def (x 1)) (bind x (+ x 1))`}
	d := New(factory, backend, nil, nil)

	createFrame, err := wire.EncodeMessage(wire.Message{
		Kind:   wire.KindCreate,
		Create: &wire.CreateMsg{Sid: 3, CongAlg: "reno"},
	})
	require.NoError(t, err)
	d.Dispatch(createFrame)
	d.Dispatch(createFrame)
	require.Equal(t, 2, len(factory.created))

	measureFrame, err := wire.EncodeMessage(wire.Message{
		Kind:    wire.KindMeasure,
		Measure: &wire.MeasureMsg{Sid: 3, Fields: []uint64{0, 2}},
	})
	require.NoError(t, err)
	d.Dispatch(measureFrame)

	require.Equal(t, 0, len(factory.created[0].reports))
	require.Equal(t, 1, len(factory.created[1].reports))
}
