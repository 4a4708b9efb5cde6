package surface

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"go-surface/protocol"
)

type enabledCall struct {
	index   int
	enabled bool
}

type recordingRenderer struct {
	params  map[int]Slot
	calls   map[int]int
	enabled []enabledCall
	shown   []ListView
	hidden  int
	views   []View
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{params: map[int]Slot{}, calls: map[int]int{}}
}

func (r *recordingRenderer) SetParameter(i int, s Slot) {
	r.params[i] = s
	r.calls[i]++
}

func (r *recordingRenderer) SetDeviceEnabled(i int, on bool) {
	r.enabled = append(r.enabled, enabledCall{i, on})
}

func (r *recordingRenderer) ShowList(v ListView) { r.shown = append(r.shown, v) }
func (r *recordingRenderer) HideList()           { r.hidden++ }
func (r *recordingRenderer) Refresh(v View)      { r.views = append(r.views, v) }

func (r *recordingRenderer) lastList() ListView {
	if len(r.shown) == 0 {
		return ListView{}
	}
	return r.shown[len(r.shown)-1]
}

type fakeEncoders struct {
	calls []string
	pos   map[int]float32
}

func (e *fakeEncoders) SetMode(id int, mode EncoderMode, steps int) {
	e.calls = append(e.calls, fmt.Sprintf("mode %d %s %d", id, mode, steps))
}

func (e *fakeEncoders) SetPosition(id int, pos float32) {
	if e.pos == nil {
		e.pos = map[int]float32{}
	}
	e.pos[id] = pos
	e.calls = append(e.calls, fmt.Sprintf("pos %d %.3f", id, pos))
}

type sentLog struct {
	msgs []protocol.Message
}

func (l *sentLog) Send(m protocol.Message) error {
	l.msgs = append(l.msgs, m)
	return nil
}

func (l *sentLog) reset() { l.msgs = nil }

func (l *sentLog) last() protocol.Message {
	if len(l.msgs) == 0 {
		return nil
	}
	return l.msgs[len(l.msgs)-1]
}

func (l *sentLog) ids() []protocol.MessageID {
	out := make([]protocol.MessageID, len(l.msgs))
	for i, m := range l.msgs {
		out[i] = m.ID()
	}
	return out
}

type rig struct {
	s   *Surface
	r   *recordingRenderer
	enc *fakeEncoders
	out *sentLog
}

func newRig() *rig {
	r := newRecordingRenderer()
	enc := &fakeEncoders{}
	out := &sentLog{}
	return &rig{s: New(out, r, enc), r: r, enc: enc, out: out}
}

// host delivers m as an external host change.
func (g *rig) host(m protocol.Message) { g.s.Handle(m, protocol.OriginHost) }

// echo delivers m as a confirmation of a controller request.
func (g *rig) echo(m protocol.Message) { g.s.Handle(m, protocol.OriginEcho) }

func (g *rig) press(c Control) { g.s.HandleInput(Input{Control: c, Kind: Pressed}) }

func knob(i int, v float32, display string) protocol.RemoteControl {
	return protocol.RemoteControl{
		Index: uint8(i), Value: v, Name: fmt.Sprintf("K%d", i+1),
		Exists: true, Type: protocol.ParamKnob, Display: display,
	}
}

func button(i int, on bool) protocol.RemoteControl {
	c := protocol.RemoteControl{Index: uint8(i), Name: "Bypass", Exists: true, Type: protocol.ParamButton, Display: "Off"}
	if on {
		c.Value, c.Display = 1, "On"
	}
	return c
}

func choice(i int, options []string, idx int) protocol.RemoteControl {
	return protocol.RemoteControl{
		Index: uint8(i), Name: "Mode", Exists: true, Type: protocol.ParamList,
		OptionNames: options, OptionIndex: uint8(idx), DiscreteCount: int16(len(options)),
		Value:   float32(idx) / float32(len(options)-1),
		Display: options[idx],
	}
}

func missing(i int) protocol.RemoteControl {
	return protocol.RemoteControl{Index: uint8(i)}
}

// mixedPage is two knobs, a button, a three-way list and four empty slots.
func mixedPage() *protocol.DevicePageChange {
	return &protocol.DevicePageChange{
		Page: protocol.PageInfo{Index: 0, Count: 3, Name: "Main"},
		Controls: []protocol.RemoteControl{
			knob(0, 0.25, "25 %"),
			knob(1, 0.5, "50 %"),
			button(2, false),
			choice(3, []string{"LP", "BP", "HP"}, 0),
			missing(4), missing(5), missing(6), missing(7),
		},
	}
}

// encodeFrame runs m through a strict dispatcher and returns the frame
// that reached the sink.
func encodeFrame(t *testing.T, m protocol.Message) []byte {
	t.Helper()
	var frame []byte
	d := protocol.NewDispatcher(nil, protocol.SinkFunc(func(b []byte) error {
		frame = append([]byte(nil), b...)
		return nil
	}), protocol.WithStrict(true), protocol.WithBufferSize(8192))
	require.NoError(t, d.Send(m))
	return frame
}
