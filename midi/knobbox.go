package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-surface/debug"
	"go-surface/surface"
)

// KnobBox is a generic MIDI encoder box. Relative CC turns and note
// presses become surface inputs; encoder positions are echoed back as
// absolute CC values for LED rings.
type KnobBox struct {
	id       string
	inPort   drivers.In
	knobs    KnobMap
	send     func(msg gomidi.Message) error
	stopFunc func()

	mu     sync.Mutex
	closed bool
	inputs chan surface.Input
	steps  [surface.ParameterCount + 1]int
}

// NewKnobBox opens the box. The output port is optional.
func NewKnobBox(id string, inPort drivers.In, outPort drivers.Out, knobs KnobMap) (*KnobBox, error) {
	kb := &KnobBox{
		id:     id,
		inPort: inPort,
		knobs:  knobs,
		inputs: make(chan surface.Input, 32),
	}

	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		kb.send = send
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			kb.receive(msg)
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		kb.stopFunc = stop
	}

	return kb, nil
}

func (kb *KnobBox) receive(msg gomidi.Message) {
	in, ok := kb.knobs.Decode(msg)
	if !ok {
		return
	}
	kb.mu.Lock()
	defer kb.mu.Unlock()
	if kb.closed {
		return
	}
	select {
	case kb.inputs <- in:
	default:
	}
}

func (kb *KnobBox) ID() string {
	return kb.id
}

func (kb *KnobBox) Type() ControllerType {
	return ControllerKnobs
}

// Inputs delivers decoded inputs. It is closed by Close.
func (kb *KnobBox) Inputs() <-chan surface.Input {
	return kb.inputs
}

// SetMode records the step count; the box itself has no detent mode.
func (kb *KnobBox) SetMode(id int, mode surface.EncoderMode, steps int) {
	if id < 0 || id >= len(kb.steps) {
		return
	}
	kb.steps[id] = steps
	debug.Log("midi", "knob %d %s steps=%d", id, mode, steps)
}

func (kb *KnobBox) SetPosition(id int, pos float32) {
	if kb.send == nil || id < 0 || id >= len(kb.steps) {
		return
	}
	cc := kb.knobs.FirstCC + uint8(id)
	if err := kb.send(gomidi.ControlChange(kb.knobs.Channel, cc, positionCC(pos))); err != nil {
		debug.Warn("midi", "knob feedback: %v", err)
	}
}

func (kb *KnobBox) Close() error {
	if kb.stopFunc != nil {
		kb.stopFunc()
	}
	kb.mu.Lock()
	defer kb.mu.Unlock()
	if !kb.closed {
		kb.closed = true
		close(kb.inputs)
	}
	return nil
}

var _ surface.Encoders = (*KnobBox)(nil)
