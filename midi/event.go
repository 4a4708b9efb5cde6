package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"go-surface/surface"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0
)

// RelativeCenter is the CC value of a relative encoder at rest. Values
// above it turn clockwise, below it counter-clockwise.
const RelativeCenter = 64

// KnobMap describes how a knob box is laid out.
//
//	CC   FirstCC+0..7   slot encoders
//	CC   FirstCC+8      last clicked encoder
//	CC   FirstCC+9      list navigation encoder
//	Note FirstNote+0..8 encoder touch (slots, then last clicked)
//	Note FirstNote+9..  buttons, in the order of buttonControls
type KnobMap struct {
	Channel   uint8
	FirstCC   uint8
	FirstNote uint8
}

// DefaultKnobMap matches a box with encoders on CC 16.. and touch notes
// from C1.
func DefaultKnobMap() KnobMap {
	return KnobMap{Channel: 0, FirstCC: 16, FirstNote: 36}
}

var buttonControls = []surface.Control{
	surface.ControlDevices,
	surface.ControlTracks,
	surface.ControlPages,
	surface.ControlConfirm,
	surface.ControlEnter,
	surface.ControlCancel,
	surface.ControlToggle,
	surface.ControlSolo,
	surface.ControlArm,
	surface.ControlPlay,
	surface.ControlRecord,
	surface.ControlStop,
	surface.ControlResetAutomation,
}

// Decode turns a knob box message into a surface input.
func (m KnobMap) Decode(msg gomidi.Message) (surface.Input, bool) {
	var channel, key, value uint8
	switch {
	case msg.GetControlChange(&channel, &key, &value):
		if channel != m.Channel || key < m.FirstCC || key > m.FirstCC+surface.ParameterCount+1 {
			return surface.Input{}, false
		}
		delta := int(value) - RelativeCenter
		if delta == 0 {
			return surface.Input{}, false
		}
		return surface.Input{
			Control: surface.Control(key - m.FirstCC),
			Kind:    surface.Turned,
			Delta:   float32(delta),
		}, true

	case msg.GetNoteStart(&channel, &key, &value):
		return m.note(channel, key, surface.Pressed)

	case msg.GetNoteEnd(&channel, &key):
		return m.note(channel, key, surface.Released)
	}
	return surface.Input{}, false
}

func (m KnobMap) note(channel, key uint8, kind surface.InputKind) (surface.Input, bool) {
	if channel != m.Channel || key < m.FirstNote {
		return surface.Input{}, false
	}
	off := int(key - m.FirstNote)
	if off <= surface.ParameterCount {
		return surface.Input{Control: surface.Control(off), Kind: kind}, true
	}
	off -= surface.ParameterCount + 1
	if off >= len(buttonControls) {
		return surface.Input{}, false
	}
	return surface.Input{Control: buttonControls[off], Kind: kind}, true
}

// positionCC scales a normalized encoder position to a CC value.
func positionCC(pos float32) uint8 {
	if pos <= 0 {
		return 0
	}
	if pos >= 1 {
		return 127
	}
	return uint8(pos*127 + 0.5)
}
