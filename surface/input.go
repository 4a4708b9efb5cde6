package surface

// Control identifies an input on the surface. Controls 0..7 are the slot
// encoders.
type Control int

const (
	ControlLastClicked Control = ParameterCount + iota
	ControlNav
	ControlDevices
	ControlTracks
	ControlPages
	ControlConfirm
	ControlEnter
	ControlCancel
	ControlToggle
	ControlSolo
	ControlArm
	ControlPlay
	ControlRecord
	ControlStop
	ControlResetAutomation
)

// SlotControl returns the encoder control of slot i.
func SlotControl(i int) Control { return Control(i) }

func (c Control) slot() (int, bool) {
	if c >= 0 && c < ParameterCount {
		return int(c), true
	}
	return 0, false
}

type InputKind uint8

const (
	Turned InputKind = iota
	Pressed
	Released
	// Reset asks the host to restore automation on a slot control.
	Reset
)

func (k InputKind) String() string {
	switch k {
	case Turned:
		return "turned"
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	case Reset:
		return "reset"
	}
	return "unknown"
}

// Input is one event from the input collaborator. Delta is in detents and
// only meaningful for Turned.
type Input struct {
	Control Control
	Kind    InputKind
	Delta   float32
}

// Settings are the user-tunable parts of the surface.
type Settings struct {
	// Sensitivity is the normalized value change per detent of a
	// continuous encoder.
	Sensitivity float32
}

// DefaultSettings returns 100 detents for a full sweep.
func DefaultSettings() Settings {
	return Settings{Sensitivity: 0.01}
}
