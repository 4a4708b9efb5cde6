// Package midi connects the surface to MIDI ports: the host link that
// carries framed messages in SysEx, and an optional knob box that drives
// the encoders.
package midi

// ControllerType identifies the kind of port pair
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerHost
	ControllerKnobs
)

func (t ControllerType) String() string {
	switch t {
	case ControllerHost:
		return "host"
	case ControllerKnobs:
		return "knobs"
	}
	return "unknown"
}

// Controller is an opened MIDI port pair
type Controller interface {
	ID() string
	Type() ControllerType

	// Lifecycle
	Close() error
}
