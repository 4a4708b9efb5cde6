package surface

import "go-surface/protocol"

// confirmation is a value arriving from the host for one slot. Display is
// only written when HasDisplay is set.
type confirmation struct {
	Value      float32
	Display    string
	HasDisplay bool
	Origin     protocol.Origin
}

// reconcile applies c to s and reports whether the bound encoder has to
// be repositioned.
//
//	type        echo                     external
//	Continuous  discard value + display  apply, reposition
//	Binary      apply                    apply, reposition + requantize
//	Enumerated  apply                    apply, reposition + requantize
//
// Frames reflected back from the controller itself are ignored.
func reconcile(s *Slot, c confirmation) bool {
	if !c.Origin.FromHost() {
		return false
	}
	if c.Origin.IsEcho() {
		if s.Type != Continuous {
			s.apply(c)
		}
		if s.Phase == PhaseDirtyLocal {
			s.Phase = PhaseBound
		}
		return false
	}
	s.Phase = PhaseDirtyRemote
	s.apply(c)
	return true
}

func (s *Slot) apply(c confirmation) {
	s.setValue(c.Value)
	if c.HasDisplay {
		s.setDisplay(c.Display)
	}
	if s.Type != Continuous {
		s.syncOptionIndex()
	}
}
