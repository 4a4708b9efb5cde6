package surface

import (
	"math"

	"go-surface/protocol"
	"go-surface/protocol/wire"
)

// ParameterCount is the number of remote control slots on the surface.
const ParameterCount = protocol.ParameterCount

// LastClickedIndex addresses the last clicked parameter wherever a slot
// index is expected (renderer, bindings).
const LastClickedIndex = ParameterCount

// SlotType selects the reconciliation rules for a slot.
type SlotType uint8

const (
	Continuous SlotType = iota
	Binary
	Enumerated
)

func (t SlotType) String() string {
	switch t {
	case Continuous:
		return "continuous"
	case Binary:
		return "binary"
	case Enumerated:
		return "enumerated"
	}
	return "unknown"
}

func slotTypeOf(t protocol.ParameterType) SlotType {
	switch t {
	case protocol.ParamButton:
		return Binary
	case protocol.ParamList:
		return Enumerated
	}
	return Continuous
}

// Phase tracks a slot through a device transition and the edits that
// follow it.
type Phase uint8

const (
	PhaseLoading Phase = iota
	PhaseBound
	PhaseDirtyLocal
	PhaseDirtyRemote
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseBound:
		return "bound"
	case PhaseDirtyLocal:
		return "dirty-local"
	case PhaseDirtyRemote:
		return "dirty-remote"
	}
	return "unknown"
}

// Slot is the cached state of one parameter. DisplayText always comes
// from the host and is never computed locally.
type Slot struct {
	Type             SlotType
	Value            float32
	DisplayText      string
	Name             string
	Origin           float32
	OptionNames      []string
	OptionIndex      int
	DiscreteCount    int
	Exists           bool
	Loading          bool
	HasAutomation    bool
	IsModulated      bool
	ModulationOffset float32
	Phase            Phase

	// ValueApplies and DisplayApplies count writes to Value and
	// DisplayText.
	ValueApplies   int
	DisplayApplies int
}

func (s *Slot) setValue(v float32) {
	s.Value = v
	s.ValueApplies++
}

func (s *Slot) setDisplay(d string) {
	s.DisplayText = d
	s.DisplayApplies++
}

// reset puts the slot back into the loading state of a fresh transition.
func (s *Slot) reset() {
	s.Loading = true
	s.Exists = false
	s.Phase = PhaseLoading
}

// clear drops everything but the counters.
func (s *Slot) clear() {
	*s = Slot{ValueApplies: s.ValueApplies, DisplayApplies: s.DisplayApplies}
	s.reset()
}

// Steps returns the number of discrete positions, or 0 for a continuous
// slot.
func (s *Slot) Steps() int {
	switch s.Type {
	case Continuous:
		return 0
	case Binary:
		return 2
	}
	if n := len(s.OptionNames); n > 0 {
		return n
	}
	return s.DiscreteCount
}

// syncOptionIndex derives the option index from the normalized value.
func (s *Slot) syncOptionIndex() {
	n := s.Steps()
	if n < 2 {
		return
	}
	idx := int(math.Round(float64(s.Value) * float64(n-1)))
	s.OptionIndex = max(0, min(idx, n-1))
}

// Option returns the name of the current option, if known.
func (s *Slot) Option() string {
	if s.OptionIndex >= 0 && s.OptionIndex < len(s.OptionNames) {
		return s.OptionNames[s.OptionIndex]
	}
	return ""
}

// snapshot returns a copy safe to hand to a renderer.
func (s *Slot) snapshot() Slot {
	c := *s
	if c.OptionNames != nil {
		c.OptionNames = append([]string(nil), c.OptionNames...)
	}
	return c
}

// metadata is the full description of a slot as sent with a page change
// or a single-slot update.
type metadata struct {
	Name          string
	Value         float32
	Display       string
	Origin        float32
	Exists        bool
	Type          protocol.ParameterType
	DiscreteCount int16
	OptionIndex   uint8
	HasAutomation bool
	Modulated     float32
}

func (s *Slot) applyMetadata(m metadata) {
	s.Type = slotTypeOf(m.Type)
	s.Name = m.Name
	s.Origin = m.Origin
	s.Exists = m.Exists
	s.DiscreteCount = int(m.DiscreteCount)
	s.OptionIndex = int(m.OptionIndex)
	s.HasAutomation = m.HasAutomation
	s.setValue(wire.Clamp01(m.Value))
	s.setDisplay(m.Display)
	s.ModulationOffset = m.Modulated - s.Value
	s.Loading = false
	s.Phase = PhaseBound
}

func nonEmpty(names []string) []string {
	var out []string
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
