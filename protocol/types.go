package protocol

import "go-surface/protocol/wire"

// ParameterType is the host's widget kind for a remote control.
type ParameterType uint8

const (
	ParamKnob ParameterType = iota
	ParamButton
	ParamList
)

func (t ParameterType) String() string {
	switch t {
	case ParamKnob:
		return "knob"
	case ParamButton:
		return "button"
	case ParamList:
		return "list"
	}
	return "unknown"
}

// Child kinds reported in a device's childTypes array. A zero entry ends
// the array.
const (
	ChildSlots  uint8 = 1
	ChildLayers uint8 = 2
	ChildDrums  uint8 = 4
)

// View kinds carried by ViewState.
const (
	ViewRemoteControls uint8 = iota
	ViewMix
	ViewClip
)

// PageInfo names a remote control page.
type PageInfo struct {
	Index uint8
	Count uint8
	Name  string
}

func (p *PageInfo) walk(s wire.Stream) {
	s.Uint8(&p.Index)
	s.Uint8(&p.Count)
	s.String(&p.Name)
}

// RemoteControl is the full state of one parameter slot as sent with a
// page or device change.
type RemoteControl struct {
	Index         uint8
	Value         float32
	Name          string
	Origin        float32
	Exists        bool
	DiscreteCount int16
	Display       string
	Type          ParameterType
	OptionNames   []string
	OptionIndex   uint8
	HasAutomation bool
	Modulated     float32
	IsModulated   bool
}

func (c *RemoteControl) walk(s wire.Stream) {
	s.Uint8(&c.Index)
	s.Float32(&c.Value)
	s.String(&c.Name)
	s.Float32(&c.Origin)
	s.Bool(&c.Exists)
	s.Int16(&c.DiscreteCount)
	s.String(&c.Display)
	s.Uint8((*uint8)(&c.Type))
	wire.Seq(s, &c.OptionNames, OptionNameCap, wire.Stream.String)
	s.Uint8(&c.OptionIndex)
	s.Bool(&c.HasAutomation)
	s.Float32(&c.Modulated)
	s.Bool(&c.IsModulated)
}

// DeviceEntry is one row of a device list window.
type DeviceEntry struct {
	Index      uint8
	Name       string
	Enabled    bool
	Type       uint8
	ChildTypes [ChildTypeCount]uint8
}

func (d *DeviceEntry) walk(s wire.Stream) {
	s.Uint8(&d.Index)
	s.String(&d.Name)
	s.Bool(&d.Enabled)
	s.Uint8(&d.Type)
	childTypes(s, &d.ChildTypes)
}

func childTypes(s wire.Stream, t *[ChildTypeCount]uint8) {
	for i := range t {
		s.Uint8(&t[i])
	}
}

// ChildEntry is one slot, layer or drum pad of a device.
type ChildEntry struct {
	Index    uint8
	Name     string
	ItemType uint8
}

func (c *ChildEntry) walk(s wire.Stream) {
	s.Uint8(&c.Index)
	s.String(&c.Name)
	s.Uint8(&c.ItemType)
}

// TrackEntry is one row of a track list window.
type TrackEntry struct {
	Index       uint8
	Name        string
	Color       uint32
	Activated   bool
	Mute        bool
	Solo        bool
	MutedBySolo bool
	Arm         bool
	Group       bool
	Type        uint8
	Volume      float32
	Pan         float32
}

func (t *TrackEntry) walk(s wire.Stream) {
	s.Uint8(&t.Index)
	s.String(&t.Name)
	s.Uint32(&t.Color)
	s.Bool(&t.Activated)
	s.Bool(&t.Mute)
	s.Bool(&t.Solo)
	s.Bool(&t.MutedBySolo)
	s.Bool(&t.Arm)
	s.Bool(&t.Group)
	s.Uint8(&t.Type)
	s.Float32(&t.Volume)
	s.Float32(&t.Pan)
}

// SendEntry is one send of a track.
type SendEntry struct {
	Index    uint8
	Name     string
	Color    uint32
	Value    float32
	Display  string
	Enabled  bool
	Mode     string
	PreFader bool
}

func (e *SendEntry) walk(s wire.Stream) {
	s.Uint8(&e.Index)
	s.String(&e.Name)
	s.Uint32(&e.Color)
	s.Float32(&e.Value)
	s.String(&e.Display)
	s.Bool(&e.Enabled)
	s.String(&e.Mode)
	s.Bool(&e.PreFader)
}

// SendDestination names an effect track that sends can target.
type SendDestination struct {
	Index uint8
	Name  string
}

func (d *SendDestination) walk(s wire.Stream) {
	s.Uint8(&d.Index)
	s.String(&d.Name)
}

// LegacyTrack is one row of the full, unwindowed track list.
type LegacyTrack struct {
	Index     uint8
	Name      string
	Color     uint32
	Activated bool
	Mute      bool
	Solo      bool
	Group     bool
}

func (t *LegacyTrack) walk(s wire.Stream) {
	s.Uint8(&t.Index)
	s.String(&t.Name)
	s.Uint32(&t.Color)
	s.Bool(&t.Activated)
	s.Bool(&t.Mute)
	s.Bool(&t.Solo)
	s.Bool(&t.Group)
}

// entry registers the variant implemented by *T.
func entry[T any, PT interface {
	*T
	Message
}](name string, p wire.Profile, d Direction) {
	register(PT(new(T)).ID(), name, p, d, func() Message { return PT(new(T)) })
}

// walker adapts a pointer-method layout to wire.Seq.
func walker[T any, PT interface {
	*T
	walk(wire.Stream)
}]() func(wire.Stream, *T) {
	return func(s wire.Stream, v *T) { PT(v).walk(s) }
}
