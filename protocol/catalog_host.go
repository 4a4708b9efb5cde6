package protocol

import "go-surface/protocol/wire"

func init() {
	entry[LastClickedUpdate]("LastClickedUpdate", wire.SevenBit, ToController)
	entry[LastClickedValueChange]("LastClickedValueChange", wire.SevenBit, Bidirectional)
	entry[LastClickedTouch]("LastClickedTouch", wire.SevenBit, ToHost)
	entry[RequestHostStatus]("RequestHostStatus", wire.SevenBit, ToHost)
	entry[HostInitialized]("HostInitialized", wire.SevenBit, ToController)
	entry[HostDeactivated]("HostDeactivated", wire.SevenBit, ToController)
	entry[RequestTrackList]("RequestTrackList", wire.SevenBit, ToHost)
	entry[TrackList]("TrackList", wire.SevenBit, ToController)
}

// LastClickedUpdate describes the parameter last clicked in the host,
// which the surface binds to its extra encoder.
type LastClickedUpdate struct {
	Name          string
	Value         float32
	Display       string
	Origin        float32
	Exists        bool
	Type          ParameterType
	DiscreteCount int16
	OptionIndex   uint8
}

func (*LastClickedUpdate) ID() MessageID { return MsgLastClickedUpdate }
func (m *LastClickedUpdate) walk(s wire.Stream) {
	s.String(&m.Name)
	s.Float32(&m.Value)
	s.String(&m.Display)
	s.Float32(&m.Origin)
	s.Bool(&m.Exists)
	s.Uint8((*uint8)(&m.Type))
	s.Int16(&m.DiscreteCount)
	s.Uint8(&m.OptionIndex)
}

// LastClickedValueChange travels both ways. Whether an inbound one is an
// echo is decided by the frame origin.
type LastClickedValueChange struct {
	Value   float32
	Display string
}

func (*LastClickedValueChange) ID() MessageID { return MsgLastClickedValueChange }
func (m *LastClickedValueChange) walk(s wire.Stream) {
	s.Float32(&m.Value)
	s.String(&m.Display)
}

type LastClickedTouch struct {
	Touched bool
}

func (*LastClickedTouch) ID() MessageID { return MsgLastClickedTouch }
func (m *LastClickedTouch) walk(s wire.Stream) { s.Bool(&m.Touched) }

type RequestHostStatus struct{}

func (*RequestHostStatus) ID() MessageID { return MsgRequestHostStatus }
func (*RequestHostStatus) walk(wire.Stream) {}

type HostInitialized struct {
	Active bool
}

func (*HostInitialized) ID() MessageID { return MsgHostInitialized }
func (m *HostInitialized) walk(s wire.Stream) { s.Bool(&m.Active) }

type HostDeactivated struct {
	Active bool
}

func (*HostDeactivated) ID() MessageID { return MsgHostDeactivated }
func (m *HostDeactivated) walk(s wire.Stream) { s.Bool(&m.Active) }

type RequestTrackList struct{}

func (*RequestTrackList) ID() MessageID { return MsgRequestTrackList }
func (*RequestTrackList) walk(wire.Stream) {}

// TrackList is the unwindowed track list kept for older host scripts.
type TrackList struct {
	Total      uint8
	Cursor     uint8
	Nested     bool
	ParentName string
	Tracks     []LegacyTrack
}

func (*TrackList) ID() MessageID { return MsgTrackList }
func (m *TrackList) walk(s wire.Stream) {
	s.Uint8(&m.Total)
	s.Uint8(&m.Cursor)
	s.Bool(&m.Nested)
	s.String(&m.ParentName)
	wire.Seq(s, &m.Tracks, TrackListCap, walker[LegacyTrack]())
}
