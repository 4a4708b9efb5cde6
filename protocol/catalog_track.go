package protocol

import "go-surface/protocol/wire"

func init() {
	entry[TrackSelect]("TrackSelect", wire.Binary, ToHost)
	entry[EnterTrackGroup]("EnterTrackGroup", wire.Binary, ToHost)
	entry[ExitTrackGroup]("ExitTrackGroup", wire.Binary, ToHost)
	entry[TrackMute]("TrackMute", wire.Binary, ToHost)
	entry[TrackSolo]("TrackSolo", wire.Binary, ToHost)
	entry[TrackActivate]("TrackActivate", wire.Binary, ToHost)
	entry[TrackArm]("TrackArm", wire.Binary, ToHost)
	entry[TrackVolume]("TrackVolume", wire.Binary, ToHost)
	entry[TrackPan]("TrackPan", wire.Binary, ToHost)
	entry[TrackVolumeTouch]("TrackVolumeTouch", wire.Binary, ToHost)
	entry[TrackPanTouch]("TrackPanTouch", wire.Binary, ToHost)
	entry[TrackSendValue]("TrackSendValue", wire.Binary, ToHost)
	entry[TrackSendEnabled]("TrackSendEnabled", wire.Binary, ToHost)
	entry[TrackSendMode]("TrackSendMode", wire.Binary, ToHost)
	entry[TrackSendTouch]("TrackSendTouch", wire.Binary, ToHost)
	entry[SelectMixSend]("SelectMixSend", wire.Binary, ToHost)
	entry[RequestTrackListWindow]("RequestTrackListWindow", wire.Binary, ToHost)
	entry[RequestTrackSendList]("RequestTrackSendList", wire.Binary, ToHost)
	entry[RequestSendDestinations]("RequestSendDestinations", wire.Binary, ToHost)

	entry[TrackListWindow]("TrackListWindow", wire.Binary, ToController)
	entry[TrackSendList]("TrackSendList", wire.Binary, ToController)
	entry[SendDestinationsList]("SendDestinationsList", wire.Binary, ToController)
	entry[TrackChange]("TrackChange", wire.Binary, ToController)
	entry[TrackMuteState]("TrackMuteState", wire.Binary, ToController)
	entry[TrackSoloState]("TrackSoloState", wire.Binary, ToController)
	entry[TrackArmState]("TrackArmState", wire.Binary, ToController)
	entry[TrackMutedBySoloState]("TrackMutedBySoloState", wire.Binary, ToController)
	entry[TrackVolumeState]("TrackVolumeState", wire.Binary, ToController)
	entry[TrackPanState]("TrackPanState", wire.Binary, ToController)
	entry[TrackVolumeHasAutomationState]("TrackVolumeHasAutomationState", wire.Binary, ToController)
	entry[TrackPanHasAutomationState]("TrackPanHasAutomationState", wire.Binary, ToController)
	entry[TrackVolumeModulatedValueState]("TrackVolumeModulatedValueState", wire.Binary, ToController)
	entry[TrackPanModulatedValueState]("TrackPanModulatedValueState", wire.Binary, ToController)
	entry[TrackSendValueState]("TrackSendValueState", wire.Binary, ToController)
	entry[TrackSendEnabledState]("TrackSendEnabledState", wire.Binary, ToController)
	entry[TrackSendModeState]("TrackSendModeState", wire.Binary, ToController)
	entry[TrackSendPreFaderState]("TrackSendPreFaderState", wire.Binary, ToController)
	entry[TrackSendHasAutomationState]("TrackSendHasAutomationState", wire.Binary, ToController)
	entry[TrackSendModulatedValueState]("TrackSendModulatedValueState", wire.Binary, ToController)
}

// Track indices in this file are raw host indices; the back entry of a
// nested list never reaches the wire.

type TrackSelect struct {
	TrackIndex uint8
}

func (*TrackSelect) ID() MessageID { return MsgTrackSelect }
func (m *TrackSelect) walk(s wire.Stream) { s.Uint8(&m.TrackIndex) }

type EnterTrackGroup struct {
	TrackIndex uint8
}

func (*EnterTrackGroup) ID() MessageID { return MsgEnterTrackGroup }
func (m *EnterTrackGroup) walk(s wire.Stream) { s.Uint8(&m.TrackIndex) }

type ExitTrackGroup struct{}

func (*ExitTrackGroup) ID() MessageID { return MsgExitTrackGroup }
func (*ExitTrackGroup) walk(wire.Stream) {}

type TrackMute struct {
	TrackIndex uint8
	Mute       bool
}

func (*TrackMute) ID() MessageID { return MsgTrackMute }
func (m *TrackMute) walk(s wire.Stream) { trackFlag(s, &m.TrackIndex, &m.Mute) }

type TrackSolo struct {
	TrackIndex uint8
	Solo       bool
}

func (*TrackSolo) ID() MessageID { return MsgTrackSolo }
func (m *TrackSolo) walk(s wire.Stream) { trackFlag(s, &m.TrackIndex, &m.Solo) }

type TrackActivate struct {
	TrackIndex uint8
	Activated  bool
}

func (*TrackActivate) ID() MessageID { return MsgTrackActivate }
func (m *TrackActivate) walk(s wire.Stream) { trackFlag(s, &m.TrackIndex, &m.Activated) }

type TrackArm struct {
	TrackIndex uint8
	Arm        bool
}

func (*TrackArm) ID() MessageID { return MsgTrackArm }
func (m *TrackArm) walk(s wire.Stream) { trackFlag(s, &m.TrackIndex, &m.Arm) }

type TrackVolume struct {
	TrackIndex uint8
	Volume     float32
}

func (*TrackVolume) ID() MessageID { return MsgTrackVolume }
func (m *TrackVolume) walk(s wire.Stream) { trackFloat(s, &m.TrackIndex, &m.Volume) }

type TrackPan struct {
	TrackIndex uint8
	Pan        float32
}

func (*TrackPan) ID() MessageID { return MsgTrackPan }
func (m *TrackPan) walk(s wire.Stream) { trackFloat(s, &m.TrackIndex, &m.Pan) }

type TrackVolumeTouch struct {
	TrackIndex uint8
	Touched    bool
}

func (*TrackVolumeTouch) ID() MessageID { return MsgTrackVolumeTouch }
func (m *TrackVolumeTouch) walk(s wire.Stream) { trackFlag(s, &m.TrackIndex, &m.Touched) }

type TrackPanTouch struct {
	TrackIndex uint8
	Touched    bool
}

func (*TrackPanTouch) ID() MessageID { return MsgTrackPanTouch }
func (m *TrackPanTouch) walk(s wire.Stream) { trackFlag(s, &m.TrackIndex, &m.Touched) }

type TrackSendValue struct {
	TrackIndex uint8
	SendIndex  uint8
	Value      float32
}

func (*TrackSendValue) ID() MessageID { return MsgTrackSendValue }
func (m *TrackSendValue) walk(s wire.Stream) {
	sendAddr(s, &m.TrackIndex, &m.SendIndex)
	s.Float32(&m.Value)
}

type TrackSendEnabled struct {
	TrackIndex uint8
	SendIndex  uint8
	Enabled    bool
}

func (*TrackSendEnabled) ID() MessageID { return MsgTrackSendEnabled }
func (m *TrackSendEnabled) walk(s wire.Stream) {
	sendAddr(s, &m.TrackIndex, &m.SendIndex)
	s.Bool(&m.Enabled)
}

type TrackSendMode struct {
	TrackIndex uint8
	SendIndex  uint8
	Mode       string
}

func (*TrackSendMode) ID() MessageID { return MsgTrackSendMode }
func (m *TrackSendMode) walk(s wire.Stream) {
	sendAddr(s, &m.TrackIndex, &m.SendIndex)
	s.String(&m.Mode)
}

type TrackSendTouch struct {
	TrackIndex uint8
	SendIndex  uint8
	Touched    bool
}

func (*TrackSendTouch) ID() MessageID { return MsgTrackSendTouch }
func (m *TrackSendTouch) walk(s wire.Stream) {
	sendAddr(s, &m.TrackIndex, &m.SendIndex)
	s.Bool(&m.Touched)
}

// SelectMixSend picks the send the mixer view observes.
type SelectMixSend struct {
	SendIndex uint8
}

func (*SelectMixSend) ID() MessageID { return MsgSelectMixSend }
func (m *SelectMixSend) walk(s wire.Stream) { s.Uint8(&m.SendIndex) }

type RequestTrackListWindow struct {
	StartIndex uint8
}

func (*RequestTrackListWindow) ID() MessageID { return MsgRequestTrackListWindow }
func (m *RequestTrackListWindow) walk(s wire.Stream) { s.Uint8(&m.StartIndex) }

type RequestTrackSendList struct {
	TrackIndex uint8
}

func (*RequestTrackSendList) ID() MessageID { return MsgRequestTrackSendList }
func (m *RequestTrackSendList) walk(s wire.Stream) { s.Uint8(&m.TrackIndex) }

type RequestSendDestinations struct{}

func (*RequestSendDestinations) ID() MessageID { return MsgRequestSendDestinations }
func (*RequestSendDestinations) walk(wire.Stream) {}

// TrackListWindow is one window of the tracks in the current context.
type TrackListWindow struct {
	Total      uint8
	Start      uint8
	Cursor     uint8
	Nested     bool
	ParentName string
	Tracks     []TrackEntry
}

func (*TrackListWindow) ID() MessageID { return MsgTrackListWindow }
func (m *TrackListWindow) walk(s wire.Stream) {
	s.Uint8(&m.Total)
	s.Uint8(&m.Start)
	s.Uint8(&m.Cursor)
	s.Bool(&m.Nested)
	s.String(&m.ParentName)
	wire.Seq(s, &m.Tracks, WindowSize, walker[TrackEntry]())
}

type TrackSendList struct {
	TrackIndex uint8
	Total      uint8
	Sends      []SendEntry
}

func (*TrackSendList) ID() MessageID { return MsgTrackSendList }
func (m *TrackSendList) walk(s wire.Stream) {
	s.Uint8(&m.TrackIndex)
	s.Uint8(&m.Total)
	wire.Seq(s, &m.Sends, SendCap, walker[SendEntry]())
}

type SendDestinationsList struct {
	Total        uint8
	Destinations []SendDestination
}

func (*SendDestinationsList) ID() MessageID { return MsgSendDestinationsList }
func (m *SendDestinationsList) walk(s wire.Stream) {
	s.Uint8(&m.Total)
	wire.Seq(s, &m.Destinations, SendCap, walker[SendDestination]())
}

// TrackChange reports the newly selected track with its channel state.
type TrackChange struct {
	Name          string
	Color         uint32
	TrackIndex    uint8
	Type          uint8
	Activated     bool
	Mute          bool
	Solo          bool
	MutedBySolo   bool
	Arm           bool
	Volume        float32
	VolumeDisplay string
	Pan           float32
	PanDisplay    string
}

func (*TrackChange) ID() MessageID { return MsgTrackChange }
func (m *TrackChange) walk(s wire.Stream) {
	s.String(&m.Name)
	s.Uint32(&m.Color)
	s.Uint8(&m.TrackIndex)
	s.Uint8(&m.Type)
	s.Bool(&m.Activated)
	s.Bool(&m.Mute)
	s.Bool(&m.Solo)
	s.Bool(&m.MutedBySolo)
	s.Bool(&m.Arm)
	s.Float32(&m.Volume)
	s.String(&m.VolumeDisplay)
	s.Float32(&m.Pan)
	s.String(&m.PanDisplay)
}

type TrackMuteState struct {
	TrackIndex uint8
	Mute       bool
}

func (*TrackMuteState) ID() MessageID { return MsgTrackMuteState }
func (m *TrackMuteState) walk(s wire.Stream) { trackFlag(s, &m.TrackIndex, &m.Mute) }

type TrackSoloState struct {
	TrackIndex uint8
	Solo       bool
}

func (*TrackSoloState) ID() MessageID { return MsgTrackSoloState }
func (m *TrackSoloState) walk(s wire.Stream) { trackFlag(s, &m.TrackIndex, &m.Solo) }

type TrackArmState struct {
	TrackIndex uint8
	Arm        bool
}

func (*TrackArmState) ID() MessageID { return MsgTrackArmState }
func (m *TrackArmState) walk(s wire.Stream) { trackFlag(s, &m.TrackIndex, &m.Arm) }

type TrackMutedBySoloState struct {
	TrackIndex  uint8
	MutedBySolo bool
}

func (*TrackMutedBySoloState) ID() MessageID { return MsgTrackMutedBySoloState }
func (m *TrackMutedBySoloState) walk(s wire.Stream) { trackFlag(s, &m.TrackIndex, &m.MutedBySolo) }

type TrackVolumeState struct {
	TrackIndex uint8
	Volume     float32
	Display    string
}

func (*TrackVolumeState) ID() MessageID { return MsgTrackVolumeState }
func (m *TrackVolumeState) walk(s wire.Stream) {
	trackFloat(s, &m.TrackIndex, &m.Volume)
	s.String(&m.Display)
}

type TrackPanState struct {
	TrackIndex uint8
	Pan        float32
	Display    string
}

func (*TrackPanState) ID() MessageID { return MsgTrackPanState }
func (m *TrackPanState) walk(s wire.Stream) {
	trackFloat(s, &m.TrackIndex, &m.Pan)
	s.String(&m.Display)
}

type TrackVolumeHasAutomationState struct {
	TrackIndex    uint8
	HasAutomation bool
}

func (*TrackVolumeHasAutomationState) ID() MessageID { return MsgTrackVolumeHasAutomationState }
func (m *TrackVolumeHasAutomationState) walk(s wire.Stream) {
	trackFlag(s, &m.TrackIndex, &m.HasAutomation)
}

type TrackPanHasAutomationState struct {
	TrackIndex    uint8
	HasAutomation bool
}

func (*TrackPanHasAutomationState) ID() MessageID { return MsgTrackPanHasAutomationState }
func (m *TrackPanHasAutomationState) walk(s wire.Stream) {
	trackFlag(s, &m.TrackIndex, &m.HasAutomation)
}

type TrackVolumeModulatedValueState struct {
	TrackIndex uint8
	Modulated  float32
}

func (*TrackVolumeModulatedValueState) ID() MessageID { return MsgTrackVolumeModulatedValueState }
func (m *TrackVolumeModulatedValueState) walk(s wire.Stream) {
	trackFloat(s, &m.TrackIndex, &m.Modulated)
}

type TrackPanModulatedValueState struct {
	TrackIndex uint8
	Modulated  float32
}

func (*TrackPanModulatedValueState) ID() MessageID { return MsgTrackPanModulatedValueState }
func (m *TrackPanModulatedValueState) walk(s wire.Stream) {
	trackFloat(s, &m.TrackIndex, &m.Modulated)
}

type TrackSendValueState struct {
	TrackIndex uint8
	SendIndex  uint8
	Value      float32
	Display    string
}

func (*TrackSendValueState) ID() MessageID { return MsgTrackSendValueState }
func (m *TrackSendValueState) walk(s wire.Stream) {
	sendAddr(s, &m.TrackIndex, &m.SendIndex)
	s.Float32(&m.Value)
	s.String(&m.Display)
}

type TrackSendEnabledState struct {
	TrackIndex uint8
	SendIndex  uint8
	Enabled    bool
}

func (*TrackSendEnabledState) ID() MessageID { return MsgTrackSendEnabledState }
func (m *TrackSendEnabledState) walk(s wire.Stream) {
	sendAddr(s, &m.TrackIndex, &m.SendIndex)
	s.Bool(&m.Enabled)
}

type TrackSendModeState struct {
	TrackIndex uint8
	SendIndex  uint8
	Mode       string
}

func (*TrackSendModeState) ID() MessageID { return MsgTrackSendModeState }
func (m *TrackSendModeState) walk(s wire.Stream) {
	sendAddr(s, &m.TrackIndex, &m.SendIndex)
	s.String(&m.Mode)
}

type TrackSendPreFaderState struct {
	TrackIndex uint8
	SendIndex  uint8
	PreFader   bool
}

func (*TrackSendPreFaderState) ID() MessageID { return MsgTrackSendPreFaderState }
func (m *TrackSendPreFaderState) walk(s wire.Stream) {
	sendAddr(s, &m.TrackIndex, &m.SendIndex)
	s.Bool(&m.PreFader)
}

type TrackSendHasAutomationState struct {
	TrackIndex    uint8
	SendIndex     uint8
	HasAutomation bool
}

func (*TrackSendHasAutomationState) ID() MessageID { return MsgTrackSendHasAutomationState }
func (m *TrackSendHasAutomationState) walk(s wire.Stream) {
	sendAddr(s, &m.TrackIndex, &m.SendIndex)
	s.Bool(&m.HasAutomation)
}

type TrackSendModulatedValueState struct {
	TrackIndex uint8
	SendIndex  uint8
	Modulated  float32
}

func (*TrackSendModulatedValueState) ID() MessageID { return MsgTrackSendModulatedValueState }
func (m *TrackSendModulatedValueState) walk(s wire.Stream) {
	sendAddr(s, &m.TrackIndex, &m.SendIndex)
	s.Float32(&m.Modulated)
}

func trackFlag(s wire.Stream, track *uint8, v *bool) {
	s.Uint8(track)
	s.Bool(v)
}

func trackFloat(s wire.Stream, track *uint8, v *float32) {
	s.Uint8(track)
	s.Float32(v)
}

func sendAddr(s wire.Stream, track, send *uint8) {
	s.Uint8(track)
	s.Uint8(send)
}
