package protocol

import "go-surface/protocol/wire"

func init() {
	entry[TransportPlay]("TransportPlay", wire.Binary, Bidirectional)
	entry[TransportRecord]("TransportRecord", wire.Binary, Bidirectional)
	entry[TransportStop]("TransportStop", wire.Binary, Bidirectional)
	entry[TransportTempo]("TransportTempo", wire.Binary, Bidirectional)
	entry[TransportAutomationOverrideActive]("TransportAutomationOverrideActive", wire.Binary, ToController)
	entry[TransportArrangerAutomationWrite]("TransportArrangerAutomationWrite", wire.Binary, Bidirectional)
	entry[TransportClipLauncherAutomationWrite]("TransportClipLauncherAutomationWrite", wire.Binary, Bidirectional)
	entry[TransportAutomationWriteMode]("TransportAutomationWriteMode", wire.Binary, Bidirectional)
	entry[ResetAutomationOverrides]("ResetAutomationOverrides", wire.Binary, ToHost)
	entry[TransportArrangerOverdub]("TransportArrangerOverdub", wire.Binary, Bidirectional)
	entry[TransportClipLauncherOverdub]("TransportClipLauncherOverdub", wire.Binary, Bidirectional)
}

type TransportPlay struct {
	Playing bool
}

func (*TransportPlay) ID() MessageID { return MsgTransportPlay }
func (m *TransportPlay) walk(s wire.Stream) { s.Bool(&m.Playing) }

type TransportRecord struct {
	Recording bool
}

func (*TransportRecord) ID() MessageID { return MsgTransportRecord }
func (m *TransportRecord) walk(s wire.Stream) { s.Bool(&m.Recording) }

type TransportStop struct{}

func (*TransportStop) ID() MessageID { return MsgTransportStop }
func (*TransportStop) walk(wire.Stream) {}

// TransportTempo is the tempo in BPM.
type TransportTempo struct {
	Tempo float32
}

func (*TransportTempo) ID() MessageID { return MsgTransportTempo }
func (m *TransportTempo) walk(s wire.Stream) { s.Float32(&m.Tempo) }

type TransportAutomationOverrideActive struct {
	Active bool
}

func (*TransportAutomationOverrideActive) ID() MessageID { return MsgTransportAutomationOverrideActive }
func (m *TransportAutomationOverrideActive) walk(s wire.Stream) { s.Bool(&m.Active) }

type TransportArrangerAutomationWrite struct {
	Enabled bool
}

func (*TransportArrangerAutomationWrite) ID() MessageID { return MsgTransportArrangerAutomationWrite }
func (m *TransportArrangerAutomationWrite) walk(s wire.Stream) { s.Bool(&m.Enabled) }

type TransportClipLauncherAutomationWrite struct {
	Enabled bool
}

func (*TransportClipLauncherAutomationWrite) ID() MessageID {
	return MsgTransportClipLauncherAutomationWrite
}
func (m *TransportClipLauncherAutomationWrite) walk(s wire.Stream) { s.Bool(&m.Enabled) }

// TransportAutomationWriteMode is one of "latch", "touch" or "write".
type TransportAutomationWriteMode struct {
	Mode string
}

func (*TransportAutomationWriteMode) ID() MessageID { return MsgTransportAutomationWriteMode }
func (m *TransportAutomationWriteMode) walk(s wire.Stream) { s.String(&m.Mode) }

type ResetAutomationOverrides struct{}

func (*ResetAutomationOverrides) ID() MessageID { return MsgResetAutomationOverrides }
func (*ResetAutomationOverrides) walk(wire.Stream) {}

type TransportArrangerOverdub struct {
	Enabled bool
}

func (*TransportArrangerOverdub) ID() MessageID { return MsgTransportArrangerOverdub }
func (m *TransportArrangerOverdub) walk(s wire.Stream) { s.Bool(&m.Enabled) }

type TransportClipLauncherOverdub struct {
	Enabled bool
}

func (*TransportClipLauncherOverdub) ID() MessageID { return MsgTransportClipLauncherOverdub }
func (m *TransportClipLauncherOverdub) walk(s wire.Stream) { s.Bool(&m.Enabled) }
