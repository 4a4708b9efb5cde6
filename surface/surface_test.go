package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-surface/protocol"
)

func TestStartRequestsHostStatus(t *testing.T) {
	g := newRig()
	g.s.Start()
	assert.Equal(t, []protocol.MessageID{protocol.MsgRequestHostStatus}, g.out.ids())
}

func TestDevicePageSwitch(t *testing.T) {
	g := newRig()
	d := protocol.NewDispatcher(g.s, nil, protocol.WithStrict(true))

	require.True(t, d.Receive(encodeFrame(t, mixedPage()), protocol.OriginHost))

	assert.Empty(t, g.out.msgs, "a page change needs no answer")
	want := []SlotType{Continuous, Continuous, Binary, Enumerated}
	for i, typ := range want {
		sl := g.s.Slots[i]
		assert.False(t, sl.Loading, "slot %d", i)
		assert.True(t, sl.Exists, "slot %d", i)
		assert.Equal(t, typ, sl.Type, "slot %d", i)
	}
	for i := 4; i < ParameterCount; i++ {
		assert.False(t, g.s.Slots[i].Exists, "slot %d", i)
		assert.False(t, g.s.Bound(i), "slot %d", i)
	}
	assert.Equal(t, []string{"LP", "BP", "HP"}, g.s.Slots[3].OptionNames)
	assert.Equal(t, "Main", g.s.Device.PageName)
}

func TestBindingWritesModeBeforePosition(t *testing.T) {
	g := newRig()
	g.host(mixedPage())

	assert.Equal(t, []string{
		"mode 0 continuous 0", "pos 0 0.250",
		"mode 1 continuous 0", "pos 1 0.500",
		"mode 2 stepped 2", "pos 2 0.000",
		"mode 3 stepped 3", "pos 3 0.000",
	}, g.enc.calls)
}

func TestOptimisticKnobThenEcho(t *testing.T) {
	g := newRig()
	g.host(mixedPage())
	applies := g.s.Slots[0].ValueApplies

	g.s.HandleInput(Input{Control: SlotControl(0), Kind: Turned, Delta: 10})

	assert.InDelta(t, 0.35, g.s.Slots[0].Value, 1e-6)
	assert.Equal(t, PhaseDirtyLocal, g.s.Slots[0].Phase)
	require.IsType(t, &protocol.RemoteControlValue{}, g.out.last())
	sent := g.out.last().(*protocol.RemoteControlValue)
	assert.Equal(t, uint8(0), sent.Index)
	assert.InDelta(t, 0.35, sent.Value, 1e-6)

	// the host confirms with a slightly different value
	g.echo(&protocol.RemoteControlValueState{Index: 0, Value: 0.349, Display: "34.9 %"})

	assert.Equal(t, applies+1, g.s.Slots[0].ValueApplies)
	assert.InDelta(t, 0.35, g.s.Slots[0].Value, 1e-6)
	assert.Equal(t, "25 %", g.s.Slots[0].DisplayText)
	assert.Equal(t, PhaseBound, g.s.Slots[0].Phase)
}

func TestSteppedTurnWaitsForHost(t *testing.T) {
	g := newRig()
	g.host(mixedPage())

	g.s.Turn(3, 1)

	assert.Equal(t, 0, g.s.Slots[3].OptionIndex)
	assert.Equal(t, float32(0), g.s.Slots[3].Value)
	assert.Equal(t, &protocol.RemoteControlValue{Index: 3, Value: 0.5}, g.out.last())

	g.echo(&protocol.RemoteControlValueState{Index: 3, Value: 0.5, Display: "BP"})
	assert.Equal(t, 1, g.s.Slots[3].OptionIndex)
	assert.Equal(t, "BP", g.s.Slots[3].DisplayText)
}

func TestSteppedTurnStopsAtEnds(t *testing.T) {
	g := newRig()
	g.host(mixedPage())

	g.s.Turn(2, -1)
	assert.Empty(t, g.out.msgs)

	g.s.Turn(2, 0.3)
	assert.Equal(t, &protocol.RemoteControlValue{Index: 2, Value: 1}, g.out.last())
}

func TestTransitionMakesBindingsInert(t *testing.T) {
	g := newRig()
	g.host(mixedPage())

	g.host(&protocol.DeviceChangeHeader{DeviceName: "Delay", Enabled: true, ChildTypes: [4]uint8{1, 0, 0, 0}})
	for i := range g.s.Slots {
		assert.True(t, g.s.Slots[i].Loading, "slot %d", i)
		assert.False(t, g.s.Bound(i), "slot %d", i)
	}
	assert.True(t, g.s.Device.Children.Has(protocol.ChildSlots))

	g.s.HandleInput(Input{Control: SlotControl(0), Kind: Turned, Delta: 5})
	g.s.HandleInput(Input{Control: SlotControl(0), Kind: Pressed})
	assert.Empty(t, g.out.msgs)

	g.host(&protocol.RemoteControlUpdate{Index: 0, Name: "Time", Value: 0.1, Exists: true, Display: "100 ms"})
	assert.True(t, g.s.Bound(0))
	assert.False(t, g.s.Bound(1))
}

func TestDiscreteValuesDropEmptyNames(t *testing.T) {
	g := newRig()
	g.host(mixedPage())

	g.host(&protocol.RemoteControlDiscreteValues{Index: 3, OptionNames: []string{"A", "", "B", "C", "D"}, OptionIndex: 3})
	assert.Equal(t, []string{"A", "B", "C", "D"}, g.s.Slots[3].OptionNames)
	assert.Equal(t, "mode 3 stepped 4", g.enc.calls[len(g.enc.calls)-2])
}

func TestBatch(t *testing.T) {
	g := newRig()
	g.host(mixedPage())

	batch := func(seq uint8, v float32) *protocol.RemoteControlsBatch {
		b := &protocol.RemoteControlsBatch{Seq: seq, Dirty: 1<<1 | 1<<3, Automation: 1 << 1}
		b.Values[1], b.Values[3] = v, v
		b.Displays[1], b.Displays[3] = "batched", "HP"
		return b
	}

	g.host(batch(5, 1))
	assert.Equal(t, float32(1), g.s.Slots[1].Value)
	assert.True(t, g.s.Slots[1].HasAutomation)
	assert.Equal(t, 2, g.s.Slots[3].OptionIndex)
	assert.Equal(t, float32(0.25), g.s.Slots[0].Value, "clean slots keep their value")

	g.host(batch(6, 0.5))
	assert.Equal(t, float32(0.5), g.s.Slots[1].Value)
	assert.Equal(t, 1, g.s.Slots[3].OptionIndex)
}

func TestBatchAppliesRepeatedAndLowerSeq(t *testing.T) {
	g := newRig()
	g.host(mixedPage())

	for _, v := range []float32{0.3, 0.6, 0.9} {
		b := &protocol.RemoteControlsBatch{Seq: 0, Dirty: 1}
		b.Values[0] = v
		g.host(b)
		assert.Equal(t, v, g.s.Slots[0].Value)
	}

	g.host(&protocol.RemoteControlsBatch{Seq: 100})
	g.host(&protocol.HostInitialized{Active: true})
	b := &protocol.RemoteControlsBatch{Seq: 1, Dirty: 1 << 1}
	b.Values[1] = 0.8
	g.host(b)
	assert.Equal(t, float32(0.8), g.s.Slots[1].Value)
}

func TestBatchRendersChangedSlotOnce(t *testing.T) {
	g := newRig()
	g.host(mixedPage())
	before := g.r.calls[1]

	b := &protocol.RemoteControlsBatch{Seq: 1, Dirty: 1 << 1}
	b.Values[1] = 0.7
	g.host(b)

	assert.Equal(t, float32(0.7), g.r.params[1].Value)
	assert.Equal(t, before+1, g.r.calls[1])
	assert.Equal(t, float32(0.7), g.s.Slots[1].Value)
}

func TestBatchEchoBitDiscardsContinuous(t *testing.T) {
	g := newRig()
	g.host(mixedPage())

	b := &protocol.RemoteControlsBatch{Seq: 1, Dirty: 1 | 1<<2, Echo: 1 | 1<<2}
	b.Values[0], b.Values[2] = 0.9, 1
	b.Displays[2] = "On"
	g.host(b)

	assert.Equal(t, float32(0.25), g.s.Slots[0].Value)
	assert.Equal(t, float32(1), g.s.Slots[2].Value)
	assert.Equal(t, "On", g.s.Slots[2].DisplayText)
}

func TestHostDeactivatedResetsEverything(t *testing.T) {
	g := newRig()
	g.host(&protocol.HostInitialized{Active: true})
	g.host(mixedPage())
	g.press(ControlDevices)
	g.host(&protocol.DeviceListWindow{Total: 1, Devices: []protocol.DeviceEntry{{Name: "EQ"}}})

	g.host(&protocol.HostDeactivated{})

	assert.False(t, g.s.HostActive)
	for i := range g.s.Slots {
		assert.True(t, g.s.Slots[i].Loading)
		assert.False(t, g.s.Bound(i))
	}
	assert.Empty(t, g.s.Devices.Entries)
	assert.Equal(t, ListNone, g.s.Overlay())
	assert.Equal(t, 1, g.r.hidden)
}

func TestLastClicked(t *testing.T) {
	g := newRig()
	g.host(&protocol.LastClickedUpdate{Name: "Gain", Value: 0.5, Display: "0 dB", Exists: true})
	require.True(t, g.s.Bound(LastClickedIndex))

	g.s.HandleInput(Input{Control: ControlLastClicked, Kind: Turned, Delta: 1})
	require.IsType(t, &protocol.LastClickedValueChange{}, g.out.last())
	assert.InDelta(t, 0.51, g.out.last().(*protocol.LastClickedValueChange).Value, 1e-6)

	g.s.HandleInput(Input{Control: ControlLastClicked, Kind: Pressed})
	assert.Equal(t, &protocol.LastClickedTouch{Touched: true}, g.out.last())

	g.host(&protocol.LastClickedValueChange{Value: 0.8, Display: "+3 dB"})
	assert.Equal(t, "+3 dB", g.s.Slot(LastClickedIndex).DisplayText)
}

func TestTrackStateFollowsSelectedTrack(t *testing.T) {
	g := newRig()
	g.host(&protocol.TrackChange{Name: "Bass", TrackIndex: 2, Volume: 0.7, VolumeDisplay: "-3 dB", Pan: 0.5, PanDisplay: "C"})
	assert.Equal(t, &protocol.RequestTrackSendList{TrackIndex: 2}, g.out.last())

	g.host(&protocol.TrackMuteState{TrackIndex: 2, Mute: true})
	g.host(&protocol.TrackSoloState{TrackIndex: 3, Solo: true})
	assert.True(t, g.s.Track.Mute)
	assert.False(t, g.s.Track.Solo)

	g.echo(&protocol.TrackVolumeState{TrackIndex: 2, Volume: 0.1, Display: "-40 dB"})
	assert.Equal(t, float32(0.7), g.s.Track.Volume.Value, "continuous echo is discarded")
	g.host(&protocol.TrackVolumeState{TrackIndex: 2, Volume: 0.1, Display: "-40 dB"})
	assert.Equal(t, "-40 dB", g.s.Track.Volume.DisplayText)

	g.host(&protocol.TrackSendList{TrackIndex: 2, Total: 1, Sends: []protocol.SendEntry{{Index: 0, Name: "Verb", Value: 0.3}}})
	g.host(&protocol.TrackSendValueState{TrackIndex: 2, SendIndex: 0, Value: 0.6, Display: "-6 dB"})
	require.Len(t, g.s.Track.Sends, 1)
	assert.Equal(t, float32(0.6), g.s.Track.Sends[0].Level.Value)
}

func TestTransport(t *testing.T) {
	g := newRig()
	g.host(&protocol.TransportPlay{Playing: true})
	g.host(&protocol.TransportTempo{Tempo: 128})
	assert.True(t, g.s.Transport.Playing)
	assert.Equal(t, float32(128), g.s.Transport.Tempo)

	g.press(ControlPlay)
	assert.Equal(t, &protocol.TransportPlay{Playing: false}, g.out.last())

	g.host(&protocol.TransportStop{})
	assert.False(t, g.s.Transport.Playing)

	g.press(ControlResetAutomation)
	assert.Equal(t, &protocol.ResetAutomationOverrides{}, g.out.last())
}
