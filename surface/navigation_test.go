package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-surface/protocol"
)

func deviceWindow(nested bool, cursor int, names ...string) *protocol.DeviceListWindow {
	w := &protocol.DeviceListWindow{Total: uint8(len(names)), Cursor: uint8(cursor), Nested: nested, ParentName: "Rack"}
	for i, n := range names {
		w.Devices = append(w.Devices, protocol.DeviceEntry{Index: uint8(i), Name: n, Enabled: true})
	}
	return w
}

func TestNestedDeviceList(t *testing.T) {
	g := newRig()
	g.press(ControlDevices)
	g.host(deviceWindow(true, 1, "A", "B", "C"))

	v := g.r.lastList()
	require.Len(t, v.Entries, 4)
	assert.Equal(t, []string{BackLabel, "A", "B", "C"}, []string{v.Entries[0].Name, v.Entries[1].Name, v.Entries[2].Name, v.Entries[3].Name})
	assert.Equal(t, 2, v.Cursor)

	g.host(&protocol.DeviceEnabledState{DeviceIndex: 0, Enabled: false})
	assert.Equal(t, []enabledCall{{index: 1, enabled: false}}, g.r.enabled)
	assert.False(t, g.s.Devices.Entries[1].Enabled)
	assert.True(t, g.s.Devices.Entries[0].Back)
}

func TestNestedTrackMuteRemaps(t *testing.T) {
	g := newRig()
	g.host(&protocol.TrackListWindow{Total: 3, Nested: true, Tracks: []protocol.TrackEntry{
		{Index: 0, Name: "A"}, {Index: 1, Name: "B"}, {Index: 2, Name: "C"},
	}})

	g.host(&protocol.TrackMuteState{TrackIndex: 0, Mute: true})
	assert.True(t, g.s.Tracks.Entries[1].Mute)
	assert.False(t, g.s.Tracks.Entries[0].Mute)
}

func TestUnsolicitedWindowStaysHidden(t *testing.T) {
	g := newRig()
	g.host(deviceWindow(false, 0, "EQ", "Comp"))

	assert.Empty(t, g.r.shown)
	assert.Len(t, g.s.Devices.Entries, 2, "cache is still warmed")
}

func TestOpenRequestsFirstWindow(t *testing.T) {
	g := newRig()
	g.press(ControlTracks)

	assert.Equal(t, ListTracks, g.s.Overlay())
	assert.Equal(t, []protocol.Message{
		&protocol.ViewState{ViewType: protocol.ViewMix, SelectorActive: true},
		&protocol.RequestTrackListWindow{StartIndex: 0},
	}, g.out.msgs)
	assert.True(t, g.r.lastList().Loading)

	g.out.reset()
	g.press(ControlTracks)
	assert.Equal(t, ListNone, g.s.Overlay())
	assert.Equal(t, []protocol.Message{&protocol.ViewState{ViewType: protocol.ViewMix}}, g.out.msgs)
	assert.Equal(t, 1, g.r.hidden)
}

func TestConfirmSelectsRawIndex(t *testing.T) {
	g := newRig()
	g.press(ControlDevices)
	g.host(deviceWindow(true, 1, "A", "B", "C"))
	g.out.reset()

	g.s.Navigate(1)
	g.press(ControlConfirm)

	require.NotEmpty(t, g.out.msgs)
	assert.Equal(t, &protocol.DeviceSelect{DeviceIndex: 2}, g.out.msgs[0])
	assert.Equal(t, ListNone, g.s.Overlay())
}

func TestConfirmBackExitsToParent(t *testing.T) {
	g := newRig()
	g.press(ControlDevices)
	g.host(deviceWindow(true, 0, "A", "B"))
	g.out.reset()

	g.s.Navigate(-1)
	require.Equal(t, 0, g.s.Devices.Cursor)
	g.press(ControlConfirm)

	assert.Equal(t, []protocol.Message{
		&protocol.ExitToParent{},
		&protocol.RequestDeviceListWindow{StartIndex: 0},
	}, g.out.msgs)
	for _, m := range g.out.msgs {
		assert.NotEqual(t, protocol.MsgDeviceSelect, m.ID())
	}
	assert.Equal(t, ListDevices, g.s.Overlay(), "the list stays open for the parent level")
}

func TestEnterDeviceChildren(t *testing.T) {
	g := newRig()
	g.press(ControlDevices)
	w := deviceWindow(false, 1, "EQ", "Rack")
	w.Devices[1].ChildTypes = [4]uint8{protocol.ChildLayers, protocol.ChildSlots, 0, 0}
	g.host(w)
	g.out.reset()

	g.press(ControlEnter)
	assert.Equal(t, &protocol.RequestDeviceChildren{DeviceIndex: 1, ChildType: protocol.ChildSlots}, g.out.last())
	assert.Equal(t, ListChildren, g.s.Overlay())

	g.host(&protocol.DeviceChildren{DeviceIndex: 1, ChildType: protocol.ChildSlots, Total: 2, Children: []protocol.ChildEntry{
		{Index: 0, Name: "FX", ItemType: protocol.ChildSlots},
		{Index: 1, Name: "Chain", ItemType: protocol.ChildLayers},
	}})
	v := g.r.lastList()
	require.Len(t, v.Entries, 3)
	assert.True(t, v.Entries[0].Back)
	assert.Equal(t, "Rack", v.Title)

	g.out.reset()
	g.s.Navigate(1)
	g.press(ControlConfirm)
	assert.Equal(t, &protocol.EnterDeviceChild{DeviceIndex: 1, ChildType: protocol.ChildLayers, ChildIndex: 1}, g.out.msgs[0])
	assert.Equal(t, ListDevices, g.s.Overlay())
}

func TestChildrenBackReturnsToDevices(t *testing.T) {
	g := newRig()
	g.press(ControlDevices)
	w := deviceWindow(false, 0, "Rack")
	w.Devices[0].ChildTypes = [4]uint8{protocol.ChildDrums, 0, 0, 0}
	g.host(w)
	g.press(ControlEnter)
	g.host(&protocol.DeviceChildren{DeviceIndex: 0, ChildType: protocol.ChildDrums, Total: 1, Children: []protocol.ChildEntry{{Name: "Kick"}}})
	g.out.reset()

	g.s.Navigate(-1)
	g.press(ControlConfirm)

	assert.Empty(t, g.out.msgs)
	assert.Equal(t, ListDevices, g.s.Overlay())
	assert.Equal(t, "Rack", g.r.lastList().Entries[0].Name)
}

func TestChildrenForOtherDeviceIgnored(t *testing.T) {
	g := newRig()
	g.host(&protocol.DeviceChildren{DeviceIndex: 4, Total: 1, Children: []protocol.ChildEntry{{Name: "X"}}})
	assert.Empty(t, g.s.Children.Entries)
}

func TestNavigatePrefetchesNextWindow(t *testing.T) {
	g := newRig()
	g.press(ControlTracks)
	tracks := make([]protocol.TrackEntry, 16)
	for i := range tracks {
		tracks[i] = protocol.TrackEntry{Index: uint8(i), Name: "T"}
	}
	g.host(&protocol.TrackListWindow{Total: 30, Tracks: tracks})
	g.out.reset()

	g.s.HandleInput(Input{Control: ControlNav, Kind: Turned, Delta: 12})

	assert.Equal(t, 12, g.s.Tracks.Cursor)
	assert.Equal(t, &protocol.RequestTrackListWindow{StartIndex: 16}, g.out.last())

	g.host(&protocol.TrackListWindow{Total: 30, Start: 16, Tracks: tracks[:14]})
	assert.Len(t, g.s.Tracks.Entries, 30)
	assert.Equal(t, 12, g.s.Tracks.Cursor, "later windows keep the cursor")
}

func TestToggleSendsNegatedState(t *testing.T) {
	g := newRig()
	g.press(ControlTracks)
	g.host(&protocol.TrackListWindow{Total: 2, Cursor: 1, Tracks: []protocol.TrackEntry{
		{Index: 0, Name: "A"}, {Index: 1, Name: "B", Mute: true, Solo: false},
	}})
	g.out.reset()

	g.press(ControlToggle)
	g.press(ControlSolo)
	g.press(ControlArm)

	assert.Equal(t, []protocol.Message{
		&protocol.TrackMute{TrackIndex: 1, Mute: false},
		&protocol.TrackSolo{TrackIndex: 1, Solo: true},
		&protocol.TrackArm{TrackIndex: 1, Arm: true},
	}, g.out.msgs)
	assert.True(t, g.s.Tracks.Entries[1].Mute, "the cache waits for the host")
}

func TestEnterTrackGroup(t *testing.T) {
	g := newRig()
	g.press(ControlTracks)
	g.host(&protocol.TrackListWindow{Total: 1, Tracks: []protocol.TrackEntry{{Name: "Drums", Group: true}}})
	g.out.reset()

	g.press(ControlEnter)
	assert.Equal(t, []protocol.Message{
		&protocol.EnterTrackGroup{TrackIndex: 0},
		&protocol.RequestTrackListWindow{StartIndex: 0},
	}, g.out.msgs)
}

func TestPageSelect(t *testing.T) {
	g := newRig()
	g.press(ControlPages)
	g.host(&protocol.DevicePageNamesWindow{Total: 3, Names: []string{"Main", "Env", "LFO"}})
	g.out.reset()

	g.s.Navigate(2)
	g.press(ControlConfirm)
	assert.Equal(t, &protocol.DevicePageSelect{PageIndex: 2}, g.out.msgs[0])
}

func TestKnobEchoAppliesOnce(t *testing.T) {
	g := newRig()
	g.s.Apply(Settings{Sensitivity: 0.42})
	g.host(&protocol.DevicePageChange{Controls: []protocol.RemoteControl{knob(0, 0, "0 %")}})
	before := g.s.Slots[0].ValueApplies

	g.s.Turn(0, 1)
	g.echo(&protocol.RemoteControlValueState{Index: 0, Value: 0.42, Display: "42 %"})

	assert.Equal(t, float32(0.42), g.s.Slots[0].Value)
	assert.Equal(t, 1, g.s.Slots[0].ValueApplies-before)
	assert.Equal(t, &protocol.RemoteControlValue{Index: 0, Value: 0.42}, g.out.last())
}

func TestTouchAndRestoreAutomation(t *testing.T) {
	g := newRig()
	g.host(mixedPage())

	g.s.HandleInput(Input{Control: SlotControl(1), Kind: Pressed})
	g.s.HandleInput(Input{Control: SlotControl(1), Kind: Released})
	g.s.HandleInput(Input{Control: SlotControl(1), Kind: Reset})

	assert.Equal(t, []protocol.Message{
		&protocol.RemoteControlTouch{Index: 1, Touched: true},
		&protocol.RemoteControlTouch{Index: 1, Touched: false},
		&protocol.RemoteControlRestoreAutomation{Index: 1},
	}, g.out.msgs)
}
