package surface

import (
	"math"

	"go-surface/debug"
	"go-surface/protocol"
	"go-surface/protocol/wire"
)

// HandleInput runs one input event to completion.
func (s *Surface) HandleInput(in Input) {
	if i, ok := in.Control.slot(); ok {
		s.slotInput(i, in)
		return
	}
	if in.Control == ControlLastClicked {
		s.slotInput(LastClickedIndex, in)
		return
	}
	if in.Control == ControlNav {
		if in.Kind == Turned {
			s.Navigate(detents(in.Delta))
		}
		return
	}
	if in.Kind != Pressed {
		return
	}
	switch in.Control {
	case ControlDevices:
		s.Open(ListDevices)
	case ControlTracks:
		s.Open(ListTracks)
	case ControlPages:
		s.Open(ListPages)
	case ControlConfirm:
		s.Confirm()
	case ControlEnter:
		s.Enter()
	case ControlCancel:
		s.Close()
	case ControlToggle:
		s.Toggle()
	case ControlSolo:
		s.Solo()
	case ControlArm:
		s.Arm()
	case ControlPlay:
		s.send(&protocol.TransportPlay{Playing: !s.Transport.Playing})
	case ControlRecord:
		s.send(&protocol.TransportRecord{Recording: !s.Transport.Recording})
	case ControlStop:
		s.send(&protocol.TransportStop{})
	case ControlResetAutomation:
		s.send(&protocol.ResetAutomationOverrides{})
	}
}

func (s *Surface) slotInput(i int, in Input) {
	switch in.Kind {
	case Turned:
		s.Turn(i, in.Delta)
	case Pressed, Released:
		s.Touch(i, in.Kind == Pressed)
	case Reset:
		if i < ParameterCount {
			s.send(&protocol.RemoteControlRestoreAutomation{Index: uint8(i)})
		}
	}
}

func (s *Surface) slotPtr(i int) *Slot {
	if i == LastClickedIndex {
		return &s.LastClicked
	}
	return &s.Slots[i]
}

// Turn moves slot i by delta detents. Continuous slots change locally
// right away; stepped slots only ask the host and wait for its answer.
// Turns on an inert binding are ignored.
func (s *Surface) Turn(i int, delta float32) {
	if !s.bind.Bound(i) || delta == 0 {
		return
	}
	sl := s.slotPtr(i)

	if steps := sl.Steps(); steps >= 2 {
		idx := max(0, min(sl.OptionIndex+detents(delta), steps-1))
		if idx == sl.OptionIndex {
			return
		}
		s.sendValue(i, float32(idx)/float32(steps-1))
		return
	}

	v := wire.Clamp01(sl.Value + delta*s.settings.Sensitivity)
	if v == sl.Value {
		return
	}
	sl.setValue(v)
	sl.Phase = PhaseDirtyLocal
	s.bind.Reposition(i, v)
	s.render.SetParameter(i, sl.snapshot())
	s.sendValue(i, v)
}

func (s *Surface) sendValue(i int, v float32) {
	if i == LastClickedIndex {
		s.send(&protocol.LastClickedValueChange{Value: v})
		return
	}
	s.send(&protocol.RemoteControlValue{Index: uint8(i), Value: v})
}

// Touch reports an encoder touch so the host can latch automation.
func (s *Surface) Touch(i int, touched bool) {
	if !s.bind.Bound(i) {
		return
	}
	if i == LastClickedIndex {
		s.send(&protocol.LastClickedTouch{Touched: touched})
		return
	}
	s.send(&protocol.RemoteControlTouch{Index: uint8(i), Touched: touched})
}

// detents rounds a turn to whole steps, at least one in the direction of
// travel.
func detents(delta float32) int {
	n := int(math.Round(float64(delta)))
	switch {
	case n == 0 && delta > 0:
		return 1
	case n == 0 && delta < 0:
		return -1
	}
	return n
}

func viewOf(k ListKind) uint8 {
	if k == ListTracks {
		return protocol.ViewMix
	}
	return protocol.ViewRemoteControls
}

// Open shows a list and requests its first window. Opening the list that
// is already shown closes it.
func (s *Surface) Open(k ListKind) {
	if s.overlay == k {
		s.Close()
		return
	}
	if s.overlay != ListNone {
		s.list(s.overlay).Requested = false
	}
	l := s.list(k)
	l.Requested = true
	l.Reset()
	s.overlay = k
	s.render.ShowList(l.view())
	s.send(&protocol.ViewState{ViewType: viewOf(k), SelectorActive: true})
	s.requestWindow(k, 0)
	s.refresh()
}

// Close hides the open list. Its cache stays warm.
func (s *Surface) Close() {
	if s.overlay == ListNone {
		return
	}
	k := s.overlay
	for _, l := range s.lists() {
		l.Requested = false
	}
	s.overlay = ListNone
	s.render.HideList()
	s.send(&protocol.ViewState{ViewType: viewOf(k), SelectorActive: false})
	s.refresh()
}

func (s *Surface) requestWindow(k ListKind, start int) {
	switch k {
	case ListDevices:
		s.send(&protocol.RequestDeviceListWindow{StartIndex: uint8(start)})
	case ListTracks:
		s.send(&protocol.RequestTrackListWindow{StartIndex: uint8(start)})
	case ListPages:
		s.send(&protocol.RequestDevicePageNamesWindow{StartIndex: uint8(start)})
	case ListChildren:
		// children arrive in one message
	}
}

// reload drops a list's cache and asks for its first window again, as
// after entering or leaving a level of the hierarchy.
func (s *Surface) reload(k ListKind) {
	l := s.list(k)
	l.Reset()
	s.showIfOpen(l)
	s.requestWindow(k, 0)
}

// Navigate moves the open list's cursor.
func (s *Surface) Navigate(delta int) {
	l := s.list(s.overlay)
	if l == nil {
		return
	}
	if next, fetch := l.Navigate(delta); fetch {
		s.requestWindow(l.Kind, next)
	}
	s.showIfOpen(l)
}

// Confirm selects the entry under the cursor. The back entry leaves the
// current level instead of selecting anything.
func (s *Surface) Confirm() {
	l := s.list(s.overlay)
	if l == nil {
		return
	}
	e, ok := l.Current()
	if !ok || !e.Loaded {
		return
	}
	raw, ok := ToRaw(l.Cursor, l.Nested)
	if !ok {
		s.back(l.Kind)
		return
	}

	switch l.Kind {
	case ListDevices:
		s.send(&protocol.DeviceSelect{DeviceIndex: uint8(raw)})
		s.Close()
	case ListPages:
		s.send(&protocol.DevicePageSelect{PageIndex: uint8(raw)})
		s.Close()
	case ListTracks:
		s.send(&protocol.TrackSelect{TrackIndex: uint8(raw)})
		s.Close()
	case ListChildren:
		s.send(&protocol.EnterDeviceChild{
			DeviceIndex: uint8(s.childDevice),
			ChildType:   e.Type,
			ChildIndex:  uint8(raw),
		})
		s.switchOverlay(ListDevices)
		s.reload(ListDevices)
	}
}

func (s *Surface) back(k ListKind) {
	debug.Log("list", "back from %s", k)
	switch k {
	case ListDevices:
		s.send(&protocol.ExitToParent{})
		s.reload(ListDevices)
	case ListTracks:
		s.send(&protocol.ExitTrackGroup{})
		s.reload(ListTracks)
	case ListChildren:
		s.Children.Requested = false
		s.switchOverlay(ListDevices)
		s.showIfOpen(&s.Devices)
	}
}

func (s *Surface) switchOverlay(k ListKind) {
	if s.overlay != ListNone {
		s.list(s.overlay).Requested = false
	}
	s.overlay = k
	s.list(k).Requested = true
}

// Enter dives into the entry under the cursor: a device's children or a
// track group.
func (s *Surface) Enter() {
	l := s.list(s.overlay)
	if l == nil {
		return
	}
	e, ok := l.Current()
	raw, notBack := ToRaw(l.Cursor, l.Nested)
	if !ok || !notBack || !e.Loaded {
		return
	}
	switch l.Kind {
	case ListDevices:
		kind := e.Children.First()
		if kind == 0 {
			return
		}
		s.childDevice = raw
		s.Children.Reset()
		s.switchOverlay(ListChildren)
		s.render.ShowList(s.Children.view())
		s.send(&protocol.RequestDeviceChildren{DeviceIndex: uint8(raw), ChildType: kind})
	case ListTracks:
		if !e.Group {
			return
		}
		s.send(&protocol.EnterTrackGroup{TrackIndex: uint8(raw)})
		s.reload(ListTracks)
	}
}

// Toggle flips the device or track mute state under the cursor, or the
// current device when no list is open. The cache only changes when the
// host confirms.
func (s *Surface) Toggle() {
	switch s.overlay {
	case ListDevices:
		if raw, e, ok := s.currentRaw(&s.Devices); ok {
			s.send(&protocol.DeviceState{DeviceIndex: uint8(raw), Enabled: !e.Enabled})
		}
	case ListTracks:
		if raw, e, ok := s.currentRaw(&s.Tracks); ok {
			s.send(&protocol.TrackMute{TrackIndex: uint8(raw), Mute: !e.Mute})
		}
	case ListNone:
		if s.Device.Name != "" {
			s.send(&protocol.DeviceState{DeviceIndex: uint8(s.Devices.HostCursor), Enabled: !s.Device.Enabled})
		}
	}
}

// Solo toggles solo of the track under the cursor, or of the selected
// track.
func (s *Surface) Solo() {
	if raw, e, ok := s.currentRaw(&s.Tracks); ok && s.overlay == ListTracks {
		s.send(&protocol.TrackSolo{TrackIndex: uint8(raw), Solo: !e.Solo})
		return
	}
	if s.Track.Index >= 0 {
		s.send(&protocol.TrackSolo{TrackIndex: uint8(s.Track.Index), Solo: !s.Track.Solo})
	}
}

func (s *Surface) Arm() {
	if raw, e, ok := s.currentRaw(&s.Tracks); ok && s.overlay == ListTracks {
		s.send(&protocol.TrackArm{TrackIndex: uint8(raw), Arm: !e.Arm})
		return
	}
	if s.Track.Index >= 0 {
		s.send(&protocol.TrackArm{TrackIndex: uint8(s.Track.Index), Arm: !s.Track.Arm})
	}
}

func (s *Surface) currentRaw(l *WindowedList) (int, Entry, bool) {
	e, ok := l.Current()
	if !ok || !e.Loaded || e.Back {
		return 0, Entry{}, false
	}
	raw, ok := ToRaw(l.Cursor, l.Nested)
	return raw, e, ok
}
