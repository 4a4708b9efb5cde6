// Package surface holds the controller-side state: eight parameter slots
// reconciled against host confirmations, the windowed device, track, page
// and children lists, and the encoder bindings. All methods run on the
// event loop goroutine.
package surface

import (
	"go-surface/debug"
	"go-surface/protocol"
)

// Sender delivers outbound messages; the dispatcher implements it.
type Sender interface {
	Send(m protocol.Message) error
}

type Surface struct {
	out      Sender
	render   Renderer
	bind     *Binding
	settings Settings

	Slots       [ParameterCount]Slot
	LastClicked Slot
	Device      DeviceInfo
	Track       TrackInfo
	Transport   TransportInfo
	HostActive  bool

	Devices          WindowedList
	Children         WindowedList
	Tracks           WindowedList
	Pages            WindowedList
	SendDestinations []string

	overlay     ListKind
	childDevice int
}

// New returns a surface with every slot loading. A nil renderer or encoder
// bank is allowed.
func New(out Sender, render Renderer, enc Encoders) *Surface {
	s := &Surface{
		out:      out,
		render:   render,
		bind:     NewBinding(enc),
		settings: DefaultSettings(),
		Devices:  newList(ListDevices, DeviceCapacity),
		Children: newList(ListChildren, ChildrenCapacity),
		Tracks:   newList(ListTracks, TrackCapacity),
		Pages:    newList(ListPages, PageCapacity),
	}
	if s.render == nil {
		s.render = nopRenderer{}
	}
	s.resetAll()
	return s
}

// Start announces the surface to the host.
func (s *Surface) Start() {
	s.send(&protocol.RequestHostStatus{})
	s.refresh()
}

// Apply replaces the settings.
func (s *Surface) Apply(st Settings) {
	if st.Sensitivity <= 0 {
		st.Sensitivity = DefaultSettings().Sensitivity
	}
	s.settings = st
	debug.Log("surface", "settings: sensitivity=%.4f", st.Sensitivity)
}

// Overlay returns the list currently shown, or ListNone.
func (s *Surface) Overlay() ListKind { return s.overlay }

// Bound reports whether slot i currently accepts turns.
func (s *Surface) Bound(i int) bool { return s.bind.Bound(i) }

func (s *Surface) send(m protocol.Message) {
	if s.out == nil {
		return
	}
	if err := s.out.Send(m); err != nil {
		debug.Warn("surface", "send %s: %v", m.ID(), err)
	}
}

// Handle implements protocol.Handler. Each variant goes to exactly one
// method.
func (s *Surface) Handle(m protocol.Message, origin protocol.Origin) {
	switch m := m.(type) {
	// device
	case *protocol.DeviceChangeHeader:
		s.onDeviceChangeHeader(m)
	case *protocol.DeviceChange:
		s.onDeviceChange(m)
	case *protocol.DevicePageChange:
		s.onDevicePageChange(m)
	case *protocol.DeviceEnabledState:
		s.onDeviceEnabledState(m)
	case *protocol.DeviceListWindow:
		s.onDeviceListWindow(m)
	case *protocol.DevicePageNamesWindow:
		s.onDevicePageNamesWindow(m)
	case *protocol.DeviceChildren:
		s.onDeviceChildren(m)

	// remote controls
	case *protocol.RemoteControlUpdate:
		s.onRemoteControlUpdate(m)
	case *protocol.RemoteControlDiscreteValues:
		s.onRemoteControlDiscreteValues(m)
	case *protocol.RemoteControlValueState:
		s.onRemoteControlValueState(m, origin)
	case *protocol.RemoteControlNameChange:
		s.withSlot(int(m.Index), func(sl *Slot) { sl.Name = m.Name })
	case *protocol.RemoteControlHasAutomationChange:
		s.withSlot(int(m.Index), func(sl *Slot) { sl.HasAutomation = m.HasAutomation })
	case *protocol.RemoteControlIsModulatedChange:
		s.withSlot(int(m.Index), func(sl *Slot) { sl.IsModulated = m.IsModulated })
	case *protocol.RemoteControlOriginChange:
		s.withSlot(int(m.Index), func(sl *Slot) { sl.Origin = m.Origin })
	case *protocol.RemoteControlModulatedValueChange:
		s.withSlot(int(m.Index), func(sl *Slot) { sl.ModulationOffset = m.Modulated - sl.Value })
	case *protocol.RemoteControlsBatch:
		s.onRemoteControlsBatch(m, origin)

	// last clicked
	case *protocol.LastClickedUpdate:
		s.onLastClickedUpdate(m)
	case *protocol.LastClickedValueChange:
		s.onLastClickedValueChange(m, origin)

	// host
	case *protocol.HostInitialized:
		s.onHostInitialized(m)
	case *protocol.HostDeactivated:
		s.onHostDeactivated()

	// tracks
	case *protocol.TrackChange:
		s.onTrackChange(m)
	case *protocol.TrackListWindow:
		s.onTrackListWindow(m)
	case *protocol.TrackList:
		s.onTrackList(m)
	case *protocol.TrackMuteState:
		s.updateTrack(int(m.TrackIndex), func(e *Entry) { e.Mute = m.Mute }, func(t *TrackInfo) { t.Mute = m.Mute })
	case *protocol.TrackSoloState:
		s.updateTrack(int(m.TrackIndex), func(e *Entry) { e.Solo = m.Solo }, func(t *TrackInfo) { t.Solo = m.Solo })
	case *protocol.TrackArmState:
		s.updateTrack(int(m.TrackIndex), func(e *Entry) { e.Arm = m.Arm }, func(t *TrackInfo) { t.Arm = m.Arm })
	case *protocol.TrackMutedBySoloState:
		s.updateTrack(int(m.TrackIndex), func(e *Entry) { e.MutedBySolo = m.MutedBySolo },
			func(t *TrackInfo) { t.MutedBySolo = m.MutedBySolo })
	case *protocol.TrackVolumeState:
		s.onTrackLevel(int(m.TrackIndex), &s.Track.Volume, confirmation{m.Volume, m.Display, true, origin})
	case *protocol.TrackPanState:
		s.onTrackLevel(int(m.TrackIndex), &s.Track.Pan, confirmation{m.Pan, m.Display, true, origin})
	case *protocol.TrackVolumeHasAutomationState:
		s.currentTrack(int(m.TrackIndex), func(t *TrackInfo) { t.Volume.HasAutomation = m.HasAutomation })
	case *protocol.TrackPanHasAutomationState:
		s.currentTrack(int(m.TrackIndex), func(t *TrackInfo) { t.Pan.HasAutomation = m.HasAutomation })
	case *protocol.TrackVolumeModulatedValueState:
		s.currentTrack(int(m.TrackIndex), func(t *TrackInfo) { t.Volume.ModulationOffset = m.Modulated - t.Volume.Value })
	case *protocol.TrackPanModulatedValueState:
		s.currentTrack(int(m.TrackIndex), func(t *TrackInfo) { t.Pan.ModulationOffset = m.Modulated - t.Pan.Value })
	case *protocol.TrackSendList:
		s.onTrackSendList(m)
	case *protocol.SendDestinationsList:
		s.onSendDestinationsList(m)
	case *protocol.TrackSendValueState:
		s.withSend(int(m.TrackIndex), int(m.SendIndex), func(snd *Send) {
			reconcile(&snd.Level, confirmation{m.Value, m.Display, true, origin})
		})
	case *protocol.TrackSendEnabledState:
		s.withSend(int(m.TrackIndex), int(m.SendIndex), func(snd *Send) { snd.Enabled = m.Enabled })
	case *protocol.TrackSendModeState:
		s.withSend(int(m.TrackIndex), int(m.SendIndex), func(snd *Send) { snd.Mode = m.Mode })
	case *protocol.TrackSendPreFaderState:
		s.withSend(int(m.TrackIndex), int(m.SendIndex), func(snd *Send) { snd.PreFader = m.PreFader })
	case *protocol.TrackSendHasAutomationState:
		s.withSend(int(m.TrackIndex), int(m.SendIndex), func(snd *Send) { snd.Level.HasAutomation = m.HasAutomation })
	case *protocol.TrackSendModulatedValueState:
		s.withSend(int(m.TrackIndex), int(m.SendIndex), func(snd *Send) {
			snd.Level.ModulationOffset = m.Modulated - snd.Level.Value
		})

	// transport
	case *protocol.TransportPlay:
		s.withTransport(func(t *TransportInfo) { t.Playing = m.Playing })
	case *protocol.TransportRecord:
		s.withTransport(func(t *TransportInfo) { t.Recording = m.Recording })
	case *protocol.TransportStop:
		s.withTransport(func(t *TransportInfo) { t.Playing = false })
	case *protocol.TransportTempo:
		s.withTransport(func(t *TransportInfo) { t.Tempo = m.Tempo })
	case *protocol.TransportAutomationOverrideActive:
		s.withTransport(func(t *TransportInfo) { t.AutomationOverride = m.Active })
	case *protocol.TransportArrangerAutomationWrite:
		s.withTransport(func(t *TransportInfo) { t.ArrangerAutomationWrite = m.Enabled })
	case *protocol.TransportClipLauncherAutomationWrite:
		s.withTransport(func(t *TransportInfo) { t.ClipLauncherAutomationWrite = m.Enabled })
	case *protocol.TransportAutomationWriteMode:
		s.withTransport(func(t *TransportInfo) { t.AutomationWriteMode = m.Mode })
	case *protocol.TransportArrangerOverdub:
		s.withTransport(func(t *TransportInfo) { t.ArrangerOverdub = m.Enabled })
	case *protocol.TransportClipLauncherOverdub:
		s.withTransport(func(t *TransportInfo) { t.ClipLauncherOverdub = m.Enabled })

	default:
		// controller-bound commands reflected back, or variants the
		// surface has no state for
		debug.Log("surface", "ignored %s from %s", m.ID(), origin)
	}
}

func (s *Surface) onDeviceChangeHeader(m *protocol.DeviceChangeHeader) {
	s.Device.Name = m.DeviceName
	s.Device.Type = m.Type
	s.Device.Enabled = m.Enabled
	s.Device.PageName = m.Page.Name
	s.Device.PageIndex = int(m.Page.Index)
	s.Device.PageCount = int(m.Page.Count)
	s.Device.Children = ChildMaskOf(m.ChildTypes[:])
	s.beginTransition()
	s.refresh()
}

// beginTransition marks every slot loading and makes every binding inert
// until the slot's metadata arrives.
func (s *Surface) beginTransition() {
	s.bind.UnbindAll()
	for i := range s.Slots {
		s.Slots[i].reset()
		s.renderSlot(i)
	}
}

func (s *Surface) onDeviceChange(m *protocol.DeviceChange) {
	s.Device.TrackName = m.TrackName
	s.Device.Name = m.DeviceName
	s.Device.Enabled = m.Enabled
	s.beginTransition()
	s.applyPage(m.Page, m.Controls)
}

func (s *Surface) onDevicePageChange(m *protocol.DevicePageChange) {
	s.applyPage(m.Page, m.Controls)
}

func (s *Surface) applyPage(page protocol.PageInfo, controls []protocol.RemoteControl) {
	s.Device.PageName = page.Name
	s.Device.PageIndex = int(page.Index)
	s.Device.PageCount = int(page.Count)

	var seen [ParameterCount]bool
	for _, c := range controls {
		i := int(c.Index)
		if i >= ParameterCount {
			continue
		}
		seen[i] = true
		sl := &s.Slots[i]
		sl.applyMetadata(metadata{
			Name:          c.Name,
			Value:         c.Value,
			Display:       c.Display,
			Origin:        c.Origin,
			Exists:        c.Exists,
			Type:          c.Type,
			DiscreteCount: c.DiscreteCount,
			OptionIndex:   c.OptionIndex,
			HasAutomation: c.HasAutomation,
			Modulated:     c.Modulated,
		})
		sl.OptionNames = nonEmpty(c.OptionNames)
		sl.IsModulated = c.IsModulated
		s.bind.Bind(i, sl)
		s.renderSlot(i)
	}
	for i := range s.Slots {
		if seen[i] {
			continue
		}
		s.Slots[i].Exists = false
		s.Slots[i].Loading = false
		s.bind.Unbind(i)
		s.renderSlot(i)
	}
	s.refresh()
}

func (s *Surface) onRemoteControlUpdate(m *protocol.RemoteControlUpdate) {
	i := int(m.Index)
	if i >= ParameterCount {
		return
	}
	sl := &s.Slots[i]
	sl.applyMetadata(metadata{
		Name:          m.Name,
		Value:         m.Value,
		Display:       m.Display,
		Origin:        m.Origin,
		Exists:        m.Exists,
		Type:          m.Type,
		DiscreteCount: m.DiscreteCount,
		OptionIndex:   m.OptionIndex,
		HasAutomation: m.HasAutomation,
		Modulated:     m.Modulated,
	})
	if sl.Type != Enumerated {
		sl.OptionNames = nil
	}
	s.bind.Bind(i, sl)
	s.renderSlot(i)
}

func (s *Surface) onRemoteControlDiscreteValues(m *protocol.RemoteControlDiscreteValues) {
	s.withSlot(int(m.Index), func(sl *Slot) {
		sl.OptionNames = nonEmpty(m.OptionNames)
		sl.OptionIndex = int(m.OptionIndex)
	})
	if i := int(m.Index); s.bind.Bound(i) {
		s.bind.Bind(i, &s.Slots[i])
	}
}

func (s *Surface) onRemoteControlValueState(m *protocol.RemoteControlValueState, origin protocol.Origin) {
	s.confirm(int(m.Index), confirmation{m.Value, m.Display, true, origin})
}

// confirm reconciles a host value for slot i and keeps its encoder in
// step with external changes. It reports whether the slot was rendered.
func (s *Surface) confirm(i int, c confirmation) bool {
	if i < 0 || i >= ParameterCount {
		return false
	}
	sl := &s.Slots[i]
	before := *sl
	if reconcile(sl, c) {
		if sl.Type == Continuous {
			s.bind.Reposition(i, sl.Value)
		} else if s.bind.Bound(i) {
			s.bind.Bind(i, sl)
		}
		sl.Phase = PhaseBound
	}
	if sl.ValueApplies != before.ValueApplies || sl.DisplayApplies != before.DisplayApplies {
		s.renderSlot(i)
		return true
	}
	return false
}

func (s *Surface) onRemoteControlsBatch(m *protocol.RemoteControlsBatch, origin protocol.Origin) {
	for i := range s.Slots {
		sl := &s.Slots[i]
		bit := uint8(1) << i
		sl.HasAutomation = m.Automation&bit != 0
		sl.ModulationOffset = m.Modulated[i] - sl.Value
		if m.Dirty&bit == 0 {
			s.renderSlot(i)
			continue
		}
		o := origin
		if m.Echo&bit != 0 && origin.FromHost() {
			o = protocol.OriginEcho
		}
		rendered := s.confirm(i, confirmation{
			Value:      m.Values[i],
			Display:    m.Displays[i],
			HasDisplay: m.Displays[i] != "",
			Origin:     o,
		})
		if !rendered {
			s.renderSlot(i)
		}
	}
}

func (s *Surface) withSlot(i int, fn func(*Slot)) {
	if i < 0 || i >= ParameterCount {
		return
	}
	fn(&s.Slots[i])
	s.renderSlot(i)
}

func (s *Surface) onLastClickedUpdate(m *protocol.LastClickedUpdate) {
	sl := &s.LastClicked
	sl.applyMetadata(metadata{
		Name:          m.Name,
		Value:         m.Value,
		Display:       m.Display,
		Origin:        m.Origin,
		Exists:        m.Exists,
		Type:          m.Type,
		DiscreteCount: m.DiscreteCount,
		OptionIndex:   m.OptionIndex,
	})
	s.bind.Bind(LastClickedIndex, sl)
	s.render.SetParameter(LastClickedIndex, sl.snapshot())
}

func (s *Surface) onLastClickedValueChange(m *protocol.LastClickedValueChange, origin protocol.Origin) {
	sl := &s.LastClicked
	if reconcile(sl, confirmation{m.Value, m.Display, true, origin}) {
		if sl.Type == Continuous {
			s.bind.Reposition(LastClickedIndex, sl.Value)
		} else {
			s.bind.Bind(LastClickedIndex, sl)
		}
		sl.Phase = PhaseBound
	}
	s.render.SetParameter(LastClickedIndex, sl.snapshot())
}

func (s *Surface) onHostInitialized(m *protocol.HostInitialized) {
	s.HostActive = m.Active
	s.refresh()
}

func (s *Surface) onHostDeactivated() {
	s.resetAll()
	s.refresh()
}

// resetAll returns every cache to its initial loading state.
func (s *Surface) resetAll() {
	s.HostActive = false
	s.Device = DeviceInfo{}
	s.Track = TrackInfo{Index: -1}
	s.Track.Volume.reset()
	s.Track.Pan.reset()
	s.Transport = TransportInfo{}
	s.LastClicked.clear()
	s.SendDestinations = nil
	for _, l := range s.lists() {
		l.Reset()
		l.Requested = false
	}
	if s.overlay != ListNone {
		s.overlay = ListNone
		s.render.HideList()
	}
	s.bind.UnbindAll()
	for i := range s.Slots {
		s.Slots[i].clear()
		s.renderSlot(i)
	}
}

func (s *Surface) lists() []*WindowedList {
	return []*WindowedList{&s.Devices, &s.Children, &s.Tracks, &s.Pages}
}

func (s *Surface) withTransport(fn func(*TransportInfo)) {
	fn(&s.Transport)
	s.refresh()
}

func (s *Surface) renderSlot(i int) {
	s.render.SetParameter(i, s.Slots[i].snapshot())
}

func (s *Surface) refresh() {
	s.render.Refresh(s.View())
}

// View returns a snapshot of the header state.
func (s *Surface) View() View {
	return View{
		HostActive:       s.HostActive,
		Device:           s.Device,
		Track:            s.Track.snapshot(),
		Transport:        s.Transport,
		LastClicked:      s.LastClicked.snapshot(),
		SendDestinations: append([]string(nil), s.SendDestinations...),
		Overlay:          s.overlay,
	}
}

// Slot returns a copy of slot i.
func (s *Surface) Slot(i int) Slot {
	if i == LastClickedIndex {
		return s.LastClicked.snapshot()
	}
	return s.Slots[i].snapshot()
}

type nopRenderer struct{}

func (nopRenderer) SetParameter(int, Slot)     {}
func (nopRenderer) SetDeviceEnabled(int, bool) {}
func (nopRenderer) ShowList(ListView)          {}
func (nopRenderer) HideList()                  {}
func (nopRenderer) Refresh(View)               {}

var _ protocol.Handler = (*Surface)(nil)
