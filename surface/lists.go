package surface

import (
	"go-surface/debug"
	"go-surface/protocol"
)

func (s *Surface) list(k ListKind) *WindowedList {
	switch k {
	case ListDevices:
		return &s.Devices
	case ListChildren:
		return &s.Children
	case ListTracks:
		return &s.Tracks
	case ListPages:
		return &s.Pages
	}
	return nil
}

// applyWindow caches w and renders the list if the user has it open. A
// follow-up window is only requested for open lists.
func (s *Surface) applyWindow(l *WindowedList, w Window) {
	next, fetch := l.ApplyWindow(w)
	debug.Log("list", "%s window start=%d items=%d total=%d nested=%v",
		l.Kind, w.Start, len(w.Items), w.Total, w.Nested)
	if fetch && l.Requested {
		s.requestWindow(l.Kind, next)
	}
	s.showIfOpen(l)
}

func (s *Surface) showIfOpen(l *WindowedList) {
	if l.Requested && s.overlay == l.Kind {
		s.render.ShowList(l.view())
	}
}

func (s *Surface) onDeviceListWindow(m *protocol.DeviceListWindow) {
	items := make([]Entry, len(m.Devices))
	for i, d := range m.Devices {
		items[i] = Entry{
			Name:     d.Name,
			Type:     d.Type,
			Enabled:  d.Enabled,
			Children: ChildMaskOf(d.ChildTypes[:]),
		}
	}
	s.applyWindow(&s.Devices, Window{
		Total:      int(m.Total),
		Start:      int(m.Start),
		Cursor:     int(m.Cursor),
		Nested:     m.Nested,
		ParentName: m.ParentName,
		Items:      items,
	})
}

func (s *Surface) onDevicePageNamesWindow(m *protocol.DevicePageNamesWindow) {
	items := make([]Entry, len(m.Names))
	for i, name := range m.Names {
		items[i] = Entry{Name: name}
	}
	s.applyWindow(&s.Pages, Window{
		Total:      int(m.Total),
		Start:      int(m.Start),
		Cursor:     int(m.Cursor),
		ParentName: s.Device.Name,
		Items:      items,
	})
}

// onDeviceChildren shows the children of one device. The list is always
// nested: its back entry returns to the device list.
func (s *Surface) onDeviceChildren(m *protocol.DeviceChildren) {
	if int(m.DeviceIndex) != s.childDevice {
		debug.Log("list", "children for device %d, expected %d", m.DeviceIndex, s.childDevice)
		return
	}
	items := make([]Entry, len(m.Children))
	for i, c := range m.Children {
		items[i] = Entry{Name: c.Name, Type: c.ItemType}
	}
	parent := ""
	if e, ok := s.deviceEntry(s.childDevice); ok {
		parent = e.Name
	}
	s.applyWindow(&s.Children, Window{
		Total:      int(m.Total),
		Nested:     true,
		ParentName: parent,
		Items:      items,
	})
}

func (s *Surface) deviceEntry(raw int) (Entry, bool) {
	d := ToDisplay(raw, s.Devices.Nested)
	if raw < 0 || d >= len(s.Devices.Entries) || !s.Devices.Entries[d].Loaded {
		return Entry{}, false
	}
	return s.Devices.Entries[d], true
}

func (s *Surface) onDeviceEnabledState(m *protocol.DeviceEnabledState) {
	raw := int(m.DeviceIndex)
	if d, ok := s.Devices.UpdateRaw(raw, func(e *Entry) { e.Enabled = m.Enabled }); ok {
		s.render.SetDeviceEnabled(d, m.Enabled)
		s.showIfOpen(&s.Devices)
	}
	if raw == s.Devices.HostCursor {
		s.Device.Enabled = m.Enabled
		s.refresh()
	}
}

func (s *Surface) onTrackListWindow(m *protocol.TrackListWindow) {
	items := make([]Entry, len(m.Tracks))
	for i, t := range m.Tracks {
		items[i] = Entry{
			Name:        t.Name,
			Type:        t.Type,
			Color:       t.Color,
			Activated:   t.Activated,
			Mute:        t.Mute,
			Solo:        t.Solo,
			MutedBySolo: t.MutedBySolo,
			Arm:         t.Arm,
			Group:       t.Group,
		}
	}
	s.applyWindow(&s.Tracks, Window{
		Total:      int(m.Total),
		Start:      int(m.Start),
		Cursor:     int(m.Cursor),
		Nested:     m.Nested,
		ParentName: m.ParentName,
		Items:      items,
	})
}

// onTrackList handles the single-message track list, which always starts
// at zero.
func (s *Surface) onTrackList(m *protocol.TrackList) {
	items := make([]Entry, len(m.Tracks))
	for i, t := range m.Tracks {
		items[i] = Entry{
			Name:      t.Name,
			Color:     t.Color,
			Activated: t.Activated,
			Mute:      t.Mute,
			Solo:      t.Solo,
			Group:     t.Group,
		}
	}
	s.applyWindow(&s.Tracks, Window{
		Total:      int(m.Total),
		Cursor:     int(m.Cursor),
		Nested:     m.Nested,
		ParentName: m.ParentName,
		Items:      items,
	})
}

func (s *Surface) onTrackChange(m *protocol.TrackChange) {
	t := &s.Track
	changed := t.Index != int(m.TrackIndex)
	t.Name = m.Name
	t.Color = m.Color
	t.Index = int(m.TrackIndex)
	t.Type = m.Type
	t.Activated = m.Activated
	t.Mute = m.Mute
	t.Solo = m.Solo
	t.MutedBySolo = m.MutedBySolo
	t.Arm = m.Arm
	loadLevel(&t.Volume, m.Volume, m.VolumeDisplay)
	loadLevel(&t.Pan, m.Pan, m.PanDisplay)
	if changed {
		t.Sends = nil
		s.send(&protocol.RequestTrackSendList{TrackIndex: m.TrackIndex})
	}
	s.refresh()
}

// loadLevel fills a mixer slot from a full track description.
func loadLevel(sl *Slot, v float32, display string) {
	sl.Type = Continuous
	sl.Exists = true
	sl.Loading = false
	sl.Phase = PhaseBound
	sl.setValue(v)
	sl.setDisplay(display)
}

// updateTrack applies a per-track notification to the cached list entry,
// remapped to display coordinates, and to the selected track.
func (s *Surface) updateTrack(raw int, entry func(*Entry), track func(*TrackInfo)) {
	if _, ok := s.Tracks.UpdateRaw(raw, entry); ok {
		s.showIfOpen(&s.Tracks)
	}
	s.currentTrack(raw, track)
}

func (s *Surface) currentTrack(raw int, fn func(*TrackInfo)) {
	if raw != s.Track.Index {
		return
	}
	fn(&s.Track)
	s.refresh()
}

func (s *Surface) onTrackLevel(raw int, sl *Slot, c confirmation) {
	if raw != s.Track.Index {
		return
	}
	if reconcile(sl, c) {
		sl.Phase = PhaseBound
	}
	s.refresh()
}

func (s *Surface) onTrackSendList(m *protocol.TrackSendList) {
	if int(m.TrackIndex) != s.Track.Index {
		return
	}
	sends := make([]Send, len(m.Sends))
	for i, e := range m.Sends {
		snd := Send{
			Index:    int(e.Index),
			Name:     e.Name,
			Color:    e.Color,
			Enabled:  e.Enabled,
			Mode:     e.Mode,
			PreFader: e.PreFader,
		}
		loadLevel(&snd.Level, e.Value, e.Display)
		sends[i] = snd
	}
	s.Track.Sends = sends
	s.refresh()
}

func (s *Surface) withSend(track, send int, fn func(*Send)) {
	if track != s.Track.Index {
		return
	}
	for i := range s.Track.Sends {
		if s.Track.Sends[i].Index == send {
			fn(&s.Track.Sends[i])
			s.refresh()
			return
		}
	}
}

func (s *Surface) onSendDestinationsList(m *protocol.SendDestinationsList) {
	names := make([]string, len(m.Destinations))
	for i, d := range m.Destinations {
		names[i] = d.Name
	}
	s.SendDestinations = names
	s.refresh()
}
