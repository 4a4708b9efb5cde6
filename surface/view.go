package surface

// DeviceInfo describes the device in focus.
type DeviceInfo struct {
	Name      string
	Type      uint8
	Enabled   bool
	PageName  string
	PageIndex int
	PageCount int
	Children  ChildMask
	TrackName string
}

// TrackInfo describes the selected track. Volume and Pan follow the
// continuous reconciliation rules.
type TrackInfo struct {
	Name        string
	Color       uint32
	Index       int
	Type        uint8
	Activated   bool
	Mute        bool
	Solo        bool
	MutedBySolo bool
	Arm         bool
	Volume      Slot
	Pan         Slot
	Sends       []Send
}

// Send is one send of the selected track.
type Send struct {
	Index    int
	Name     string
	Color    uint32
	Level    Slot
	Enabled  bool
	Mode     string
	PreFader bool
}

type TransportInfo struct {
	Playing                     bool
	Recording                   bool
	Tempo                       float32
	AutomationOverride          bool
	ArrangerAutomationWrite     bool
	ClipLauncherAutomationWrite bool
	AutomationWriteMode         string
	ArrangerOverdub             bool
	ClipLauncherOverdub         bool
}

// View is the renderer snapshot of everything outside the slots and lists.
type View struct {
	HostActive       bool
	Device           DeviceInfo
	Track            TrackInfo
	Transport        TransportInfo
	LastClicked      Slot
	SendDestinations []string
	Overlay          ListKind
}

// Renderer draws the surface. It receives copies and must not retain
// pointers into surface state.
type Renderer interface {
	SetParameter(index int, s Slot)
	SetDeviceEnabled(index int, enabled bool)
	ShowList(v ListView)
	HideList()
	Refresh(v View)
}

func (t TrackInfo) snapshot() TrackInfo {
	t.Volume = t.Volume.snapshot()
	t.Pan = t.Pan.snapshot()
	if t.Sends != nil {
		t.Sends = append([]Send(nil), t.Sends...)
	}
	return t
}
