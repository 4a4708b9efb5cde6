package surface

// Windowed lists are stored in display coordinates. When a list is nested
// the host's item 0 sits at display index 1 and display index 0 holds a
// synthetic back entry that never reaches the wire.

// Window and capacity sizes of the lists. Capacities count display
// entries, back entry included.
const (
	WindowSize        = 16
	PrefetchThreshold = 4

	DeviceCapacity   = 16
	TrackCapacity    = 32
	PageCapacity     = 32
	ChildrenCapacity = 16
)

// BackLabel is the name shown for the back entry.
const BackLabel = "← Back"

// ToDisplay maps a raw host index to a display index.
func ToDisplay(raw int, nested bool) int {
	if nested {
		return raw + 1
	}
	return raw
}

// ToRaw maps a display index to a raw host index. It reports false for
// the back entry.
func ToRaw(display int, nested bool) (int, bool) {
	if IsBack(display, nested) {
		return 0, false
	}
	if nested {
		return display - 1, true
	}
	return display, true
}

// IsBack reports whether display is the back entry.
func IsBack(display int, nested bool) bool {
	return nested && display == 0
}

// ChildMask is the OR of the child kinds a device offers.
type ChildMask uint8

// ChildMaskOf folds a childTypes array; a zero entry ends it.
func ChildMaskOf(types []uint8) ChildMask {
	var m ChildMask
	for _, t := range types {
		if t == 0 {
			break
		}
		m |= ChildMask(t)
	}
	return m
}

func (m ChildMask) Has(kind uint8) bool { return m&ChildMask(kind) != 0 }
func (m ChildMask) Any() bool { return m != 0 }

// First returns the lowest child kind present, or 0.
func (m ChildMask) First() uint8 {
	for bit := uint8(1); bit != 0; bit <<= 1 {
		if m.Has(bit) {
			return bit
		}
	}
	return 0
}

// ListKind names one of the surface's lists.
type ListKind uint8

const (
	ListNone ListKind = iota
	ListDevices
	ListChildren
	ListTracks
	ListPages
)

func (k ListKind) String() string {
	switch k {
	case ListDevices:
		return "devices"
	case ListChildren:
		return "children"
	case ListTracks:
		return "tracks"
	case ListPages:
		return "pages"
	}
	return "none"
}

// Entry is one row of a list. Fields that do not apply to a list kind
// stay zero.
type Entry struct {
	Name     string
	Back     bool
	Loaded   bool
	Type     uint8
	Enabled  bool
	Children ChildMask

	Color       uint32
	Activated   bool
	Mute        bool
	Solo        bool
	MutedBySolo bool
	Arm         bool
	Group       bool
}

// Window is one page of a list as delivered by the host. Start and Cursor
// are raw indices.
type Window struct {
	Total      int
	Start      int
	Cursor     int
	Nested     bool
	ParentName string
	Items      []Entry
}

// WindowedList caches a host collection that arrives in windows.
type WindowedList struct {
	Kind     ListKind
	Capacity int

	Entries    []Entry
	Nested     bool
	HostCursor int
	Cursor     int
	Requested  bool
	Total      int
	LoadedUpTo int
	ParentName string
	Clipped    int
}

func newList(kind ListKind, capacity int) WindowedList {
	return WindowedList{Kind: kind, Capacity: capacity}
}

// Reset drops the cache ahead of a fresh load. Requested is kept.
func (l *WindowedList) Reset() {
	l.Entries = nil
	l.Nested = false
	l.HostCursor = 0
	l.Cursor = 0
	l.Total = 0
	l.LoadedUpTo = 0
	l.ParentName = ""
}

// ApplyWindow stores w at its absolute position. A window starting at zero
// replaces the cache and moves the cursor to the host's selection. Items
// beyond the capacity are dropped and counted in Clipped. If the host's
// selection lies past the loaded range, ApplyWindow returns the raw start
// of the window to request next.
func (l *WindowedList) ApplyWindow(w Window) (next int, fetch bool) {
	if w.Start == 0 {
		l.Entries = nil
	}
	l.Total = w.Total
	l.Nested = w.Nested
	l.ParentName = w.ParentName
	l.HostCursor = w.Cursor

	if l.Nested {
		l.grow(1)
		l.Entries[0] = Entry{Name: BackLabel, Back: true, Loaded: true}
	}
	clipped := false
	for i, item := range w.Items {
		d := ToDisplay(w.Start+i, l.Nested)
		if d >= l.Capacity {
			clipped = true
			break
		}
		l.grow(d + 1)
		item.Loaded = true
		l.Entries[d] = item
	}
	if clipped {
		l.Clipped++
	}

	loaded := min(w.Start+len(w.Items), w.Total)
	if loaded > l.LoadedUpTo {
		l.LoadedUpTo = loaded
	}
	if w.Start == 0 {
		l.Cursor = l.clampCursor(ToDisplay(w.Cursor, l.Nested))
	}
	if w.Cursor >= l.LoadedUpTo && l.LoadedUpTo < l.Total && l.LoadedUpTo < l.rawCapacity() {
		return l.LoadedUpTo, true
	}
	return 0, false
}

func (l *WindowedList) grow(n int) {
	for len(l.Entries) < n {
		l.Entries = append(l.Entries, Entry{})
	}
}

func (l *WindowedList) rawCapacity() int {
	if l.Nested {
		return l.Capacity - 1
	}
	return l.Capacity
}

func (l *WindowedList) clampCursor(c int) int {
	n := l.DisplayCount()
	if n == 0 {
		return 0
	}
	return max(0, min(c, n-1))
}

// DisplayCount is the number of navigable rows, back entry included.
func (l *WindowedList) DisplayCount() int {
	if l.Total > 0 {
		return min(ToDisplay(l.Total, l.Nested), l.Capacity)
	}
	return len(l.Entries)
}

// UpdateRaw applies fn to the entry at raw index. It reports false when the
// entry is not cached.
func (l *WindowedList) UpdateRaw(raw int, fn func(*Entry)) (display int, ok bool) {
	d := ToDisplay(raw, l.Nested)
	if raw < 0 || d >= len(l.Entries) || !l.Entries[d].Loaded {
		return d, false
	}
	fn(&l.Entries[d])
	return d, true
}

// Current returns the entry under the cursor.
func (l *WindowedList) Current() (Entry, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Entries) {
		return Entry{}, false
	}
	return l.Entries[l.Cursor], true
}

// Navigate moves the cursor by delta rows, wrapping at both ends. When the
// cursor comes within PrefetchThreshold rows of the loaded boundary it
// returns the raw start of the next window.
func (l *WindowedList) Navigate(delta int) (next int, fetch bool) {
	n := l.DisplayCount()
	if n == 0 {
		return 0, false
	}
	l.Cursor = wrapIndex(l.Cursor+delta, n)
	raw, ok := ToRaw(l.Cursor, l.Nested)
	if ok && shouldPrefetch(raw, l.LoadedUpTo, l.Total) {
		return l.LoadedUpTo, true
	}
	return 0, false
}

func shouldPrefetch(raw, loadedUpTo, total int) bool {
	return loadedUpTo < total && raw >= loadedUpTo-PrefetchThreshold
}

func wrapIndex(v, n int) int {
	return ((v % n) + n) % n
}

// ListView is a renderer snapshot of a list.
type ListView struct {
	Kind    ListKind
	Title   string
	Entries []Entry
	Cursor  int
	Nested  bool
	Total   int
	Loading bool
}

func (l *WindowedList) view() ListView {
	return ListView{
		Kind:    l.Kind,
		Title:   l.ParentName,
		Entries: append([]Entry(nil), l.Entries...),
		Cursor:  l.Cursor,
		Nested:  l.Nested,
		Total:   l.Total,
		Loading: l.Requested && len(l.Entries) == 0,
	}
}
