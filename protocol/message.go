// Package protocol defines the closed catalog of messages exchanged with
// the host, their size contract, the SysEx framing and the dispatcher that
// routes decoded messages to a single handler.
package protocol

import (
	"errors"
	"fmt"
	"sort"

	"go-surface/protocol/wire"
)

// MaxMessageSize is the default size of the dispatcher's outbound buffer.
const MaxMessageSize = 512

// Collection capacities carried by the catalog.
const (
	ParameterCount = 8
	WindowSize     = 16
	ChildTypeCount = 4
	OptionNameCap  = 32
	SendCap        = 8
	TrackListCap   = 32
)

var (
	ErrUnknownMessage = errors.New("protocol: unknown message")
	ErrShortPayload   = errors.New("protocol: payload shorter than minimum size")
	ErrBufferTooSmall = errors.New("protocol: buffer smaller than maximum size")
	ErrReentrant      = errors.New("protocol: dispatch re-entered")
)

// Message is one variant of the catalog. Implementations are the pointer
// types declared in this package.
type Message interface {
	ID() MessageID
	walk(s wire.Stream)
}

// Direction records who sends a variant.
type Direction uint8

const (
	ToHost Direction = iota
	ToController
	Bidirectional
)

func (d Direction) String() string {
	switch d {
	case ToHost:
		return "to-host"
	case ToController:
		return "to-controller"
	case Bidirectional:
		return "both"
	}
	return "?"
}

// Origin says how a frame reached the dispatcher. The transport decides it
// from the channel a frame arrived on; message content never does.
type Origin uint8

const (
	// OriginLocal is a controller-sent frame reflected back.
	OriginLocal Origin = iota
	// OriginHost is a change that started in the host.
	OriginHost
	// OriginEcho is the host confirming a change the controller requested.
	OriginEcho
)

func (o Origin) FromHost() bool { return o == OriginHost || o == OriginEcho }
func (o Origin) IsEcho() bool { return o == OriginEcho }

func (o Origin) String() string {
	switch o {
	case OriginLocal:
		return "local"
	case OriginHost:
		return "host"
	case OriginEcho:
		return "echo"
	}
	return fmt.Sprintf("origin(%d)", uint8(o))
}

// Info describes a catalog entry. MinSize assumes every string and
// sequence empty, MaxSize assumes every sequence full and every string at
// its cap; both include the diagnostic label of Binary variants.
type Info struct {
	ID        MessageID
	Name      string
	Profile   wire.Profile
	Direction Direction
	MinSize   int
	MaxSize   int

	new func() Message
}

// New returns a zero value of the variant.
func (i Info) New() Message { return i.new() }

var catalog [messageCount]Info

func register(id MessageID, name string, p wire.Profile, d Direction, fn func() Message) {
	info := Info{ID: id, Name: name, Profile: p, Direction: d, new: fn}
	label := 0
	if p == wire.Binary {
		label = 1 + len(name)
	}
	sz := wire.NewSizer(p)
	fn().walk(sz)
	info.MinSize = label + sz.Min()
	info.MaxSize = label + sz.Max()
	catalog[id] = info
}

// Lookup returns the catalog entry for id.
func Lookup(id MessageID) (Info, bool) {
	if int(id) >= len(catalog) || catalog[id].new == nil {
		return Info{}, false
	}
	return catalog[id], true
}

// All returns every catalog entry ordered by ID.
func All() []Info {
	out := make([]Info, 0, len(catalog))
	for _, info := range catalog {
		if info.new != nil {
			out = append(out, info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByName finds an entry by variant name.
func ByName(name string) (Info, bool) {
	for _, info := range catalog {
		if info.new != nil && info.Name == name {
			return info, true
		}
	}
	return Info{}, false
}

// Encode serializes m into buf and returns the number of bytes written.
// It writes nothing and returns 0 when buf is smaller than the variant's
// MaxSize.
func Encode(m Message, buf []byte) int {
	info, ok := Lookup(m.ID())
	if !ok || len(buf) < info.MaxSize {
		return 0
	}
	w := wire.NewWriter(info.Profile, buf)
	if info.Profile == wire.Binary {
		w.Label(info.Name)
	}
	m.walk(w)
	if w.Err() != nil {
		return 0
	}
	return w.Len()
}

// Decode parses payload as the variant tagged id.
func Decode(id MessageID, payload []byte) (Message, error) {
	m, _, err := decode(id, payload)
	return m, err
}

func decode(id MessageID, payload []byte) (Message, int, error) {
	info, ok := Lookup(id)
	if !ok {
		return nil, 0, fmt.Errorf("%w: 0x%02x", ErrUnknownMessage, uint8(id))
	}
	if len(payload) < info.MinSize {
		return nil, 0, fmt.Errorf("decode %s: %w (%d < %d)", info.Name, ErrShortPayload, len(payload), info.MinSize)
	}
	r := wire.NewReader(info.Profile, payload)
	if info.Profile == wire.Binary {
		r.Label()
	}
	m := info.New()
	m.walk(r)
	if err := r.Err(); err != nil {
		return nil, r.Clipped(), fmt.Errorf("decode %s: %w", info.Name, err)
	}
	return m, r.Clipped(), nil
}

// Frame is one de-framed message as delivered by a transport: the tag
// byte followed by the payload.
type Frame struct {
	Data   []byte
	Origin Origin
}

// ID returns the frame's tag, or false for an empty frame.
func (f Frame) ID() (MessageID, bool) {
	if len(f.Data) == 0 {
		return 0, false
	}
	return MessageID(f.Data[0]), true
}
