// Package tui is the terminal front end of the surface: a bubbletea
// program that renders surface state and turns keys into surface input.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"go-surface/surface"
)

// Messages delivered to the model by the bridge.
type (
	ParamMsg struct {
		Index int
		Slot  surface.Slot
	}
	EnabledMsg struct {
		Index   int
		Enabled bool
	}
	ShowListMsg surface.ListView
	HideListMsg struct{}
	ViewMsg     surface.View
	EncoderMsg  struct {
		ID    int
		Mode  surface.EncoderMode
		Steps int
		Pos   float32
		// Moved is set for position updates, clear for mode updates.
		Moved bool
	}
	// LinkMsg reports a MIDI port pair coming or going.
	LinkMsg struct {
		ID        string
		Connected bool
	}
)

// Bridge implements surface.Renderer and surface.Encoders by posting
// messages to a running program. Calls made before Attach are dropped.
type Bridge struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

func NewBridge() *Bridge { return &Bridge{} }

// Attach routes messages to send, usually (*tea.Program).Send.
func (b *Bridge) Attach(send func(tea.Msg)) {
	b.mu.Lock()
	b.send = send
	b.mu.Unlock()
}

// Post delivers msg to the program.
func (b *Bridge) Post(msg tea.Msg) {
	b.mu.RLock()
	send := b.send
	b.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}

func (b *Bridge) SetParameter(index int, s surface.Slot) { b.Post(ParamMsg{Index: index, Slot: s}) }

func (b *Bridge) SetDeviceEnabled(index int, enabled bool) {
	b.Post(EnabledMsg{Index: index, Enabled: enabled})
}

func (b *Bridge) ShowList(v surface.ListView) { b.Post(ShowListMsg(v)) }
func (b *Bridge) HideList()                   { b.Post(HideListMsg{}) }
func (b *Bridge) Refresh(v surface.View)      { b.Post(ViewMsg(v)) }

func (b *Bridge) SetMode(id int, mode surface.EncoderMode, steps int) {
	b.Post(EncoderMsg{ID: id, Mode: mode, Steps: steps})
}

func (b *Bridge) SetPosition(id int, pos float32) {
	b.Post(EncoderMsg{ID: id, Pos: pos, Moved: true})
}

var (
	_ surface.Renderer = (*Bridge)(nil)
	_ surface.Encoders = (*Bridge)(nil)
)
