package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-surface/surface"
	"go-surface/theme"
	"go-surface/widgets"
)

type encoderState struct {
	mode  surface.EncoderMode
	steps int
	pos   float32
}

type Model struct {
	Theme *theme.Theme

	// Input receives every surface input produced by keys and the mouse.
	Input func(surface.Input) bool
	// Coarse is the detent count of a shifted turn.
	Coarse float32

	slots    [surface.ParameterCount + 1]surface.Slot
	encoders [surface.ParameterCount + 1]encoderState
	view     surface.View
	list     *surface.ListView
	links    map[string]bool
	focus    int
	help     bool
	quitting bool
}

func NewModel(th *theme.Theme, input func(surface.Input) bool, coarse float32) Model {
	if coarse < 1 {
		coarse = 1
	}
	return Model{
		Theme:  th,
		Input:  input,
		Coarse: coarse,
		links:  make(map[string]bool),
		view:   surface.View{Track: surface.TrackInfo{Index: -1}},
	}
}

func (m Model) Init() tea.Cmd { return nil }

var keyHelp = []widgets.KeySection{
	{Title: "Encoders", Keys: []widgets.KeyBinding{
		{Key: "1-8 / 0", Desc: "focus slot / last clicked"},
		{Key: "h l", Desc: "turn focused encoder"},
		{Key: "H L", Desc: "coarse turn"},
		{Key: "backspace", Desc: "restore automation"},
	}},
	{Title: "Lists", Keys: []widgets.KeyBinding{
		{Key: "d t g", Desc: "devices / tracks / pages"},
		{Key: "j k", Desc: "move cursor"},
		{Key: "enter", Desc: "select"},
		{Key: "tab", Desc: "enter children or group"},
		{Key: "esc", Desc: "close"},
	}},
	{Title: "State", Keys: []widgets.KeyBinding{
		{Key: "space", Desc: "toggle device / mute"},
		{Key: "s a", Desc: "solo / arm"},
		{Key: "p r x", Desc: "play / record / stop"},
		{Key: "o", Desc: "reset automation overrides"},
	}},
}

var buttonKeys = map[string]surface.Control{
	"d":     surface.ControlDevices,
	"t":     surface.ControlTracks,
	"g":     surface.ControlPages,
	"enter": surface.ControlConfirm,
	"tab":   surface.ControlEnter,
	"esc":   surface.ControlCancel,
	" ":     surface.ControlToggle,
	"space": surface.ControlToggle,
	"s":     surface.ControlSolo,
	"a":     surface.ControlArm,
	"p":     surface.ControlPlay,
	"r":     surface.ControlRecord,
	"x":     surface.ControlStop,
	"o":     surface.ControlResetAutomation,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.key(msg.String())

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.turn(1)
		case tea.MouseButtonWheelDown:
			m.turn(-1)
		}

	case ParamMsg:
		if msg.Index >= 0 && msg.Index < len(m.slots) {
			m.slots[msg.Index] = msg.Slot
		}

	case EnabledMsg:
		if m.list != nil && msg.Index >= 0 && msg.Index < len(m.list.Entries) {
			entries := append([]surface.Entry(nil), m.list.Entries...)
			entries[msg.Index].Enabled = msg.Enabled
			v := *m.list
			v.Entries = entries
			m.list = &v
		}

	case ShowListMsg:
		v := surface.ListView(msg)
		m.list = &v

	case HideListMsg:
		m.list = nil

	case ViewMsg:
		m.view = surface.View(msg)
		m.slots[surface.LastClickedIndex] = m.view.LastClicked

	case EncoderMsg:
		if msg.ID >= 0 && msg.ID < len(m.encoders) {
			e := &m.encoders[msg.ID]
			if msg.Moved {
				e.pos = msg.Pos
			} else {
				e.mode, e.steps = msg.Mode, msg.Steps
			}
		}

	case LinkMsg:
		links := make(map[string]bool, len(m.links)+1)
		for k, v := range m.links {
			links[k] = v
		}
		if msg.Connected {
			links[msg.ID] = true
		} else {
			delete(links, msg.ID)
		}
		m.links = links
	}
	return m, nil
}

func (m Model) key(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "?":
		m.help = !m.help
	case "1", "2", "3", "4", "5", "6", "7", "8":
		m.refocus(int(k[0] - '1'))
	case "0":
		m.refocus(surface.LastClickedIndex)
	case "h", "left":
		m.turn(-1)
	case "l", "right":
		m.turn(1)
	case "H", "shift+left":
		m.turn(-m.Coarse)
	case "L", "shift+right":
		m.turn(m.Coarse)
	case "j", "down":
		m.push(surface.Input{Control: surface.ControlNav, Kind: surface.Turned, Delta: 1})
	case "k", "up":
		m.push(surface.Input{Control: surface.ControlNav, Kind: surface.Turned, Delta: -1})
	case "backspace":
		if m.focus < surface.ParameterCount {
			m.push(surface.Input{Control: surface.SlotControl(m.focus), Kind: surface.Reset})
		}
	default:
		if c, ok := buttonKeys[k]; ok {
			m.push(surface.Input{Control: c, Kind: surface.Pressed})
		}
	}
	return m, nil
}

func focusControl(i int) surface.Control {
	if i == surface.LastClickedIndex {
		return surface.ControlLastClicked
	}
	return surface.SlotControl(i)
}

// refocus releases the touch on the old slot and touches the new one.
func (m *Model) refocus(i int) {
	if i == m.focus {
		return
	}
	m.push(surface.Input{Control: focusControl(m.focus), Kind: surface.Released})
	m.focus = i
	m.push(surface.Input{Control: focusControl(i), Kind: surface.Pressed})
}

func (m *Model) turn(detents float32) {
	m.push(surface.Input{Control: focusControl(m.focus), Kind: surface.Turned, Delta: detents})
}

func (m *Model) push(in surface.Input) {
	if m.Input != nil {
		m.Input(in)
	}
}

func (m Model) linkLine() string {
	if len(m.links) == 0 {
		return "no midi"
	}
	ids := make([]string, 0, len(m.links))
	for id := range m.links {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return strings.Join(ids, " ")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	th := m.Theme

	var knobs []string
	for i := 0; i < surface.ParameterCount; i++ {
		knobs = append(knobs, widgets.Knob(th, fmt.Sprintf("%d", i+1), m.slots[i], m.focus == i))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, knobs[:4]...),
		lipgloss.JoinHorizontal(lipgloss.Top, knobs[4:]...),
	)
	last := widgets.Knob(th, "last", m.slots[surface.LastClickedIndex], m.focus == surface.LastClickedIndex)
	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, " ", last)
	if m.list != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", widgets.List(th, *m.list))
	}

	dim := lipgloss.NewStyle().Foreground(th.Muted())
	help := dim.Render("?:help  q:quit")
	if m.help {
		help = dim.Render(widgets.RenderKeyHelp(keyHelp))
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(widgets.Header(th, m.view, m.linkLine()))
	out.WriteString("\n")
	out.WriteString(widgets.Focus(th, m.view))
	out.WriteString("\n\n")
	out.WriteString(body)
	out.WriteString("\n")
	out.WriteString(m.encoderLine())
	out.WriteString("\n\n")
	out.WriteString(help)
	return out.String()
}

// encoderLine shows the focused encoder as the hardware sees it.
func (m Model) encoderLine() string {
	e := m.encoders[m.focus]
	dim := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	if e.mode == surface.ModeStepped {
		return dim.Render(fmt.Sprintf("encoder %s %d steps at %.2f", e.mode, e.steps, e.pos))
	}
	return dim.Render(fmt.Sprintf("encoder %s at %.3f", e.mode, e.pos))
}
