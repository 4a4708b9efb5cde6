// Package theme maps palette positions to the colors and symbols the
// terminal surface draws with.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"go-surface/debug"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Encoder rings
	RingOn  rune // ▰ filled segment
	RingOff rune // ▱ empty segment
	StepOn  rune // ● selected option
	StepOff rune // ○ other option

	// Lists
	Cursor   rune // ▶ row under the cursor
	Group    rune // ▸ entry that can be entered
	Enabled  rune // ■ device on / track active
	Disabled rune // □ device off

	Automation rune // ◆ slot has automation
	Modulated  rune // ~ slot is modulated
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Plasma
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			RingOn:  '▰',
			RingOff: '▱',
			StepOn:  '●',
			StepOff: '○',

			Cursor:   '▶',
			Group:    '▸',
			Enabled:  '■',
			Disabled: '□',

			Automation: '◆',
			Modulated:  '~',
		},
	}
}

// Load builds a theme from a GIMP palette file, falling back to Plasma
// when path is empty or unreadable.
func Load(path string) *Theme {
	if path == "" {
		return New(Plasma)
	}
	p, err := LoadGPL(path)
	if err != nil {
		debug.Warn("theme", "%v, using built-in palette", err)
		return New(Plasma)
	}
	return New(p)
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.1
	RoleMuted   = 0.3
	RoleFG      = 0.55
	RoleAccent  = 0.45
	RoleCursor  = 0.65
	RoleActive  = 0.75
	RoleWarning = 0.85
	RoleSuccess = 1.0
)

func (t *Theme) role(norm float64) lipgloss.Color {
	return lipgloss.Color(t.Palette.Lookup(norm).Hex())
}

func (t *Theme) BG() lipgloss.Color      { return t.role(RoleBG) }
func (t *Theme) Surface() lipgloss.Color { return t.role(RoleSurface) }
func (t *Theme) FG() lipgloss.Color      { return t.role(RoleFG) }
func (t *Theme) Accent() lipgloss.Color  { return t.role(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color   { return t.role(RoleMuted) }
func (t *Theme) Active() lipgloss.Color  { return t.role(RoleActive) }
func (t *Theme) Cursor() lipgloss.Color  { return t.role(RoleCursor) }
func (t *Theme) Warning() lipgloss.Color { return t.role(RoleWarning) }
func (t *Theme) Success() lipgloss.Color { return t.role(RoleSuccess) }

// Color returns the lipgloss color for any normalized value 0-1.
func (t *Theme) Color(norm float64) lipgloss.Color {
	return t.role(norm)
}

// Host converts a 0xRRGGBB color sent by the host.
func (t *Theme) Host(c uint32) lipgloss.Color {
	return lipgloss.Color(FromUint32(c).Hex())
}
