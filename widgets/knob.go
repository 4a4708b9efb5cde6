// Package widgets renders the pieces of the terminal surface.
package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-surface/surface"
	"go-surface/theme"
)

// KnobWidth is the width of one rendered slot, border excluded.
const KnobWidth = 12

const ringSegments = 10

// Knob renders one slot as a bordered cell: name, ring and display text.
func Knob(th *theme.Theme, label string, s surface.Slot, focused bool) string {
	border := th.Muted()
	if focused {
		border = th.Cursor()
	}
	box := lipgloss.NewStyle().
		Width(KnobWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)

	if !s.Exists && !s.Loading {
		dim := lipgloss.NewStyle().Foreground(th.Surface())
		return box.Render(dim.Render(fit(label, KnobWidth)) + "\n\n")
	}
	if s.Loading {
		dim := lipgloss.NewStyle().Foreground(th.Muted())
		return box.Render(dim.Render(fit(label, KnobWidth)) + "\n" + dim.Render("…") + "\n")
	}

	name := lipgloss.NewStyle().Foreground(th.FG()).Render(fit(s.Name, KnobWidth-2)) + marks(th, s)
	ring := lipgloss.NewStyle().Foreground(th.Accent()).Render(Ring(th, s))
	display := lipgloss.NewStyle().Foreground(th.Success()).Render(fit(s.DisplayText, KnobWidth))
	return box.Render(name + "\n" + ring + "\n" + display)
}

// Ring draws the slot value: a bar for continuous slots, one dot per
// option for stepped slots.
func Ring(th *theme.Theme, s surface.Slot) string {
	sym := th.Symbols
	if steps := s.Steps(); steps >= 2 {
		if steps > ringSegments {
			return fit(fmt.Sprintf("%d/%d", s.OptionIndex+1, steps), ringSegments)
		}
		var b strings.Builder
		for i := 0; i < steps; i++ {
			if i == s.OptionIndex {
				b.WriteRune(sym.StepOn)
			} else {
				b.WriteRune(sym.StepOff)
			}
		}
		return b.String()
	}
	filled := int(s.Value*ringSegments + 0.5)
	filled = max(0, min(filled, ringSegments))
	return strings.Repeat(string(sym.RingOn), filled) + strings.Repeat(string(sym.RingOff), ringSegments-filled)
}

func marks(th *theme.Theme, s surface.Slot) string {
	var b strings.Builder
	if s.HasAutomation {
		b.WriteRune(th.Symbols.Automation)
	}
	if s.IsModulated {
		b.WriteRune(th.Symbols.Modulated)
	}
	return lipgloss.NewStyle().Foreground(th.Warning()).Render(b.String())
}

// fit truncates s to at most n cells.
func fit(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// Swatch renders a host color as a single block.
func Swatch(th *theme.Theme, color uint32) string {
	return lipgloss.NewStyle().Foreground(th.Host(color)).Render(string(th.Symbols.Enabled))
}
