package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-surface/surface"
	"go-surface/theme"
)

// ListRows is how many rows of an open list are drawn at once.
const ListRows = 10

// List renders a list overlay, scrolled so the cursor stays visible.
func List(th *theme.Theme, v surface.ListView) string {
	title := strings.ToUpper(v.Kind.String())
	if v.Title != "" {
		title += " · " + v.Title
	}
	head := lipgloss.NewStyle().Foreground(th.Accent()).Bold(true).Render(title)

	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(th.Muted()).
		Padding(0, 1)

	if v.Loading {
		return box.Render(head + "\n" + lipgloss.NewStyle().Foreground(th.Muted()).Render("loading…"))
	}

	lo, hi := scroll(v.Cursor, len(v.Entries), ListRows)
	lines := []string{head}
	for i := lo; i < hi; i++ {
		lines = append(lines, row(th, v.Kind, v.Entries[i], i == v.Cursor))
	}
	if v.Total > 0 {
		footer := fmt.Sprintf("%d/%d", v.Cursor+1, displayCount(v))
		lines = append(lines, lipgloss.NewStyle().Foreground(th.Muted()).Render(footer))
	}
	return box.Render(strings.Join(lines, "\n"))
}

func displayCount(v surface.ListView) int {
	return surface.ToDisplay(v.Total, v.Nested)
}

// scroll returns the visible range [lo, hi) of n rows around cursor.
func scroll(cursor, n, rows int) (int, int) {
	if n <= rows {
		return 0, n
	}
	lo := cursor - rows/2
	lo = max(0, min(lo, n-rows))
	return lo, lo + rows
}

func row(th *theme.Theme, kind surface.ListKind, e surface.Entry, selected bool) string {
	sym := th.Symbols
	cursor := " "
	if selected {
		cursor = string(sym.Cursor)
	}
	name := e.Name
	if !e.Loaded {
		name = "…"
	}

	var state string
	switch {
	case e.Back:
	case kind == surface.ListDevices || kind == surface.ListChildren:
		if e.Enabled {
			state = string(sym.Enabled)
		} else {
			state = string(sym.Disabled)
		}
		if e.Children.Any() {
			name += " " + string(sym.Group)
		}
	case kind == surface.ListTracks:
		state = Swatch(th, e.Color)
		name += trackFlags(e)
		if e.Group {
			name += " " + string(sym.Group)
		}
	}

	style := lipgloss.NewStyle().Foreground(th.FG())
	if selected {
		style = style.Foreground(th.Cursor()).Bold(true)
	} else if e.Back {
		style = style.Foreground(th.Muted())
	}
	return fmt.Sprintf("%s %s %s", cursor, pad(state, 1), style.Render(fit(name, 28)))
}

func trackFlags(e surface.Entry) string {
	var f []string
	if e.Mute || e.MutedBySolo {
		f = append(f, "M")
	}
	if e.Solo {
		f = append(f, "S")
	}
	if e.Arm {
		f = append(f, "R")
	}
	if len(f) == 0 {
		return ""
	}
	return " [" + strings.Join(f, "") + "]"
}

func pad(s string, w int) string {
	if lipgloss.Width(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-lipgloss.Width(s))
}
