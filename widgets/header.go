package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-surface/surface"
	"go-surface/theme"
)

// Header renders the status line: host link, transport, track and device.
func Header(th *theme.Theme, v surface.View, links string) string {
	accent := lipgloss.NewStyle().Foreground(th.Accent())
	dim := lipgloss.NewStyle().Foreground(th.Muted())
	warn := lipgloss.NewStyle().Foreground(th.Warning())

	host := dim.Render("host: offline")
	if v.HostActive {
		host = accent.Render("host: online")
	}

	play := "STOP"
	if v.Transport.Playing {
		play = "PLAY"
	}
	transport := fmt.Sprintf("%s %6.2fbpm", play, v.Transport.Tempo)
	if v.Transport.Recording {
		transport += " " + warn.Render("REC")
	}
	if v.Transport.AutomationOverride {
		transport += " " + warn.Render("OVR")
	}

	parts := []string{accent.Render("go-surface"), host, transport}
	if links != "" {
		parts = append(parts, dim.Render(links))
	}
	return strings.Join(parts, "  ")
}

// Focus renders the track and device in focus.
func Focus(th *theme.Theme, v surface.View) string {
	fg := lipgloss.NewStyle().Foreground(th.FG())
	dim := lipgloss.NewStyle().Foreground(th.Muted())

	track := dim.Render("no track")
	if v.Track.Index >= 0 && v.Track.Name != "" {
		t := v.Track
		track = Swatch(th, t.Color) + " " + fg.Render(t.Name) + trackFlags(surface.Entry{
			Mute: t.Mute, MutedBySolo: t.MutedBySolo, Solo: t.Solo, Arm: t.Arm,
		})
		track += dim.Render(fmt.Sprintf("  vol %s  pan %s", orDash(t.Volume.DisplayText), orDash(t.Pan.DisplayText)))
	}

	device := dim.Render("no device")
	if d := v.Device; d.Name != "" {
		state := th.Symbols.Enabled
		if !d.Enabled {
			state = th.Symbols.Disabled
		}
		page := ""
		if d.PageCount > 0 {
			page = fmt.Sprintf("  %s (%d/%d)", d.PageName, d.PageIndex+1, d.PageCount)
		}
		device = fmt.Sprintf("%c %s%s", state, fg.Render(d.Name), dim.Render(page))
	}
	return track + "\n" + device
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
