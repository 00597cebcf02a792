package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
 ████████ ███████  █████  ██████  ███    ███ ██ ███    ██
    ██    ██      ██   ██ ██   ██ ████  ████ ██ ████   ██
    ██    ███████ ███████ ██   ██ ██ ████ ██ ██ ██ ██  ██
    ██         ██ ██   ██ ██   ██ ██  ██  ██ ██ ██  ██ ██
    ██    ███████ ██   ██ ██████  ██      ██ ██ ██   ████`

const bannerSubtitle = "Time-Series Platform Administration"

// RenderBanner returns the styled banner with its subtitle.
func RenderBanner() string {
	art := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var b strings.Builder
	width := lipgloss.Width(bannerSubtitle)
	for _, line := range strings.Split(strings.TrimPrefix(bannerArt, "\n"), "\n") {
		if w := lipgloss.Width(line); w > width {
			width = w
		}
		b.WriteString(art.Render(line) + "\n")
	}

	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	subtitle := centered.Foreground(ColorMuted).Render(bannerSubtitle)
	underline := centered.Foreground(ColorBorder).Render(strings.Repeat("─", lipgloss.Width(bannerSubtitle)))
	return "\n" + b.String() + "\n" + subtitle + "\n" + underline + "\n"
}
