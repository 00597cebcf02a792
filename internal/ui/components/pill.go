package components

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	pillDarkText  = lipgloss.Color("#16161d")
	pillLightText = lipgloss.Color("#f4f5f7")
)

// LabelPill renders name on a swatch of hex. Invalid colors fall back to
// the muted outline so a half typed hex still previews.
func LabelPill(name, hex string) string {
	name = SanitizeOneLine(name)
	if name == "" {
		name = "Label"
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.NewStyle().
			Foreground(colorMuted).
			Border(lipgloss.NormalBorder(), false, true).
			BorderForeground(colorMuted).
			Padding(0, 1).
			Render(name)
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(PillTextColor(c)).
		Bold(true).
		Padding(0, 1).
		Render(name)
}

// PillTextColor picks dark or light text for legibility on c.
func PillTextColor(c colorful.Color) lipgloss.Color {
	r, g, b := c.LinearRgb()
	if 0.2126*r+0.7152*g+0.0722*b > 0.35 {
		return pillDarkText
	}
	return pillLightText
}
