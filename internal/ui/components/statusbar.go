package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	hintDescStyle = lipgloss.NewStyle().Foreground(colorMuted)
	keyCapStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#888ba4")).
			Bold(true).
			Padding(0, 1)
	hintGap = "   "
)

// Hint formats a single keybind hint like "Scroll ↑/↓".
func Hint(key, desc string) string {
	return hintDescStyle.Render(desc+" ") + keyCapStyle.Render(key)
}

// StatusBar renders hints centered under the content, wrapping onto more
// rows when they do not fit width.
func StatusBar(hints []string, width int) string {
	if len(hints) == 0 {
		return ""
	}
	rows := wrapSegments(hints, width)
	if width <= 0 {
		return strings.Join(rows, "\n")
	}
	centered := make([]string, len(rows))
	for i, row := range rows {
		centered[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
	}
	return strings.Join(centered, "\n")
}

func wrapSegments(segments []string, width int) []string {
	if width <= 0 {
		return []string{strings.Join(segments, hintGap)}
	}
	var rows []string
	current := ""
	for _, seg := range segments {
		if current == "" {
			current = seg
			continue
		}
		if lipgloss.Width(current)+len(hintGap)+lipgloss.Width(seg) > width {
			rows = append(rows, current)
			current = seg
			continue
		}
		current += hintGap + seg
	}
	if current != "" {
		rows = append(rows, current)
	}
	return rows
}
