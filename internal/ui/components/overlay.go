package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var scrimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Faint(true)

// Composite draws fg centered over base. The background keeps its layout;
// only the cells under fg are replaced. width 0 uses the widest base line.
func Composite(base, fg string, width int) string {
	baseLines := strings.Split(base, "\n")
	fgLines := strings.Split(fg, "\n")

	if width <= 0 {
		width = maxLineWidth(baseLines)
	}
	fgWidth := maxLineWidth(fgLines)
	if fgWidth > width {
		fgWidth = width
	}
	for len(baseLines) < len(fgLines) {
		baseLines = append(baseLines, "")
	}

	x := (width - fgWidth) / 2
	y := (len(baseLines) - len(fgLines)) / 2
	overlayAt(baseLines, fgLines, width, x, y, fgWidth)
	return strings.Join(baseLines, "\n")
}

// Dim renders s faint so an overlay stands out against it.
func Dim(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, line := range lines {
		lines[i] = scrimStyle.Render(line)
	}
	return strings.Join(lines, "\n")
}

func overlayAt(bgLines, fgLines []string, width, x, y, fgWidth int) {
	if fgWidth <= 0 {
		return
	}
	for i := 0; i < len(fgLines) && y+i < len(bgLines); i++ {
		row := padRight(bgLines[y+i], width)
		left := ansi.Cut(row, 0, x)
		right := ansi.Cut(row, x+fgWidth, width)

		line := fgLines[i]
		if n := ansi.StringWidth(line); n < fgWidth {
			line += strings.Repeat(" ", fgWidth-n)
		} else if n > fgWidth {
			line = ansi.Cut(line, 0, fgWidth)
		}
		bgLines[y+i] = left + line + right
	}
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		if n := ansi.StringWidth(line); n > w {
			w = n
		}
	}
	return w
}
