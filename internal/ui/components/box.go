package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	colorBorder = lipgloss.Color("#273540")
	colorAccent = lipgloss.Color("#7f57b4")
	colorMuted  = lipgloss.Color("#9ba0bf")
	colorValue  = lipgloss.Color("#d7d9da")
	colorLabel  = lipgloss.Color("#436b77")
)

var (
	boxBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	boxBorderActive = boxBorder.BorderForeground(colorAccent)

	boxHeaderStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	boxMutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	boxValueStyle = lipgloss.NewStyle().Foreground(colorValue)
	boxLabelStyle = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)

	errorBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7a2f3a")).
			Padding(1, 2)

	errorHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e06c75")).
				Bold(true)

	errorBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d6b5b5"))
)

// boxWidth picks ~70% of the terminal, kept between 40 and 96 columns.
func boxWidth(width int) int {
	if width <= 0 {
		return 0
	}
	w := width * 70 / 100
	if w < 40 {
		w = 40
	}
	if w > 96 {
		w = 96
	}
	return w
}

func safeBoxWidth(width int) int {
	w := boxWidth(width)
	if width > 0 && w > width {
		return width
	}
	return w
}

// Box renders content inside a bordered box.
func Box(content string, width int) string {
	return boxBorder.Width(safeBoxWidth(width)).Render(content)
}

// ActiveBox renders content inside a highlighted bordered box.
func ActiveBox(content string, width int) string {
	return boxBorderActive.Width(safeBoxWidth(width)).Render(content)
}

// BoxContentWidth returns the inner content width excluding border and padding.
func BoxContentWidth(width int) int {
	w := safeBoxWidth(width)
	// border 2 + horizontal padding 4
	if w <= 6 {
		return 0
	}
	return w - 6
}

// ClampTextWidth sanitizes text and cuts it to width cells.
func ClampTextWidth(text string, width int) string {
	cleaned := SanitizeOneLine(text)
	if width <= 0 {
		return cleaned
	}
	return ansi.Truncate(cleaned, width, "")
}

// ClampTextWidthEllipsis is ClampTextWidth with a trailing "…" when cut.
func ClampTextWidthEllipsis(text string, width int) string {
	cleaned := SanitizeOneLine(text)
	if width <= 0 {
		return cleaned
	}
	return ansi.Truncate(cleaned, width, "…")
}

// ErrorBox renders a red bordered box for errors.
func ErrorBox(title, message string, width int) string {
	header := ""
	if title != "" {
		header = errorHeaderStyle.Render(title) + "\n\n"
	}
	return errorBorder.Width(safeBoxWidth(width)).Render(header + errorBodyStyle.Render(message))
}

// TitledBox renders a box with the title set into its top border.
func TitledBox(title, content string, width int) string {
	return titledBox(title, content, width, boxBorder, colorBorder)
}

// ActiveTitledBox is TitledBox with the accent border, used for overlays.
func ActiveTitledBox(title, content string, width int) string {
	return titledBox(title, content, width, boxBorderActive, colorAccent)
}

func titledBox(title, content string, width int, style lipgloss.Style, borderColor lipgloss.Color) string {
	boxed := style.Width(safeBoxWidth(width)).Render(content)
	if title == "" {
		return boxed
	}
	lines := strings.Split(boxed, "\n")
	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 4 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	inner := lineWidth - 2
	label := ansi.Truncate(fmt.Sprintf(" [ %s ] ", SanitizeOneLine(title)), inner, "")
	left := (inner - lipgloss.Width(label)) / 2
	right := inner - lipgloss.Width(label) - left

	edge := lipgloss.NewStyle().Foreground(borderColor)
	lines[0] = edge.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		boxHeaderStyle.Render(label) +
		edge.Render(strings.Repeat(border.Top, right)+border.TopRight)
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// InfoRow renders a "label: value" line.
func InfoRow(label, value string) string {
	return boxMutedStyle.Render(SanitizeOneLine(label)+": ") + boxValueStyle.Render(SanitizeOneLine(value))
}

// TableRow is a single row in a key-value table. ValueColor overrides the
// value foreground when set.
type TableRow struct {
	Label      string
	Value      string
	ValueColor lipgloss.Color
}

// Table renders aligned label/value rows inside a bordered box.
func Table(title string, rows []TableRow, width int) string {
	if len(rows) == 0 {
		return ""
	}

	labelWidth := 0
	for _, r := range rows {
		if w := lipgloss.Width(SanitizeOneLine(r.Label)); w > labelWidth {
			labelWidth = w
		}
	}
	contentWidth := BoxContentWidth(width)
	if contentWidth <= 0 {
		contentWidth = labelWidth + 40
	}
	if limit := contentWidth / 2; labelWidth > limit {
		labelWidth = limit
	}
	valueWidth := contentWidth - labelWidth - 2
	if valueWidth < 4 {
		valueWidth = 4
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		valueStyle := boxValueStyle
		if r.ValueColor != "" {
			valueStyle = valueStyle.Foreground(r.ValueColor)
		}
		label := boxLabelStyle.Render(padRight(ClampTextWidth(r.Label, labelWidth), labelWidth))
		lines = append(lines, label+"  "+valueStyle.Render(ClampTextWidthEllipsis(r.Value, valueWidth)))
	}

	if title != "" {
		return TitledBox(title, strings.Join(lines, "\n"), width)
	}
	return Box(strings.Join(lines, "\n"), width)
}

// Indent adds left padding to every line of a multi-line string.
func Indent(s string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// CenterLine centers a single line within the standard box width.
func CenterLine(s string, width int) string {
	w := safeBoxWidth(width)
	lineWidth := lipgloss.Width(s)
	if w <= 0 || lineWidth >= w {
		return s
	}
	return strings.Repeat(" ", (w-lineWidth)/2) + s
}
