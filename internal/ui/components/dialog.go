package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2).
			Width(48)

	dialogHintStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	fieldLabelStyle   = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	fieldFocusStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	fieldErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e06c75"))
	fieldCounterStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	header := boxHeaderStyle.Render(SanitizeOneLine(title))
	body := boxMutedStyle.Render(SanitizeText(message))
	hint := dialogHintStyle.Render("\ny: confirm | n: cancel")
	return dialogStyle.Render(header + "\n\n" + body + hint)
}

// FormField is one labelled input of an overlay form. Input is the already
// rendered input widget.
type FormField struct {
	Label   string
	Input   string
	Counter string
	Error   string
	Focused bool
}

// Form lays out fields top to bottom followed by a hint line.
func Form(fields []FormField, hint string) string {
	blocks := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		label := fieldLabelStyle.Render(f.Label)
		marker := "  "
		if f.Focused {
			label = fieldFocusStyle.Render(f.Label)
			marker = fieldFocusStyle.Render("› ")
		}
		if f.Counter != "" {
			label += " " + fieldCounterStyle.Render(f.Counter)
		}
		block := marker + label + "\n" + Indent(f.Input, 2)
		if f.Error != "" {
			block += "\n  " + fieldErrorStyle.Render(f.Error)
		}
		blocks = append(blocks, block)
	}
	if hint != "" {
		blocks = append(blocks, dialogHintStyle.Render(hint))
	}
	return strings.Join(blocks, "\n\n")
}
