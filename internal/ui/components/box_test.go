package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestBoxWidthBounds(t *testing.T) {
	assert.Equal(t, 0, boxWidth(0))
	assert.Equal(t, 40, boxWidth(10))
	assert.Equal(t, 96, boxWidth(300))
	assert.Equal(t, 70, boxWidth(100))
}

func TestBoxNarrowTerminalKeepsTitleInsideBorder(t *testing.T) {
	out := TitledBox("A very long overlay title", "line", 20)
	lines := strings.Split(out, "\n")
	for _, line := range lines[1:] {
		assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(line))
	}
}

func TestTitledBoxIncludesTitle(t *testing.T) {
	out := TitledBox("Labels", "Content", 80)
	assert.Contains(t, out, "[ Labels ]")
	assert.Contains(t, out, "Content")
}

func TestTitledBoxKeepsBorderWidth(t *testing.T) {
	out := ActiveTitledBox("Generate Token", "body", 80)
	lines := strings.Split(out, "\n")
	assert.Equal(t, lipgloss.Width(lines[1]), lipgloss.Width(lines[0]))
}

func TestTitledBoxEmptyTitleFallsBack(t *testing.T) {
	out := TitledBox("", "Content", 80)
	assert.Contains(t, out, "Content")
	assert.NotContains(t, out, "[")
}

func TestErrorBoxIncludesMessage(t *testing.T) {
	out := ErrorBox("Error", "unauthorized: unauthorized access", 80)
	assert.Contains(t, out, "unauthorized access")
}

func TestClampTextWidth(t *testing.T) {
	assert.Equal(t, "he", ClampTextWidth("hello", 2))
	assert.Equal(t, "你", ClampTextWidth("你好", 2))
	assert.Equal(t, "hello", ClampTextWidth("hello", 0))
	assert.Equal(t, "hel…", ClampTextWidthEllipsis("hello", 4))
	assert.Equal(t, "hello", ClampTextWidthEllipsis("hello", 5))
}

func TestTableClampsLongValues(t *testing.T) {
	rows := []TableRow{{
		Label: strings.Repeat("Label", 8),
		Value: strings.Repeat("value", 40),
	}}
	out := Table("Token", rows, 60)
	maxWidth := lipgloss.Width(strings.Split(Box("x", 60), "\n")[0])
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), maxWidth)
	}
}

func TestTableEmptyRows(t *testing.T) {
	assert.Equal(t, "", Table("Token", nil, 80))
}

func TestTableValueColor(t *testing.T) {
	out := Table("", []TableRow{{Label: "Status", Value: "active", ValueColor: lipgloss.Color("#3f866b")}}, 80)
	assert.Contains(t, SanitizeText(out), "Status")
	assert.Contains(t, SanitizeText(out), "active")
}

func TestInfoRowSanitizesLabelAndValue(t *testing.T) {
	out := InfoRow("na‮me\x1b]0;evil\x07", "va\x1b[2Jlu‮e")
	assert.NotContains(t, out, "‮")
	assert.NotContains(t, out, "\x1b]")
	assert.NotContains(t, out, "\x1b[2J")
	assert.Contains(t, SanitizeText(out), "name: value")
}

func TestIndentPreservesLineCountAndAddsPadding(t *testing.T) {
	lines := strings.Split(Indent("a\nb\nc", 2), "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "  "))
	}
}

func TestCenterLineAddsLeftPadding(t *testing.T) {
	out := CenterLine("hi", 80)
	pad := (safeBoxWidth(80) - lipgloss.Width("hi")) / 2
	assert.True(t, strings.HasPrefix(out, strings.Repeat(" ", pad)))
}
