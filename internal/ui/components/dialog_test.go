package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmDialogIncludesTitleMessageAndHints(t *testing.T) {
	out := ConfirmDialog("Delete Token", "Delete \x1b[31mci writer\x1b[0m?")
	clean := SanitizeText(out)

	assert.Contains(t, clean, "Delete Token")
	assert.Contains(t, clean, "Delete ci writer?")
	assert.Contains(t, clean, "y: confirm | n: cancel")
}

func TestFormMarksFocusedFieldAndErrors(t *testing.T) {
	out := Form([]FormField{
		{Label: "Name", Input: "Swogglez", Counter: "8/75", Focused: true},
		{Label: "Color", Input: "#zzz", Error: "Hexcodes must be 7 characters"},
	}, "tab: next | enter: save | esc: cancel")
	clean := SanitizeText(out)

	assert.Contains(t, clean, "› Name 8/75")
	assert.Contains(t, clean, "  Color")
	assert.Contains(t, clean, "Hexcodes must be 7 characters")
	assert.Contains(t, clean, "enter: save")
}
