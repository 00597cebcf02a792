package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit(tea.KeyMsg{Type: tea.KeyCtrlC}))
	assert.True(t, isQuit(runeKey('q')))
	assert.False(t, isQuit(runeKey('a')))
}

func TestIsEnterAndSpace(t *testing.T) {
	assert.True(t, isEnter(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.False(t, isEnter(tea.KeyMsg{Type: tea.KeySpace}))
	assert.True(t, isSpace(tea.KeyMsg{Type: tea.KeySpace}))
}

func TestIsBack(t *testing.T) {
	assert.True(t, isBack(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.False(t, isBack(tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestKeymapVim(t *testing.T) {
	plain := keymap{}
	vim := keymap{vim: true}

	assert.True(t, plain.down(tea.KeyMsg{Type: tea.KeyDown}))
	assert.False(t, plain.down(runeKey('j')))
	assert.True(t, vim.down(runeKey('j')))
	assert.True(t, vim.up(runeKey('k')))
	assert.True(t, vim.left(runeKey('h')))
	assert.True(t, vim.right(runeKey('l')))
	assert.False(t, plain.right(runeKey('l')))
}

func TestTabIndexForKey(t *testing.T) {
	idx, ok := tabIndexForKey("1")
	assert.True(t, ok)
	assert.Equal(t, tabTokens, idx)

	idx, ok = tabIndexForKey("3")
	assert.True(t, ok)
	assert.Equal(t, tabSettings, idx)

	_, ok = tabIndexForKey("4")
	assert.False(t, ok)
	_, ok = tabIndexForKey("a")
	assert.False(t, ok)
}
