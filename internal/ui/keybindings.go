package ui

import tea "github.com/charmbracelet/bubbletea"

// --- Key Helpers ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "ctrl+[")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter")
}

func isSpace(msg tea.KeyMsg) bool {
	return isKey(msg, " ")
}

// keymap resolves movement keys, adding j/k when vim keys are enabled.
type keymap struct {
	vim bool
}

func (k keymap) up(msg tea.KeyMsg) bool {
	return isKey(msg, "up") || (k.vim && isKey(msg, "k"))
}

func (k keymap) down(msg tea.KeyMsg) bool {
	return isKey(msg, "down") || (k.vim && isKey(msg, "j"))
}

func (k keymap) left(msg tea.KeyMsg) bool {
	return isKey(msg, "left") || (k.vim && isKey(msg, "h"))
}

func (k keymap) right(msg tea.KeyMsg) bool {
	return isKey(msg, "right") || (k.vim && isKey(msg, "l"))
}

func tabIndexForKey(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	idx := int(key[0] - '1')
	return idx, idx < tabCount
}
