package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/tsadmin/internal/config"
	"github.com/gravitrone/tsadmin/internal/mockapi"
	"github.com/gravitrone/tsadmin/internal/ui/components"
)

func updateApp(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	model, cmd := a.Update(msg)
	out, ok := model.(App)
	require.True(t, ok)
	return out, cmd
}

func isQuitCmd(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func newTestApp(t *testing.T) App {
	t.Helper()
	a := NewApp(nil, &config.Config{Token: "tok"}, "")
	a, _ = updateApp(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	return a
}

func TestAppStartsOnTokens(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, tabTokens, a.tab)
	out := components.SanitizeText(a.View())
	assert.Contains(t, out, "1 Tokens")
	assert.Contains(t, out, "2 Organizations")
	assert.Contains(t, out, "3 Settings")
}

func TestAppSwitchesTabsByNumber(t *testing.T) {
	a := newTestApp(t)

	a, _ = updateApp(t, a, runeKey('2'))
	assert.Equal(t, tabOrgs, a.tab)
	a, _ = updateApp(t, a, runeKey('3'))
	assert.Equal(t, tabSettings, a.tab)
	a, _ = updateApp(t, a, runeKey('9'))
	assert.Equal(t, tabSettings, a.tab)
}

func TestAppArrowsCycleTabs(t *testing.T) {
	a := newTestApp(t)

	a, _ = updateApp(t, a, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, tabSettings, a.tab)
	a, _ = updateApp(t, a, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, tabTokens, a.tab)
}

func TestAppVimKeysFromConfig(t *testing.T) {
	a := NewApp(nil, &config.Config{Token: "tok", VimKeys: true}, "")

	assert.True(t, a.tokens.view.keymap.vim)
	a, _ = updateApp(t, a, runeKey('l'))
	assert.Equal(t, tabOrgs, a.tab)
}

func TestAppKeymapChangedReachesScreens(t *testing.T) {
	a := newTestApp(t)

	a, _ = updateApp(t, a, keymapChangedMsg{vim: true})
	assert.True(t, a.keymap.vim)
	assert.True(t, a.tokens.view.keymap.vim)
	assert.True(t, a.orgs.view.keymap.vim)
}

func TestAppHelpToggle(t *testing.T) {
	a := newTestApp(t)

	a, _ = updateApp(t, a, runeKey('?'))
	require.True(t, a.helpOpen)
	assert.Contains(t, components.SanitizeText(a.View()), "Help")

	a, cmd := updateApp(t, a, runeKey('q'))
	assert.False(t, a.helpOpen)
	assert.False(t, isQuitCmd(cmd), "q closes help first")
}

func TestAppQuitWhenIdle(t *testing.T) {
	a := newTestApp(t)

	_, cmd := updateApp(t, a, runeKey('q'))
	assert.True(t, isQuitCmd(cmd))
}

func TestAppQIsTextWhileSearching(t *testing.T) {
	a := newTestApp(t)

	a, _ = updateApp(t, a, runeKey('/'))
	require.True(t, a.capturing())
	a, cmd := updateApp(t, a, runeKey('q'))
	assert.False(t, isQuitCmd(cmd))
	assert.Equal(t, "q", a.tokens.view.search.Value())

	a, _ = updateApp(t, a, runeKey('2'))
	assert.Equal(t, tabTokens, a.tab, "digits are typed, not tab switches")
}

func TestAppCtrlCConfirmsWhileCapturing(t *testing.T) {
	a := newTestApp(t)
	a, _ = updateApp(t, a, runeKey('/'))

	a, cmd := updateApp(t, a, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	require.True(t, a.quitConfirm)
	assert.Contains(t, components.SanitizeText(a.View()), "Quit anyway?")

	a, _ = updateApp(t, a, runeKey('n'))
	assert.False(t, a.quitConfirm)
	assert.True(t, a.capturing())

	a, _ = updateApp(t, a, tea.KeyMsg{Type: tea.KeyCtrlC})
	_, cmd = updateApp(t, a, runeKey('y'))
	assert.True(t, isQuitCmd(cmd))
}

func TestAppCtrlCQuitsWhenIdle(t *testing.T) {
	a := newTestApp(t)

	_, cmd := updateApp(t, a, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuitCmd(cmd))
}

func TestAppToastLifecycle(t *testing.T) {
	a := newTestApp(t)

	a, cmd := updateApp(t, a, notifyMsg{note: successNote("Token was deleted successfully")})
	require.NotNil(t, cmd)
	require.NotNil(t, a.toast)
	assert.Contains(t, components.SanitizeText(a.View()), "Token was deleted successfully")

	a, _ = updateApp(t, a, notifyMsg{note: errorNote("Failed to delete token")})
	assert.Equal(t, 2, a.toastSeq)

	// a stale clear from the first toast is ignored
	a, _ = updateApp(t, a, clearToastMsg{seq: 1})
	require.NotNil(t, a.toast)
	assert.Contains(t, components.SanitizeText(a.View()), "Failed to delete token")

	a, _ = updateApp(t, a, clearToastMsg{seq: 2})
	assert.Nil(t, a.toast)
}

func TestAppConfigReloadSwapsToken(t *testing.T) {
	client, _ := newMockClient(t, mockapi.Options{})
	a := NewApp(client, &config.Config{Token: "old"}, "")

	a, cmd := updateApp(t, a, ConfigReloaded(&config.Config{Token: "new", VimKeys: true}))
	require.NotNil(t, cmd)
	assert.Equal(t, "new", a.config.Token)
	assert.Equal(t, "new", a.settings.config.Token)
	assert.True(t, a.keymap.vim)
	require.NotNil(t, a.toast)
	assert.Equal(t, "Config reloaded", a.toast.text)
}

func TestAppBroadcastsLoadsToAllTabs(t *testing.T) {
	client, _ := newMockClient(t, mockapi.Options{})
	a := NewApp(client, nil, "")

	a, _ = settle(a, func(a App, msg tea.Msg) (App, tea.Cmd) { return updateApp(t, a, msg) }, a.Init())
	assert.Len(t, a.tokens.view.items, 2)

	a, cmd := updateApp(t, a, runeKey('2'))
	a, _ = settle(a, func(a App, msg tea.Msg) (App, tea.Cmd) { return updateApp(t, a, msg) }, cmd)
	assert.Len(t, a.orgs.view.items, 2)
	assert.Len(t, a.tokens.view.items, 2)
}

func TestCenterBlockUniform(t *testing.T) {
	block := "ab\nabcd"
	out := centerBlockUniform(block, 10)

	assert.Equal(t, "   ab\n   abcd", out)
	assert.Equal(t, block, centerBlockUniform(block, 0))
	assert.Equal(t, block, centerBlockUniform(block, 3))
	assert.Equal(t, 7, lipgloss.Width("   abcd"))
}
