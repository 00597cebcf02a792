package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/bridge"
	"github.com/gravitrone/tsadmin/internal/config"
	"github.com/gravitrone/tsadmin/internal/ui/components"
)

// --- Tab Constants ---

const (
	tabTokens   = 0
	tabOrgs     = 1
	tabSettings = 2
	tabCount    = 3
)

var tabNames = []string{"Tokens", "Organizations", "Settings"}

const toastDuration = 2500 * time.Millisecond

// --- Messages ---

type clearToastMsg struct{ seq int }

// configReloadedMsg carries a config rewritten by another process.
type configReloadedMsg struct{ cfg *config.Config }

// ConfigReloaded wraps a reloaded config for Program.Send.
func ConfigReloaded(cfg *config.Config) tea.Msg {
	return configReloadedMsg{cfg: cfg}
}

type appToast struct {
	kind bridge.Kind
	text string
}

// --- App Model ---

// App is the root TUI model that routes between tabs.
type App struct {
	client      *api.Client
	config      *config.Config
	tab         int
	width       int
	height      int
	helpOpen    bool
	quitConfirm bool
	toast       *appToast
	toastSeq    int
	keymap      keymap

	tokens   TokensModel
	orgs     OrgsModel
	settings SettingsModel
}

// NewApp creates the root application model. configPath is where settings
// are saved.
func NewApp(client *api.Client, cfg *config.Config, configPath string) App {
	defaultOrg := ""
	km := keymap{}
	if cfg != nil {
		defaultOrg = cfg.Org
		km.vim = cfg.VimKeys
	}
	a := App{
		client:   client,
		config:   cfg,
		tab:      tabTokens,
		tokens:   NewTokensModel(client, defaultOrg),
		orgs:     NewOrgsModel(client),
		settings: NewSettingsModel(client, cfg, configPath),
	}
	a.applyKeymap(km)
	return a
}

func (a App) Init() tea.Cmd {
	return a.tokens.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.tokens.width, a.tokens.height = msg.Width, msg.Height
		a.orgs.width, a.orgs.height = msg.Width, msg.Height
		a.settings.width, a.settings.height = msg.Width, msg.Height
		return a, nil
	case notifyMsg:
		return a, a.setToast(msg.note)
	case clearToastMsg:
		if msg.seq == a.toastSeq {
			a.toast = nil
		}
		return a, nil
	case keymapChangedMsg:
		a.applyKeymap(keymap{vim: msg.vim})
		return a, nil
	case configReloadedMsg:
		if msg.cfg == nil {
			return a, nil
		}
		a.config = msg.cfg
		if a.client != nil && msg.cfg.Token != "" {
			a.client.SetToken(msg.cfg.Token)
		}
		a.applyKeymap(keymap{vim: msg.cfg.VimKeys})
		a.settings, _ = a.settings.Update(msg)
		return a, a.setToast(successNote("Config reloaded"))
	case tea.KeyMsg:
		return a.handleKeys(msg)
	}

	// Everything else is a load or save result; each tab ignores keys it
	// does not own.
	var cmds [3]tea.Cmd
	a.tokens, cmds[0] = a.tokens.Update(msg)
	a.orgs, cmds[1] = a.orgs.Update(msg)
	a.settings, cmds[2] = a.settings.Update(msg)
	return a, tea.Batch(cmds[:]...)
}

func (a App) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.quitConfirm {
		switch {
		case isKey(msg, "y"):
			return a, tea.Quit
		case isKey(msg, "n"), isBack(msg):
			a.quitConfirm = false
		}
		return a, nil
	}
	if a.helpOpen {
		if isBack(msg) || isKey(msg, "?", "q") {
			a.helpOpen = false
		}
		return a, nil
	}
	if isKey(msg, "ctrl+c") {
		if a.capturing() {
			a.quitConfirm = true
			return a, nil
		}
		return a, tea.Quit
	}

	// Global keys
	if !a.capturing() {
		if isKey(msg, "?") {
			a.helpOpen = true
			return a, nil
		}
		if isQuit(msg) {
			return a, tea.Quit
		}
		if idx, ok := tabIndexForKey(msg.String()); ok {
			return a.switchTab(idx)
		}
		if !a.tabWantsArrows() {
			if a.keymap.left(msg) {
				return a.switchTab((a.tab - 1 + tabCount) % tabCount)
			}
			if a.keymap.right(msg) {
				return a.switchTab((a.tab + 1) % tabCount)
			}
		}
	}

	// Delegate to active tab
	var cmd tea.Cmd
	switch a.tab {
	case tabTokens:
		a.tokens, cmd = a.tokens.Update(msg)
	case tabOrgs:
		a.orgs, cmd = a.orgs.Update(msg)
	case tabSettings:
		a.settings, cmd = a.settings.Update(msg)
	}
	return a, cmd
}

// capturing reports whether the active tab has an input or overlay that
// owns the keyboard.
func (a App) capturing() bool {
	switch a.tab {
	case tabTokens:
		return a.tokens.capturing()
	case tabOrgs:
		return a.orgs.capturing()
	}
	return false
}

// tabWantsArrows returns true when the active tab needs left/right arrow keys.
func (a App) tabWantsArrows() bool {
	return a.tab == tabOrgs && a.orgs.wantsArrows()
}

func (a *App) applyKeymap(km keymap) {
	a.keymap = km
	a.tokens.view.keymap = km
	if a.tokens.generate != nil {
		a.tokens.generate.keymap = km
	}
	a.orgs.view.keymap = km
	if d := a.orgs.detail; d != nil {
		d.keymap = km
		d.members.keymap = km
		d.buckets.keymap = km
		d.dashboards.keymap = km
		d.tasks.keymap = km
		d.labels.view.keymap = km
		if d.labels.form != nil {
			d.labels.form.keymap = km
		}
	}
}

func (a App) switchTab(newTab int) (App, tea.Cmd) {
	if newTab == a.tab {
		return a, nil
	}
	a.tab = newTab
	return a, a.initTab(newTab)
}

// initTab refreshes a tab when it becomes active.
func (a *App) initTab(tab int) tea.Cmd {
	switch tab {
	case tabTokens:
		return a.tokens.reload()
	case tabOrgs:
		if a.orgs.detail != nil {
			return nil
		}
		return a.orgs.reload()
	case tabSettings:
		return a.settings.reload()
	}
	return nil
}

// --- Toasts ---

func (a *App) setToast(n bridge.Notification) tea.Cmd {
	a.toastSeq++
	a.toast = &appToast{kind: n.Kind, text: components.SanitizeOneLine(n.Message)}
	seq := a.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	if a.toast.kind == bridge.Error {
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox("Success", SuccessStyle.Render(a.toast.text), a.width)
}

// --- View ---

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	tabs := centerBlockUniform(a.renderTabs(), a.width)

	var content string
	switch a.tab {
	case tabTokens:
		content = a.tokens.View()
	case tabOrgs:
		content = a.orgs.View()
	case tabSettings:
		content = a.settings.View()
	}

	switch {
	case a.quitConfirm:
		dialog := components.ConfirmDialog("Quit", "You have unsaved input. Quit anyway?")
		content = components.Composite(components.Dim(content), dialog, 0)
	case a.helpOpen:
		content = components.Composite(components.Dim(content), a.renderHelp(), 0)
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}
	return fmt.Sprintf("%s\n%s\n\n%s\n\n\n%s%s", banner, tabs, content, hints, feedback)
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == a.tab {
			segments = append(segments, TabActiveStyle.Render(label))
		} else {
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a App) renderHelp() string {
	lines := []string{MutedStyle.Render("esc to close"), ""}
	for _, hint := range a.statusHintsForTab() {
		lines = append(lines, "  "+hint)
	}
	lines = append(lines, "",
		"  "+components.Hint("1-3", "Tabs"),
		"  "+components.Hint("ctrl+c", "Quit"),
	)
	if a.keymap.vim {
		lines = append(lines, "  "+components.Hint("h/j/k/l", "Move"))
	}
	return components.ActiveTitledBox("Help", strings.Join(lines, "\n"), a.width)
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{components.Hint("y", "Confirm"), components.Hint("n", "Cancel")}
	}
	if a.helpOpen {
		return []string{components.Hint("esc", "Back")}
	}
	hints := a.statusHintsForTab()
	if !a.capturing() {
		hints = append(hints, components.Hint("?", "Help"), components.Hint("q", "Quit"))
	}
	return hints
}

func (a App) statusHintsForTab() []string {
	switch a.tab {
	case tabTokens:
		return a.tokens.hints()
	case tabOrgs:
		return a.orgs.hints()
	case tabSettings:
		return a.settings.hints()
	}
	return nil
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	prefix := strings.Repeat(" ", (width-maxWidth)/2)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
