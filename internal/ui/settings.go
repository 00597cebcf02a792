package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/config"
	"github.com/gravitrone/tsadmin/internal/ui/components"
)

type healthCheckedMsg struct {
	status string
	err    error
}

// keymapChangedMsg tells every screen to switch movement keys.
type keymapChangedMsg struct{ vim bool }

// SettingsModel shows the active connection and local preferences.
type SettingsModel struct {
	client     *api.Client
	config     *config.Config
	configPath string
	checking   bool
	health     string
	healthErr  string
	width      int
	height     int
}

// NewSettingsModel builds the settings screen. cfg may be nil when running
// without a config file.
func NewSettingsModel(client *api.Client, cfg *config.Config, configPath string) SettingsModel {
	return SettingsModel{client: client, config: cfg, configPath: configPath, checking: client != nil}
}

func (m SettingsModel) Init() tea.Cmd {
	if m.client == nil {
		return nil
	}
	return m.checkHealth()
}

func (m *SettingsModel) reload() tea.Cmd {
	if m.client == nil {
		return nil
	}
	m.checking = true
	return m.checkHealth()
}

func (m SettingsModel) checkHealth() tea.Cmd {
	client := m.client.WithTimeout(2 * time.Second)
	return func() tea.Msg {
		status, err := client.Health()
		return healthCheckedMsg{status: status, err: err}
	}
}

func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case healthCheckedMsg:
		m.checking = false
		m.health = msg.status
		m.healthErr = ""
		if msg.err != nil {
			m.healthErr = msg.err.Error()
		}
		return m, nil
	case configReloadedMsg:
		m.config = msg.cfg
		return m, nil
	case tea.KeyMsg:
		switch {
		case isKey(msg, "c", "r"):
			return m, m.reload()
		case isKey(msg, "v"):
			return m.toggleVim()
		}
	}
	return m, nil
}

func (m SettingsModel) toggleVim() (SettingsModel, tea.Cmd) {
	if m.config == nil {
		return m, notify(errorNote("No config file; run tsadmin login first"))
	}
	next := *m.config
	next.VimKeys = !next.VimKeys
	if err := next.SaveTo(m.configPath); err != nil {
		return m, notify(errorNote("Failed to save settings: " + err.Error()))
	}
	m.config = &next
	return m, tea.Batch(
		func() tea.Msg { return keymapChangedMsg{vim: next.VimKeys} },
		notify(successNote("Settings saved")),
	)
}

func (m SettingsModel) View() string {
	rows := []components.TableRow{}
	if m.client != nil {
		rows = append(rows, components.TableRow{Label: "URL", Value: m.client.BaseURL()})
	}
	if m.config != nil {
		rows = append(rows,
			components.TableRow{Label: "Username", Value: orDash(m.config.Username)},
			components.TableRow{Label: "Default org", Value: orDash(m.config.Org)},
			components.TableRow{Label: "Token", Value: maskToken(m.config.Token)},
			components.TableRow{Label: "Vim keys", Value: onOff(m.config.VimKeys)},
		)
	}
	rows = append(rows, components.TableRow{Label: "Config", Value: m.configPath})

	switch {
	case m.client == nil:
	case m.checking:
		rows = append(rows, components.TableRow{Label: "Health", Value: "checking", ValueColor: ColorMuted})
	case m.healthErr != "":
		rows = append(rows, components.TableRow{Label: "Health", Value: m.healthErr, ValueColor: ColorError})
	case m.health != "":
		color := ColorSuccess
		if m.health != "pass" {
			color = ColorWarning
		}
		rows = append(rows, components.TableRow{Label: "Health", Value: m.health, ValueColor: color})
	}
	return components.Table("Settings", rows, m.width)
}

func (m SettingsModel) hints() []string {
	return []string{components.Hint("c", "Check Health"), components.Hint("v", "Vim Keys")}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
