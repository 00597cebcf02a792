package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/bridge"
	"github.com/gravitrone/tsadmin/internal/overlay"
	"github.com/gravitrone/tsadmin/internal/records"
	"github.com/gravitrone/tsadmin/internal/ui/components"
)

const tokensKey = "tokens"

// --- Tokens Model ---

// TokensModel lists authorizations and hosts the View Token, Generate Token
// and delete confirmation overlays.
type TokensModel struct {
	client     *api.Client
	bridge     *bridge.Bridge[api.Authorization]
	view       listView[api.Authorization]
	detail     overlay.State
	confirm    overlay.State
	reveal     bool
	generate   *generateForm
	orgs       []api.Organization
	defaultOrg string
	copyText   func(string) error
	width      int
	height     int
}

// NewTokensModel builds the tokens screen.
func NewTokensModel(client *api.Client, defaultOrg string) TokensModel {
	m := TokensModel{
		client:     client,
		bridge:     bridge.New[api.Authorization](nil, nil),
		view:       newListView[api.Authorization](records.TokenSearchKeys, "Filter tokens..."),
		defaultOrg: defaultOrg,
		copyText:   clipboard.WriteAll,
	}
	m.view.loading = client != nil
	return m
}

func (m TokensModel) Init() tea.Cmd {
	if m.client == nil {
		return nil
	}
	return tea.Batch(m.view.spin.Tick, m.fetchAll())
}

// reload refetches tokens and organizations.
func (m *TokensModel) reload() tea.Cmd {
	if m.client == nil {
		return nil
	}
	return tea.Batch(m.view.startLoading(), m.fetchAll())
}

func (m TokensModel) fetchAll() tea.Cmd {
	return tea.Batch(
		fetch(tokensKey, m.client.ListAuthorizations),
		fetch(tokensKey, m.client.ListOrganizations),
	)
}

// capturing reports whether keys belong to an input or overlay.
func (m TokensModel) capturing() bool {
	return m.view.searching || m.generate != nil || m.detail.IsOpen() || m.confirm.IsOpen()
}

func (m TokensModel) Update(msg tea.Msg) (TokensModel, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg[api.Authorization]:
		if msg.key == tokensKey {
			m.view.loaded(msg.items, msg.err)
		}
		return m, nil
	case fetchedMsg[api.Organization]:
		if msg.key == tokensKey && msg.err == nil {
			m.orgs = msg.items
			if m.generate != nil {
				m.generate.setOrgs(m.orgs, m.defaultOrg)
			}
		}
		return m, nil
	case deleteSettledMsg[api.Authorization]:
		if msg.key != tokensKey {
			return m, nil
		}
		list, n := m.bridge.SettleDelete(m.view.items, msg.pending, msg.err, bridge.TokenDeleted)
		m.view.replace(list)
		return m, notify(n)
	case savedMsg[api.Authorization]:
		if msg.key != tokensKey {
			return m, nil
		}
		return m.settleSave(msg)
	case tea.KeyMsg:
		switch {
		case m.confirm.IsOpen():
			return m.handleConfirmKeys(msg)
		case m.generate != nil:
			return m.handleGenerateKeys(msg)
		case m.detail.IsOpen():
			return m.handleDetailKeys(msg)
		}
		if handled, cmd := m.view.update(msg); handled {
			return m, cmd
		}
		return m.handleListKeys(msg)
	}
	_, cmd := m.view.update(msg)
	return m, cmd
}

func (m TokensModel) settleSave(msg savedMsg[api.Authorization]) (TokensModel, tea.Cmd) {
	if msg.id != "" {
		list, n := m.bridge.SettleUpdate(m.view.items, msg.id, msg.item, msg.err, bridge.TokenStatus)
		m.view.replace(list)
		return m, notify(n)
	}

	list, n := m.bridge.SettleCreate(m.view.items, msg.item, msg.err, bridge.TokenCreated)
	m.view.replace(list)
	if m.generate != nil {
		if msg.err != nil {
			m.generate.saving = false
			m.generate.err = n.Message
		} else {
			m.generate = nil
			m.reveal = true
			m.detail = overlay.Reduce(m.detail, overlay.Show{ID: msg.item.ID})
		}
	}
	return m, notify(n)
}

// --- List ---

func (m TokensModel) handleListKeys(msg tea.KeyMsg) (TokensModel, tea.Cmd) {
	switch {
	case isEnter(msg):
		if a, ok := m.view.selected(); ok {
			m.reveal = false
			m.detail = overlay.Reduce(m.detail, overlay.Show{ID: a.ID})
		}
	case isKey(msg, "d", "delete"):
		if a, ok := m.view.selected(); ok {
			m.confirm = overlay.Reduce(m.confirm, overlay.Show{ID: a.ID})
		}
	case isKey(msg, "a"):
		if a, ok := m.view.selected(); ok {
			return m, m.toggleStatus(a)
		}
	case isKey(msg, "n"):
		if m.client != nil {
			m.generate = newGenerateForm(m.orgs, m.defaultOrg)
			m.generate.keymap = m.view.keymap
			return m, m.generate.description.Focus()
		}
	case isKey(msg, "r"):
		return m, m.reload()
	}
	return m, nil
}

func (m TokensModel) toggleStatus(a api.Authorization) tea.Cmd {
	if m.client == nil {
		return nil
	}
	next := api.StatusInactive
	if a.Status != api.StatusActive {
		next = api.StatusActive
	}
	client := m.client
	return saveCmd(tokensKey, a.ID, func() (*api.Authorization, error) {
		return client.SetAuthorizationStatus(a.ID, next)
	})
}

// --- View Token ---

func (m TokensModel) handleDetailKeys(msg tea.KeyMsg) (TokensModel, tea.Cmd) {
	a, ok := records.Find(m.view.items, m.detail.Target())
	if !ok {
		m.detail = overlay.Reduce(m.detail, overlay.Dismiss{})
		return m, nil
	}
	switch {
	case isBack(msg), isEnter(msg):
		m.detail = overlay.Reduce(m.detail, overlay.Dismiss{})
		m.reveal = false
	case isKey(msg, "s"):
		m.reveal = !m.reveal
	case isKey(msg, "c"):
		if err := m.copyText(a.Token); err != nil {
			return m, notify(errorNote("Failed to copy token: " + err.Error()))
		}
		return m, notify(successNote("Token copied to clipboard"))
	case isKey(msg, "a"):
		return m, m.toggleStatus(a)
	case isKey(msg, "d"):
		m.confirm = overlay.Reduce(m.confirm, overlay.Show{ID: a.ID})
	}
	return m, nil
}

// --- Delete ---

func (m TokensModel) handleConfirmKeys(msg tea.KeyMsg) (TokensModel, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		id := m.confirm.Target()
		m.confirm = overlay.Reduce(m.confirm, overlay.Dismiss{})
		if m.detail.Target() == id {
			m.detail = overlay.Reduce(m.detail, overlay.Dismiss{})
		}
		if m.client == nil {
			return m, nil
		}
		pending := bridge.BeginDelete(m.view.items, id)
		m.view.replace(pending.Optimistic)
		return m, deleteCmd(tokensKey, pending, m.client.DeleteAuthorization)
	case isKey(msg, "n"), isBack(msg):
		m.confirm = overlay.Reduce(m.confirm, overlay.Dismiss{})
	}
	return m, nil
}

// --- Generate ---

func (m TokensModel) handleGenerateKeys(msg tea.KeyMsg) (TokensModel, tea.Cmd) {
	if isBack(msg) && !m.generate.saving {
		m.generate = nil
		return m, nil
	}
	submit, cmd := m.generate.update(msg)
	if !submit {
		return m, cmd
	}
	m.generate.saving = true
	m.generate.err = ""
	input := m.generate.input()
	client := m.client
	return m, saveCmd(tokensKey, "", func() (*api.Authorization, error) {
		return client.CreateAuthorization(input)
	})
}

// --- View ---

func (m TokensModel) View() string {
	inner := components.BoxContentWidth(m.width)
	cols := []components.TableColumn{
		{Header: "Description", Width: max(inner-48, 12)},
		{Header: "Status", Width: 10},
		{Header: "Organization", Width: 22},
		{Header: "Perms", Width: 8, Align: lipgloss.Right},
	}
	base := m.view.render("Tokens", cols, tokenRow, m.width,
		"Looks like there aren't any Tokens, why not generate one?",
		"No Tokens match your query")

	switch {
	case m.confirm.IsOpen():
		name := m.confirm.Target()
		if a, ok := records.Find(m.view.items, name); ok && a.Description != "" {
			name = a.Description
		}
		dialog := components.ConfirmDialog("Delete Token", fmt.Sprintf("Delete %q? This cannot be undone.", name))
		return components.Composite(components.Dim(base), dialog, m.width)
	case m.generate != nil:
		return components.Composite(components.Dim(base), m.generate.view(m.width), m.width)
	case m.detail.IsOpen():
		if a, ok := records.Find(m.view.items, m.detail.Target()); ok {
			return components.Composite(components.Dim(base), renderTokenDetail(a, m.reveal, m.width), m.width)
		}
	}
	return base
}

func tokenRow(a api.Authorization) []string {
	org := a.Org
	if org == "" {
		org = a.OrgID
	}
	return []string{a.Description, string(a.Status), org, fmt.Sprintf("%d", len(a.Permissions))}
}

func (m TokensModel) hints() []string {
	switch {
	case m.confirm.IsOpen():
		return []string{components.Hint("y", "Delete"), components.Hint("n", "Cancel")}
	case m.generate != nil:
		return []string{components.Hint("tab", "Next"), components.Hint("ctrl+s", "Generate"), components.Hint("esc", "Cancel")}
	case m.detail.IsOpen():
		return []string{components.Hint("c", "Copy"), components.Hint("s", "Show"), components.Hint("a", "Status"), components.Hint("esc", "Close")}
	case m.view.searching:
		return []string{components.Hint("enter", "Apply"), components.Hint("esc", "Clear")}
	}
	return []string{
		components.Hint("↑/↓", "Scroll"),
		components.Hint("/", "Search"),
		components.Hint("enter", "View"),
		components.Hint("n", "Generate"),
		components.Hint("a", "Activate/Deactivate"),
		components.Hint("d", "Delete"),
		components.Hint("r", "Refresh"),
	}
}
