package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/bridge"
	"github.com/gravitrone/tsadmin/internal/overlay"
	"github.com/gravitrone/tsadmin/internal/records"
	"github.com/gravitrone/tsadmin/internal/ui/components"
)

const orgsKey = "orgs"

// --- Organizations Model ---

// OrgsModel lists organizations. Opening one shows its sections.
type OrgsModel struct {
	client  *api.Client
	bridge  *bridge.Bridge[api.Organization]
	view    listView[api.Organization]
	confirm overlay.State
	detail  *orgDetail

	creating bool
	create   textinput.Model
	saving   bool
	err      string

	width  int
	height int
}

// NewOrgsModel builds the organizations screen.
func NewOrgsModel(client *api.Client) OrgsModel {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "Name this organization"
	in.CharLimit = 128
	m := OrgsModel{
		client: client,
		bridge: bridge.New[api.Organization](nil, nil),
		view:   newListView[api.Organization](records.OrgSearchKeys, "Filter organizations..."),
		create: in,
	}
	m.view.loading = client != nil
	return m
}

func (m OrgsModel) Init() tea.Cmd {
	if m.client == nil {
		return nil
	}
	return tea.Batch(m.view.spin.Tick, fetch(orgsKey, m.client.ListOrganizations))
}

func (m *OrgsModel) reload() tea.Cmd {
	if m.client == nil {
		return nil
	}
	return tea.Batch(m.view.startLoading(), fetch(orgsKey, m.client.ListOrganizations))
}

func (m OrgsModel) capturing() bool {
	if m.detail != nil {
		return m.detail.capturing()
	}
	return m.view.searching || m.creating || m.confirm.IsOpen()
}

// wantsArrows reports whether left/right belong to the screen.
func (m OrgsModel) wantsArrows() bool {
	return m.detail != nil || m.capturing()
}

func (m OrgsModel) Update(msg tea.Msg) (OrgsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg[api.Organization]:
		if msg.key == orgsKey {
			m.view.loaded(msg.items, msg.err)
		}
		return m, nil
	case deleteSettledMsg[api.Organization]:
		if msg.key != orgsKey {
			return m, nil
		}
		list, n := m.bridge.SettleDelete(m.view.items, msg.pending, msg.err, bridge.OrgDeleted)
		m.view.replace(list)
		return m, notify(n)
	case savedMsg[api.Organization]:
		if msg.key != orgsKey {
			return m, nil
		}
		return m.settleSave(msg)
	case tea.KeyMsg:
		if m.detail != nil {
			if isBack(msg) && !m.detail.capturing() && !m.detail.filtered() {
				m.detail = nil
				return m, nil
			}
			return m, m.detail.update(msg)
		}
		switch {
		case m.confirm.IsOpen():
			return m.handleConfirmKeys(msg)
		case m.creating:
			return m.handleCreateKeys(msg)
		}
		if handled, cmd := m.view.update(msg); handled {
			return m, cmd
		}
		return m.handleListKeys(msg)
	}

	_, cmd := m.view.update(msg)
	if m.detail != nil {
		cmd = tea.Batch(cmd, m.detail.update(msg))
	}
	return m, cmd
}

func (m OrgsModel) settleSave(msg savedMsg[api.Organization]) (OrgsModel, tea.Cmd) {
	if msg.id != "" {
		list, n := m.bridge.SettleUpdate(m.view.items, msg.id, msg.item, msg.err, bridge.OrgRenamed)
		m.view.replace(list)
		if m.detail != nil && m.detail.org.ID == msg.id {
			if org, ok := records.Find(list, msg.id); ok {
				m.detail.setName(org.Name)
			}
		}
		return m, notify(n)
	}

	list, n := m.bridge.SettleCreate(m.view.items, msg.item, msg.err, bridge.OrgCreated)
	m.view.replace(list)
	m.saving = false
	if msg.err != nil {
		m.err = n.Message
	} else {
		m.creating = false
		m.err = ""
		m.create.Blur()
		m.create.SetValue("")
	}
	return m, notify(n)
}

func (m OrgsModel) handleListKeys(msg tea.KeyMsg) (OrgsModel, tea.Cmd) {
	switch {
	case isEnter(msg):
		if org, ok := m.view.selected(); ok {
			m.detail = newOrgDetail(m.client, org, m.view.keymap)
			return m, m.detail.show(sectionMembers)
		}
	case isKey(msg, "n"):
		m.creating = true
		m.err = ""
		m.create.SetValue("")
		return m, m.create.Focus()
	case isKey(msg, "d", "delete"):
		if org, ok := m.view.selected(); ok {
			m.confirm = overlay.Reduce(m.confirm, overlay.Show{ID: org.ID})
		}
	case isKey(msg, "r"):
		return m, m.reload()
	}
	return m, nil
}

func (m OrgsModel) handleCreateKeys(msg tea.KeyMsg) (OrgsModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	switch {
	case isBack(msg):
		m.creating = false
		m.err = ""
		m.create.Blur()
		return m, nil
	case isEnter(msg):
		name := strings.TrimSpace(m.create.Value())
		if name == "" {
			m.err = "Organization name is required"
			return m, nil
		}
		if m.client == nil {
			return m, nil
		}
		m.saving = true
		client := m.client
		return m, saveCmd(orgsKey, "", func() (*api.Organization, error) {
			return client.CreateOrganization(name)
		})
	}
	var cmd tea.Cmd
	m.create, cmd = m.create.Update(msg)
	m.err = ""
	return m, cmd
}

func (m OrgsModel) handleConfirmKeys(msg tea.KeyMsg) (OrgsModel, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		id := m.confirm.Target()
		m.confirm = overlay.Reduce(m.confirm, overlay.Dismiss{})
		if m.client == nil {
			return m, nil
		}
		pending := bridge.BeginDelete(m.view.items, id)
		m.view.replace(pending.Optimistic)
		return m, deleteCmd(orgsKey, pending, m.client.DeleteOrganization)
	case isKey(msg, "n"), isBack(msg):
		m.confirm = overlay.Reduce(m.confirm, overlay.Dismiss{})
	}
	return m, nil
}

// --- View ---

func (m OrgsModel) View() string {
	if m.detail != nil {
		return m.detail.view(m.width)
	}

	cols := []components.TableColumn{
		{Header: "Name", Width: max(components.BoxContentWidth(m.width)-20, 12)},
		{Header: "ID", Width: 20},
	}
	base := m.view.render("Organizations", cols, orgRow, m.width,
		"Looks like there aren't any Organizations, why not create one?",
		"No Organizations match your query")

	switch {
	case m.confirm.IsOpen():
		name := m.confirm.Target()
		if org, ok := records.Find(m.view.items, name); ok {
			name = org.Name
		}
		msg := fmt.Sprintf("Delete %q with all of its buckets, dashboards, tasks and labels?", name)
		return components.Composite(components.Dim(base), components.ConfirmDialog("Delete Organization", msg), m.width)
	case m.creating:
		field := components.FormField{Label: "Name", Input: m.create.View(), Focused: true, Error: m.err}
		hint := "enter: create | esc: cancel"
		if m.saving {
			hint = "Creating..."
		}
		box := components.ActiveTitledBox("Create Organization", components.Form([]components.FormField{field}, hint), m.width)
		return components.Composite(components.Dim(base), box, m.width)
	}
	return base
}

func orgRow(o api.Organization) []string {
	return []string{o.Name, o.ID}
}

func (m OrgsModel) hints() []string {
	switch {
	case m.detail != nil:
		return m.detail.hints()
	case m.confirm.IsOpen():
		return []string{components.Hint("y", "Delete"), components.Hint("n", "Cancel")}
	case m.creating:
		return []string{components.Hint("enter", "Create"), components.Hint("esc", "Cancel")}
	case m.view.searching:
		return []string{components.Hint("enter", "Apply"), components.Hint("esc", "Clear")}
	}
	return []string{
		components.Hint("↑/↓", "Scroll"),
		components.Hint("/", "Search"),
		components.Hint("enter", "Open"),
		components.Hint("n", "Create"),
		components.Hint("d", "Delete"),
		components.Hint("r", "Refresh"),
	}
}
