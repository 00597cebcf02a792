package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/bridge"
	"github.com/gravitrone/tsadmin/internal/overlay"
	"github.com/gravitrone/tsadmin/internal/records"
	"github.com/gravitrone/tsadmin/internal/ui/components"
)

// labelsSection is the Labels page of an organization. edit tracks which
// label the edit overlay is bound to; form is the open create or edit form.
type labelsSection struct {
	client  *api.Client
	key     string
	orgID   string
	bridge  *bridge.Bridge[api.Label]
	view    listView[api.Label]
	edit    overlay.State
	confirm overlay.State
	form    *labelForm
}

func newLabelsSection(client *api.Client, key, orgID string, km keymap) labelsSection {
	view := newListView[api.Label](records.LabelSearchKeys, "Filter Labels...")
	view.keymap = km
	return labelsSection{
		client: client,
		key:    key,
		orgID:  orgID,
		bridge: bridge.New[api.Label](nil, nil),
		view:   view,
	}
}

func (s *labelsSection) load() tea.Cmd {
	if s.client == nil {
		return nil
	}
	client, orgID := s.client, s.orgID
	return tea.Batch(s.view.startLoading(), fetch(s.key, func() ([]api.Label, error) {
		return client.ListLabels(orgID)
	}))
}

func (s labelsSection) capturing() bool {
	return s.view.searching || s.form != nil || s.confirm.IsOpen()
}

func (s labelsSection) update(msg tea.Msg) (labelsSection, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg[api.Label]:
		if msg.key == s.key {
			s.view.loaded(msg.items, msg.err)
		}
		return s, nil
	case deleteSettledMsg[api.Label]:
		if msg.key != s.key {
			return s, nil
		}
		list, n := s.bridge.SettleDelete(s.view.items, msg.pending, msg.err, bridge.LabelDeleted)
		s.view.replace(list)
		return s, notify(n)
	case savedMsg[api.Label]:
		if msg.key != s.key {
			return s, nil
		}
		return s.settleSave(msg)
	case tea.KeyMsg:
		switch {
		case s.confirm.IsOpen():
			return s.handleConfirmKeys(msg)
		case s.form != nil:
			return s.handleFormKeys(msg)
		}
		if handled, cmd := s.view.update(msg); handled {
			return s, cmd
		}
		return s.handleListKeys(msg)
	}
	_, cmd := s.view.update(msg)
	return s, cmd
}

func (s labelsSection) settleSave(msg savedMsg[api.Label]) (labelsSection, tea.Cmd) {
	var (
		list []api.Label
		n    bridge.Notification
	)
	if msg.id == "" {
		list, n = s.bridge.SettleCreate(s.view.items, msg.item, msg.err, bridge.LabelCreated)
	} else {
		list, n = s.bridge.SettleUpdate(s.view.items, msg.id, msg.item, msg.err, bridge.LabelUpdated)
	}
	s.view.replace(list)
	if s.form != nil {
		if msg.err != nil {
			s.form.saving = false
			s.form.err = n.Message
		} else {
			s.form = nil
			s.edit = overlay.Reduce(s.edit, overlay.Dismiss{})
		}
	}
	return s, notify(n)
}

func (s labelsSection) handleListKeys(msg tea.KeyMsg) (labelsSection, tea.Cmd) {
	switch {
	case isKey(msg, "n"):
		s.form = newLabelForm(s.orgID, nil)
		s.form.keymap = s.view.keymap
		return s, s.form.name.Focus()
	case isEnter(msg), isKey(msg, "e"):
		if l, ok := s.view.selected(); ok {
			s.edit = overlay.Reduce(s.edit, overlay.Show{ID: l.ID})
			s.form = newLabelForm(s.orgID, &l)
			s.form.keymap = s.view.keymap
			return s, s.form.name.Focus()
		}
	case isKey(msg, "d", "delete"):
		if l, ok := s.view.selected(); ok {
			s.confirm = overlay.Reduce(s.confirm, overlay.Show{ID: l.ID})
		}
	}
	return s, nil
}

func (s labelsSection) handleFormKeys(msg tea.KeyMsg) (labelsSection, tea.Cmd) {
	if isBack(msg) && !s.form.saving {
		s.form = nil
		s.edit = overlay.Reduce(s.edit, overlay.Dismiss{})
		return s, nil
	}
	submit, cmd := s.form.update(msg)
	if !submit || s.client == nil {
		return s, cmd
	}
	s.form.saving = true
	label := s.form.label()
	client := s.client
	if label.ID == "" {
		return s, saveCmd(s.key, "", func() (*api.Label, error) {
			return client.CreateLabel(label)
		})
	}
	return s, saveCmd(s.key, label.ID, func() (*api.Label, error) {
		return client.UpdateLabel(label)
	})
}

func (s labelsSection) handleConfirmKeys(msg tea.KeyMsg) (labelsSection, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		id := s.confirm.Target()
		s.confirm = overlay.Reduce(s.confirm, overlay.Dismiss{})
		if s.client == nil {
			return s, nil
		}
		pending := bridge.BeginDelete(s.view.items, id)
		s.view.replace(pending.Optimistic)
		return s, deleteCmd(s.key, pending, s.client.DeleteLabel)
	case isKey(msg, "n"), isBack(msg):
		s.confirm = overlay.Reduce(s.confirm, overlay.Dismiss{})
	}
	return s, nil
}

func (s labelsSection) render(width int) string {
	inner := components.BoxContentWidth(width)
	cols := []components.TableColumn{
		{Header: "Label", Width: 28},
		{Header: "Color", Width: 10},
		{Header: "Description", Width: max(inner-40, 12)},
	}
	base := s.view.render("Labels", cols, labelRow, width,
		"Looks like there aren't any Labels, why not create one?",
		"No Labels match your query")

	switch {
	case s.confirm.IsOpen():
		name := s.confirm.Target()
		if l, ok := records.Find(s.view.items, name); ok {
			name = l.Name
		}
		dialog := components.ConfirmDialog("Delete Label", fmt.Sprintf("Delete label %q?", name))
		return components.Composite(components.Dim(base), dialog, width)
	case s.form != nil:
		return components.Composite(components.Dim(base), s.form.view(width), width)
	}
	return base
}

func labelRow(l api.Label) []string {
	return []string{
		components.LabelPill(l.Name, l.Properties.Color),
		l.Properties.Color,
		l.Properties.Description,
	}
}

func (s labelsSection) hints() []string {
	switch {
	case s.confirm.IsOpen():
		return []string{components.Hint("y", "Delete"), components.Hint("n", "Cancel")}
	case s.form != nil:
		return []string{components.Hint("tab", "Next"), components.Hint("←/→", "Color"), components.Hint("ctrl+s", "Save"), components.Hint("esc", "Cancel")}
	}
	return []string{components.Hint("n", "Create Label"), components.Hint("e", "Edit"), components.Hint("d", "Delete")}
}
