package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/bridge"
	"github.com/gravitrone/tsadmin/internal/records"
	"github.com/gravitrone/tsadmin/internal/ui/components"
)

// --- Sections ---

const (
	sectionMembers = iota
	sectionBuckets
	sectionDashboards
	sectionTasks
	sectionLabels
	sectionOptions
	sectionCount
)

var sectionNames = []string{"Members", "Buckets", "Dashboards", "Tasks", "Labels", "Options"}

// orgDetail is the per-organization page. Each section loads lazily the
// first time it is shown.
type orgDetail struct {
	client  *api.Client
	org     api.Organization
	key     string
	section int
	loaded  map[int]bool
	keymap  keymap

	members    listView[api.User]
	buckets    listView[api.Bucket]
	dashboards listView[api.Dashboard]
	tasks      listView[api.Task]
	labels     labelsSection

	bucketBridge *bridge.Bridge[api.Bucket]
	bucketForm   *bucketForm

	rename   textinput.Model
	renaming bool
}

func newOrgDetail(client *api.Client, org api.Organization, km keymap) *orgDetail {
	key := "org/" + org.ID
	d := &orgDetail{
		client:       client,
		org:          org,
		key:          key,
		loaded:       map[int]bool{},
		keymap:       km,
		members:      newListView[api.User](records.MemberSearchKeys, "Filter members..."),
		buckets:      newListView[api.Bucket](records.BucketSearchKeys, "Filter buckets..."),
		dashboards:   newListView[api.Dashboard](records.DashboardSearchKeys, "Filter dashboards..."),
		tasks:        newListView[api.Task](records.TaskSearchKeys, "Filter tasks..."),
		labels:       newLabelsSection(client, key+"/labels", org.ID, km),
		bucketBridge: bridge.New[api.Bucket](nil, nil),
	}
	d.members.keymap = km
	d.buckets.keymap = km
	d.dashboards.keymap = km
	d.tasks.keymap = km

	d.rename = textinput.New()
	d.rename.Prompt = ""
	d.rename.CharLimit = 128
	d.rename.SetValue(org.Name)
	return d
}

// show switches to section and returns its loader on first visit.
func (d *orgDetail) show(section int) tea.Cmd {
	d.section = (section + sectionCount) % sectionCount
	d.renaming = false
	d.rename.Blur()
	if d.loaded[d.section] || d.client == nil {
		return nil
	}
	d.loaded[d.section] = true
	return d.load(d.section)
}

func (d *orgDetail) load(section int) tea.Cmd {
	client, org := d.client, d.org
	switch section {
	case sectionMembers:
		return tea.Batch(d.members.startLoading(), fetch(d.key, func() ([]api.User, error) {
			return client.ListMembers(org.ID)
		}))
	case sectionBuckets:
		return tea.Batch(d.buckets.startLoading(), fetch(d.key, func() ([]api.Bucket, error) {
			return client.ListBuckets(org.Name)
		}))
	case sectionDashboards:
		return tea.Batch(d.dashboards.startLoading(), fetch(d.key, func() ([]api.Dashboard, error) {
			return client.ListDashboards(org.Name)
		}))
	case sectionTasks:
		return tea.Batch(d.tasks.startLoading(), fetch(d.key, func() ([]api.Task, error) {
			return client.ListTasks(org.Name)
		}))
	case sectionLabels:
		return d.labels.load()
	}
	return nil
}

func (d *orgDetail) capturing() bool {
	switch d.section {
	case sectionMembers:
		return d.members.searching
	case sectionBuckets:
		return d.buckets.searching || d.bucketForm != nil
	case sectionDashboards:
		return d.dashboards.searching
	case sectionTasks:
		return d.tasks.searching
	case sectionLabels:
		return d.labels.capturing()
	case sectionOptions:
		return d.renaming
	}
	return false
}

// filtered reports whether the active section has a search term applied.
func (d *orgDetail) filtered() bool {
	switch d.section {
	case sectionMembers:
		return d.members.search.Value() != ""
	case sectionBuckets:
		return d.buckets.search.Value() != ""
	case sectionDashboards:
		return d.dashboards.search.Value() != ""
	case sectionTasks:
		return d.tasks.search.Value() != ""
	case sectionLabels:
		return d.labels.view.search.Value() != ""
	}
	return false
}

// setName follows a rename settled by the organizations list.
func (d *orgDetail) setName(name string) {
	d.org.Name = name
	d.rename.SetValue(name)
}

func (d *orgDetail) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case fetchedMsg[api.User]:
		if msg.key == d.key {
			d.members.loaded(msg.items, msg.err)
		}
		return nil
	case fetchedMsg[api.Bucket]:
		if msg.key == d.key {
			d.buckets.loaded(msg.items, msg.err)
		}
		return nil
	case fetchedMsg[api.Dashboard]:
		if msg.key == d.key {
			d.dashboards.loaded(msg.items, msg.err)
		}
		return nil
	case fetchedMsg[api.Task]:
		if msg.key == d.key {
			d.tasks.loaded(msg.items, msg.err)
		}
		return nil
	case savedMsg[api.Bucket]:
		if msg.key == d.key {
			return d.settleBucket(msg)
		}
		return nil
	case tea.KeyMsg:
		return d.handleKeys(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	d.labels, cmd = d.labels.update(msg)
	cmds = append(cmds, cmd)
	for _, tick := range []func(tea.Msg) (bool, tea.Cmd){d.members.update, d.buckets.update, d.dashboards.update, d.tasks.update} {
		_, cmd = tick(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (d *orgDetail) handleKeys(msg tea.KeyMsg) tea.Cmd {
	if !d.capturing() {
		switch {
		case isKey(msg, "tab") || d.keymap.right(msg):
			return d.show(d.section + 1)
		case isKey(msg, "shift+tab") || d.keymap.left(msg):
			return d.show(d.section - 1)
		case isKey(msg, "r"):
			if d.section == sectionOptions || d.client == nil {
				return nil
			}
			return d.load(d.section)
		}
	}

	var cmd tea.Cmd
	switch d.section {
	case sectionMembers:
		_, cmd = d.members.update(msg)
	case sectionBuckets:
		cmd = d.handleBucketKeys(msg)
	case sectionDashboards:
		_, cmd = d.dashboards.update(msg)
	case sectionTasks:
		_, cmd = d.tasks.update(msg)
	case sectionLabels:
		d.labels, cmd = d.labels.update(msg)
	case sectionOptions:
		cmd = d.handleOptionsKeys(msg)
	}
	return cmd
}

// --- Buckets ---

type bucketForm struct {
	id        string
	name      textinput.Model
	retention textinput.Model
	focus     int
	err       string
	saving    bool
}

func newBucketForm(existing *api.Bucket) *bucketForm {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Name this bucket"
	name.CharLimit = 128

	ret := textinput.New()
	ret.Prompt = ""
	ret.Placeholder = "forever, 72h, 30d"
	ret.CharLimit = 16

	f := &bucketForm{name: name, retention: ret}
	if existing != nil {
		f.id = existing.ID
		f.name.SetValue(existing.Name)
		if d := existing.RetentionPeriod(); d > 0 {
			f.retention.SetValue(d.String())
		}
	}
	f.name.Focus()
	return f
}

func (f *bucketForm) bucket(orgID string) (api.Bucket, error) {
	name := strings.TrimSpace(f.name.Value())
	if name == "" {
		return api.Bucket{}, fmt.Errorf("bucket name is required")
	}
	d, err := api.ParseRetention(f.retention.Value())
	if err != nil {
		return api.Bucket{}, err
	}
	return api.Bucket{ID: f.id, OrganizationID: orgID, Name: name, RetentionRules: api.ExpireAfter(d)}, nil
}

func (f *bucketForm) view(width int) string {
	title := "Create Bucket"
	if f.id != "" {
		title = "Edit Bucket"
	}
	fields := []components.FormField{
		{Label: "Name", Input: f.name.View(), Focused: f.focus == 0},
		{Label: "Delete data older than", Input: f.retention.View(), Focused: f.focus == 1, Error: f.err},
	}
	body := components.Form(fields, "tab: next field | enter: save | esc: cancel")
	if f.saving {
		body += "\n\n" + MutedStyle.Render("Saving...")
	}
	return components.ActiveTitledBox(title, body, width)
}

func (d *orgDetail) handleBucketKeys(msg tea.KeyMsg) tea.Cmd {
	f := d.bucketForm
	if f == nil {
		if handled, cmd := d.buckets.update(msg); handled {
			return cmd
		}
		switch {
		case isKey(msg, "n"):
			d.bucketForm = newBucketForm(nil)
			return d.bucketForm.name.Focus()
		case isKey(msg, "e"), isEnter(msg):
			if b, ok := d.buckets.selected(); ok {
				d.bucketForm = newBucketForm(&b)
				return d.bucketForm.name.Focus()
			}
		}
		return nil
	}

	if f.saving {
		return nil
	}
	switch {
	case isBack(msg):
		d.bucketForm = nil
		return nil
	case isKey(msg, "tab", "shift+tab", "up", "down"):
		f.focus = 1 - f.focus
		if f.focus == 0 {
			f.retention.Blur()
			return f.name.Focus()
		}
		f.name.Blur()
		return f.retention.Focus()
	case isEnter(msg), isKey(msg, "ctrl+s"):
		bucket, err := f.bucket(d.org.ID)
		if err != nil {
			f.err = err.Error()
			return nil
		}
		if d.client == nil {
			return nil
		}
		f.saving = true
		client, org := d.client, d.org
		if bucket.ID == "" {
			return saveCmd(d.key, "", func() (*api.Bucket, error) {
				return client.CreateBucket(org, bucket)
			})
		}
		return saveCmd(d.key, bucket.ID, func() (*api.Bucket, error) {
			return client.UpdateBucket(bucket)
		})
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.name, cmd = f.name.Update(msg)
	} else {
		f.retention, cmd = f.retention.Update(msg)
	}
	f.err = ""
	return cmd
}

func (d *orgDetail) settleBucket(msg savedMsg[api.Bucket]) tea.Cmd {
	var (
		list []api.Bucket
		n    bridge.Notification
	)
	if msg.id == "" {
		list, n = d.bucketBridge.SettleCreate(d.buckets.items, msg.item, msg.err, bridge.BucketCreated)
	} else {
		list, n = d.bucketBridge.SettleUpdate(d.buckets.items, msg.id, msg.item, msg.err, bridge.BucketUpdated)
	}
	d.buckets.replace(list)
	if d.bucketForm != nil {
		if msg.err != nil {
			d.bucketForm.saving = false
			d.bucketForm.err = n.Message
		} else {
			d.bucketForm = nil
		}
	}
	return notify(n)
}

// --- Options ---

func (d *orgDetail) handleOptionsKeys(msg tea.KeyMsg) tea.Cmd {
	if !d.renaming {
		if isKey(msg, "e") || isEnter(msg) {
			d.renaming = true
			d.rename.SetValue(d.org.Name)
			d.rename.CursorEnd()
			return d.rename.Focus()
		}
		return nil
	}
	switch {
	case isBack(msg):
		d.renaming = false
		d.rename.Blur()
		d.rename.SetValue(d.org.Name)
		return nil
	case isEnter(msg):
		name := strings.TrimSpace(d.rename.Value())
		d.renaming = false
		d.rename.Blur()
		if name == "" || name == d.org.Name || d.client == nil {
			d.rename.SetValue(d.org.Name)
			return nil
		}
		client := d.client
		org := api.Organization{ID: d.org.ID, Name: name}
		return saveCmd(orgsKey, org.ID, func() (*api.Organization, error) {
			return client.UpdateOrganization(org)
		})
	}
	var cmd tea.Cmd
	d.rename, cmd = d.rename.Update(msg)
	return cmd
}

// --- View ---

func (d *orgDetail) renderSections() string {
	segments := make([]string, 0, len(sectionNames))
	for i, name := range sectionNames {
		if i == d.section {
			segments = append(segments, TabActiveStyle.Render(name))
		} else {
			segments = append(segments, TabInactiveStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (d *orgDetail) view(width int) string {
	header := SelectedStyle.Render(components.SanitizeOneLine(d.org.Name)) + "\n\n" + d.renderSections()
	inner := components.BoxContentWidth(width)

	var body string
	switch d.section {
	case sectionMembers:
		cols := []components.TableColumn{
			{Header: "Name", Width: max(inner-24, 12)},
			{Header: "Role", Width: 12},
			{Header: "Status", Width: 12},
		}
		body = d.members.render("Members", cols, memberRow, width,
			"Looks like there aren't any Members.", "No Members match your query")
	case sectionBuckets:
		cols := []components.TableColumn{
			{Header: "Name", Width: max(inner-24, 12)},
			{Header: "Retention", Width: 24},
		}
		body = d.buckets.render("Buckets", cols, bucketRow, width,
			"Looks like there aren't any Buckets, why not create one?", "No Buckets match your query")
		if d.bucketForm != nil {
			body = components.Composite(components.Dim(body), d.bucketForm.view(width), width)
		}
	case sectionDashboards:
		cols := []components.TableColumn{
			{Header: "Name", Width: 30},
			{Header: "Description", Width: max(inner-30, 12)},
		}
		body = d.dashboards.render("Dashboards", cols, dashboardRow, width,
			"Looks like there aren't any Dashboards.", "No Dashboards match your query")
	case sectionTasks:
		cols := []components.TableColumn{
			{Header: "Name", Width: max(inner-54, 12)},
			{Header: "Status", Width: 10},
			{Header: "Schedule", Width: 22},
			{Header: "Owner", Width: 22},
		}
		body = d.tasks.render("Tasks", cols, taskRow, width,
			"Looks like there aren't any Tasks.", "No Tasks match your query")
	case sectionLabels:
		body = d.labels.render(width)
	case sectionOptions:
		body = d.renderOptions(width)
	}
	return header + "\n\n" + body
}

func (d *orgDetail) renderOptions(width int) string {
	name := NormalStyle.Render(components.SanitizeOneLine(d.org.Name))
	if d.renaming {
		name = d.rename.View()
	}
	field := components.Form([]components.FormField{{Label: "Name", Input: name, Focused: d.renaming}}, "")
	body := detailRow("ID", d.org.ID, ColorMuted) + "\n\n" + field
	if !d.renaming {
		body += "\n\n" + MutedStyle.Render("e: rename organization")
	}
	return components.TitledBox("Options", body, width)
}

func memberRow(u api.User) []string {
	return []string{u.Name, u.Role, u.Status}
}

func bucketRow(b api.Bucket) []string {
	return []string{b.Name, b.Retention()}
}

func dashboardRow(d api.Dashboard) []string {
	return []string{d.Name, d.Description}
}

func taskRow(t api.Task) []string {
	return []string{t.Name, string(t.Status), t.Schedule(), t.Owner.Name}
}

func (d *orgDetail) hints() []string {
	if d.section == sectionLabels {
		return d.labels.hints()
	}
	if d.bucketForm != nil && d.section == sectionBuckets {
		return []string{components.Hint("tab", "Next"), components.Hint("enter", "Save"), components.Hint("esc", "Cancel")}
	}
	if d.section == sectionOptions {
		if d.renaming {
			return []string{components.Hint("enter", "Save"), components.Hint("esc", "Cancel")}
		}
		return []string{components.Hint("←/→", "Sections"), components.Hint("e", "Rename"), components.Hint("esc", "Back")}
	}
	hints := []string{components.Hint("←/→", "Sections"), components.Hint("/", "Search"), components.Hint("r", "Refresh")}
	if d.section == sectionBuckets {
		hints = append(hints, components.Hint("n", "Create"), components.Hint("e", "Edit"))
	}
	return append(hints, components.Hint("esc", "Back"))
}
