package ui

import (
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/bridge"
	"github.com/gravitrone/tsadmin/internal/mockapi"
	"github.com/gravitrone/tsadmin/internal/ui/components"
)

func loadedOrgs(t *testing.T, opts mockapi.Options) (OrgsModel, *mockapi.Server) {
	t.Helper()
	client, srv := newMockClient(t, opts)
	m := NewOrgsModel(client)
	m.width = 120

	m, notes := settle(m, OrgsModel.Update, m.Init())
	require.Empty(t, notes)
	require.Equal(t, []string{mockapi.DemoOrgID, mockapi.DemoOrg2ID}, ids(m.view.items))
	return m, srv
}

// openOrg opens the first organization and waits for its members.
func openOrg(t *testing.T, m OrgsModel) OrgsModel {
	t.Helper()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.detail)
	m, _ = settle(m, OrgsModel.Update, cmd)
	require.Len(t, m.detail.members.items, 2)
	return m
}

func showSection(t *testing.T, m OrgsModel, section int) OrgsModel {
	t.Helper()
	m, _ = settle(m, OrgsModel.Update, m.detail.show(section))
	return m
}

func TestOrgsInitLoadsFromPlatform(t *testing.T) {
	m, _ := loadedOrgs(t, mockapi.Options{})

	out := components.SanitizeText(m.View())
	assert.Contains(t, out, "Organizations")
	assert.Contains(t, out, mockapi.DemoOrgName)
	assert.Contains(t, out, mockapi.DemoOrg2Name)
}

func TestOrgsCreate(t *testing.T) {
	m, _ := loadedOrgs(t, mockapi.Options{})

	m, _ = m.Update(runeKey('n'))
	require.True(t, m.capturing())
	assert.Contains(t, components.SanitizeText(m.View()), "Create Organization")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "Organization name is required", m.err)

	m = typeText(m, OrgsModel.Update, "Telemetry")
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, notes := settle(m, OrgsModel.Update, cmd)
	require.Len(t, notes, 1)
	assert.Equal(t, "Organization was created successfully", notes[0].Message)
	assert.False(t, m.creating)
	require.Len(t, m.view.items, 3)
	assert.Equal(t, "Telemetry", m.view.items[2].Name)
}

func TestOrgsCreateConflictKeepsForm(t *testing.T) {
	m, _ := loadedOrgs(t, mockapi.Options{})

	m, _ = m.Update(runeKey('n'))
	m = typeText(m, OrgsModel.Update, mockapi.DemoOrg2Name)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m, notes := settle(m, OrgsModel.Update, cmd)
	require.Len(t, notes, 1)
	assert.Equal(t, bridge.Error, notes[0].Kind)
	assert.True(t, m.creating)
	assert.False(t, m.saving)
	assert.Contains(t, m.err, "already exists")
	assert.Len(t, m.view.items, 2)
}

func TestOrgsDeleteSuccess(t *testing.T) {
	m, _ := loadedOrgs(t, mockapi.Options{})

	m, _ = m.Update(runeKey('d'))
	require.True(t, m.confirm.IsOpen())
	assert.Contains(t, components.SanitizeText(m.View()), "Delete Organization")

	m, cmd := m.Update(runeKey('y'))
	assert.Equal(t, []string{mockapi.DemoOrg2ID}, ids(m.view.items))

	m, notes := settle(m, OrgsModel.Update, cmd)
	require.Len(t, notes, 1)
	assert.Equal(t, "Organization was deleted successfully", notes[0].Message)
	assert.Equal(t, []string{mockapi.DemoOrg2ID}, ids(m.view.items))
}

func TestOrgsDeleteFailureRestoresList(t *testing.T) {
	m, _ := loadedOrgs(t, mockapi.Options{FailDeletes: true})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(runeKey('d'))
	assert.Equal(t, mockapi.DemoOrg2ID, m.confirm.Target())
	m, cmd := m.Update(runeKey('y'))
	assert.Len(t, m.view.items, 1)

	m, notes := settle(m, OrgsModel.Update, cmd)
	require.Len(t, notes, 1)
	assert.Equal(t, bridge.Error, notes[0].Kind)
	assert.Contains(t, notes[0].Message, "Failed to delete organization")
	assert.Equal(t, []string{mockapi.DemoOrgID, mockapi.DemoOrg2ID}, ids(m.view.items))
}

func TestOrgsOpenDetailAndBack(t *testing.T) {
	m, _ := loadedOrgs(t, mockapi.Options{})
	m = openOrg(t, m)

	assert.True(t, m.wantsArrows())
	out := components.SanitizeText(m.View())
	assert.Contains(t, out, mockapi.DemoOrgName)
	assert.Contains(t, out, "Members")
	assert.Contains(t, out, "watts")
	assert.Contains(t, out, "owner")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.detail)
}

func TestOrgDetailEscClearsFilterFirst(t *testing.T) {
	m, _ := loadedOrgs(t, mockapi.Options{})
	m = openOrg(t, m)

	m, _ = m.Update(runeKey('/'))
	require.True(t, m.capturing())
	m = typeText(m, OrgsModel.Update, "iris")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.detail.members.visible(), 1)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, m.detail)
	assert.Len(t, m.detail.members.visible(), 2)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.detail)
}

func TestOrgDetailSectionsLoadLazily(t *testing.T) {
	m, _ := loadedOrgs(t, mockapi.Options{})
	m = openOrg(t, m)
	assert.False(t, m.detail.loaded[sectionBuckets])

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, sectionBuckets, m.detail.section)
	assert.True(t, m.detail.buckets.loading)
	m, _ = settle(m, OrgsModel.Update, cmd)
	assert.Equal(t, []string{"telegraf", "_monitoring"}, bucketNames(m.detail.buckets.items))

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = settle(m, OrgsModel.Update, cmd)
	assert.Equal(t, sectionDashboards, m.detail.section)
	assert.Len(t, m.detail.dashboards.items, 2)

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = settle(m, OrgsModel.Update, cmd)
	require.Len(t, m.detail.tasks.items, 2)
	out := components.SanitizeText(m.View())
	assert.Contains(t, out, "downsample 1h")
	assert.Contains(t, out, "every 1h")

	// revisiting does not refetch
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, sectionBuckets, m.detail.section)
	assert.Nil(t, cmd)
}

func TestOrgDetailWrapsSections(t *testing.T) {
	m, _ := loadedOrgs(t, mockapi.Options{})
	m = openOrg(t, m)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, sectionOptions, m.detail.section)
	assert.Nil(t, cmd)
	assert.Contains(t, components.SanitizeText(m.View()), mockapi.DemoOrgID)
}

func TestOrgDetailRename(t *testing.T) {
	m, _ := loadedOrgs(t, mockapi.Options{})
	m = openOrg(t, m)
	m = showSection(t, m, sectionOptions)

	m, _ = m.Update(runeKey('e'))
	require.True(t, m.detail.renaming)
	require.True(t, m.capturing())
	m.detail.rename.SetValue("")
	m = typeText(m, OrgsModel.Update, "Cool Org")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.detail.renaming)

	m, notes := settle(m, OrgsModel.Update, cmd)
	require.Len(t, notes, 1)
	assert.Equal(t, "Organization was renamed successfully", notes[0].Message)
	assert.Equal(t, "Cool Org", m.detail.org.Name)
	assert.Equal(t, "Cool Org", m.view.items[0].Name)
}

func TestOrgDetailRenameUnchangedIsNoop(t *testing.T) {
	m, _ := loadedOrgs(t, mockapi.Options{})
	m = openOrg(t, m)
	m = showSection(t, m, sectionOptions)

	m, _ = m.Update(runeKey('e'))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.detail.renaming)
}

// --- Buckets ---

func bucketNames(buckets []api.Bucket) []string {
	out := make([]string, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b.Name)
	}
	return out
}

func TestOrgDetailCreateBucket(t *testing.T) {
	m, _ := loadedOrgs(t, mockapi.Options{})
	m = openOrg(t, m)
	m = showSection(t, m, sectionBuckets)

	m, _ = m.Update(runeKey('n'))
	require.NotNil(t, m.detail.bucketForm)
	require.True(t, m.capturing())
	m = typeText(m, OrgsModel.Update, "metrics")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, OrgsModel.Update, "30d")
	assert.Contains(t, components.SanitizeText(m.View()), "Create Bucket")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, notes := settle(m, OrgsModel.Update, cmd)
	require.Len(t, notes, 1)
	assert.Equal(t, "Bucket was created successfully", notes[0].Message)
	assert.Nil(t, m.detail.bucketForm)
	require.Len(t, m.detail.buckets.items, 3)
	created := m.detail.buckets.items[2]
	assert.Equal(t, "metrics", created.Name)
	assert.Equal(t, 30*24*time.Hour, created.RetentionPeriod())
}

func TestOrgDetailBucketRejectsBadRetention(t *testing.T) {
	m, _ := loadedOrgs(t, mockapi.Options{})
	m = openOrg(t, m)
	m = showSection(t, m, sectionBuckets)

	m, _ = m.Update(runeKey('n'))
	m = typeText(m, OrgsModel.Update, "metrics")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, OrgsModel.Update, "soon")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, `invalid retention "soon"`, m.detail.bucketForm.err)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.detail.bucketForm)
	assert.NotNil(t, m.detail, "esc closes the form, not the page")
}

func TestOrgDetailEditBucket(t *testing.T) {
	m, _ := loadedOrgs(t, mockapi.Options{})
	m = openOrg(t, m)
	m = showSection(t, m, sectionBuckets)

	m, _ = m.Update(runeKey('e'))
	require.NotNil(t, m.detail.bucketForm)
	assert.Equal(t, "72h0m0s", m.detail.bucketForm.retention.Value())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.detail.bucketForm.retention.SetValue("forever")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	m, notes := settle(m, OrgsModel.Update, cmd)
	require.Len(t, notes, 1)
	assert.Equal(t, "Bucket was updated successfully", notes[0].Message)
	assert.Equal(t, "forever", m.detail.buckets.items[0].Retention())
}

// --- Labels ---

func openLabels(t *testing.T, opts mockapi.Options) (OrgsModel, *mockapi.Server) {
	t.Helper()
	m, srv := loadedOrgs(t, opts)
	m = openOrg(t, m)
	m = showSection(t, m, sectionLabels)
	require.Len(t, m.detail.labels.view.items, 6)
	return m, srv
}

func TestLabelsSectionRendersPills(t *testing.T) {
	m, _ := openLabels(t, mockapi.Options{})

	out := components.SanitizeText(m.View())
	assert.Contains(t, out, "Swogglez")
	assert.Contains(t, out, "#ff0054")
	assert.Contains(t, out, "6 total")
}

func TestLabelsSearch(t *testing.T) {
	m, _ := openLabels(t, mockapi.Options{})

	m, _ = m.Update(runeKey('/'))
	m = typeText(m, OrgsModel.Update, "boots")

	visible := m.detail.labels.view.visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "SWAT", visible[0].Name)
}

func TestLabelsCreate(t *testing.T) {
	m, _ := openLabels(t, mockapi.Options{})

	m, _ = m.Update(runeKey('n'))
	require.NotNil(t, m.detail.labels.form)
	assert.Contains(t, components.SanitizeText(m.View()), "Create Label")

	m = typeText(m, OrgsModel.Update, "Grafana")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, m.detail.labels.form.saving)

	m, notes := settle(m, OrgsModel.Update, cmd)
	require.Len(t, notes, 1)
	assert.Equal(t, "Label was created successfully", notes[0].Message)
	assert.Nil(t, m.detail.labels.form)
	require.Len(t, m.detail.labels.view.items, 7)
	created := m.detail.labels.view.items[6]
	assert.Equal(t, "Grafana", created.Name)
	assert.Equal(t, "#326BBA", created.Properties.Color)
	assert.Equal(t, mockapi.DemoOrgID, created.OrgID)
}

func TestLabelsCreateDuplicateKeepsForm(t *testing.T) {
	m, _ := openLabels(t, mockapi.Options{})

	m, _ = m.Update(runeKey('n'))
	m = typeText(m, OrgsModel.Update, "swat")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	m, notes := settle(m, OrgsModel.Update, cmd)
	require.Len(t, notes, 1)
	assert.Equal(t, bridge.Error, notes[0].Kind)
	require.NotNil(t, m.detail.labels.form)
	assert.False(t, m.detail.labels.form.saving)
	assert.Contains(t, m.detail.labels.form.err, "already exists")
	assert.Len(t, m.detail.labels.view.items, 6)
}

func TestLabelsEdit(t *testing.T) {
	m, _ := openLabels(t, mockapi.Options{})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	form := m.detail.labels.form
	require.NotNil(t, form)
	assert.Equal(t, "030444b11fb10040", m.detail.labels.edit.Target())
	assert.Equal(t, "Edit Label", form.title())
	assert.True(t, form.custom())
	assert.Equal(t, "#ff0054", form.hex.Value())

	// name -> color -> hex -> description
	for range 3 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	require.Equal(t, labelFocusDescription, m.detail.labels.form.focus)
	m = typeText(m, OrgsModel.Update, " too")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, notes := settle(m, OrgsModel.Update, cmd)
	require.Len(t, notes, 1)
	assert.Equal(t, "Label was updated successfully", notes[0].Message)
	assert.Nil(t, m.detail.labels.form)
	assert.False(t, m.detail.labels.edit.IsOpen())
	assert.Equal(t, "I am an example Label too", m.detail.labels.view.items[0].Properties.Description)
}

func TestLabelsDeleteFailureRestoresOrder(t *testing.T) {
	m, srv := openLabels(t, mockapi.Options{})
	before := ids(m.detail.labels.view.items)
	srv.FailNext(http.MethodDelete, http.StatusInternalServerError)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(runeKey('d'))
	assert.Contains(t, components.SanitizeText(m.View()), `Delete label "Pineapples"?`)

	m, cmd := m.Update(runeKey('y'))
	assert.Len(t, m.detail.labels.view.items, 5)

	m, notes := settle(m, OrgsModel.Update, cmd)
	require.Len(t, notes, 1)
	assert.Equal(t, bridge.Error, notes[0].Kind)
	assert.Equal(t, before, ids(m.detail.labels.view.items))
}

func TestLabelsDelete(t *testing.T) {
	m, _ := openLabels(t, mockapi.Options{})

	m, _ = m.Update(runeKey('d'))
	m, cmd := m.Update(runeKey('y'))

	m, notes := settle(m, OrgsModel.Update, cmd)
	require.Len(t, notes, 1)
	assert.Equal(t, "Label was deleted successfully", notes[0].Message)
	assert.Len(t, m.detail.labels.view.items, 5)
	assert.NotContains(t, ids(m.detail.labels.view.items), "030444b11fb10040")
}
