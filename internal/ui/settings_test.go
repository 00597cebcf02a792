package ui

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/bridge"
	"github.com/gravitrone/tsadmin/internal/config"
	"github.com/gravitrone/tsadmin/internal/mockapi"
	"github.com/gravitrone/tsadmin/internal/ui/components"
)

func TestSettingsHealthCheck(t *testing.T) {
	client, _ := newMockClient(t, mockapi.Options{})
	m := NewSettingsModel(client, nil, "/tmp/config")
	m.width = 100
	assert.Contains(t, components.SanitizeText(m.View()), "checking")

	m, _ = settle(m, SettingsModel.Update, m.Init())
	assert.False(t, m.checking)
	assert.Equal(t, "pass", m.health)
	assert.Contains(t, components.SanitizeText(m.View()), "pass")
}

func TestSettingsHealthUnreachable(t *testing.T) {
	ts := httptest.NewServer(mockapi.New(mockapi.DemoFixtures(), mockapi.Options{}).Handler())
	ts.Close()
	m := NewSettingsModel(api.NewClient(ts.URL, ""), nil, "")

	m, _ = settle(m, SettingsModel.Update, m.Init())
	assert.Empty(t, m.health)
	assert.NotEmpty(t, m.healthErr)
}

func TestSettingsShowsMaskedToken(t *testing.T) {
	cfg := &config.Config{URL: "http://localhost:8086", Token: "abcdefghijklmnopqrstuvwxyz", Username: "watts"}
	m := NewSettingsModel(nil, cfg, "/tmp/config")
	m.width = 100

	out := components.SanitizeText(m.View())
	assert.Contains(t, out, "watts")
	assert.Contains(t, out, maskToken(cfg.Token))
	assert.NotContains(t, out, cfg.Token)
	assert.NotContains(t, out, "Health")
}

func TestSettingsToggleVimSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	cfg := &config.Config{URL: "http://localhost:8086", Token: "tok"}
	m := NewSettingsModel(nil, cfg, path)

	m, cmd := m.Update(runeKey('v'))
	require.True(t, m.config.VimKeys)
	assert.False(t, cfg.VimKeys, "the caller's config is not mutated")

	var changed, noted bool
	for _, msg := range runCmd(cmd) {
		switch msg := msg.(type) {
		case keymapChangedMsg:
			changed = msg.vim
		case notifyMsg:
			noted = msg.note.Kind == bridge.Success
		}
	}
	assert.True(t, changed)
	assert.True(t, noted)

	saved, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, saved.VimKeys)
	assert.Equal(t, "tok", saved.Token)
}

func TestSettingsToggleVimWithoutConfig(t *testing.T) {
	m := NewSettingsModel(nil, nil, "")

	_, cmd := m.Update(runeKey('v'))
	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	note := msgs[0].(notifyMsg).note
	assert.Equal(t, bridge.Error, note.Kind)
	assert.Contains(t, note.Message, "tsadmin login")
}
