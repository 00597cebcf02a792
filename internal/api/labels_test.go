package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLabelsByOrg(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/labels", r.URL.Path)
		assert.Equal(t, "0000000000000001", r.URL.Query().Get("orgID"))
		w.Write(jsonBody(map[string]any{"labels": []map[string]any{{
			"id": "l1", "orgID": "0000000000000001", "name": "Swogglez",
			"properties": map[string]any{"color": "#ff0054", "description": "I am an example Label"},
		}}}))
	})

	labels, err := client.ListLabels("0000000000000001")
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "#ff0054", labels[0].Properties.Color)
	desc, ok := labels[0].Field("description")
	assert.True(t, ok)
	assert.Equal(t, "I am an example Label", desc)
}

func TestUpdateLabelSendsNameAndProperties(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v2/labels/l1", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "SWAT", body["name"])
		_, hasID := body["id"]
		assert.False(t, hasID)
		w.Write(jsonBody(map[string]any{
			"id": "l1", "orgID": "o1", "name": "SWAT",
			"properties": map[string]any{"color": "#d6ff9c"},
		}))
	})

	label, err := client.UpdateLabel(Label{ID: "l1", Name: "SWAT", Properties: LabelProperties{Color: "#d6ff9c"}})
	require.NoError(t, err)
	assert.Equal(t, "SWAT", label.Name)
}

func TestCreateLabelValidatesLocally(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "tok")
	_, err := client.CreateLabel(Label{OrgID: "o1"})
	assert.EqualError(t, err, "label name is required")
	_, err = client.CreateLabel(Label{Name: "x"})
	assert.EqualError(t, err, "label organization is required")
}
