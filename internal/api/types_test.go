package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValid(t *testing.T) {
	assert.NoError(t, StatusActive.Valid())
	assert.NoError(t, StatusInactive.Valid())
	assert.Error(t, Status("").Valid())
	assert.Error(t, Status("Active").Valid())

	s, err := ParseStatus(" Active ")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, s)
}

func TestPermissionValid(t *testing.T) {
	id := "020f755c3c082000"
	bad := "not-an-id"

	tests := []struct {
		name    string
		perm    Permission
		wantErr bool
	}{
		{"read buckets", Permission{Action: ActionRead, Resource: ResourceBuckets}, false},
		{"scoped write", Permission{Action: ActionWrite, Resource: ResourceBuckets, ID: &id}, false},
		{"missing action", Permission{Resource: ResourceBuckets}, true},
		{"missing resource", Permission{Action: ActionRead}, true},
		{"unknown action", Permission{Action: "own", Resource: ResourceOrgs}, true},
		{"unknown resource", Permission{Action: ActionRead, Resource: "secrets"}, true},
		{"bad id", Permission{Action: ActionRead, Resource: ResourceTasks, ID: &bad}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.perm.Valid()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParsePermission(t *testing.T) {
	p, err := ParsePermission("write:buckets:020f755c3c082000")
	require.NoError(t, err)
	assert.Equal(t, ActionWrite, p.Action)
	require.NotNil(t, p.ID)
	assert.Equal(t, "write:buckets:020f755c3c082000", p.String())

	_, err = ParsePermission("read")
	assert.Error(t, err)
	_, err = ParsePermission("read:nothing")
	assert.Error(t, err)
}

func TestRecordFieldsReportUnknownKeys(t *testing.T) {
	auth := Authorization{ID: "a", Status: StatusActive, Description: "d"}
	v, ok := auth.Field("status")
	assert.True(t, ok)
	assert.Equal(t, "active", v)
	_, ok = auth.Field("token")
	assert.False(t, ok)
	assert.Equal(t, "a", auth.RecordID())
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("030444b11fb10000"))
	assert.False(t, ValidID("030444B11FB10000"))
	assert.False(t, ValidID("030444b11fb1000"))
}

func TestParseRetention(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"", 0, true},
		{"forever", 0, true},
		{" Forever ", 0, true},
		{"72h", 72 * time.Hour, true},
		{"30d", 30 * 24 * time.Hour, true},
		{"90m", 90 * time.Minute, true},
		{"-1h", 0, false},
		{"xd", 0, false},
		{"soon", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseRetention(tc.in)
		if !tc.ok {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestBucketRetention(t *testing.T) {
	b := Bucket{RetentionRules: ExpireAfter(72 * time.Hour)}
	assert.Equal(t, 72*time.Hour, b.RetentionPeriod())
	assert.Equal(t, "72h0m0s", b.Retention())

	b.RetentionRules = ExpireAfter(0)
	assert.NotNil(t, b.RetentionRules)
	assert.Equal(t, "forever", b.Retention())
}
