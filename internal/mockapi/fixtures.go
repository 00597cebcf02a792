// Package mockapi serves an in-memory rendition of the platform's /api/v2
// surface for demos and tests.
package mockapi

import (
	"time"

	"github.com/gravitrone/tsadmin/internal/api"
)

// Fixtures seeds a Server. Each Server owns a deep copy, so one Fixtures
// value can seed many servers.
type Fixtures struct {
	Orgs           []api.Organization
	Members        map[string][]api.User
	Authorizations []api.Authorization
	Buckets        []api.Bucket
	Dashboards     []api.Dashboard
	Tasks          []api.Task
	Labels         []api.Label
}

func (f Fixtures) clone() Fixtures {
	out := Fixtures{
		Orgs:           append([]api.Organization{}, f.Orgs...),
		Members:        make(map[string][]api.User, len(f.Members)),
		Authorizations: make([]api.Authorization, 0, len(f.Authorizations)),
		Buckets:        make([]api.Bucket, 0, len(f.Buckets)),
		Dashboards:     append([]api.Dashboard{}, f.Dashboards...),
		Tasks:          append([]api.Task{}, f.Tasks...),
		Labels:         append([]api.Label{}, f.Labels...),
	}
	for org, users := range f.Members {
		out.Members[org] = append([]api.User{}, users...)
	}
	for _, a := range f.Authorizations {
		a.Permissions = append([]api.Permission{}, a.Permissions...)
		out.Authorizations = append(out.Authorizations, a)
	}
	for _, b := range f.Buckets {
		b.RetentionRules = append([]api.RetentionRule{}, b.RetentionRules...)
		out.Buckets = append(out.Buckets, b)
	}
	return out
}

// Demo org and user ids.
const (
	DemoOrgID    = "030444b11fb10001"
	DemoOrg2ID   = "030444b11fb10002"
	DemoUserID   = "030444b11fb1000a"
	DemoAuthID   = "030444b11fb10000"
	DemoOrgName  = "Cooooool Orgggg bruhhh"
	DemoOrg2Name = "RadicalOrg"
)

// DemoFixtures returns a small populated platform.
func DemoFixtures() Fixtures {
	bucketID := "030444b11fb10010"
	owner := api.Owner{ID: DemoUserID, Name: "watts"}
	return Fixtures{
		Orgs: []api.Organization{
			{ID: DemoOrgID, Name: DemoOrgName},
			{ID: DemoOrg2ID, Name: DemoOrg2Name},
		},
		Members: map[string][]api.User{
			DemoOrgID: {
				{ID: DemoUserID, Name: "watts", Role: "owner"},
				{ID: "030444b11fb1000b", Name: "iris", Role: "member"},
			},
			DemoOrg2ID: {
				{ID: DemoUserID, Name: "watts", Role: "member"},
			},
		},
		Authorizations: []api.Authorization{
			{
				ID:          DemoAuthID,
				Token:       "ZxAVbQ9n7Ki3d-demo-token-A1vQ2v8QqgM0x8jc2Li6zXw==",
				Status:      api.StatusActive,
				Description: "I belive in free will",
				OrgID:       DemoOrgID,
				Org:         DemoOrgName,
				UserID:      DemoUserID,
				User:        "watts",
				Permissions: []api.Permission{
					{Action: api.ActionRead, Resource: api.ResourceBuckets},
					{Action: api.ActionWrite, Resource: api.ResourceBuckets, ID: &bucketID},
					{Action: api.ActionRead, Resource: api.ResourceDashboards},
				},
			},
			{
				ID:          "030444b11fb10003",
				Token:       "c2VjcmV0LWNpLXRva2Vu-demo-token-B7pQ0v3kLmN4wR==",
				Status:      api.StatusInactive,
				Description: "old ci writer",
				OrgID:       DemoOrg2ID,
				Org:         DemoOrg2Name,
				UserID:      DemoUserID,
				User:        "watts",
				Permissions: []api.Permission{
					{Action: api.ActionWrite, Resource: api.ResourceBuckets},
				},
			},
		},
		Buckets: []api.Bucket{
			{ID: bucketID, OrganizationID: DemoOrgID, Organization: DemoOrgName, Name: "telegraf", RetentionRules: api.ExpireAfter(72 * time.Hour)},
			{ID: "030444b11fb10011", OrganizationID: DemoOrgID, Organization: DemoOrgName, Name: "_monitoring", RetentionRules: api.ExpireAfter(7 * 24 * time.Hour)},
			{ID: "030444b11fb10012", OrganizationID: DemoOrg2ID, Organization: DemoOrg2Name, Name: "sensors", RetentionRules: []api.RetentionRule{}},
		},
		Dashboards: []api.Dashboard{
			{ID: "030444b11fb10020", OrgID: DemoOrgID, Name: "System", Description: "host cpu, mem and disk"},
			{ID: "030444b11fb10021", OrgID: DemoOrgID, Name: "Ingest"},
		},
		Tasks: []api.Task{
			{ID: "030444b11fb10030", Name: "downsample 1h", Status: api.StatusActive, OrganizationID: DemoOrgID, Organization: DemoOrgName, Owner: owner, Every: "1h", Flux: `from(bucket: "telegraf") |> range(start: -1h) |> aggregateWindow(every: 1m, fn: mean)`},
			{ID: "030444b11fb10031", Name: "alert check", Status: api.StatusInactive, OrganizationID: DemoOrgID, Organization: DemoOrgName, Owner: owner, Cron: "*/5 * * * *", Flux: `from(bucket: "telegraf") |> range(start: -5m)`},
		},
		Labels: []api.Label{
			demoLabel("030444b11fb10040", "Swogglez", "#ff0054", "I am an example Label"),
			demoLabel("030444b11fb10041", "Top Secret", "#4a52f4", "Only admins can modify these resources"),
			demoLabel("030444b11fb10042", "Pineapples", "#f4c24a", "Pineapples are in my head"),
			demoLabel("030444b11fb10043", "SWAT", "#d6ff9c", "Boots and cats and boots and cats"),
			demoLabel("030444b11fb10044", "the GOAT", "#17d9f0", "Gatsby obviously ate turnips"),
			demoLabel("030444b11fb10045", "My Spoon is Too Big", "#27c27e", "My Spooooooooon is Too Big"),
		},
	}
}

func demoLabel(id, name, color, description string) api.Label {
	return api.Label{
		ID:         id,
		OrgID:      DemoOrgID,
		Name:       name,
		Properties: api.LabelProperties{Color: color, Description: description},
	}
}
