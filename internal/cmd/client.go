package cmd

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/config"
	"github.com/gravitrone/tsadmin/internal/records"
)

// connect loads the saved config and builds a client for it.
func connect() (*api.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("not logged in: %w", err)
	}
	return NewClient(cfg), cfg, nil
}

// NewClient builds a platform client from cfg, falling back to the default
// URL.
func NewClient(cfg *config.Config) *api.Client {
	if cfg == nil {
		return api.NewDefaultClient("")
	}
	url := cfg.URL
	if url == "" {
		url = api.DefaultBaseURL
	}
	return api.NewClient(url, cfg.Token)
}

// resolveOrg finds an organization by name (ignoring case) or id. A miss
// suggests the closest name.
func resolveOrg(client *api.Client, ref string) (api.Organization, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return api.Organization{}, fmt.Errorf("organization is required (--org)")
	}
	orgs, err := client.ListOrganizations()
	if err != nil {
		return api.Organization{}, fmt.Errorf("list organizations: %w", err)
	}
	if org, ok := records.Find(orgs, ref); ok {
		return org, nil
	}
	for _, o := range orgs {
		if strings.EqualFold(o.Name, ref) {
			return o, nil
		}
	}
	if hint := closestName(ref, orgs); hint != "" {
		return api.Organization{}, fmt.Errorf("organization %q not found, did you mean %q?", ref, hint)
	}
	return api.Organization{}, fmt.Errorf("organization %q not found", ref)
}

// closestName returns the org name nearest to ref, or "" when nothing is
// within half of ref's length.
func closestName(ref string, orgs []api.Organization) string {
	best, bestDist := "", -1
	needle := strings.ToLower(ref)
	for _, o := range orgs {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(o.Name))
		if bestDist < 0 || d < bestDist {
			best, bestDist = o.Name, d
		}
	}
	if bestDist < 0 || bestDist > max(len(ref)/2, 1) {
		return ""
	}
	return best
}

// defaultOrg picks the --org flag, then the configured org.
func defaultOrg(flag string, cfg *config.Config) string {
	if strings.TrimSpace(flag) != "" || cfg == nil {
		return flag
	}
	return cfg.Org
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
