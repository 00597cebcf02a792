package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// --- Status ---

// Status is the activation state shared by authorizations and tasks.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() error {
	switch s {
	case StatusActive, StatusInactive:
		return nil
	default:
		return fmt.Errorf("invalid status %q", string(s))
	}
}

// ParseStatus normalizes user input into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if err := s.Valid(); err != nil {
		return "", err
	}
	return s, nil
}

// --- Permission ---

// Action is the verb a permission grants.
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
)

// Resource is the kind of platform object a permission applies to.
type Resource string

const (
	ResourceUsers          Resource = "users"
	ResourceOrgs           Resource = "orgs"
	ResourceTasks          Resource = "tasks"
	ResourceBuckets        Resource = "buckets"
	ResourceDashboards     Resource = "dashboards"
	ResourceSources        Resource = "sources"
	ResourceLabels         Resource = "labels"
	ResourceAuthorizations Resource = "authorizations"
)

// Actions lists every known action in display order.
var Actions = []Action{ActionRead, ActionWrite, ActionCreate, ActionDelete}

// Resources lists every known resource in display order.
var Resources = []Resource{
	ResourceAuthorizations,
	ResourceBuckets,
	ResourceDashboards,
	ResourceLabels,
	ResourceOrgs,
	ResourceSources,
	ResourceTasks,
	ResourceUsers,
}

// Permission grants an action on a resource, optionally scoped to one id.
type Permission struct {
	Action   Action   `json:"action"`
	Resource Resource `json:"resource"`
	ID       *string  `json:"id,omitempty"`
	Name     *string  `json:"name,omitempty"`
}

// Valid checks that action and resource are known and the optional id is
// a platform id.
func (p Permission) Valid() error {
	if p.Action == "" || p.Resource == "" {
		return fmt.Errorf("permission requires action and resource")
	}
	if !knownAction(p.Action) {
		return fmt.Errorf("unknown action %q", string(p.Action))
	}
	if !knownResource(p.Resource) {
		return fmt.Errorf("unknown resource %q", string(p.Resource))
	}
	if p.ID != nil && !ValidID(*p.ID) {
		return fmt.Errorf("invalid %s id %q", string(p.Resource), *p.ID)
	}
	return nil
}

// String renders the permission in action:resource[:id] form.
func (p Permission) String() string {
	s := string(p.Action) + ":" + string(p.Resource)
	if p.ID != nil {
		s += ":" + *p.ID
	}
	return s
}

// ParsePermission reads action:resource[:id].
func ParsePermission(raw string) (Permission, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Permission{}, fmt.Errorf("permission %q must be action:resource[:id]", raw)
	}
	p := Permission{
		Action:   Action(strings.ToLower(parts[0])),
		Resource: Resource(strings.ToLower(parts[1])),
	}
	if len(parts) == 3 && parts[2] != "" {
		id := parts[2]
		p.ID = &id
	}
	if err := p.Valid(); err != nil {
		return Permission{}, err
	}
	return p, nil
}

func knownAction(a Action) bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

func knownResource(r Resource) bool {
	for _, known := range Resources {
		if r == known {
			return true
		}
	}
	return false
}

// ValidID reports whether id is a 16 character lowercase hex platform id.
func ValidID(id string) bool {
	if len(id) != 16 {
		return false
	}
	for _, r := range id {
		if !(r >= '0' && r <= '9') && !(r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}

// --- Authorization ---

// Authorization is an API token together with the permissions it carries.
type Authorization struct {
	ID          string       `json:"id"`
	Token       string       `json:"token,omitempty"`
	Status      Status       `json:"status"`
	Description string       `json:"description"`
	OrgID       string       `json:"orgID"`
	Org         string       `json:"org,omitempty"`
	UserID      string       `json:"userID,omitempty"`
	User        string       `json:"user,omitempty"`
	Permissions []Permission `json:"permissions"`
	Links       Links        `json:"links,omitempty"`
}

func (a Authorization) RecordID() string { return a.ID }

func (a Authorization) Field(key string) (string, bool) {
	switch key {
	case "id":
		return a.ID, true
	case "status":
		return string(a.Status), true
	case "description":
		return a.Description, true
	case "org":
		return a.Org, true
	case "user":
		return a.User, true
	}
	return "", false
}

// CreateAuthorizationInput defines the fields required to generate a token.
type CreateAuthorizationInput struct {
	OrgID       string       `json:"orgID"`
	UserID      string       `json:"userID,omitempty"`
	Description string       `json:"description"`
	Status      Status       `json:"status,omitempty"`
	Permissions []Permission `json:"permissions"`
}

// Validate checks the input the way the server would before creating.
func (in CreateAuthorizationInput) Validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if in.OrgID == "" {
		return fmt.Errorf("organization is required")
	}
	if len(in.Permissions) == 0 {
		return fmt.Errorf("authorization must include permissions")
	}
	for _, p := range in.Permissions {
		if err := p.Valid(); err != nil {
			return err
		}
	}
	return nil
}

// Links holds hypermedia references returned alongside resources.
type Links map[string]string

// --- Organization ---

// Organization groups buckets, dashboards, tasks, labels and members.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (o Organization) RecordID() string { return o.ID }

func (o Organization) Field(key string) (string, bool) {
	switch key {
	case "id":
		return o.ID, true
	case "name":
		return o.Name, true
	}
	return "", false
}

// --- User ---

// User is an organization member.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
}

func (u User) RecordID() string { return u.ID }

func (u User) Field(key string) (string, bool) {
	switch key {
	case "id":
		return u.ID, true
	case "name":
		return u.Name, true
	case "role":
		return u.Role, true
	}
	return "", false
}

// --- Bucket ---

// RetentionRule bounds how long a bucket keeps data; zero means forever.
type RetentionRule struct {
	Type         string `json:"type"`
	EverySeconds int64  `json:"everySeconds"`
}

// Bucket is a named store of time series data inside an organization.
type Bucket struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organizationID"`
	Organization   string          `json:"organization,omitempty"`
	Name           string          `json:"name"`
	RetentionRules []RetentionRule `json:"retentionRules"`
}

func (b Bucket) RecordID() string { return b.ID }

func (b Bucket) Field(key string) (string, bool) {
	switch key {
	case "id":
		return b.ID, true
	case "name":
		return b.Name, true
	case "retention":
		return b.Retention(), true
	}
	return "", false
}

// RetentionPeriod returns the expire rule duration, zero when unbounded.
func (b Bucket) RetentionPeriod() time.Duration {
	for _, rule := range b.RetentionRules {
		if rule.Type == "expire" && rule.EverySeconds > 0 {
			return time.Duration(rule.EverySeconds) * time.Second
		}
	}
	return 0
}

// Retention renders the retention period for display.
func (b Bucket) Retention() string {
	d := b.RetentionPeriod()
	if d == 0 {
		return "forever"
	}
	return d.String()
}

// ExpireAfter builds retention rules for the given period.
func ExpireAfter(d time.Duration) []RetentionRule {
	if d <= 0 {
		return []RetentionRule{}
	}
	return []RetentionRule{{Type: "expire", EverySeconds: int64(d / time.Second)}}
}

// ParseRetention accepts Go durations plus a whole-day "Nd" form. Empty and
// "forever" mean no expiry.
func ParseRetention(raw string) (time.Duration, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == "forever" {
		return 0, nil
	}
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid retention %q", raw)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid retention %q", raw)
	}
	return d, nil
}

// --- Dashboard ---

// Dashboard is a saved collection of cells.
type Dashboard struct {
	ID          string `json:"id"`
	OrgID       string `json:"orgID"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (d Dashboard) RecordID() string { return d.ID }

func (d Dashboard) Field(key string) (string, bool) {
	switch key {
	case "id":
		return d.ID, true
	case "name":
		return d.Name, true
	case "description":
		return d.Description, true
	}
	return "", false
}

// --- Task ---

// Owner names the user a task runs as.
type Owner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task is a scheduled Flux script.
type Task struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         Status `json:"status"`
	OrganizationID string `json:"organizationID"`
	Organization   string `json:"organization,omitempty"`
	Owner          Owner  `json:"owner"`
	Every          string `json:"every,omitempty"`
	Cron           string `json:"cron,omitempty"`
	Offset         string `json:"offset,omitempty"`
	Flux           string `json:"flux"`
}

func (t Task) RecordID() string { return t.ID }

func (t Task) Field(key string) (string, bool) {
	switch key {
	case "id":
		return t.ID, true
	case "name":
		return t.Name, true
	case "status":
		return string(t.Status), true
	case "owner":
		return t.Owner.Name, true
	case "schedule":
		return t.Schedule(), true
	}
	return "", false
}

// Schedule renders the task's cadence.
func (t Task) Schedule() string {
	switch {
	case t.Cron != "":
		return "cron " + t.Cron
	case t.Every != "":
		return "every " + t.Every
	default:
		return ""
	}
}

// --- Label ---

// LabelProperties holds the presentational attributes of a label.
type LabelProperties struct {
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}

// Label tags platform resources within an organization.
type Label struct {
	ID         string          `json:"id"`
	OrgID      string          `json:"orgID"`
	Name       string          `json:"name"`
	Properties LabelProperties `json:"properties"`
}

func (l Label) RecordID() string { return l.ID }

func (l Label) Field(key string) (string, bool) {
	switch key {
	case "id":
		return l.ID, true
	case "name":
		return l.Name, true
	case "description":
		return l.Properties.Description, true
	case "color":
		return l.Properties.Color, true
	}
	return "", false
}

// --- Query ---

// QueryParams is a map of URL query parameters.
type QueryParams map[string]string
