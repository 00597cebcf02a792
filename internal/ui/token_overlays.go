package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/ui/components"
)

// --- View Token ---

// permissionRow is one line of the Resource / Read / Write table.
type permissionRow struct {
	name  string
	read  bool
	write bool
}

// permissionRows folds permissions into one row per resource scope.
// Unscoped permissions read as "All <Resource>".
func permissionRows(perms []api.Permission) []permissionRow {
	order := map[api.Resource]int{}
	for i, r := range api.Resources {
		order[r] = i
	}

	type scope struct {
		resource api.Resource
		id       string
	}
	rows := map[scope]*permissionRow{}
	var scopes []scope
	for _, p := range perms {
		s := scope{resource: p.Resource}
		name := "All " + titleCase(string(p.Resource))
		if p.ID != nil {
			s.id = *p.ID
			name = *p.ID
			if p.Name != nil && *p.Name != "" {
				name = *p.Name
			}
		}
		row, ok := rows[s]
		if !ok {
			row = &permissionRow{name: name}
			rows[s] = row
			scopes = append(scopes, s)
		}
		switch p.Action {
		case api.ActionRead:
			row.read = true
		case api.ActionWrite:
			row.write = true
		}
	}

	sort.SliceStable(scopes, func(i, j int) bool {
		if scopes[i].resource != scopes[j].resource {
			return order[scopes[i].resource] < order[scopes[j].resource]
		}
		// unscoped first
		return scopes[i].id < scopes[j].id
	})
	out := make([]permissionRow, 0, len(scopes))
	for _, s := range scopes {
		out = append(out, *rows[s])
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func check(ok bool) string {
	if ok {
		return "✓"
	}
	return "-"
}

// maskToken keeps the first and last four characters.
func maskToken(token string) string {
	if len(token) <= 12 {
		return strings.Repeat("•", len(token))
	}
	return token[:4] + strings.Repeat("•", 8) + token[len(token)-4:]
}

func renderTokenDetail(a api.Authorization, reveal bool, width int) string {
	token := maskToken(a.Token)
	if reveal {
		token = a.Token
	}
	org := a.Org
	if org == "" {
		org = a.OrgID
	}
	rows := []string{
		detailRow("Description", a.Description, ColorText),
		detailRow("Status", string(a.Status), statusColor(string(a.Status))),
		detailRow("Organization", org, ColorText),
		detailRow("Token", token, ColorText),
	}
	if a.User != "" {
		rows = append(rows, detailRow("User", a.User, ColorText))
	}

	inner := components.BoxContentWidth(width)
	cols := []components.TableColumn{
		{Header: "Resource", Width: inner - 20},
		{Header: "Read", Width: 6, Align: lipgloss.Center},
		{Header: "Write", Width: 6, Align: lipgloss.Center},
	}
	perms := permissionRows(a.Permissions)
	cells := make([][]string, 0, len(perms))
	for _, p := range perms {
		cells = append(cells, []string{p.name, check(p.read), check(p.write)})
	}
	grid := MutedStyle.Render("No permissions")
	if len(cells) > 0 {
		grid = components.TableGrid(cols, cells, inner)
	}

	body := strings.Join(rows, "\n") + "\n\n" + grid + "\n\n" +
		MutedStyle.Render("c: copy token | s: show/hide | a: toggle status | d: delete | esc: close")
	return components.ActiveTitledBox("View Token", body, width)
}

// --- Generate Token ---

const (
	genFocusDescription = iota
	genFocusOrg
	genFocusPermissions
	genFocusCount
)

type generateForm struct {
	description textinput.Model
	orgs        []api.Organization
	orgIdx      int
	resIdx      int
	read        map[api.Resource]bool
	write       map[api.Resource]bool
	focus       int
	err         string
	saving      bool
	keymap      keymap
}

func newGenerateForm(orgs []api.Organization, preferredOrg string) *generateForm {
	in := textinput.New()
	in.Placeholder = "Describe this token"
	in.Prompt = ""
	in.CharLimit = 256
	in.Focus()

	f := &generateForm{
		description: in,
		read:        map[api.Resource]bool{},
		write:       map[api.Resource]bool{},
	}
	f.setOrgs(orgs, preferredOrg)
	return f
}

func (f *generateForm) setOrgs(orgs []api.Organization, preferred string) {
	f.orgs = orgs
	f.orgIdx = 0
	for i, o := range orgs {
		if strings.EqualFold(o.Name, preferred) {
			f.orgIdx = i
		}
	}
}

func (f *generateForm) input() api.CreateAuthorizationInput {
	in := api.CreateAuthorizationInput{
		Description: strings.TrimSpace(f.description.Value()),
		Status:      api.StatusActive,
	}
	if f.orgIdx < len(f.orgs) {
		in.OrgID = f.orgs[f.orgIdx].ID
	}
	for _, r := range api.Resources {
		if f.read[r] {
			in.Permissions = append(in.Permissions, api.Permission{Action: api.ActionRead, Resource: r})
		}
		if f.write[r] {
			in.Permissions = append(in.Permissions, api.Permission{Action: api.ActionWrite, Resource: r})
		}
	}
	return in
}

// ready reports whether submit is enabled.
func (f *generateForm) ready() bool {
	return !f.saving && f.input().Validate() == nil
}

func (f *generateForm) setFocus(focus int) tea.Cmd {
	f.focus = (focus + genFocusCount) % genFocusCount
	if f.focus == genFocusDescription {
		return f.description.Focus()
	}
	f.description.Blur()
	return nil
}

// update handles one key. submit is true when the form should be sent.
func (f *generateForm) update(msg tea.KeyMsg) (submit bool, cmd tea.Cmd) {
	if f.saving {
		return false, nil
	}
	switch {
	case isKey(msg, "tab"):
		return false, f.setFocus(f.focus + 1)
	case isKey(msg, "shift+tab"):
		return false, f.setFocus(f.focus - 1)
	case isKey(msg, "ctrl+s"):
		if err := f.input().Validate(); err != nil {
			f.err = err.Error()
			return false, nil
		}
		return true, nil
	case isKey(msg, "ctrl+a"):
		all := true
		for _, r := range api.Resources {
			all = all && f.read[r] && f.write[r]
		}
		for _, r := range api.Resources {
			f.read[r] = !all
			f.write[r] = !all
		}
		return false, nil
	}

	switch f.focus {
	case genFocusDescription:
		if isEnter(msg) {
			return false, f.setFocus(genFocusOrg)
		}
		f.description, cmd = f.description.Update(msg)
		f.err = ""
		return false, cmd
	case genFocusOrg:
		if len(f.orgs) == 0 {
			return false, nil
		}
		switch {
		case f.keymap.left(msg):
			f.orgIdx = (f.orgIdx - 1 + len(f.orgs)) % len(f.orgs)
		case f.keymap.right(msg), isSpace(msg):
			f.orgIdx = (f.orgIdx + 1) % len(f.orgs)
		case isEnter(msg):
			return false, f.setFocus(genFocusPermissions)
		}
	case genFocusPermissions:
		res := api.Resources[f.resIdx]
		switch {
		case f.keymap.up(msg):
			if f.resIdx > 0 {
				f.resIdx--
			}
		case f.keymap.down(msg):
			if f.resIdx < len(api.Resources)-1 {
				f.resIdx++
			}
		case isKey(msg, "r"):
			f.read[res] = !f.read[res]
		case isKey(msg, "w"):
			f.write[res] = !f.write[res]
		case isSpace(msg):
			both := f.read[res] && f.write[res]
			f.read[res] = !both
			f.write[res] = !both
		case isEnter(msg):
			if err := f.input().Validate(); err != nil {
				f.err = err.Error()
				return false, nil
			}
			return true, nil
		}
	}
	return false, nil
}

func (f *generateForm) view(width int) string {
	org := MutedStyle.Render("loading organizations...")
	if len(f.orgs) > 0 {
		org = "‹ " + NormalStyle.Render(components.SanitizeOneLine(f.orgs[f.orgIdx].Name)) + " ›"
	}

	var perms strings.Builder
	for i, r := range api.Resources {
		cursor := "  "
		if f.focus == genFocusPermissions && i == f.resIdx {
			cursor = SelectedStyle.Render("> ")
		}
		line := fmt.Sprintf("%s%-16s read %s  write %s", cursor, "All "+titleCase(string(r)), box(f.read[r]), box(f.write[r]))
		perms.WriteString(line)
		if i < len(api.Resources)-1 {
			perms.WriteString("\n")
		}
	}

	fields := []components.FormField{
		{Label: "Description", Input: f.description.View(), Focused: f.focus == genFocusDescription},
		{Label: "Organization", Input: org, Focused: f.focus == genFocusOrg},
		{Label: "Permissions", Input: perms.String(), Focused: f.focus == genFocusPermissions},
	}
	if f.err != "" {
		fields[len(fields)-1].Error = f.err
	}

	submit := MutedStyle.Render("[ Generate ]")
	if f.ready() {
		submit = SelectedStyle.Render("[ Generate ]")
	}
	if f.saving {
		submit = MutedStyle.Render("Generating...")
	}
	hint := "tab: next field | r/w/space: toggle | ctrl+a: all | ctrl+s: generate | esc: cancel"
	body := components.Form(fields, hint) + "\n\n" + submit
	return components.ActiveTitledBox("Generate Token", body, width)
}

func detailRow(label, value string, color lipgloss.Color) string {
	return MutedStyle.Render(fmt.Sprintf("%-14s", label)) +
		lipgloss.NewStyle().Foreground(color).Render(components.SanitizeOneLine(value))
}

func box(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
