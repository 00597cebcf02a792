package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/labelcolor"
	"github.com/gravitrone/tsadmin/internal/ui/components"
)

const (
	labelFocusName = iota
	labelFocusColor
	labelFocusHex
	labelFocusDescription
	labelFocusCount
)

// labelForm backs the Create Label and Edit Label overlays. id is empty
// when creating.
type labelForm struct {
	id          string
	orgID       string
	name        textinput.Model
	hex         textinput.Model
	description textinput.Model
	colorIdx    int
	focus       int
	err         string
	saving      bool
	keymap      keymap
}

func newLabelForm(orgID string, existing *api.Label) *labelForm {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Name this Label"
	name.CharLimit = labelcolor.MaxNameLength

	hex := textinput.New()
	hex.Prompt = ""
	hex.Placeholder = "#RRGGBB"
	hex.CharLimit = labelcolor.HexCodeLength

	desc := textinput.New()
	desc.Prompt = ""
	desc.Placeholder = "Add an optional description"
	desc.CharLimit = 256

	f := &labelForm{orgID: orgID, name: name, hex: hex, description: desc}
	color := labelcolor.DefaultHex
	if existing != nil {
		f.id = existing.ID
		f.name.SetValue(existing.Name)
		f.description.SetValue(existing.Properties.Description)
		color = existing.Properties.Color
	}
	f.colorIdx = labelcolor.PresetIndex(color)
	if f.custom() {
		f.hex.SetValue(color)
	}
	f.name.Focus()
	return f
}

func (f *labelForm) custom() bool {
	return labelcolor.Presets[f.colorIdx].Custom
}

// color is the hex the label will be saved with.
func (f *labelForm) color() string {
	if f.custom() {
		return strings.TrimSpace(f.hex.Value())
	}
	return labelcolor.Presets[f.colorIdx].Hex
}

func (f *labelForm) label() api.Label {
	return api.Label{
		ID:    f.id,
		OrgID: f.orgID,
		Name:  strings.TrimSpace(f.name.Value()),
		Properties: api.LabelProperties{
			Color:       f.color(),
			Description: strings.TrimSpace(f.description.Value()),
		},
	}
}

func (f *labelForm) hexError() error {
	if !f.custom() {
		return nil
	}
	return labelcolor.ValidateHexCode(f.color())
}

func (f *labelForm) validate() error {
	if err := labelcolor.ValidateName(f.name.Value()); err != nil {
		return err
	}
	return f.hexError()
}

func (f *labelForm) ready() bool {
	return !f.saving && f.validate() == nil
}

// step moves focus by delta, skipping the hex field for presets.
func (f *labelForm) step(delta int) tea.Cmd {
	next := f.focus
	for {
		next = (next + delta + labelFocusCount) % labelFocusCount
		if next != labelFocusHex || f.custom() {
			break
		}
	}
	f.focus = next
	f.name.Blur()
	f.hex.Blur()
	f.description.Blur()
	switch f.focus {
	case labelFocusName:
		return f.name.Focus()
	case labelFocusHex:
		return f.hex.Focus()
	case labelFocusDescription:
		return f.description.Focus()
	}
	return nil
}

func (f *labelForm) cycleColor(delta int) {
	n := len(labelcolor.Presets)
	f.colorIdx = (f.colorIdx + delta + n) % n
	if f.custom() && f.hex.Value() == "" {
		f.hex.SetValue("#")
		f.hex.CursorEnd()
	}
}

// update handles one key. submit is true when the label should be saved.
func (f *labelForm) update(msg tea.KeyMsg) (submit bool, cmd tea.Cmd) {
	if f.saving {
		return false, nil
	}
	switch {
	case isKey(msg, "tab", "down"):
		return false, f.step(1)
	case isKey(msg, "shift+tab", "up"):
		return false, f.step(-1)
	case isKey(msg, "ctrl+s"):
		return f.trySubmit(), nil
	case isEnter(msg):
		if f.focus == labelFocusDescription {
			return f.trySubmit(), nil
		}
		return false, f.step(1)
	}

	switch f.focus {
	case labelFocusName:
		f.name, cmd = f.name.Update(msg)
	case labelFocusColor:
		switch {
		case f.keymap.left(msg):
			f.cycleColor(-1)
		case f.keymap.right(msg), isSpace(msg):
			f.cycleColor(1)
		}
	case labelFocusHex:
		f.hex, cmd = f.hex.Update(msg)
	case labelFocusDescription:
		f.description, cmd = f.description.Update(msg)
	}
	f.err = ""
	return false, cmd
}

func (f *labelForm) trySubmit() bool {
	if err := f.validate(); err != nil {
		f.err = err.Error()
		return false
	}
	return true
}

func (f *labelForm) title() string {
	if f.id == "" {
		return "Create Label"
	}
	return "Edit Label"
}

func (f *labelForm) view(width int) string {
	preset := labelcolor.Presets[f.colorIdx]
	swatch := preset.Name
	if !preset.Custom {
		swatch += " " + MutedStyle.Render(preset.Hex)
	}

	fields := []components.FormField{
		{
			Label:   "Name",
			Input:   f.name.View(),
			Counter: fmt.Sprintf("%d/%d", utf8.RuneCountInString(f.name.Value()), labelcolor.MaxNameLength),
			Focused: f.focus == labelFocusName,
		},
		{Label: "Color", Input: "‹ " + swatch + " ›", Focused: f.focus == labelFocusColor},
	}
	if f.custom() {
		hex := components.FormField{Label: "Hexcode", Input: f.hex.View(), Focused: f.focus == labelFocusHex}
		if err := f.hexError(); err != nil && (f.hex.Value() != "#" || f.err != "") {
			hex.Error = err.Error()
		}
		fields = append(fields, hex)
	}
	fields = append(fields, components.FormField{
		Label:   "Description",
		Input:   f.description.View(),
		Focused: f.focus == labelFocusDescription,
	})
	if f.err != "" && labelcolor.ValidateName(f.name.Value()) != nil {
		fields[0].Error = f.err
	}

	preview := MutedStyle.Render("Preview  ") + components.LabelPill(f.name.Value(), f.color())

	action := "[ Create Label ]"
	if f.id != "" {
		action = "[ Save Changes ]"
	}
	submit := MutedStyle.Render(action)
	switch {
	case f.saving:
		submit = MutedStyle.Render("Saving...")
	case f.ready():
		submit = SelectedStyle.Render(action)
	}

	hint := "tab: next field | ←/→: color | ctrl+s: save | esc: cancel"
	body := preview + "\n\n" + components.Form(fields, hint) + "\n\n" + submit
	return components.ActiveTitledBox(f.title(), body, width)
}
