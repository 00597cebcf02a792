package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/tsadmin/internal/records"
	"github.com/gravitrone/tsadmin/internal/ui/components"
)

const listPageSize = 12

// listView is the searchable table shared by every screen. items is the
// screen's entity list; what is shown is items filtered by the search box.
type listView[T records.Record] struct {
	items     []T
	keys      []string
	search    textinput.Model
	searching bool
	list      *components.List
	loading   bool
	spin      spinner.Model
	errText   string
	keymap    keymap
}

func newListView[T records.Record](keys []string, placeholder string) listView[T] {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = placeholder
	in.CharLimit = 128

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = SelectedStyle

	return listView[T]{
		keys:   keys,
		search: in,
		list:   components.NewList(listPageSize),
		spin:   spin,
	}
}

func (v listView[T]) searchState() records.SearchState {
	return records.SearchState{Term: v.search.Value(), Keys: v.keys}
}

// visible is the filtered view of items, in list order.
func (v listView[T]) visible() []T {
	return records.Apply(v.items, v.searchState())
}

func (v listView[T]) selected() (T, bool) {
	var zero T
	rows := v.visible()
	idx := v.list.Selected()
	if idx < 0 || idx >= len(rows) {
		return zero, false
	}
	return rows[idx], true
}

// startLoading flags the view as loading and returns the spinner tick.
func (v *listView[T]) startLoading() tea.Cmd {
	v.loading = true
	v.errText = ""
	return v.spin.Tick
}

// loaded installs a fresh collection from the fetcher.
func (v *listView[T]) loaded(items []T, err error) {
	v.loading = false
	if err != nil {
		v.errText = err.Error()
		return
	}
	v.errText = ""
	v.items = items
	v.list.Reset(len(v.visible()))
}

// replace swaps in a reconciled list, keeping the cursor where it can.
func (v *listView[T]) replace(items []T) {
	v.items = items
	v.list.SetCount(len(v.visible()))
}

func (v *listView[T]) setTerm(term string) {
	v.search.SetValue(term)
	v.list.Reset(len(v.visible()))
}

// update handles spinner ticks, search typing and cursor movement. handled
// is false for keys the owning screen should act on.
func (v *listView[T]) update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !v.loading {
			return false, nil
		}
		v.spin, cmd = v.spin.Update(msg)
		return true, cmd
	case tea.KeyMsg:
		if v.searching {
			return true, v.handleSearchKeys(msg)
		}
		switch {
		case isKey(msg, "/"):
			v.searching = true
			return true, v.search.Focus()
		case v.keymap.down(msg):
			v.list.Down()
			return true, nil
		case v.keymap.up(msg):
			v.list.Up()
			return true, nil
		case isBack(msg) && v.search.Value() != "":
			v.setTerm("")
			return true, nil
		}
	}
	return false, nil
}

func (v *listView[T]) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case isBack(msg):
		v.searching = false
		v.search.Blur()
		v.setTerm("")
		return nil
	case isEnter(msg):
		v.searching = false
		v.search.Blur()
		return nil
	case isKey(msg, "up"):
		v.list.Up()
		return nil
	case isKey(msg, "down"):
		v.list.Down()
		return nil
	}
	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if v.search.Value() != before {
		v.list.Reset(len(v.visible()))
	}
	return cmd
}

// render draws the titled table. emptyAll and emptyMatch are the copy for
// "nothing exists" and "nothing matches the search".
func (v listView[T]) render(title string, columns []components.TableColumn, row func(T) []string, width int, emptyAll, emptyMatch string) string {
	if v.loading {
		return components.TitledBox(title, v.spin.View()+" "+MutedStyle.Render("Loading..."), width)
	}
	if v.errText != "" {
		return components.ErrorBox(title, v.errText, width)
	}

	var header string
	if v.searching || v.search.Value() != "" {
		header = v.search.View() + "\n\n"
	}

	rows := v.visible()
	if len(rows) == 0 {
		empty := emptyAll
		if v.searchState().Active() {
			empty = emptyMatch
		}
		return components.TitledBox(title, header+MutedStyle.Render(empty), width)
	}

	start, end := v.list.Window()
	cells := make([][]string, 0, end-start)
	for _, item := range rows[start:end] {
		cells = append(cells, row(item))
	}
	grid := components.TableGridWithActiveRow(columns, cells, components.BoxContentWidth(width), v.list.Cursor-start)

	count := fmt.Sprintf("%d total", len(v.items))
	if v.searchState().Active() {
		count = fmt.Sprintf("%d of %d · search: %s", len(rows), len(v.items), strings.TrimSpace(v.search.Value()))
	}
	return components.TitledBox(title, header+MutedStyle.Render(count)+"\n\n"+grid, width)
}
