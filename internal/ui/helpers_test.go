package ui

import (
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/bridge"
	"github.com/gravitrone/tsadmin/internal/mockapi"
)

// newMockClient starts the in-memory platform seeded with the demo data.
func newMockClient(t *testing.T, opts mockapi.Options) (*api.Client, *mockapi.Server) {
	t.Helper()
	srv := mockapi.New(mockapi.DemoFixtures(), opts)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return api.NewClient(ts.URL, opts.Token), srv
}

// runCmd executes cmd, unpacking batches. Spinner ticks are dropped.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

// settle runs cmd, feeds the results back into m until nothing is left and
// returns the notifications raised on the way.
func settle[M any](m M, update func(M, tea.Msg) (M, tea.Cmd), cmd tea.Cmd) (M, []bridge.Notification) {
	var notes []bridge.Notification
	queue := runCmd(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if n, ok := msg.(notifyMsg); ok {
			notes = append(notes, n.note)
			continue
		}
		var next tea.Cmd
		m, next = update(m, msg)
		queue = append(queue, runCmd(next)...)
	}
	return m, notes
}

func typeText[M any](m M, update func(M, tea.Msg) (M, tea.Cmd), text string) M {
	for _, r := range text {
		m, _ = update(m, runeKey(r))
	}
	return m
}

func ids[T interface{ RecordID() string }](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.RecordID())
	}
	return out
}
