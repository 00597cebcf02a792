package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/tsadmin/internal/bridge"
	"github.com/gravitrone/tsadmin/internal/records"
)

// --- Messages ---

// fetchedMsg carries one loaded collection. key tells apart loads of the
// same type, e.g. the labels of two different organizations.
type fetchedMsg[T any] struct {
	key   string
	items []T
	err   error
}

// fetch wraps a loader in a command. The loader runs once, off the update
// loop.
func fetch[T any](key string, load func() ([]T, error)) tea.Cmd {
	return func() tea.Msg {
		items, err := load()
		return fetchedMsg[T]{key: key, items: items, err: err}
	}
}

// notifyMsg asks the app to show a bridge outcome as a toast.
type notifyMsg struct {
	note bridge.Notification
}

func notify(n bridge.Notification) tea.Cmd {
	return func() tea.Msg { return notifyMsg{note: n} }
}

// deleteSettledMsg reports the platform's answer to an optimistic delete.
type deleteSettledMsg[T records.Record] struct {
	key     string
	pending bridge.PendingDelete[T]
	err     error
}

// deleteCmd runs the platform delete for a pending optimistic removal.
func deleteCmd[T records.Record](key string, pending bridge.PendingDelete[T], call func(id string) error) tea.Cmd {
	return func() tea.Msg {
		return deleteSettledMsg[T]{key: key, pending: pending, err: call(pending.ID)}
	}
}

// savedMsg reports the platform's answer to a create or update. id is
// empty for creates.
type savedMsg[T any] struct {
	key  string
	id   string
	item *T
	err  error
}

func saveCmd[T any](key, id string, call func() (*T, error)) tea.Cmd {
	return func() tea.Msg {
		item, err := call()
		return savedMsg[T]{key: key, id: id, item: item, err: err}
	}
}

func successNote(msg string) bridge.Notification {
	return bridge.Notification{Kind: bridge.Success, Message: msg}
}

func errorNote(msg string) bridge.Notification {
	return bridge.Notification{Kind: bridge.Error, Message: msg}
}
