package bridge

import (
	"log/slog"

	"github.com/gravitrone/tsadmin/internal/records"
)

// Bridge runs CRUD calls synchronously and reports each outcome once.
// Calls are attempted exactly once.
type Bridge[T records.Record] struct {
	Notifier Notifier
	Logger   *slog.Logger
}

// New builds a bridge for records of type T.
func New[T records.Record](n Notifier, logger *slog.Logger) *Bridge[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge[T]{Notifier: n, Logger: logger}
}

// Delete removes id optimistically, invokes call, and returns the list to
// keep: the optimistic list on success, the exact prior list on failure.
func (b *Bridge[T]) Delete(list []T, id string, call func(id string) error, msgs Messages) []T {
	pending := BeginDelete(list, id)
	out, _ := b.SettleDelete(pending.Optimistic, pending, call(id), msgs)
	return out
}

// Create invokes call and appends the returned record.
func (b *Bridge[T]) Create(list []T, call func() (*T, error), msgs Messages) ([]T, *T) {
	created, err := call()
	out, _ := b.SettleCreate(list, created, err, msgs)
	if err != nil {
		return out, nil
	}
	return out, created
}

// Update invokes call and replaces the record by id.
func (b *Bridge[T]) Update(list []T, id string, call func() (*T, error), msgs Messages) []T {
	updated, err := call()
	out, _ := b.SettleUpdate(list, id, updated, err, msgs)
	return out
}

// SettleDelete finishes a delete whose call ran elsewhere, such as in a
// background command, against the list currently shown.
func (b *Bridge[T]) SettleDelete(current []T, p PendingDelete[T], err error, msgs Messages) ([]T, Notification) {
	out, n := p.SettleOnto(current, err, msgs)
	b.report(n, "delete", p.ID, err)
	return out, n
}

// SettleCreate is the asynchronous half of Create.
func (b *Bridge[T]) SettleCreate(list []T, created *T, err error, msgs Messages) ([]T, Notification) {
	out, n := Created(list, created, err, msgs)
	id := ""
	if created != nil {
		id = (*created).RecordID()
	}
	b.report(n, "create", id, err)
	return out, n
}

// SettleUpdate is the asynchronous half of Update.
func (b *Bridge[T]) SettleUpdate(list []T, id string, updated *T, err error, msgs Messages) ([]T, Notification) {
	out, n := Updated(list, updated, err, msgs)
	b.report(n, "update", id, err)
	return out, n
}

func (b *Bridge[T]) report(n Notification, op, id string, err error) {
	if b.Logger != nil {
		if err != nil {
			b.Logger.Warn("crud call failed", "op", op, "id", id, "error", err)
		} else {
			b.Logger.Info("crud call succeeded", "op", op, "id", id)
		}
	}
	if b.Notifier != nil {
		b.Notifier.Notify(n)
	}
}
