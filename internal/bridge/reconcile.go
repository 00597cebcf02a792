package bridge

import "github.com/gravitrone/tsadmin/internal/records"

// PendingDelete is an optimistic delete in flight. Snapshot is the list as
// it was before removal and is what a failed call restores.
type PendingDelete[T records.Record] struct {
	ID         string
	Snapshot   []T
	Optimistic []T
}

// BeginDelete captures the rollback snapshot and the optimistic list. It
// performs no effects and must run before the platform call.
func BeginDelete[T records.Record](list []T, id string) PendingDelete[T] {
	return PendingDelete[T]{
		ID:         id,
		Snapshot:   records.Clone(list),
		Optimistic: records.Remove(list, id),
	}
}

// Settle resolves the delete with the call's result. Success keeps the
// optimistic list; failure restores the snapshot exactly.
func (p PendingDelete[T]) Settle(err error, msgs Messages) ([]T, Notification) {
	if err != nil {
		return records.Clone(p.Snapshot), msgs.failed(err)
	}
	return p.Optimistic, msgs.succeeded()
}

// SettleOnto resolves the delete against current, the list as it is now
// rather than when the delete began. Success removes the id; failure puts
// the record back after its nearest surviving predecessor from the
// snapshot. Other changes made in the meantime are kept.
func (p PendingDelete[T]) SettleOnto(current []T, err error, msgs Messages) ([]T, Notification) {
	if err == nil {
		return records.Remove(current, p.ID), msgs.succeeded()
	}
	return p.restore(current), msgs.failed(err)
}

func (p PendingDelete[T]) restore(current []T) []T {
	at := records.IndexOf(p.Snapshot, p.ID)
	if at < 0 || records.IndexOf(current, p.ID) >= 0 {
		return records.Clone(current)
	}
	pos := 0
	for i := at - 1; i >= 0; i-- {
		if j := records.IndexOf(current, p.Snapshot[i].RecordID()); j >= 0 {
			pos = j + 1
			break
		}
	}
	return records.Insert(current, pos, p.Snapshot[at])
}

// Created appends the canonical record returned by a create call. The
// list is unchanged when the call failed.
func Created[T records.Record](list []T, created *T, err error, msgs Messages) ([]T, Notification) {
	if err != nil || created == nil {
		return list, msgs.failed(err)
	}
	return records.Append(list, *created), msgs.succeeded()
}

// Updated replaces the record sharing the returned record's id.
func Updated[T records.Record](list []T, updated *T, err error, msgs Messages) ([]T, Notification) {
	if err != nil || updated == nil {
		return list, msgs.failed(err)
	}
	return records.Replace(list, *updated), msgs.succeeded()
}
