package bridge

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/tsadmin/internal/records"
)

type item struct {
	id   string
	name string
}

func (i item) RecordID() string { return i.id }

func (i item) Field(key string) (string, bool) {
	if key == "name" {
		return i.name, true
	}
	return "", false
}

type recorder struct {
	got []Notification
}

func (r *recorder) Notify(n Notification) { r.got = append(r.got, n) }

func newTestBridge() (*Bridge[item], *recorder) {
	rec := &recorder{}
	return New[item](rec, slog.New(slog.NewTextHandler(io.Discard, nil))), rec
}

func TestDeleteSuccessKeepsOptimisticList(t *testing.T) {
	b, rec := newTestBridge()
	list := []item{{id: "1"}, {id: "2"}}

	var called []string
	out := b.Delete(list, "2", func(id string) error {
		called = append(called, id)
		return nil
	}, TokenDeleted)

	assert.Equal(t, []item{{id: "1"}}, out)
	assert.Equal(t, []string{"2"}, called)
	require.Len(t, rec.got, 1)
	assert.Equal(t, Notification{Kind: Success, Message: "Token was deleted successfully"}, rec.got[0])
}

func TestDeleteFailureRestoresExactList(t *testing.T) {
	b, rec := newTestBridge()
	list := []item{{id: "3", name: "c"}, {id: "1", name: "a"}, {id: "2", name: "b"}}
	before := append([]item(nil), list...)

	out := b.Delete(list, "1", func(string) error {
		return errors.New("internal error: boom")
	}, TokenDeleted)

	assert.Equal(t, before, out)
	require.Len(t, rec.got, 1)
	assert.Equal(t, Error, rec.got[0].Kind)
	assert.Equal(t, "Failed to delete token: internal error: boom", rec.got[0].Message)
}

func TestBeginDeleteSnapshotIsIndependent(t *testing.T) {
	list := []item{{id: "1"}, {id: "2"}}
	p := BeginDelete(list, "1")
	list[1].name = "mutated"

	restored, n := p.Settle(errors.New("x"), LabelDeleted)
	assert.Equal(t, Error, n.Kind)
	assert.Equal(t, "", restored[1].name)
	assert.Equal(t, []item{{id: "2"}}, p.Optimistic)
}

func TestDeleteMissingIDStillCallsOnce(t *testing.T) {
	b, rec := newTestBridge()
	calls := 0
	out := b.Delete([]item{{id: "1"}}, "9", func(string) error { calls++; return nil }, LabelDeleted)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []item{{id: "1"}}, out)
	assert.Len(t, rec.got, 1)
}

func TestCreateAppendsReturnedRecord(t *testing.T) {
	b, rec := newTestBridge()
	list := []item{{id: "1"}}
	out, created := b.Create(list, func() (*item, error) {
		return &item{id: "srv-2", name: "from server"}, nil
	}, LabelCreated)

	require.NotNil(t, created)
	assert.Equal(t, []item{{id: "1"}, {id: "srv-2", name: "from server"}}, out)
	assert.Len(t, list, 1)
	require.Len(t, rec.got, 1)
	assert.Equal(t, Success, rec.got[0].Kind)
}

func TestCreateFailureLeavesList(t *testing.T) {
	b, rec := newTestBridge()
	list := []item{{id: "1"}}
	out, created := b.Create(list, func() (*item, error) {
		return nil, errors.New("conflict")
	}, OrgCreated)

	assert.Nil(t, created)
	assert.Equal(t, list, out)
	require.Len(t, rec.got, 1)
	assert.Equal(t, "Failed to create organization: conflict", rec.got[0].Message)
}

func TestUpdateReplacesByID(t *testing.T) {
	b, rec := newTestBridge()
	list := []item{{id: "1", name: "a"}, {id: "2", name: "b"}}
	out := b.Update(list, "2", func() (*item, error) {
		return &item{id: "2", name: "B"}, nil
	}, LabelUpdated)

	assert.Equal(t, []item{{id: "1", name: "a"}, {id: "2", name: "B"}}, out)
	assert.Equal(t, "b", list[1].name)
	assert.Len(t, rec.got, 1)
}

func TestUpdateFailureNotifiesError(t *testing.T) {
	b, rec := newTestBridge()
	list := []item{{id: "1", name: "a"}}
	out := b.Update(list, "1", func() (*item, error) { return nil, errors.New("nope") }, LabelUpdated)
	assert.Equal(t, list, out)
	require.Len(t, rec.got, 1)
	assert.Equal(t, Error, rec.got[0].Kind)
}

func TestNotifierFunc(t *testing.T) {
	var got Notification
	NotifierFunc(func(n Notification) { got = n }).Notify(Notification{Kind: Success, Message: "ok"})
	assert.Equal(t, "ok", got.Message)
}

func TestSettleDeleteAfterBackgroundCall(t *testing.T) {
	b, rec := newTestBridge()
	list := []item{{id: "1"}, {id: "2"}}

	pending := BeginDelete(list, "1")
	assert.Equal(t, []item{{id: "2"}}, pending.Optimistic)

	out, n := b.SettleDelete(pending.Optimistic, pending, errors.New("internal error: injected failure"), LabelDeleted)
	assert.Equal(t, list, out)
	assert.Equal(t, Error, n.Kind)
	assert.Equal(t, "Failed to delete label: internal error: injected failure", n.Message)
	require.Len(t, rec.got, 1)
	assert.Equal(t, n, rec.got[0])
}

func TestSettleWithoutNotifierStillReturnsNotification(t *testing.T) {
	b := New[item](nil, nil)
	out, n := b.SettleCreate(nil, &item{id: "9"}, nil, LabelCreated)
	assert.Equal(t, []item{{id: "9"}}, out)
	assert.Equal(t, Notification{Kind: Success, Message: "Label was created successfully"}, n)

	out, n = b.SettleUpdate(out, "9", nil, errors.New("conflict"), LabelUpdated)
	assert.Equal(t, []item{{id: "9"}}, out)
	assert.Equal(t, "Failed to update label: conflict", n.Message)
}

func TestSettleOntoKeepsOtherDeletes(t *testing.T) {
	list := []item{{id: "a"}, {id: "b"}, {id: "c"}}
	first := BeginDelete(list, "a")
	second := BeginDelete(first.Optimistic, "b")
	current := second.Optimistic

	current, n := second.SettleOnto(current, nil, TokenDeleted)
	assert.Equal(t, Success, n.Kind)
	assert.Equal(t, []item{{id: "c"}}, current)

	current, n = first.SettleOnto(current, nil, TokenDeleted)
	assert.Equal(t, Success, n.Kind)
	assert.Equal(t, []item{{id: "c"}}, current)
}

func TestSettleOntoRestoresAtSnapshotPosition(t *testing.T) {
	list := []item{{id: "a"}, {id: "b"}, {id: "c"}}
	first := BeginDelete(list, "a")
	second := BeginDelete(first.Optimistic, "b")
	current := second.Optimistic

	current, _ = second.SettleOnto(current, errors.New("boom"), TokenDeleted)
	assert.Equal(t, []item{{id: "b"}, {id: "c"}}, current)

	current, n := first.SettleOnto(current, errors.New("boom"), TokenDeleted)
	assert.Equal(t, Error, n.Kind)
	assert.Equal(t, list, current)
}

func TestSettleOntoKeepsRecordsAddedMeanwhile(t *testing.T) {
	list := []item{{id: "a"}, {id: "b"}}
	pending := BeginDelete(list, "b")
	current := append(records.Clone(pending.Optimistic), item{id: "new"})

	restored, _ := pending.SettleOnto(current, errors.New("boom"), LabelDeleted)
	assert.Equal(t, []item{{id: "a"}, {id: "b"}, {id: "new"}}, restored)

	kept, _ := pending.SettleOnto(current, nil, LabelDeleted)
	assert.Equal(t, []item{{id: "a"}, {id: "new"}}, kept)
}

func TestSettleOntoFailureAfterReloadDoesNotDuplicate(t *testing.T) {
	list := []item{{id: "a"}, {id: "b"}}
	pending := BeginDelete(list, "a")
	reloaded := []item{{id: "a"}, {id: "b"}}

	out, _ := pending.SettleOnto(reloaded, errors.New("boom"), LabelDeleted)
	assert.Equal(t, reloaded, out)
}
