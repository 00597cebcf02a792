package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gravitrone/tsadmin/internal/bridge"
	"github.com/gravitrone/tsadmin/internal/records"
)

// reportedError is a failure whose message the command already printed.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// IsReported reports whether err was already printed by the command that
// returned it.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err}
}

// newBridge builds a bridge whose notifications go to the command's
// output: successes to stdout, failures to stderr.
func newBridge[T records.Record](cmd *cobra.Command) *bridge.Bridge[T] {
	notifier := bridge.NotifierFunc(func(n bridge.Notification) {
		if n.Kind == bridge.Error {
			fmt.Fprintln(cmd.ErrOrStderr(), n.Message)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), n.Message)
	})
	return bridge.New[T](notifier, slog.New(slog.DiscardHandler))
}

func deleteVia[T records.Record](cmd *cobra.Command, id string, call func(id string) error, msgs bridge.Messages) error {
	var callErr error
	newBridge[T](cmd).Delete(nil, id, func(id string) error {
		callErr = call(id)
		return callErr
	}, msgs)
	return reported(callErr)
}

func createVia[T records.Record](cmd *cobra.Command, call func() (*T, error), msgs bridge.Messages) (*T, error) {
	var callErr error
	_, created := newBridge[T](cmd).Create(nil, func() (*T, error) {
		item, err := call()
		if err == nil && item == nil {
			err = errors.New("empty response")
		}
		callErr = err
		return item, err
	}, msgs)
	return created, reported(callErr)
}

func updateVia[T records.Record](cmd *cobra.Command, id string, call func() (*T, error), msgs bridge.Messages) (*T, error) {
	var (
		updated *T
		callErr error
	)
	newBridge[T](cmd).Update(nil, id, func() (*T, error) {
		updated, callErr = call()
		if callErr == nil && updated == nil {
			callErr = errors.New("empty response")
		}
		return updated, callErr
	}, msgs)
	if callErr != nil {
		return nil, reported(callErr)
	}
	return updated, nil
}
