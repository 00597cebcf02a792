package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gravitrone/tsadmin/internal/logging"
	"github.com/gravitrone/tsadmin/internal/mockapi"
)

// MockServerOptions configure `tsadmin mock-server`.
type MockServerOptions struct {
	Addr        string
	Token       string
	FailDeletes bool
	LogLevel    string
}

// RunMockServer serves the demo platform until ctx is done. ready, when
// set, receives the bound address once listening.
func RunMockServer(ctx context.Context, opts MockServerOptions, ready func(addr string)) error {
	logger := logging.New(os.Stderr, logging.ParseLevel(opts.LogLevel))
	srv := mockapi.New(mockapi.DemoFixtures(), mockapi.Options{
		Token:       opts.Token,
		FailDeletes: opts.FailDeletes,
		Logger:      logger,
	})
	addr, err := srv.Start(opts.Addr)
	if err != nil {
		return err
	}
	if ready != nil {
		ready(addr)
	}

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown mock server: %w", err)
	}
	logger.Info("mock platform API stopped")
	return nil
}

// MockServerCmd returns the `tsadmin mock-server` command.
func MockServerCmd() *cobra.Command {
	var opts MockServerOptions
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve an in-memory platform API with demo data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			out := cmd.OutOrStdout()
			return RunMockServer(ctx, opts, func(addr string) {
				fmt.Fprintf(out, "mock platform listening on http://%s\n", addr)
				fmt.Fprintf(out, "metrics at http://%s/metrics\n", addr)
			})
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", "127.0.0.1:9999", "listen address")
	cmd.Flags().StringVar(&opts.Token, "token", "", "token accepted besides active authorizations (empty disables auth)")
	cmd.Flags().BoolVar(&opts.FailDeletes, "fail-deletes", false, "fail every delete, to demo rollback")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "info", "debug, info, warn or error")
	return cmd
}
