package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/tsadmin/internal/cmd"
	"github.com/gravitrone/tsadmin/internal/config"
	"github.com/gravitrone/tsadmin/internal/logging"
	"github.com/gravitrone/tsadmin/internal/ui"
)

func main() {
	root := &cobra.Command{
		Use:   "tsadmin",
		Short: "tsadmin - time-series platform admin",
		Long:  "tsadmin: manage tokens, organizations, buckets and labels of a time-series platform.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.TokensCmd())
	root.AddCommand(cmd.OrgsCmd())
	root.AddCommand(cmd.LabelsCmd())
	root.AddCommand(cmd.BucketsCmd())
	root.AddCommand(cmd.MockServerCmd())

	if err := root.Execute(); err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so label hex colors render correctly.
	// Must be set before any lipgloss style initialization.
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
				fmt.Println("not logged in. run 'tsadmin login' first.")
				return err
			}
			cfg = nil
		} else {
			return err
		}
	}

	closeLog, err := logging.SetupFile(
		filepath.Join(config.Dir(), "tsadmin.log"),
		logging.ParseLevel(os.Getenv("TSADMIN_LOG_LEVEL")),
	)
	if err != nil {
		return err
	}
	defer closeLog()

	app := ui.NewApp(cmd.NewClient(cfg), cfg, config.Path())
	p := tea.NewProgram(app, tea.WithAltScreen())

	watcher, err := config.Watch(config.Path(), func(c *config.Config) {
		p.Send(ui.ConfigReloaded(c))
	}, 200*time.Millisecond)
	if err != nil {
		slog.Warn("config watch disabled", "err", err)
	} else {
		defer watcher.Stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
