package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/config"
)

// LoginOptions are the inputs of `tsadmin login`. Empty fields are
// prompted for.
type LoginOptions struct {
	URL   string
	Token string
	Org   string
	Path  string
}

// RunInteractiveLogin prompts for missing values, verifies the token
// against the platform and persists config.
func RunInteractiveLogin(in io.Reader, out io.Writer, opts LoginOptions) error {
	reader := bufio.NewReader(in)

	if strings.TrimSpace(opts.URL) == "" {
		opts.URL = api.DefaultBaseURL
	}
	if strings.TrimSpace(opts.Token) == "" {
		fmt.Fprint(out, "token: ")
		token, _ := reader.ReadString('\n')
		opts.Token = strings.TrimSpace(token)
	}
	if opts.Token == "" {
		return fmt.Errorf("token is required")
	}

	client := api.NewClient(opts.URL, opts.Token)
	status, err := client.Health()
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if status != "pass" {
		return fmt.Errorf("login failed: platform health is %q", status)
	}
	orgs, err := client.ListOrganizations()
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg := &config.Config{
		URL:     strings.TrimRight(opts.URL, "/"),
		Token:   opts.Token,
		Org:     opts.Org,
		Theme:   "dark",
		VimKeys: false,
	}
	if cfg.Org == "" && len(orgs) == 1 {
		cfg.Org = orgs[0].Name
	}
	if cfg.Org != "" {
		org, err := resolveOrg(client, cfg.Org)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		cfg.Org = org.Name
	}
	if auth := findOwnAuthorization(client, opts.Token); auth != nil {
		cfg.Username = auth.User
	}

	path := opts.Path
	if path == "" {
		path = config.Path()
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	slog.Info("logged in", "url", cfg.URL, "orgs", len(orgs))

	fmt.Fprintf(out, "logged in to %s (%d organizations)\n", cfg.URL, len(orgs))
	fmt.Fprintf(out, "config saved to %s\n", path)
	return nil
}

// findOwnAuthorization looks up the authorization the token belongs to.
// Tokens without read access to authorizations simply yield nil.
func findOwnAuthorization(client *api.Client, token string) *api.Authorization {
	auths, err := client.ListAuthorizations()
	if err != nil {
		return nil
	}
	for i := range auths {
		if auths[i].Token == token {
			return &auths[i]
		}
	}
	return nil
}

// LoginCmd returns the `tsadmin login` command.
func LoginCmd() *cobra.Command {
	var opts LoginOptions
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a platform and save the token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunInteractiveLogin(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.URL, "url", "", "platform URL (default "+api.DefaultBaseURL+")")
	cmd.Flags().StringVar(&opts.Token, "token", "", "API token (prompted when empty)")
	cmd.Flags().StringVar(&opts.Org, "org", "", "default organization")
	return cmd
}
