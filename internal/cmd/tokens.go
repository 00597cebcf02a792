package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/bridge"
	"github.com/gravitrone/tsadmin/internal/records"
)

// TokensCmd returns the `tsadmin tokens` command group.
func TokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tokens",
		Aliases: []string{"token", "auth"},
		Short:   "Manage API tokens",
	}
	cmd.AddCommand(tokensListCmd())
	cmd.AddCommand(tokensViewCmd())
	cmd.AddCommand(tokensCreateCmd())
	cmd.AddCommand(tokensStatusCmd("activate", api.StatusActive))
	cmd.AddCommand(tokensStatusCmd("deactivate", api.StatusInactive))
	cmd.AddCommand(tokensDeleteCmd())
	return cmd
}

func tokensListCmd() *cobra.Command {
	var filter, org string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := connect()
			if err != nil {
				return err
			}
			auths, err := client.ListAuthorizations()
			if err != nil {
				return fmt.Errorf("list tokens: %w", err)
			}
			if org != "" {
				o, err := resolveOrg(client, org)
				if err != nil {
					return err
				}
				auths = keep(auths, func(a api.Authorization) bool { return a.OrgID == o.ID })
			}
			auths = records.Filter(auths, filter, records.TokenSearchKeys)

			out := cmd.OutOrStdout()
			if len(auths) == 0 {
				fmt.Fprintln(out, "no tokens found")
				return nil
			}
			for _, a := range auths {
				fmt.Fprintf(out, "  %s  %-8s  %-24s  %s\n", a.ID, a.Status, orDash(a.Org), orDash(a.Description))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "search status, description and org")
	cmd.Flags().StringVar(&org, "org", "", "only tokens of this organization")
	return cmd
}

func tokensViewCmd() *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "view <id>",
		Short: "Show a token and its permissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := connect()
			if err != nil {
				return err
			}
			a, err := client.GetAuthorization(args[0])
			if err != nil {
				return fmt.Errorf("view token: %w", err)
			}

			token := a.Token
			if !reveal {
				token = mask(token)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "description:  %s\n", orDash(a.Description))
			fmt.Fprintf(out, "status:       %s\n", a.Status)
			fmt.Fprintf(out, "organization: %s\n", orDash(a.Org))
			fmt.Fprintf(out, "token:        %s\n", token)
			fmt.Fprintln(out, "permissions:")
			for _, p := range a.Permissions {
				fmt.Fprintf(out, "  %s\n", p)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the full token")
	return cmd
}

func tokensCreateCmd() *cobra.Command {
	var (
		description string
		org         string
		perms       []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a new token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cfg, err := connect()
			if err != nil {
				return err
			}
			o, err := resolveOrg(client, defaultOrg(org, cfg))
			if err != nil {
				return err
			}
			input := api.CreateAuthorizationInput{
				Description: description,
				OrgID:       o.ID,
				Status:      api.StatusActive,
			}
			for _, raw := range perms {
				p, err := api.ParsePermission(raw)
				if err != nil {
					return err
				}
				input.Permissions = append(input.Permissions, p)
			}
			if err := input.Validate(); err != nil {
				return err
			}

			a, err := createVia(cmd, func() (*api.Authorization, error) {
				return client.CreateAuthorization(input)
			}, bridge.TokenCreated)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:    %s\n", a.ID)
			fmt.Fprintf(out, "token: %s\n", a.Token)
			fmt.Fprintln(out, "save this token - it won't be shown again")
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "token description")
	cmd.Flags().StringVar(&org, "org", "", "organization name or id (default from config)")
	cmd.Flags().StringArrayVarP(&perms, "perm", "p", nil, "permission as action:resource[:id], repeatable")
	return cmd
}

func tokensStatusCmd(use string, status api.Status) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: strings.ToUpper(use[:1]) + use[1:] + " a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := connect()
			if err != nil {
				return err
			}
			a, err := updateVia(cmd, args[0], func() (*api.Authorization, error) {
				return client.SetAuthorizationStatus(args[0], status)
			}, bridge.TokenStatus)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "token %s is %s\n", a.ID, a.Status)
			return nil
		},
	}
}

func tokensDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := connect()
			if err != nil {
				return err
			}
			return deleteVia[api.Authorization](cmd, args[0], client.DeleteAuthorization, bridge.TokenDeleted)
		},
	}
}

// mask keeps the first and last four characters of a token.
func mask(token string) string {
	if len(token) <= 12 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", 8) + token[len(token)-4:]
}

func keep[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}
