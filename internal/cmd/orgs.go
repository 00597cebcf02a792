package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/bridge"
	"github.com/gravitrone/tsadmin/internal/records"
)

// OrgsCmd returns the `tsadmin orgs` command group.
func OrgsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"org"},
		Short:   "Manage organizations",
	}
	cmd.AddCommand(orgsListCmd())
	cmd.AddCommand(orgsCreateCmd())
	cmd.AddCommand(orgsRenameCmd())
	cmd.AddCommand(orgsDeleteCmd())
	cmd.AddCommand(orgsMembersCmd())
	cmd.AddCommand(orgsBucketsCmd())
	cmd.AddCommand(orgsDashboardsCmd())
	cmd.AddCommand(orgsTasksCmd())
	return cmd
}

func orgsListCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := connect()
			if err != nil {
				return err
			}
			orgs, err := client.ListOrganizations()
			if err != nil {
				return fmt.Errorf("list organizations: %w", err)
			}
			orgs = records.Filter(orgs, filter, records.OrgSearchKeys)

			out := cmd.OutOrStdout()
			if len(orgs) == 0 {
				fmt.Fprintln(out, "no organizations found")
				return nil
			}
			for _, o := range orgs {
				fmt.Fprintf(out, "  %s  %s\n", o.ID, o.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "search by name")
	return cmd
}

func orgsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := connect()
			if err != nil {
				return err
			}
			org, err := createVia(cmd, func() (*api.Organization, error) {
				return client.CreateOrganization(args[0])
			}, bridge.OrgCreated)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", org.ID, org.Name)
			return nil
		},
	}
}

func orgsRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <org> <new-name>",
		Short: "Rename an organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := connect()
			if err != nil {
				return err
			}
			org, err := resolveOrg(client, args[0])
			if err != nil {
				return err
			}
			org.Name = args[1]
			updated, err := updateVia(cmd, org.ID, func() (*api.Organization, error) {
				return client.UpdateOrganization(org)
			}, bridge.OrgRenamed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", updated.ID, updated.Name)
			return nil
		},
	}
}

func orgsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <org>",
		Short: "Delete an organization and everything it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := connect()
			if err != nil {
				return err
			}
			org, err := resolveOrg(client, args[0])
			if err != nil {
				return err
			}
			return deleteVia[api.Organization](cmd, org.ID, client.DeleteOrganization, bridge.OrgDeleted)
		},
	}
}

// orgListCmd builds a read-only listing of one per-organization resource.
func orgListCmd[T records.Record](use, short string, keys []string, load func(*api.Client, api.Organization) ([]T, error), line func(T) string) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   use + " <org>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := connect()
			if err != nil {
				return err
			}
			org, err := resolveOrg(client, args[0])
			if err != nil {
				return err
			}
			items, err := load(client, org)
			if err != nil {
				return fmt.Errorf("list %s: %w", use, err)
			}
			items = records.Filter(items, filter, keys)

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintf(out, "no %s found\n", use)
				return nil
			}
			for _, item := range items {
				fmt.Fprintln(out, "  "+line(item))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "search term")
	return cmd
}

func orgsMembersCmd() *cobra.Command {
	return orgListCmd("members", "List members of an organization", records.MemberSearchKeys,
		func(c *api.Client, o api.Organization) ([]api.User, error) { return c.ListMembers(o.ID) },
		func(u api.User) string { return fmt.Sprintf("%s  %-20s  %s", u.ID, u.Name, orDash(u.Role)) })
}

func orgsBucketsCmd() *cobra.Command {
	return orgListCmd("buckets", "List buckets of an organization", records.BucketSearchKeys,
		func(c *api.Client, o api.Organization) ([]api.Bucket, error) { return c.ListBuckets(o.Name) },
		func(b api.Bucket) string { return fmt.Sprintf("%s  %-20s  %s", b.ID, b.Name, b.Retention()) })
}

func orgsDashboardsCmd() *cobra.Command {
	return orgListCmd("dashboards", "List dashboards of an organization", records.DashboardSearchKeys,
		func(c *api.Client, o api.Organization) ([]api.Dashboard, error) { return c.ListDashboards(o.Name) },
		func(d api.Dashboard) string { return fmt.Sprintf("%s  %-20s  %s", d.ID, d.Name, orDash(d.Description)) })
}

func orgsTasksCmd() *cobra.Command {
	return orgListCmd("tasks", "List tasks of an organization", records.TaskSearchKeys,
		func(c *api.Client, o api.Organization) ([]api.Task, error) { return c.ListTasks(o.Name) },
		func(t api.Task) string {
			return fmt.Sprintf("%s  %-20s  %-8s  %s", t.ID, t.Name, t.Status, orDash(t.Schedule()))
		})
}
