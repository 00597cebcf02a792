package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/bridge"
)

// BucketsCmd returns the `tsadmin buckets` command group. Listing lives
// under `tsadmin orgs buckets`.
func BucketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "buckets",
		Aliases: []string{"bucket"},
		Short:   "Create and update buckets",
	}
	cmd.AddCommand(bucketsCreateCmd())
	cmd.AddCommand(bucketsUpdateCmd())
	return cmd
}

func bucketsCreateCmd() *cobra.Command {
	var org, retention string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := api.ParseRetention(retention)
			if err != nil {
				return err
			}
			client, cfg, err := connect()
			if err != nil {
				return err
			}
			o, err := resolveOrg(client, defaultOrg(org, cfg))
			if err != nil {
				return err
			}
			b, err := createVia(cmd, func() (*api.Bucket, error) {
				return client.CreateBucket(o, api.Bucket{
					OrganizationID: o.ID,
					Name:           args[0],
					RetentionRules: api.ExpireAfter(period),
				})
			}, bridge.BucketCreated)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s  retention %s\n", b.ID, b.Name, b.Retention())
			return nil
		},
	}
	cmd.Flags().StringVar(&org, "org", "", "organization name or id (default from config)")
	cmd.Flags().StringVar(&retention, "retention", "", "delete data older than this, e.g. 72h or 30d (default forever)")
	return cmd
}

func bucketsUpdateCmd() *cobra.Command {
	var name, retention string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a bucket or change its retention",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket := api.Bucket{ID: args[0], Name: strings.TrimSpace(name)}
			if cmd.Flags().Changed("retention") {
				period, err := api.ParseRetention(retention)
				if err != nil {
					return err
				}
				bucket.RetentionRules = api.ExpireAfter(period)
			}
			if bucket.Name == "" && bucket.RetentionRules == nil {
				return fmt.Errorf("nothing to update: pass --name or --retention")
			}
			client, _, err := connect()
			if err != nil {
				return err
			}
			b, err := updateVia(cmd, bucket.ID, func() (*api.Bucket, error) {
				return client.UpdateBucket(bucket)
			}, bridge.BucketUpdated)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s  retention %s\n", b.ID, b.Name, b.Retention())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&retention, "retention", "", "new retention, e.g. 72h, 30d or forever")
	return cmd
}
