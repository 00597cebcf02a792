package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitrone/tsadmin/internal/api"
	"github.com/gravitrone/tsadmin/internal/bridge"
	"github.com/gravitrone/tsadmin/internal/labelcolor"
	"github.com/gravitrone/tsadmin/internal/records"
)

// LabelsCmd returns the `tsadmin labels` command group.
func LabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "labels",
		Aliases: []string{"label"},
		Short:   "Manage labels",
	}
	cmd.AddCommand(labelsListCmd())
	cmd.AddCommand(labelsCreateCmd())
	cmd.AddCommand(labelsUpdateCmd())
	cmd.AddCommand(labelsDeleteCmd())
	return cmd
}

func labelsListCmd() *cobra.Command {
	var filter, org string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List labels of an organization",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cfg, err := connect()
			if err != nil {
				return err
			}
			o, err := resolveOrg(client, defaultOrg(org, cfg))
			if err != nil {
				return err
			}
			labels, err := client.ListLabels(o.ID)
			if err != nil {
				return fmt.Errorf("list labels: %w", err)
			}
			labels = records.Filter(labels, filter, records.LabelSearchKeys)

			out := cmd.OutOrStdout()
			if len(labels) == 0 {
				fmt.Fprintln(out, "no labels found")
				return nil
			}
			for _, l := range labels {
				fmt.Fprintf(out, "  %s  %s  %-24s  %s\n", l.ID, l.Properties.Color, l.Name, orDash(l.Properties.Description))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "search name and description")
	cmd.Flags().StringVar(&org, "org", "", "organization name or id (default from config)")
	return cmd
}

func labelsCreateCmd() *cobra.Command {
	var org, color, description string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateLabel(args[0], color); err != nil {
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
			label, err := createVia(cmd, func() (*api.Label, error) {
				return client.CreateLabel(api.Label{
					OrgID:      o.ID,
					Name:       args[0],
					Properties: api.LabelProperties{Color: color, Description: description},
				})
			}, bridge.LabelCreated)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s  %s\n", label.ID, label.Properties.Color, label.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&org, "org", "", "organization name or id (default from config)")
	cmd.Flags().StringVar(&color, "color", labelcolor.DefaultHex, "hex color, e.g. #326BBA")
	cmd.Flags().StringVarP(&description, "description", "d", "", "label description")
	return cmd
}

func labelsUpdateCmd() *cobra.Command {
	var name, color, description string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a label's name, color or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := connect()
			if err != nil {
				return err
			}
			labels, err := client.ListLabels("")
			if err != nil {
				return fmt.Errorf("update label: %w", err)
			}
			label, ok := records.Find(labels, args[0])
			if !ok {
				return fmt.Errorf("label %q not found", args[0])
			}
			if cmd.Flags().Changed("name") {
				label.Name = name
			}
			if cmd.Flags().Changed("color") {
				label.Properties.Color = color
			}
			if cmd.Flags().Changed("description") {
				label.Properties.Description = description
			}
			if err := validateLabel(label.Name, label.Properties.Color); err != nil {
				return err
			}

			updated, err := updateVia(cmd, label.ID, func() (*api.Label, error) {
				return client.UpdateLabel(label)
			}, bridge.LabelUpdated)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s  %s\n", updated.ID, updated.Properties.Color, updated.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&color, "color", "", "new hex color")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	return cmd
}

func labelsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := connect()
			if err != nil {
				return err
			}
			return deleteVia[api.Label](cmd, args[0], client.DeleteLabel, bridge.LabelDeleted)
		},
	}
}

func validateLabel(name, color string) error {
	if err := labelcolor.ValidateName(name); err != nil {
		return err
	}
	return labelcolor.ValidateHexCode(color)
}
