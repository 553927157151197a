package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"crop-planner/pkg/registry"
)

func newRegistryCmd(root *rootOptions) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and update the activity registry",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "configs/activity-registry.json", "activity registry file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List registered activities",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				reg, err := registry.LoadRegistry(path)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "TASK TYPE\tCATEGORY\tSTATUS\tTIMEOUT")
				for _, a := range reg.Activities {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.TaskType, a.Category, a.ImplementationStatus, a.Timeout)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Check the registry for missing or duplicate entries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				reg, err := registry.LoadRegistry(path)
				if err != nil {
					return err
				}
				if err := reg.Validate(); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "registry valid: %d activities\n", len(reg.Activities))
				return err
			},
		},
		&cobra.Command{
			Use:   "status <id> <status>",
			Short: "Set the implementation status of an activity",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				reg, err := registry.LoadRegistry(path)
				if err != nil {
					return err
				}
				id, status := args[0], args[1]

				found := false
				for i := range reg.Activities {
					if reg.Activities[i].ID == id {
						reg.Activities[i].ImplementationStatus = status
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("activity %s not found", id)
				}
				if err := reg.Validate(); err != nil {
					return err
				}
				if err := reg.Save(path, time.Now()); err != nil {
					return err
				}
				root.log.Debug("registry updated", map[string]interface{}{"id": id, "status": status})
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "activity %s is now %s\n", id, status)
				return err
			},
		},
	)
	return cmd
}
