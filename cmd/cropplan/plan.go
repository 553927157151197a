package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crop-planner/internal/farmer"
	"crop-planner/internal/pipeline"
)

type planOptions struct {
	profile string
	month   int
	output  string
}

func newPlanCmd(root *rootOptions) *cobra.Command {
	opts := &planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Rank crops and build the risk and finance report for a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.month != 0 && (opts.month < 1 || opts.month > 12) {
				return fmt.Errorf("--month must be between 1 and 12, got %d", opts.month)
			}

			a, err := farmer.LoadFile(opts.profile)
			if err != nil {
				return err
			}

			planner := root.planner()
			report := pipeline.Run(a,
				pipeline.WithLocation(planner.Location()),
				pipeline.WithMonth(opts.month),
			)
			root.log.Debug("plan built", map[string]interface{}{
				"reportId":       report.ID,
				"referenceMonth": report.ReferenceMonth,
				"shortlist":      len(report.Recommendation.Crops),
			})
			return writeOutput(cmd.OutOrStdout(), opts.output, report)
		},
	}
	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "farmer profile JSON file")
	cmd.Flags().IntVarP(&opts.month, "month", "m", 0, "planning month 1-12 (default: current month)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", formatJSON, "output format: json or yaml")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	var profile string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a farmer profile and print its derived summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := farmer.LoadFile(profile)
			if err != nil {
				root.log.WithError(err).Debug("profile rejected", map[string]interface{}{"path": profile})
				return err
			}
			return writeOutput(cmd.OutOrStdout(), formatJSON, a.Summary())
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "farmer profile JSON file")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}
