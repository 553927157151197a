package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"crop-planner/internal/advisor"
)

func newAskCmd(root *rootOptions) *cobra.Command {
	var emergency bool
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a farming question from the advisor knowledge base",
		Long: "Answer a farming question. With --emergency the argument names a situation\n" +
			"(" + strings.Join(advisor.Emergencies(), ", ") + ").",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			if emergency {
				_, err := fmt.Fprintln(out, advisor.EmergencyAdvice(question))
				return err
			}

			ans := advisor.New(nil).Answer(question)
			root.log.Debug("question classified", map[string]interface{}{
				"intent": ans.Intent.Type,
				"crop":   ans.Intent.Crop,
				"topic":  ans.Intent.Topic,
			})
			if _, err := fmt.Fprintln(out, ans.Text); err != nil {
				return err
			}
			for _, tip := range advisor.Tips(ans.Intent.Crop) {
				if _, err := fmt.Fprintln(out, "  - "+tip); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&emergency, "emergency", false, "treat the argument as an emergency situation")
	return cmd
}
