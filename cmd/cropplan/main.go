// Command cropplan runs the crop decision pipeline and the farming advisor
// from the command line, and maintains the activity registry file.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"crop-planner/internal/common/config"
	"crop-planner/internal/common/logger"
)

type rootOptions struct {
	timezone string
	verbose  bool
	log      logger.Logger
	now      func() time.Time
}

func (o *rootOptions) planner() config.PlannerConfig {
	return config.PlannerConfig{Timezone: o.timezone}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{log: logger.NewNoOpLogger(), now: time.Now}

	root := &cobra.Command{
		Use:          "cropplan",
		Short:        "Crop recommendations, risk and finance plans for a farmer",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			opts.log = logger.NewStructured(level, "console", "stderr")
		},
	}
	root.PersistentFlags().StringVar(&opts.timezone, "timezone", "Asia/Kolkata", "time zone the planning month is read in")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newPlanCmd(opts),
		newValidateCmd(opts),
		newAskCmd(opts),
		newRegistryCmd(opts),
		newNotifyCmd(opts),
		newCarriersCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
