package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"crop-planner/internal/report"
)

func newNotifyCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Format farmer alert, reminder, weather and market messages",
	}
	cmd.AddCommand(
		newAlertCmd(root),
		newReminderCmd(),
		newWeatherCmd(),
		newMarketCmd(),
	)
	return cmd
}

func newAlertCmd(root *rootOptions) *cobra.Command {
	var alertType string
	cmd := &cobra.Command{
		Use:   "alert <text>",
		Short: "Format a free-text alert stamped with the current time",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at := root.now().In(root.planner().Location())
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.FormatAlert(alertType, strings.Join(args, " "), at))
			return err
		},
	}
	cmd.Flags().StringVarP(&alertType, "type", "t", "weather", "alert type: weather, pest, disease, market, irrigation or emergency")
	return cmd
}

func newReminderCmd() *cobra.Command {
	var crop, activity, due string
	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "Format a farming activity reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.FormatReminder(crop, activity, due))
			return err
		},
	}
	cmd.Flags().StringVar(&crop, "crop", "", "crop name")
	cmd.Flags().StringVar(&activity, "activity", "", "activity, for example Irrigation")
	cmd.Flags().StringVar(&due, "due", "", "due date")
	for _, f := range []string{"crop", "activity", "due"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newWeatherCmd() *cobra.Command {
	var w report.Weather
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Format a weather alert; missing readings print as N/A",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.FormatWeatherAlert(w))
			return err
		},
	}
	cmd.Flags().StringVar(&w.Temperature, "temperature", "", "temperature reading")
	cmd.Flags().StringVar(&w.Humidity, "humidity", "", "humidity reading")
	cmd.Flags().StringVar(&w.Rainfall, "rainfall", "", "rainfall reading")
	cmd.Flags().StringVar(&w.WindSpeed, "wind", "", "wind speed")
	cmd.Flags().StringVar(&w.Recommendations, "recommendations", "", "what farmers should do")
	cmd.Flags().StringVar(&w.Precautions, "precautions", "", "what farmers should avoid")
	return cmd
}

func newMarketCmd() *cobra.Command {
	var (
		crop          string
		price, change float64
	)
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Format a market price update with selling advice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.FormatMarketUpdate(crop, price, change))
			return err
		},
	}
	cmd.Flags().StringVar(&crop, "crop", "", "crop name")
	cmd.Flags().Float64Var(&price, "price", 0, "price in rupees per ton")
	cmd.Flags().Float64Var(&change, "change", 0, "price change in percent")
	_ = cmd.MarkFlagRequired("crop")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newCarriersCmd() *cobra.Command {
	var phone string
	cmd := &cobra.Command{
		Use:   "carriers",
		Short: "List the carriers with an e-mail-to-SMS gateway",
		Long:  "List the carriers with an e-mail-to-SMS gateway. With --phone each\nline also shows the gateway address for that number.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if phone == "" {
				for _, c := range report.Carriers() {
					if _, err := fmt.Fprintln(out, c); err != nil {
						return err
					}
				}
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, c := range report.Carriers() {
				addr, err := report.GatewayAddress(phone, c)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\n", c, addr)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "phone number to build gateway addresses for")
	return cmd
}
