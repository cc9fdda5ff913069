package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/francescoattisano63-source/cyber-omega-guardian/subscription"
)

func newPlansCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List subscription plans and their features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plans := subscription.Plans()
			if jsonOutput {
				return printJSON(cmd, plans)
			}
			out := cmd.OutOrStdout()
			for _, p := range plans {
				f := p.Features
				fmt.Fprintf(out, "%-10s %s%s\n", p.Level, p.Pricing.Price, p.Pricing.Period)
				fmt.Fprintf(out, "  webhook alerts: %t  threat feed: %t  report export: %t  history: %d days\n",
					f.WebhookAlerts, f.ThreatFeed, f.ReportExport, f.HistoricalStorageDays)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
