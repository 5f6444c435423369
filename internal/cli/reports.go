package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newExpiringCmd(application **app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "expiring",
		Short: "List items expiring within the next N days",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpiring(*application, days)
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Look-ahead window in days")
	return cmd
}

func runExpiring(a *app, days int) error {
	if days < 1 {
		days = 7
	}
	now := time.Now().UTC()

	expiring, err := a.alerts.ExpiringItems(days, now)
	if err != nil {
		return err
	}
	if len(expiring) == 0 {
		fmt.Printf("Nothing expiring in the next %d days.\n", days)
		return nil
	}

	fmt.Printf("Expiring within %d days:\n\n", days)
	for _, entry := range expiring {
		fmt.Printf("  %-22s %s (%s)\n",
			truncate(entry.Item.Name, 21),
			entry.Item.ExpiryDate.Format("2006-01-02"),
			entry.Status.Message,
		)
	}
	return nil
}

func newAlertsCmd(application **app) *cobra.Command {
	var send bool

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show the expiry alert summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlerts(*application, send)
		},
	}

	cmd.Flags().BoolVar(&send, "send", false, "Also deliver the summary through the configured notifier")
	return cmd
}

func runAlerts(a *app, send bool) error {
	now := time.Now().UTC()

	summary, err := a.alerts.Summary(now)
	if err != nil {
		return err
	}
	fmt.Println(summary)

	if send {
		count, err := a.alerts.NotifyBatch(now)
		if err != nil {
			return err
		}
		fmt.Printf("\nSummary sent (%d items covered)\n", count)
	}

	stats, err := a.alerts.Statistics(now)
	if err != nil {
		return err
	}
	fmt.Printf("\nTracked: %d | Expiring this week: %d | Critical: %d\n",
		stats.TrackedItems, stats.ExpiringThisWeek, stats.CriticalItems)
	return nil
}

func newReportCmd(application **app) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the waste and sustainability report",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := (*application).analytics.Report(time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Println(report)
			return nil
		},
	}
}
