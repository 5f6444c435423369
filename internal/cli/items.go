package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pantrywatch/pantrywatch/internal/alerts"
	"github.com/pantrywatch/pantrywatch/internal/inventory"
	"github.com/pantrywatch/pantrywatch/internal/logger"
)

func newAddCmd(application **app) *cobra.Command {
	var (
		name     string
		category string
		expiry   string
		quantity float64
		unit     string
		location string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a food item manually",
		Example: `  pantrywatch add --name "Banana" --category fruits --expiry 2026-09-05`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(*application, name, category, expiry, quantity, unit, location)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name (required)")
	cmd.Flags().StringVar(&category, "category", "other", "Food category")
	cmd.Flags().StringVar(&expiry, "expiry", "", "Expiry date, YYYY-MM-DD (required)")
	cmd.Flags().Float64Var(&quantity, "quantity", 1.0, "Quantity")
	cmd.Flags().StringVar(&unit, "unit", "units", "Quantity unit")
	cmd.Flags().StringVar(&location, "location", "Refrigerator", "Storage location")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("expiry")
	return cmd
}

func runAdd(a *app, name, category, expiryStr string, quantity float64, unit, location string) error {
	log := logger.WithComponent("add")

	expiry, err := time.ParseInLocation("2006-01-02", expiryStr, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid expiry date %q, expected YYYY-MM-DD", expiryStr)
	}

	now := time.Now().UTC()
	if expiry.Before(now) {
		log.Warn().Str("name", name).Str("expiry", expiryStr).Msg("adding an already expired item")
	}

	item := &inventory.FoodItem{
		Name:         name,
		Category:     category,
		PurchaseDate: now,
		ExpiryDate:   expiry,
		Quantity:     quantity,
		Unit:         unit,
		Location:     location,
		Notes:        "Manually entered",
	}
	if err := a.store.AddItem(item); err != nil {
		return fmt.Errorf("saving item: %w", err)
	}

	status := alerts.CheckStatus(item.ExpiryDate, now)
	if status.Level != alerts.LevelNone {
		if err := a.alerts.LogAlert(item.ID, status.Level, status.DaysRemaining); err != nil {
			log.Warn().Err(err).Str("item_id", item.ID).Msg("failed to record alert")
		}
	}

	fmt.Printf("%s added successfully\n", item.Name)
	fmt.Printf("  Item ID       : %s\n", item.ID)
	fmt.Printf("  Days remaining: %d\n", status.DaysRemaining)
	return nil
}

func newListCmd(application **app) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the current inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(*application, status)
		},
	}

	cmd.Flags().StringVar(&status, "status", "active", "Item status to list (active, consumed, wasted, shared, expired)")
	return cmd
}

func runList(a *app, statusStr string) error {
	status := inventory.Status(statusStr)
	if !inventory.ValidStatus(status) {
		return fmt.Errorf("unknown status %q", statusStr)
	}

	items, err := a.store.ListByStatus(status)
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}
	if len(items) == 0 {
		fmt.Printf("No %s items in the inventory.\n", status)
		return nil
	}

	now := time.Now().UTC()
	fmt.Printf("INVENTORY (%d items)\n\n", len(items))
	fmt.Printf("%-38s %-22s %-12s %-12s %-6s %-15s\n", "ID", "Name", "Category", "Expiry", "Days", "Location")
	fmt.Println(strings.Repeat("-", 108))
	for _, item := range items {
		daysLeft := int(math.Floor(item.ExpiryDate.Sub(now).Hours() / 24))
		fmt.Printf("%-38s %-22s %-12s %-12s %-6d %-15s\n",
			item.ID,
			truncate(item.Name, 21),
			truncate(item.Category, 11),
			item.ExpiryDate.Format("2006-01-02"),
			daysLeft,
			truncate(item.Location, 14),
		)
	}
	return nil
}

func newMarkCmd(application **app) *cobra.Command {
	return &cobra.Command{
		Use:   "mark [id] [status]",
		Short: "Change an item's status (consumed, wasted, shared, ...)",
		Example: `  pantrywatch mark 3f1a... consumed
  pantrywatch mark 3f1a... wasted`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMark(*application, args[0], args[1])
		},
	}
}

func runMark(a *app, id, statusStr string) error {
	status := inventory.Status(statusStr)
	if !inventory.ValidStatus(status) {
		return fmt.Errorf("unknown status %q", statusStr)
	}
	if err := a.store.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("updating item %s: %w", id, err)
	}
	fmt.Printf("Item %s marked %s\n", id, status)
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
