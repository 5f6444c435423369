package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pantrywatch/pantrywatch/internal/alerts"
	"github.com/pantrywatch/pantrywatch/internal/inventory"
	"github.com/pantrywatch/pantrywatch/internal/logger"
)

func newScanCmd(application **app) *cobra.Command {
	var (
		name     string
		category string
		quantity float64
		unit     string
		location string
	)

	cmd := &cobra.Command{
		Use:   "scan [image]",
		Short: "Add a food item by reading the expiry date off a label photo",
		Example: `  # Scan a milk carton label
  pantrywatch scan labels/milk.jpg --name "Milk" --category dairy

  # Scan with full details
  pantrywatch scan labels/bread.jpg --name "Bread" --category grains --quantity 2 --unit loaves --location Pantry`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), *application, args[0], name, category, quantity, unit, location)
		},
	}

	cmd.Flags().StringVar(&name, "name", "Unknown Food", "Item name")
	cmd.Flags().StringVar(&category, "category", "other", "Food category (dairy, fruits, vegetables, ...)")
	cmd.Flags().Float64Var(&quantity, "quantity", 1.0, "Quantity")
	cmd.Flags().StringVar(&unit, "unit", "units", "Quantity unit")
	cmd.Flags().StringVar(&location, "location", "Refrigerator", "Storage location")
	return cmd
}

func runScan(ctx context.Context, a *app, imagePath, name, category string, quantity float64, unit, location string) error {
	log := logger.WithComponent("scan")
	log.Info().Str("image", imagePath).Msg("processing label photo")

	result := a.detector.Detect(ctx, imagePath)
	if !result.Success {
		if result.DiagnosticText != "" {
			log.Debug().Str("recognized", result.DiagnosticText).Msg("recognition output")
		}
		return fmt.Errorf("no expiry date detected (%s): %s", result.Kind, result.Reason)
	}

	now := time.Now().UTC()
	item := &inventory.FoodItem{
		Name:          name,
		Category:      category,
		PurchaseDate:  now,
		ExpiryDate:    result.Date,
		Quantity:      quantity,
		Unit:          unit,
		Location:      location,
		OCRConfidence: result.Confidence,
		ImagePath:     imagePath,
		Notes:         fmt.Sprintf("Extracted from image - %s", result.MatchedText),
	}
	if err := a.store.AddItem(item); err != nil {
		return fmt.Errorf("saving item: %w", err)
	}

	if status := alerts.CheckStatus(item.ExpiryDate, now); status.Level != alerts.LevelNone {
		if err := a.alerts.LogAlert(item.ID, status.Level, status.DaysRemaining); err != nil {
			log.Warn().Err(err).Str("item_id", item.ID).Msg("failed to record alert")
		}
	}

	fmt.Printf("%s added successfully\n", item.Name)
	fmt.Printf("  Item ID     : %s\n", item.ID)
	fmt.Printf("  Expiry      : %s\n", result.DateString())
	fmt.Printf("  Days left   : %d\n", result.DaysUntilExpiry)
	fmt.Printf("  Confidence  : %.1f%%\n", result.Confidence*100)
	return nil
}
