// Package cli wires the detection pipeline, inventory store, alerts, and
// analytics into the pantrywatch command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pantrywatch/pantrywatch/internal/alerts"
	"github.com/pantrywatch/pantrywatch/internal/analytics"
	"github.com/pantrywatch/pantrywatch/internal/config"
	"github.com/pantrywatch/pantrywatch/internal/expiry"
	"github.com/pantrywatch/pantrywatch/internal/inventory"
	"github.com/pantrywatch/pantrywatch/internal/logger"
	"github.com/pantrywatch/pantrywatch/internal/ocr"
)

var version = "1.0.0"

// app holds the long-lived components shared by every command. It is
// populated by the root command's PersistentPreRunE once the store is
// open.
type app struct {
	cfg       *config.Config
	store     inventory.Store
	detector  *expiry.Detector
	alerts    *alerts.System
	analytics *analytics.Engine
}

func newApp(cfg *config.Config) (*app, error) {
	store, err := inventory.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening inventory database: %w", err)
	}

	adapter := ocr.NewAdapter(ocr.NewTesseract(cfg.OCRLanguage), cfg.OCRPassTimeout)

	return &app{
		cfg:       cfg,
		store:     store,
		detector:  expiry.NewDetector(adapter),
		alerts:    alerts.NewSystem(store, alerts.NewLogNotifierFor(cfg.AlertRecipient)),
		analytics: analytics.NewEngine(store),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		logger.WithComponent("cli").Warn().Err(err).Msg("failed to close database")
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	var application *app

	root := &cobra.Command{
		Use:   "pantrywatch",
		Short: "Track food expiry dates from label photos",
		Long: `pantrywatch reads expiry dates off food label photos with OCR,
keeps an inventory of what is in your pantry, and reports on what is
about to expire and what has gone to waste.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			application, err = newApp(cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if application != nil {
				application.close()
			}
		},
	}

	root.AddCommand(
		newScanCmd(&application),
		newAddCmd(&application),
		newListCmd(&application),
		newExpiringCmd(&application),
		newAlertsCmd(&application),
		newReportCmd(&application),
		newMarkCmd(&application),
		newServeCmd(&application),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute(cfg *config.Config) {
	log := logger.WithComponent("cli")

	if err := newRootCmd(cfg).Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
