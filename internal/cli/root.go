// Package cli is the terminal front end: it wires configuration, logging,
// the store and the application state, and renders the core's outputs.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/invoza/invoza/internal/config"
	"github.com/invoza/invoza/internal/services"
	"github.com/invoza/invoza/internal/store"
)

func newRootCmd(app *services.App, r *renderer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "invoza",
		Short:         "Invoicing for small businesses, in the terminal",
		Long:          "Invoza manages customers, invoices and quotes in a local store and derives statements, aging and sales/VAT reports from them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newCustomersCmd(app, r))
	cmd.AddCommand(newDocumentsCmd(app, r, invoiceCommandSpec))
	cmd.AddCommand(newDocumentsCmd(app, r, quoteCommandSpec))
	cmd.AddCommand(newSettingsCmd(app, r))
	cmd.AddCommand(newReportCmd(app, r))
	cmd.AddCommand(newSummaryCmd(app, r))
	return cmd
}

// Execute bootstraps the application and runs the command tree.
func Execute() error {
	cfg := config.Load()

	logger := newLogger(cfg.Debug)
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	kv, err := store.Open(cfg.DBPath)
	if err != nil {
		sugar.Errorw("open store failed", "path", cfg.DBPath, "error", err)
		return err
	}
	app := services.NewApp(store.NewCollections(kv, sugar), sugar)
	if err := app.Load(); err != nil {
		sugar.Errorw("load failed", "error", err)
		return err
	}

	if err := newRootCmd(app, newRenderer(cfg)).Execute(); err != nil {
		// violations were already rendered field by field
		if !errors.Is(err, errValidation) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		return err
	}
	return nil
}

func newLogger(debug bool) *zap.Logger {
	if debug {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
