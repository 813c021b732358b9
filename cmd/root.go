// Package cmd implements the flight_report command-line interface.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"flight_report/internal/config"
	"flight_report/internal/database"

	"github.com/spf13/cobra"
)

// Execute runs the root command
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	configPath string
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "flight_report",
		Short:         "Extract flights from saved or fetched flight pages into a report",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (YAML)")

	root.AddCommand(newDeparturesCommand(opts))
	root.AddCommand(newRegistrationsCommand(opts))
	root.AddCommand(newHistoryCommand(opts))
	return root
}

// setup loads the configuration and installs the logger
func (o *rootOptions) setup() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	initLogger(cfg)
	return cfg, nil
}

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

// openLedger opens the run ledger, or returns nil when db_path is empty
func openLedger(cfg *config.Config) (*database.DB, error) {
	if cfg.DBPath == "" {
		return nil, nil
	}
	db, err := database.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}
