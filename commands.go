package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msomdec/notekeeper/internal/config"
)

var configPath string

// rootCmd runs the server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:           "notekeeper",
	Short:         "Notes service with account registration and JWT auth",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServeCmd,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE:  runServeCmd,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runMigrate(cmd.Context(), cfg)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the configured admin account if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runSeed(cmd.Context(), cfg)
	},
}

func init() {
	defaultPath := os.Getenv("NOTEKEEPER_CONFIG")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "Path to a YAML config file (or set NOTEKEEPER_CONFIG)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runServe(ctx, cfg); err != nil {
		slog.Error("server error", "error", err)
		return err
	}
	return nil
}

// loadConfig reads the configuration and installs the process logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		return nil, err
	}
	slog.SetDefault(cfg.Logging.NewLogger(os.Stdout, os.Stderr))
	return cfg, nil
}
