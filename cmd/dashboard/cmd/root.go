// Package cmd implements the dashboard command line.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trogers1052/stock-dashboard/internal/client"
	"github.com/trogers1052/stock-dashboard/internal/config"
	"github.com/trogers1052/stock-dashboard/internal/logger"
)

var (
	apiURL  string
	verbose bool

	cfg    *config.Config
	remote *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Stock price record dashboard",
	Long: `Browse, filter, create, edit, delete and export stock price records
held by a remote stock API.

Configuration is read from .env and the environment (API_BASE_URL,
SERVER_PORT, KAFKA_ENABLED, LOG_LEVEL, DASHBOARD_PAGE_SIZE, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "remote stock API base URL (overrides API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
}

func initConfig() error {
	cfg = config.Load()
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		FileEnabled: cfg.Logging.FileEnabled,
		FilePath:    cfg.Logging.FilePath,
		ServiceName: "stock-dashboard",
	}); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	remote = client.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	return nil
}
