package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-reporter/internal/config"
)

var cfg *config.AppConfig

var rootCmd = &cobra.Command{
	Use:   "weather-reporter",
	Short: "Browse and report on weather station logs",
	Long:  `Loads tab separated weather station logs, resamples them and serves chart data and reports per day, week, month or year.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		config.SetupLogging(cfg.LogLevel, cfg.LogPretty)
		return nil
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, reportCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
