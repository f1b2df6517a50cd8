package main

import (
	"context"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-reporter/internal/report"
	"github.com/i474232898/weather-reporter/internal/weather"
	"github.com/i474232898/weather-reporter/internal/weather/sources"
)

var (
	reportFile      string
	reportFrequency string
	reportDuration  string
	reportPeriod    int
	reportPrimary   string
	reportSecondary string
)

func init() {
	reportCmd.Flags().StringVarP(&reportFile, "file", "f", "", "weather log to report on (path or URL)")
	reportCmd.Flags().StringVar(&reportFrequency, "frequency", string(weather.Hourly), "sampling frequency: hourly, daily, weekly or monthly")
	reportCmd.Flags().StringVar(&reportDuration, "duration", string(weather.Day), "period length: day, week, month or year")
	reportCmd.Flags().IntVar(&reportPeriod, "period", 0, "index of the period to report on")
	reportCmd.Flags().StringVar(&reportPrimary, "primary", "", "field drawn as a line (default PRIMARY_FIELD)")
	reportCmd.Flags().StringVar(&reportSecondary, "secondary", "", "field drawn as bars (default SECONDARY_FIELD)")
	_ = reportCmd.MarkFlagRequired("file")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a text report for one period of a weather log",
	RunE: func(cmd *cobra.Command, args []string) error {
		freq, err := weather.ParseFrequency(reportFrequency)
		if err != nil {
			return err
		}
		dur, err := weather.ParseDuration(reportDuration)
		if err != nil {
			return err
		}
		if reportPrimary == "" {
			reportPrimary = cfg.PrimaryField
		}
		if reportSecondary == "" {
			reportSecondary = cfg.SecondaryField
		}

		src := sources.New("cli", reportFile, &http.Client{Timeout: cfg.HTTPTimeout})
		table, err := weather.Load(context.Background(), src, cfg.NormalizeOptions())
		if err != nil {
			return err
		}

		sess, err := weather.Browse(table, freq, dur, reportPeriod)
		if err != nil {
			return err
		}
		bundle, err := sess.Chart(reportPrimary, reportSecondary)
		if err != nil {
			return err
		}

		f, d, p := sess.Labels()
		return report.Write(os.Stdout, report.Title(cfg.StationName, f, d, p), bundle)
	},
}
