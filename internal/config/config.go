package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-reporter/internal/weather"
)

// DatasetConfig names a weather log to load at startup and on every reload.
// Location is a file path or an http(s) URL.
type DatasetConfig struct {
	Name     string
	Location string
}

type AppConfig struct {
	Port string

	LogLevel  string
	LogPretty bool

	// Missing is the token the logger writes for an absent reading.
	Missing  string
	Timezone *time.Location

	HTTPTimeout time.Duration

	// ReloadInterval controls how often configured datasets are re-read.
	ReloadInterval time.Duration
	Datasets       []DatasetConfig

	StoreMaxDatasets int // 0 = unlimited

	StationName    string
	PrimaryField   string
	SecondaryField string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.LogPretty = getenvBool("LOG_PRETTY", false)
	cfg.Missing = getenvDefault("MISSING_TOKEN", weather.DefaultMissing)

	tz, err := time.LoadLocation(getenvDefault("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Timezone = tz

	cfg.HTTPTimeout, err = time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}

	cfg.ReloadInterval, err = time.ParseDuration(getenvDefault("RELOAD_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RELOAD_INTERVAL: %w", err)
	}

	cfg.Datasets, err = parseDatasets(os.Getenv("DATASETS"))
	if err != nil {
		return nil, err
	}

	cfg.StoreMaxDatasets = getenvInt("STORE_MAX_DATASETS", 32)
	cfg.StationName = getenvDefault("STATION_NAME", "SHEAR")
	cfg.PrimaryField = getenvDefault("PRIMARY_FIELD", "temp_out")
	cfg.SecondaryField = getenvDefault("SECONDARY_FIELD", "rain")

	return cfg, nil
}

// NormalizeOptions returns the options the normalizer runs with.
func (c *AppConfig) NormalizeOptions() weather.NormalizeOptions {
	return weather.NormalizeOptions{
		Missing:  c.Missing,
		Location: c.Timezone,
	}
}

// parseDatasets reads a comma separated list of name=location pairs.
func parseDatasets(s string) ([]DatasetConfig, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var out []DatasetConfig
	seen := make(map[string]bool)
	for _, entry := range strings.Split(s, ",") {
		name, location, ok := strings.Cut(strings.TrimSpace(entry), "=")
		name, location = strings.TrimSpace(name), strings.TrimSpace(location)
		if !ok || name == "" || location == "" {
			return nil, fmt.Errorf("invalid DATASETS entry %q; want name=path-or-url", entry)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate dataset name %q in DATASETS", name)
		}
		seen[name] = true
		out = append(out, DatasetConfig{Name: name, Location: location})
	}
	return out, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
