// Package config loads generator settings from the process environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Timetable source selectors accepted by SCHEDULE_SOURCE.
const (
	SourceCSV      = "csv"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Config captures environment driven configuration values for the
// availability generator.
type Config struct {
	Source          string
	CSVPath         string
	SQLiteDSN       string
	DatabaseURL     string
	OutputPath      string
	RefreshInterval time.Duration
}

// Load parses configuration values from the current process environment,
// after layering in a .env.local file when one exists beside the binary.
//
// The loader applies sensible defaults for optional fields while validating
// required values and accumulating every problem into a single error.
func Load() (Config, error) {
	// A missing .env.local is the normal production case.
	_ = godotenv.Load(".env.local")

	cfg := Config{
		Source:     SourceCSV,
		CSVPath:    "public/classes.csv",
		SQLiteDSN:  "file:schedule.db",
		OutputPath: "public/scheduleData.json",
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if source := strings.TrimSpace(os.Getenv("SCHEDULE_SOURCE")); source != "" {
		switch strings.ToLower(source) {
		case SourceCSV, SourceSQLite, SourcePostgres:
			cfg.Source = strings.ToLower(source)
		default:
			invalid = append(invalid, "SCHEDULE_SOURCE")
		}
	}

	if path := strings.TrimSpace(os.Getenv("SCHEDULE_CSV_PATH")); path != "" {
		cfg.CSVPath = path
	}

	if dsn := strings.TrimSpace(os.Getenv("SCHEDULE_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("SCHEDULE_DATABASE_URL"))
	if cfg.Source == SourcePostgres && cfg.DatabaseURL == "" {
		missing = append(missing, "SCHEDULE_DATABASE_URL")
	}

	if path := strings.TrimSpace(os.Getenv("SCHEDULE_OUTPUT_PATH")); path != "" {
		cfg.OutputPath = path
	}

	if intervalValue := strings.TrimSpace(os.Getenv("SCHEDULE_REFRESH_INTERVAL")); intervalValue != "" {
		interval, err := time.ParseDuration(intervalValue)
		if err != nil || interval < 0 {
			invalid = append(invalid, "SCHEDULE_REFRESH_INTERVAL")
		} else {
			cfg.RefreshInterval = interval
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables have invalid values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
