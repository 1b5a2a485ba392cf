// Command schedulegen loads the timetable from the configured source,
// computes the weekly room availability grid, and writes scheduleData.json
// for the frontend. With a refresh interval configured it keeps running and
// regenerates the document whenever the timetable changes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/room-availability/internal/application"
	"github.com/example/room-availability/internal/catalog"
	"github.com/example/room-availability/internal/config"
	"github.com/example/room-availability/internal/export"
	"github.com/example/room-availability/internal/logging"
	"github.com/example/room-availability/internal/persistence"
	"github.com/example/room-availability/internal/persistence/csvsource"
	"github.com/example/room-availability/internal/persistence/postgres"
	"github.com/example/room-availability/internal/persistence/sqlite"
	"github.com/example/room-availability/internal/schedule"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithLogger(ctx, logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	source, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		logger.Error("failed to open timetable source", "source", cfg.Source, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := closeSource(); cerr != nil {
			logger.Error("failed to close timetable source", "error", cerr)
		}
	}()

	store := schedule.NewStore()
	service := application.NewAvailabilityServiceWithLogger(store, catalog.DefaultGroupingRules(), time.Now, logger)

	if err := regenerate(ctx, cfg, source, store, service, logger); err != nil {
		logger.Error("failed to generate schedule document", "error", err)
		os.Exit(1)
	}

	if cfg.RefreshInterval <= 0 {
		return
	}

	logger.Info("watching for timetable changes", "interval", cfg.RefreshInterval.String())
	ticker := time.NewTicker(cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case <-ticker.C:
			if err := regenerate(ctx, cfg, source, store, service, logger); err != nil {
				// A failed refresh keeps the previous document in place.
				logger.Error("refresh failed", "error", err)
			}
		}
	}
}

// regenerate loads a fresh snapshot and rewrites the output document. When
// the timetable fingerprint is unchanged since the last run, the write is
// skipped.
func regenerate(
	ctx context.Context,
	cfg config.Config,
	source persistence.TimetableSource,
	store *schedule.Store,
	service *application.AvailabilityService,
	logger *slog.Logger,
) error {
	rows, err := source.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	roomRows, err := source.ListRooms(ctx)
	if err != nil {
		return fmt.Errorf("list rooms: %w", err)
	}

	snapshot := schedule.Load(persistence.ToClassSessions(rows), persistence.ToRooms(roomRows))
	if skipped := snapshot.SkippedSessions(); skipped > 0 {
		logger.Warn("dropped malformed timetable rows", "skipped", skipped)
	}

	if !store.Replace(snapshot) {
		logger.Info("timetable unchanged, skipping regeneration", "fingerprint", snapshot.Fingerprint())
		return nil
	}

	grid, err := service.BuildAvailabilityGrid(ctx, application.BuildGridParams{})
	if err != nil {
		return fmt.Errorf("build availability grid: %w", err)
	}
	if err := export.WriteFile(cfg.OutputPath, grid); err != nil {
		return fmt.Errorf("write schedule document: %w", err)
	}

	logger.Info("schedule document written",
		"path", cfg.OutputPath,
		"sessions", snapshot.SessionCount(),
		"rooms", snapshot.Catalog().Len(),
		"fingerprint", snapshot.Fingerprint(),
	)
	return nil
}

// openSource builds the timetable source selected by the configuration and
// returns a close function for it.
func openSource(ctx context.Context, cfg config.Config) (persistence.TimetableSource, func() error, error) {
	switch cfg.Source {
	case config.SourceCSV:
		return csvsource.New(cfg.CSVPath), func() error { return nil }, nil
	case config.SourceSQLite:
		source, err := sqlite.Open(ctx, cfg.SQLiteDSN)
		if err != nil {
			return nil, nil, err
		}
		return source, source.Close, nil
	case config.SourcePostgres:
		source, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return source, source.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported timetable source %q", cfg.Source)
	}
}
