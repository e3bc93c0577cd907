package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/roach88/orderload/internal/store"
)

// Config holds the inputs of one ingestion run.
type Config struct {
	InputPath    string // JSON event file
	DatabasePath string // SQLite file, created if absent
}

// Result is the outcome of one run: success, or failure with the error that
// stopped it. Rows committed before a failure are kept.
type Result struct {
	RunID string `json:"run_id"`
	Stats Stats  `json:"stats"`
	Err   error  `json:"-"`
}

// OK reports whether the run completed without error.
func (r Result) OK() bool {
	return r.Err == nil
}

// Run opens the database, ensures the schema, reads the input file and
// ingests it. The store is closed on every path.
//
// Any failure is logged once and returned in Result.Err; Run itself never
// returns early with a partial report.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.Default()
	}
	res := Result{RunID: uuid.Must(uuid.NewV7()).String()}
	logger = logger.With("run_id", res.RunID)

	stats, err := run(ctx, cfg, logger)
	res.Stats = stats
	if err != nil {
		res.Err = err
		logger.Error("ingestion failed",
			"error", err,
			"records", stats.Records,
			"ingested", stats.Ingested,
		)
		return res
	}

	logger.Info("ingestion complete",
		"db", cfg.DatabasePath,
		"records", stats.Records,
		"ingested", stats.Ingested,
		"skipped", stats.Skipped,
		"orders", stats.Orders,
	)
	return res
}

func run(ctx context.Context, cfg Config, logger *slog.Logger) (Stats, error) {
	logger.Info("opening database", "path", cfg.DatabasePath)
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return Stats{}, err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	logger.Info("reading input", "path", cfg.InputPath)
	data, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("read input: %w", err)
	}

	return NewIngester(logger).Ingest(ctx, st, data)
}
