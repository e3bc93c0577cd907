package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/orderload/internal/config"
	"github.com/roach88/orderload/internal/ingest"
	"github.com/roach88/orderload/internal/report"
)

// IngestOptions holds flags for the ingest command.
type IngestOptions struct {
	*RootOptions
	ConfigPath string
	Input      string
	Database   string
	Limit      int
	NoReport   bool
}

// IngestSummary is the JSON payload of the ingest command.
type IngestSummary struct {
	Input    string                `json:"input"`
	Database string                `json:"database"`
	Stats    ingest.Stats          `json:"stats"`
	Tables   []report.TableSummary `json:"tables,omitempty"`
}

// NewIngestCommand creates the ingest command.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IngestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load an order event file into the database",
		Long: `Load an order event file into a SQLite database, then print a summary
of the loaded tables.

The input is a JSON array of {"event_name", "event_payload"} records. A file
holding bare comma-separated objects without the enclosing brackets is
accepted. The database is created if it does not exist.

Each record is committed on its own. The first failing record stops the run;
records before it stay in the database.

Exit codes:
  0 - All records ingested
  1 - Ingestion failed
  2 - Command error (bad flags, unreadable config, etc.)

Examples:
  orderload ingest
  orderload ingest --input ./orders.json --db ./orders.db
  orderload ingest --config ./orderload.yaml --format json --no-report`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.Input, "input", "", "path to JSON event file (default from config, else "+config.DefaultInput+")")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config, else "+config.DefaultDatabase+")")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "sample rows per table in the summary")
	cmd.Flags().BoolVar(&opts.NoReport, "no-report", false, "skip the table summary")

	return cmd
}

func runIngest(opts *IngestOptions, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Input != "" {
		cfg.Input = opts.Input
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if opts.Limit > 0 {
		cfg.SampleLimit = opts.Limit
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := ingest.Run(ctx, ingest.Config{
		InputPath:    cfg.Input,
		DatabasePath: cfg.Database,
	}, logger)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		RunID:     res.RunID,
	}
	summary := IngestSummary{Input: cfg.Input, Database: cfg.Database, Stats: res.Stats}

	var reportErr error
	if !opts.NoReport {
		summary.Tables, reportErr = summarizeDatabase(ctx, cfg.Database, tablesOrDefault(cfg.Tables), cfg.SampleLimit)
		if reportErr != nil {
			logger.Warn("summary unavailable", "error", reportErr)
		}
	}

	if !res.OK() {
		if formatter.IsJSON() {
			if err := formatter.Error(CodeIngestFailed, res.Err.Error(), summary); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Error processing JSON data: %v\n", res.Err)
			writeSummaryText(cmd, summary.Tables)
		}
		return WrapExitError(ExitFailure, "ingestion failed", res.Err)
	}

	if formatter.IsJSON() {
		if err := formatter.Success(summary); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Data successfully processed and inserted into %s\n", cfg.Database)
		formatter.VerboseLog("records=%d ingested=%d skipped=%d orders=%d",
			res.Stats.Records, res.Stats.Ingested, res.Stats.Skipped, res.Stats.Orders)
		writeSummaryText(cmd, summary.Tables)
	}

	if reportErr != nil {
		return WrapExitError(ExitCommandError, "failed to summarize database", reportErr)
	}
	return nil
}

func writeSummaryText(cmd *cobra.Command, tables []report.TableSummary) {
	if tables == nil {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout())
	if err := report.WriteText(cmd.OutOrStdout(), tables); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to write summary: %v\n", err)
	}
}
