package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/orderload/internal/config"
	"github.com/roach88/orderload/internal/report"
	"github.com/roach88/orderload/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	ConfigPath string
	Database   string
	Limit      int
	Tables     []string
}

// ReportSummary is the JSON payload of the report command.
type ReportSummary struct {
	Database string                `json:"database"`
	Tables   []report.TableSummary `json:"tables"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a loaded database",
		Long: `Print the row count and a sample of rows for each table of a loaded
database. The database is only read.

Exit codes:
  0 - Summary printed
  2 - Command error (database not found, unknown table, etc.)

Examples:
  orderload report --db ./orders.db
  orderload report --db ./orders.db --table orders --table line_items --limit 10
  orderload report --db ./orders.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config, else "+config.DefaultDatabase+")")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "sample rows per table")
	cmd.Flags().StringSliceVar(&opts.Tables, "table", nil, "table to summarize (repeatable, default: main tables)")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	newLogger(opts.RootOptions, cmd.ErrOrStderr())

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if opts.Limit > 0 {
		cfg.SampleLimit = opts.Limit
	}
	tables := cfg.Tables
	if len(opts.Tables) > 0 {
		tables = opts.Tables
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	summaries, err := summarizeDatabase(ctx, cfg.Database, tablesOrDefault(tables), cfg.SampleLimit)
	if err != nil {
		if formatter.IsJSON() {
			_ = formatter.Error(CodeReportFailed, err.Error(), nil)
		}
		return WrapExitError(ExitCommandError, "failed to summarize database", err)
	}

	if formatter.IsJSON() {
		return formatter.Success(ReportSummary{Database: cfg.Database, Tables: summaries})
	}
	return report.WriteText(cmd.OutOrStdout(), summaries)
}

// summarizeDatabase reports on an existing database file without writing to
// it. A missing file is an error rather than a new empty database.
func summarizeDatabase(ctx context.Context, path string, tables []string, limit int) ([]report.TableSummary, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found: %w", err)
	}

	st, err := store.OpenReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	return report.Summarize(ctx, st.DB(), tables, limit)
}

func tablesOrDefault(tables []string) []string {
	if len(tables) == 0 {
		return report.DefaultTables
	}
	return tables
}
