package report

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/roach88/orderload/internal/store"
)

// DefaultTables are the tables summarized when none are named.
var DefaultTables = []string{
	"events",
	"stores",
	"orders",
	"line_items",
	"customer_details",
	"addresses",
	"shipping_lines",
	"charges",
	"discount_codes",
}

// DefaultLimit is the sample size used when limit is not positive.
const DefaultLimit = 5

// TableSummary is the row count and a capped sample of one table.
type TableSummary struct {
	Table   string     `json:"table"`
	Count   int64      `json:"count"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Summarize counts and samples each table in order. Table names must be
// store tables; nil tables means DefaultTables.
func Summarize(ctx context.Context, db *sql.DB, tables []string, limit int) ([]TableSummary, error) {
	if tables == nil {
		tables = DefaultTables
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	summaries := make([]TableSummary, 0, len(tables))
	for _, table := range tables {
		if !store.IsTable(table) {
			return nil, fmt.Errorf("unknown table %q", table)
		}
		s, err := summarizeTable(ctx, db, table, limit)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// summarizeTable interpolates table into SQL; callers validate it first.
func summarizeTable(ctx context.Context, db *sql.DB, table string, limit int) (TableSummary, error) {
	s := TableSummary{Table: table, Rows: [][]string{}}

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&s.Count); err != nil {
		return s, fmt.Errorf("count %s: %w", table, err)
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+table+" ORDER BY rowid LIMIT ?", limit)
	if err != nil {
		return s, fmt.Errorf("sample %s: %w", table, err)
	}
	defer rows.Close()

	s.Columns, err = rows.Columns()
	if err != nil {
		return s, fmt.Errorf("sample %s: columns: %w", table, err)
	}

	for rows.Next() {
		vals := make([]any, len(s.Columns))
		ptrs := make([]any, len(vals))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return s, fmt.Errorf("sample %s: scan: %w", table, err)
		}

		cells := make([]string, len(vals))
		for i, v := range vals {
			cells[i] = formatCell(v)
		}
		s.Rows = append(s.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("sample %s: %w", table, err)
	}
	return s, nil
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
