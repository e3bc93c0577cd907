// Package report summarizes the contents of a loaded database.
//
// It only reads: one COUNT(*) and one capped SELECT per table. Output is
// either the human summary written by WriteText or the TableSummary values
// themselves, which marshal to JSON.
package report
