package report

import (
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteText writes the human-readable summary of summaries to w.
func WriteText(w io.Writer, summaries []TableSummary) error {
	p := message.NewPrinter(language.English)

	if _, err := p.Fprintln(w, "Database Content Summary:"); err != nil {
		return err
	}
	for _, s := range summaries {
		if _, err := p.Fprintf(w, "- %s: %d records\n", s.Table, s.Count); err != nil {
			return err
		}
		if _, err := p.Fprintln(w, "  Sample rows:"); err != nil {
			return err
		}
		for _, row := range s.Rows {
			if _, err := io.WriteString(w, "    ("+strings.Join(row, ", ")+")\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
