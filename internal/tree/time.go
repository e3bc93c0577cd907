package tree

import (
	"database/sql"
	"strings"
	"time"
)

// isoLayouts are tried in order by ParseTime.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02",
	// basic format
	"20060102T150405.999999999Z07:00",
	"20060102T150405.999999999Z0700",
	"20060102T150405.999999999",
	"20060102T1504",
	"20060102",
}

// ParseTime parses an ISO-8601 date-time string.
// A space is accepted in place of the 'T' separator.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	} else if len(s) > 8 && s[8] == ' ' && !strings.Contains(s[:8], "-") {
		s = s[:8] + "T" + s[9:]
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NullTime parses the string at path as an ISO-8601 timestamp.
// Absent, non-string, or unparseable values yield an invalid NullTime.
func (o Object) NullTime(path string) sql.NullTime {
	s, ok := o.Get(path).(String)
	if !ok {
		return sql.NullTime{}
	}
	t, ok := ParseTime(string(s))
	return sql.NullTime{Time: t, Valid: ok}
}
