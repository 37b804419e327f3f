// Package dates parses the mixed textual date formats found across
// source export batches. Day-first interpretation is preferred because
// every upstream system emits Chilean-locale dates.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// layouts are tried in order. Day-first forms come before ISO so an
// ambiguous value like 03-04-2025 resolves to April 3rd.
var layouts = []string{
	"2-1-2006",
	"2/1/2006",
	"2-1-2006 15:04",
	"2/1/2006 15:04",
	"2-1-2006 15:04:05",
	"2/1/2006 15:04:05",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02.01.2006",
}

// ParseDayFirst parses a date in any of the tolerated formats. A failure
// is a row-level condition for callers, never a batch failure.
func ParseDayFirst(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", value)
}

// Midnight truncates a timestamp to its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
