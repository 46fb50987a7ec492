package domain

import (
	"strings"
	"time"
)

// TimestampLayout is the layout dateTime values are written in: UTC with
// millisecond precision, the same shape as JavaScript's toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// legacyLayouts are accepted when reading. The browser app stamped new
// products with toLocaleString in en-US form.
var legacyLayouts = []string{
	time.RFC3339Nano,
	"1/2/2006, 3:04:05 PM",
	"1/2/2006, 15:04:05",
	"2006-01-02 15:04:05",
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a stored dateTime. ok is false for values that match
// no known layout.
func ParseTimestamp(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if parsed, err := time.Parse(TimestampLayout, s); err == nil {
		return parsed, true
	}
	for _, layout := range legacyLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// CompareTimestamps orders two dateTime strings chronologically. Values that
// cannot be parsed sort before every parseable value and keep their relative order.
func CompareTimestamps(a, b string) int {
	ta, okA := ParseTimestamp(a)
	tb, okB := ParseTimestamp(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	}
	return ta.Compare(tb)
}
