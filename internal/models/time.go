package models

import (
	"fmt"
	"time"
)

// Timestamp layouts accepted at the boundary, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp supplied by a caller.
// Offsets and the trailing Z are accepted; a bare date means midnight UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use ISO format (e.g. 2024-12-31T23:59:59Z)", s)
}
