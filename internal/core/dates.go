package core

import (
	"strings"
	"time"
)

// orderDateLayouts are tried in order. Slash and dash dates without a
// leading year are month first, so "3/4/2016" is March 4th.
var orderDateLayouts = []string{
	"2006-1-2",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2T15:04:05",
	time.RFC3339,
	"2006/1/2",
	"2006/1/2 15:04:05",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1-2-06",
	"1/2/06",
	"1/2/06 15:04",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// ParseOrderDate parses an order date cell. It reports false when no known
// layout matches; callers treat such rows as having no date.
func ParseOrderDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range orderDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
