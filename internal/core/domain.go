package core

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"
	"unicode"
)

// Source column names. Matching is exact and case-sensitive.
const (
	ColumnCategory    = "Category"
	ColumnSegment     = "Segment"
	ColumnSubCategory = "Sub-Category"
	ColumnOrderDate   = "Order Date"
	ColumnSales       = "Sales"
	ColumnProfit      = "Profit"
)

// RequiredColumns lists the columns every source must provide.
var RequiredColumns = []string{
	ColumnCategory,
	ColumnSegment,
	ColumnSubCategory,
	ColumnOrderDate,
	ColumnSales,
	ColumnProfit,
}

type (
	// Record is a single sales transaction.
	Record struct {
		Category    string
		Segment     string
		SubCategory string
		OrderDate   time.Time
		Sales       float64
		Profit      float64
	}

	// Table is an ordered collection of records. Tables are treated as
	// values: transforms always return a new Table and never modify their input.
	Table []Record

	// Set is a set of categorical values used for filtering.
	Set map[string]struct{}

	// Selection is the user's current filter state.
	Selection struct {
		Categories Set
		Segments   Set
		// IncludeRows asks for the filtered rows to be returned for display.
		IncludeRows bool
	}

	// LoadReport describes the outcome of a load.
	LoadReport struct {
		Source      string
		RowsRead    int
		RowsDropped int
	}
)

var (
	// ErrSourceNotFound reports a missing or unreadable source. Non-fatal:
	// the load yields an empty table.
	ErrSourceNotFound = errors.New("source not found")
	// ErrEmptyFilterResult reports a selection that matched no rows.
	ErrEmptyFilterResult = errors.New("no rows match the selected filters")
	// ErrMalformedSource reports a source with missing columns or bad values.
	ErrMalformedSource = errors.New("malformed source")
	ErrInvalidAmount   = errors.New("invalid amount")
)

// NewSet builds a Set from the given values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// CleanSelectionValue removes control characters from a user-supplied
// filter value. Spaces are kept so values match the data exactly.
func CleanSelectionValue(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Contains reports whether v is in the set.
func (s Set) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string {
	out := slices.Sorted(maps.Keys(s))
	if out == nil {
		return []string{}
	}
	return out
}

// Len returns the number of records.
func (t Table) Len() int {
	return len(t)
}

// IsEmpty reports whether the table has no records.
func (t Table) IsEmpty() bool {
	return len(t) == 0
}

// Categories returns the distinct categories in first-seen order.
func (t Table) Categories() []string {
	return t.distinct(func(r Record) string { return r.Category })
}

// Segments returns the distinct customer segments in first-seen order.
func (t Table) Segments() []string {
	return t.distinct(func(r Record) string { return r.Segment })
}

func (t Table) distinct(key func(Record) string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, r := range t {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// SelectAll returns a selection containing every category and segment of t.
func (t Table) SelectAll() Selection {
	return Selection{
		Categories: NewSet(t.Categories()...),
		Segments:   NewSet(t.Segments()...),
	}
}
