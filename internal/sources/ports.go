package sources

import (
	"context"
)

// RawTable is a tabular source read as text, before any typing or cleaning.
// Header holds the column names of the first row; Rows holds the remaining
// rows, which may be shorter than the header.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Ports for inbound data adapters.
type (
	// Reader reads the whole dataset from one backing source. Implementations
	// wrap core.ErrSourceNotFound when the source does not exist and
	// core.ErrMalformedSource when it cannot be parsed as a table.
	Reader interface {
		ReadTable(ctx context.Context) (RawTable, error)
		// Name identifies the source in logs and load reports.
		Name() string
	}
)

// Len returns the number of data rows.
func (t RawTable) Len() int {
	return len(t.Rows)
}

// Cell returns the value at row r, column c, or "" when the row is short.
func (t RawTable) Cell(r, c int) string {
	if r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Rows[r]) {
		return ""
	}
	return t.Rows[r][c]
}
