package memory

import (
	"context"
	"fmt"
	"sync"

	"superstore/internal/core"
	"superstore/internal/sources"
)

// Store serves a fixed table from memory.
type Store struct {
	mu     sync.Mutex
	name   string
	header []string
	rows   [][]string
	err    error
}

var _ sources.Reader = (*Store)(nil)

// New returns a store holding a copy of header and rows.
func New(header []string, rows [][]string) *Store {
	return &Store{name: "memory", header: copyRow(header), rows: copyRows(rows)}
}

// Missing returns a store that reports the source as not found.
func Missing(name string) *Store {
	return &Store{name: name, err: fmt.Errorf("%s: %w", name, core.ErrSourceNotFound)}
}

// Named sets the name reported in load reports.
func (s *Store) Named(name string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
	return s
}

// ReadTable returns a copy of the stored table.
func (s *Store) ReadTable(ctx context.Context) (sources.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return sources.RawTable{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return sources.RawTable{}, s.err
	}
	return sources.RawTable{Header: copyRow(s.header), Rows: copyRows(s.rows)}, nil
}

func (s *Store) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func copyRow(in []string) []string {
	return append([]string(nil), in...)
}

func copyRows(in [][]string) [][]string {
	out := make([][]string, len(in))
	for i, r := range in {
		out[i] = copyRow(r)
	}
	return out
}
