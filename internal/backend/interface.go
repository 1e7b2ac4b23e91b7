package backend

import (
	"context"

	"superstore/internal/sources"
)

// CleanupFunc releases resources held by a source.
type CleanupFunc func() error

// BackendResult contains the source reader and optional cleanup function
type BackendResult struct {
	Reader  sources.Reader
	Cleanup CleanupFunc
}

// Factory creates source readers based on configuration
type Factory interface {
	// CreateBackend creates a reader for the configured source
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// File sources (csv, xlsx)
	DataPath      string
	CSVComma      rune
	XLSXSheetName string

	// SQLite specific
	SQLiteDBPath string
	SQLiteTable  string

	// Google Sheets specific
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string
}

// BackendType represents the type of data source
type BackendType string

const (
	CSVBackend    BackendType = "csv"
	XLSXBackend   BackendType = "xlsx"
	SQLiteBackend BackendType = "sqlite"
	SheetsBackend BackendType = "sheets"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case CSVBackend, XLSXBackend, SQLiteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
