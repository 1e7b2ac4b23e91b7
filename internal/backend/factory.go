package backend

import (
	"context"
	"errors"
	"fmt"

	"superstore/internal/core"
	"superstore/internal/log"
	"superstore/internal/sources/csvfile"
	"superstore/internal/sources/google"
	"superstore/internal/sources/memory"
	"superstore/internal/sources/xlsx"
	"superstore/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend. A source that does not
// exist yet is not an error here; it surfaces when the dataset is loaded.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case CSVBackend:
		var opts []csvfile.Option
		if config.CSVComma != 0 {
			opts = append(opts, csvfile.WithComma(config.CSVComma))
		}
		f.logger.Info("Initialized CSV backend", "path", config.DataPath, "delimiter", string(config.CSVComma))
		return &BackendResult{Reader: csvfile.New(config.DataPath, opts...)}, nil
	case XLSXBackend:
		f.logger.Info("Initialized workbook backend", "path", config.DataPath, "sheet", config.XLSXSheetName)
		return &BackendResult{Reader: xlsx.New(config.DataPath, config.XLSXSheetName)}, nil
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case SheetsBackend:
		return f.createSheetsBackend(ctx, config)
	case MemoryBackend:
		f.logger.Info("Initialized memory backend with sample data")
		return &BackendResult{Reader: memory.Sample()}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	table := config.SQLiteTable
	if table == "" {
		table = storage.DefaultTable
	}

	repo, err := storage.Open(config.SQLiteDBPath, table, f.logger)
	if errors.Is(err, core.ErrSourceNotFound) {
		f.logger.Warn("SQLite database not found", "db_path", config.SQLiteDBPath)
		return &BackendResult{Reader: memory.Missing(config.SQLiteDBPath)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath, "table", table)

	return &BackendResult{
		Reader:  repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*BackendResult, error) {
	cli, err := google.NewFromOptions(ctx, google.Options{
		SpreadsheetID:      config.GoogleSpreadsheetID,
		SheetName:          config.GoogleSheetName,
		ServiceAccountJSON: config.GoogleServiceAccountJSON,
		ServiceAccountFile: config.GoogleServiceAccountFile,
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend", "sheet", config.GoogleSheetName)

	return &BackendResult{
		Reader:  cli,
		Cleanup: nil, // No cleanup needed for sheets backend
	}, nil
}
