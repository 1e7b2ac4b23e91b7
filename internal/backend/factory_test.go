package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superstore/internal/config"
	"superstore/internal/core"
	"superstore/internal/dataset"
	"superstore/internal/storage"
)

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	require.Error(t, err)

	_, err = FromAppConfig(&config.Config{DataSource: "parquet"})
	require.Error(t, err)

	cfg, err := FromAppConfig(&config.Config{
		DataSource:    config.SourceXLSX,
		DataPath:      "orders.xlsx",
		XLSXSheetName: "Orders",
	})
	require.NoError(t, err)
	assert.Equal(t, XLSXBackend, cfg.Type)
	assert.Equal(t, "orders.xlsx", cfg.DataPath)
	assert.Equal(t, "Orders", cfg.XLSXSheetName)

	cfg, err = FromAppConfig(&config.Config{
		DataSource:   config.SourceCSV,
		DataPath:     "orders.csv",
		CSVDelimiter: ";",
	})
	require.NoError(t, err)
	assert.Equal(t, ';', cfg.CSVComma)

	_, err = FromAppConfig(&config.Config{
		DataSource:   config.SourceCSV,
		DataPath:     "orders.csv",
		CSVDelimiter: ";;",
	})
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "csv with path", cfg: Config{Type: CSVBackend, DataPath: "a.csv"}},
		{name: "csv without path", cfg: Config{Type: CSVBackend}, wantErr: true},
		{name: "sqlite without path", cfg: Config{Type: SQLiteBackend}, wantErr: true},
		{name: "sheets without credentials", cfg: Config{Type: SheetsBackend, GoogleSpreadsheetID: "id", GoogleSheetName: "Orders"}, wantErr: true},
		{name: "memory", cfg: Config{Type: MemoryBackend}},
		{name: "unknown", cfg: Config{Type: "parquet"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"Category,Segment,Sub-Category,Order Date,Sales,Profit\nFurniture,Consumer,Chairs,2017-01-02,10,1\n"), 0o644))

	f := NewFactory(nil)

	t.Run("csv", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: CSVBackend, DataPath: csvPath})
		require.NoError(t, err)

		table, _, err := dataset.NewLoader(res.Reader).Load(ctx)
		require.NoError(t, err)
		assert.Len(t, table, 1)
	})

	t.Run("csv with semicolon delimiter", func(t *testing.T) {
		ptPath := filepath.Join(dir, "pedidos.csv")
		require.NoError(t, os.WriteFile(ptPath, []byte(
			"Category;Segment;Sub-Category;Order Date;Sales;Profit\nFurniture;Consumer;Chairs;2017-01-02;1.234,56;-12,5\n"), 0o644))

		res, err := f.CreateBackend(ctx, Config{Type: CSVBackend, DataPath: ptPath, CSVComma: ';'})
		require.NoError(t, err)

		table, _, err := dataset.NewLoader(res.Reader).Load(ctx)
		require.NoError(t, err)
		require.Len(t, table, 1)
		assert.InDelta(t, 1234.56, table[0].Sales, 1e-9)
		assert.InDelta(t, -12.5, table[0].Profit, 1e-9)
	})

	t.Run("memory serves the sample", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: MemoryBackend})
		require.NoError(t, err)

		table, report, err := dataset.NewLoader(res.Reader).Load(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, table)
		assert.Zero(t, report.RowsDropped)
	})

	t.Run("missing sqlite database is reported at load time", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "missing.db")})
		require.NoError(t, err)

		_, _, err = dataset.NewLoader(res.Reader).Load(ctx)
		assert.ErrorIs(t, err, core.ErrSourceNotFound)
	})

	t.Run("sqlite", func(t *testing.T) {
		dbPath := filepath.Join(dir, "superstore.db")
		repo, err := storage.Create(dbPath, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Close())

		res, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: dbPath})
		require.NoError(t, err)
		require.NotNil(t, res.Cleanup)
		defer res.Cleanup()

		table, _, err := dataset.NewLoader(res.Reader).Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, table)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := f.CreateBackend(ctx, Config{Type: CSVBackend})
		assert.Error(t, err)
	})
}
