package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superstore/internal/core"
	"superstore/internal/dataset"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestImportAndReadBack(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "superstore.db")

	records := core.Table{
		{Category: "Furniture", Segment: "Consumer", SubCategory: "Chairs", OrderDate: day(2017, time.March, 4), Sales: 261.96, Profit: 41.9136},
		{Category: "Technology", Segment: "Corporate", SubCategory: "Phones", OrderDate: day(2016, time.June, 12), Sales: 14.62, Profit: -6.87},
	}

	repo, err := Create(dbPath, nil)
	require.NoError(t, err)
	n, err := repo.Import(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, repo.Close())

	ro, err := Open(dbPath, DefaultTable, nil)
	require.NoError(t, err)
	defer ro.Close()

	raw, err := ro.ReadTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.RequiredColumns, raw.Header)
	assert.Equal(t, "superstore.db:orders", ro.Name())

	table, dropped, err := dataset.Normalize(raw)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Equal(t, records, table)
}

func TestCreateIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "superstore.db")

	first, err := Create(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Create(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestNullAmountsReadAsBlank(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "superstore.db")

	repo, err := Create(dbPath, nil)
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO orders (category, segment, sub_category, order_date) VALUES ('Furniture', 'Consumer', 'Chairs', '2017-01-02')`)
	require.NoError(t, err)

	raw, err := repo.ReadTable(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, raw.Len())
	assert.Equal(t, "", raw.Cell(0, 4))
	assert.Equal(t, "", raw.Cell(0, 5))
}

func TestOpenNotFound(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing.db"), DefaultTable, nil)
		assert.ErrorIs(t, err, core.ErrSourceNotFound)
	})

	t.Run("missing table", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "superstore.db")
		repo, err := Create(dbPath, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Close())

		ro, err := Open(dbPath, "returns", nil)
		require.NoError(t, err)
		defer ro.Close()

		_, err = ro.ReadTable(context.Background())
		assert.ErrorIs(t, err, core.ErrSourceNotFound)
	})
}
