package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"superstore/internal/core"
	"superstore/internal/log"
	"superstore/internal/sources"

	_ "modernc.org/sqlite"
)

// DefaultTable is the table created by the migrations.
const DefaultTable = "orders"

// SQLiteRepository serves the order table of a SQLite database.
type SQLiteRepository struct {
	db     *sql.DB
	path   string
	table  string
	logger *log.Logger
}

var _ sources.Reader = (*SQLiteRepository)(nil)

// Open opens an existing database without migrating it. A missing file
// wraps core.ErrSourceNotFound.
func Open(dbPath, table string, logger *log.Logger) (*SQLiteRepository, error) {
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", dbPath, core.ErrSourceNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", dbPath, err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return newRepository(db, dbPath, table, logger)
}

// Create opens or creates a writable database and applies the migrations.
func Create(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return newRepository(db, dbPath, DefaultTable, logger)
}

func newRepository(db *sql.DB, path, table string, logger *log.Logger) (*SQLiteRepository, error) {
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &SQLiteRepository{
		db:     db,
		path:   path,
		table:  table,
		logger: logger.WithComponent(log.ComponentStorage),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Name() string {
	return filepath.Base(r.path) + ":" + r.table
}

// ReadTable returns every order in insertion order, with the source column
// names as header. The table name was validated by configuration.
func (r *SQLiteRepository) ReadTable(ctx context.Context) (sources.RawTable, error) {
	query := fmt.Sprintf(
		`SELECT category, segment, sub_category, order_date, sales, profit FROM %q ORDER BY rowid`,
		r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		if isMissingTable(err) {
			return sources.RawTable{}, fmt.Errorf("table %s: %w: %v", r.table, core.ErrSourceNotFound, err)
		}
		return sources.RawTable{}, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	tbl := sources.RawTable{Header: append([]string(nil), core.RequiredColumns...)}
	for rows.Next() {
		var (
			category, segment, subCategory, orderDate sql.NullString
			sales, profit                             sql.NullFloat64
		)
		if err := rows.Scan(&category, &segment, &subCategory, &orderDate, &sales, &profit); err != nil {
			return sources.RawTable{}, fmt.Errorf("scan order: %w: %v", core.ErrMalformedSource, err)
		}
		tbl.Rows = append(tbl.Rows, []string{
			category.String,
			segment.String,
			subCategory.String,
			orderDate.String,
			formatAmount(sales),
			formatAmount(profit),
		})
	}
	if err := rows.Err(); err != nil {
		return sources.RawTable{}, fmt.Errorf("iterate orders: %w", err)
	}

	r.logger.DebugContext(ctx, "Orders read", log.FieldSource, r.Name(), log.FieldRowsRead, tbl.Len())
	return tbl, nil
}

// Import appends records to the orders table in one transaction and returns
// the number of rows written.
func (r *SQLiteRepository) Import(ctx context.Context, records core.Table) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %q (category, segment, sub_category, order_date, sales, profit) VALUES (?, ?, ?, ?, ?, ?)`,
		r.table))
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.Category,
			rec.Segment,
			rec.SubCategory,
			rec.OrderDate.Format("2006-01-02 15:04:05"),
			rec.Sales,
			rec.Profit,
		); err != nil {
			return 0, fmt.Errorf("insert order %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	r.logger.InfoContext(ctx, "Orders imported", log.FieldSource, r.Name(), "rows", len(records))
	return len(records), nil
}

// formatAmount renders a NULL amount as a blank cell.
func formatAmount(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

func isMissingTable(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "no such table")
}
