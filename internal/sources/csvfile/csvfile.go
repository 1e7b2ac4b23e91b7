package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"superstore/internal/core"
	"superstore/internal/sources"
)

const utf8BOM = "\ufeff"

// Reader reads a comma-separated file whose first row is the header.
type Reader struct {
	path  string
	comma rune
}

var _ sources.Reader = (*Reader)(nil)

// Option configures a Reader.
type Option func(*Reader)

// WithComma sets the field delimiter. Default ','.
func WithComma(r rune) Option {
	return func(rd *Reader) { rd.comma = r }
}

func New(path string, opts ...Option) *Reader {
	r := &Reader{path: path, comma: ','}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Reader) Name() string {
	return filepath.Base(r.path)
}

// ReadTable reads the whole file. A missing file wraps core.ErrSourceNotFound.
func (r *Reader) ReadTable(ctx context.Context) (sources.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return sources.RawTable{}, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return sources.RawTable{}, fmt.Errorf("open %s: %w: %v", r.path, core.ErrSourceNotFound, err)
		}
		return sources.RawTable{}, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()
	return Parse(f, r.comma)
}

// Parse reads a CSV stream. Ragged rows are accepted; short rows read as
// blank cells downstream.
func Parse(in io.Reader, comma rune) (sources.RawTable, error) {
	cr := csv.NewReader(in)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return sources.RawTable{}, fmt.Errorf("empty file: %w", core.ErrMalformedSource)
	}
	if err != nil {
		return sources.RawTable{}, fmt.Errorf("read header: %w: %v", core.ErrMalformedSource, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sources.RawTable{}, fmt.Errorf("read row: %w: %v", core.ErrMalformedSource, err)
		}
		if isBlank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return sources.RawTable{Header: header, Rows: rows}, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
