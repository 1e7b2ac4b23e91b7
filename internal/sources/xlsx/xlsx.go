package xlsx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"superstore/internal/core"
	"superstore/internal/sources"
)

// Reader reads one worksheet of an Excel workbook. The first row is the header.
type Reader struct {
	path  string
	sheet string
}

var _ sources.Reader = (*Reader)(nil)

// New returns a Reader for path. An empty sheet selects the first worksheet.
func New(path, sheet string) *Reader {
	return &Reader{path: path, sheet: strings.TrimSpace(sheet)}
}

func (r *Reader) Name() string {
	if r.sheet == "" {
		return filepath.Base(r.path)
	}
	return filepath.Base(r.path) + "!" + r.sheet
}

// ReadTable reads the worksheet's raw cell values, so amounts never carry
// display grouping. Order dates stored as serial numbers are converted to
// ISO dates.
func (r *Reader) ReadTable(ctx context.Context) (sources.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return sources.RawTable{}, err
	}
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return sources.RawTable{}, fmt.Errorf("open %s: %w: %v", r.path, core.ErrSourceNotFound, err)
		}
		return sources.RawTable{}, fmt.Errorf("open %s: %w: %v", r.path, core.ErrMalformedSource, err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return sources.RawTable{}, fmt.Errorf("%s has no worksheets: %w", r.path, core.ErrMalformedSource)
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		var missing excelize.ErrSheetNotExist
		if errors.As(err, &missing) {
			return sources.RawTable{}, fmt.Errorf("worksheet %q: %w", sheet, core.ErrSourceNotFound)
		}
		return sources.RawTable{}, fmt.Errorf("read worksheet %q: %w: %v", sheet, core.ErrMalformedSource, err)
	}
	if len(rows) == 0 {
		return sources.RawTable{}, fmt.Errorf("worksheet %q is empty: %w", sheet, core.ErrMalformedSource)
	}

	tbl := sources.RawTable{Header: rows[0], Rows: rows[1:]}
	convertSerialDates(tbl, date1904(f))
	return tbl, nil
}

func date1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

// convertSerialDates rewrites numeric Order Date cells in place.
func convertSerialDates(tbl sources.RawTable, use1904 bool) {
	col := -1
	for i, h := range tbl.Header {
		if h == core.ColumnOrderDate {
			col = i
			break
		}
	}
	if col < 0 {
		return
	}
	for _, row := range tbl.Rows {
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if _, ok := core.ParseOrderDate(cell); ok {
			continue
		}
		serial, err := strconv.ParseFloat(cell, 64)
		if err != nil || serial <= 0 {
			continue
		}
		if d, err := excelize.ExcelDateToTime(serial, use1904); err == nil {
			row[col] = d.Format("2006-01-02")
		}
	}
}
