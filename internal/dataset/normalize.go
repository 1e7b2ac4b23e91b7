package dataset

import (
	"fmt"
	"strings"

	"superstore/internal/core"
	"superstore/internal/sources"
)

// columnIndex maps each required column to its position in the header.
type columnIndex map[string]int

func indexColumns(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(core.RequiredColumns))
	for i, h := range header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	var missing []string
	for _, c := range core.RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", core.ErrMalformedSource, strings.Join(missing, ", "))
	}
	return idx, nil
}

// Normalize types a raw table. Rows whose order date cannot be parsed are
// dropped and counted; any other bad value fails the whole table.
func Normalize(raw sources.RawTable) (core.Table, int, error) {
	idx, err := indexColumns(raw.Header)
	if err != nil {
		return core.Table{}, 0, err
	}

	out := make(core.Table, 0, raw.Len())
	dropped := 0
	for r := range raw.Rows {
		cell := func(col string) string { return raw.Cell(r, idx[col]) }

		date, ok := core.ParseOrderDate(cell(core.ColumnOrderDate))
		if !ok {
			dropped++
			continue
		}
		// Row numbers count the header as row 1.
		sales, err := core.ParseAmount(cell(core.ColumnSales))
		if err != nil {
			return core.Table{}, dropped, fmt.Errorf("%w: row %d: %s: %v", core.ErrMalformedSource, r+2, core.ColumnSales, err)
		}
		profit, err := core.ParseAmount(cell(core.ColumnProfit))
		if err != nil {
			return core.Table{}, dropped, fmt.Errorf("%w: row %d: %s: %v", core.ErrMalformedSource, r+2, core.ColumnProfit, err)
		}

		out = append(out, core.Record{
			Category:    cell(core.ColumnCategory),
			Segment:     cell(core.ColumnSegment),
			SubCategory: cell(core.ColumnSubCategory),
			OrderDate:   date,
			Sales:       sales,
			Profit:      profit,
		})
	}
	return out, dropped, nil
}
