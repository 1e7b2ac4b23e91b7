package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"superstore/internal/core"
	"superstore/internal/services"
)

// writeReport prints the KPIs, the three aggregates and optionally the rows.
func writeReport(out io.Writer, currency string, report core.LoadReport, sel core.Selection, d services.Dashboard) error {
	money := func(v float64) string { return core.FormatCurrency(currency, v) }

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	left := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(out, "Source: %s (%d rows read, %d dropped)\n", report.Source, report.RowsRead, report.RowsDropped)
	fmt.Fprintf(out, "Categories: %s\n", strings.Join(sel.Categories.Sorted(), ", "))
	fmt.Fprintf(out, "Segments: %s\n\n", strings.Join(sel.Segments.Sorted(), ", "))

	fmt.Fprintf(tw, "Total Sales\t%s\t\n", money(d.Totals.Sales))
	fmt.Fprintf(tw, "Total Profit\t%s\t\n", money(d.Totals.Profit))
	if err := tw.Flush(); err != nil {
		return err
	}

	sections := []struct {
		title string
		agg   core.Aggregate
	}{
		{"Sales by Sub-Category", d.SalesBySubCategory},
		{"Sales over Time", d.SalesByMonth},
		{"Profit by Category", d.ProfitByCategory},
	}
	for _, s := range sections {
		fmt.Fprintf(out, "\n%s\n", s.title)
		for _, g := range s.agg {
			fmt.Fprintf(tw, "  %s\t%s\t\n", g.Key, money(g.Value))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if d.Rows == nil {
		return nil
	}
	fmt.Fprintf(out, "\nFiltered Data (%d rows)\n", d.RowCount)
	fmt.Fprintln(left, "Category\tSegment\tSub-Category\tOrder Date\tSales\tProfit")
	for _, r := range d.Rows {
		fmt.Fprintf(left, "%s\t%s\t%s\t%s\t%g\t%g\n",
			r.Category, r.Segment, r.SubCategory, r.OrderDate.Format(time.DateOnly), r.Sales, r.Profit)
	}
	return left.Flush()
}
