package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"superstore/internal/core"
	"superstore/internal/services"
)

// Notices shown when there is nothing to chart.
const (
	NoticeSourceNotFound = "Data file not found. Check the configured data source and try again."
	NoticeEmptyFilter    = "No data found for the selected filters. Please adjust the filters."
)

// Error codes.
const (
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeMalformedSource  = "MALFORMED_SOURCE"
	CodeTimeout          = "TIMEOUT"
	CodeInternal         = "INTERNAL_ERROR"
)

// APIError is the JSON body of a failed request.
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

func newAPIError(r *http.Request, status int, code, msg string) *APIError {
	return &APIError{
		StatusCode: status,
		ErrorCode:  code,
		Message:    msg,
		RequestID:  RequestIDFromContext(r.Context()),
	}
}

type (
	// SourceView describes the loaded dataset.
	SourceView struct {
		Name        string `json:"name"`
		RowsRead    int    `json:"rows_read"`
		RowsDropped int    `json:"rows_dropped"`
		RowsLoaded  int    `json:"rows_loaded"`
	}

	// OptionsResponse lists the filter choices. Every choice starts selected.
	OptionsResponse struct {
		Available  bool       `json:"available"`
		Notice     string     `json:"notice,omitempty"`
		Categories []string   `json:"categories"`
		Segments   []string   `json:"segments"`
		Source     SourceView `json:"source"`
	}

	// AmountView is a raw amount with its display string.
	AmountView struct {
		Value   float64 `json:"value"`
		Display string  `json:"display"`
	}

	// GroupView is one bar or slice of a chart.
	GroupView struct {
		Key     string  `json:"key"`
		Value   float64 `json:"value"`
		Display string  `json:"display"`
	}

	// RowView is one filtered record.
	RowView struct {
		Category    string  `json:"category"`
		Segment     string  `json:"segment"`
		SubCategory string  `json:"sub_category"`
		OrderDate   string  `json:"order_date"`
		Sales       float64 `json:"sales"`
		Profit      float64 `json:"profit"`
	}

	// SelectionView echoes the applied selection.
	SelectionView struct {
		Categories []string `json:"categories"`
		Segments   []string `json:"segments"`
	}

	// DashboardResponse is the whole dashboard for one selection.
	DashboardResponse struct {
		Available          bool          `json:"available"`
		Empty              bool          `json:"empty"`
		Notice             string        `json:"notice,omitempty"`
		Selection          SelectionView `json:"selection"`
		TotalSales         AmountView    `json:"total_sales"`
		TotalProfit        AmountView    `json:"total_profit"`
		SalesBySubCategory []GroupView   `json:"sales_by_sub_category"`
		SalesByMonth       []GroupView   `json:"sales_by_month"`
		ProfitByCategory   []GroupView   `json:"profit_by_category"`
		RowCount           int           `json:"row_count"`
		Rows               []RowView     `json:"rows,omitempty"`
	}
)

// presenter formats amounts for display. Raw values are never rounded.
type presenter struct {
	currency string
}

func (p presenter) amount(v float64) AmountView {
	return AmountView{Value: v, Display: core.FormatCurrency(p.currency, v)}
}

func (p presenter) groups(a core.Aggregate) []GroupView {
	out := make([]GroupView, len(a))
	for i, g := range a {
		out[i] = GroupView{Key: g.Key, Value: g.Value, Display: core.FormatCurrency(p.currency, g.Value)}
	}
	return out
}

func (p presenter) options(o services.Options, notice string) OptionsResponse {
	return OptionsResponse{
		Available:  notice == "",
		Notice:     notice,
		Categories: nonNil(o.Categories),
		Segments:   nonNil(o.Segments),
		Source: SourceView{
			Name:        o.Report.Source,
			RowsRead:    o.Report.RowsRead,
			RowsDropped: o.Report.RowsDropped,
			RowsLoaded:  o.Report.RowsRead - o.Report.RowsDropped,
		},
	}
}

// emptyDashboard is the body for a selection with nothing to show.
func (p presenter) emptyDashboard(sel core.Selection, available bool, notice string) DashboardResponse {
	return DashboardResponse{
		Available:          available,
		Empty:              true,
		Notice:             notice,
		Selection:          selectionView(sel),
		TotalSales:         p.amount(0),
		TotalProfit:        p.amount(0),
		SalesBySubCategory: []GroupView{},
		SalesByMonth:       []GroupView{},
		ProfitByCategory:   []GroupView{},
	}
}

func (p presenter) dashboard(sel core.Selection, d services.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		Available:          true,
		Selection:          selectionView(sel),
		TotalSales:         p.amount(d.Totals.Sales),
		TotalProfit:        p.amount(d.Totals.Profit),
		SalesBySubCategory: p.groups(d.SalesBySubCategory),
		SalesByMonth:       p.groups(d.SalesByMonth),
		ProfitByCategory:   p.groups(d.ProfitByCategory),
		RowCount:           d.RowCount,
	}
	if d.Rows != nil {
		resp.Rows = make([]RowView, len(d.Rows))
		for i, r := range d.Rows {
			resp.Rows[i] = RowView{
				Category:    r.Category,
				Segment:     r.Segment,
				SubCategory: r.SubCategory,
				OrderDate:   r.OrderDate.Format(time.DateOnly),
				Sales:       r.Sales,
				Profit:      r.Profit,
			}
		}
	}
	return resp
}

// selectionView lists the selected values in a stable order.
func selectionView(sel core.Selection) SelectionView {
	return SelectionView{
		Categories: sel.Categories.Sorted(),
		Segments:   sel.Segments.Sorted(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
