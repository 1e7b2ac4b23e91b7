package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"superstore/internal/core"
	"superstore/internal/log"
)

type (
	// DatasetLoader provides the base table. Implementations cache it.
	DatasetLoader interface {
		Load(ctx context.Context) (core.Table, core.LoadReport, error)
	}

	// BuildObserver is told about every pipeline run.
	BuildObserver interface {
		ObserveBuild(err error)
	}
)

// Dashboard is everything shown for one selection.
type Dashboard struct {
	Totals             core.Totals
	SalesBySubCategory core.Aggregate
	SalesByMonth       core.Aggregate
	ProfitByCategory   core.Aggregate
	// RowCount is the size of the filtered table.
	RowCount int
	// Rows is set only when the selection asks for it.
	Rows core.Table
}

// Options lists the choices offered to the user.
type Options struct {
	Categories []string
	Segments   []string
	Report     core.LoadReport
}

// BuildDashboard runs the pipeline on an already loaded table: filter, then
// totals and the three aggregates. A selection matching no rows returns
// core.ErrEmptyFilterResult.
func BuildDashboard(base core.Table, sel core.Selection) (Dashboard, error) {
	filtered := sel.Apply(base)
	if filtered.IsEmpty() {
		return Dashboard{}, core.ErrEmptyFilterResult
	}

	d := Dashboard{
		Totals:             core.ComputeTotals(filtered),
		SalesBySubCategory: core.SalesBySubCategory(filtered),
		SalesByMonth:       core.SalesByMonth(filtered),
		ProfitByCategory:   core.ProfitByCategory(filtered),
		RowCount:           filtered.Len(),
	}
	if sel.IncludeRows {
		d.Rows = filtered
	}
	return d, nil
}

// DashboardService recomputes the dashboard on every interaction.
type DashboardService struct {
	loader   DatasetLoader
	logger   *log.Logger
	observer BuildObserver
}

// Option configures a DashboardService.
type Option func(*DashboardService)

func WithLogger(l *log.Logger) Option {
	return func(s *DashboardService) { s.logger = l }
}

func WithObserver(o BuildObserver) Option {
	return func(s *DashboardService) { s.observer = o }
}

func NewDashboardService(loader DatasetLoader, opts ...Option) *DashboardService {
	s := &DashboardService{loader: loader}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = log.Discard()
	}
	s.logger = s.logger.WithComponent(log.ComponentPipeline)
	return s
}

// Options returns the distinct categories and segments of the base table.
// When the source is missing the lists are empty and the error wraps
// core.ErrSourceNotFound.
func (s *DashboardService) Options(ctx context.Context) (Options, error) {
	base, report, err := s.loader.Load(ctx)
	opts := Options{
		Categories: base.Categories(),
		Segments:   base.Segments(),
		Report:     report,
	}
	if err != nil {
		return opts, fmt.Errorf("options: %w", err)
	}
	return opts, nil
}

// SelectAll returns the default selection: every category and segment.
func (s *DashboardService) SelectAll(ctx context.Context) (core.Selection, error) {
	base, _, err := s.loader.Load(ctx)
	if err != nil {
		return core.Selection{}, fmt.Errorf("select all: %w", err)
	}
	return base.SelectAll(), nil
}

// Build loads the base table and runs the pipeline for sel. Load errors stop
// the pipeline before filtering.
func (s *DashboardService) Build(ctx context.Context, sel core.Selection) (Dashboard, error) {
	start := time.Now()

	d, err := s.build(ctx, sel)
	if s.observer != nil {
		s.observer.ObserveBuild(err)
	}

	fields := log.NewFields().
		WithOperation(log.OpBuild).
		WithSelection(len(sel.Categories), len(sel.Segments), sel.IncludeRows).
		WithError(err)
	fields[log.FieldDuration] = time.Since(start).Milliseconds()
	fields[log.FieldRowsKept] = d.RowCount

	switch {
	case err == nil:
		s.logger.DebugContext(ctx, "Dashboard built", fields.ToSlice()...)
	case errors.Is(err, core.ErrEmptyFilterResult), errors.Is(err, core.ErrSourceNotFound):
		s.logger.InfoContext(ctx, "Dashboard has no data", fields.ToSlice()...)
	default:
		s.logger.ErrorContext(ctx, "Dashboard build failed", fields.ToSlice()...)
	}
	return d, err
}

func (s *DashboardService) build(ctx context.Context, sel core.Selection) (Dashboard, error) {
	base, _, err := s.loader.Load(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("build: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(base, sel)
}
