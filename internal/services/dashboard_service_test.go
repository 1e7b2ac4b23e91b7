package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superstore/internal/core"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func baseTable() core.Table {
	return core.Table{
		{Category: "Furniture", Segment: "Consumer", SubCategory: "Chairs", OrderDate: day(2017, time.January, 5), Sales: 100, Profit: 10},
		{Category: "Furniture", Segment: "Corporate", SubCategory: "Tables", OrderDate: day(2017, time.January, 20), Sales: 200, Profit: -50},
		{Category: "Technology", Segment: "Consumer", SubCategory: "Phones", OrderDate: day(2016, time.December, 1), Sales: 300, Profit: 60},
		{Category: "Furniture", Segment: "Consumer", SubCategory: "Tables", OrderDate: day(2017, time.February, 2), Sales: 50, Profit: 5},
	}
}

type fakeLoader struct {
	table core.Table
	err   error
	calls int
}

func (f *fakeLoader) Load(context.Context) (core.Table, core.LoadReport, error) {
	f.calls++
	return f.table, core.LoadReport{Source: "fake", RowsRead: len(f.table)}, f.err
}

type buildCounter struct{ errs []error }

func (b *buildCounter) ObserveBuild(err error) { b.errs = append(b.errs, err) }

func TestBuildDashboard(t *testing.T) {
	sel := core.Selection{
		Categories: core.NewSet("Furniture"),
		Segments:   core.NewSet("Consumer"),
	}

	d, err := BuildDashboard(baseTable(), sel)

	require.NoError(t, err)
	assert.Equal(t, core.Totals{Sales: 150, Profit: 15}, d.Totals)
	assert.Equal(t, core.Aggregate{{Key: "Chairs", Value: 100}, {Key: "Tables", Value: 50}}, d.SalesBySubCategory)
	assert.Equal(t, core.Aggregate{{Key: "2017-01", Value: 100}, {Key: "2017-02", Value: 50}}, d.SalesByMonth)
	assert.Equal(t, core.Aggregate{{Key: "Furniture", Value: 15}}, d.ProfitByCategory)
	assert.Equal(t, 2, d.RowCount)
	assert.Nil(t, d.Rows)
}

func TestBuildDashboardIncludeRows(t *testing.T) {
	sel := baseTable().SelectAll()
	sel.IncludeRows = true

	d, err := BuildDashboard(baseTable(), sel)

	require.NoError(t, err)
	assert.Equal(t, baseTable(), d.Rows)
	assert.InDelta(t, d.Totals.Sales, d.SalesBySubCategory.Sum(), 1e-9)
	assert.InDelta(t, d.Totals.Sales, d.SalesByMonth.Sum(), 1e-9)
	assert.InDelta(t, d.Totals.Profit, d.ProfitByCategory.Sum(), 1e-9)
}

func TestBuildDashboardEmptyResult(t *testing.T) {
	tests := []struct {
		name string
		sel  core.Selection
	}{
		{name: "no categories selected", sel: core.Selection{Categories: core.NewSet(), Segments: core.NewSet("Consumer")}},
		{name: "no segments selected", sel: core.Selection{Categories: core.NewSet("Furniture"), Segments: core.NewSet()}},
		{name: "no matching combination", sel: core.Selection{Categories: core.NewSet("Technology"), Segments: core.NewSet("Corporate")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildDashboard(baseTable(), tt.sel)
			assert.ErrorIs(t, err, core.ErrEmptyFilterResult)
		})
	}
}

func TestDashboardServiceBuild(t *testing.T) {
	loader := &fakeLoader{table: baseTable()}
	obs := &buildCounter{}
	svc := NewDashboardService(loader, WithObserver(obs))

	sel, err := svc.SelectAll(context.Background())
	require.NoError(t, err)

	d, err := svc.Build(context.Background(), sel)
	require.NoError(t, err)
	assert.Equal(t, core.Totals{Sales: 650, Profit: 25}, d.Totals)

	_, err = svc.Build(context.Background(), core.Selection{Categories: core.NewSet(), Segments: core.NewSet()})
	assert.ErrorIs(t, err, core.ErrEmptyFilterResult)

	require.Len(t, obs.errs, 2)
	assert.NoError(t, obs.errs[0])
}

func TestDashboardServiceSourceNotFound(t *testing.T) {
	loader := &fakeLoader{table: core.Table{}, err: fmt.Errorf("load: %w", core.ErrSourceNotFound)}
	svc := NewDashboardService(loader)

	opts, err := svc.Options(context.Background())
	require.ErrorIs(t, err, core.ErrSourceNotFound)
	assert.Empty(t, opts.Categories)
	assert.Empty(t, opts.Segments)
	assert.Equal(t, "fake", opts.Report.Source)

	_, err = svc.Build(context.Background(), core.Selection{Categories: core.NewSet("Furniture"), Segments: core.NewSet("Consumer")})
	assert.ErrorIs(t, err, core.ErrSourceNotFound)
	assert.False(t, errors.Is(err, core.ErrEmptyFilterResult))

	_, err = svc.SelectAll(context.Background())
	assert.ErrorIs(t, err, core.ErrSourceNotFound)
}

func TestDashboardServiceOptions(t *testing.T) {
	svc := NewDashboardService(&fakeLoader{table: baseTable()})

	opts, err := svc.Options(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Furniture", "Technology"}, opts.Categories)
	assert.Equal(t, []string{"Consumer", "Corporate"}, opts.Segments)
	assert.Equal(t, 4, opts.Report.RowsRead)
}
