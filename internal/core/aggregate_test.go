package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioFurnitureConsumer(t *testing.T) {
	filtered := Filter(scenarioTable(), NewSet("Furniture"), NewSet("Consumer"))
	require.Len(t, filtered, 2)

	assert.Equal(t, Aggregate{{Key: "Chairs", Value: 150}}, SalesBySubCategory(filtered))
	assert.Equal(t, Aggregate{{Key: "2023-01", Value: 100}, {Key: "2023-02", Value: 50}}, SalesByMonth(filtered))
	assert.Equal(t, Aggregate{{Key: "Furniture", Value: 15}}, ProfitByCategory(filtered))
	assert.Equal(t, Totals{Sales: 150, Profit: 15}, ComputeTotals(filtered))
}

func TestSalesBySubCategoryOrdering(t *testing.T) {
	tbl := Table{
		{SubCategory: "Binders", Sales: 10, OrderDate: date(2023, 1, 1)},
		{SubCategory: "Phones", Sales: 300, OrderDate: date(2023, 1, 1)},
		{SubCategory: "Paper", Sales: 40, OrderDate: date(2023, 1, 1)},
		{SubCategory: "Art", Sales: 40, OrderDate: date(2023, 1, 1)},
		{SubCategory: "Binders", Sales: 30, OrderDate: date(2023, 1, 1)},
	}

	got := SalesBySubCategory(tbl)

	// Binders, Paper and Art tie at 40 and keep first-seen order.
	assert.Equal(t, []string{"Phones", "Binders", "Paper", "Art"}, got.Keys())
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Value, got[i].Value)
	}
}

func TestSalesByMonthIsChronological(t *testing.T) {
	tbl := Table{
		{OrderDate: date(2024, 3, 31), Sales: 1},
		{OrderDate: date(2023, 12, 1), Sales: 2},
		{OrderDate: date(2024, 1, 15), Sales: 3},
		{OrderDate: date(2024, 3, 1), Sales: 4},
		{OrderDate: date(2023, 12, 31), Sales: 5},
	}

	got := SalesByMonth(tbl)

	assert.Equal(t, Aggregate{
		{Key: "2023-12", Value: 7},
		{Key: "2024-01", Value: 3},
		{Key: "2024-03", Value: 5},
	}, got)
}

func TestAggregatesConserveSums(t *testing.T) {
	tbl := Table{
		{Category: "Furniture", SubCategory: "Chairs", OrderDate: date(2016, 11, 8), Sales: 261.96, Profit: 41.9136},
		{Category: "Furniture", SubCategory: "Tables", OrderDate: date(2016, 11, 8), Sales: 731.94, Profit: 219.582},
		{Category: "Office Supplies", SubCategory: "Labels", OrderDate: date(2016, 6, 12), Sales: 14.62, Profit: 6.8714},
		{Category: "Furniture", SubCategory: "Tables", OrderDate: date(2015, 10, 11), Sales: 957.5775, Profit: -383.031},
		{Category: "Office Supplies", SubCategory: "Storage", OrderDate: date(2015, 10, 11), Sales: 22.368, Profit: 2.5164},
	}
	totals := ComputeTotals(tbl)

	assert.InDelta(t, totals.Sales, SalesBySubCategory(tbl).Sum(), 1e-9)
	assert.InDelta(t, totals.Sales, SalesByMonth(tbl).Sum(), 1e-9)
	assert.InDelta(t, totals.Profit, ProfitByCategory(tbl).Sum(), 1e-9)
	assert.Equal(t, []string{"Furniture", "Office Supplies"}, ProfitByCategory(tbl).Keys())
}

func TestEmptyInputClosure(t *testing.T) {
	for name, agg := range map[string]Aggregate{
		"sub-category": SalesBySubCategory(Table{}),
		"month":        SalesByMonth(nil),
		"category":     ProfitByCategory(Table{}),
	} {
		assert.NotNil(t, agg, name)
		assert.Empty(t, agg, name)
	}
	assert.Equal(t, Totals{}, ComputeTotals(nil))
}
