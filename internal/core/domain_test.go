package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// scenarioTable is the three-row table used across the core tests.
func scenarioTable() Table {
	return Table{
		{Category: "Furniture", Segment: "Consumer", SubCategory: "Chairs", OrderDate: date(2023, 1, 15), Sales: 100, Profit: 20},
		{Category: "Furniture", Segment: "Consumer", SubCategory: "Chairs", OrderDate: date(2023, 2, 10), Sales: 50, Profit: -5},
		{Category: "Technology", Segment: "Corporate", SubCategory: "Phones", OrderDate: date(2023, 1, 20), Sales: 200, Profit: 40},
	}
}

func TestSetContains(t *testing.T) {
	s := NewSet("A", "B", "A")
	assert.Len(t, s, 2)
	assert.True(t, s.Contains("A"))
	assert.False(t, s.Contains("a"), "matching is case-sensitive")
	assert.False(t, Set(nil).Contains("A"))
}

func TestCleanSelectionValue(t *testing.T) {
	assert.Equal(t, " Home Office ", CleanSelectionValue(" Home Office "))
	assert.Equal(t, "Furniture", CleanSelectionValue("Furni\x00ture\r\n"))
	assert.Equal(t, "Móveis", CleanSelectionValue("Móveis\u0085"))
	assert.Equal(t, "", CleanSelectionValue("\t"))
}

func TestSetSorted(t *testing.T) {
	assert.Equal(t, []string{"Corporate", "Home Office"}, NewSet("Home Office", "Corporate").Sorted())
	assert.Equal(t, []string{}, Set(nil).Sorted())
}

func TestTableDistinctValues(t *testing.T) {
	tbl := append(scenarioTable(), Record{Category: "Office Supplies", Segment: "Consumer"})

	assert.Equal(t, []string{"Furniture", "Technology", "Office Supplies"}, tbl.Categories())
	assert.Equal(t, []string{"Consumer", "Corporate"}, tbl.Segments())

	empty := Table{}
	assert.Empty(t, empty.Categories())
	assert.True(t, empty.IsEmpty())
}

func TestSelectAll(t *testing.T) {
	tbl := scenarioTable()
	sel := tbl.SelectAll()

	require.Len(t, sel.Categories, 2)
	require.Len(t, sel.Segments, 2)
	assert.False(t, sel.IncludeRows)
	assert.Equal(t, tbl, sel.Apply(tbl))
}
