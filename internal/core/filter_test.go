package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	base := scenarioTable()

	tests := []struct {
		name       string
		categories Set
		segments   Set
		wantLen    int
	}{
		{name: "furniture consumer", categories: NewSet("Furniture"), segments: NewSet("Consumer"), wantLen: 2},
		{name: "conjunction not disjunction", categories: NewSet("Furniture"), segments: NewSet("Corporate"), wantLen: 0},
		{name: "all values", categories: NewSet("Furniture", "Technology"), segments: NewSet("Consumer", "Corporate"), wantLen: 3},
		{name: "unknown value", categories: NewSet("Toys"), segments: NewSet("Consumer"), wantLen: 0},
		{name: "empty category selection", categories: NewSet(), segments: NewSet("Consumer"), wantLen: 0},
		{name: "nil segment selection", categories: NewSet("Furniture"), segments: nil, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(base, tt.categories, tt.segments)
			require.NotNil(t, got)
			require.Len(t, got, tt.wantLen)
			for _, r := range got {
				assert.True(t, tt.categories.Contains(r.Category))
				assert.True(t, tt.segments.Contains(r.Segment))
			}
		})
	}
}

func TestFilterKeepsOrderAndEveryMatch(t *testing.T) {
	base := scenarioTable()
	base = append(base, Record{Category: "Furniture", Segment: "Consumer", SubCategory: "Tables", OrderDate: date(2022, 12, 1), Sales: 7})

	got := Filter(base, NewSet("Furniture"), NewSet("Consumer"))

	require.Len(t, got, 3)
	assert.Equal(t, base[0], got[0])
	assert.Equal(t, base[1], got[1])
	assert.Equal(t, base[3], got[2])
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	base := scenarioTable()
	snapshot := append(Table(nil), base...)

	got := Filter(base, NewSet("Technology"), NewSet("Corporate"))
	require.Len(t, got, 1)
	got[0].Sales = 0

	assert.Equal(t, snapshot, base)
}
