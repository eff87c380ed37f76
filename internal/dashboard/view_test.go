package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

func TestFilter(t *testing.T) {
	records := []models.StockRecord{
		{ID: "1", TradeCode: "ABC"},
		{ID: "2", TradeCode: "abc"},
		{ID: "3", TradeCode: "XYZ"},
	}

	tests := []struct {
		name      string
		query     string
		tradeCode string
		wantIDs   []string
	}{
		{"case-insensitive substring", "ab", "", []string{"1", "2"}},
		{"empty query keeps all", "", "", []string{"1", "2", "3"}},
		{"exact trade code", "", "ABC", []string{"1"}},
		{"trade code and query combine", "Y", "ABC", []string{}},
		{"no match", "q", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.query, tt.tradeCode)
			ids := make([]string, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	t.Run("is pure", func(t *testing.T) {
		first := Filter(records, "AB", "")
		second := Filter(records, "AB", "")
		assert.Equal(t, first, second)
		assert.Len(t, records, 3)
	})
}

func TestTradeCodes(t *testing.T) {
	records := []models.StockRecord{
		{TradeCode: "XYZ"}, {TradeCode: "ABC"}, {TradeCode: "XYZ"}, {TradeCode: "abc"}, {TradeCode: "ABC"},
	}
	assert.Equal(t, []string{"XYZ", "ABC", "abc"}, TradeCodes(records))
	assert.Empty(t, TradeCodes(nil))
}

func TestPagination(t *testing.T) {
	t.Run("TotalPages", func(t *testing.T) {
		assert.Equal(t, 0, TotalPages(0, 10))
		assert.Equal(t, 1, TotalPages(1, 10))
		assert.Equal(t, 1, TotalPages(10, 10))
		assert.Equal(t, 3, TotalPages(25, 10))
	})

	t.Run("third page of 25 rows", func(t *testing.T) {
		records := makeRecords(25)
		rows := PageRows(records, 3, 10)
		require.Len(t, rows, 5)
		assert.Equal(t, records[20:25], rows)

		view := BuildView(State{Records: records, CurrentPage: 3}, 10)
		assert.Equal(t, 3, view.Pagination.TotalPages)
		assert.False(t, view.Pagination.HasNext)
		assert.True(t, view.Pagination.HasPrev)
	})

	t.Run("out of range page is empty", func(t *testing.T) {
		records := makeRecords(5)
		assert.Empty(t, PageRows(records, 2, 10))
		assert.Empty(t, PageRows(records, 0, 10))
		assert.Empty(t, PageRows(nil, 1, 10))
	})

	t.Run("pages partition the filtered set", func(t *testing.T) {
		for _, n := range []int{0, 1, 9, 10, 11, 37, 100} {
			records := makeRecords(n, "AAA", "BBB", "aab")
			filtered := Filter(records, "aa", "")
			pages := TotalPages(len(filtered), 10)

			seen := make(map[string]bool)
			total := 0
			for p := 1; p <= pages; p++ {
				for _, r := range PageRows(filtered, p, 10) {
					assert.False(t, seen[r.ID], "record %s on two pages", r.ID)
					seen[r.ID] = true
					total++
				}
			}
			assert.Equal(t, len(filtered), total, "n=%d", n)
		}
	})

	t.Run("empty result is one disabled page", func(t *testing.T) {
		view := BuildView(State{CurrentPage: 1}, 10)
		assert.Equal(t, 1, view.Pagination.Page)
		assert.Equal(t, 0, view.Pagination.TotalPages)
		assert.False(t, view.Pagination.HasNext)
		assert.False(t, view.Pagination.HasPrev)
		assert.Empty(t, view.Rows)
	})
}

func TestBuildChart(t *testing.T) {
	rows := []models.StockRecord{
		{Date: "2020-01-01", Close: "10.5", Volume: "1,200"},
		{Date: "2020-01-02", Close: "n/a", Volume: "900"},
		{Date: "2020-01-03", Close: " 11 ", Volume: ""},
	}

	chart := BuildChart(rows)

	assert.Equal(t, []string{"2020-01-01", "2020-01-02", "2020-01-03"}, chart.Labels)
	assert.Equal(t, []ChartPoint{{Index: 0, Value: 10.5}, {Index: 2, Value: 11}}, chart.Close)
	assert.Equal(t, []ChartPoint{{Index: 0, Value: 1200}, {Index: 1, Value: 900}}, chart.Volume)
	assert.False(t, chart.Empty())
	assert.True(t, BuildChart(nil).Empty())
}
