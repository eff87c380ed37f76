package dashboard

import (
	"strings"

	"github.com/trogers1052/stock-dashboard/internal/models"
)

// Pagination describes the current page and which page commands are enabled
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	TotalCount int  `json:"total_count"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// View is everything the presentation layer needs to draw the list page
type View struct {
	Rows              []models.StockRecord `json:"rows"`
	TradeCodes        []string             `json:"trade_codes"`
	SearchQuery       string               `json:"search_query"`
	SelectedTradeCode string               `json:"selected_trade_code"`
	Pagination        Pagination           `json:"pagination"`
	Chart             ChartSeries          `json:"chart"`
}

// TradeCodes returns the distinct trade codes in first-seen order
func TradeCodes(records []models.StockRecord) []string {
	seen := make(map[string]bool, len(records))
	codes := make([]string, 0)
	for _, r := range records {
		if seen[r.TradeCode] {
			continue
		}
		seen[r.TradeCode] = true
		codes = append(codes, r.TradeCode)
	}
	return codes
}

// Filter keeps records whose trade code equals tradeCode (when set) and
// contains query, ignoring case
func Filter(records []models.StockRecord, query, tradeCode string) []models.StockRecord {
	query = strings.ToLower(query)
	filtered := make([]models.StockRecord, 0, len(records))
	for _, r := range records {
		if tradeCode != "" && r.TradeCode != tradeCode {
			continue
		}
		if !strings.Contains(strings.ToLower(r.TradeCode), query) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// TotalPages is ceil(count/size). It is 0 when there is nothing to show.
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// PageRows slices out page (1-based) of filtered. Out of range pages are empty.
func PageRows(filtered []models.StockRecord, page, size int) []models.StockRecord {
	if page < 1 || size <= 0 {
		return []models.StockRecord{}
	}
	start := (page - 1) * size
	if start >= len(filtered) {
		return []models.StockRecord{}
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}
	out := make([]models.StockRecord, end-start)
	copy(out, filtered[start:end])
	return out
}

// lastPage treats an empty result as a single empty page
func lastPage(totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	return totalPages
}

func clampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if last := lastPage(totalPages); page > last {
		return last
	}
	return page
}

// BuildView derives the visible page from state
func BuildView(state State, pageSize int) View {
	filtered := Filter(state.Records, state.SearchQuery, state.SelectedTradeCode)
	totalPages := TotalPages(len(filtered), pageSize)
	page := clampPage(state.CurrentPage, totalPages)
	rows := PageRows(filtered, page, pageSize)

	return View{
		Rows:              rows,
		TradeCodes:        TradeCodes(state.Records),
		SearchQuery:       state.SearchQuery,
		SelectedTradeCode: state.SelectedTradeCode,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
			TotalCount: len(filtered),
			HasPrev:    page > 1,
			HasNext:    page < lastPage(totalPages),
		},
		Chart: BuildChart(rows),
	}
}
