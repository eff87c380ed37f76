package dashboard

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// ChartPoint is one plotted value. Index points into ChartSeries.Labels.
type ChartPoint struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// ChartSeries holds the close line and volume bars for a page of rows
type ChartSeries struct {
	Labels []string     `json:"labels"`
	Close  []ChartPoint `json:"close"`
	Volume []ChartPoint `json:"volume"`
}

// Empty reports whether there is nothing to plot
func (c ChartSeries) Empty() bool {
	return len(c.Close) == 0 && len(c.Volume) == 0
}

// BuildChart converts a page of rows into numeric series labelled by date.
// Values that do not parse as numbers are left out of their series.
func BuildChart(rows []models.StockRecord) ChartSeries {
	chart := ChartSeries{
		Labels: make([]string, 0, len(rows)),
		Close:  make([]ChartPoint, 0, len(rows)),
		Volume: make([]ChartPoint, 0, len(rows)),
	}
	for i, r := range rows {
		chart.Labels = append(chart.Labels, r.Date)
		if v, ok := parseNumber(r.Close); ok {
			chart.Close = append(chart.Close, ChartPoint{Index: i, Value: v})
		}
		if v, ok := parseNumber(r.Volume); ok {
			chart.Volume = append(chart.Volume, ChartPoint{Index: i, Value: v})
		}
	}
	return chart
}

func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}
