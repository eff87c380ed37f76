// Package render draws dashboard views for the terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trogers1052/stock-dashboard/internal/dashboard"
)

var (
	closeLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	volumeBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
)

// Table renders the rows of view with a pagination footer
func Table(view dashboard.View) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Date", "Trade Code", "High", "Low", "Open", "Close", "Volume"})
	for _, r := range view.Rows {
		t.AppendRow(table.Row{r.ID, r.Date, r.TradeCode, r.High, r.Low, r.Open, r.Close, r.Volume})
	}

	p := view.Pagination
	pages := p.TotalPages
	if pages < 1 {
		pages = 1
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("page %d/%d", p.Page, pages), "", "", "", "", fmt.Sprintf("%d rows", p.TotalCount)})

	var b strings.Builder
	if len(view.Rows) == 0 {
		b.WriteString(text.FgYellow.Sprint("No records match the current filter.") + "\n")
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// CloseChart draws the close series as a braille line chart. It returns a
// notice instead when there are fewer than two points to connect.
func CloseChart(chart dashboard.ChartSeries, width, height int) string {
	if len(chart.Close) < 2 {
		return "No data available for the close chart.\n"
	}

	minY, maxY := chart.Close[0].Value, chart.Close[0].Value
	for _, p := range chart.Close {
		if p.Value < minY {
			minY = p.Value
		}
		if p.Value > maxY {
			maxY = p.Value
		}
	}
	margin := (maxY - minY) * 0.1
	if margin == 0 {
		margin = 1
	}

	labels := chart.Labels
	xLabel := func(_ int, v float64) string {
		i := int(v)
		if i < 0 || i >= len(labels) {
			return ""
		}
		return labels[i]
	}
	yLabel := func(_ int, v float64) string {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}

	lc := linechart.New(width, height,
		0, float64(len(labels)-1),
		minY-margin, maxY+margin,
		linechart.WithXYSteps(4, 4),
		linechart.WithXLabelFormatter(xLabel),
		linechart.WithYLabelFormatter(yLabel),
		linechart.WithStyles(lipgloss.Style{}, lipgloss.Style{}, closeLineStyle),
	)

	for i := 0; i < len(chart.Close)-1; i++ {
		p1 := canvas.Float64Point{X: float64(chart.Close[i].Index), Y: chart.Close[i].Value}
		p2 := canvas.Float64Point{X: float64(chart.Close[i+1].Index), Y: chart.Close[i+1].Value}
		lc.DrawBrailleLineWithStyle(p1, p2, closeLineStyle)
	}
	lc.DrawXYAxisAndLabel()

	return lc.View() + "\n"
}

// VolumeChart draws one bar per row of the page from the volume series,
// labelled with the day of the row's date
func VolumeChart(chart dashboard.ChartSeries, width, height int) string {
	if len(chart.Volume) == 0 {
		return "No data available for the volume chart.\n"
	}

	data := make([]barchart.BarData, 0, len(chart.Volume))
	for _, p := range chart.Volume {
		label := ""
		if p.Index >= 0 && p.Index < len(chart.Labels) {
			label = dayLabel(chart.Labels[p.Index])
		}
		data = append(data, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: "volume", Value: p.Value, Style: volumeBarStyle},
			},
		})
	}

	bc := barchart.New(width, height,
		barchart.WithDataSet(data),
		barchart.WithBarGap(1),
	)
	bc.Draw()

	return bc.View() + "\n"
}

// dayLabel shortens a YYYY-MM-DD date to its day
func dayLabel(date string) string {
	if i := strings.LastIndex(date, "-"); i >= 0 && i < len(date)-1 {
		return date[i+1:]
	}
	return date
}
