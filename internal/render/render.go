// Package render turns a report's pivot tables into charts: stacked bars
// for the terminal via ntcharts and an HTML page via go-echarts. The TUI
// reuses the bar building and palette here so both views agree.
package render

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/chronograph/internal/timelog"
)

// Options carries presentation choices shared by the renderers.
type Options struct {
	Title     string // page title
	Subtitle  string // shown under chart titles, e.g. the watson command line
	ShowDates bool   // append the covered date range to chart titles
	Width     int    // terminal chart width
	Height    int    // terminal chart height
}

const (
	defaultWidth  = 60
	defaultHeight = 12
)

func (o Options) chartSize() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// Series color cycle; the reserved none category stays muted.
var seriesColors = []string{
	"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12",
	"#2ECC71", "#7AA2F7", "#E67E22", "#9B59B6",
}

const noneColor = "#666666"

// SeriesColor returns the hex color for the i-th ordered category.
func SeriesColor(i int, category string) string {
	if category == timelog.NoneLabel {
		return noneColor
	}
	return seriesColors[i%len(seriesColors)]
}

// SeriesStyle returns the lipgloss style for the i-th ordered category.
func SeriesStyle(i int, category string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(SeriesColor(i, category)))
}

// Bars converts a pivot table into ntcharts bar data: one bar per bucket in
// chronological order, one stacked value per category in display order.
// Quiet buckets come through as zero-height bars so the axis stays honest.
func Bars(pt *timelog.PivotTable, mode timelog.SortMode) []barchart.BarData {
	categories := pt.Categories(mode)
	rows := pt.Rows()

	bars := make([]barchart.BarData, 0, len(rows))
	for _, row := range rows {
		values := make([]barchart.BarValue, 0, len(categories))
		for i, category := range categories {
			values = append(values, barchart.BarValue{
				Name:  category,
				Value: row.Values[category],
				Style: SeriesStyle(i, category),
			})
		}
		bars = append(bars, barchart.BarData{
			Label:  row.Bucket.Label,
			Values: values,
		})
	}
	return bars
}

// Legend renders one colored dot per category, in display order.
func Legend(categories []string) string {
	if len(categories) == 0 {
		return ""
	}
	items := make([]string, 0, len(categories))
	for i, category := range categories {
		dot := SeriesStyle(i, category).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, category))
	}
	return "  " + strings.Join(items, "  ")
}

// chartTitle names one table's chart, with the covered range appended when
// dates are requested.
func chartTitle(pt *timelog.PivotTable, r *timelog.Report, o Options) string {
	title := capitalize(string(pt.Dimension))
	if o.ShowDates {
		if dr := r.DateRange(); dr != "" {
			title += ": " + dr
		}
	}
	return title
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
