package render

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sadopc/chronograph/internal/timelog"
)

const (
	htmlChartWidth  = "1100px"
	htmlChartHeight = "480px"
)

// WriteHTML renders every table as a stacked bar chart, plus the totals
// chart when the report carries totals, onto a single HTML page.
func WriteHTML(r *timelog.Report, o Options, path string) error {
	page := components.NewPage()
	if o.Title != "" {
		page.PageTitle = o.Title
	}
	page.SetLayout(components.PageCenterLayout)

	for _, pt := range r.Tables {
		page.AddCharts(htmlBarChart(pt, r, o))
	}
	if len(r.Totals) > 0 {
		page.AddCharts(htmlTotalsChart(r, o))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart page: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return nil
}

func htmlBarChart(pt *timelog.PivotTable, r *timelog.Report, o Options) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: htmlChartWidth, Height: htmlChartHeight}),
		charts.WithTitleOpts(opts.Title{Title: chartTitle(pt, r, o), Subtitle: o.Subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "28px"}),
	)

	rows := pt.Rows()
	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, row.Bucket.Label)
	}
	bar.SetXAxis(labels)

	for i, category := range pt.Categories(r.Config.Sort) {
		data := make([]opts.BarData, 0, len(rows))
		for _, row := range rows {
			data = append(data, opts.BarData{Value: row.Values[category]})
		}
		bar.AddSeries(category, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "total"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: SeriesColor(i, category)}),
		)
	}
	return bar
}

func htmlTotalsChart(r *timelog.Report, o Options) *charts.Bar {
	title := "Totals"
	if o.ShowDates {
		if dr := r.DateRange(); dr != "" {
			title += ": " + dr
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: htmlChartWidth, Height: htmlChartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: o.Subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(r.Totals))
	data := make([]opts.BarData, 0, len(r.Totals))
	for i, ct := range r.Totals {
		labels = append(labels, ct.Label)
		data = append(data, opts.BarData{
			Value:     ct.Hours,
			ItemStyle: &opts.ItemStyle{Color: SeriesColor(i, ct.Label)},
		})
	}
	bar.SetXAxis(labels)
	bar.AddSeries("hours", data)
	return bar
}
