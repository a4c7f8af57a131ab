package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/chronograph/internal/render"
	"github.com/sadopc/chronograph/internal/timelog"
)

// chartModel renders one pivot table as a stacked bar chart with a legend
// and a per-category summary.
type chartModel struct {
	table  *timelog.PivotTable
	sort   timelog.SortMode
	width  int
	height int

	chart barchart.Model
}

func newChartModel(pt *timelog.PivotTable, sort timelog.SortMode) chartModel {
	c := chartModel{
		table: pt,
		sort:  sort,
		chart: barchart.New(60, 12),
	}
	c.buildChart()
	return c
}

func (c *chartModel) setSize(w, h int) {
	c.width = w
	c.height = h
	c.buildChart()
}

func (c *chartModel) setSort(mode timelog.SortMode) {
	c.sort = mode
	c.buildChart()
}

func (c *chartModel) buildChart() {
	chartWidth := c.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if c.height > 30 {
		chartHeight = 16
	}

	c.chart = barchart.New(chartWidth, chartHeight)
	c.chart.PushAll(render.Bars(c.table, c.sort))
	c.chart.Draw()
}

func (c chartModel) view() string {
	w := c.width - 4
	if w < 24 {
		w = 24
	}

	if c.table.Empty() {
		return panelStyle.Width(w).Render(mutedStyle.Render("No data for this period"))
	}

	legend := render.Legend(c.table.Categories(c.sort))
	table := c.renderSummaryTable()

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, c.chart.View(), "", legend, "", table),
	)
}

func (c chartModel) renderSummaryTable() string {
	total := c.table.Total()

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-24s %10s %7s", "Category", "Hours", "Share")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(max(c.width-10, 20), 43))))

	for i, category := range c.table.Categories(c.sort) {
		dot := render.SeriesStyle(i, category).Render("●")
		hours := c.table.CategoryTotal(category)
		share := 0.0
		if total > 0 {
			share = hours / total * 100
		}
		rows = append(rows, fmt.Sprintf("  %s %-22s %10s %6.1f%%",
			dot, category, render.FormatHours(hours), share,
		))
	}
	return strings.Join(rows, "\n")
}

// totalsModel renders the per-project grand totals, one bar per project.
type totalsModel struct {
	totals []timelog.CategoryTotal
	width  int
	height int

	chart barchart.Model
}

func newTotalsModel(totals []timelog.CategoryTotal) totalsModel {
	m := totalsModel{
		totals: totals,
		chart:  barchart.New(60, 12),
	}
	m.buildChart()
	return m
}

func (m *totalsModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildChart()
}

func (m *totalsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	bars := make([]barchart.BarData, 0, len(m.totals))
	for i, ct := range m.totals {
		bars = append(bars, barchart.BarData{
			Label: ct.Label,
			Values: []barchart.BarValue{{
				Name:  ct.Label,
				Value: ct.Hours,
				Style: render.SeriesStyle(i, ct.Label),
			}},
		})
	}
	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m totalsModel) view() string {
	w := m.width - 4
	if w < 24 {
		w = 24
	}

	if len(m.totals) == 0 {
		return panelStyle.Width(w).Render(mutedStyle.Render("No data for this period"))
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-24s %10s", "Project", "Hours")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(max(m.width-10, 20), 35))))
	for i, ct := range m.totals {
		dot := render.SeriesStyle(i, ct.Label).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-22s %10s", dot, ct.Label, render.FormatHours(ct.Hours)))
	}
	table := strings.Join(rows, "\n")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, m.chart.View(), "", table),
	)
}
