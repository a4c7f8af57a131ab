package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/chronograph/internal/timelog"
)

var (
	termTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C0CAF5"))
	termMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// WriteTerm prints every table as a stacked bar chart with a legend and a
// per-category summary, then the grand totals when the report carries them.
// This is the non-interactive path, for piping or --no-tui runs.
func WriteTerm(w io.Writer, r *timelog.Report, o Options) error {
	width, height := o.chartSize()

	for _, pt := range r.Tables {
		fmt.Fprintln(w, termTitleStyle.Render(chartTitle(pt, r, o)))
		if o.Subtitle != "" {
			fmt.Fprintln(w, termMutedStyle.Render("  "+o.Subtitle))
		}
		if pt.Empty() {
			fmt.Fprintln(w, termMutedStyle.Render("  No data for this period"))
			fmt.Fprintln(w)
			continue
		}

		chart := barchart.New(width, height)
		chart.PushAll(Bars(pt, r.Config.Sort))
		chart.Draw()

		fmt.Fprintln(w, chart.View())
		fmt.Fprintln(w, Legend(pt.Categories(r.Config.Sort)))
		fmt.Fprintln(w)
		writeCategorySummary(w, pt, r.Config.Sort)
		fmt.Fprintln(w)
	}

	if len(r.Totals) > 0 {
		writeTotals(w, r.Totals)
	}
	return nil
}

func writeCategorySummary(w io.Writer, pt *timelog.PivotTable, mode timelog.SortMode) {
	total := pt.Total()
	fmt.Fprintln(w, termMutedStyle.Render(fmt.Sprintf("  %-24s %10s %7s", "Category", "Hours", "Share")))
	fmt.Fprintln(w, termMutedStyle.Render("  "+strings.Repeat("─", 43)))
	for i, category := range pt.Categories(mode) {
		dot := SeriesStyle(i, category).Render("●")
		hours := pt.CategoryTotal(category)
		share := 0.0
		if total > 0 {
			share = hours / total * 100
		}
		fmt.Fprintf(w, "  %s %-22s %10s %6.1f%%\n", dot, category, FormatHours(hours), share)
	}
}

func writeTotals(w io.Writer, totals []timelog.CategoryTotal) {
	fmt.Fprintln(w, termTitleStyle.Render("Totals"))
	fmt.Fprintln(w, termMutedStyle.Render(fmt.Sprintf("  %-24s %10s", "Project", "Hours")))
	fmt.Fprintln(w, termMutedStyle.Render("  "+strings.Repeat("─", 35)))
	for _, ct := range totals {
		fmt.Fprintf(w, "  %-24s %10s\n", ct.Label, FormatHours(ct.Hours))
	}
}

// FormatHours renders fractional hours as "12h30m", "45m", or "0m".
func FormatHours(hours float64) string {
	minutes := int(hours*60 + 0.5)
	h := minutes / 60
	m := minutes % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
