package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/chronograph/internal/timelog"
)

// App is the root Bubble Tea model: one tab per chart, plus a totals tab
// when the report carries grand totals. The sort mode can be flipped live.
type App struct {
	report *timelog.Report

	width  int
	height int

	tabs      []string
	activeTab int
	sort      timelog.SortMode
	showHelp  bool

	charts []chartModel
	totals totalsModel

	help help.Model
}

func NewApp(report *timelog.Report) App {
	h := help.New()
	h.ShowAll = false

	a := App{
		report: report,
		sort:   report.Config.Sort,
		help:   h,
	}
	for _, pt := range report.Tables {
		a.tabs = append(a.tabs, tabName(pt.Dimension))
		a.charts = append(a.charts, newChartModel(pt, a.sort))
	}
	if len(report.Totals) > 0 {
		a.tabs = append(a.tabs, "Totals")
		a.totals = newTotalsModel(report.Totals)
	}
	return a
}

func tabName(d timelog.Dimension) string {
	switch d {
	case timelog.DimHours:
		return "Hours"
	case timelog.DimAttributes:
		return "Attributes"
	case timelog.DimLocation:
		return "Location"
	default:
		return string(d)
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		for i := range a.charts {
			a.charts[i].setSize(a.width, contentHeight)
		}
		a.totals.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Sort):
			a.toggleSort()
			return a, nil
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Right):
			a.selectTab(a.activeTab + 1)
			return a, nil
		case key.Matches(msg, keys.Left):
			a.selectTab(a.activeTab - 1)
			return a, nil
		case key.Matches(msg, keys.Jump):
			a.selectTab(int(msg.String()[0] - '1'))
			return a, nil
		}
	}

	return a, nil
}

func (a *App) selectTab(i int) {
	n := len(a.tabs)
	if n == 0 {
		return
	}
	a.activeTab = (i%n + n) % n
}

func (a *App) toggleSort() {
	if a.sort == timelog.SortByName {
		a.sort = timelog.SortByTime
	} else {
		a.sort = timelog.SortByName
	}
	for i := range a.charts {
		a.charts[i].setSort(a.sort)
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()
	content := a.activeContent()

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) activeContent() string {
	if a.activeTab < len(a.charts) {
		return a.charts[a.activeTab].view()
	}
	return a.totals.view()
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range a.tabs {
		if i == a.activeTab {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("chronograph")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	var info []string
	info = append(info, "sort: "+string(a.sort))
	if dr := a.report.DateRange(); dr != "" {
		info = append(info, dr)
	}
	if n := len(a.report.Dropped); n > 0 {
		info = append(info, fmt.Sprintf("%d dropped", n))
	}
	right := mutedStyle.Render(strings.Join(info, "  "))

	left := footerStyle.Render(helpView)
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
