package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/chronograph/internal/timelog"
)

// ============================================================
// Test helpers
// ============================================================

func testReport(t *testing.T) *timelog.Report {
	t.Helper()

	cfg := timelog.Config{
		Dimensions: timelog.AllDimensions(),
		Period:     timelog.PeriodDay,
		Sort:       timelog.SortByName,
		Totals:     true,
	}
	day := func(d int, h int) time.Time {
		return time.Date(2024, 3, d, h, 0, 0, 0, time.UTC)
	}
	entries := []timelog.Entry{
		{Start: day(1, 9), Stop: day(1, 11), Project: "apollo11", Tags: []string{"eva", "@moon"}},
		{Start: day(2, 9), Stop: day(2, 10), Project: "voyager2"},
		{Start: day(2, 12), Stop: day(2, 11), Project: "bogus"}, // dropped
	}

	r, err := timelog.Build(cfg, entries)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	return r
}

func sizedApp(t *testing.T) App {
	t.Helper()
	app := NewApp(testReport(t))
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(App)
}

func keyPress(keys string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app := NewApp(testReport(t))

	want := []string{"Hours", "Attributes", "Location", "Totals"}
	if len(app.tabs) != len(want) {
		t.Fatalf("got %d tabs, want %d", len(app.tabs), len(want))
	}
	for i, name := range want {
		if app.tabs[i] != name {
			t.Fatalf("tab %d = %q, want %q", i, app.tabs[i], name)
		}
	}
	if app.activeTab != 0 {
		t.Fatal("first tab should be active")
	}
	if app.sort != timelog.SortByName {
		t.Fatalf("sort = %s, want the report's mode", app.sort)
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
}

func TestNewAppWithoutTotals(t *testing.T) {
	cfg := timelog.Config{
		Dimensions: []timelog.Dimension{timelog.DimHours},
		Period:     timelog.PeriodDay,
		Sort:       timelog.SortByTime,
	}
	r, err := timelog.Build(cfg, nil)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	app := NewApp(r)
	if len(app.tabs) != 1 || app.tabs[0] != "Hours" {
		t.Fatalf("tabs = %v, want [Hours]", app.tabs)
	}
}

func TestTabName(t *testing.T) {
	tests := []struct {
		d    timelog.Dimension
		want string
	}{
		{timelog.DimHours, "Hours"},
		{timelog.DimAttributes, "Attributes"},
		{timelog.DimLocation, "Location"},
	}
	for _, tt := range tests {
		if got := tabName(tt.d); got != tt.want {
			t.Errorf("tabName(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestAppTabCycling(t *testing.T) {
	app := sizedApp(t)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeTab != 1 {
		t.Fatalf("after tab: activeTab = %d, want 1", app.activeTab)
	}

	// Wrap around the end.
	app.activeTab = len(app.tabs) - 1
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeTab != 0 {
		t.Fatalf("after wrap: activeTab = %d, want 0", app.activeTab)
	}

	// Left wraps backwards.
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyLeft})
	app = model.(App)
	if app.activeTab != len(app.tabs)-1 {
		t.Fatalf("after left: activeTab = %d, want last", app.activeTab)
	}
}

func TestAppJumpKeys(t *testing.T) {
	app := sizedApp(t)

	model, _ := app.Update(keyPress("3"))
	app = model.(App)
	if app.activeTab != 2 {
		t.Fatalf("after 3: activeTab = %d, want 2", app.activeTab)
	}

	model, _ = app.Update(keyPress("1"))
	app = model.(App)
	if app.activeTab != 0 {
		t.Fatalf("after 1: activeTab = %d, want 0", app.activeTab)
	}
}

func TestAppSortToggle(t *testing.T) {
	app := sizedApp(t)

	model, _ := app.Update(keyPress("s"))
	app = model.(App)
	if app.sort != timelog.SortByTime {
		t.Fatalf("sort = %s, want time", app.sort)
	}
	for i := range app.charts {
		if app.charts[i].sort != timelog.SortByTime {
			t.Fatalf("chart %d sort not flipped", i)
		}
	}

	model, _ = app.Update(keyPress("s"))
	app = model.(App)
	if app.sort != timelog.SortByName {
		t.Fatalf("sort = %s, want name after second toggle", app.sort)
	}
}

func TestAppQuit(t *testing.T) {
	app := sizedApp(t)

	_, cmd := app.Update(keyPress("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}
}

func TestAppHelpToggle(t *testing.T) {
	app := sizedApp(t)

	model, _ := app.Update(keyPress("?"))
	app = model.(App)
	if !app.showHelp {
		t.Fatal("? should show full help")
	}

	model, _ = app.Update(keyPress("?"))
	app = model.(App)
	if app.showHelp {
		t.Fatal("? again should hide it")
	}
}

func TestAppLoadingState(t *testing.T) {
	app := NewApp(testReport(t))
	if got := app.View(); got != "Loading..." {
		t.Fatalf("unsized view = %q, want Loading...", got)
	}
}

func TestAppViewContainsTabs(t *testing.T) {
	app := sizedApp(t)
	view := app.View()

	for _, want := range []string{"chronograph", "Hours", "Attributes", "Location", "Totals"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestAppFooterShowsRangeAndDropped(t *testing.T) {
	app := sizedApp(t)
	footer := app.renderFooter()

	if !strings.Contains(footer, "2024-03-01 to 2024-03-02") {
		t.Fatalf("footer missing date range: %q", footer)
	}
	if !strings.Contains(footer, "1 dropped") {
		t.Fatalf("footer missing dropped count: %q", footer)
	}
	if !strings.Contains(footer, "sort: name") {
		t.Fatalf("footer missing sort mode: %q", footer)
	}
}

func TestAppTotalsTab(t *testing.T) {
	app := sizedApp(t)
	app.activeTab = len(app.tabs) - 1

	content := app.activeContent()
	for _, want := range []string{"apollo11", "voyager2", "Project"} {
		if !strings.Contains(content, want) {
			t.Fatalf("totals tab missing %q", want)
		}
	}
}

// ============================================================
// Chart model
// ============================================================

func TestChartModelSummary(t *testing.T) {
	r := testReport(t)
	c := newChartModel(r.Tables[0], timelog.SortByName)
	c.setSize(100, 35)

	view := c.view()
	for _, want := range []string{"apollo11", "voyager2", "Category", "Share", "●"} {
		if !strings.Contains(view, want) {
			t.Fatalf("chart view missing %q", want)
		}
	}
}

func TestChartModelEmpty(t *testing.T) {
	cfg := timelog.Config{
		Dimensions: []timelog.Dimension{timelog.DimHours},
		Period:     timelog.PeriodDay,
		Sort:       timelog.SortByName,
	}
	r, err := timelog.Build(cfg, nil)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	c := newChartModel(r.Tables[0], timelog.SortByName)
	c.setSize(100, 35)
	if !strings.Contains(c.view(), "No data for this period") {
		t.Fatal("empty chart should say so")
	}
}

func TestChartModelSortChangesOrder(t *testing.T) {
	cfg := timelog.Config{
		Dimensions: []timelog.Dimension{timelog.DimHours},
		Period:     timelog.PeriodDay,
		Sort:       timelog.SortByName,
	}
	day := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []timelog.Entry{
		{Start: day, Stop: day.Add(3 * time.Hour), Project: "zebra"},
		{Start: day, Stop: day.Add(time.Hour), Project: "apple"},
	}
	r, err := timelog.Build(cfg, entries)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	c := newChartModel(r.Tables[0], timelog.SortByName)
	c.setSize(100, 35)

	if got := c.table.Categories(timelog.SortByName)[0]; got != "apple" {
		t.Fatalf("by name first = %q, want apple", got)
	}
	if got := c.table.Categories(timelog.SortByTime)[0]; got != "zebra" {
		t.Fatalf("by time first = %q, want zebra", got)
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestMinMax(t *testing.T) {
	if min(3, 5) != 3 {
		t.Fatal("min(3,5) should be 3")
	}
	if min(5, 3) != 3 {
		t.Fatal("min(5,3) should be 3")
	}
	if max(3, 5) != 5 {
		t.Fatal("max(3,5) should be 5")
	}
	if max(5, 3) != 5 {
		t.Fatal("max(5,3) should be 5")
	}
}
