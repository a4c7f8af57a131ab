package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/sadopc/chronograph/internal/timelog"
)

// promptOptions lets the user adjust the chart options in a form before the
// run. Flag and config values are the form's starting point.
func promptOptions(o *graphOptions) error {
	selected := make([]string, 0, len(timelog.AllDimensions()))
	for _, d := range expandDimensions(o.plots) {
		selected = append(selected, string(d))
	}
	o.plots = selected

	plotOptions := make([]huh.Option[string], 0, len(timelog.AllDimensions()))
	for _, d := range timelog.AllDimensions() {
		plotOptions = append(plotOptions, huh.NewOption(string(d), string(d)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Charts").
				Options(plotOptions...).
				Value(&o.plots),
			huh.NewSelect[string]().
				Title("Group by").
				Options(
					huh.NewOption("Day", "day"),
					huh.NewOption("Week", "week"),
					huh.NewOption("Month", "month"),
					huh.NewOption("Quarter", "quarter"),
					huh.NewOption("Year", "year"),
				).
				Value(&o.period),
			huh.NewSelect[string]().
				Title("Order series").
				Options(
					huh.NewOption("Most hours first", "time"),
					huh.NewOption("By name", "name"),
				).
				Value(&o.sort),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Merge subprojects?").
				Description("Cuts names at the first dot, so api.auth counts as api").
				Value(&o.truncate),
			huh.NewConfirm().
				Title("Add a totals chart?").
				Value(&o.totals),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("options form: %w", err)
	}
	return nil
}
