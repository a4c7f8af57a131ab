package timelog

import "fmt"

// Dimension selects one chartable view of the entry set.
type Dimension string

const (
	DimHours      Dimension = "hours"      // duration by project
	DimAttributes Dimension = "attributes" // duration by attribute tag
	DimLocation   Dimension = "location"   // duration by location tag
)

// AllDimensions lists every known dimension in display order.
func AllDimensions() []Dimension {
	return []Dimension{DimHours, DimAttributes, DimLocation}
}

// Period is the calendar granularity of the chart's time axis.
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week" // Monday start
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// SortMode orders a chart's category series.
type SortMode string

const (
	SortByTime SortMode = "time" // descending total hours
	SortByName SortMode = "name" // case-insensitive alphabetical
)

// IgnoreRules excludes whole entries by the category values they carry.
// A matching rule removes the entry from every table, not just the value.
type IgnoreRules struct {
	Projects   []string
	Attributes []string
	Locations  []string
}

// Config is the immutable input of one pipeline run.
type Config struct {
	Dimensions []Dimension
	Period     Period
	Sort       SortMode
	Truncate   bool // cut labels at the first "."
	Totals     bool // add per-project grand totals to the report
	Ignore     IgnoreRules
}

func (c Config) selected(d Dimension) bool {
	for _, have := range c.Dimensions {
		if have == d {
			return true
		}
	}
	return false
}

// Validate rejects configurations the pipeline cannot honor: unknown
// dimension, period or sort names, and ignore rules aimed at a dimension
// that is not being plotted.
func (c Config) Validate() error {
	for _, d := range c.Dimensions {
		switch d {
		case DimHours, DimAttributes, DimLocation:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownDimension, string(d))
		}
	}
	switch c.Period {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPeriod, string(c.Period))
	}
	switch c.Sort {
	case SortByTime, SortByName:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSort, string(c.Sort))
	}
	if len(c.Ignore.Projects) > 0 && !c.selected(DimHours) {
		return fmt.Errorf("%w: ignored projects need the %s plot", ErrIgnoreNotPlotted, DimHours)
	}
	if len(c.Ignore.Attributes) > 0 && !c.selected(DimAttributes) {
		return fmt.Errorf("%w: ignored attributes need the %s plot", ErrIgnoreNotPlotted, DimAttributes)
	}
	if len(c.Ignore.Locations) > 0 && !c.selected(DimLocation) {
		return fmt.Errorf("%w: ignored locations need the %s plot", ErrIgnoreNotPlotted, DimLocation)
	}
	return nil
}
