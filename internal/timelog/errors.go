package timelog

import "errors"

// Invalid-configuration conditions. These are reported by Config.Validate
// before any entries are touched; the pipeline never runs on a bad Config.
var (
	ErrUnknownDimension = errors.New("unknown plot dimension")
	ErrUnknownPeriod    = errors.New("unknown period")
	ErrUnknownSort      = errors.New("unknown sort mode")
	ErrIgnoreNotPlotted = errors.New("ignore rule targets a dimension that is not plotted")
)

// Per-entry drop reasons. A malformed entry is excluded from aggregation and
// reported on the Report instead of failing the whole run.
var (
	ErrStopBeforeStart = errors.New("stop before start")
	ErrMissingProject  = errors.New("missing project")
)
