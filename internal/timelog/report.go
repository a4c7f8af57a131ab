package timelog

import (
	"sort"
	"time"
)

// Dropped records a malformed entry that was excluded from aggregation.
type Dropped struct {
	Entry  Entry
	Reason error
}

// CategoryTotal is one line of the per-project grand totals.
type CategoryTotal struct {
	Label string
	Hours float64
}

// Report is the result of one pipeline run: one pivot table per selected
// dimension, in selection order, plus optional grand totals and the list
// of entries that had to be dropped.
type Report struct {
	Config  Config
	Tables  []*PivotTable
	Totals  []CategoryTotal
	Dropped []Dropped
	From    time.Time // first bucket start covered; zero when no entries survive
	To      time.Time // last bucket start covered
}

// Build runs the whole pipeline over a set of raw entries. The Config is
// validated first and a bad one fails before any entry is read. Malformed
// entries are dropped and reported on the Report, never fatal. Entries and
// Config are left untouched.
func Build(cfg Config, entries []Entry) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Report{Config: cfg}

	classified := make([]Classified, 0, len(entries))
	for _, e := range entries {
		if e.Stop.Before(e.Start) {
			r.Dropped = append(r.Dropped, Dropped{Entry: e, Reason: ErrStopBeforeStart})
			continue
		}
		if e.Project == "" {
			r.Dropped = append(r.Dropped, Dropped{Entry: e, Reason: ErrMissingProject})
			continue
		}
		c := Classify(e)
		if !cfg.Ignore.Keep(c) {
			continue
		}
		if cfg.Truncate {
			c = normalize(c)
		}
		classified = append(classified, c)
	}

	for _, d := range cfg.Dimensions {
		r.Tables = append(r.Tables, aggregate(classified, d, cfg.Period))
	}
	if cfg.Totals {
		r.Totals = projectTotals(classified)
	}
	r.From, r.To = bucketRange(classified, cfg.Period)
	return r, nil
}

// projectTotals sums hours per project across the whole range, descending,
// alphabetical on equal hours.
func projectTotals(entries []Classified) []CategoryTotal {
	sums := make(map[string]float64, len(entries))
	for _, c := range entries {
		sums[c.Project] += c.Hours()
	}
	out := make([]CategoryTotal, 0, len(sums))
	for label, hours := range sums {
		out = append(out, CategoryTotal{Label: label, Hours: hours})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hours != out[j].Hours {
			return out[i].Hours > out[j].Hours
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func bucketRange(entries []Classified, p Period) (time.Time, time.Time) {
	var from, to time.Time
	for _, c := range entries {
		b := BucketFor(c.Start, p)
		if from.IsZero() || b.Start.Before(from) {
			from = b.Start
		}
		if to.IsZero() || b.Start.After(to) {
			to = b.Start
		}
	}
	return from, to
}

// DateRange renders the covered bucket span for chart titles, empty when
// the report holds no entries.
func (r *Report) DateRange() string {
	if r.From.IsZero() {
		return ""
	}
	from := BucketFor(r.From, r.Config.Period).Label
	to := BucketFor(r.To, r.Config.Period).Label
	return from + " to " + to
}
