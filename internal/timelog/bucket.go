package timelog

import (
	"fmt"
	"time"
)

// Bucket is one calendar period on the chart's time axis. Start is both
// identity and sort key; Label is what the axis shows.
type Bucket struct {
	Start time.Time
	Label string
}

// BucketFor maps an instant to its enclosing calendar period. Entries are
// bucketed by start time only; a span crossing a boundary stays whole in
// its start bucket.
func BucketFor(t time.Time, p Period) Bucket {
	switch p {
	case PeriodWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		weekday := day.Weekday()
		if weekday == time.Sunday {
			weekday = 7
		}
		start := day.AddDate(0, 0, -int(weekday-time.Monday))
		return Bucket{Start: start, Label: start.Format("2006-01-02")}
	case PeriodMonth:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		return Bucket{Start: start, Label: start.Format("2006-01")}
	case PeriodQuarter:
		q := (int(t.Month()) - 1) / 3
		start := time.Date(t.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, t.Location())
		return Bucket{Start: start, Label: fmt.Sprintf("%d-Q%d", start.Year(), q+1)}
	case PeriodYear:
		start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
		return Bucket{Start: start, Label: start.Format("2006")}
	default: // day
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return Bucket{Start: start, Label: start.Format("2006-01-02")}
	}
}

// Next returns the bucket immediately after b at the same granularity.
func (b Bucket) Next(p Period) Bucket {
	switch p {
	case PeriodWeek:
		return BucketFor(b.Start.AddDate(0, 0, 7), p)
	case PeriodMonth:
		return BucketFor(b.Start.AddDate(0, 1, 0), p)
	case PeriodQuarter:
		return BucketFor(b.Start.AddDate(0, 3, 0), p)
	case PeriodYear:
		return BucketFor(b.Start.AddDate(1, 0, 0), p)
	default:
		return BucketFor(b.Start.AddDate(0, 0, 1), p)
	}
}
