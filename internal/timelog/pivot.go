package timelog

import "sort"

// NoneLabel is the reserved category for entries that carry no value in a
// dimension. Keeping those hours visible means the stacks in every table
// reconcile against the same entry set.
const NoneLabel = "none"

// PivotTable accumulates hours per (bucket, category value) for one
// dimension at one period granularity.
type PivotTable struct {
	Dimension Dimension
	Period    Period

	buckets map[int64]Bucket // keyed by Start.Unix()
	cells   map[int64]map[string]float64
	totals  map[string]float64
}

func newPivotTable(d Dimension, p Period) *PivotTable {
	return &PivotTable{
		Dimension: d,
		Period:    p,
		buckets:   make(map[int64]Bucket),
		cells:     make(map[int64]map[string]float64),
		totals:    make(map[string]float64),
	}
}

func (pt *PivotTable) add(b Bucket, category string, hours float64) {
	k := b.Start.Unix()
	if _, ok := pt.buckets[k]; !ok {
		pt.buckets[k] = b
		pt.cells[k] = make(map[string]float64)
	}
	pt.cells[k][category] += hours
	pt.totals[category] += hours
}

// Empty reports whether the table holds no hours at all.
func (pt *PivotTable) Empty() bool {
	return len(pt.buckets) == 0
}

// Value returns the accumulated hours for one bucket and category.
func (pt *PivotTable) Value(b Bucket, category string) float64 {
	cells, ok := pt.cells[b.Start.Unix()]
	if !ok {
		return 0
	}
	return cells[category]
}

// CategoryTotal returns a category's hours summed across all buckets.
func (pt *PivotTable) CategoryTotal(category string) float64 {
	return pt.totals[category]
}

// Total returns every hour in the table.
func (pt *PivotTable) Total() float64 {
	var sum float64
	for _, v := range pt.totals {
		sum += v
	}
	return sum
}

// Buckets returns the chronological time axis with gaps filled: every
// period between the first and last populated bucket appears, so quiet
// stretches show as empty bars instead of vanishing from the chart.
func (pt *PivotTable) Buckets() []Bucket {
	if len(pt.buckets) == 0 {
		return nil
	}
	keys := make([]int64, 0, len(pt.buckets))
	for k := range pt.buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	last := pt.buckets[keys[len(keys)-1]]
	var out []Bucket
	for b := pt.buckets[keys[0]]; !b.Start.After(last.Start); b = b.Next(pt.Period) {
		out = append(out, b)
	}
	return out
}

// Row is one bucket of the table with its per-category hours.
type Row struct {
	Bucket Bucket
	Values map[string]float64
}

// Rows returns the table in chronological order, gaps filled with empty
// rows, ready for plotting.
func (pt *PivotTable) Rows() []Row {
	buckets := pt.Buckets()
	rows := make([]Row, 0, len(buckets))
	for _, b := range buckets {
		values := make(map[string]float64, len(pt.cells[b.Start.Unix()]))
		for category, hours := range pt.cells[b.Start.Unix()] {
			values[category] = hours
		}
		rows = append(rows, Row{Bucket: b, Values: values})
	}
	return rows
}

// categoryValues returns the values an entry contributes to in a dimension.
// An entry with none gets the reserved NoneLabel so its hours stay visible.
func categoryValues(c Classified, d Dimension) []string {
	switch d {
	case DimAttributes:
		if len(c.Attributes) == 0 {
			return []string{NoneLabel}
		}
		return c.Attributes
	case DimLocation:
		if len(c.Locations) == 0 {
			return []string{NoneLabel}
		}
		return c.Locations
	default:
		return []string{c.Project}
	}
}

// aggregate pivots classified entries into hours per (bucket, category).
// An entry carrying several values in a dimension counts fully toward each
// of them, so a multi-tag dimension can sum past the tracked wall time.
func aggregate(entries []Classified, d Dimension, p Period) *PivotTable {
	pt := newPivotTable(d, p)
	for _, c := range entries {
		b := BucketFor(c.Start, p)
		hours := c.Hours()
		for _, category := range categoryValues(c, d) {
			pt.add(b, category, hours)
		}
	}
	return pt
}
