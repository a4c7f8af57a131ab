package timelog

import (
	"sort"
	"strings"
)

// Categories returns the table's series in display order. SortByName is
// case-insensitive alphabetical with a byte-order tie-break so equal folds
// stay deterministic; SortByTime is descending total hours with the same
// alphabetical rule breaking ties. The reserved none category always lands
// last regardless of mode.
func (pt *PivotTable) Categories(mode SortMode) []string {
	categories := make([]string, 0, len(pt.totals))
	for c := range pt.totals {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		a, b := categories[i], categories[j]
		if an, bn := a == NoneLabel, b == NoneLabel; an != bn {
			return bn
		}
		if mode == SortByTime && pt.totals[a] != pt.totals[b] {
			return pt.totals[a] > pt.totals[b]
		}
		la, lb := strings.ToLower(a), strings.ToLower(b)
		if la != lb {
			return la < lb
		}
		return a < b
	})
	return categories
}
