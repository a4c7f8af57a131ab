// Package timelog turns raw time-tracking entries into pivoted hour series
// ready for charting. The pipeline is fixed: classify tags, filter whole
// entries, normalize labels, bucket by calendar period, aggregate hours per
// category, order series for display. Every stage is pure; the input slice
// and the Config are never mutated.
package timelog

import (
	"strings"
	"time"
)

// Entry is one recorded span of tracked time, as delivered by a source.
// Sources only decode shape; semantic checks happen in Build.
type Entry struct {
	Start   time.Time
	Stop    time.Time
	Project string
	Tags    []string
}

// Duration returns the tracked span length.
func (e Entry) Duration() time.Duration {
	return e.Stop.Sub(e.Start)
}

// Hours returns the tracked span in fractional hours.
func (e Entry) Hours() float64 {
	return e.Duration().Hours()
}

// LocationMarker prefixes tags that name a place rather than an activity.
const LocationMarker = "@"

// Classified is an Entry whose tags have been split into attribute and
// location values. Both are sets: duplicates collapse, first occurrence
// wins the position, and locations are stored without the marker.
type Classified struct {
	Entry
	Attributes []string
	Locations  []string
}

// Classify splits an entry's tags by the marker rule: a tag starting with
// "@" is a location, anything else is an attribute. Empty tags are dropped.
func Classify(e Entry) Classified {
	c := Classified{Entry: e}
	seenAttr := make(map[string]bool, len(e.Tags))
	seenLoc := make(map[string]bool)
	for _, tag := range e.Tags {
		if tag == "" {
			continue
		}
		if strings.HasPrefix(tag, LocationMarker) {
			loc := strings.TrimPrefix(tag, LocationMarker)
			if !seenLoc[loc] {
				seenLoc[loc] = true
				c.Locations = append(c.Locations, loc)
			}
			continue
		}
		if !seenAttr[tag] {
			seenAttr[tag] = true
			c.Attributes = append(c.Attributes, tag)
		}
	}
	return c
}
