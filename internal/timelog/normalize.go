package timelog

import "strings"

// Truncate cuts a label at its first ".", so "voyager2.launch" and
// "voyager2.operations" both become "voyager2". Labels without a dot pass
// through unchanged, which makes the cut idempotent.
func Truncate(label string) string {
	if i := strings.IndexByte(label, '.'); i >= 0 {
		return label[:i]
	}
	return label
}

// normalize applies Truncate to the project and to every tag value. Values
// that collapse to the same label merge here, before any hours are summed.
func normalize(c Classified) Classified {
	c.Project = Truncate(c.Project)
	c.Attributes = truncateAll(c.Attributes)
	c.Locations = truncateAll(c.Locations)
	return c
}

func truncateAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		t := Truncate(v)
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
