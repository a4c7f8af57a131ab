package timelog

// Keep reports whether an entry survives the ignore rules. Rules match the
// values as classified, before any truncation, and a hit drops the whole
// entry from every table.
func (r IgnoreRules) Keep(c Classified) bool {
	for _, p := range r.Projects {
		if c.Project == p {
			return false
		}
	}
	for _, a := range r.Attributes {
		if contains(c.Attributes, a) {
			return false
		}
	}
	for _, l := range r.Locations {
		if contains(c.Locations, l) {
			return false
		}
	}
	return true
}

// Empty reports whether no rules are set.
func (r IgnoreRules) Empty() bool {
	return len(r.Projects) == 0 && len(r.Attributes) == 0 && len(r.Locations) == 0
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
