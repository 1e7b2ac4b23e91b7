package core

// Filter returns the rows of t whose category is in categories and whose
// segment is in segments, keeping their relative order. An empty set on
// either dimension yields an empty table.
func Filter(t Table, categories, segments Set) Table {
	out := make(Table, 0)
	if len(categories) == 0 || len(segments) == 0 {
		return out
	}
	for _, r := range t {
		if categories.Contains(r.Category) && segments.Contains(r.Segment) {
			out = append(out, r)
		}
	}
	return out
}

// Apply filters t with the selection's category and segment sets.
func (s Selection) Apply(t Table) Table {
	return Filter(t, s.Categories, s.Segments)
}
