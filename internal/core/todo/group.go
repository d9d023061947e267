package todo

// Section is one category heading on the to-do list.
type Section struct {
	Category Category `json:"category"`
	Items    []Item   `json:"items"`
}

// GroupByCategory splits items into Quiz, HW and Uncategorized sections,
// preserving input order within each. Empty sections are omitted.
func GroupByCategory(items []Item) []Section {
	buckets := make(map[Category][]Item, len(Categories))
	for _, it := range items {
		buckets[it.Category] = append(buckets[it.Category], it)
	}

	sections := make([]Section, 0, len(Categories))
	for _, c := range Categories {
		if len(buckets[c]) == 0 {
			continue
		}
		sections = append(sections, Section{Category: c, Items: buckets[c]})
	}
	return sections
}
