package domain

// MoveCategory moves the category at oldIndex to newIndex (splice-move: the
// element is removed and reinserted, the relative order of the others is
// preserved). Out-of-range indexes leave the slice untouched.
func MoveCategory(categories []Category, oldIndex, newIndex int) []Category {
	if oldIndex < 0 || oldIndex >= len(categories) ||
		newIndex < 0 || newIndex >= len(categories) || oldIndex == newIndex {
		return categories
	}

	out := make([]Category, 0, len(categories))
	out = append(out, categories...)
	moved := out[oldIndex]
	out = append(out[:oldIndex], out[oldIndex+1:]...)
	out = append(out[:newIndex], append([]Category{moved}, out[newIndex:]...)...)
	return out
}

// ReorderLinks moves a link within one category from oldIndex to newIndex
// (indexes are positions inside that category's subset, in current slice
// order). The moved subset is stamped with contiguous 0-indexed Order
// values and recombined with the untouched remainder. Order is
// authoritative only within a single category's scope.
func ReorderLinks(links []Link, categoryID string, oldIndex, newIndex int) []Link {
	catLinks := make([]Link, 0)
	others := make([]Link, 0, len(links))
	for _, l := range links {
		if l.CategoryID == categoryID {
			catLinks = append(catLinks, l)
		} else {
			others = append(others, l)
		}
	}

	if oldIndex < 0 || oldIndex >= len(catLinks) ||
		newIndex < 0 || newIndex >= len(catLinks) {
		return links
	}

	moved := catLinks[oldIndex]
	catLinks = append(catLinks[:oldIndex], catLinks[oldIndex+1:]...)
	catLinks = append(catLinks[:newIndex], append([]Link{moved}, catLinks[newIndex:]...)...)

	for i := range catLinks {
		order := i
		catLinks[i].Order = &order
	}

	return append(catLinks, others...)
}
