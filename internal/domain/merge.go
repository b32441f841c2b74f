package domain

// MergeCategories reassigns every link from the source category to the
// target, then removes the source category. Merging a category into itself
// is a no-op. No conflict resolution is needed: links carry a single
// categoryId and category names are not required to be unique.
func MergeCategories(links []Link, categories []Category, sourceID, targetID string) ([]Link, []Category) {
	if sourceID == targetID {
		return links, categories
	}

	newLinks := make([]Link, 0, len(links))
	for _, l := range links {
		if l.CategoryID == sourceID {
			l.CategoryID = targetID
		}
		newLinks = append(newLinks, l)
	}

	newCategories := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.ID != sourceID {
			newCategories = append(newCategories, c)
		}
	}

	return newLinks, newCategories
}

// DeleteCategory removes the category and hard-deletes every link it
// contains. Deletion is immediate and irreversible at the data-model level;
// the caller is expected to have confirmed.
func DeleteCategory(links []Link, categories []Category, categoryID string) ([]Link, []Category) {
	newLinks := make([]Link, 0, len(links))
	for _, l := range links {
		if l.CategoryID != categoryID {
			newLinks = append(newLinks, l)
		}
	}

	newCategories := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.ID != categoryID {
			newCategories = append(newCategories, c)
		}
	}

	return newLinks, newCategories
}
