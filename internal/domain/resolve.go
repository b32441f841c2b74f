package domain

import "strings"

// quickAddKeywords are matched (case-insensitive, substring) against
// category names when a quick-add payload carries no usable categoryId.
var quickAddKeywords = []string{"inbox", "temp", "later", "collect"}

// ResolveCategory picks the category a quick-added link lands in.
//
// Resolution order:
//  1. explicit id, when it matches an existing category
//  2. first category whose name contains one of the quick-add keywords
//  3. the reserved default category, when present
//  4. the first category in the list
//  5. a synthesized default reference when no categories exist at all
//     (no Category record is created)
func ResolveCategory(categories []Category, explicitID string) (id, name string) {
	if explicitID != "" {
		for _, c := range categories {
			if c.ID == explicitID {
				return c.ID, c.Name
			}
		}
	}

	if len(categories) == 0 {
		return DefaultCategoryID, "Default"
	}

	for _, c := range categories {
		lower := strings.ToLower(c.Name)
		for _, kw := range quickAddKeywords {
			if strings.Contains(lower, kw) {
				return c.ID, c.Name
			}
		}
	}

	for _, c := range categories {
		if c.ID == DefaultCategoryID {
			return c.ID, c.Name
		}
	}

	return categories[0].ID, categories[0].Name
}
