package domain

import "testing"

func countByCategory(links []Link, categoryID string) int {
	n := 0
	for _, l := range links {
		if l.CategoryID == categoryID {
			n++
		}
	}
	return n
}

func TestMergeCategories(t *testing.T) {
	links := []Link{
		{ID: "1", CategoryID: "src"},
		{ID: "2", CategoryID: "dst"},
		{ID: "3", CategoryID: "src"},
		{ID: "4", CategoryID: "other"},
	}
	categories := []Category{
		{ID: "src", Name: "Source"},
		{ID: "dst", Name: "Target"},
		{ID: "other", Name: "Other"},
	}

	srcBefore := countByCategory(links, "src")
	dstBefore := countByCategory(links, "dst")

	newLinks, newCategories := MergeCategories(links, categories, "src", "dst")

	if got := countByCategory(newLinks, "src"); got != 0 {
		t.Errorf("links with source category after merge = %d, want 0", got)
	}
	if got := countByCategory(newLinks, "dst"); got != dstBefore+srcBefore {
		t.Errorf("links with target category after merge = %d, want %d", got, dstBefore+srcBefore)
	}
	if len(newLinks) != len(links) {
		t.Errorf("merge changed link count: %d, want %d", len(newLinks), len(links))
	}

	for _, c := range newCategories {
		if c.ID == "src" {
			t.Errorf("source category still present after merge")
		}
	}
	if len(newCategories) != len(categories)-1 {
		t.Errorf("category count after merge = %d, want %d", len(newCategories), len(categories)-1)
	}
}

func TestMergeCategoriesSelfMergeIsNoop(t *testing.T) {
	links := []Link{{ID: "1", CategoryID: "a"}}
	categories := []Category{{ID: "a", Name: "A"}}

	newLinks, newCategories := MergeCategories(links, categories, "a", "a")
	if len(newLinks) != 1 || len(newCategories) != 1 {
		t.Errorf("self-merge must not change anything, got %d links %d categories", len(newLinks), len(newCategories))
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	links := []Link{
		{ID: "1", CategoryID: "gone"},
		{ID: "2", CategoryID: "kept"},
		{ID: "3", CategoryID: "gone"},
	}
	categories := []Category{
		{ID: "gone", Name: "Gone"},
		{ID: "kept", Name: "Kept"},
	}

	newLinks, newCategories := DeleteCategory(links, categories, "gone")

	if len(newLinks) != 1 || newLinks[0].ID != "2" {
		t.Fatalf("DeleteCategory() must hard-delete exactly the contained links, got %v", newLinks)
	}
	// Deleted links are removed, never reassigned to the default category.
	if got := countByCategory(newLinks, DefaultCategoryID); got != 0 {
		t.Errorf("deleted links were reassigned to %q, want none", DefaultCategoryID)
	}
	if len(newCategories) != 1 || newCategories[0].ID != "kept" {
		t.Errorf("DeleteCategory() categories = %v, want only kept", newCategories)
	}
}
