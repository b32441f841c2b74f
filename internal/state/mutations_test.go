package state

import (
	"testing"

	"github.com/cloudnav/cloudnav/internal/domain"
	"github.com/cloudnav/cloudnav/internal/logger"
)

func seeded() *Store {
	s := New(&fakeCache{}, &fakeRemote{}, &fakeCreds{}, logger.Nop(), WithClock(fixedClock()))
	s.UpdateData(
		[]domain.Link{
			{ID: "l1", Title: "GitHub", URL: "https://github.com", CategoryID: "dev", Pinned: true, CreatedAt: 1},
			{ID: "l2", Title: "Figma", URL: "https://figma.com", CategoryID: "design", CreatedAt: 2},
			{ID: "l3", Title: "Gmail", URL: "https://mail.google.com", CategoryID: "common", Pinned: true, CreatedAt: 3},
		},
		[]domain.Category{
			{ID: "common", Name: "Default"},
			{ID: "dev", Name: "Dev"},
			{ID: "design", Name: "Design", Password: "hunter2"},
		},
		domain.SiteSettings{},
	)
	return s
}

func TestAddLinkPrepends(t *testing.T) {
	s := seeded()

	link := s.AddLink(LinkDraft{Title: "New", URL: "https://example.com", CategoryID: "dev"})

	if link.ID == "" || link.CreatedAt == 0 {
		t.Fatalf("id and createdAt must be assigned: %+v", link)
	}
	links := s.Links()
	if links[0].ID != link.ID {
		t.Fatalf("new link must be first, got %q", links[0].ID)
	}
	if len(links) != 4 {
		t.Fatalf("expected 4 links, got %d", len(links))
	}
}

func TestEditLinkKeepsIdentity(t *testing.T) {
	s := seeded()

	if !s.EditLink("l1", LinkDraft{Title: "GitHub Enterprise", URL: "https://ghe.example.com", CategoryID: "common"}) {
		t.Fatal("edit of existing link must succeed")
	}
	if s.EditLink("missing", LinkDraft{Title: "x", URL: "y"}) {
		t.Fatal("edit of unknown id must report false")
	}

	for _, l := range s.Links() {
		if l.ID != "l1" {
			continue
		}
		if l.Title != "GitHub Enterprise" || l.CategoryID != "common" {
			t.Fatalf("fields not replaced: %+v", l)
		}
		if l.CreatedAt != 1 {
			t.Fatalf("createdAt must be preserved, got %d", l.CreatedAt)
		}
		return
	}
	t.Fatal("edited link disappeared")
}

func TestDeleteLink(t *testing.T) {
	s := seeded()

	s.DeleteLink("l2")

	for _, l := range s.Links() {
		if l.ID == "l2" {
			t.Fatal("link still present after delete")
		}
	}
	if len(s.Links()) != 2 {
		t.Fatalf("expected 2 links, got %d", len(s.Links()))
	}
}

func TestTogglePin(t *testing.T) {
	s := seeded()

	s.TogglePin("l2")
	s.TogglePin("l1")

	var l1, l2 domain.Link
	for _, l := range s.Links() {
		switch l.ID {
		case "l1":
			l1 = l
		case "l2":
			l2 = l
		}
	}
	if !l2.Pinned {
		t.Fatal("l2 should now be pinned")
	}
	if l1.Pinned {
		t.Fatal("l1 should now be unpinned")
	}
}

func TestAddCategoryValidation(t *testing.T) {
	s := seeded()

	if _, ok := s.AddCategory("   ", "Folder", ""); ok {
		t.Fatal("blank name must be rejected")
	}

	cat, ok := s.AddCategory("  Reading  ", "", "")
	if !ok {
		t.Fatal("valid category rejected")
	}
	if cat.Name != "Reading" {
		t.Fatalf("name not trimmed: %q", cat.Name)
	}
	if cat.Icon != "Folder" {
		t.Fatalf("empty icon must default to Folder, got %q", cat.Icon)
	}

	cats := s.Categories()
	if cats[len(cats)-1].ID != cat.ID {
		t.Fatal("new category must append at the end")
	}
}

func TestEditCategoryRemovesLock(t *testing.T) {
	s := seeded()

	if !s.EditCategory("design", "Design", "Palette", "") {
		t.Fatal("edit failed")
	}
	if s.Locked("design") {
		t.Fatal("clearing the password must unlock the category")
	}
}

func TestDeleteCategoryCascadesToLinks(t *testing.T) {
	s := seeded()

	s.DeleteCategory("dev")

	for _, c := range s.Categories() {
		if c.ID == "dev" {
			t.Fatal("category still present")
		}
	}
	for _, l := range s.Links() {
		if l.CategoryID == "dev" {
			t.Fatalf("orphan link survived cascade: %+v", l)
		}
	}
	if len(s.Links()) != 2 {
		t.Fatalf("expected 2 links after cascade, got %d", len(s.Links()))
	}
}

func TestMergeCategoriesRehomesLinks(t *testing.T) {
	s := seeded()

	s.MergeCategories("dev", "common")

	moved := 0
	for _, l := range s.Links() {
		if l.CategoryID == "common" {
			moved++
		}
		if l.CategoryID == "dev" {
			t.Fatal("link left behind in merged-away category")
		}
	}
	if moved != 2 {
		t.Fatalf("expected 2 links in common, got %d", moved)
	}
	if len(s.Categories()) != 2 {
		t.Fatalf("source category must be removed, got %+v", s.Categories())
	}
}

func TestMoveCategoryAndLink(t *testing.T) {
	s := seeded()

	s.MoveCategory(2, 0)
	if cats := s.Categories(); cats[0].ID != "design" {
		t.Fatalf("expected design first, got %+v", cats)
	}

	s.AddLink(LinkDraft{Title: "Go docs", URL: "https://go.dev", CategoryID: "dev"})
	// dev subset display order is now [Go docs, GitHub]; swap them.
	s.MoveLink("dev", 0, 1)

	devLinks := s.VisibleLinks("dev")
	if len(devLinks) != 2 || devLinks[0].Title != "GitHub" {
		t.Fatalf("reorder not applied: %+v", devLinks)
	}
	for i, l := range devLinks {
		if l.Order == nil || *l.Order != i {
			t.Fatalf("order not stamped on dev subset: %+v", l)
		}
	}
}

func TestImportMergeSkipsDuplicateCategories(t *testing.T) {
	s := seeded()

	nl, nc := s.ImportMerge(domain.Envelope{
		Links: []domain.Link{
			{ID: "i1", Title: "Imported", URL: "https://import.example", CategoryID: "news"},
		},
		Categories: []domain.Category{
			{ID: "common", Name: "Shared"},  // duplicate id
			{ID: "x9", Name: "dev"},         // duplicate name, case-insensitive
			{ID: "news", Name: "News"},      // genuinely new
		},
	})

	if nl != 1 || nc != 1 {
		t.Fatalf("counts = (%d links, %d categories), want (1, 1)", nl, nc)
	}
	if len(s.Categories()) != 4 {
		t.Fatalf("expected 4 categories, got %+v", s.Categories())
	}
	if len(s.Links()) != 4 {
		t.Fatalf("expected 4 links, got %d", len(s.Links()))
	}
}
