package state

import (
	"strings"

	"github.com/cloudnav/cloudnav/internal/domain"
)

// LinkDraft carries the user-editable fields of a link.
type LinkDraft struct {
	Title       string
	URL         string
	Description string
	Icon        string
	CategoryID  string
	Pinned      bool
}

// AddLink creates a link from the draft and prepends it, so the newest
// entry renders first in its category.
func (s *Store) AddLink(d LinkDraft) domain.Link {
	link := domain.Link{
		ID:          domain.NewLinkID(s.now()),
		Title:       d.Title,
		URL:         d.URL,
		Description: d.Description,
		Icon:        d.Icon,
		CategoryID:  d.CategoryID,
		Pinned:      d.Pinned,
		CreatedAt:   s.now().UnixMilli(),
	}

	s.mu.RLock()
	links := append([]domain.Link{link}, s.links...)
	categories := append([]domain.Category(nil), s.categories...)
	settings := s.settings
	s.mu.RUnlock()

	s.UpdateData(links, categories, settings)
	return link
}

// EditLink replaces the stored fields of the link with the given id.
// Identity and creation time are kept; everything else comes from the
// draft. Unknown ids are a no-op.
func (s *Store) EditLink(id string, d LinkDraft) bool {
	s.mu.RLock()
	links := append([]domain.Link(nil), s.links...)
	categories := append([]domain.Category(nil), s.categories...)
	settings := s.settings
	s.mu.RUnlock()

	found := false
	for i, l := range links {
		if l.ID != id {
			continue
		}
		links[i] = domain.Link{
			ID:          l.ID,
			Title:       d.Title,
			URL:         d.URL,
			Description: d.Description,
			Icon:        d.Icon,
			CategoryID:  d.CategoryID,
			Pinned:      d.Pinned,
			Order:       l.Order,
			CreatedAt:   l.CreatedAt,
		}
		found = true
		break
	}
	if !found {
		return false
	}

	s.UpdateData(links, categories, settings)
	return true
}

// DeleteLink removes the link with the given id.
func (s *Store) DeleteLink(id string) {
	s.mu.RLock()
	links := make([]domain.Link, 0, len(s.links))
	for _, l := range s.links {
		if l.ID != id {
			links = append(links, l)
		}
	}
	categories := append([]domain.Category(nil), s.categories...)
	settings := s.settings
	s.mu.RUnlock()

	s.UpdateData(links, categories, settings)
}

// TogglePin flips the pinned flag of the link with the given id.
func (s *Store) TogglePin(id string) {
	s.mu.RLock()
	links := append([]domain.Link(nil), s.links...)
	categories := append([]domain.Category(nil), s.categories...)
	settings := s.settings
	s.mu.RUnlock()

	for i, l := range links {
		if l.ID == id {
			links[i].Pinned = !l.Pinned
			break
		}
	}

	s.UpdateData(links, categories, settings)
}

// AddCategory appends a new category. The name is trimmed; a blank name
// is rejected. An empty icon falls back to the folder glyph.
func (s *Store) AddCategory(name, icon, password string) (domain.Category, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, false
	}
	if icon == "" {
		icon = "Folder"
	}

	cat := domain.Category{
		ID:       domain.NewLinkID(s.now()),
		Name:     name,
		Icon:     icon,
		Password: password,
	}

	s.mu.RLock()
	links := append([]domain.Link(nil), s.links...)
	categories := append(append([]domain.Category(nil), s.categories...), cat)
	settings := s.settings
	s.mu.RUnlock()

	s.UpdateData(links, categories, settings)
	return cat, true
}

// EditCategory updates name, icon and access password of a category.
// Setting password to the empty string removes the lock.
func (s *Store) EditCategory(id, name, icon, password string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	s.mu.RLock()
	links := append([]domain.Link(nil), s.links...)
	categories := append([]domain.Category(nil), s.categories...)
	settings := s.settings
	s.mu.RUnlock()

	found := false
	for i, c := range categories {
		if c.ID == id {
			categories[i].Name = name
			categories[i].Icon = icon
			categories[i].Password = password
			found = true
			break
		}
	}
	if !found {
		return false
	}

	s.UpdateData(links, categories, settings)
	return true
}

// DeleteCategory removes a category and every link inside it. The
// cascade is immediate and permanent; callers are expected to confirm
// with the user first.
func (s *Store) DeleteCategory(id string) {
	s.mu.RLock()
	links, categories := domain.DeleteCategory(s.links, s.categories, id)
	settings := s.settings
	s.mu.RUnlock()

	s.UpdateData(links, categories, settings)
}

// MergeCategories moves every link from src into dst and removes src.
func (s *Store) MergeCategories(src, dst string) {
	s.mu.RLock()
	links, categories := domain.MergeCategories(s.links, s.categories, src, dst)
	settings := s.settings
	s.mu.RUnlock()

	s.UpdateData(links, categories, settings)
}

// MoveCategory moves the category at oldIndex to newIndex.
func (s *Store) MoveCategory(oldIndex, newIndex int) {
	s.mu.RLock()
	links := append([]domain.Link(nil), s.links...)
	categories := domain.MoveCategory(s.categories, oldIndex, newIndex)
	settings := s.settings
	s.mu.RUnlock()

	s.UpdateData(links, categories, settings)
}

// MoveLink reorders a link within its category; indexes address the
// category's own link subset in display order.
func (s *Store) MoveLink(categoryID string, oldIndex, newIndex int) {
	s.mu.RLock()
	links := domain.ReorderLinks(s.links, categoryID, oldIndex, newIndex)
	categories := append([]domain.Category(nil), s.categories...)
	settings := s.settings
	s.mu.RUnlock()

	s.UpdateData(links, categories, settings)
}

// UpdateSettings replaces the site settings.
func (s *Store) UpdateSettings(settings domain.SiteSettings) {
	s.mu.RLock()
	links := append([]domain.Link(nil), s.links...)
	categories := append([]domain.Category(nil), s.categories...)
	s.mu.RUnlock()

	s.UpdateData(links, categories, settings)
}

// ImportMerge folds an imported envelope into the current dataset:
// categories are added unless an existing one shares their id or name,
// links are appended as-is. Existing data is never overwritten.
func (s *Store) ImportMerge(env domain.Envelope) (newLinks, newCategories int) {
	s.mu.RLock()
	links := append([]domain.Link(nil), s.links...)
	categories := append([]domain.Category(nil), s.categories...)
	settings := s.settings
	s.mu.RUnlock()

	known := make(map[string]struct{}, len(categories)*2)
	for _, c := range categories {
		known[c.ID] = struct{}{}
		known[strings.ToLower(c.Name)] = struct{}{}
	}
	for _, c := range env.Categories {
		if _, ok := known[c.ID]; ok {
			continue
		}
		if _, ok := known[strings.ToLower(c.Name)]; ok {
			continue
		}
		categories = append(categories, c)
		known[c.ID] = struct{}{}
		known[strings.ToLower(c.Name)] = struct{}{}
		newCategories++
	}

	links = append(links, env.Links...)
	newLinks = len(env.Links)

	s.UpdateData(links, categories, settings)
	return newLinks, newCategories
}
