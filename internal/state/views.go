package state

import (
	"github.com/cloudnav/cloudnav/internal/domain"
)

// SearchMode selects between filtering the local dataset and handing the
// query to an external engine.
type SearchMode string

const (
	SearchLocal    SearchMode = "local"
	SearchExternal SearchMode = "external"
)

// Links returns a copy of the full link set, locked categories included.
// Display paths should use VisibleLinks.
func (s *Store) Links() []domain.Link {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Link(nil), s.links...)
}

// Categories returns a copy of the category set in display order.
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category(nil), s.categories...)
}

// Settings returns the current site settings.
func (s *Store) Settings() domain.SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Unlock presents a password for a locked category. A correct password
// unlocks the category for the rest of the session; the set is never
// persisted, so every new session starts fully locked again.
func (s *Store) Unlock(categoryID, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.ID != categoryID {
			continue
		}
		if c.Password == "" || c.Password == password {
			s.unlocked[categoryID] = struct{}{}
			return true
		}
		return false
	}
	return false
}

// Locked reports whether a category's links are currently hidden.
func (s *Store) Locked(categoryID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lockedLocked(categoryID)
}

// lockedLocked is Locked without taking mu.
func (s *Store) lockedLocked(categoryID string) bool {
	for _, c := range s.categories {
		if c.ID == categoryID {
			if c.Password == "" {
				return false
			}
			_, ok := s.unlocked[categoryID]
			return !ok
		}
	}
	return false
}

// ResetSession forgets every session unlock, as a fresh page load would.
func (s *Store) ResetSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlocked = make(map[string]struct{})
}

// VisibleLinks returns the links of one category, or of all categories
// when categoryID is empty, with locked categories' links excluded.
func (s *Store) VisibleLinks(categoryID string) []domain.Link {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Link, 0, len(s.links))
	for _, l := range s.links {
		if categoryID != "" && l.CategoryID != categoryID {
			continue
		}
		if s.lockedLocked(l.CategoryID) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// PinnedLinks aggregates pinned links across categories. Links inside a
// locked category stay hidden here too.
func (s *Store) PinnedLinks() []domain.Link {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Link, 0)
	for _, l := range s.links {
		if !l.Pinned || s.lockedLocked(l.CategoryID) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// SetSearchMode switches between local and external search. The typed
// query carries across the switch.
func (s *Store) SetSearchMode(mode SearchMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchMode = mode
}

// SetQuery records the live query text. In local mode results update on
// every keystroke via SearchResults.
func (s *Store) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = q
}

// Query returns the current query text.
func (s *Store) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

// SearchResults filters the visible links with the current query:
// case-insensitive substring match over title, url and description.
func (s *Store) SearchResults() []domain.Link {
	s.mu.RLock()
	query := s.searchQuery
	s.mu.RUnlock()
	return domain.FilterLinks(s.VisibleLinks(""), query)
}

// SetSearchEngines replaces the configurable engine set. The built-in
// local entry is not part of it and cannot be removed.
func (s *Store) SetSearchEngines(engines []domain.SearchEngine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.SearchEngine, 0, len(engines))
	for _, e := range engines {
		if e.ID == domain.LocalEngineID {
			continue
		}
		kept = append(kept, e)
	}
	s.engines = kept

	for _, e := range s.engines {
		if e.ID == s.activeEngineID {
			return
		}
	}
	s.activeEngineID = ""
	if len(s.engines) > 0 {
		s.activeEngineID = s.engines[0].ID
	}
}

// SearchEngines returns the configurable engine set.
func (s *Store) SearchEngines() []domain.SearchEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.SearchEngine(nil), s.engines...)
}

// SelectEngine makes an engine the active external target.
func (s *Store) SelectEngine(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.engines {
		if e.ID == id {
			s.activeEngineID = id
			return true
		}
	}
	return false
}

// SubmitSearch resolves an explicit submit. In external mode it returns
// the engine URL to open and clears the query; in local mode the live
// filter already shows the results, so submit is a no-op and the query
// stays put.
func (s *Store) SubmitSearch() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.searchMode != SearchExternal || s.searchQuery == "" {
		return "", false
	}
	for _, e := range s.engines {
		if e.ID == s.activeEngineID {
			u := domain.ExternalSearchURL(e, s.searchQuery)
			s.searchQuery = ""
			return u, true
		}
	}
	return "", false
}
