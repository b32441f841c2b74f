package domain

import (
	"net/url"
	"strings"
)

// FilterLinks returns the links matching query: case-insensitive substring
// match against title, url and description, OR'd. An empty query matches
// everything.
func FilterLinks(links []Link, query string) []Link {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return links
	}

	matched := make([]Link, 0, len(links))
	for _, l := range links {
		if strings.Contains(strings.ToLower(l.Title), q) ||
			strings.Contains(strings.ToLower(l.URL), q) ||
			strings.Contains(strings.ToLower(l.Description), q) {
			matched = append(matched, l)
		}
	}
	return matched
}

// ExternalSearchURL builds the URL an external-mode search submit opens:
// the engine's template with the query percent-encoded and appended.
func ExternalSearchURL(engine SearchEngine, query string) string {
	return engine.URL + url.QueryEscape(query)
}
