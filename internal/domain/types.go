package domain

import (
	"strconv"
	"time"
	"unicode"
)

// Link is a single bookmarked URL.
type Link struct {
	// ID is the canonical unique identifier, derived from creation time
	// (epoch millis as a decimal string).
	ID string `json:"id"`

	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`

	// CategoryID references a Category. Not enforced referentially at
	// write time: an orphaned link simply renders nowhere.
	CategoryID string `json:"categoryId"`

	Icon   string `json:"icon,omitempty"`
	Pinned bool   `json:"pinned"`

	CreatedAt int64 `json:"createdAt"`

	// Order is stamped per-item only while a category's link order is being
	// explicitly persisted. Authoritative within one category, not globally.
	Order *int `json:"order,omitempty"`
}

// Category groups links. A category with a non-empty Password starts the
// session locked: its links are hidden until the password is presented.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Icon is either a short emoji-like token or a named icon identifier.
	Icon string `json:"icon"`

	// Password is stored in plaintext and checked entirely client-side.
	// It is a UI gate, not access control.
	Password string `json:"password,omitempty"`
}

// SiteSettings is the singleton presentation configuration.
type SiteSettings struct {
	Title     string `json:"title,omitempty"`
	NavTitle  string `json:"navTitle,omitempty"`
	Favicon   string `json:"favicon,omitempty"`
	CardStyle string `json:"cardStyle,omitempty"` // "simple" | "detailed"
}

// SearchEngine is an external engine the client can submit queries to.
// The query is URL-encoded and appended verbatim to URL.
type SearchEngine struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon,omitempty"`
}

// AIConfig and WebDavConfig are passthrough blobs for external
// collaborators. The core stores them and never looks inside.
type (
	AIConfig     map[string]interface{}
	WebDavConfig map[string]interface{}
)

// Envelope is the full document exchanged between the local cache, the
// client state store, and the sync gateway. It is always read and written
// as a whole; there is no partial-field sync.
type Envelope struct {
	Links      []Link        `json:"links"`
	Categories []Category    `json:"categories"`
	Settings   *SiteSettings `json:"settings,omitempty"`
}

// Empty reports whether the envelope carries no links.
// The boot flow treats a linkless remote result as "nothing stored yet".
func (e Envelope) Empty() bool {
	return len(e.Links) == 0
}

// NewLinkID derives a link identifier from a point in time.
func NewLinkID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// IsEmojiIcon distinguishes a short emoji-like icon token from a named icon
// identifier: at most 4 runes and not purely alphabetic.
func IsEmojiIcon(icon string) bool {
	runes := []rune(icon)
	if len(runes) == 0 || len(runes) > 4 {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
