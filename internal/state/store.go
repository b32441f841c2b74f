// Package state is the client-side mutation funnel: every change to links,
// categories or settings passes through one UpdateData path that keeps the
// in-memory set, the local cache and the remote store in sync.
package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cloudnav/cloudnav/internal/domain"
	"github.com/cloudnav/cloudnav/internal/logger"
	"github.com/cloudnav/cloudnav/internal/remote"
)

// SyncStatus is the small persistent indicator the UI shows. It reflects
// the last sync attempt, not a connection.
type SyncStatus string

const (
	StatusIdle   SyncStatus = "idle"
	StatusSaving SyncStatus = "saving"
	StatusSaved  SyncStatus = "saved"
	StatusError  SyncStatus = "error"
)

// Cache is the durable local mirror (see the cache package).
type Cache interface {
	Load() (domain.Envelope, bool)
	Save(domain.Envelope) error
}

// Remote is the sync gateway client (see the remote package).
type Remote interface {
	Fetch(ctx context.Context) (domain.Envelope, error)
	Replace(ctx context.Context, token string, env domain.Envelope) error
}

// CredentialStore persists the shared secret between sessions.
type CredentialStore interface {
	LoadToken() string
	SaveToken(token string) error
	ClearToken() error
}

// Store holds the in-memory dataset and all interaction state.
// Local mutations are synchronous; the remote sync is fire-and-forget:
// the UI never waits on a network round-trip to reflect a change, and a
// failed sync is never rolled back. Across devices this is last-writer-wins
// by design.
type Store struct {
	mu sync.RWMutex

	links      []domain.Link
	categories []domain.Category
	settings   domain.SiteSettings
	engines    []domain.SearchEngine

	token    string
	unlocked map[string]struct{} // session-scoped set of unlocked category ids
	status   SyncStatus

	searchMode     SearchMode
	searchQuery    string
	activeEngineID string

	cache  Cache
	remote Remote
	creds  CredentialStore
	logger logger.Logger
	now    func() time.Time

	// onAuthExpired fires when a sync is rejected with a bad credential,
	// after the stored credential has been cleared.
	onAuthExpired func()

	syncWG sync.WaitGroup
}

type Option func(*Store)

// WithClock injects a deterministic clock (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithAuthExpiredHandler registers the re-authentication prompt.
func WithAuthExpiredHandler(fn func()) Option {
	return func(s *Store) { s.onAuthExpired = fn }
}

func New(c Cache, r Remote, creds CredentialStore, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		unlocked: make(map[string]struct{}),
		status:   StatusIdle,
		engines:  domain.DefaultSearchEngines(),
		settings: domain.DefaultSettings(),
		cache:    c,
		remote:   r,
		creds:    creds,
		logger:   log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.engines) > 0 {
		s.activeEngineID = s.engines[0].ID
	}
	return s
}

// Init runs the boot flow: remote fetch first; a non-empty link set is
// adopted and mirrored into the cache; otherwise the cache; otherwise the
// built-in defaults. Remote failure is expected offline behavior, not an
// error surfaced to the user.
func (s *Store) Init(ctx context.Context) {
	if token := s.creds.LoadToken(); token != "" {
		s.mu.Lock()
		s.token = token
		s.mu.Unlock()
	}

	env, err := s.remote.Fetch(ctx)
	if err == nil && !env.Empty() {
		s.adopt(env)
		if err := s.cache.Save(s.snapshot()); err != nil {
			s.logger.Warn("failed to refresh cache from remote", logger.Error(err))
		}
		return
	}
	if err != nil {
		s.logger.Warn("failed to fetch from cloud, falling back to local", logger.Error(err))
	}

	if env, ok := s.cache.Load(); ok {
		s.adopt(env)
		return
	}

	s.adopt(domain.Envelope{
		Links:      domain.DefaultLinks(),
		Categories: domain.DefaultCategories(),
	})
}

func (s *Store) adopt(env domain.Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.links = env.Links
	if len(env.Categories) > 0 {
		s.categories = env.Categories
	} else {
		s.categories = domain.DefaultCategories()
	}
	if env.Settings != nil {
		s.settings = *env.Settings
	}
}

// snapshot builds the envelope from current state. Callers must not hold mu.
func (s *Store) snapshot() domain.Envelope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings := s.settings
	return domain.Envelope{
		Links:      append([]domain.Link(nil), s.links...),
		Categories: append([]domain.Category(nil), s.categories...),
		Settings:   &settings,
	}
}

// UpdateData is the single mutation funnel. In order, never skipped or
// reordered: (1) replace links, categories and settings atomically,
// (2) write-through to the local cache, (3) when a credential is held,
// fire a best-effort remote replace. Step 3 never blocks the caller and
// never rolls back steps 1–2.
func (s *Store) UpdateData(links []domain.Link, categories []domain.Category, settings domain.SiteSettings) {
	s.mu.Lock()
	s.links = links
	s.categories = categories
	s.settings = settings
	token := s.token
	s.mu.Unlock()

	if err := s.cache.Save(s.snapshot()); err != nil {
		s.logger.Warn("failed to write local cache", logger.Error(err))
	}

	if token == "" {
		return
	}

	env := s.snapshot()
	s.syncWG.Add(1)
	go func() {
		defer s.syncWG.Done()
		s.syncToCloud(env, token)
	}()
}

func (s *Store) syncToCloud(env domain.Envelope, token string) {
	s.setStatus(StatusSaving)

	err := s.remote.Replace(context.Background(), token, env)
	switch {
	case err == nil:
		s.setStatus(StatusSaved)

	case errors.Is(err, remote.ErrUnauthorized):
		// Session invalidation: drop the credential everywhere and ask the
		// user to log in again. Local state stays as edited.
		s.mu.Lock()
		s.token = ""
		s.mu.Unlock()
		if err := s.creds.ClearToken(); err != nil {
			s.logger.Warn("failed to clear stored credential", logger.Error(err))
		}
		s.setStatus(StatusError)
		s.logger.Warn("sync rejected, credential cleared")
		if s.onAuthExpired != nil {
			s.onAuthExpired()
		}

	default:
		// Network or backend trouble: flip the indicator, keep the
		// credential, no retry. Cache and memory already hold the edit.
		s.setStatus(StatusError)
		s.logger.Warn("sync failed", logger.Error(err))
	}
}

// Flush waits for in-flight fire-and-forget syncs. Tests only.
func (s *Store) Flush() {
	s.syncWG.Wait()
}

func (s *Store) setStatus(st SyncStatus) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

// Status returns the current sync indicator.
func (s *Store) Status() SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Login verifies a candidate credential by performing a full-dataset
// replace with it: login and first sync are the same network call. On
// success the credential is proven valid and stored.
func (s *Store) Login(ctx context.Context, password string) (bool, error) {
	err := s.remote.Replace(ctx, password, s.snapshot())
	if err != nil {
		if errors.Is(err, remote.ErrUnauthorized) {
			return false, nil
		}
		return false, err
	}

	s.mu.Lock()
	s.token = password
	s.status = StatusSaved
	s.mu.Unlock()

	if err := s.creds.SaveToken(password); err != nil {
		s.logger.Warn("failed to persist credential", logger.Error(err))
	}
	return true, nil
}

// Logout clears the credential. No network call; remote state is left as
// it was after the last successful sync.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.status = StatusIdle
	s.mu.Unlock()

	if err := s.creds.ClearToken(); err != nil {
		s.logger.Warn("failed to clear stored credential", logger.Error(err))
	}
}

// Authenticated reports whether a credential is currently held. The
// online/offline label renders from this, not from last-sync success.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}
