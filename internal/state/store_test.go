package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cloudnav/cloudnav/internal/domain"
	"github.com/cloudnav/cloudnav/internal/logger"
	"github.com/cloudnav/cloudnav/internal/remote"
)

type fakeCache struct {
	mu    sync.Mutex
	env   domain.Envelope
	ok    bool
	saves int
	fail  error
}

func (c *fakeCache) Load() (domain.Envelope, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.env, c.ok
}

func (c *fakeCache) Save(env domain.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	c.env = env
	c.ok = true
	c.saves++
	return nil
}

type fakeRemote struct {
	mu       sync.Mutex
	env      domain.Envelope
	fetchErr error
	secret   string
	replaces int
	last     domain.Envelope
	downErr  error
}

func (r *fakeRemote) Fetch(_ context.Context) (domain.Envelope, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetchErr != nil {
		return domain.Envelope{}, r.fetchErr
	}
	return r.env, nil
}

func (r *fakeRemote) Replace(_ context.Context, token string, env domain.Envelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.downErr != nil {
		return r.downErr
	}
	if token != r.secret {
		return remote.ErrUnauthorized
	}
	r.replaces++
	r.last = env
	return nil
}

type fakeCreds struct {
	token string
}

func (c *fakeCreds) LoadToken() string            { return c.token }
func (c *fakeCreds) SaveToken(token string) error { c.token = token; return nil }
func (c *fakeCreds) ClearToken() error            { c.token = ""; return nil }

func fixedClock() func() time.Time {
	base := time.UnixMilli(1700000000000)
	var n int64
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Millisecond)
	}
}

func newTestStore(cache *fakeCache, rem *fakeRemote, creds *fakeCreds) *Store {
	return New(cache, rem, creds, logger.Nop(), WithClock(fixedClock()))
}

func TestInitPrefersNonEmptyRemote(t *testing.T) {
	cache := &fakeCache{
		env: domain.Envelope{Links: []domain.Link{{ID: "stale", CategoryID: "common"}}},
		ok:  true,
	}
	rem := &fakeRemote{env: domain.Envelope{
		Links:      []domain.Link{{ID: "fresh", CategoryID: "common"}},
		Categories: []domain.Category{{ID: "common", Name: "Default"}},
	}}
	s := newTestStore(cache, rem, &fakeCreds{})

	s.Init(context.Background())

	links := s.Links()
	if len(links) != 1 || links[0].ID != "fresh" {
		t.Fatalf("expected remote data adopted, got %+v", links)
	}
	if cache.env.Links[0].ID != "fresh" {
		t.Fatalf("cache not refreshed from remote: %+v", cache.env.Links)
	}
}

func TestInitFallsBackToCacheThenDefaults(t *testing.T) {
	t.Run("cache", func(t *testing.T) {
		cache := &fakeCache{
			env: domain.Envelope{Links: []domain.Link{{ID: "cached", CategoryID: "common"}}},
			ok:  true,
		}
		rem := &fakeRemote{fetchErr: errors.New("connection refused")}
		s := newTestStore(cache, rem, &fakeCreds{})

		s.Init(context.Background())

		if links := s.Links(); len(links) != 1 || links[0].ID != "cached" {
			t.Fatalf("expected cached data, got %+v", links)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		rem := &fakeRemote{fetchErr: errors.New("connection refused")}
		s := newTestStore(&fakeCache{}, rem, &fakeCreds{})

		s.Init(context.Background())

		if len(s.Links()) == 0 {
			t.Fatal("expected built-in default links")
		}
		cats := s.Categories()
		if len(cats) == 0 || cats[0].ID != domain.DefaultCategoryID {
			t.Fatalf("expected default categories, got %+v", cats)
		}
	})
}

func TestInitEmptyRemoteDoesNotClobberCache(t *testing.T) {
	cache := &fakeCache{
		env: domain.Envelope{Links: []domain.Link{{ID: "cached", CategoryID: "common"}}},
		ok:  true,
	}
	// Remote reachable but holds no links yet.
	s := newTestStore(cache, &fakeRemote{}, &fakeCreds{})

	s.Init(context.Background())

	if links := s.Links(); len(links) != 1 || links[0].ID != "cached" {
		t.Fatalf("empty remote must not replace cached data, got %+v", links)
	}
}

func TestUpdateDataWritesThroughToCache(t *testing.T) {
	cache := &fakeCache{}
	s := newTestStore(cache, &fakeRemote{}, &fakeCreds{})

	s.UpdateData(
		[]domain.Link{{ID: "1", Title: "a", CategoryID: "common"}},
		[]domain.Category{{ID: "common", Name: "Default"}},
		domain.SiteSettings{},
	)

	if cache.saves != 1 {
		t.Fatalf("expected 1 cache save, got %d", cache.saves)
	}
	if len(cache.env.Links) != 1 || cache.env.Links[0].ID != "1" {
		t.Fatalf("cache holds wrong data: %+v", cache.env.Links)
	}
}

func TestUpdateDataSkipsRemoteWithoutCredential(t *testing.T) {
	rem := &fakeRemote{secret: "secret"}
	s := newTestStore(&fakeCache{}, rem, &fakeCreds{})

	s.UpdateData([]domain.Link{{ID: "1"}}, nil, domain.SiteSettings{})
	s.Flush()

	if rem.replaces != 0 {
		t.Fatalf("expected no remote call without credential, got %d", rem.replaces)
	}
}

func TestUpdateDataSyncsWhenAuthenticated(t *testing.T) {
	rem := &fakeRemote{secret: "secret"}
	creds := &fakeCreds{}
	s := newTestStore(&fakeCache{}, rem, creds)

	ok, err := s.Login(context.Background(), "secret")
	if err != nil || !ok {
		t.Fatalf("login failed: ok=%v err=%v", ok, err)
	}

	s.UpdateData([]domain.Link{{ID: "1", Title: "a"}}, nil, domain.SiteSettings{})
	s.Flush()

	if rem.replaces != 2 { // login replace + sync replace
		t.Fatalf("expected 2 replaces, got %d", rem.replaces)
	}
	if len(rem.last.Links) != 1 || rem.last.Links[0].ID != "1" {
		t.Fatalf("remote holds wrong data: %+v", rem.last.Links)
	}
	if got := s.Status(); got != StatusSaved {
		t.Fatalf("status = %q, want %q", got, StatusSaved)
	}
}

func TestSyncRejectionClearsCredentialAndKeepsLocalEdit(t *testing.T) {
	rem := &fakeRemote{secret: "secret"}
	creds := &fakeCreds{}
	expired := false
	s := New(&fakeCache{}, rem, creds, logger.Nop(),
		WithClock(fixedClock()),
		WithAuthExpiredHandler(func() { expired = true }))

	if ok, _ := s.Login(context.Background(), "secret"); !ok {
		t.Fatal("login failed")
	}

	// Password rotated on the server: the held token is now stale.
	rem.mu.Lock()
	rem.secret = "rotated"
	rem.mu.Unlock()

	s.UpdateData([]domain.Link{{ID: "1"}}, nil, domain.SiteSettings{})
	s.Flush()

	if s.Authenticated() {
		t.Fatal("credential must be cleared after a rejected sync")
	}
	if creds.token != "" {
		t.Fatal("persisted credential must be cleared too")
	}
	if !expired {
		t.Fatal("auth-expired handler not invoked")
	}
	if got := s.Status(); got != StatusError {
		t.Fatalf("status = %q, want %q", got, StatusError)
	}
	if links := s.Links(); len(links) != 1 {
		t.Fatalf("local edit must survive the failed sync, got %+v", links)
	}
}

func TestSyncNetworkErrorKeepsCredential(t *testing.T) {
	rem := &fakeRemote{secret: "secret"}
	s := newTestStore(&fakeCache{}, rem, &fakeCreds{})

	if ok, _ := s.Login(context.Background(), "secret"); !ok {
		t.Fatal("login failed")
	}
	rem.mu.Lock()
	rem.downErr = errors.New("i/o timeout")
	rem.mu.Unlock()

	s.UpdateData([]domain.Link{{ID: "1"}}, nil, domain.SiteSettings{})
	s.Flush()

	if !s.Authenticated() {
		t.Fatal("network failure must not clear the credential")
	}
	if got := s.Status(); got != StatusError {
		t.Fatalf("status = %q, want %q", got, StatusError)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	rem := &fakeRemote{secret: "secret"}
	creds := &fakeCreds{}
	s := newTestStore(&fakeCache{}, rem, creds)

	ok, err := s.Login(context.Background(), "nope")
	if err != nil {
		t.Fatalf("wrong password must not be an error: %v", err)
	}
	if ok || s.Authenticated() || creds.token != "" {
		t.Fatal("wrong password must not authenticate")
	}
}

func TestLogoutIsLocalOnly(t *testing.T) {
	rem := &fakeRemote{secret: "secret"}
	creds := &fakeCreds{}
	s := newTestStore(&fakeCache{}, rem, creds)

	if ok, _ := s.Login(context.Background(), "secret"); !ok {
		t.Fatal("login failed")
	}
	before := rem.replaces

	s.Logout()

	if s.Authenticated() || creds.token != "" {
		t.Fatal("logout must clear the credential")
	}
	if rem.replaces != before {
		t.Fatal("logout must not touch the network")
	}
}
