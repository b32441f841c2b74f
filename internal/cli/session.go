// Package cli implements navctl, the terminal client. Each invocation
// boots a full client state store, performs one operation and waits for
// the resulting sync before exiting.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cloudnav/cloudnav/internal/domain"
)

// Session is the on-disk client session: which gateway to talk to, the
// credential proven by the last successful login, and the configured
// external search engines. Engines live here and nowhere else: they are
// never synced through the envelope.
type Session struct {
	Server   string         `yaml:"server"`
	Password string         `yaml:"password,omitempty"`
	Engines  []EngineConfig `yaml:"engines,omitempty"`

	path string
}

// EngineConfig mirrors a search engine in the session file.
type EngineConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Icon string `yaml:"icon,omitempty"`
}

// LoadSession reads the session file, or returns an empty session when
// none exists yet.
func LoadSession() (*Session, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config dir: %w", err)
	}
	s := &Session{path: filepath.Join(dir, "cloudnav", "session.yaml")}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return s, nil
}

func (s *Session) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	// The file holds a credential: owner-only.
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// SetServer records the gateway base URL.
func (s *Session) SetServer(url string) error {
	s.Server = url
	return s.save()
}

// LoadToken implements the credential store read side.
func (s *Session) LoadToken() string { return s.Password }

// SaveToken persists a proven credential.
func (s *Session) SaveToken(token string) error {
	s.Password = token
	return s.save()
}

// ClearToken drops the credential but keeps the server address.
func (s *Session) ClearToken() error {
	s.Password = ""
	return s.save()
}

// SaveEngines persists the configurable engine set.
func (s *Session) SaveEngines(engines []domain.SearchEngine) error {
	s.Engines = make([]EngineConfig, 0, len(engines))
	for _, e := range engines {
		s.Engines = append(s.Engines, EngineConfig{ID: e.ID, Name: e.Name, URL: e.URL, Icon: e.Icon})
	}
	return s.save()
}

// EngineSet converts the persisted engines back to the domain type.
// Empty means "not customized": callers keep the built-in defaults.
func (s *Session) EngineSet() []domain.SearchEngine {
	engines := make([]domain.SearchEngine, 0, len(s.Engines))
	for _, e := range s.Engines {
		engines = append(engines, domain.SearchEngine{ID: e.ID, Name: e.Name, URL: e.URL, Icon: e.Icon})
	}
	return engines
}
