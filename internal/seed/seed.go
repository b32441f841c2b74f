// Package seed loads an operator-provided YAML file that pre-populates the
// storage backend on first boot, so a fresh deployment starts with content
// instead of an empty dashboard.
package seed

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cloudnav/cloudnav/internal/domain"
)

// File is the YAML shape operators write. It mirrors the envelope but with
// friendlier field names and optional ids.
type File struct {
	Categories []Category `yaml:"categories"`
	Links      []Link     `yaml:"links"`
	Settings   *Settings  `yaml:"settings"`
}

type Category struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Icon     string `yaml:"icon"`
	Password string `yaml:"password"`
}

type Link struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Category    string `yaml:"category"`
	Pinned      bool   `yaml:"pinned"`
}

type Settings struct {
	Title     string `yaml:"title"`
	NavTitle  string `yaml:"navTitle"`
	Favicon   string `yaml:"favicon"`
	CardStyle string `yaml:"cardStyle"`
}

// Loader reads and converts a seed file.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for the given path.
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads the seed file and converts it to an envelope. Links without a
// category land in the default bucket; missing ids are generated
// deterministically from position.
func (l *Loader) Load() (domain.Envelope, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Envelope{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	return file.envelope()
}

func (f File) envelope() (domain.Envelope, error) {
	env := domain.Envelope{
		Links:      []domain.Link{},
		Categories: []domain.Category{},
	}

	seen := make(map[string]struct{}, len(f.Categories))
	for i, c := range f.Categories {
		if c.Name == "" {
			return domain.Envelope{}, fmt.Errorf("category %d has no name", i)
		}
		id := c.ID
		if id == "" {
			id = "seed-cat-" + strconv.Itoa(i)
		}
		if _, dup := seen[id]; dup {
			return domain.Envelope{}, fmt.Errorf("duplicate category id %q", id)
		}
		seen[id] = struct{}{}

		icon := c.Icon
		if icon == "" {
			icon = "Folder"
		}
		env.Categories = append(env.Categories, domain.Category{
			ID:       id,
			Name:     c.Name,
			Icon:     icon,
			Password: c.Password,
		})
	}

	for i, l := range f.Links {
		if l.Title == "" || l.URL == "" {
			return domain.Envelope{}, fmt.Errorf("link %d is missing title or url", i)
		}
		category := l.Category
		if category == "" {
			category = domain.DefaultCategoryID
		}
		env.Links = append(env.Links, domain.Link{
			ID:          "seed-" + strconv.Itoa(i),
			Title:       l.Title,
			URL:         l.URL,
			Description: l.Description,
			Icon:        l.Icon,
			CategoryID:  category,
			Pinned:      l.Pinned,
			CreatedAt:   int64(i + 1),
		})
	}

	if f.Settings != nil {
		env.Settings = &domain.SiteSettings{
			Title:     f.Settings.Title,
			NavTitle:  f.Settings.NavTitle,
			Favicon:   f.Settings.Favicon,
			CardStyle: f.Settings.CardStyle,
		}
	}

	return env, nil
}
