package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudnav/cloudnav/internal/domain"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestLoadSeedFile(t *testing.T) {
	path := writeSeed(t, `
categories:
  - id: infra
    name: Infra
    icon: Server
  - name: Reading
    password: books

links:
  - title: Grafana
    url: https://grafana.example.com
    category: infra
    pinned: true
  - title: Blog
    url: https://blog.example.com
    description: weekend reading

settings:
  title: Team Nav
  cardStyle: simple
`)

	env, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(env.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %+v", env.Categories)
	}
	if env.Categories[0].ID != "infra" || env.Categories[0].Icon != "Server" {
		t.Fatalf("explicit category mangled: %+v", env.Categories[0])
	}
	if env.Categories[1].ID != "seed-cat-1" {
		t.Fatalf("missing id must be generated, got %q", env.Categories[1].ID)
	}
	if env.Categories[1].Icon != "Folder" {
		t.Fatalf("missing icon must default to Folder, got %q", env.Categories[1].Icon)
	}
	if env.Categories[1].Password != "books" {
		t.Fatal("password not carried")
	}

	if len(env.Links) != 2 {
		t.Fatalf("expected 2 links, got %+v", env.Links)
	}
	if env.Links[0].CategoryID != "infra" || !env.Links[0].Pinned {
		t.Fatalf("link fields mangled: %+v", env.Links[0])
	}
	if env.Links[1].CategoryID != domain.DefaultCategoryID {
		t.Fatalf("uncategorized link must land in the default bucket, got %q", env.Links[1].CategoryID)
	}

	if env.Settings == nil || env.Settings.Title != "Team Nav" || env.Settings.CardStyle != "simple" {
		t.Fatalf("settings mangled: %+v", env.Settings)
	}
}

func TestLoadRejectsBadSeeds(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "nameless category",
			content: "categories:\n  - icon: Star\n",
			wantErr: "has no name",
		},
		{
			name:    "duplicate category id",
			content: "categories:\n  - id: a\n    name: One\n  - id: a\n    name: Two\n",
			wantErr: "duplicate category id",
		},
		{
			name:    "link without url",
			content: "links:\n  - title: Broken\n",
			wantErr: "missing title or url",
		},
		{
			name:    "invalid yaml",
			content: "links: [",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSeed(t, tt.content)
			_, err := NewLoader(path).Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load()
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Fatalf("err = %v, want read failure", err)
	}
}
