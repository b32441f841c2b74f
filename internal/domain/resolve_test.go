package domain

import "testing"

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		name       string
		categories []Category
		explicitID string
		wantID     string
		wantName   string
	}{
		{
			name: "explicit id matches",
			categories: []Category{
				{ID: "common", Name: "Misc"},
				{ID: "x2", Name: "Dev"},
			},
			explicitID: "x2",
			wantID:     "x2",
			wantName:   "Dev",
		},
		{
			name: "explicit id unknown falls through",
			categories: []Category{
				{ID: "common", Name: "Misc"},
			},
			explicitID: "nope",
			wantID:     "common",
			wantName:   "Misc",
		},
		{
			name: "keyword match wins over default",
			categories: []Category{
				{ID: "common", Name: "Misc"},
				{ID: "in1", Name: "My Inbox"},
			},
			wantID:   "in1",
			wantName: "My Inbox",
		},
		{
			name: "keyword match is case-insensitive",
			categories: []Category{
				{ID: "c1", Name: "LATER reading"},
			},
			wantID:   "c1",
			wantName: "LATER reading",
		},
		{
			name: "no keyword falls back to reserved default id",
			categories: []Category{
				{ID: "common", Name: "Misc"},
				{ID: "x2", Name: "Dev"},
			},
			wantID:   "common",
			wantName: "Misc",
		},
		{
			name: "no default falls back to first category",
			categories: []Category{
				{ID: "a", Name: "Alpha"},
				{ID: "b", Name: "Beta"},
			},
			wantID:   "a",
			wantName: "Alpha",
		},
		{
			name:       "no categories synthesizes default reference",
			categories: nil,
			wantID:     "common",
			wantName:   "Default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, name := ResolveCategory(tt.categories, tt.explicitID)
			if id != tt.wantID || name != tt.wantName {
				t.Errorf("ResolveCategory() = (%q, %q), want (%q, %q)", id, name, tt.wantID, tt.wantName)
			}
		})
	}
}
