package domain

// DefaultCategoryID is the reserved id of the default bucket.
const DefaultCategoryID = "common"

// LocalEngineID is the pseudo-engine representing in-app search. It is not
// part of the externally configurable engine set.
const LocalEngineID = "local"

// DefaultCategories seeds a fresh install when both the remote store and
// the local cache are empty.
func DefaultCategories() []Category {
	return []Category{
		{ID: DefaultCategoryID, Name: "常用", Icon: "Star"},
		{ID: "dev", Name: "开发", Icon: "Code"},
		{ID: "design", Name: "设计", Icon: "Palette"},
		{ID: "tools", Name: "工具", Icon: "Wrench"},
	}
}

// DefaultLinks seeds a fresh install alongside DefaultCategories.
func DefaultLinks() []Link {
	return []Link{
		{ID: "1", Title: "GitHub", URL: "https://github.com", Description: "代码托管平台", CategoryID: "dev", Pinned: true, CreatedAt: 1},
		{ID: "2", Title: "MDN Web Docs", URL: "https://developer.mozilla.org", Description: "Web 开发文档", CategoryID: "dev", CreatedAt: 2},
		{ID: "3", Title: "Figma", URL: "https://www.figma.com", Description: "协作设计工具", CategoryID: "design", CreatedAt: 3},
		{ID: "4", Title: "Google", URL: "https://www.google.com", CategoryID: DefaultCategoryID, CreatedAt: 4},
	}
}

// DefaultSearchEngines returns the built-in external engines, excluding the
// "local" pseudo-engine.
func DefaultSearchEngines() []SearchEngine {
	engines := []SearchEngine{
		{ID: "google", Name: "Google", URL: "https://www.google.com/search?q=", Icon: "Globe"},
		{ID: "bing", Name: "Bing", URL: "https://www.bing.com/search?q=", Icon: "Globe"},
		{ID: "baidu", Name: "百度", URL: "https://www.baidu.com/s?wd=", Icon: "Globe"},
		{ID: "duckduckgo", Name: "DuckDuckGo", URL: "https://duckduckgo.com/?q=", Icon: "Globe"},
	}
	out := make([]SearchEngine, 0, len(engines))
	for _, e := range engines {
		if e.ID != LocalEngineID {
			out = append(out, e)
		}
	}
	return out
}

// DefaultSettings returns the out-of-the-box site settings.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		Title:     "CloudNav",
		NavTitle:  "CloudNav",
		CardStyle: "detailed",
	}
}
