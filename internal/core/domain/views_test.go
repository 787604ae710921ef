package domain

import "testing"

func viewFixture() *ContentDocument {
	return &ContentDocument{
		Home: HomeContent{
			Hero: HeroContent{Headline: "Hero", Image: "hero.png"},
			PortfolioHighlights: []PortfolioHighlight{
				{ID: "2", Title: "Second", Image: "h2.png"},
				{ID: "missing", Title: "Gone", Image: "gone.png"},
				{ID: "1", Title: "First", Image: "hero.png"},
			},
		},
		Portfolio: []ProjectItem{
			{ID: "1", Slug: "one", Title: "One", Category: CategoryAnalytics, Image: "p1.png", Tools: []string{"SQL"}},
			{ID: "2", Slug: "two", Title: "Two", Category: CategoryAIOps, Image: "p2.png"},
		},
		Blog: []BlogPost{
			{Slug: "live", Title: "Live", Excerpt: "live excerpt", Image: "b1.png", Published: true},
			{Slug: "draft", Title: "Draft", Image: "b1.png"},
			{Slug: "seo", Title: "SEO", Published: true, SEO: &SEOData{Title: "Stored"}},
		},
		Services: []ServiceItem{{ID: "1"}},
		Navigation: []NavItem{
			{ID: "home", Path: "/"},
			{ID: "admin", Path: "/admin", AdminOnly: true},
		},
		SEO: SEOData{Title: "Site", Description: "Site description", OGImage: "og.png", OGTitle: "OG"},
	}
}

func TestPublishedPosts(t *testing.T) {
	doc := viewFixture()
	posts := doc.PublishedPosts()

	if len(posts) != 2 {
		t.Fatalf("expected 2 published posts, got %d", len(posts))
	}
	if posts[0].Slug != "live" || posts[1].Slug != "seo" {
		t.Errorf("expected document order, got %s, %s", posts[0].Slug, posts[1].Slug)
	}
}

func TestFindPost(t *testing.T) {
	doc := viewFixture()

	tests := []struct {
		name          string
		slug          string
		includeDrafts bool
		found         bool
	}{
		{"published", "live", false, true},
		{"draft hidden", "draft", false, false},
		{"draft for admin", "draft", true, true},
		{"missing", "nope", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, ok := doc.FindPost(tt.slug, tt.includeDrafts)
			if ok != tt.found {
				t.Fatalf("expected found=%v, got %v", tt.found, ok)
			}
			if ok && post.Slug != tt.slug {
				t.Errorf("expected slug %s, got %s", tt.slug, post.Slug)
			}
		})
	}
}

func TestProjectsByCategory(t *testing.T) {
	doc := viewFixture()

	if got := doc.ProjectsByCategory(""); len(got) != 2 {
		t.Errorf("expected all projects, got %d", len(got))
	}
	got := doc.ProjectsByCategory(CategoryAIOps)
	if len(got) != 1 || got[0].Slug != "two" {
		t.Errorf("expected only project two, got %+v", got)
	}

	all := doc.ProjectsByCategory("")
	all[0].Tools[0] = "changed"
	if doc.Portfolio[0].Tools[0] != "SQL" {
		t.Error("filtered projects should not share tools with the document")
	}
}

func TestHighlightedProjects(t *testing.T) {
	doc := viewFixture()
	got := doc.HighlightedProjects()

	if len(got) != 2 {
		t.Fatalf("expected missing highlight to be skipped, got %d projects", len(got))
	}
	if got[0].ID != "2" || got[1].ID != "1" {
		t.Errorf("expected highlight order 2, 1; got %s, %s", got[0].ID, got[1].ID)
	}
}

func TestVisibleNavigation(t *testing.T) {
	doc := viewFixture()

	if got := doc.VisibleNavigation(false); len(got) != 1 {
		t.Errorf("expected admin entry hidden for visitors, got %d items", len(got))
	}
	if got := doc.VisibleNavigation(true); len(got) != 2 {
		t.Errorf("expected admin entry visible when authenticated, got %d items", len(got))
	}
}

func TestEffectiveSEO(t *testing.T) {
	doc := viewFixture()

	if got := doc.EffectiveSEO(""); got.Title != "Site" {
		t.Errorf("expected site SEO for empty slug, got %q", got.Title)
	}
	if got := doc.EffectiveSEO("draft"); got.Title != "Site" {
		t.Errorf("expected site SEO for a draft, got %q", got.Title)
	}
	if got := doc.EffectiveSEO("seo"); got.Title != "Stored" {
		t.Errorf("expected stored post SEO, got %q", got.Title)
	}

	got := doc.EffectiveSEO("live")
	if got.Title != "Live" || got.Description != "live excerpt" || got.OGImage != "b1.png" {
		t.Errorf("expected SEO derived from the post, got %+v", got)
	}
}

func TestMediaLibrary(t *testing.T) {
	doc := viewFixture()
	items := doc.MediaLibrary()

	want := []string{"hero.png", "h2.png", "gone.png", "b1.png", "p1.png", "p2.png", "og.png"}
	if len(items) != len(want) {
		t.Fatalf("expected %d unique images, got %d: %+v", len(want), len(items), items)
	}
	for i, item := range items {
		if item.URL != want[i] {
			t.Errorf("item %d: expected %s, got %s", i, want[i], item.URL)
		}
	}
	if items[0].AltText != "Hero" {
		t.Errorf("expected hero alt text, got %q", items[0].AltText)
	}
	if items[0].ID != "1" || items[6].ID != "7" {
		t.Errorf("expected sequential ids, got %s and %s", items[0].ID, items[6].ID)
	}

	empty := (&ContentDocument{}).MediaLibrary()
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil library, got %#v", empty)
	}
}

func TestStats(t *testing.T) {
	stats := viewFixture().Stats()

	if stats.Projects != 2 || stats.BlogPosts != 3 || stats.PublishedPosts != 2 || stats.DraftPosts != 1 || stats.Services != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
