package domain

import "strconv"

// Read-side views over a ContentDocument used by public pages and the
// admin dashboard. None of them mutate the document.

// PublishedPosts returns the posts visible on the public blog, in document order
func (d *ContentDocument) PublishedPosts() []BlogPost {
	posts := make([]BlogPost, 0, len(d.Blog))
	for _, p := range d.Blog {
		if p.Published {
			posts = append(posts, p.Clone())
		}
	}
	return posts
}

// FindPost looks a post up by slug. Drafts are only returned when includeDrafts is set.
func (d *ContentDocument) FindPost(slug string, includeDrafts bool) (*BlogPost, bool) {
	for _, p := range d.Blog {
		if p.Slug != slug {
			continue
		}
		if !p.Published && !includeDrafts {
			return nil, false
		}
		post := p.Clone()
		return &post, true
	}
	return nil, false
}

// PostIndex returns the position of the post with the given slug, or -1
func (d *ContentDocument) PostIndex(slug string) int {
	for i, p := range d.Blog {
		if p.Slug == slug {
			return i
		}
	}
	return -1
}

// ProjectsByCategory filters the portfolio. An empty category returns every project.
func (d *ContentDocument) ProjectsByCategory(category ProjectCategory) []ProjectItem {
	projects := make([]ProjectItem, 0, len(d.Portfolio))
	for _, p := range d.Portfolio {
		if category == "" || p.Category == category {
			p.Tools = cloneSlice(p.Tools)
			projects = append(projects, p)
		}
	}
	return projects
}

// HighlightedProjects resolves home page highlights to their projects.
// Highlights pointing at a project that no longer exists are skipped.
func (d *ContentDocument) HighlightedProjects() []ProjectItem {
	byID := make(map[string]ProjectItem, len(d.Portfolio))
	for _, p := range d.Portfolio {
		byID[p.ID] = p
	}

	projects := make([]ProjectItem, 0, len(d.Home.PortfolioHighlights))
	for _, h := range d.Home.PortfolioHighlights {
		p, ok := byID[h.ID]
		if !ok {
			continue
		}
		p.Tools = cloneSlice(p.Tools)
		projects = append(projects, p)
	}
	return projects
}

// VisibleNavigation drops admin-only entries unless the viewer is authenticated
func (d *ContentDocument) VisibleNavigation(authenticated bool) []NavItem {
	items := make([]NavItem, 0, len(d.Navigation))
	for _, item := range d.Navigation {
		if item.AdminOnly && !authenticated {
			continue
		}
		items = append(items, item)
	}
	return items
}

// EffectiveSEO returns the metadata for a page: the stored post SEO for a
// published post slug, the site default otherwise.
func (d *ContentDocument) EffectiveSEO(slug string) SEOData {
	if slug == "" {
		return d.SEO
	}
	post, ok := d.FindPost(slug, false)
	if !ok {
		return d.SEO
	}
	if post.SEO != nil {
		return *post.SEO
	}
	return ResolvePostSEO(nil, post.Title, post.Excerpt, post.Image, d.SEO)
}

// MediaItem is an image URL referenced somewhere in the document
type MediaItem struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// MediaLibrary collects every distinct image URL used by the document,
// with the owning item's title as alt text.
func (d *ContentDocument) MediaLibrary() []MediaItem {
	var items []MediaItem
	seen := make(map[string]bool)
	add := func(url, alt string) {
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		items = append(items, MediaItem{ID: strconv.Itoa(len(items) + 1), URL: url, AltText: alt})
	}

	add(d.Home.Hero.Image, d.Home.Hero.Headline)
	for _, h := range d.Home.PortfolioHighlights {
		add(h.Image, h.Title)
	}
	for _, p := range d.Blog {
		add(p.Image, p.Title)
	}
	for _, p := range d.Portfolio {
		add(p.Image, p.Title)
	}
	add(d.SEO.OGImage, d.SEO.OGTitle)
	add(d.SEO.TwitterImage, d.SEO.TwitterTitle)

	if items == nil {
		items = []MediaItem{}
	}
	return items
}

// DashboardStats summarises the document for the admin dashboard
type DashboardStats struct {
	Projects       int `json:"projects"`
	BlogPosts      int `json:"blogPosts"`
	PublishedPosts int `json:"publishedPosts"`
	DraftPosts     int `json:"draftPosts"`
	Services       int `json:"services"`
}

// Stats counts projects and posts
func (d *ContentDocument) Stats() DashboardStats {
	stats := DashboardStats{
		Projects:  len(d.Portfolio),
		BlogPosts: len(d.Blog),
		Services:  len(d.Services),
	}
	for _, p := range d.Blog {
		if p.Published {
			stats.PublishedPosts++
		}
	}
	stats.DraftPosts = stats.BlogPosts - stats.PublishedPosts
	return stats
}
