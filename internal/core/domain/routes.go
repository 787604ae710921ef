package domain

import "strings"

// Route is one page path of the site
type Route struct {
	Path  string `json:"path"`
	Admin bool   `json:"admin"`
}

// Public and admin page paths. Paths with a :slug segment are templates.
var Routes = []Route{
	{Path: "/"},
	{Path: "/about"},
	{Path: "/services"},
	{Path: "/portfolio"},
	{Path: "/blog"},
	{Path: "/blog/:slug"},
	{Path: "/contact"},
	{Path: "/admin", Admin: true},
	{Path: "/admin/content", Admin: true},
	{Path: "/admin/appearance", Admin: true},
	{Path: "/admin/seo", Admin: true},
	{Path: "/admin/media", Admin: true},
	{Path: "/admin/blog", Admin: true},
	{Path: "/admin/blog/new", Admin: true},
	{Path: "/admin/blog/edit/:slug", Admin: true},
}

// IsTemplate reports whether the path has a parameter segment
func (r Route) IsTemplate() bool {
	return strings.Contains(r.Path, ":")
}

// PostPath returns the public path of a blog post
func PostPath(slug string) string {
	return "/blog/" + slug
}

// SitemapPaths returns every public path that should be crawled: the
// static public routes followed by one path per published post.
func (d *ContentDocument) SitemapPaths() []string {
	var paths []string
	for _, r := range Routes {
		if r.Admin || r.IsTemplate() {
			continue
		}
		paths = append(paths, r.Path)
	}
	for _, p := range d.Blog {
		if p.Published {
			paths = append(paths, PostPath(p.Slug))
		}
	}
	return paths
}
