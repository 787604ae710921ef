package http

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/foliocms/folio-core/internal/core/domain"
)

// SEOResponse is the effective metadata for one page
// @Description Effective SEO record and the head tags built from it
type SEOResponse struct {
	SEO  domain.SEOData  `json:"seo"`
	Head domain.PageHead `json:"head"`
}

// publicDocument strips drafts and admin navigation and sanitizes the
// free-form HTML fields before the document leaves the service
func (s *Server) publicDocument(doc *domain.ContentDocument) *domain.ContentDocument {
	out := doc.Clone()
	out.Blog = s.sanitizePosts(doc.PublishedPosts())
	out.Navigation = doc.VisibleNavigation(false)

	a := &out.About
	for _, field := range []*string{
		&a.Summary, &a.AnalyticsExpertise, &a.AIOpsMindset,
		&a.PhilosophyAnalytics, &a.PhilosophyAIOps, &a.PhilosophyCombined,
	} {
		*field = s.sanitizer.Sanitize(*field)
	}
	return out
}

func (s *Server) sanitizePosts(posts []domain.BlogPost) []domain.BlogPost {
	for i := range posts {
		posts[i].Content = s.sanitizer.Sanitize(posts[i].Content)
	}
	return posts
}

// handleGetContent godoc
// @Summary      Get site content
// @Description  The public content document: published posts only, HTML sanitized
// @Tags         Content
// @Produce      json
// @Success      200  {object}  domain.ContentDocument
// @Failure      503  {object}  ErrorResponse
// @Router       /content [get]
func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	doc, err := s.contentService.Snapshot()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.publicDocument(doc))
}

// handleGetSection godoc
// @Summary      Get one content section
// @Tags         Content
// @Produce      json
// @Param        section  path  string  true  "Section name"  Enums(home, about, services, portfolio, blog, contact, footer, navigation, seo)
// @Success      200  {object}  object
// @Failure      404  {object}  ErrorResponse  "Unknown section"
// @Router       /content/{section} [get]
func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	doc, err := s.contentService.Snapshot()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	u, err := s.publicDocument(doc).Section(domain.SectionName(r.PathValue("section")))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.SectionValue(u))
}

// handleGetNavigation godoc
// @Summary      Get navigation
// @Description  Admin-only entries are included when a valid session token is sent
// @Tags         Content
// @Produce      json
// @Success      200  {array}  domain.NavItem
// @Router       /navigation [get]
func (s *Server) handleGetNavigation(w http.ResponseWriter, r *http.Request) {
	doc, err := s.contentService.Snapshot()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc.VisibleNavigation(s.optionalAuth(r)))
}

// handleGetHighlights godoc
// @Summary      Get home page highlights
// @Description  Highlighted projects; highlights of deleted projects are skipped
// @Tags         Content
// @Produce      json
// @Success      200  {array}  domain.ProjectItem
// @Router       /home/highlights [get]
func (s *Server) handleGetHighlights(w http.ResponseWriter, r *http.Request) {
	doc, err := s.contentService.Snapshot()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc.HighlightedProjects())
}

// handleListProjects godoc
// @Summary      List portfolio projects
// @Tags         Content
// @Produce      json
// @Param        category  query  string  false  "Filter by category"
// @Success      200  {array}  domain.ProjectItem
// @Router       /portfolio [get]
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	doc, err := s.contentService.Snapshot()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	category := domain.ProjectCategory(r.URL.Query().Get("category"))
	writeJSON(w, http.StatusOK, doc.ProjectsByCategory(category))
}

// handleListPosts godoc
// @Summary      List published posts
// @Tags         Blog
// @Produce      json
// @Success      200  {array}  domain.BlogPost
// @Router       /blog [get]
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	doc, err := s.contentService.Snapshot()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sanitizePosts(doc.PublishedPosts()))
}

// handleGetPost godoc
// @Summary      Get a published post
// @Tags         Blog
// @Produce      json
// @Param        slug  path  string  true  "Post slug"
// @Success      200  {object}  domain.BlogPost
// @Failure      404  {object}  ErrorResponse  "Post not found"
// @Router       /blog/{slug} [get]
func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	doc, err := s.contentService.Snapshot()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	post, ok := doc.FindPost(r.PathValue("slug"), false)
	if !ok {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	post.Content = s.sanitizer.Sanitize(post.Content)
	writeJSON(w, http.StatusOK, post)
}

// handleGetSEO godoc
// @Summary      Get page metadata
// @Description  Effective SEO for a post slug, or the site defaults for any other page
// @Tags         SEO
// @Produce      json
// @Param        slug  query  string  false  "Blog post slug"
// @Param        path  query  string  false  "Page path used for og:url"
// @Success      200  {object}  SEOResponse
// @Router       /seo [get]
func (s *Server) handleGetSEO(w http.ResponseWriter, r *http.Request) {
	doc, err := s.contentService.Snapshot()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	slug := r.URL.Query().Get("slug")
	path := r.URL.Query().Get("path")
	if _, ok := doc.FindPost(slug, false); slug != "" && ok {
		path = domain.PostPath(slug)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	seo := doc.EffectiveSEO(slug)
	writeJSON(w, http.StatusOK, SEOResponse{
		SEO:  seo,
		Head: domain.MetaTags(seo, s.siteOrigin+path),
	})
}

// handleRobots serves the robots.txt configured in the CMS settings
func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	settings, err := s.contentService.CmsSettings()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(settings.RobotsTxtContent))
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// handleSitemap lists public pages and published posts.
// It is 404 while the sitemap is disabled in the CMS settings.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	settings, err := s.contentService.CmsSettings()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if !settings.SitemapEnabled {
		http.NotFound(w, r)
		return
	}

	doc, err := s.contentService.Snapshot()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	dates := make(map[string]string)
	for _, p := range doc.PublishedPosts() {
		dates[domain.PostPath(p.Slug)] = p.Date
	}

	set := sitemapURLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, path := range doc.SitemapPaths() {
		set.URLs = append(set.URLs, sitemapURL{Loc: s.siteOrigin + path, LastMod: dates[path]})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		s.logger.Error("encode sitemap", "error", err)
	}
}
