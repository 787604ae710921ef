package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/foliocms/folio-core/internal/core/domain"
)

// maxBodyBytes caps admin request bodies; a whole content section fits comfortably
const maxBodyBytes = 4 << 20

// handleReplaceSection godoc
// @Summary      Replace a content section
// @Description  Replaces one top-level section of the content document wholesale
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        section  path  string  true  "Section name"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Invalid body"
// @Failure      404  {object}  ErrorResponse  "Unknown section"
// @Router       /admin/content/{section} [put]
func (s *Server) handleReplaceSection(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update, err := domain.DecodeSectionUpdate(domain.SectionName(r.PathValue("section")), body)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	if err := s.contentService.ReplaceSection(r.Context(), update); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleAdminListPosts godoc
// @Summary      List all posts
// @Description  Published posts and drafts, unsanitized for editing
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.BlogPost
// @Router       /admin/blog [get]
func (s *Server) handleAdminListPosts(w http.ResponseWriter, r *http.Request) {
	doc, err := s.contentService.Snapshot()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	posts := doc.Blog
	if posts == nil {
		posts = []domain.BlogPost{}
	}
	writeJSON(w, http.StatusOK, posts)
}

// handleUpsertPost godoc
// @Summary      Create or update a post
// @Description  Replaces the post with the same slug, or appends a new one
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.BlogPost  true  "Post"
// @Success      200  {object}  domain.BlogPost
// @Failure      400  {object}  ErrorResponse  "Invalid post"
// @Router       /admin/blog [post]
func (s *Server) handleUpsertPost(w http.ResponseWriter, r *http.Request) {
	var post domain.BlogPost
	if err := decodeBody(w, r, &post); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := s.contentService.UpsertBlogPost(r.Context(), post)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// handleAdminGetPost godoc
// @Summary      Get a post for editing
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path  string  true  "Post slug"
// @Success      200  {object}  domain.BlogPost
// @Failure      404  {object}  ErrorResponse  "Post not found"
// @Router       /admin/blog/{slug} [get]
func (s *Server) handleAdminGetPost(w http.ResponseWriter, r *http.Request) {
	doc, err := s.contentService.Snapshot()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	post, ok := doc.FindPost(r.PathValue("slug"), true)
	if !ok {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// handleDeletePost godoc
// @Summary      Delete a post
// @Description  Deleting an unknown slug succeeds without changes
// @Tags         Admin
// @Security     BearerAuth
// @Param        slug  path  string  true  "Post slug"
// @Success      204
// @Router       /admin/blog/{slug} [delete]
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.contentService.DeleteBlogPost(r.Context(), r.PathValue("slug")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateSEO godoc
// @Summary      Replace site SEO defaults
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.SEOData  true  "SEO defaults"
// @Success      200  {object}  StatusResponse
// @Router       /admin/seo [put]
func (s *Server) handleUpdateSEO(w http.ResponseWriter, r *http.Request) {
	var seo domain.SEOData
	if err := decodeBody(w, r, &seo); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.contentService.UpdateGlobalSEO(r.Context(), seo); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleGetSettings godoc
// @Summary      Get CMS settings
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CmsSettings
// @Router       /admin/settings [get]
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.contentService.CmsSettings()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleUpdateSettings godoc
// @Summary      Replace CMS settings
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CmsSettings  true  "Settings"
// @Success      200  {object}  domain.CmsSettings
// @Router       /admin/settings [put]
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.CmsSettings
	if err := decodeBody(w, r, &settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.contentService.UpdateCmsSettings(r.Context(), settings); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleGetMedia godoc
// @Summary      Media library
// @Description  Every distinct image URL referenced by the content
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.MediaItem
// @Router       /admin/media [get]
func (s *Server) handleGetMedia(w http.ResponseWriter, r *http.Request) {
	doc, err := s.contentService.Snapshot()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc.MediaLibrary())
}

// handleGetStats godoc
// @Summary      Dashboard statistics
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DashboardStats
// @Router       /admin/stats [get]
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	doc, err := s.contentService.Snapshot()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc.Stats())
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
