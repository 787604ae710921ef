package http

import (
	"net/http"

	"github.com/foliocms/folio-core/internal/core/domain"
)

// ThemeResponse is the persisted theme plus what it renders to
// @Description Theme settings with derived CSS variables and font links
type ThemeResponse struct {
	domain.ThemeSettings
	Variables []domain.CSSVariable `json:"variables"`
	FontLinks []string             `json:"fontLinks"`
}

// ThemeValueRequest sets one color or font
// @Description Single theme value
type ThemeValueRequest struct {
	Value string `json:"value" example:"#3b82f6"`
}

// ThemePreviewRequest previews colors and fonts without saving
// @Description Colors and fonts to preview
type ThemePreviewRequest struct {
	Colors domain.ColorPalette `json:"colors"`
	Fonts  domain.FontSettings `json:"fonts"`
}

func (s *Server) themeResponse(theme domain.ThemeSettings) ThemeResponse {
	return ThemeResponse{
		ThemeSettings: theme,
		Variables:     domain.CSSVariables(theme.Colors, theme.Fonts),
		FontLinks:     s.styles.FontLinks(),
	}
}

// handleGetTheme godoc
// @Summary      Get theme
// @Tags         Theme
// @Produce      json
// @Success      200  {object}  ThemeResponse
// @Router       /theme [get]
func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.themeService.Theme()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.themeResponse(theme))
}

// handleThemeCSS serves the active stylesheet, including any unsaved preview
func (s *Server) handleThemeCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if class := s.styles.RootClass(); class != "" {
		w.Header().Set("X-Root-Class", class)
	}
	_, _ = w.Write([]byte(s.styles.Stylesheet()))
}

// handleToggleMode godoc
// @Summary      Toggle light/dark mode
// @Tags         Theme
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ThemeResponse
// @Router       /admin/theme/mode [post]
func (s *Server) handleToggleMode(w http.ResponseWriter, r *http.Request) {
	theme, err := s.themeService.ToggleMode(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.themeResponse(theme))
}

// handleSetColor godoc
// @Summary      Set a theme color
// @Tags         Theme
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key      path  string             true  "Color key"
// @Param        request  body  ThemeValueRequest  true  "Color value"
// @Success      200  {object}  ThemeResponse
// @Failure      400  {object}  ErrorResponse  "Unknown color key"
// @Router       /admin/theme/colors/{key} [put]
func (s *Server) handleSetColor(w http.ResponseWriter, r *http.Request) {
	var req ThemeValueRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	theme, err := s.themeService.SetColor(r.Context(), domain.ColorKey(r.PathValue("key")), req.Value)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.themeResponse(theme))
}

// handleSetFont godoc
// @Summary      Set a theme font
// @Tags         Theme
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key      path  string             true  "Font key"  Enums(primary, heading)
// @Param        request  body  ThemeValueRequest  true  "Font family"
// @Success      200  {object}  ThemeResponse
// @Failure      400  {object}  ErrorResponse  "Unknown font key"
// @Router       /admin/theme/fonts/{key} [put]
func (s *Server) handleSetFont(w http.ResponseWriter, r *http.Request) {
	var req ThemeValueRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	theme, err := s.themeService.SetFont(r.Context(), domain.FontKey(r.PathValue("key")), req.Value)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.themeResponse(theme))
}

// handlePreviewTheme godoc
// @Summary      Preview theme values
// @Description  Applies colors and fonts to the live stylesheet without saving them
// @Tags         Theme
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  ThemePreviewRequest  true  "Preview values"
// @Success      200  {object}  StatusResponse
// @Router       /admin/theme/preview [post]
func (s *Server) handlePreviewTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemePreviewRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.themeService.ApplyVariables(r.Context(), req.Colors, req.Fonts); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
