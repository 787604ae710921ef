package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/foliocms/folio-core/internal/core/domain"
	"github.com/foliocms/folio-core/internal/core/ports/driven"
	"github.com/foliocms/folio-core/internal/core/ports/driving"
	"github.com/foliocms/folio-core/internal/metrics"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Stylesheet is the rendered theme served to the public site
type Stylesheet interface {
	Stylesheet() string
	FontLinks() []string
	RootClass() string
}

// EventSource hands out change-event subscriptions for the websocket stream
type EventSource interface {
	Subscribe(buffer int, stores ...domain.StoreName) (<-chan domain.ChangeEvent, func())
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	handler    http.Handler
	version    string
	siteOrigin string
	swagger    bool

	// Services
	contentService driving.ContentService
	themeService   driving.ThemeService
	sessionService driving.SessionService

	// Infrastructure
	sanitizer driven.HTMLSanitizer
	styles    Stylesheet
	events    EventSource
	metrics   *metrics.Metrics // optional
	store     Pinger           // backing store health check
	upgrader  websocket.Upgrader
	logger    *slog.Logger
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	SiteOrigin     string
	AllowedOrigins []string
	Swagger        bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:       "0.0.0.0",
		Port:       8080,
		Version:    "dev",
		SiteOrigin: "http://localhost:8080",
		Swagger:    true,
	}
}

// Dependencies are the services and adapters the server reads from
type Dependencies struct {
	Content   driving.ContentService
	Theme     driving.ThemeService
	Session   driving.SessionService
	Sanitizer driven.HTMLSanitizer
	Styles    Stylesheet
	Events    EventSource
	Metrics   *metrics.Metrics // nil disables /metrics
	Store     Pinger
	Logger    *slog.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:         http.NewServeMux(),
		version:        cfg.Version,
		siteOrigin:     cfg.SiteOrigin,
		swagger:        cfg.Swagger,
		contentService: deps.Content,
		themeService:   deps.Theme,
		sessionService: deps.Session,
		sanitizer:      deps.Sanitizer,
		styles:         deps.Styles,
		events:         deps.Events,
		metrics:        deps.Metrics,
		store:          deps.Store,
		logger:         logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.AllowedOrigins, cfg.SiteOrigin),
		},
	}

	s.setupRoutes()

	var h http.Handler = s.router
	if len(cfg.AllowedOrigins) > 0 {
		h = NewCORSMiddleware(cfg.AllowedOrigins).Handler(h)
	}
	h = NewLoggingMiddleware(logger).Handler(h)
	h = NewRecoveryMiddleware(logger).Handler(h)
	s.handler = h

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.sessionService)
	admin := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(authMiddleware.RequireAdmin(h))
	}

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Public content
	s.router.HandleFunc("GET /api/v1/content", s.handleGetContent)
	s.router.HandleFunc("GET /api/v1/content/{section}", s.handleGetSection)
	s.router.HandleFunc("GET /api/v1/navigation", s.handleGetNavigation)
	s.router.HandleFunc("GET /api/v1/home/highlights", s.handleGetHighlights)
	s.router.HandleFunc("GET /api/v1/portfolio", s.handleListProjects)
	s.router.HandleFunc("GET /api/v1/blog", s.handleListPosts)
	s.router.HandleFunc("GET /api/v1/blog/{slug}", s.handleGetPost)
	s.router.HandleFunc("GET /api/v1/seo", s.handleGetSEO)
	s.router.HandleFunc("GET /api/v1/theme", s.handleGetTheme)
	s.router.HandleFunc("GET /theme.css", s.handleThemeCSS)
	s.router.HandleFunc("GET /robots.txt", s.handleRobots)
	s.router.HandleFunc("GET /sitemap.xml", s.handleSitemap)
	s.router.HandleFunc("GET /api/v1/events", s.handleEvents)

	if s.swagger {
		s.router.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)
	}
	if s.metrics != nil {
		s.router.Handle("GET /metrics", s.metrics.Handler())
	}

	// Auth endpoints
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.router.Handle("POST /api/v1/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))
	s.router.Handle("GET /api/v1/me",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetMe)))

	// Content admin
	s.router.Handle("PUT /api/v1/admin/content/{section}", admin(s.handleReplaceSection))
	s.router.Handle("GET /api/v1/admin/blog", admin(s.handleAdminListPosts))
	s.router.Handle("POST /api/v1/admin/blog", admin(s.handleUpsertPost))
	s.router.Handle("GET /api/v1/admin/blog/{slug}", admin(s.handleAdminGetPost))
	s.router.Handle("DELETE /api/v1/admin/blog/{slug}", admin(s.handleDeletePost))
	s.router.Handle("PUT /api/v1/admin/seo", admin(s.handleUpdateSEO))
	s.router.Handle("GET /api/v1/admin/settings", admin(s.handleGetSettings))
	s.router.Handle("PUT /api/v1/admin/settings", admin(s.handleUpdateSettings))
	s.router.Handle("GET /api/v1/admin/media", admin(s.handleGetMedia))
	s.router.Handle("GET /api/v1/admin/stats", admin(s.handleGetStats))

	// Theme admin
	s.router.Handle("POST /api/v1/admin/theme/mode", admin(s.handleToggleMode))
	s.router.Handle("PUT /api/v1/admin/theme/colors/{key}", admin(s.handleSetColor))
	s.router.Handle("PUT /api/v1/admin/theme/fonts/{key}", admin(s.handleSetFont))
	s.router.Handle("POST /api/v1/admin/theme/preview", admin(s.handlePreviewTheme))
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
