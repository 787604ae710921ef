package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/foliocms/folio-core/internal/adapters/driven/auth"
	"github.com/foliocms/folio-core/internal/adapters/driven/sanitize"
	"github.com/foliocms/folio-core/internal/adapters/driven/style"
	httpadapter "github.com/foliocms/folio-core/internal/adapters/driving/http"
	"github.com/foliocms/folio-core/internal/config"
	"github.com/foliocms/folio-core/internal/core/ports/driven"
	"github.com/foliocms/folio-core/internal/core/ports/driving"
	"github.com/foliocms/folio-core/internal/core/services"
	"github.com/foliocms/folio-core/internal/metrics"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the stores and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen address (overrides HOST)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides PORT)")
	return cmd
}

// stores bundles the three services over one backing store
type stores struct {
	notifier *services.Notifier
	styles   *style.Applier
	content  driving.ContentService
	theme    driving.ThemeService
	session  driving.SessionService
}

func newStores(cfg *config.Config, kv driven.KeyValueStore) (*stores, error) {
	logger := slog.Default()
	notifier := services.NewNotifier(logger)
	styles := style.NewApplier()

	content := services.NewContentService(services.ContentServiceConfig{
		Store:      kv,
		Notifier:   notifier,
		Logger:     logger,
		SiteOrigin: cfg.SiteOrigin,
	})
	theme := services.NewThemeService(services.ThemeServiceConfig{
		Store:    kv,
		Styles:   styles,
		Notifier: notifier,
		Logger:   logger,
	})
	session, err := services.NewSessionService(services.SessionServiceConfig{
		Store:      kv,
		Auth:       auth.NewAdapter(cfg.JWTSecret),
		Notifier:   notifier,
		Logger:     logger,
		Username:   cfg.AdminUsername,
		Password:   cfg.AdminPassword,
		LoginDelay: cfg.LoginDelay,
		TokenTTL:   cfg.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}

	return &stores{
		notifier: notifier,
		styles:   styles,
		content:  content,
		theme:    theme,
		session:  session,
	}, nil
}

// load restores every store. Each one falls back to defaults on its own.
func (s *stores) load(ctx context.Context) {
	s.content.Load(ctx)
	s.theme.Load(ctx)
	s.session.Load(ctx)
}

func runServe(parent context.Context, cfg *config.Config) error {
	log.Printf("folio-core %s starting (backend=%s)", version, cfg.Backend)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	st, err := newStores(cfg, kv)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.NewMetrics(nil, st.notifier.Subscribers)
		st.notifier.AddHook(m.ObserveChange)
		log.Println("Metrics enabled on /metrics")
	}

	st.load(ctx)
	log.Printf("Stores loaded (authenticated=%t)", st.session.IsAuthenticated())

	server := httpadapter.NewServer(httpadapter.Config{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        version,
		SiteOrigin:     cfg.SiteOrigin,
		AllowedOrigins: cfg.AllowedOrigins,
		Swagger:        cfg.SwaggerEnabled,
	}, httpadapter.Dependencies{
		Content:   st.content,
		Theme:     st.theme,
		Session:   st.session,
		Sanitizer: sanitize.NewPolicy(),
		Styles:    st.styles,
		Events:    st.notifier,
		Metrics:   m,
		Store:     kv,
		Logger:    slog.Default(),
	})

	if err := server.Start(ctx); err != nil {
		return err
	}
	log.Println("Shutdown complete")
	return nil
}
