package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/foliocms/folio-core/internal/core/domain"
	"github.com/foliocms/folio-core/internal/core/ports/driven"
	"github.com/foliocms/folio-core/internal/core/ports/driving"
)

// Ensure themeService implements ThemeService
var _ driving.ThemeService = (*themeService)(nil)

// themeService implements the ThemeService interface.
// Persisted state and applied styles may diverge while a preview is active.
type themeService struct {
	store    driven.KeyValueStore
	styles   driven.StyleApplier
	notifier *Notifier
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.Mutex
	ready bool
	theme domain.ThemeSettings

	// emitMu is taken before mu is released, so style pushes and events
	// follow commit order even when saves overlap
	emitMu sync.Mutex
}

// ThemeServiceConfig holds configuration for the theme service.
type ThemeServiceConfig struct {
	Store    driven.KeyValueStore
	Styles   driven.StyleApplier
	Notifier *Notifier    // Optional: shared change notifier
	Logger   *slog.Logger // Optional: defaults to slog.Default()
	Clock    func() time.Time
}

// NewThemeService creates a new ThemeService
func NewThemeService(cfg ThemeServiceConfig) driving.ThemeService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NewNotifier(logger)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &themeService{
		store:    cfg.Store,
		styles:   cfg.Styles,
		notifier: notifier,
		logger:   logger.With("store", domain.StoreTheme),
		now:      clock,
	}
}

// Load reads the stored theme, substituting and persisting the default when
// it is absent or unusable, then applies the loaded styles once.
func (s *themeService) Load(ctx context.Context) {
	s.mu.Lock()
	s.theme = s.loadTheme(ctx)
	s.ready = true
	theme := s.theme
	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	s.applyStyles(ctx, theme)
	s.notifier.Publish(ctx, domain.ChangeEvent{
		Store: domain.StoreTheme,
		Kind:  domain.ChangeLoaded,
		At:    s.now(),
	})
}

func (s *themeService) loadTheme(ctx context.Context) domain.ThemeSettings {
	data, err := s.store.Get(ctx, domain.KeyTheme)
	switch {
	case err == nil:
		theme, err := domain.DecodeThemeSettings(data)
		if err == nil {
			return theme
		}
		s.logger.Warn("stored theme unusable, using default", "error", err)
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Info("no stored theme, using default")
	default:
		s.logger.Warn("failed to read theme, using default", "error", err)
	}

	theme := domain.DefaultTheme()
	if err := s.write(ctx, theme); err != nil {
		s.logger.Warn("failed to persist default theme", "error", err)
	}
	return theme
}

// Ready reports whether Load has completed
func (s *themeService) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Theme returns the current theme
func (s *themeService) Theme() (domain.ThemeSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return domain.ThemeSettings{}, domain.ErrNotReady
	}
	return s.theme, nil
}

// ToggleMode flips between light and dark
func (s *themeService) ToggleMode(ctx context.Context) (domain.ThemeSettings, error) {
	event := domain.ChangeEvent{Kind: domain.ChangeThemeMode}
	return s.mutate(ctx, event, func(cur domain.ThemeSettings) (domain.ThemeSettings, error) {
		cur.Mode = cur.Mode.Toggle()
		return cur, nil
	})
}

// SetColor merges one color into the palette. The value is not validated.
func (s *themeService) SetColor(ctx context.Context, key domain.ColorKey, value string) (domain.ThemeSettings, error) {
	event := domain.ChangeEvent{Kind: domain.ChangeThemeColor, Key: string(key)}
	return s.mutate(ctx, event, func(cur domain.ThemeSettings) (domain.ThemeSettings, error) {
		colors, err := cur.Colors.With(key, value)
		if err != nil {
			return cur, err
		}
		cur.Colors = colors
		return cur, nil
	})
}

// SetFont merges one font family into the font settings
func (s *themeService) SetFont(ctx context.Context, key domain.FontKey, value string) (domain.ThemeSettings, error) {
	event := domain.ChangeEvent{Kind: domain.ChangeThemeFont, Key: string(key)}
	return s.mutate(ctx, event, func(cur domain.ThemeSettings) (domain.ThemeSettings, error) {
		fonts, err := cur.Fonts.With(key, value)
		if err != nil {
			return cur, err
		}
		cur.Fonts = fonts
		return cur, nil
	})
}

// ApplyVariables pushes colors and fonts to the style applier without
// touching the persisted theme, so unsaved drafts can be previewed.
func (s *themeService) ApplyVariables(ctx context.Context, colors domain.ColorPalette, fonts domain.FontSettings) error {
	if s.styles == nil {
		return nil
	}
	return s.styles.ApplyVariables(ctx, colors, fonts)
}

// Subscribe registers for theme change events
func (s *themeService) Subscribe(buffer int) (<-chan domain.ChangeEvent, func()) {
	return s.notifier.Subscribe(buffer, domain.StoreTheme)
}

func (s *themeService) mutate(
	ctx context.Context,
	event domain.ChangeEvent,
	fn func(cur domain.ThemeSettings) (domain.ThemeSettings, error),
) (domain.ThemeSettings, error) {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return domain.ThemeSettings{}, domain.ErrNotReady
	}

	next, err := fn(s.theme)
	if err != nil {
		s.mu.Unlock()
		return domain.ThemeSettings{}, err
	}
	if err := s.write(ctx, next); err != nil {
		s.mu.Unlock()
		return domain.ThemeSettings{}, fmt.Errorf("persist theme: %w", err)
	}
	s.theme = next
	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	s.applyStyles(ctx, next)

	event.Store = domain.StoreTheme
	event.At = s.now()
	s.notifier.Publish(ctx, event)
	return next, nil
}

// applyStyles pushes a whole theme to the style applier. Failures are logged;
// the theme is already persisted at this point.
func (s *themeService) applyStyles(ctx context.Context, theme domain.ThemeSettings) {
	if s.styles == nil {
		return
	}
	if err := s.styles.ApplyVariables(ctx, theme.Colors, theme.Fonts); err != nil {
		s.logger.Warn("failed to apply theme variables", "error", err)
	}
	if err := s.styles.SetDarkMode(ctx, theme.Mode == domain.ThemeDark); err != nil {
		s.logger.Warn("failed to apply theme mode", "error", err)
	}
}

func (s *themeService) write(ctx context.Context, theme domain.ThemeSettings) error {
	data, err := json.Marshal(theme)
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}
	return s.store.Set(ctx, domain.KeyTheme, data)
}
