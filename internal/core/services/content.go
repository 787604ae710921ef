package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/foliocms/folio-core/internal/core/domain"
	"github.com/foliocms/folio-core/internal/core/ports/driven"
	"github.com/foliocms/folio-core/internal/core/ports/driving"
)

// Ensure contentService implements ContentService
var _ driving.ContentService = (*contentService)(nil)

// errNoChange aborts a mutation that would leave the document as it is
var errNoChange = errors.New("no change")

// contentService implements the ContentService interface.
// All reads and writes are serialised by mu; the document is only replaced
// after the backing store has accepted the new version.
type contentService struct {
	store    driven.KeyValueStore
	notifier *Notifier
	logger   *slog.Logger
	origin   string
	now      func() time.Time

	mu       sync.Mutex
	ready    bool
	doc      *domain.ContentDocument
	settings domain.CmsSettings

	// emitMu is taken before mu is released, so events follow commit order
	emitMu sync.Mutex
}

// ContentServiceConfig holds configuration for the content service.
type ContentServiceConfig struct {
	Store      driven.KeyValueStore
	Notifier   *Notifier    // Optional: shared change notifier
	Logger     *slog.Logger // Optional: defaults to slog.Default()
	SiteOrigin string       // Public origin used in the default robots.txt
	Clock      func() time.Time
}

// NewContentService creates a new ContentService
func NewContentService(cfg ContentServiceConfig) driving.ContentService {
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

	return &contentService{
		store:    cfg.Store,
		notifier: notifier,
		logger:   logger.With("store", domain.StoreContent),
		origin:   cfg.SiteOrigin,
		now:      clock,
	}
}

// Load reads the stored document and settings, substituting and persisting
// defaults for anything absent or unusable. It never fails.
func (s *contentService) Load(ctx context.Context) {
	s.mu.Lock()
	s.doc = s.loadDocument(ctx)
	s.settings = s.loadSettings(ctx)
	s.ready = true
	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	s.notifier.Publish(ctx, domain.ChangeEvent{
		Store: domain.StoreContent,
		Kind:  domain.ChangeLoaded,
		At:    s.now(),
	})
}

func (s *contentService) loadDocument(ctx context.Context) *domain.ContentDocument {
	data, err := s.store.Get(ctx, domain.KeyContent)
	switch {
	case err == nil:
		doc, err := domain.DecodeContentDocument(data)
		if err == nil {
			return doc
		}
		s.logger.Warn("stored content unusable, using defaults", "error", err)
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Info("no stored content, using defaults")
	default:
		s.logger.Warn("failed to read content, using defaults", "error", err)
	}

	doc := domain.DefaultContent()
	if err := s.write(ctx, domain.KeyContent, doc); err != nil {
		s.logger.Warn("failed to persist default content", "error", err)
	}
	return doc
}

func (s *contentService) loadSettings(ctx context.Context) domain.CmsSettings {
	data, err := s.store.Get(ctx, domain.KeyCmsSettings)
	switch {
	case err == nil:
		var settings domain.CmsSettings
		if err := json.Unmarshal(data, &settings); err == nil {
			return settings
		}
		s.logger.Warn("stored cms settings unusable, using defaults", "error", err)
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Info("no stored cms settings, using defaults")
	default:
		s.logger.Warn("failed to read cms settings, using defaults", "error", err)
	}

	settings := domain.DefaultCmsSettings(s.origin)
	if err := s.write(ctx, domain.KeyCmsSettings, settings); err != nil {
		s.logger.Warn("failed to persist default cms settings", "error", err)
	}
	return settings
}

// Ready reports whether Load has completed
func (s *contentService) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Snapshot returns a deep copy of the current document
func (s *contentService) Snapshot() (*domain.ContentDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil, domain.ErrNotReady
	}
	return s.doc.Clone(), nil
}

// ReplaceSection replaces one top-level section wholesale. The value is not validated.
func (s *contentService) ReplaceSection(ctx context.Context, update domain.SectionUpdate) error {
	if update == nil {
		return fmt.Errorf("nil section update: %w", domain.ErrInvalidInput)
	}

	event := domain.ChangeEvent{
		Kind:    domain.ChangeSectionUpdated,
		Section: update.Section(),
	}
	return s.mutate(ctx, event, func(cur *domain.ContentDocument) (*domain.ContentDocument, error) {
		return domain.Apply(cur, update), nil
	})
}

// UpsertBlogPost normalises a post and stores it, replacing the post with the
// same slug in place or appending it. SEO is resolved once, here.
func (s *contentService) UpsertBlogPost(ctx context.Context, post domain.BlogPost) (*domain.BlogPost, error) {
	post = post.Clone()
	post.Tags = domain.NormalizeTags(post.Tags)
	// a stored slug that predates normalisation is still matched as given
	explicit := strings.TrimSpace(post.Slug)
	if post.Slug == "" {
		post.Slug = post.Title
	}
	post.Slug = domain.Slugify(post.Slug)
	if post.Slug == "" {
		return nil, fmt.Errorf("post needs a title or slug: %w", domain.ErrInvalidInput)
	}
	if post.Date == "" {
		post.Date = s.now().Format(domain.DateLayout)
	}

	var saved domain.BlogPost
	event := domain.ChangeEvent{
		Kind:    domain.ChangePostUpserted,
		Section: domain.SectionBlog,
		Key:     post.Slug,
	}
	err := s.mutate(ctx, event, func(cur *domain.ContentDocument) (*domain.ContentDocument, error) {
		next := cur.Clone()

		seo := domain.ResolvePostSEO(post.SEO, post.Title, post.Excerpt, post.Image, next.SEO)
		post.SEO = &seo

		i := -1
		if explicit != "" {
			i = next.PostIndex(explicit)
		}
		if i < 0 {
			i = next.PostIndex(post.Slug)
		}
		if i >= 0 {
			if post.ID == "" {
				post.ID = next.Blog[i].ID
			}
			next.Blog[i] = post
		} else {
			if post.ID == "" {
				post.ID = uuid.NewString()
			}
			next.Blog = append(next.Blog, post)
		}

		saved = post.Clone()
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteBlogPost removes every post with the given slug. An unknown slug is
// not an error.
func (s *contentService) DeleteBlogPost(ctx context.Context, slug string) error {
	event := domain.ChangeEvent{
		Kind:    domain.ChangePostDeleted,
		Section: domain.SectionBlog,
		Key:     slug,
	}
	err := s.mutate(ctx, event, func(cur *domain.ContentDocument) (*domain.ContentDocument, error) {
		if cur.PostIndex(slug) < 0 {
			return nil, errNoChange
		}
		next := cur.Clone()
		next.Blog = slices.DeleteFunc(next.Blog, func(p domain.BlogPost) bool {
			return p.Slug == slug
		})
		return next, nil
	})
	if errors.Is(err, errNoChange) {
		s.logger.Debug("delete of unknown post ignored", "slug", slug)
		return nil
	}
	return err
}

// UpdateGlobalSEO replaces the site-wide SEO defaults
func (s *contentService) UpdateGlobalSEO(ctx context.Context, seo domain.SEOData) error {
	event := domain.ChangeEvent{
		Kind:    domain.ChangeSEOUpdated,
		Section: domain.SectionSEO,
	}
	return s.mutate(ctx, event, func(cur *domain.ContentDocument) (*domain.ContentDocument, error) {
		return domain.Apply(cur, domain.SEOSection{Value: seo}), nil
	})
}

// CmsSettings returns the current CMS settings
func (s *contentService) CmsSettings() (domain.CmsSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return domain.CmsSettings{}, domain.ErrNotReady
	}
	return s.settings, nil
}

// UpdateCmsSettings replaces the CMS settings
func (s *contentService) UpdateCmsSettings(ctx context.Context, settings domain.CmsSettings) error {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return domain.ErrNotReady
	}
	if err := s.write(ctx, domain.KeyCmsSettings, settings); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist cms settings: %w", err)
	}
	s.settings = settings
	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	s.notifier.Publish(ctx, domain.ChangeEvent{
		Store: domain.StoreSettings,
		Kind:  domain.ChangeSettings,
		At:    s.now(),
	})
	return nil
}

// Subscribe registers for content and settings change events
func (s *contentService) Subscribe(buffer int) (<-chan domain.ChangeEvent, func()) {
	return s.notifier.Subscribe(buffer, domain.StoreContent, domain.StoreSettings)
}

// mutate applies fn to the current document and commits the result only if
// it was persisted. Subscribers are notified in commit order after mu is released.
func (s *contentService) mutate(
	ctx context.Context,
	event domain.ChangeEvent,
	fn func(cur *domain.ContentDocument) (*domain.ContentDocument, error),
) error {
	if err := s.commit(ctx, fn); err != nil {
		return err
	}
	defer s.emitMu.Unlock()

	event.Store = domain.StoreContent
	event.At = s.now()
	s.notifier.Publish(ctx, event)
	return nil
}

// commit holds emitMu on success; the caller releases it after publishing
func (s *contentService) commit(ctx context.Context, fn func(cur *domain.ContentDocument) (*domain.ContentDocument, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return domain.ErrNotReady
	}

	next, err := fn(s.doc)
	if err != nil {
		return err
	}
	if err := s.write(ctx, domain.KeyContent, next); err != nil {
		return fmt.Errorf("persist content: %w", err)
	}
	s.doc = next
	s.emitMu.Lock()
	return nil
}

// write serialises v and stores it under key
func (s *contentService) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.store.Set(ctx, key, data)
}
