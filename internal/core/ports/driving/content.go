package driving

import (
	"context"

	"github.com/foliocms/folio-core/internal/core/domain"
)

// ContentService owns the content document and CMS settings.
// Mutations are persisted before they become visible.
type ContentService interface {
	// Load reads stored content or substitutes defaults. It never fails.
	Load(ctx context.Context)

	// Ready reports whether Load has completed
	Ready() bool

	// Snapshot returns a deep copy of the current document
	Snapshot() (*domain.ContentDocument, error)

	// ReplaceSection replaces one top-level section wholesale
	ReplaceSection(ctx context.Context, update domain.SectionUpdate) error

	// UpsertBlogPost replaces the post with the same slug or appends a new one
	UpsertBlogPost(ctx context.Context, post domain.BlogPost) (*domain.BlogPost, error)

	// DeleteBlogPost removes a post. Deleting an unknown slug is a no-op.
	DeleteBlogPost(ctx context.Context, slug string) error

	// UpdateGlobalSEO replaces the site-wide SEO defaults
	UpdateGlobalSEO(ctx context.Context, seo domain.SEOData) error

	// CmsSettings returns the current CMS settings
	CmsSettings() (domain.CmsSettings, error)

	// UpdateCmsSettings replaces the CMS settings
	UpdateCmsSettings(ctx context.Context, settings domain.CmsSettings) error

	// Subscribe registers for change events. Call the returned func to unsubscribe.
	Subscribe(buffer int) (<-chan domain.ChangeEvent, func())
}
