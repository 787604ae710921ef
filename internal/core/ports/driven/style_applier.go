package driven

import (
	"context"

	"github.com/foliocms/folio-core/internal/core/domain"
)

// StyleApplier pushes theme values into the live rendering environment.
// Both calls are idempotent and never touch persisted state.
type StyleApplier interface {
	// ApplyVariables replaces the active colors and fonts
	ApplyVariables(ctx context.Context, colors domain.ColorPalette, fonts domain.FontSettings) error

	// SetDarkMode toggles the dark-mode class on the document root
	SetDarkMode(ctx context.Context, dark bool) error
}
