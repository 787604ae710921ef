package driving

import (
	"context"

	"github.com/foliocms/folio-core/internal/core/domain"
)

// ThemeService owns the persisted theme and drives live style preview
type ThemeService interface {
	// Load reads the stored theme or substitutes the default, then applies it
	Load(ctx context.Context)

	// Ready reports whether Load has completed
	Ready() bool

	// Theme returns the current theme
	Theme() (domain.ThemeSettings, error)

	// ToggleMode flips between light and dark
	ToggleMode(ctx context.Context) (domain.ThemeSettings, error)

	// SetColor merges one color into the palette
	SetColor(ctx context.Context, key domain.ColorKey, value string) (domain.ThemeSettings, error)

	// SetFont merges one font family into the font settings
	SetFont(ctx context.Context, key domain.FontKey, value string) (domain.ThemeSettings, error)

	// ApplyVariables previews colors and fonts without persisting them
	ApplyVariables(ctx context.Context, colors domain.ColorPalette, fonts domain.FontSettings) error

	// Subscribe registers for change events. Call the returned func to unsubscribe.
	Subscribe(buffer int) (<-chan domain.ChangeEvent, func())
}
