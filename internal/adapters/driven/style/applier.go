// Package style renders the active theme as a stylesheet for the public site.
package style

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/foliocms/folio-core/internal/core/domain"
	"github.com/foliocms/folio-core/internal/core/ports/driven"
)

const (
	fontsURL       = "https://fonts.googleapis.com/css2"
	bodyWeights    = "300;400;500;600;700"
	headingWeights = "700"

	// DarkClass is set on the document root while dark mode is on
	DarkClass = "dark"
)

// Verify interface compliance
var _ driven.StyleApplier = (*Applier)(nil)

// Applier holds the variables last pushed by the theme store.
// It is the server-side stand-in for the live document root.
type Applier struct {
	mu     sync.RWMutex
	colors domain.ColorPalette
	fonts  domain.FontSettings
	dark   bool
}

// NewApplier starts from the default theme so the stylesheet is never empty
func NewApplier() *Applier {
	def := domain.DefaultTheme()
	return &Applier{colors: def.Colors, fonts: def.Fonts, dark: def.Mode == domain.ThemeDark}
}

// ApplyVariables replaces the active colors and fonts
func (a *Applier) ApplyVariables(ctx context.Context, colors domain.ColorPalette, fonts domain.FontSettings) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.colors = colors
	a.fonts = fonts
	return nil
}

// SetDarkMode toggles the dark class
func (a *Applier) SetDarkMode(ctx context.Context, dark bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dark = dark
	return nil
}

// Dark reports whether the dark class is set
func (a *Applier) Dark() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dark
}

// RootClass is the class attribute for the document root
func (a *Applier) RootClass() string {
	if a.Dark() {
		return DarkClass
	}
	return ""
}

// FontLinks returns the font stylesheet URLs. The heading font gets its own
// link only when it differs from the body font.
func (a *Applier) FontLinks() []string {
	a.mu.RLock()
	fonts := a.fonts
	a.mu.RUnlock()

	links := []string{fontLink(fonts.Primary, bodyWeights)}
	if fonts.Heading != fonts.Primary {
		links = append(links, fontLink(fonts.Heading, headingWeights))
	}
	return links
}

func fontLink(family, weights string) string {
	return fmt.Sprintf("%s?family=%s:wght@%s&display=swap", fontsURL, strings.ReplaceAll(strings.TrimSpace(family), " ", "+"), weights)
}

// Stylesheet renders the font imports and the :root custom properties.
// Dark mode adds a color-scheme hint.
func (a *Applier) Stylesheet() string {
	a.mu.RLock()
	colors, fonts, dark := a.colors, a.fonts, a.dark
	a.mu.RUnlock()

	var b strings.Builder
	for _, link := range a.FontLinks() {
		fmt.Fprintf(&b, "@import url(%q);\n", link)
	}

	b.WriteString(":root {\n")
	for _, v := range domain.CSSVariables(colors, fonts) {
		fmt.Fprintf(&b, "  %s: %s;\n", v.Name, cssValue(v.Value))
	}
	b.WriteString("}\n")

	if dark {
		b.WriteString(":root { color-scheme: dark; }\n")
	}
	return b.String()
}

// cssValue drops characters that would end the declaration or the block
func cssValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\n', '\r':
			return -1
		}
		return r
	}, v)
}
