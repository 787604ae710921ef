package style

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocms/folio-core/internal/core/domain"
)

func TestNewApplier_DefaultTheme(t *testing.T) {
	a := NewApplier()
	def := domain.DefaultTheme()

	css := a.Stylesheet()
	assert.Contains(t, css, "--color-primary: "+def.Colors.Primary+";")
	assert.Equal(t, def.Mode == domain.ThemeDark, a.Dark())
}

func TestApplier_ApplyVariables(t *testing.T) {
	a := NewApplier()
	colors := domain.DefaultTheme().Colors
	colors.Primary = "#ff0000"
	fonts := domain.FontSettings{Primary: "Open Sans", Heading: "Playfair Display"}

	require.NoError(t, a.ApplyVariables(context.Background(), colors, fonts))

	css := a.Stylesheet()
	assert.Contains(t, css, "--color-primary: #ff0000;")
	assert.Contains(t, css, "--font-primary: 'Open Sans', sans-serif;")
	assert.Contains(t, css, "--font-heading: 'Playfair Display', sans-serif;")
	assert.True(t, strings.HasPrefix(css, "@import url("), "imports must come first")
}

func TestApplier_ApplyIsIdempotent(t *testing.T) {
	a := NewApplier()
	theme := domain.DefaultTheme()
	ctx := context.Background()

	require.NoError(t, a.ApplyVariables(ctx, theme.Colors, theme.Fonts))
	first := a.Stylesheet()
	require.NoError(t, a.ApplyVariables(ctx, theme.Colors, theme.Fonts))

	assert.Equal(t, first, a.Stylesheet())
}

func TestApplier_FontLinks(t *testing.T) {
	tests := []struct {
		name  string
		fonts domain.FontSettings
		want  []string
	}{
		{
			name:  "same font yields one link",
			fonts: domain.FontSettings{Primary: "Inter", Heading: "Inter"},
			want: []string{
				"https://fonts.googleapis.com/css2?family=Inter:wght@300;400;500;600;700&display=swap",
			},
		},
		{
			name:  "different heading font adds a bold link",
			fonts: domain.FontSettings{Primary: "Open Sans", Heading: "Playfair Display"},
			want: []string{
				"https://fonts.googleapis.com/css2?family=Open+Sans:wght@300;400;500;600;700&display=swap",
				"https://fonts.googleapis.com/css2?family=Playfair+Display:wght@700&display=swap",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewApplier()
			require.NoError(t, a.ApplyVariables(context.Background(), domain.DefaultTheme().Colors, tt.fonts))
			assert.Equal(t, tt.want, a.FontLinks())
		})
	}
}

func TestApplier_SetDarkMode(t *testing.T) {
	a := NewApplier()
	ctx := context.Background()

	require.NoError(t, a.SetDarkMode(ctx, true))
	assert.True(t, a.Dark())
	assert.Equal(t, DarkClass, a.RootClass())
	assert.Contains(t, a.Stylesheet(), "color-scheme: dark")

	require.NoError(t, a.SetDarkMode(ctx, false))
	assert.False(t, a.Dark())
	assert.Empty(t, a.RootClass())
	assert.NotContains(t, a.Stylesheet(), "color-scheme: dark")
}

func TestApplier_ValuesCannotEscapeDeclaration(t *testing.T) {
	a := NewApplier()
	colors := domain.DefaultTheme().Colors
	colors.Primary = "red;} body { display:none"

	require.NoError(t, a.ApplyVariables(context.Background(), colors, domain.DefaultTheme().Fonts))

	css := a.Stylesheet()
	assert.Contains(t, css, "--color-primary: red body  display:none;")
	assert.Equal(t, 1, strings.Count(css, ":root {\n"))
}
