package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ThemeMode is the light/dark appearance of the site
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Toggle returns the opposite mode
func (m ThemeMode) Toggle() ThemeMode {
	if m == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsValid returns true if this is a known mode
func (m ThemeMode) IsValid() bool {
	return m == ThemeLight || m == ThemeDark
}

// ColorPalette holds the ten named theme colors. Values are not validated.
type ColorPalette struct {
	Primary            string `json:"primary" yaml:"primary"`
	Secondary          string `json:"secondary" yaml:"secondary"`
	Background         string `json:"background" yaml:"background"`
	BackgroundDark     string `json:"backgroundDark" yaml:"backgroundDark"`
	TextLight          string `json:"textLight" yaml:"textLight"`
	TextDark           string `json:"textDark" yaml:"textDark"`
	CardBackground     string `json:"cardBackground" yaml:"cardBackground"`
	CardBackgroundDark string `json:"cardBackgroundDark" yaml:"cardBackgroundDark"`
	Border             string `json:"border" yaml:"border"`
	BorderDark         string `json:"borderDark" yaml:"borderDark"`
}

// FontSettings holds Google Font family names
type FontSettings struct {
	Primary string `json:"primary" yaml:"primary"`
	Heading string `json:"heading" yaml:"heading"`
}

// ThemeSettings is the persisted theme record
type ThemeSettings struct {
	Mode   ThemeMode    `json:"mode" yaml:"mode"`
	Colors ColorPalette `json:"colors" yaml:"colors"`
	Fonts  FontSettings `json:"fonts" yaml:"fonts"`
}

// DefaultTheme returns the theme used when none is stored
func DefaultTheme() ThemeSettings {
	return ThemeSettings{
		Mode: ThemeLight,
		Colors: ColorPalette{
			Primary:            "#4F46E5",
			Secondary:          "#10B981",
			Background:         "#F9FAFB",
			BackgroundDark:     "#1F2937",
			TextLight:          "#1F2937",
			TextDark:           "#F9FAFB",
			CardBackground:     "#FFFFFF",
			CardBackgroundDark: "#374151",
			Border:             "#D1D5DB",
			BorderDark:         "#4B5563",
		},
		Fonts: FontSettings{
			Primary: "Inter",
			Heading: "Inter",
		},
	}
}

// ColorKey names one field of the ColorPalette
type ColorKey string

const (
	ColorPrimary            ColorKey = "primary"
	ColorSecondary          ColorKey = "secondary"
	ColorBackground         ColorKey = "background"
	ColorBackgroundDark     ColorKey = "backgroundDark"
	ColorTextLight          ColorKey = "textLight"
	ColorTextDark           ColorKey = "textDark"
	ColorCardBackground     ColorKey = "cardBackground"
	ColorCardBackgroundDark ColorKey = "cardBackgroundDark"
	ColorBorder             ColorKey = "border"
	ColorBorderDark         ColorKey = "borderDark"
)

// ColorKeys lists every palette field in declaration order
var ColorKeys = []ColorKey{
	ColorPrimary, ColorSecondary, ColorBackground, ColorBackgroundDark, ColorTextLight,
	ColorTextDark, ColorCardBackground, ColorCardBackgroundDark, ColorBorder, ColorBorderDark,
}

// field returns a pointer to the palette field named by key, or nil
func (c *ColorPalette) field(key ColorKey) *string {
	switch key {
	case ColorPrimary:
		return &c.Primary
	case ColorSecondary:
		return &c.Secondary
	case ColorBackground:
		return &c.Background
	case ColorBackgroundDark:
		return &c.BackgroundDark
	case ColorTextLight:
		return &c.TextLight
	case ColorTextDark:
		return &c.TextDark
	case ColorCardBackground:
		return &c.CardBackground
	case ColorCardBackgroundDark:
		return &c.CardBackgroundDark
	case ColorBorder:
		return &c.Border
	case ColorBorderDark:
		return &c.BorderDark
	default:
		return nil
	}
}

// Get returns the value of one color
func (c ColorPalette) Get(key ColorKey) (string, error) {
	f := c.field(key)
	if f == nil {
		return "", fmt.Errorf("unknown color %q: %w", key, ErrInvalidInput)
	}
	return *f, nil
}

// With returns a copy of the palette with one color replaced
func (c ColorPalette) With(key ColorKey, value string) (ColorPalette, error) {
	f := c.field(key)
	if f == nil {
		return c, fmt.Errorf("unknown color %q: %w", key, ErrInvalidInput)
	}
	*f = value
	return c, nil
}

// FontKey names one field of FontSettings
type FontKey string

const (
	FontPrimary FontKey = "primary"
	FontHeading FontKey = "heading"
)

// With returns a copy of the font settings with one family replaced
func (f FontSettings) With(key FontKey, value string) (FontSettings, error) {
	switch key {
	case FontPrimary:
		f.Primary = value
	case FontHeading:
		f.Heading = value
	default:
		return f, fmt.Errorf("unknown font %q: %w", key, ErrInvalidInput)
	}
	return f, nil
}

// CSSVariable is one custom property on the document root
type CSSVariable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CSSVariables maps a palette and font settings to the custom properties
// consumed by the site stylesheet, in a stable order.
func CSSVariables(colors ColorPalette, fonts FontSettings) []CSSVariable {
	return []CSSVariable{
		{"--color-primary", colors.Primary},
		{"--color-secondary", colors.Secondary},
		{"--color-background", colors.Background},
		{"--color-background-dark", colors.BackgroundDark},
		{"--color-text-light", colors.TextLight},
		{"--color-text-dark", colors.TextDark},
		{"--color-card-background", colors.CardBackground},
		{"--color-card-background-dark", colors.CardBackgroundDark},
		{"--color-border", colors.Border},
		{"--color-border-dark", colors.BorderDark},
		{"--font-primary", fmt.Sprintf("'%s', sans-serif", fonts.Primary)},
		{"--font-heading", fmt.Sprintf("'%s', sans-serif", fonts.Heading)},
	}
}

// DecodeThemeSettings parses a stored theme. Records with an unknown mode or
// with any color or font missing or empty are rejected.
func DecodeThemeSettings(data []byte) (ThemeSettings, error) {
	var raw struct {
		Mode   ThemeMode     `json:"mode"`
		Colors *ColorPalette `json:"colors"`
		Fonts  *FontSettings `json:"fonts"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return ThemeSettings{}, fmt.Errorf("parse theme: %w", err)
	}
	if !raw.Mode.IsValid() || raw.Colors == nil || raw.Fonts == nil {
		return ThemeSettings{}, errors.New("incomplete theme record")
	}
	for _, key := range ColorKeys {
		if *raw.Colors.field(key) == "" {
			return ThemeSettings{}, fmt.Errorf("theme record missing color %q", key)
		}
	}
	if raw.Fonts.Primary == "" || raw.Fonts.Heading == "" {
		return ThemeSettings{}, errors.New("theme record missing font")
	}
	return ThemeSettings{Mode: raw.Mode, Colors: *raw.Colors, Fonts: *raw.Fonts}, nil
}
