package mocks

import (
	"context"
	"sync"

	"github.com/foliocms/folio-core/internal/core/domain"
	"github.com/foliocms/folio-core/internal/core/ports/driven"
)

// Ensure MockStyleApplier implements StyleApplier
var _ driven.StyleApplier = (*MockStyleApplier)(nil)

// MockStyleApplier records what was applied
type MockStyleApplier struct {
	mu sync.Mutex

	Colors       domain.ColorPalette
	Fonts        domain.FontSettings
	Dark         bool
	ApplyCalls   int
	DarkModeSets int
}

// NewMockStyleApplier creates a new MockStyleApplier
func NewMockStyleApplier() *MockStyleApplier {
	return &MockStyleApplier{}
}

func (m *MockStyleApplier) ApplyVariables(ctx context.Context, colors domain.ColorPalette, fonts domain.FontSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Colors = colors
	m.Fonts = fonts
	m.ApplyCalls++
	return nil
}

func (m *MockStyleApplier) SetDarkMode(ctx context.Context, dark bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dark = dark
	m.DarkModeSets++
	return nil
}
