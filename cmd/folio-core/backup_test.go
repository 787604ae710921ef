package main

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocms/folio-core/internal/config"
	"github.com/foliocms/folio-core/internal/core/domain"
	"github.com/foliocms/folio-core/internal/core/ports/driven/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		AdminUsername: "admin",
		AdminPassword: "secret",
		JWTSecret:     "test-secret",
		LoginDelay:    -1,
		SessionTTL:    1,
		SiteOrigin:    "https://example.com",
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()

	src := mocks.NewMockKeyValueStore()
	st, err := newStores(testConfig(), src)
	require.NoError(t, err)

	st.load(ctx)
	_, err = st.content.UpsertBlogPost(ctx, domain.BlogPost{Title: "Exported Post", Tags: domain.Tags{"go"}})
	require.NoError(t, err)
	_, err = st.theme.ToggleMode(ctx)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exportBackup(ctx, st, &buf))
	assert.Contains(t, buf.String(), "version: 1")
	assert.Contains(t, buf.String(), "exported-post")

	dst := mocks.NewMockKeyValueStore()
	require.NoError(t, importBackup(ctx, dst, &buf))

	restored, err := newStores(testConfig(), dst)
	require.NoError(t, err)
	restored.load(ctx)

	doc, err := restored.content.Snapshot()
	require.NoError(t, err)
	post, ok := doc.FindPost("exported-post", true)
	require.True(t, ok)
	assert.Equal(t, domain.Tags{"go"}, post.Tags)

	theme, err := restored.theme.Theme()
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, theme.Mode)
	assert.False(t, dst.Has(domain.KeySession))
}

func TestImport_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "{{{"},
		{"wrong version", "version: 9\n"},
		{"no content", "version: 1\n"},
		{"unknown field", "version: 1\nextra: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := mocks.NewMockKeyValueStore()
			err := importBackup(context.Background(), kv, strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.False(t, kv.Has(domain.KeyContent))
		})
	}
}

func TestImport_InvalidTheme(t *testing.T) {
	ctx := context.Background()

	st, err := newStores(testConfig(), mocks.NewMockKeyValueStore())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exportBackup(ctx, st, &buf))
	exported := buf.String()

	tests := []struct {
		name    string
		pattern string
		repl    string
	}{
		{"unknown mode", `mode: light`, `mode: sepia`},
		{"empty color", `(?m)^(\s+)secondary: .*$`, `${1}secondary: ""`},
		{"empty font", `(?m)^(\s+)heading: .*$`, `${1}heading: ""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broken := regexp.MustCompile(tt.pattern).ReplaceAllString(exported, tt.repl)
			require.NotEqual(t, exported, broken)

			kv := mocks.NewMockKeyValueStore()
			err := importBackup(ctx, kv, strings.NewReader(broken))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.False(t, kv.Has(domain.KeyTheme))
		})
	}
}

func TestResetStore(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewMockKeyValueStore()
	kv.Put(domain.KeyContent, []byte("{}"))
	kv.Put(domain.KeySession, []byte("{}"))

	n, err := resetStore(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}
