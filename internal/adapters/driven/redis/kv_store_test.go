package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/foliocms/folio-core/internal/core/domain"
)

// setupTestRedis creates a test Redis client backed by miniredis
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr, func() {
		client.Close()
		mr.Close()
	}
}

func TestNewKeyValueStore(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewKeyValueStore(client, "folio_")

	if store == nil {
		t.Fatal("expected non-nil KeyValueStore")
	}
	if store.prefix != "folio_" {
		t.Errorf("expected prefix folio_, got %q", store.prefix)
	}
}

func TestKeyValueStore_SetGet(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewKeyValueStore(client, "folio_")
	ctx := context.Background()

	if err := store.Set(ctx, domain.KeyContent, []byte(`{"home":{}}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, domain.KeyContent)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"home":{}}` {
		t.Errorf("unexpected value %s", got)
	}

	// stored under the prefixed key
	raw, err := mr.Get("folio_content")
	if err != nil {
		t.Fatalf("expected prefixed key in redis: %v", err)
	}
	if raw != `{"home":{}}` {
		t.Errorf("unexpected raw value %s", raw)
	}
	if mr.TTL("folio_content") != 0 {
		t.Error("values should not expire")
	}
}

func TestKeyValueStore_GetNotFound(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewKeyValueStore(client, "folio_")

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestKeyValueStore_Remove(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewKeyValueStore(client, "folio_")
	ctx := context.Background()

	_ = store.Set(ctx, domain.KeySession, []byte(`{}`))
	if err := store.Remove(ctx, domain.KeySession); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := store.Get(ctx, domain.KeySession); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after remove, got %v", err)
	}
	if err := store.Remove(ctx, domain.KeySession); err != nil {
		t.Errorf("removing a missing key should succeed: %v", err)
	}
}

func TestKeyValueStore_KeysScopedToPrefix(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewKeyValueStore(client, "folio_")
	ctx := context.Background()

	_ = store.Set(ctx, domain.KeyTheme, []byte(`{}`))
	_ = store.Set(ctx, domain.KeyContent, []byte(`{}`))
	_ = mr.Set("other_theme", "{}")

	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != domain.KeyContent || keys[1] != domain.KeyTheme {
		t.Errorf("unexpected keys %v", keys)
	}
}

func TestKeyValueStore_ConnectionError(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewKeyValueStore(client, "folio_")
	mr.Close()

	ctx := context.Background()
	if err := store.Ping(ctx); err == nil {
		t.Error("expected ping error after server shutdown")
	}
	_, err := store.Get(ctx, domain.KeyContent)
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected connection error distinct from ErrNotFound, got %v", err)
	}
}

func TestConnect(t *testing.T) {
	_, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	client, err := Connect(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Close()

	if _, err := Connect(context.Background(), "not a url"); err == nil {
		t.Error("expected error for invalid url")
	}
}
