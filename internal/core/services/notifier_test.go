package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocms/folio-core/internal/core/domain"
)

func TestNotifier_HooksRunInOrder(t *testing.T) {
	n := NewNotifier(discardLogger())
	var calls []string
	n.AddHook(func(ctx context.Context, ev domain.ChangeEvent) { calls = append(calls, "first:"+string(ev.Kind)) })
	n.AddHook(func(ctx context.Context, ev domain.ChangeEvent) { calls = append(calls, "second:"+string(ev.Kind)) })

	n.Publish(context.Background(), domain.ChangeEvent{Store: domain.StoreContent, Kind: domain.ChangeLoaded})

	assert.Equal(t, []string{"first:loaded", "second:loaded"}, calls)
}

func TestNotifier_SubscribeFiltersByStore(t *testing.T) {
	n := NewNotifier(discardLogger())
	themeEvents, cancelTheme := n.Subscribe(4, domain.StoreTheme)
	defer cancelTheme()
	allEvents, cancelAll := n.Subscribe(4)
	defer cancelAll()

	ctx := context.Background()
	n.Publish(ctx, domain.ChangeEvent{Store: domain.StoreContent, Kind: domain.ChangeSEOUpdated})
	n.Publish(ctx, domain.ChangeEvent{Store: domain.StoreTheme, Kind: domain.ChangeThemeMode})

	require.Len(t, themeEvents, 1)
	assert.Equal(t, domain.ChangeThemeMode, (<-themeEvents).Kind)
	assert.Len(t, allEvents, 2)
}

func TestNotifier_SlowSubscriberDoesNotBlock(t *testing.T) {
	n := NewNotifier(discardLogger())
	events, cancel := n.Subscribe(1)
	defer cancel()

	for i := 0; i < 5; i++ {
		n.Publish(context.Background(), domain.ChangeEvent{Store: domain.StoreContent, Kind: domain.ChangeLoaded})
	}
	assert.Len(t, events, 1)
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := NewNotifier(discardLogger())
	events, cancel := n.Subscribe(1)
	assert.Equal(t, 1, n.Subscribers())

	cancel()
	cancel()

	assert.Equal(t, 0, n.Subscribers())
	_, open := <-events
	assert.False(t, open, "channel closed after unsubscribe")

	n.Publish(context.Background(), domain.ChangeEvent{Store: domain.StoreContent})
}
