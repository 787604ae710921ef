package services

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/foliocms/folio-core/internal/core/domain"
)

// ChangeHook runs synchronously after a mutation has been persisted.
// Hooks must be idempotent: the same event may be applied twice.
// Events from one store arrive in commit order, and a hook must not call
// back into the store that published the event.
type ChangeHook func(ctx context.Context, event domain.ChangeEvent)

// Notifier fans change events out to channel subscribers and hooks.
// One Notifier is shared by all stores of a process.
type Notifier struct {
	logger *slog.Logger

	mu     sync.RWMutex
	nextID int
	subs   map[int]subscription
	hooks  []ChangeHook
}

type subscription struct {
	ch     chan domain.ChangeEvent
	stores []domain.StoreName
}

// NewNotifier creates a Notifier. A nil logger uses slog.Default().
func NewNotifier(logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		logger: logger,
		subs:   make(map[int]subscription),
	}
}

// Subscribe returns a channel receiving events from the given stores, or from
// every store when none are named. Slow subscribers miss events rather than
// block the publisher. The returned func unsubscribes and closes the channel.
func (n *Notifier) Subscribe(buffer int, stores ...domain.StoreName) (<-chan domain.ChangeEvent, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan domain.ChangeEvent, buffer)

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = subscription{ch: ch, stores: stores}
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// AddHook registers a hook that runs on every published event
func (n *Notifier) AddHook(hook ChangeHook) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hooks = append(n.hooks, hook)
}

// Publish runs the hooks in registration order, then delivers the event to
// matching subscribers without blocking.
func (n *Notifier) Publish(ctx context.Context, event domain.ChangeEvent) {
	n.mu.RLock()
	hooks := slices.Clone(n.hooks)
	n.mu.RUnlock()

	for _, hook := range hooks {
		hook(ctx, event)
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, sub := range n.subs {
		if len(sub.stores) > 0 && !slices.Contains(sub.stores, event.Store) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			n.logger.Debug("dropping change event for slow subscriber",
				"store", event.Store, "kind", event.Kind)
		}
	}
}

// Subscribers returns the number of active subscriptions
func (n *Notifier) Subscribers() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}
