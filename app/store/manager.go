// Package store provides the guarded access layer over the remote record
// store: live subscriptions (Manager) and one-shot CRUD (DataAccess).
// Every operation fails fast with domain.ErrStoreUninitialized until the
// underlying store handle and namespace are both configured, so wiring
// bugs surface as one clear error instead of a cascade downstream.
package store

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"marketplace-core/app/domain"
	"marketplace-core/app/port"
)

// Manager implements port.RecordSubscriber: uniform, leak-free live
// subscriptions over the document store.
type Manager struct {
	store     port.DocumentStore
	namespace string
	logger    *slog.Logger
}

// NewManager creates a subscription manager. A nil store or empty
// namespace is tolerated here and reported per-operation.
func NewManager(store port.DocumentStore, namespace string, logger *slog.Logger) *Manager {
	return &Manager{
		store:     store,
		namespace: namespace,
		logger:    logger.With("component", "subscription_manager"),
	}
}

func (m *Manager) ready() error {
	if m.store == nil || m.namespace == "" {
		return domain.ErrStoreUninitialized
	}
	return nil
}

func (m *Manager) path(collection string) string {
	return m.namespace + "/" + collection
}

// WatchDocument subscribes to a single document. onData fires with the
// current snapshot immediately and on every change; an absent document is
// delivered as a snapshot with Exists=false, not an error.
func (m *Manager) WatchDocument(ctx context.Context, collection, id string, onData port.DocHandler, onError port.ErrHandler) (port.CancelFunc, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}

	sub := newSubscription(m.logger, collection)
	cancel, err := m.store.WatchDocument(ctx, m.path(collection), id,
		func(doc *domain.Document) {
			sub.deliver(func() { onData(doc) })
		},
		func(err error) {
			sub.fail(func() { onError(err) })
		},
	)
	if err != nil {
		return nil, domain.NewStoreError("watch", collection, err)
	}

	m.logger.Debug("document listener established", "collection", collection, "id", id)
	return sub.cancelFunc(cancel), nil
}

// WatchCollection subscribes to a filtered collection. Every onData call
// carries the entire current result set; callers replace, never patch.
func (m *Manager) WatchCollection(ctx context.Context, collection string, filters []domain.Filter, onData port.SnapshotHandler, onError port.ErrHandler) (port.CancelFunc, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	if err := domain.ValidateFilters(filters); err != nil {
		return nil, err
	}

	sub := newSubscription(m.logger, collection)
	cancel, err := m.store.WatchCollection(ctx, m.path(collection), filters,
		func(docs []domain.Document) {
			sub.deliver(func() { onData(docs) })
		},
		func(err error) {
			sub.fail(func() { onError(err) })
		},
	)
	if err != nil {
		return nil, domain.NewStoreError("watch", collection, err)
	}

	m.logger.Debug("collection listener established",
		"collection", collection, "filters", len(filters))
	return sub.cancelFunc(cancel), nil
}

// subscription tracks one listener's lifecycle: active until cancelled or
// failed, after which no further callbacks are delivered.
type subscription struct {
	dead       atomic.Bool
	cancelOnce sync.Once
	logger     *slog.Logger
	collection string
}

func newSubscription(logger *slog.Logger, collection string) *subscription {
	return &subscription{logger: logger, collection: collection}
}

func (s *subscription) deliver(emit func()) {
	if s.dead.Load() {
		return
	}
	emit()
}

func (s *subscription) fail(emit func()) {
	// First failure wins; the listener is dead afterwards.
	if s.dead.Swap(true) {
		return
	}
	s.logger.Warn("listener failed", "collection", s.collection)
	emit()
}

func (s *subscription) cancelFunc(inner port.CancelFunc) port.CancelFunc {
	return func() {
		s.dead.Store(true)
		s.cancelOnce.Do(func() {
			if inner != nil {
				inner()
			}
		})
	}
}
