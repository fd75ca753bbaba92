package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"marketplace-core/app/domain"
	"marketplace-core/app/port"
)

// WatchDocument establishes a live listener on one document. The current
// snapshot is emitted before this returns; afterwards every NOTIFY for
// the document triggers a re-read and a fresh emission.
func (s *DocumentStore) WatchDocument(ctx context.Context, collection, id string, onData port.DocHandler, onError port.ErrHandler) (port.CancelFunc, error) {
	if s.pool == nil {
		return nil, fmt.Errorf("listener connections unavailable")
	}

	w := &watcher{collection: collection, docID: id}
	w.refresh = func(ctx context.Context) {
		doc, err := s.Get(ctx, collection, id)
		if err != nil {
			w.failWith(onError, err)
			s.watches.remove(w)
			return
		}
		w.emit(func() { onData(doc) })
	}
	w.onError = onError

	// Initial snapshot, synchronous so callers see current state first.
	doc, err := s.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}

	if err := s.watches.add(w, s.runListener); err != nil {
		return nil, err
	}
	onData(doc)

	return func() { s.watches.remove(w) }, nil
}

// WatchCollection establishes a live listener on a filtered collection.
// Every emission carries the entire current result set.
func (s *DocumentStore) WatchCollection(ctx context.Context, collection string, filters []domain.Filter, onData port.SnapshotHandler, onError port.ErrHandler) (port.CancelFunc, error) {
	if s.pool == nil {
		return nil, fmt.Errorf("listener connections unavailable")
	}

	w := &watcher{collection: collection}
	w.refresh = func(ctx context.Context) {
		docs, err := s.Query(ctx, collection, filters)
		if err != nil {
			w.failWith(onError, err)
			s.watches.remove(w)
			return
		}
		w.emit(func() { onData(docs) })
	}
	w.onError = onError

	docs, err := s.Query(ctx, collection, filters)
	if err != nil {
		return nil, err
	}

	if err := s.watches.add(w, s.runListener); err != nil {
		return nil, err
	}
	onData(docs)

	return func() { s.watches.remove(w) }, nil
}

// runListener holds one dedicated connection in LISTEN mode and
// dispatches notifications to registered watchers. It exits on listener
// failure after reporting the error to every watcher; re-subscribing
// starts a fresh listener (retry is the caller's policy).
func (s *DocumentStore) runListener(ctx context.Context) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		s.watches.failAll(fmt.Errorf("acquire listener connection: %w", err))
		return
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		s.watches.failAll(fmt.Errorf("listen: %w", err))
		return
	}
	s.logger.Debug("change listener started")

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.watches.failAll(fmt.Errorf("change listener: %w", err))
			return
		}

		collection, docID, ok := strings.Cut(notification.Payload, "\x00")
		if !ok {
			continue
		}
		for _, w := range s.watches.matching(collection, docID) {
			w.refresh(ctx)
		}
	}
}

// watcher is one live subscription inside the driver
type watcher struct {
	collection string
	docID      string // empty for collection watches
	refresh    func(ctx context.Context)
	onError    port.ErrHandler
	dead       atomic.Bool
}

func (w *watcher) emit(f func()) {
	if w.dead.Load() {
		return
	}
	f()
}

func (w *watcher) failWith(onError port.ErrHandler, err error) {
	if w.dead.Swap(true) {
		return
	}
	onError(err)
}

// watchRegistry tracks active watchers and the shared listener goroutine
type watchRegistry struct {
	logger *slog.Logger

	mu       sync.Mutex
	watchers map[*watcher]struct{}
	running  bool
	closed   bool
	cancel   context.CancelFunc
}

func newWatchRegistry(logger *slog.Logger) *watchRegistry {
	return &watchRegistry{
		logger:   logger,
		watchers: make(map[*watcher]struct{}),
	}
}

// add registers a watcher, starting the listener goroutine when needed
func (r *watchRegistry) add(w *watcher, run func(ctx context.Context)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("store closed")
	}
	r.watchers[w] = struct{}{}
	if !r.running {
		r.running = true
		ctx, cancel := context.WithCancel(context.Background())
		r.cancel = cancel
		go func() {
			run(ctx)
			r.mu.Lock()
			r.running = false
			r.mu.Unlock()
		}()
	}
	return nil
}

// remove deregisters a watcher; safe to call repeatedly
func (r *watchRegistry) remove(w *watcher) {
	w.dead.Store(true)
	r.mu.Lock()
	delete(r.watchers, w)
	r.mu.Unlock()
}

func (r *watchRegistry) matching(collection, docID string) []*watcher {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*watcher
	for w := range r.watchers {
		if w.collection != collection {
			continue
		}
		if w.docID != "" && w.docID != docID {
			continue
		}
		out = append(out, w)
	}
	return out
}

// failAll terminates every watcher with the listener error
func (r *watchRegistry) failAll(err error) {
	r.mu.Lock()
	watchers := make([]*watcher, 0, len(r.watchers))
	for w := range r.watchers {
		watchers = append(watchers, w)
	}
	r.watchers = make(map[*watcher]struct{})
	r.mu.Unlock()

	r.logger.Error("change listener failed", "error", err)
	for _, w := range watchers {
		w.failWith(w.onError, err)
	}
}

func (r *watchRegistry) close() {
	r.mu.Lock()
	r.closed = true
	if r.cancel != nil {
		r.cancel()
	}
	r.watchers = make(map[*watcher]struct{})
	r.mu.Unlock()
}
