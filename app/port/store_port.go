package port

//go:generate mockgen -source=store_port.go -destination=../mocks/mock_store_port.go

import (
	"context"

	"marketplace-core/app/domain"
)

// CancelFunc tears down a live subscription. Implementations must be
// idempotent and safe to call after the listener already failed.
type CancelFunc func()

// DocHandler receives successive full snapshots of one document
type DocHandler func(doc *domain.Document)

// SnapshotHandler receives the entire current result set of a collection
// query on every emission. Each call is a full replacement, not a delta.
type SnapshotHandler func(docs []domain.Document)

// ErrHandler receives a store-level listener failure. After it fires the
// listener is dead and will not emit data again.
type ErrHandler func(err error)

// DocumentStore defines the remote record store contract: path-addressed
// collections and documents with server-assigned timestamps.
type DocumentStore interface {
	// One-shot operations
	Get(ctx context.Context, collection, id string) (*domain.Document, error)
	Set(ctx context.Context, collection, id string, fields map[string]any, merge bool) error
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)
	Query(ctx context.Context, collection string, filters []domain.Filter) ([]domain.Document, error)

	// Live listeners. The context covers establishment only; teardown is
	// the returned CancelFunc.
	WatchDocument(ctx context.Context, collection, id string, onData DocHandler, onError ErrHandler) (CancelFunc, error)
	WatchCollection(ctx context.Context, collection string, filters []domain.Filter, onData SnapshotHandler, onError ErrHandler) (CancelFunc, error)

	Close() error
}

// RecordAccess defines the non-live CRUD surface exposed to repositories,
// guarded against use before store initialization.
type RecordAccess interface {
	Get(ctx context.Context, collection, id string) (*domain.Document, error)
	Set(ctx context.Context, collection, id string, fields map[string]any, merge bool) error
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)
	GetAll(ctx context.Context, collection string, filters []domain.Filter) ([]domain.Document, error)
}

// RecordSubscriber defines the live subscription surface exposed to
// repositories and projectors, with the same initialization guard.
type RecordSubscriber interface {
	WatchDocument(ctx context.Context, collection, id string, onData DocHandler, onError ErrHandler) (CancelFunc, error)
	WatchCollection(ctx context.Context, collection string, filters []domain.Filter, onData SnapshotHandler, onError ErrHandler) (CancelFunc, error)
}
