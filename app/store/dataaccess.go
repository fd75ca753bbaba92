package store

import (
	"context"
	"log/slog"

	"marketplace-core/app/domain"
	"marketplace-core/app/port"
)

// DataAccess implements port.RecordAccess: thin non-live CRUD primitives
// for commands that are not subscription-based. Creation and update
// timestamps are assigned by the store's clock, never the client's.
type DataAccess struct {
	store     port.DocumentStore
	namespace string
	logger    *slog.Logger
}

// NewDataAccess creates the CRUD access layer
func NewDataAccess(store port.DocumentStore, namespace string, logger *slog.Logger) *DataAccess {
	return &DataAccess{
		store:     store,
		namespace: namespace,
		logger:    logger.With("component", "data_access"),
	}
}

func (d *DataAccess) ready() error {
	if d.store == nil || d.namespace == "" {
		return domain.ErrStoreUninitialized
	}
	return nil
}

func (d *DataAccess) path(collection string) string {
	return d.namespace + "/" + collection
}

// Get fetches one document. The returned document has Exists=false when
// absent; only transport failures are errors.
func (d *DataAccess) Get(ctx context.Context, collection, id string) (*domain.Document, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}
	doc, err := d.store.Get(ctx, d.path(collection), id)
	if err != nil {
		return nil, domain.NewStoreError("get", collection, err)
	}
	return doc, nil
}

// Set writes a document. With merge, existing fields not named are kept.
func (d *DataAccess) Set(ctx context.Context, collection, id string, fields map[string]any, merge bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	if err := d.store.Set(ctx, d.path(collection), id, fields, merge); err != nil {
		return domain.NewStoreError("set", collection, err)
	}
	return nil
}

// Update mutates named fields of an existing document
func (d *DataAccess) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := d.ready(); err != nil {
		return err
	}
	if err := d.store.Update(ctx, d.path(collection), id, fields); err != nil {
		return domain.NewStoreError("update", collection, err)
	}
	return nil
}

// Delete removes a document
func (d *DataAccess) Delete(ctx context.Context, collection, id string) error {
	if err := d.ready(); err != nil {
		return err
	}
	if err := d.store.Delete(ctx, d.path(collection), id); err != nil {
		return domain.NewStoreError("delete", collection, err)
	}
	return nil
}

// Add writes a document under a store-assigned id and returns the id
func (d *DataAccess) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if err := d.ready(); err != nil {
		return "", err
	}
	id, err := d.store.Add(ctx, d.path(collection), fields)
	if err != nil {
		return "", domain.NewStoreError("add", collection, err)
	}
	return id, nil
}

// GetAll runs a one-shot filtered query
func (d *DataAccess) GetAll(ctx context.Context, collection string, filters []domain.Filter) ([]domain.Document, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}
	if err := domain.ValidateFilters(filters); err != nil {
		return nil, err
	}
	docs, err := d.store.Query(ctx, d.path(collection), filters)
	if err != nil {
		return nil, domain.NewStoreError("query", collection, err)
	}
	return docs, nil
}
