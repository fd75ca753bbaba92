package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-core/app/domain"
)

// notifyChannel carries document change notifications; the payload is
// "<collection>\x00<doc_id>".
const notifyChannel = "marketplace_documents"

// DocumentStore implements port.DocumentStore over PostgreSQL: documents
// as JSONB rows, server-side timestamps, live listeners via
// LISTEN/NOTIFY.
type DocumentStore struct {
	db      Querier
	pool    *pgxpool.Pool // dedicated listener connections; nil in unit tests
	logger  *slog.Logger
	watches *watchRegistry
}

// NewDocumentStore creates the postgres-backed document store
func NewDocumentStore(db Querier, pool *pgxpool.Pool, logger *slog.Logger) *DocumentStore {
	l := logger.With("component", "postgres_store")
	return &DocumentStore{
		db:      db,
		pool:    pool,
		logger:  l,
		watches: newWatchRegistry(l),
	}
}

// Get fetches one document; an absent row yields Exists=false, not an error
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*domain.Document, error) {
	query := `
		SELECT data, created_at, updated_at
		FROM documents
		WHERE collection = $1 AND doc_id = $2`

	var raw []byte
	var createdAt, updatedAt time.Time
	err := s.db.QueryRow(ctx, query, collection, id).Scan(&raw, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.Document{ID: id}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	data, err := decodeData(raw)
	if err != nil {
		return nil, err
	}
	return &domain.Document{
		ID:        id,
		Exists:    true,
		Data:      data,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// Set writes a document. With merge, fields not named keep their values.
func (s *DocumentStore) Set(ctx context.Context, collection, id string, fields map[string]any, merge bool) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	query := `
		INSERT INTO documents (collection, doc_id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, doc_id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	if merge {
		query = `
		INSERT INTO documents (collection, doc_id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, doc_id)
		DO UPDATE SET data = documents.data || EXCLUDED.data, updated_at = now()`
	}

	if _, err := s.db.Exec(ctx, query, collection, id, raw); err != nil {
		return fmt.Errorf("set document: %w", err)
	}
	return s.notifyChange(ctx, collection, id)
}

// Update merges named fields into an existing document
func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	query := `
		UPDATE documents
		SET data = data || $3, updated_at = now()
		WHERE collection = $1 AND doc_id = $2`

	tag, err := s.db.Exec(ctx, query, collection, id, raw)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	return s.notifyChange(ctx, collection, id)
}

// Delete removes a document
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND doc_id = $2`
	if _, err := s.db.Exec(ctx, query, collection, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return s.notifyChange(ctx, collection, id)
}

// Add writes a document under a fresh id and returns it
func (s *DocumentStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	id := uuid.NewString()
	query := `INSERT INTO documents (collection, doc_id, data) VALUES ($1, $2, $3)`
	if _, err := s.db.Exec(ctx, query, collection, id, raw); err != nil {
		return "", fmt.Errorf("add document: %w", err)
	}
	if err := s.notifyChange(ctx, collection, id); err != nil {
		return "", err
	}
	return id, nil
}

// Query runs a one-shot filtered query over a collection
func (s *DocumentStore) Query(ctx context.Context, collection string, filters []domain.Filter) ([]domain.Document, error) {
	clause, filterArgs, err := buildFilterClause(filters, 2)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT doc_id, data, created_at, updated_at
		FROM documents
		WHERE collection = $1` + clause + `
		ORDER BY created_at, doc_id`

	args := append([]any{collection}, filterArgs...)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var id string
		var raw []byte
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &raw, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		data, err := decodeData(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, domain.Document{
			ID:        id,
			Exists:    true,
			Data:      data,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	return docs, nil
}

// Close stops the change listener
func (s *DocumentStore) Close() error {
	s.watches.close()
	return nil
}

func (s *DocumentStore) notifyChange(ctx context.Context, collection, id string) error {
	if _, err := s.db.Exec(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, collection+"\x00"+id); err != nil {
		return fmt.Errorf("notify change: %w", err)
	}
	return nil
}

func decodeData(raw []byte) (map[string]any, error) {
	data := make(map[string]any)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
	}
	return data, nil
}
