// Package redis implements the document store contract over Redis:
// one JSON envelope per document, a per-collection index set, server
// timestamps from the redis TIME command, and live listeners via pub/sub
// on per-collection channels published by this driver's own writes.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"marketplace-core/app/domain"
	"marketplace-core/app/port"
)

// envelope is the stored wire form of a document
type envelope struct {
	Data      map[string]any `json:"data"`
	CreatedAt int64          `json:"created_at_ns"`
	UpdatedAt int64          `json:"updated_at_ns"`
}

// DocumentStore implements port.DocumentStore over Redis
type DocumentStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewDocumentStore creates the redis-backed document store
func NewDocumentStore(addr, password string, logger *slog.Logger) *DocumentStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &DocumentStore{
		client: client,
		logger: logger.With("component", "redis_store"),
	}
}

// NewDocumentStoreWithClient wraps an existing client (tests)
func NewDocumentStoreWithClient(client *redis.Client, logger *slog.Logger) *DocumentStore {
	return &DocumentStore{
		client: client,
		logger: logger.With("component", "redis_store"),
	}
}

func docKey(collection, id string) string { return "doc:" + collection + ":" + id }
func indexKey(collection string) string   { return "col:" + collection }
func channelKey(collection string) string { return "ch:" + collection }

// serverTime reads the store's clock so document ordering never depends
// on client clocks.
func (s *DocumentStore) serverTime(ctx context.Context) (time.Time, error) {
	t, err := s.client.Time(ctx).Result()
	if err != nil {
		return time.Time{}, fmt.Errorf("server time: %w", err)
	}
	return t, nil
}

// Get fetches one document; an absent key yields Exists=false
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*domain.Document, error) {
	raw, err := s.client.Get(ctx, docKey(collection, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &domain.Document{ID: id}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return decodeEnvelope(id, raw)
}

// Set writes a document. With merge, existing fields not named are kept.
func (s *DocumentStore) Set(ctx context.Context, collection, id string, fields map[string]any, merge bool) error {
	existing, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}

	now, err := s.serverTime(ctx)
	if err != nil {
		return err
	}

	data := fields
	createdAt := now
	if existing.Exists {
		createdAt = existing.CreatedAt
		if merge {
			data = make(map[string]any, len(existing.Data)+len(fields))
			for k, v := range existing.Data {
				data[k] = v
			}
			for k, v := range fields {
				data[k] = v
			}
		}
	}

	if err := s.write(ctx, collection, id, data, createdAt, now); err != nil {
		return err
	}
	return s.publish(ctx, collection, id)
}

// Update merges named fields into an existing document
func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	existing, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	if !existing.Exists {
		return domain.ErrDocumentNotFound
	}

	now, err := s.serverTime(ctx)
	if err != nil {
		return err
	}

	for k, v := range fields {
		existing.Data[k] = v
	}
	if err := s.write(ctx, collection, id, existing.Data, existing.CreatedAt, now); err != nil {
		return err
	}
	return s.publish(ctx, collection, id)
}

// Delete removes a document
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, docKey(collection, id))
	pipe.SRem(ctx, indexKey(collection), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return s.publish(ctx, collection, id)
}

// Add writes a document under a fresh id and returns it
func (s *DocumentStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.NewString()
	now, err := s.serverTime(ctx)
	if err != nil {
		return "", err
	}
	if err := s.write(ctx, collection, id, fields, now, now); err != nil {
		return "", err
	}
	if err := s.publish(ctx, collection, id); err != nil {
		return "", err
	}
	return id, nil
}

// Query fetches the collection and applies the filter conjunction
func (s *DocumentStore) Query(ctx context.Context, collection string, filters []domain.Filter) ([]domain.Document, error) {
	ids, err := s.client.SMembers(ctx, indexKey(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	var docs []domain.Document
	for _, id := range ids {
		doc, err := s.Get(ctx, collection, id)
		if err != nil {
			return nil, err
		}
		if doc.Exists && doc.Matches(filters) {
			docs = append(docs, *doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.Before(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

// WatchDocument subscribes to one document via the collection channel
func (s *DocumentStore) WatchDocument(ctx context.Context, collection, id string, onData port.DocHandler, onError port.ErrHandler) (port.CancelFunc, error) {
	doc, err := s.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}

	sub := s.client.Subscribe(ctx, channelKey(collection))
	onData(doc)

	go s.pump(sub, onError, func(changedID string) bool {
		if changedID != id {
			return true
		}
		doc, err := s.Get(context.Background(), collection, id)
		if err != nil {
			onError(err)
			return false
		}
		onData(doc)
		return true
	})

	return cancelOnce(sub, s.logger), nil
}

// WatchCollection subscribes to a filtered collection; every emission is
// the full current result set.
func (s *DocumentStore) WatchCollection(ctx context.Context, collection string, filters []domain.Filter, onData port.SnapshotHandler, onError port.ErrHandler) (port.CancelFunc, error) {
	docs, err := s.Query(ctx, collection, filters)
	if err != nil {
		return nil, err
	}

	sub := s.client.Subscribe(ctx, channelKey(collection))
	onData(docs)

	go s.pump(sub, onError, func(string) bool {
		docs, err := s.Query(context.Background(), collection, filters)
		if err != nil {
			onError(err)
			return false
		}
		onData(docs)
		return true
	})

	return cancelOnce(sub, s.logger), nil
}

// pump drains the pub/sub channel, invoking handle per change until the
// subscription closes or handle reports a terminal failure.
func (s *DocumentStore) pump(sub *redis.PubSub, onError port.ErrHandler, handle func(changedID string) bool) {
	for msg := range sub.Channel() {
		if !handle(msg.Payload) {
			_ = sub.Close()
			return
		}
	}
}

// Close closes the redis connection
func (s *DocumentStore) Close() error {
	return s.client.Close()
}

func (s *DocumentStore) write(ctx context.Context, collection, id string, data map[string]any, createdAt, updatedAt time.Time) error {
	raw, err := json.Marshal(envelope{
		Data:      data,
		CreatedAt: createdAt.UnixNano(),
		UpdatedAt: updatedAt.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, docKey(collection, id), raw, 0)
	pipe.SAdd(ctx, indexKey(collection), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set document: %w", err)
	}
	return nil
}

func (s *DocumentStore) publish(ctx context.Context, collection, id string) error {
	if err := s.client.Publish(ctx, channelKey(collection), id).Err(); err != nil {
		return fmt.Errorf("publish change: %w", err)
	}
	return nil
}

func cancelOnce(sub *redis.PubSub, logger *slog.Logger) port.CancelFunc {
	var once sync.Once
	return func() {
		once.Do(func() {
			if err := sub.Close(); err != nil {
				logger.Debug("pubsub close", "error", err)
			}
		})
	}
}

func decodeEnvelope(id string, raw []byte) (*domain.Document, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if env.Data == nil {
		env.Data = make(map[string]any)
	}
	return &domain.Document{
		ID:        id,
		Exists:    true,
		Data:      env.Data,
		CreatedAt: time.Unix(0, env.CreatedAt),
		UpdatedAt: time.Unix(0, env.UpdatedAt),
	}, nil
}
