package gateway

import (
	"context"
	"log/slog"

	"marketplace-core/app/domain"
	"marketplace-core/app/port"
)

// ListingRepository provides CRUD and live views over listing records.
// Payments are read-only here: payment records are written by an external
// processor and this module only ever queries them.
type ListingRepository struct {
	records port.RecordAccess
	watcher port.RecordSubscriber
	logger  *slog.Logger
}

// NewListingRepository creates a new ListingRepository instance
func NewListingRepository(records port.RecordAccess, watcher port.RecordSubscriber, logger *slog.Logger) *ListingRepository {
	return &ListingRepository{
		records: records,
		watcher: watcher,
		logger:  logger.With("component", "listing_repository"),
	}
}

// CreateListing writes a new listing under a store-assigned id
func (r *ListingRepository) CreateListing(ctx context.Context, listing *domain.Listing) (string, error) {
	id, err := r.records.Add(ctx, domain.ListingsCollection, listing.Fields())
	if err != nil {
		return "", err
	}
	r.logger.Info("listing created", "listing_id", id, "agent_id", listing.AgentID)
	return id, nil
}

// UpdateListing mutates named fields of an existing listing
func (r *ListingRepository) UpdateListing(ctx context.Context, listingID string, fields map[string]any) error {
	return r.records.Update(ctx, domain.ListingsCollection, listingID, fields)
}

// DeleteListing removes a listing record
func (r *ListingRepository) DeleteListing(ctx context.Context, listingID string) error {
	return r.records.Delete(ctx, domain.ListingsCollection, listingID)
}

// ListingsByAgent runs a one-shot query for one agent's listings
func (r *ListingRepository) ListingsByAgent(ctx context.Context, agentID string) ([]domain.Document, error) {
	return r.records.GetAll(ctx, domain.ListingsCollection, []domain.Filter{
		{Field: "agent_id", Op: domain.OpEqual, Value: agentID},
	})
}

// WatchActiveListings subscribes to all active listings, optionally
// narrowed by extra filters. Text search over the result set is the
// caller's concern.
func (r *ListingRepository) WatchActiveListings(ctx context.Context, extra []domain.Filter, onData port.SnapshotHandler, onError port.ErrHandler) (port.CancelFunc, error) {
	filters := append([]domain.Filter{
		{Field: "status", Op: domain.OpEqual, Value: string(domain.ListingStatusActive)},
	}, extra...)
	return r.watcher.WatchCollection(ctx, domain.ListingsCollection, filters, onData, onError)
}

// PaymentsForListing reads payment records attached to a listing
func (r *ListingRepository) PaymentsForListing(ctx context.Context, listingID string) ([]domain.Document, error) {
	return r.records.GetAll(ctx, domain.PaymentsCollection, []domain.Filter{
		{Field: "listing_id", Op: domain.OpEqual, Value: listingID},
	})
}
