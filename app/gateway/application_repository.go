package gateway

import (
	"context"
	"log/slog"

	"marketplace-core/app/domain"
	"marketplace-core/app/port"
)

// ApplicationRepository provides CRUD and live views over rental
// application records.
type ApplicationRepository struct {
	records port.RecordAccess
	watcher port.RecordSubscriber
	logger  *slog.Logger
}

// NewApplicationRepository creates a new ApplicationRepository instance
func NewApplicationRepository(records port.RecordAccess, watcher port.RecordSubscriber, logger *slog.Logger) *ApplicationRepository {
	return &ApplicationRepository{
		records: records,
		watcher: watcher,
		logger:  logger.With("component", "application_repository"),
	}
}

// SubmitApplication writes a new application under a store-assigned id
func (r *ApplicationRepository) SubmitApplication(ctx context.Context, application *domain.Application) (string, error) {
	application.Status = domain.ApplicationStatusSubmitted
	id, err := r.records.Add(ctx, domain.ApplicationsCollection, application.Fields())
	if err != nil {
		return "", err
	}
	r.logger.Info("application submitted",
		"application_id", id, "listing_id", application.ListingID)
	return id, nil
}

// SetStatus moves an application through its lifecycle
func (r *ApplicationRepository) SetStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus) error {
	return r.records.Update(ctx, domain.ApplicationsCollection, applicationID, map[string]any{
		"status": string(status),
	})
}

// WatchByRenter subscribes to one renter's applications
func (r *ApplicationRepository) WatchByRenter(ctx context.Context, renterID string, onData port.SnapshotHandler, onError port.ErrHandler) (port.CancelFunc, error) {
	return r.watcher.WatchCollection(ctx, domain.ApplicationsCollection, []domain.Filter{
		{Field: "renter_id", Op: domain.OpEqual, Value: renterID},
	}, onData, onError)
}

// WatchByAgent subscribes to the applications an agent is reviewing
func (r *ApplicationRepository) WatchByAgent(ctx context.Context, agentID string, onData port.SnapshotHandler, onError port.ErrHandler) (port.CancelFunc, error) {
	return r.watcher.WatchCollection(ctx, domain.ApplicationsCollection, []domain.Filter{
		{Field: "agent_id", Op: domain.OpEqual, Value: agentID},
	}, onData, onError)
}
