package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace-core/app/domain"
	"marketplace-core/app/port"
)

// ProfileRepository implements port.ProfileRepository over the guarded
// store access layer. Profile documents are keyed by identity id.
type ProfileRepository struct {
	records port.RecordAccess
	watcher port.RecordSubscriber
	logger  *slog.Logger
}

// NewProfileRepository creates a new ProfileRepository instance
func NewProfileRepository(records port.RecordAccess, watcher port.RecordSubscriber, logger *slog.Logger) *ProfileRepository {
	return &ProfileRepository{
		records: records,
		watcher: watcher,
		logger:  logger.With("component", "profile_repository"),
	}
}

// GetProfile fetches a profile record. Returns ErrProfileMissing when the
// identity has no profile document.
func (r *ProfileRepository) GetProfile(ctx context.Context, identityID string) (*domain.Profile, error) {
	doc, err := r.records.Get(ctx, domain.ProfilesCollection, identityID)
	if err != nil {
		return nil, err
	}
	if !doc.Exists {
		return nil, domain.ErrProfileMissing
	}

	profile, err := domain.ProfileFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return profile, nil
}

// CreateProfile writes the initial profile document. The creation
// timestamp is assigned by the store.
func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	r.logger.Info("creating profile",
		"identity_id", profile.IdentityID, "role", profile.Role)
	return r.records.Set(ctx, domain.ProfilesCollection, profile.IdentityID, profile.Fields(), false)
}

// UpdateProfile merge-writes mutable fields of an existing profile
func (r *ProfileRepository) UpdateProfile(ctx context.Context, identityID string, fields map[string]any) error {
	r.logger.Info("updating profile", "identity_id", identityID)
	return r.records.Update(ctx, domain.ProfilesCollection, identityID, fields)
}

// WatchProfile subscribes to an identity's profile document
func (r *ProfileRepository) WatchProfile(ctx context.Context, identityID string, onData port.ProfileHandler, onError port.ErrHandler) (port.CancelFunc, error) {
	return r.watcher.WatchDocument(ctx, domain.ProfilesCollection, identityID,
		func(doc *domain.Document) {
			if doc == nil || !doc.Exists {
				onData(nil, false)
				return
			}
			profile, err := domain.ProfileFromDocument(doc)
			if err != nil {
				// Skip the snapshot rather than killing the listener.
				r.logger.Error("undecodable profile snapshot",
					"identity_id", identityID, "error", err)
				return
			}
			onData(profile, true)
		},
		onError,
	)
}
