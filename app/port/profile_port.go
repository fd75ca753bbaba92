package port

//go:generate mockgen -source=profile_port.go -destination=../mocks/mock_profile_port.go

import (
	"context"

	"marketplace-core/app/domain"
)

// ProfileHandler receives successive snapshots of a profile. exists is
// false when the document is absent; that is a state, not an error.
type ProfileHandler func(profile *domain.Profile, exists bool)

// ProfileRepository defines access to profile records in the remote store
type ProfileRepository interface {
	// GetProfile returns ErrProfileMissing when no document exists for
	// the identity.
	GetProfile(ctx context.Context, identityID string) (*domain.Profile, error)

	// CreateProfile writes the initial profile document with a
	// server-assigned creation timestamp.
	CreateProfile(ctx context.Context, profile *domain.Profile) error

	// UpdateProfile merges mutable fields into the owner's document with
	// a server-assigned update timestamp.
	UpdateProfile(ctx context.Context, identityID string, fields map[string]any) error

	// WatchProfile subscribes to the identity's profile document.
	WatchProfile(ctx context.Context, identityID string, onData ProfileHandler, onError ErrHandler) (CancelFunc, error)
}
