package usecase

import (
	"context"
	"log/slog"

	"marketplace-core/app/domain"
	"marketplace-core/app/port"
)

// ProfileProjector exposes a read-only live view of the authenticated
// identity's own profile record. Screens consume it alongside the session
// state; it never mutates anything.
type ProfileProjector struct {
	sessions port.SessionUsecase
	profiles port.ProfileRepository
	logger   *slog.Logger
}

// NewProfileProjector creates a profile projector
func NewProfileProjector(sessions port.SessionUsecase, profiles port.ProfileRepository, logger *slog.Logger) *ProfileProjector {
	return &ProfileProjector{
		sessions: sessions,
		profiles: profiles,
		logger:   logger.With("component", "profile_projector"),
	}
}

// WatchOwnProfile subscribes to the current identity's profile document.
// The handler fires with the current snapshot immediately and on every
// change until cancelled. Fails with ErrNotAuthenticated when no identity
// is signed in.
func (p *ProfileProjector) WatchOwnProfile(ctx context.Context, onData port.ProfileHandler, onError port.ErrHandler) (port.CancelFunc, error) {
	session := p.sessions.Current()
	if !session.Authenticated {
		return nil, domain.ErrNotAuthenticated
	}

	identityID := session.IdentityID()
	p.logger.Debug("watching own profile", "identity_id", identityID)
	return p.profiles.WatchProfile(ctx, identityID, onData, onError)
}

// OwnProfile fetches the current identity's profile once
func (p *ProfileProjector) OwnProfile(ctx context.Context) (*domain.Profile, error) {
	session := p.sessions.Current()
	if !session.Authenticated {
		return nil, domain.ErrNotAuthenticated
	}
	return p.profiles.GetProfile(ctx, session.IdentityID())
}

// UpdateOwnProfile merge-writes mutable fields of the current identity's
// profile. Role changes are not permitted through this surface.
func (p *ProfileProjector) UpdateOwnProfile(ctx context.Context, fields map[string]any) error {
	session := p.sessions.Current()
	if !session.Authenticated {
		return domain.ErrNotAuthenticated
	}
	delete(fields, "role")
	return p.profiles.UpdateProfile(ctx, session.IdentityID(), fields)
}
