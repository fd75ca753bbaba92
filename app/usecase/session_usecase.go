package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"marketplace-core/app/domain"
	"marketplace-core/app/port"
)

// SessionUseCase implements port.SessionUsecase: the single writer of the
// process-wide session state. It reconciles the identity provider's
// notifications against the role cache and the authoritative profile
// record, and guarantees that an authenticated session always carries a
// resolved role.
type SessionUseCase struct {
	identity port.IdentityGateway
	profiles port.ProfileRepository
	cache    port.RoleCache
	logger   *slog.Logger
	validate *validator.Validate
	limiter  *rate.Limiter
	group    singleflight.Group

	mu      sync.RWMutex
	session domain.Session
	// target is the identity id of the latest provider notification or
	// command; a resolution whose tag no longer matches is stale and its
	// result is discarded.
	target      string
	subscribers map[int]port.SessionHandler
	nextSubID   int
	started     bool

	identityCancel port.CancelFunc
	firstOnce      sync.Once
	firstDone      chan error
}

// NewSessionUseCase creates the session controller
func NewSessionUseCase(identity port.IdentityGateway, profiles port.ProfileRepository, cache port.RoleCache, logger *slog.Logger) *SessionUseCase {
	return &SessionUseCase{
		identity:    identity,
		profiles:    profiles,
		cache:       cache,
		logger:      logger.With("component", "session_usecase"),
		validate:    validator.New(),
		limiter:     rate.NewLimiter(rate.Every(time.Second), 5),
		session:     domain.NewBootstrapSession(),
		subscribers: make(map[int]port.SessionHandler),
		firstDone:   make(chan error, 1),
	}
}

// Bootstrap registers for identity notifications and blocks until the
// first notification, plus any role resolution it requires, completes.
// A resolution failure leaves the session deterministically
// Unauthenticated and is returned to the caller; retry is the next app
// launch's or an explicit login's responsibility.
func (uc *SessionUseCase) Bootstrap(ctx context.Context) error {
	uc.mu.Lock()
	if uc.started {
		uc.mu.Unlock()
		return fmt.Errorf("session bootstrap already run")
	}
	uc.started = true
	uc.mu.Unlock()

	uc.logger.Info("session bootstrap starting")
	uc.identityCancel = uc.identity.OnIdentityChanged(uc.handleIdentityChanged)

	select {
	case err := <-uc.firstDone:
		if err != nil {
			uc.logger.Error("bootstrap role resolution failed", "error", err)
			return err
		}
		uc.logger.Info("session bootstrap complete",
			"authenticated", uc.Current().Authenticated)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("session bootstrap interrupted: %w", ctx.Err())
	}
}

// Close stops identity tracking
func (uc *SessionUseCase) Close() {
	if uc.identityCancel != nil {
		uc.identityCancel()
	}
}

// handleIdentityChanged is the sole entry point for provider-driven
// transitions, including the initial bootstrap notification.
func (uc *SessionUseCase) handleIdentityChanged(identity *domain.Identity) {
	if identity == nil {
		uc.mu.Lock()
		uc.target = ""
		uc.mu.Unlock()
		uc.setSession(domain.UnauthenticatedSession())
		uc.signalFirst(nil)
		return
	}

	uc.logger.Info("identity present, resolving role", "identity_id", identity.ID)
	uc.mu.Lock()
	uc.target = identity.ID
	uc.mu.Unlock()

	role, err := uc.resolveRole(context.Background(), identity, false)
	if err != nil {
		uc.forceUnauthenticated(identity.ID)
		uc.signalFirst(err)
		return
	}
	uc.commitResolved(identity, role)
	uc.signalFirst(nil)
}

// resolveRole runs the role resolution algorithm for a present identity.
// With bypassCache the cached role is ignored and the profile record is
// consulted unconditionally (the trust-establishing login path).
// Concurrent resolutions for the same identity collapse into one profile
// fetch.
func (uc *SessionUseCase) resolveRole(ctx context.Context, identity *domain.Identity, bypassCache bool) (domain.Role, error) {
	if !bypassCache {
		if role, ok, err := uc.cache.Get(identity.ID); err == nil && ok {
			uc.logger.Debug("role cache hit", "identity_id", identity.ID, "role", role)
			return role, nil
		} else if err != nil {
			uc.logger.Warn("role cache read failed", "error", err)
		}
	}

	v, err, _ := uc.group.Do(identity.ID, func() (any, error) {
		return uc.profiles.GetProfile(ctx, identity.ID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrProfileMissing) {
			// An identity without a profile is never exposed as
			// authenticated: sign it out entirely.
			uc.logger.Warn("identity has no profile, forcing sign-out",
				"identity_id", identity.ID)
			if serr := uc.identity.SignOut(ctx); serr != nil {
				uc.logger.Error("forced sign-out failed", "error", serr)
			}
			uc.clearCache(identity.ID)
			return "", domain.ErrProfileMissing
		}
		uc.clearCache(identity.ID)
		return "", fmt.Errorf("role resolution: %w", err)
	}

	profile := v.(*domain.Profile)
	if err := uc.cache.Set(identity.ID, profile.Role); err != nil {
		uc.logger.Warn("role cache write failed", "error", err)
	}
	return profile.Role, nil
}

// Login signs in with email and password, then re-resolves the role from
// the profile record unconditionally. No stale partial session survives a
// failure: the session is reset to Unauthenticated before any error is
// returned.
func (uc *SessionUseCase) Login(ctx context.Context, email, password string) (domain.Session, error) {
	if !uc.limiter.Allow() {
		return uc.Current(), domain.ErrTooManyAttempts
	}

	identity, err := uc.identity.SignIn(ctx, email, password)
	if err != nil {
		uc.logger.Warn("sign-in failed", "error", err)
		uc.resetUnauthenticated()
		return uc.Current(), err
	}
	return uc.completeLogin(ctx, identity)
}

// LoginWithToken signs in with a provider token and runs the same
// trust-establishing resolution as password login.
func (uc *SessionUseCase) LoginWithToken(ctx context.Context, token string) (domain.Session, error) {
	if !uc.limiter.Allow() {
		return uc.Current(), domain.ErrTooManyAttempts
	}

	identity, err := uc.identity.SignInWithToken(ctx, token)
	if err != nil {
		uc.logger.Warn("token sign-in failed", "error", err)
		uc.resetUnauthenticated()
		return uc.Current(), err
	}
	return uc.completeLogin(ctx, identity)
}

func (uc *SessionUseCase) completeLogin(ctx context.Context, identity *domain.Identity) (domain.Session, error) {
	uc.mu.Lock()
	uc.target = identity.ID
	uc.mu.Unlock()

	role, err := uc.resolveRole(ctx, identity, true)
	if err != nil {
		uc.resetUnauthenticated()
		return uc.Current(), err
	}

	uc.commitResolved(identity, role)
	uc.logger.Info("login complete", "identity_id", identity.ID, "role", role)
	return uc.Current(), nil
}

// Register signs up a new identity, writes its profile with a
// server-assigned creation timestamp, and adopts the role locally without
// a further remote read. A profile-write failure after sign-up is treated
// as the inconsistent-identity case: forced sign-out, error to caller.
func (uc *SessionUseCase) Register(ctx context.Context, input port.RegisterInput) (domain.Session, error) {
	if err := uc.validate.Struct(input); err != nil {
		return uc.Current(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return uc.Current(), err
	}

	identity, err := uc.identity.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		uc.logger.Warn("sign-up failed", "error", err)
		uc.resetUnauthenticated()
		return uc.Current(), err
	}

	profile, err := domain.NewProfile(identity.ID, role, input.FirstName, input.LastName, input.Email, input.PhoneNumber)
	if err != nil {
		return uc.abandonIdentity(ctx, identity.ID, err)
	}
	profile.LicenseNumber = input.LicenseNumber
	profile.AgencyName = input.AgencyName

	if err := uc.profiles.CreateProfile(ctx, profile); err != nil {
		uc.logger.Error("profile write failed after sign-up, forcing sign-out",
			"identity_id", identity.ID, "error", err)
		return uc.abandonIdentity(ctx, identity.ID, fmt.Errorf("create profile: %w", err))
	}

	uc.mu.Lock()
	uc.target = identity.ID
	uc.mu.Unlock()

	// The data just written is authoritative; no remote read needed.
	if err := uc.cache.Set(identity.ID, role); err != nil {
		uc.logger.Warn("role cache write failed", "error", err)
	}
	uc.commitResolved(identity, role)
	uc.logger.Info("registration complete", "identity_id", identity.ID, "role", role)
	return uc.Current(), nil
}

// abandonIdentity rolls back a half-created account: the identity exists
// but no profile does, which must never surface as authenticated.
func (uc *SessionUseCase) abandonIdentity(ctx context.Context, identityID string, cause error) (domain.Session, error) {
	if err := uc.identity.SignOut(ctx); err != nil {
		uc.logger.Error("sign-out after failed registration failed", "error", err)
	}
	uc.clearCache(identityID)
	uc.resetUnauthenticated()
	return uc.Current(), cause
}

// Logout signs out of the provider and clears the role cache. The
// transition to Unauthenticated is driven by the provider's own identity
// notification rather than set optimistically, so it cannot race a
// resolution in flight.
func (uc *SessionUseCase) Logout(ctx context.Context) error {
	current := uc.Current()
	if err := uc.identity.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	if id := current.IdentityID(); id != "" {
		uc.clearCache(id)
	}
	uc.logger.Info("logout requested; awaiting provider notification")
	return nil
}

// Current returns a snapshot of the session state
func (uc *SessionUseCase) Current() domain.Session {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.session
}

// Subscribe registers a session observer. The handler fires immediately
// with the current state and on every transition until cancelled.
func (uc *SessionUseCase) Subscribe(handler port.SessionHandler) port.CancelFunc {
	uc.mu.Lock()
	id := uc.nextSubID
	uc.nextSubID++
	uc.subscribers[id] = handler
	current := uc.session
	uc.mu.Unlock()

	handler(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			uc.mu.Lock()
			delete(uc.subscribers, id)
			uc.mu.Unlock()
		})
	}
}

// commitResolved publishes an authenticated session unless the identity
// no longer matches the latest target (stale-write protection).
func (uc *SessionUseCase) commitResolved(identity *domain.Identity, role domain.Role) bool {
	session, err := domain.AuthenticatedSession(identity, role)
	if err != nil {
		uc.logger.Error("refusing invalid session", "error", err)
		return false
	}

	uc.mu.Lock()
	if uc.target != identity.ID {
		uc.mu.Unlock()
		uc.logger.Info("discarding stale role resolution",
			"identity_id", identity.ID)
		return false
	}
	uc.session = session
	handlers := uc.snapshotSubscribersLocked()
	uc.mu.Unlock()

	notify(handlers, session)
	return true
}

// forceUnauthenticated publishes a signed-out session if the failed
// resolution still targets the latest identity.
func (uc *SessionUseCase) forceUnauthenticated(identityID string) {
	uc.mu.Lock()
	if uc.target != identityID {
		uc.mu.Unlock()
		return
	}
	uc.target = ""
	uc.session = domain.UnauthenticatedSession()
	handlers := uc.snapshotSubscribersLocked()
	uc.mu.Unlock()

	notify(handlers, domain.UnauthenticatedSession())
}

// resetUnauthenticated unconditionally publishes a signed-out session
// (command-path rollback).
func (uc *SessionUseCase) resetUnauthenticated() {
	uc.mu.Lock()
	uc.target = ""
	uc.session = domain.UnauthenticatedSession()
	handlers := uc.snapshotSubscribersLocked()
	uc.mu.Unlock()

	notify(handlers, domain.UnauthenticatedSession())
}

func (uc *SessionUseCase) setSession(session domain.Session) {
	uc.mu.Lock()
	uc.session = session
	handlers := uc.snapshotSubscribersLocked()
	uc.mu.Unlock()

	notify(handlers, session)
}

func (uc *SessionUseCase) snapshotSubscribersLocked() []port.SessionHandler {
	handlers := make([]port.SessionHandler, 0, len(uc.subscribers))
	for _, h := range uc.subscribers {
		handlers = append(handlers, h)
	}
	return handlers
}

func notify(handlers []port.SessionHandler, session domain.Session) {
	for _, h := range handlers {
		h(session)
	}
}

func (uc *SessionUseCase) clearCache(identityID string) {
	if err := uc.cache.Delete(identityID); err != nil {
		uc.logger.Warn("role cache delete failed", "error", err)
	}
}

func (uc *SessionUseCase) signalFirst(err error) {
	uc.firstOnce.Do(func() {
		uc.firstDone <- err
	})
}
