package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace-core/app/domain"
	"marketplace-core/app/port"
)

// IdentityGateway implements port.IdentityGateway.
// It acts as an anti-corruption layer between the domain and the external
// identity provider driver.
type IdentityGateway struct {
	client port.IdentityClient
	logger *slog.Logger
}

// NewIdentityGateway creates a new IdentityGateway instance
func NewIdentityGateway(client port.IdentityClient, logger *slog.Logger) *IdentityGateway {
	return &IdentityGateway{
		client: client,
		logger: logger.With("component", "identity_gateway"),
	}
}

// SignIn authenticates with email and password
func (g *IdentityGateway) SignIn(ctx context.Context, email, password string) (*domain.Identity, error) {
	g.logger.Info("signing in", "email", email)

	identity, err := g.client.SignIn(ctx, email, password)
	if err != nil {
		g.logger.Warn("sign-in failed", "email", email, "error", err)
		return nil, fmt.Errorf("sign in: %w", err)
	}

	g.logger.Info("sign-in succeeded", "identity_id", identity.ID)
	return identity, nil
}

// SignInWithToken authenticates with a provider-issued token
func (g *IdentityGateway) SignInWithToken(ctx context.Context, token string) (*domain.Identity, error) {
	g.logger.Info("signing in with token")

	identity, err := g.client.SignInWithToken(ctx, token)
	if err != nil {
		g.logger.Warn("token sign-in failed", "error", err)
		return nil, fmt.Errorf("sign in with token: %w", err)
	}

	g.logger.Info("token sign-in succeeded", "identity_id", identity.ID)
	return identity, nil
}

// SignUp creates a new identity
func (g *IdentityGateway) SignUp(ctx context.Context, email, password string) (*domain.Identity, error) {
	g.logger.Info("signing up", "email", email)

	identity, err := g.client.SignUp(ctx, email, password)
	if err != nil {
		g.logger.Warn("sign-up failed", "email", email, "error", err)
		return nil, fmt.Errorf("sign up: %w", err)
	}

	g.logger.Info("sign-up succeeded", "identity_id", identity.ID)
	return identity, nil
}

// SignOut revokes the current identity's provider session
func (g *IdentityGateway) SignOut(ctx context.Context) error {
	g.logger.Info("signing out")

	if err := g.client.SignOut(ctx); err != nil {
		g.logger.Error("sign-out failed", "error", err)
		return fmt.Errorf("sign out: %w", err)
	}

	g.logger.Info("sign-out succeeded")
	return nil
}

// OnIdentityChanged forwards the provider's identity notifications
func (g *IdentityGateway) OnIdentityChanged(handler port.IdentityHandler) port.CancelFunc {
	return g.client.OnIdentityChanged(handler)
}
