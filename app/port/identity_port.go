package port

//go:generate mockgen -source=identity_port.go -destination=../mocks/mock_identity_port.go

import (
	"context"

	"marketplace-core/app/domain"
)

// IdentityHandler receives the current identity whenever it changes.
// A nil identity means signed out.
type IdentityHandler func(identity *domain.Identity)

// IdentityClient defines the low-level identity provider driver contract
type IdentityClient interface {
	SignIn(ctx context.Context, email, password string) (*domain.Identity, error)
	SignInWithToken(ctx context.Context, token string) (*domain.Identity, error)
	SignUp(ctx context.Context, email, password string) (*domain.Identity, error)
	SignOut(ctx context.Context) error

	// OnIdentityChanged registers a push-style listener. The first
	// notification reflects the provider's current state.
	OnIdentityChanged(handler IdentityHandler) CancelFunc
}

// IdentityGateway defines the identity provider surface consumed by
// usecases. It mirrors IdentityClient but translates provider errors into
// the domain taxonomy.
type IdentityGateway interface {
	SignIn(ctx context.Context, email, password string) (*domain.Identity, error)
	SignInWithToken(ctx context.Context, token string) (*domain.Identity, error)
	SignUp(ctx context.Context, email, password string) (*domain.Identity, error)
	SignOut(ctx context.Context) error
	OnIdentityChanged(handler IdentityHandler) CancelFunc
}
