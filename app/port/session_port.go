package port

//go:generate mockgen -source=session_port.go -destination=../mocks/mock_session_port.go

import (
	"context"

	"marketplace-core/app/domain"
)

// SessionHandler receives every session state transition, starting with
// the current state at subscription time.
type SessionHandler func(session domain.Session)

// RegisterInput carries the registration command's fields
type RegisterInput struct {
	Email       string `validate:"required,email"`
	Password    string `validate:"required,min=8"`
	Role        string `validate:"required,oneof=renter agent"`
	FirstName   string `validate:"required"`
	LastName    string `validate:"required"`
	PhoneNumber string `validate:"omitempty,e164"`

	// Agent-only fields
	LicenseNumber string `validate:"required_if=Role agent"`
	AgencyName    string `validate:"omitempty"`
}

// SessionUsecase defines the session/identity bootstrap surface: the
// single source of truth for who the user is and what role they hold.
type SessionUsecase interface {
	// Bootstrap starts identity tracking and blocks until the first
	// identity notification and any role resolution for it complete.
	Bootstrap(ctx context.Context) error

	Login(ctx context.Context, email, password string) (domain.Session, error)
	LoginWithToken(ctx context.Context, token string) (domain.Session, error)
	Register(ctx context.Context, input RegisterInput) (domain.Session, error)
	Logout(ctx context.Context) error

	Current() domain.Session
	Subscribe(handler SessionHandler) CancelFunc
}
