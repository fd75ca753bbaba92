package domain

import (
	"fmt"
	"net/mail"
)

// Role represents the access class of a signed-in principal
type Role string

const (
	RoleRenter Role = "renter"
	RoleAgent  Role = "agent"
)

// ParseRole validates a raw role value
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleRenter, RoleAgent:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
}

// Valid returns true if the role is a known access class
func (r Role) Valid() bool {
	return r == RoleRenter || r == RoleAgent
}

// Identity is the principal record issued by the identity provider.
// Immutable from this module's perspective except across sign-in/out.
type Identity struct {
	ID    string
	Email string
}

// NewIdentity creates an identity with validation
func NewIdentity(id, email string) (*Identity, error) {
	if id == "" {
		return nil, fmt.Errorf("identity id is required")
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("invalid email format: %w", err)
		}
	}
	return &Identity{ID: id, Email: email}, nil
}

// Session is the per-process reactive authentication state. Exactly one
// exists per running client; only SessionUseCase writes it.
//
// Invariant: Authenticated implies Role is set. Any path that would break
// this forces a sign-out instead.
type Session struct {
	Identity      *Identity
	Role          Role
	Authenticated bool
	Bootstrapping bool
}

// NewBootstrapSession returns the initial session state
func NewBootstrapSession() Session {
	return Session{Bootstrapping: true}
}

// Unauthenticated returns the signed-out session state
func UnauthenticatedSession() Session {
	return Session{}
}

// AuthenticatedSession returns a signed-in session for the given identity
// and resolved role
func AuthenticatedSession(identity *Identity, role Role) (Session, error) {
	if identity == nil {
		return Session{}, fmt.Errorf("identity is required")
	}
	if !role.Valid() {
		return Session{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return Session{
		Identity:      identity,
		Role:          role,
		Authenticated: true,
	}, nil
}

// IsValid checks the authenticated-implies-role invariant
func (s Session) IsValid() bool {
	if s.Authenticated {
		return s.Identity != nil && s.Role.Valid() && !s.Bootstrapping
	}
	return true
}

// IdentityID returns the current identity id, or "" when signed out.
func (s Session) IdentityID() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.ID
}
