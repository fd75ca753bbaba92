package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-core/app/domain"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    domain.Role
		wantErr bool
	}{
		{name: "renter", raw: "renter", want: domain.RoleRenter},
		{name: "agent", raw: "agent", want: domain.RoleAgent},
		{name: "empty", raw: "", wantErr: true},
		{name: "unknown", raw: "admin", wantErr: true},
		{name: "case sensitive", raw: "Agent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := domain.ParseRole(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
			assert.True(t, role.Valid())
		})
	}
}

func TestNewIdentity(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		email   string
		wantErr bool
	}{
		{name: "valid", id: "id-123", email: "renter@example.com"},
		{name: "email optional", id: "id-123", email: ""},
		{name: "missing id", id: "", email: "renter@example.com", wantErr: true},
		{name: "malformed email", id: "id-123", email: "not-an-email", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := domain.NewIdentity(tt.id, tt.email)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, identity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, identity.ID)
			assert.Equal(t, tt.email, identity.Email)
		})
	}
}

func TestAuthenticatedSession(t *testing.T) {
	identity := &domain.Identity{ID: "id-123", Email: "agent@example.com"}

	t.Run("valid identity and role", func(t *testing.T) {
		session, err := domain.AuthenticatedSession(identity, domain.RoleAgent)
		require.NoError(t, err)
		assert.True(t, session.Authenticated)
		assert.True(t, session.IsValid())
		assert.Equal(t, "id-123", session.IdentityID())
	})

	t.Run("nil identity is refused", func(t *testing.T) {
		_, err := domain.AuthenticatedSession(nil, domain.RoleAgent)
		assert.Error(t, err)
	})

	t.Run("unresolved role is refused", func(t *testing.T) {
		// Authenticated always implies a resolved role; there is no way to
		// construct a session that violates that.
		_, err := domain.AuthenticatedSession(identity, domain.Role(""))
		require.ErrorIs(t, err, domain.ErrInvalidRole)

		_, err = domain.AuthenticatedSession(identity, domain.Role("admin"))
		require.ErrorIs(t, err, domain.ErrInvalidRole)
	})
}

func TestSessionStates(t *testing.T) {
	boot := domain.NewBootstrapSession()
	assert.True(t, boot.Bootstrapping)
	assert.False(t, boot.Authenticated)
	assert.True(t, boot.IsValid())
	assert.Empty(t, boot.IdentityID())

	anon := domain.UnauthenticatedSession()
	assert.False(t, anon.Bootstrapping)
	assert.False(t, anon.Authenticated)
	assert.True(t, anon.IsValid())
}
