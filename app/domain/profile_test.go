package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-core/app/domain"
)

func TestNewProfile(t *testing.T) {
	profile, err := domain.NewProfile("id-123", domain.RoleRenter, "Aiko", "Tanaka", "renter@example.com", "+818012345678")
	require.NoError(t, err)
	assert.Equal(t, "id-123", profile.IdentityID)
	assert.Equal(t, domain.RoleRenter, profile.Role)

	_, err = domain.NewProfile("", domain.RoleRenter, "Aiko", "Tanaka", "renter@example.com", "")
	assert.Error(t, err)

	_, err = domain.NewProfile("id-123", domain.Role("admin"), "Aiko", "Tanaka", "renter@example.com", "")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestProfile_Fields(t *testing.T) {
	t.Run("renter omits agent attributes", func(t *testing.T) {
		profile, err := domain.NewProfile("id-123", domain.RoleRenter, "Aiko", "Tanaka", "renter@example.com", "")
		require.NoError(t, err)

		fields := profile.Fields()
		assert.Equal(t, "renter", fields["role"])
		assert.NotContains(t, fields, "license_number")
		assert.NotContains(t, fields, "agency_name")
		// Timestamps belong to the store's clock.
		assert.NotContains(t, fields, "created_at")
		assert.NotContains(t, fields, "updated_at")
	})

	t.Run("agent carries license and agency", func(t *testing.T) {
		profile, err := domain.NewProfile("id-456", domain.RoleAgent, "Kenji", "Sato", "agent@example.com", "")
		require.NoError(t, err)
		profile.LicenseNumber = "LIC-0042"
		profile.AgencyName = "Sato Realty"

		fields := profile.Fields()
		assert.Equal(t, "agent", fields["role"])
		assert.Equal(t, "LIC-0042", fields["license_number"])
		assert.Equal(t, "Sato Realty", fields["agency_name"])
	})
}

func TestProfileFromDocument(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		doc     *domain.Document
		wantErr error
		check   func(*testing.T, *domain.Profile)
	}{
		{
			name: "complete agent document",
			doc: &domain.Document{
				ID:     "id-456",
				Exists: true,
				Data: map[string]any{
					"role":           "agent",
					"first_name":     "Kenji",
					"last_name":      "Sato",
					"email":          "agent@example.com",
					"license_number": "LIC-0042",
				},
				CreatedAt: now,
				UpdatedAt: now,
			},
			check: func(t *testing.T, p *domain.Profile) {
				assert.Equal(t, "id-456", p.IdentityID)
				assert.Equal(t, domain.RoleAgent, p.Role)
				assert.Equal(t, "LIC-0042", p.LicenseNumber)
				assert.Equal(t, now, p.CreatedAt)
			},
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: domain.ErrProfileMissing,
		},
		{
			name:    "absent document",
			doc:     &domain.Document{ID: "id-404", Exists: false},
			wantErr: domain.ErrProfileMissing,
		},
		{
			name: "corrupt role",
			doc: &domain.Document{
				ID:     "id-789",
				Exists: true,
				Data:   map[string]any{"role": "superuser"},
			},
			wantErr: domain.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := domain.ProfileFromDocument(tt.doc)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, profile)
				return
			}
			require.NoError(t, err)
			tt.check(t, profile)
		})
	}
}
