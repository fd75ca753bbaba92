package domain

import (
	"fmt"
	"time"
)

// ProfilesCollection is the store collection holding profile documents,
// keyed by identity id.
const ProfilesCollection = "profiles"

// Profile is the remote record a principal owns: role plus personal
// attributes. Created exactly once at registration; afterwards mutated
// only by its owner.
type Profile struct {
	IdentityID  string    `json:"identity_id"`
	Role        Role      `json:"role"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`

	// Agent-specific attributes, empty for renters
	LicenseNumber string `json:"license_number,omitempty"`
	AgencyName    string `json:"agency_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfile creates a profile with validation
func NewProfile(identityID string, role Role, firstName, lastName, email, phone string) (*Profile, error) {
	if identityID == "" {
		return nil, fmt.Errorf("identity id is required")
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return &Profile{
		IdentityID:  identityID,
		Role:        role,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		PhoneNumber: phone,
	}, nil
}

// Fields returns the profile as a store document body. Timestamps are
// omitted: the store assigns them server-side.
func (p *Profile) Fields() map[string]any {
	fields := map[string]any{
		"role":         string(p.Role),
		"first_name":   p.FirstName,
		"last_name":    p.LastName,
		"email":        p.Email,
		"phone_number": p.PhoneNumber,
	}
	if p.Role == RoleAgent {
		fields["license_number"] = p.LicenseNumber
		fields["agency_name"] = p.AgencyName
	}
	return fields
}

// ProfileFromDocument rebuilds a profile from a store document
func ProfileFromDocument(doc *Document) (*Profile, error) {
	if doc == nil || !doc.Exists {
		return nil, ErrProfileMissing
	}

	role, err := ParseRole(doc.String("role"))
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", doc.ID, err)
	}

	return &Profile{
		IdentityID:    doc.ID,
		Role:          role,
		FirstName:     doc.String("first_name"),
		LastName:      doc.String("last_name"),
		Email:         doc.String("email"),
		PhoneNumber:   doc.String("phone_number"),
		LicenseNumber: doc.String("license_number"),
		AgencyName:    doc.String("agency_name"),
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}
