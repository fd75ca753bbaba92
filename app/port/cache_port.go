package port

//go:generate mockgen -source=cache_port.go -destination=../mocks/mock_cache_port.go

import "marketplace-core/app/domain"

// RoleCache is the device-local durable identity→role cache. It is a
// warm-start optimization, never authoritative: the profile record wins.
type RoleCache interface {
	Get(identityID string) (domain.Role, bool, error)
	Set(identityID string, role domain.Role) error
	Delete(identityID string) error
}
