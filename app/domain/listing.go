package domain

import "time"

// Store collections for marketplace records
const (
	ListingsCollection     = "listings"
	ApplicationsCollection = "applications"
	PaymentsCollection     = "payments"
)

// ListingStatus represents the lifecycle state of a listing
type ListingStatus string

const (
	ListingStatusActive   ListingStatus = "active"
	ListingStatusLeased   ListingStatus = "leased"
	ListingStatusArchived ListingStatus = "archived"
)

// Listing is a property listing owned by an agent
type Listing struct {
	ID        string        `json:"id"`
	AgentID   string        `json:"agent_id"`
	Title     string        `json:"title"`
	Address   string        `json:"address"`
	RentCents int64         `json:"rent_cents"`
	Bedrooms  int           `json:"bedrooms"`
	Status    ListingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Fields returns the listing as a store document body
func (l *Listing) Fields() map[string]any {
	return map[string]any{
		"agent_id":   l.AgentID,
		"title":      l.Title,
		"address":    l.Address,
		"rent_cents": l.RentCents,
		"bedrooms":   l.Bedrooms,
		"status":     string(l.Status),
	}
}

// ApplicationStatus represents the lifecycle state of an application
type ApplicationStatus string

const (
	ApplicationStatusSubmitted ApplicationStatus = "submitted"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusDeclined  ApplicationStatus = "declined"
)

// Application is a renter's application against a listing
type Application struct {
	ID        string            `json:"id"`
	ListingID string            `json:"listing_id"`
	RenterID  string            `json:"renter_id"`
	AgentID   string            `json:"agent_id"`
	Message   string            `json:"message"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Fields returns the application as a store document body
func (a *Application) Fields() map[string]any {
	return map[string]any{
		"listing_id": a.ListingID,
		"renter_id":  a.RenterID,
		"agent_id":   a.AgentID,
		"message":    a.Message,
		"status":     string(a.Status),
	}
}
