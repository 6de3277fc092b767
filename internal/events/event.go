// Package events carries listing events from the services to the live
// feed: publish goes through Redis Pub/Sub, fan-out to WebSocket
// clients happens in the Hub.
package events

import "arendago/backend/internal/models"

// Event kinds.
const (
	KindPublished     = "published"
	KindStatusChanged = "status_changed"
	KindRemoved       = "removed"
)

// ListingEvent — одно событие жизненного цикла объявления в live-ленте.
type ListingEvent struct {
	Kind      string             `json:"kind"`
	ListingID uint               `json:"listingId"`
	Type      models.ListingType `json:"type"`
	District  string             `json:"district"`
	Status    models.ListingStatus `json:"status"`
	Price     *int               `json:"price,omitempty"`
	Rooms     *int               `json:"rooms,omitempty"`
}

// FromListing builds the event for a listing snapshot.
func FromListing(kind string, l *models.Listing) ListingEvent {
	return ListingEvent{
		Kind:      kind,
		ListingID: l.ID,
		Type:      l.Type,
		District:  l.District,
		Status:    l.Status,
		Price:     l.Price,
		Rooms:     l.Rooms,
	}
}
