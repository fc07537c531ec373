package venue

import (
	"context"

	"github.com/xraph/boxoffice/id"
)

// Store is the persistence contract for venues and performances.
type Store interface {
	CreateVenue(ctx context.Context, v *Venue) error
	GetVenue(ctx context.Context, venueID id.VenueID) (*Venue, error)
	ListVenues(ctx context.Context, tenantID string, opts ListOpts) ([]*Venue, error)

	CreatePerformance(ctx context.Context, p *Performance) error
	GetPerformance(ctx context.Context, perfID id.PerformanceID) (*Performance, error)
	ListPerformances(ctx context.Context, venueID id.VenueID, opts ListOpts) ([]*Performance, error)
}

// ListOpts narrows venue and performance listings.
type ListOpts struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}
