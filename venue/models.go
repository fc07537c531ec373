package venue

import (
	"time"

	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/types"
)

// Venue is the top of the capacity hierarchy. Its MaxCapacity bounds
// the summed capacity of every performance scheduled in it.
type Venue struct {
	types.Entity
	ID          id.VenueID        `json:"id"`
	TenantID    string            `json:"tenant_id"`
	Name        string            `json:"name"`
	City        string            `json:"city,omitempty"`
	MaxCapacity int               `json:"max_capacity"`
	Active      bool              `json:"active"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Performance is a single ticketed occurrence at a venue. Its declared
// Capacity must be matched exactly by the sum of its sections' totals
// once provisioning is complete.
type Performance struct {
	types.Entity
	ID       id.PerformanceID  `json:"id"`
	VenueID  id.VenueID        `json:"venue_id"`
	TenantID string            `json:"tenant_id"`
	Name     string            `json:"name"`
	StartsAt time.Time         `json:"starts_at"`
	Capacity int               `json:"capacity"`
	Currency string            `json:"currency"`
	Active   bool              `json:"active"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
