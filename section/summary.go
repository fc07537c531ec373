package section

import "github.com/xraph/boxoffice/id"

// AllocationSummary is the read-only occupancy rollup for one
// ticket-type allocation.
type AllocationSummary struct {
	AllocationID  id.AllocationID `json:"allocation_id"`
	TicketTypeID  id.TicketTypeID `json:"ticket_type_id"`
	Allocated     int             `json:"allocated"`
	Available     int             `json:"available"`
	Reserved      int             `json:"reserved"`
	Sold          int             `json:"sold"`
	OccupancyRate float64         `json:"occupancy_rate"`
}

// SectionSummary is the read-only occupancy rollup for one section and
// its allocations.
type SectionSummary struct {
	SectionID     id.SectionID        `json:"section_id"`
	Name          string              `json:"name"`
	Total         int                 `json:"total"`
	Available     int                 `json:"available"`
	Reserved      int                 `json:"reserved"`
	Sold          int                 `json:"sold"`
	OccupancyRate float64             `json:"occupancy_rate"`
	Full          bool                `json:"full"`
	TicketTypes   []AllocationSummary `json:"ticket_types"`
}

// Summary is the performance-wide capacity rollup served to reporting
// collaborators. It is a snapshot; it never feeds back into mutations.
type Summary struct {
	PerformanceID id.PerformanceID `json:"performance_id"`
	Total         int              `json:"total"`
	Available     int              `json:"available"`
	Reserved      int              `json:"reserved"`
	Sold          int              `json:"sold"`
	OccupancyRate float64          `json:"occupancy_rate"`
	Sections      []SectionSummary `json:"sections"`
}

// Summarize builds the section-level rollup from current ledger state.
func Summarize(s *Section, allocations []*SectionTicketType) SectionSummary {
	out := SectionSummary{
		SectionID:     s.ID,
		Name:          s.Name,
		Total:         s.TotalCapacity,
		Available:     s.AvailableCapacity,
		Reserved:      s.ReservedCapacity,
		Sold:          s.SoldCapacity,
		OccupancyRate: s.OccupancyRate(),
		Full:          s.IsFull(),
		TicketTypes:   make([]AllocationSummary, 0, len(allocations)),
	}
	for _, a := range allocations {
		out.TicketTypes = append(out.TicketTypes, AllocationSummary{
			AllocationID:  a.ID,
			TicketTypeID:  a.TicketTypeID,
			Allocated:     a.AllocatedCapacity,
			Available:     a.AvailableCapacity,
			Reserved:      a.ReservedCapacity,
			Sold:          a.SoldCapacity,
			OccupancyRate: a.OccupancyRate(),
		})
	}
	return out
}
