// Package section holds the two capacity ledgers of the inventory core:
// the Section ledger and the per-ticket-type allocation ledger nested
// inside it. Every capacity figure is partitioned into the triad
// (available, reserved, sold); the triad must sum to the total after
// every mutation, and a mutation that would break the sum is rejected
// before anything is committed.
package section

import (
	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/types"
)

// Section is a named inventory partition of a performance ("VIP",
// "Main Floor"). It is created once at provisioning time and mutated
// only through reserve/release/sell for the rest of its life; it is
// deactivated, never deleted, while bookings reference it.
type Section struct {
	types.Entity
	ID                   id.SectionID      `json:"id"`
	PerformanceID        id.PerformanceID  `json:"performance_id"`
	Name                 string            `json:"name"`
	TotalCapacity        int               `json:"total_capacity"`
	AvailableCapacity    int               `json:"available_capacity"`
	ReservedCapacity     int               `json:"reserved_capacity"`
	SoldCapacity         int               `json:"sold_capacity"`
	BasePrice            types.Money       `json:"base_price"`
	Currency             string            `json:"currency"`
	WheelchairAccessible bool              `json:"wheelchair_accessible"`
	Premium              bool              `json:"premium"`
	Active               bool              `json:"active"`
	Metadata             map[string]string `json:"metadata,omitempty"`
}

// New creates a fully available section for a performance.
func New(perfID id.PerformanceID, name string, total int, basePrice types.Money) *Section {
	return &Section{
		Entity:            types.NewEntity(),
		ID:                id.NewSectionID(),
		PerformanceID:     perfID,
		Name:              name,
		TotalCapacity:     total,
		AvailableCapacity: total,
		BasePrice:         basePrice,
		Currency:          basePrice.Currency,
		Active:            true,
	}
}

// CanReserve reports whether n units can currently be reserved.
func (s *Section) CanReserve(n int) bool {
	return n > 0 && s.AvailableCapacity >= n
}

// Reserve moves n units from available to reserved.
func (s *Section) Reserve(n int) error {
	if n <= 0 {
		return ErrInvalidQuantity
	}
	if s.AvailableCapacity < n {
		return ErrInsufficientCapacity
	}
	return s.apply(-n, n, 0)
}

// Release moves n units from reserved back to available.
func (s *Section) Release(n int) error {
	if n <= 0 {
		return ErrInvalidQuantity
	}
	if s.ReservedCapacity < n {
		return ErrInvalidReleaseQuantity
	}
	return s.apply(n, -n, 0)
}

// Sell converts n reserved units into sold units. A sale is terminal:
// sold capacity never returns to available.
func (s *Section) Sell(n int) error {
	if n <= 0 {
		return ErrInvalidQuantity
	}
	if s.ReservedCapacity < n {
		return ErrInvalidSaleQuantity
	}
	return s.apply(0, -n, n)
}

// OccupancyRate returns (reserved+sold)/total as a percentage,
// and 0 for a zero-capacity section.
func (s *Section) OccupancyRate() float64 {
	if s.TotalCapacity == 0 {
		return 0
	}
	return float64(s.ReservedCapacity+s.SoldCapacity) / float64(s.TotalCapacity) * 100
}

// IsFull reports whether no available capacity remains.
func (s *Section) IsFull() bool {
	return s.AvailableCapacity == 0
}

// apply validates the post-mutation triad before committing it.
func (s *Section) apply(dAvail, dRes, dSold int) error {
	avail := s.AvailableCapacity + dAvail
	res := s.ReservedCapacity + dRes
	sold := s.SoldCapacity + dSold

	if err := checkTriad(avail, res, sold, s.TotalCapacity); err != nil {
		return &InvariantError{Entity: "section", ID: s.ID, Available: avail, Reserved: res, Sold: sold, Total: s.TotalCapacity}
	}

	s.AvailableCapacity = avail
	s.ReservedCapacity = res
	s.SoldCapacity = sold
	s.Touch()
	return nil
}

// SectionTicketType is the allocation of a section's capacity to one
// ticket type. Its triad sums to AllocatedCapacity; the allocations of
// a section need not cover the section's full total (the remainder is
// unallocated general capacity), but a mutation here is only legal as
// half of a paired update with the owning section.
type SectionTicketType struct {
	types.Entity
	ID                id.AllocationID  `json:"id"`
	SectionID         id.SectionID     `json:"section_id"`
	TicketTypeID      id.TicketTypeID  `json:"ticket_type_id"`
	AllocatedCapacity int              `json:"allocated_capacity"`
	AvailableCapacity int              `json:"available_capacity"`
	ReservedCapacity  int              `json:"reserved_capacity"`
	SoldCapacity      int              `json:"sold_capacity"`
	// ModifierBps is the multiplicative price factor over the section
	// base price, in basis points: 10000 = 1.0x, 15000 = 1.5x.
	ModifierBps int64 `json:"modifier_bps"`
}

// NewAllocation creates a fully available ticket-type allocation
// inside a section.
func NewAllocation(sectionID id.SectionID, ticketTypeID id.TicketTypeID, allocated int, modifierBps int64) *SectionTicketType {
	if modifierBps == 0 {
		modifierBps = types.BpsScale
	}
	return &SectionTicketType{
		Entity:            types.NewEntity(),
		ID:                id.NewAllocationID(),
		SectionID:         sectionID,
		TicketTypeID:      ticketTypeID,
		AllocatedCapacity: allocated,
		AvailableCapacity: allocated,
		ModifierBps:       modifierBps,
	}
}

// CanReserve reports whether n units can currently be reserved.
func (a *SectionTicketType) CanReserve(n int) bool {
	return n > 0 && a.AvailableCapacity >= n
}

// Reserve moves n units from available to reserved.
func (a *SectionTicketType) Reserve(n int) error {
	if n <= 0 {
		return ErrInvalidQuantity
	}
	if a.AvailableCapacity < n {
		return ErrInsufficientCapacity
	}
	return a.apply(-n, n, 0)
}

// Release moves n units from reserved back to available.
func (a *SectionTicketType) Release(n int) error {
	if n <= 0 {
		return ErrInvalidQuantity
	}
	if a.ReservedCapacity < n {
		return ErrInvalidReleaseQuantity
	}
	return a.apply(n, -n, 0)
}

// Sell converts n reserved units into sold units.
func (a *SectionTicketType) Sell(n int) error {
	if n <= 0 {
		return ErrInvalidQuantity
	}
	if a.ReservedCapacity < n {
		return ErrInvalidSaleQuantity
	}
	return a.apply(0, -n, n)
}

// OccupancyRate returns (reserved+sold)/allocated as a percentage,
// and 0 for an empty allocation.
func (a *SectionTicketType) OccupancyRate() float64 {
	if a.AllocatedCapacity == 0 {
		return 0
	}
	return float64(a.ReservedCapacity+a.SoldCapacity) / float64(a.AllocatedCapacity) * 100
}

// IsFull reports whether no available capacity remains.
func (a *SectionTicketType) IsFull() bool {
	return a.AvailableCapacity == 0
}

func (a *SectionTicketType) apply(dAvail, dRes, dSold int) error {
	avail := a.AvailableCapacity + dAvail
	res := a.ReservedCapacity + dRes
	sold := a.SoldCapacity + dSold

	if err := checkTriad(avail, res, sold, a.AllocatedCapacity); err != nil {
		return &InvariantError{Entity: "allocation", ID: a.ID, Available: avail, Reserved: res, Sold: sold, Total: a.AllocatedCapacity}
	}

	a.AvailableCapacity = avail
	a.ReservedCapacity = res
	a.SoldCapacity = sold
	a.Touch()
	return nil
}

// checkTriad is the ledger invariant: the triad components are
// non-negative and sum to the total.
func checkTriad(available, reserved, sold, total int) error {
	if available < 0 || reserved < 0 || sold < 0 {
		return ErrInvalidQuantity
	}
	if available+reserved+sold != total {
		return ErrInvalidQuantity
	}
	return nil
}
