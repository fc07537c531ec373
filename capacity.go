package boxoffice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/section"
)

// CapacitySnapshot is the post-commit state of a paired capacity
// mutation, returned to the caller and passed to plugins.
type CapacitySnapshot struct {
	PerformanceID id.PerformanceID `json:"performance_id"`
	SectionID     id.SectionID     `json:"section_id"`
	SectionName   string           `json:"section_name"`
	TicketTypeID  id.TicketTypeID  `json:"ticket_type_id"`
	Op            section.Op       `json:"op"`
	Quantity      int              `json:"quantity"`

	SectionAvailable    int `json:"section_available"`
	SectionReserved     int `json:"section_reserved"`
	SectionSold         int `json:"section_sold"`
	AllocationAvailable int `json:"allocation_available"`
	AllocationReserved  int `json:"allocation_reserved"`
	AllocationSold      int `json:"allocation_sold"`

	At time.Time `json:"at"`
}

// ReserveSeats moves quantity units from available to reserved in both
// the ticket-type allocation and its owning section, atomically.
func (e *Engine) ReserveSeats(ctx context.Context, perfID id.PerformanceID, sectionName string, ticketTypeID id.TicketTypeID, quantity int) (*CapacitySnapshot, error) {
	return e.mutate(ctx, perfID, sectionName, ticketTypeID, section.OpReserve, quantity)
}

// ReleaseSeats moves quantity units from reserved back to available in
// both ledgers, atomically. Used for cancellations and expired holds.
func (e *Engine) ReleaseSeats(ctx context.Context, perfID id.PerformanceID, sectionName string, ticketTypeID id.TicketTypeID, quantity int) (*CapacitySnapshot, error) {
	return e.mutate(ctx, perfID, sectionName, ticketTypeID, section.OpRelease, quantity)
}

// SellSeats converts quantity reserved units into sold units in both
// ledgers, atomically. Sold units never return to available.
func (e *Engine) SellSeats(ctx context.Context, perfID id.PerformanceID, sectionName string, ticketTypeID id.TicketTypeID, quantity int) (*CapacitySnapshot, error) {
	return e.mutate(ctx, perfID, sectionName, ticketTypeID, section.OpSell, quantity)
}

// mutate runs one paired ledger mutation under the per-section lock.
// The lock covers the whole section, not just the ticket type: every
// mutation rewrites the section triad, so two ticket types racing on
// the same section would lose updates otherwise.
func (e *Engine) mutate(ctx context.Context, perfID id.PerformanceID, sectionName string, ticketTypeID id.TicketTypeID, op section.Op, quantity int) (*CapacitySnapshot, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	key := perfID.String() + "/" + sectionName
	release, err := e.locks.acquire(ctx, key, e.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer release()

	s, err := e.store.SectionStore().GetByName(ctx, perfID, sectionName)
	if err != nil {
		return nil, err
	}
	if !s.Active {
		return nil, fmt.Errorf("%w: section %s", ErrInactive, s.Name)
	}

	a, err := e.store.SectionStore().GetAllocation(ctx, s.ID, ticketTypeID)
	if err != nil {
		return nil, err
	}

	tx := section.Transaction{Section: s, Allocation: a, Op: op, Quantity: quantity}
	if err := tx.Apply(); err != nil {
		if op == section.OpReserve && errors.Is(err, section.ErrInsufficientCapacity) {
			e.plugins.EmitReservationRejected(ctx, s.Name, quantity, a.AvailableCapacity)
		}
		return nil, translateLedgerErr(err)
	}

	if err := e.store.SectionStore().UpdatePair(ctx, s, a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	snap := &CapacitySnapshot{
		PerformanceID:       perfID,
		SectionID:           s.ID,
		SectionName:         s.Name,
		TicketTypeID:        ticketTypeID,
		Op:                  op,
		Quantity:            quantity,
		SectionAvailable:    s.AvailableCapacity,
		SectionReserved:     s.ReservedCapacity,
		SectionSold:         s.SoldCapacity,
		AllocationAvailable: a.AvailableCapacity,
		AllocationReserved:  a.ReservedCapacity,
		AllocationSold:      a.SoldCapacity,
		At:                  time.Now().UTC(),
	}

	switch op {
	case section.OpReserve:
		e.plugins.EmitSeatsReserved(ctx, snap)
	case section.OpRelease:
		e.plugins.EmitSeatsReleased(ctx, snap)
	case section.OpSell:
		e.plugins.EmitSeatsSold(ctx, snap)
	}
	if s.IsFull() {
		e.plugins.EmitSectionFull(ctx, s)
	}

	e.logger.Debug("capacity mutated",
		"op", op,
		"section", s.Name,
		"ticket_type_id", ticketTypeID,
		"quantity", quantity,
		"section_available", s.AvailableCapacity,
	)

	return snap, nil
}

// translateLedgerErr maps section-package sentinels onto the engine's
// public error taxonomy.
func translateLedgerErr(err error) error {
	switch {
	case errors.Is(err, section.ErrInvalidQuantity):
		return fmt.Errorf("%w: %v", ErrInvalidQuantity, err)
	case errors.Is(err, section.ErrInsufficientCapacity):
		return fmt.Errorf("%w: %v", ErrInsufficientCapacity, err)
	case errors.Is(err, section.ErrInvalidReleaseQuantity):
		return fmt.Errorf("%w: %v", ErrInvalidRelease, err)
	case errors.Is(err, section.ErrInvalidSaleQuantity):
		return fmt.Errorf("%w: %v", ErrInvalidSale, err)
	default:
		return err
	}
}

// CheckAvailability reports whether quantity units of the ticket type
// can currently be reserved in the named section. Advisory only: a
// positive answer can go stale before a subsequent reserve.
func (e *Engine) CheckAvailability(ctx context.Context, perfID id.PerformanceID, sectionName string, ticketTypeID id.TicketTypeID, quantity int) (bool, error) {
	s, err := e.store.SectionStore().GetByName(ctx, perfID, sectionName)
	if err != nil {
		return false, err
	}
	a, err := e.store.SectionStore().GetAllocation(ctx, s.ID, ticketTypeID)
	if err != nil {
		return false, err
	}
	return s.CanReserve(quantity) && a.CanReserve(quantity), nil
}

// CapacitySummary returns the performance-wide occupancy rollup.
func (e *Engine) CapacitySummary(ctx context.Context, perfID id.PerformanceID) (*section.Summary, error) {
	p, err := e.store.VenueStore().GetPerformance(ctx, perfID)
	if err != nil {
		return nil, err
	}

	sections, err := e.store.SectionStore().List(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	out := &section.Summary{PerformanceID: p.ID}
	for _, s := range sections {
		allocations, err := e.store.SectionStore().ListAllocations(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		ss := section.Summarize(s, allocations)
		out.Sections = append(out.Sections, ss)
		out.Total += ss.Total
		out.Available += ss.Available
		out.Reserved += ss.Reserved
		out.Sold += ss.Sold
	}
	if out.Total > 0 {
		out.OccupancyRate = float64(out.Reserved+out.Sold) / float64(out.Total) * 100
	}
	return out, nil
}
