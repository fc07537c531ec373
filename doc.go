// Package boxoffice provides an embeddable event inventory and pricing
// engine for multi-tenant booking platforms.
//
// Boxoffice is designed as a library, not a service. Import it directly
// into your Go application for maximum performance and flexibility. It
// provides:
//
//   - Double-entry capacity ledgers that cannot oversell a section
//   - Atomic paired reserve/release/sell across section and ticket type
//   - Deterministic itemized price quotes (options, discounts, fees, taxes)
//   - Fixed-point money arithmetic in integer minor units
//   - Policy-driven pricing per deployment or region
//   - Pluggable promo validation and tax calculation
//
// # Quick Start
//
// Create an engine with your preferred store:
//
//	import (
//	    "github.com/xraph/boxoffice"
//	    "github.com/xraph/boxoffice/store/memory"
//	)
//
//	eng := boxoffice.New(memory.New())
//	if err := eng.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Stop()
//
// Provision inventory top-down: venue, performance, sections, ticket
// type allocations. Then reserve, quote, and sell:
//
//	snap, err := eng.ReserveSeats(ctx, perfID, "VIP", adultID, 2)
//	quote, err := eng.Quote(ctx, boxoffice.QuoteInput{
//	    PerformanceID: perfID,
//	    SectionName:   "VIP",
//	    TicketTypeID:  adultID,
//	    Quantity:      2,
//	})
//
// # Core Concepts
//
// A Venue bounds the capacity of every Performance scheduled in it. A
// Performance partitions its declared capacity into named Sections; a
// Section allocates its capacity to TicketTypes. Every capacity figure
// is a triad (available, reserved, sold) that always sums to its
// total, and every mutation moves both the section ledger and the
// allocation ledger together or not at all.
//
// Prices come from the section's base price times the allocation's
// modifier in basis points, then flow through a fixed pipeline of
// options, discounts, fees, and taxes defined by the active Policy.
package boxoffice
