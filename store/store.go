// Package store defines the persistence interface for Boxoffice.
// Implementations live in subpackages (memory, postgres, mongo); the
// engine only ever sees this interface.
package store

import (
	"context"

	"github.com/xraph/boxoffice/option"
	"github.com/xraph/boxoffice/section"
	"github.com/xraph/boxoffice/tickettype"
	"github.com/xraph/boxoffice/venue"
)

// Store is the unified persistence interface. It composes the
// per-aggregate contracts so the engine can be handed a single
// dependency, while each aggregate package still owns its own
// contract for narrower consumers.
type Store interface {
	VenueStore() venue.Store
	TicketTypeStore() tickettype.Store
	SectionStore() section.Store
	OptionStore() option.Store

	// Migrate sets up the schema (no-op for in-memory).
	Migrate(ctx context.Context) error

	// Ping checks connectivity.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
