package section

import (
	"context"

	"github.com/xraph/boxoffice/id"
)

// Store is the persistence contract for sections and their
// ticket-type allocations. GetByName serves the string-keyed public
// contract: the section primary key stays authoritative and the
// (performance, name) pair is an indexed alias.
type Store interface {
	Create(ctx context.Context, s *Section) error
	Get(ctx context.Context, sectionID id.SectionID) (*Section, error)
	GetByName(ctx context.Context, perfID id.PerformanceID, name string) (*Section, error)
	List(ctx context.Context, perfID id.PerformanceID) ([]*Section, error)
	Update(ctx context.Context, s *Section) error

	CreateAllocation(ctx context.Context, a *SectionTicketType) error
	GetAllocation(ctx context.Context, sectionID id.SectionID, ticketTypeID id.TicketTypeID) (*SectionTicketType, error)
	ListAllocations(ctx context.Context, sectionID id.SectionID) ([]*SectionTicketType, error)

	// UpdatePair persists a section and one of its allocations as a
	// single atomic write: both rows commit or neither does.
	UpdatePair(ctx context.Context, s *Section, a *SectionTicketType) error
}
