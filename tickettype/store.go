package tickettype

import (
	"context"

	"github.com/xraph/boxoffice/id"
)

// Store is the persistence contract for ticket types.
type Store interface {
	Create(ctx context.Context, t *TicketType) error
	Get(ctx context.Context, ticketTypeID id.TicketTypeID) (*TicketType, error)
	GetByCode(ctx context.Context, tenantID, code string) (*TicketType, error)
	List(ctx context.Context, tenantID string) ([]*TicketType, error)
	Update(ctx context.Context, t *TicketType) error
}
