package tickettype

import (
	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/types"
)

// TicketType is an admission category (Adult, Student, VIP, ...) that
// sections allocate capacity against. It carries no price of its own;
// pricing comes from the allocation's modifier over the section base.
type TicketType struct {
	types.Entity
	ID       id.TicketTypeID   `json:"id"`
	TenantID string            `json:"tenant_id"`
	Code     string            `json:"code"`
	Name     string            `json:"name"`
	Active   bool              `json:"active"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
