package option

import (
	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/types"
)

// Mode selects how an option is priced.
type Mode string

const (
	// ModeFlat charges Price per selected unit.
	ModeFlat Mode = "flat"
	// ModePercentage charges PercentBps of the pre-option subtotal per
	// selected unit.
	ModePercentage Mode = "percentage"
)

// Option is a bookable add-on attached to a performance (parking,
// program, backstage tour). Inactive options are skipped silently
// during quoting rather than failing the whole quote.
type Option struct {
	types.Entity
	ID            id.OptionID      `json:"id"`
	PerformanceID id.PerformanceID `json:"performance_id"`
	TenantID      string           `json:"tenant_id"`
	Name          string           `json:"name"`
	Mode          Mode             `json:"mode"`
	Price         types.Money      `json:"price,omitempty"`
	PercentBps    int64            `json:"percent_bps,omitempty"`
	MaxQuantity   int              `json:"max_quantity"`
	Active        bool             `json:"active"`
}

// Amount returns the option charge for one unit against the given
// pre-option subtotal.
func (o *Option) Amount(subtotal types.Money) types.Money {
	if o.Mode == ModePercentage {
		return subtotal.ApplyBps(o.PercentBps)
	}
	return o.Price
}

// ClampQuantity bounds a requested quantity to [1, MaxQuantity].
// MaxQuantity <= 0 means unbounded.
func (o *Option) ClampQuantity(n int) int {
	if n < 1 {
		n = 1
	}
	if o.MaxQuantity > 0 && n > o.MaxQuantity {
		return o.MaxQuantity
	}
	return n
}
