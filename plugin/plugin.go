// Package plugin provides an extensible plugin system for Boxoffice.
// Plugins can hook into capacity and pricing lifecycle events to
// extend functionality.
package plugin

import (
	"context"

	"github.com/xraph/boxoffice/pricing"
	"github.com/xraph/boxoffice/types"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Provisioning hooks
// ──────────────────────────────────────────────────

// OnPerformanceProvisioned is called when a performance's inventory is created.
type OnPerformanceProvisioned interface {
	Plugin
	OnPerformanceProvisioned(ctx context.Context, performance interface{}) error
}

// OnSectionProvisioned is called when a section is created.
type OnSectionProvisioned interface {
	Plugin
	OnSectionProvisioned(ctx context.Context, section interface{}) error
}

// ──────────────────────────────────────────────────
// Capacity hooks
// ──────────────────────────────────────────────────

// OnSeatsReserved is called after a paired reserve commits.
type OnSeatsReserved interface {
	Plugin
	OnSeatsReserved(ctx context.Context, snapshot interface{}) error
}

// OnSeatsReleased is called after a paired release commits.
type OnSeatsReleased interface {
	Plugin
	OnSeatsReleased(ctx context.Context, snapshot interface{}) error
}

// OnSeatsSold is called after a paired sale commits.
type OnSeatsSold interface {
	Plugin
	OnSeatsSold(ctx context.Context, snapshot interface{}) error
}

// OnReservationRejected is called when a reserve loses to capacity.
type OnReservationRejected interface {
	Plugin
	OnReservationRejected(ctx context.Context, sectionName string, requested, available int) error
}

// OnSectionFull is called when a mutation leaves a section with no
// available capacity.
type OnSectionFull interface {
	Plugin
	OnSectionFull(ctx context.Context, section interface{}) error
}

// ──────────────────────────────────────────────────
// Pricing hooks
// ──────────────────────────────────────────────────

// OnQuoteComputed is called after a quote succeeds.
type OnQuoteComputed interface {
	Plugin
	OnQuoteComputed(ctx context.Context, breakdown interface{}) error
}

// OnQuoteFailed is called when a quote computation fails.
type OnQuoteFailed interface {
	Plugin
	OnQuoteFailed(ctx context.Context, err error) error
}

// ──────────────────────────────────────────────────
// Promo validators
// ──────────────────────────────────────────────────

// PromoValidator resolves a promo code against a real registry
// (expiry, usage caps, per-tenant rules). When one is registered the
// engine consults it instead of applying the policy's flat fallback
// rate; returning nil with no error means the code does not apply.
type PromoValidator interface {
	Plugin
	ValidatePromo(ctx context.Context, code string, amount types.Money) (*pricing.Discount, error)
}

// ──────────────────────────────────────────────────
// Tax calculators
// ──────────────────────────────────────────────────

// TaxCalculator overrides the policy tax table, e.g. for regional
// jurisdiction lookups. The returned taxes replace the policy's.
type TaxCalculator interface {
	Plugin
	CalculateTaxes(ctx context.Context, base types.Money) ([]pricing.Tax, error)
}
