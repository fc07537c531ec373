package audithook

// Action constants for audit events.
const (
	// Provisioning actions
	ActionPerformanceProvisioned = "performance.provisioned"
	ActionSectionProvisioned     = "section.provisioned"

	// Capacity actions
	ActionSeatsReserved       = "seats.reserved"
	ActionSeatsReleased       = "seats.released"
	ActionSeatsSold           = "seats.sold"
	ActionReservationRejected = "reservation.rejected"
	ActionSectionFull         = "section.full"

	// Pricing actions
	ActionQuoteComputed = "quote.computed"
	ActionQuoteFailed   = "quote.failed"
)

// Resource constants for audit events.
const (
	ResourcePerformance = "performance"
	ResourceSection     = "section"
	ResourceQuote       = "quote"
)

// Category constants for audit events.
const (
	CategoryInventory = "inventory"
	CategoryCapacity  = "capacity"
	CategoryPricing   = "pricing"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
