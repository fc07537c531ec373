package boxoffice

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound      = errors.New("boxoffice: not found")
	ErrAlreadyExists = errors.New("boxoffice: already exists")
	ErrInvalidInput  = errors.New("boxoffice: invalid input")
	ErrInactive      = errors.New("boxoffice: entity is inactive")

	// Venue errors
	ErrVenueNotFound       = errors.New("boxoffice: venue not found")
	ErrPerformanceNotFound = errors.New("boxoffice: performance not found")
	ErrCapacityMismatch    = errors.New("boxoffice: capacity does not match venue capacity")

	// Section errors
	ErrSectionNotFound    = errors.New("boxoffice: section not found")
	ErrSectionExists      = errors.New("boxoffice: section already exists for performance")
	ErrAllocationNotFound = errors.New("boxoffice: ticket type allocation not found")
	ErrAllocationExists   = errors.New("boxoffice: ticket type allocation already exists")

	// Ticket type errors
	ErrTicketTypeNotFound = errors.New("boxoffice: ticket type not found")
	ErrTicketTypeExists   = errors.New("boxoffice: ticket type code already exists")

	// Option errors
	ErrOptionNotFound = errors.New("boxoffice: option not found")
	ErrOptionInactive = errors.New("boxoffice: option is inactive")

	// Capacity errors
	ErrInvalidQuantity       = errors.New("boxoffice: quantity must be positive")
	ErrInsufficientCapacity  = errors.New("boxoffice: insufficient capacity")
	ErrInvalidRelease        = errors.New("boxoffice: release exceeds reserved count")
	ErrInvalidSale           = errors.New("boxoffice: sale exceeds reserved count")
	ErrCapacityExceeded      = errors.New("boxoffice: allocation exceeds section capacity")
	ErrLockTimeout           = errors.New("boxoffice: timed out waiting for capacity lock")

	// Pricing errors
	ErrCurrencyMismatch = errors.New("boxoffice: currency mismatch")
	ErrInvalidGroupSize = errors.New("boxoffice: group size out of range")
	ErrPromoRejected    = errors.New("boxoffice: promo code rejected")

	// Store errors
	ErrStoreNotReady     = errors.New("boxoffice: store not ready")
	ErrStoreClosed       = errors.New("boxoffice: store is closed")
	ErrTransactionFailed = errors.New("boxoffice: transaction failed")
	ErrMigrationFailed   = errors.New("boxoffice: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("boxoffice: validation failed for %s: %s", e.Field, e.Message)
}

// PriceCalculationError wraps a failure during quote computation with
// the stage that produced it.
type PriceCalculationError struct {
	Stage string
	Err   error
}

func (e *PriceCalculationError) Error() string {
	return fmt.Sprintf("boxoffice: price calculation failed at %s: %v", e.Stage, e.Err)
}

func (e *PriceCalculationError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrVenueNotFound) ||
		errors.Is(err, ErrPerformanceNotFound) ||
		errors.Is(err, ErrSectionNotFound) ||
		errors.Is(err, ErrTicketTypeNotFound) ||
		errors.Is(err, ErrAllocationNotFound) ||
		errors.Is(err, ErrOptionNotFound)
}

// IsCapacityError returns true if the error is related to capacity limits.
func IsCapacityError(err error) bool {
	return errors.Is(err, ErrInsufficientCapacity) ||
		errors.Is(err, ErrInvalidRelease) ||
		errors.Is(err, ErrInvalidSale) ||
		errors.Is(err, ErrCapacityExceeded)
}

// IsRetryable returns true if the error is temporary and the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockTimeout) ||
		errors.Is(err, ErrStoreNotReady) ||
		errors.Is(err, ErrTransactionFailed)
}
