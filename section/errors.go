package section

import (
	"errors"
	"fmt"

	"github.com/xraph/boxoffice/id"
)

// Sentinel errors for ledger mutations. User-facing failures are
// returned as typed values so callers can branch without string
// matching.
var (
	ErrInvalidQuantity        = errors.New("section: quantity must be positive")
	ErrInsufficientCapacity   = errors.New("section: insufficient capacity")
	ErrInvalidReleaseQuantity = errors.New("section: release exceeds reserved capacity")
	ErrInvalidSaleQuantity    = errors.New("section: sale exceeds reserved capacity")
)

// InvariantError reports a capacity triad that no longer sums to its
// total. This is a programming error in the caller or a corrupted
// ledger, never an expected booking-time failure; the operation that
// produced it is aborted with no partial repair attempted.
type InvariantError struct {
	Entity    string
	ID        id.ID
	Available int
	Reserved  int
	Sold      int
	Total     int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("section: %s %s ledger invariant violated: available=%d reserved=%d sold=%d total=%d",
		e.Entity, e.ID, e.Available, e.Reserved, e.Sold, e.Total)
}

// IsInvariantViolation reports whether err is a ledger invariant failure.
func IsInvariantViolation(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
