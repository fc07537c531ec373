package section

import "errors"

// Op identifies which ledger mutation a Transaction performs.
type Op string

const (
	OpReserve Op = "reserve"
	OpRelease Op = "release"
	OpSell    Op = "sell"
)

// ErrIncompleteTransaction is returned when a Transaction is applied
// without both participants.
var ErrIncompleteTransaction = errors.New("section: transaction requires both section and allocation")

// Transaction is a paired capacity delta against an allocation and its
// owning section. The two ledgers must move together; Apply performs
// the allocation step first, then the section step, and undoes the
// allocation step with a compensating rollback if the section step
// fails, so callers never observe a half-applied pair.
type Transaction struct {
	Section    *Section
	Allocation *SectionTicketType
	Op         Op
	Quantity   int
}

// Apply mutates both ledgers or neither.
func (t Transaction) Apply() error {
	if t.Section == nil || t.Allocation == nil {
		return ErrIncompleteTransaction
	}

	// Snapshot the allocation triad for compensation.
	avail := t.Allocation.AvailableCapacity
	res := t.Allocation.ReservedCapacity
	sold := t.Allocation.SoldCapacity

	if err := t.step(t.Allocation); err != nil {
		return err
	}
	if err := t.step(t.Section); err != nil {
		t.Allocation.AvailableCapacity = avail
		t.Allocation.ReservedCapacity = res
		t.Allocation.SoldCapacity = sold
		return err
	}
	return nil
}

// mutator is the ledger contract shared by Section and SectionTicketType.
type mutator interface {
	Reserve(n int) error
	Release(n int) error
	Sell(n int) error
}

func (t Transaction) step(m mutator) error {
	switch t.Op {
	case OpReserve:
		return m.Reserve(t.Quantity)
	case OpRelease:
		return m.Release(t.Quantity)
	case OpSell:
		return m.Sell(t.Quantity)
	default:
		return ErrInvalidQuantity
	}
}
