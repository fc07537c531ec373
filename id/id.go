// Package id defines TypeID-based identity types for all Boxoffice entities.
//
// Every entity in Boxoffice uses a single ID struct with a prefix that
// identifies the entity type. IDs are K-sortable (UUIDv7-based), globally
// unique, and URL-safe in the format "prefix_suffix".
package id

import (
	"database/sql/driver"
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in a TypeID.
type Prefix string

// Prefix constants for all Boxoffice entity types.
const (
	PrefixVenue       Prefix = "venue" // Venue
	PrefixPerformance Prefix = "perf"  // Performance (an event occurrence at a venue)
	PrefixSection     Prefix = "sect"  // Inventory section within a performance
	PrefixTicketType  Prefix = "ttype" // Admission category (Adult, Student, ...)
	PrefixAllocation  Prefix = "alloc" // Per-section, per-ticket-type capacity allocation
	PrefixOption      Prefix = "opt"   // Bookable add-on option
	PrefixQuote       Prefix = "quote" // Computed price breakdown
	PrefixLineItem    Prefix = "li"    // Breakdown line item
)

// ID is the primary identifier type for all Boxoffice entities.
// It wraps a TypeID providing a prefix-qualified, globally unique,
// sortable, URL-safe identifier in the format "prefix_suffix".
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}

	return ID{inner: tid, valid: true}
}

// Parse parses a TypeID string (e.g., "sect_01h2xcejqtf2nbrexx3vqjhp41")
// into an ID. Returns an error if the string is not valid.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{inner: tid, valid: true}, nil
}

// ParseWithPrefix parses a TypeID string and validates that its prefix
// matches the expected value.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}

	if parsed.Prefix() != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}

	return parsed, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// MustParseWithPrefix is like ParseWithPrefix but panics on error.
func MustParseWithPrefix(s string, expected Prefix) ID {
	parsed, err := ParseWithPrefix(s, expected)
	if err != nil {
		panic(fmt.Sprintf("id: must parse with prefix %q: %v", expected, err))
	}

	return parsed
}

// ──────────────────────────────────────────────────
// Type aliases per entity
// ──────────────────────────────────────────────────

// VenueID is a type-safe identifier for venues (prefix: "venue").
type VenueID = ID

// PerformanceID is a type-safe identifier for performances (prefix: "perf").
type PerformanceID = ID

// SectionID is a type-safe identifier for sections (prefix: "sect").
type SectionID = ID

// TicketTypeID is a type-safe identifier for ticket types (prefix: "ttype").
type TicketTypeID = ID

// AllocationID is a type-safe identifier for section ticket-type
// allocations (prefix: "alloc").
type AllocationID = ID

// OptionID is a type-safe identifier for add-on options (prefix: "opt").
type OptionID = ID

// QuoteID is a type-safe identifier for price quotes (prefix: "quote").
type QuoteID = ID

// LineItemID is a type-safe identifier for breakdown line items (prefix: "li").
type LineItemID = ID

// AnyID is a type alias that accepts any valid prefix.
type AnyID = ID

// ──────────────────────────────────────────────────
// Convenience constructors
// ──────────────────────────────────────────────────

// NewVenueID generates a new unique venue ID.
func NewVenueID() ID { return New(PrefixVenue) }

// NewPerformanceID generates a new unique performance ID.
func NewPerformanceID() ID { return New(PrefixPerformance) }

// NewSectionID generates a new unique section ID.
func NewSectionID() ID { return New(PrefixSection) }

// NewTicketTypeID generates a new unique ticket type ID.
func NewTicketTypeID() ID { return New(PrefixTicketType) }

// NewAllocationID generates a new unique allocation ID.
func NewAllocationID() ID { return New(PrefixAllocation) }

// NewOptionID generates a new unique option ID.
func NewOptionID() ID { return New(PrefixOption) }

// NewQuoteID generates a new unique quote ID.
func NewQuoteID() ID { return New(PrefixQuote) }

// NewLineItemID generates a new unique line item ID.
func NewLineItemID() ID { return New(PrefixLineItem) }

// ──────────────────────────────────────────────────
// Convenience parsers
// ──────────────────────────────────────────────────

// ParseVenueID parses a string and validates the "venue" prefix.
func ParseVenueID(s string) (ID, error) { return ParseWithPrefix(s, PrefixVenue) }

// ParsePerformanceID parses a string and validates the "perf" prefix.
func ParsePerformanceID(s string) (ID, error) { return ParseWithPrefix(s, PrefixPerformance) }

// ParseSectionID parses a string and validates the "sect" prefix.
func ParseSectionID(s string) (ID, error) { return ParseWithPrefix(s, PrefixSection) }

// ParseTicketTypeID parses a string and validates the "ttype" prefix.
func ParseTicketTypeID(s string) (ID, error) { return ParseWithPrefix(s, PrefixTicketType) }

// ParseAllocationID parses a string and validates the "alloc" prefix.
func ParseAllocationID(s string) (ID, error) { return ParseWithPrefix(s, PrefixAllocation) }

// ParseOptionID parses a string and validates the "opt" prefix.
func ParseOptionID(s string) (ID, error) { return ParseWithPrefix(s, PrefixOption) }

// ParseQuoteID parses a string and validates the "quote" prefix.
func ParseQuoteID(s string) (ID, error) { return ParseWithPrefix(s, PrefixQuote) }

// ParseLineItemID parses a string and validates the "li" prefix.
func ParseLineItemID(s string) (ID, error) { return ParseWithPrefix(s, PrefixLineItem) }

// ParseAny parses a string into an ID without type checking the prefix.
func ParseAny(s string) (ID, error) { return Parse(s) }

// ──────────────────────────────────────────────────
// ID methods
// ──────────────────────────────────────────────────

// String returns the full TypeID string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}

	return i.inner.String()
}

// Prefix returns the prefix component of this ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}

	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}

	return []byte(i.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}

// Value implements driver.Valuer for database storage.
// Returns nil for the Nil ID so that optional foreign key columns store NULL.
func (i ID) Value() (driver.Value, error) {
	if !i.valid {
		return nil, nil //nolint:nilnil // nil is the canonical NULL for driver.Valuer
	}

	return i.inner.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (i *ID) Scan(src any) error {
	if src == nil {
		*i = Nil

		return nil
	}

	switch v := src.(type) {
	case string:
		if v == "" {
			*i = Nil

			return nil
		}

		return i.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 0 {
			*i = Nil

			return nil
		}

		return i.UnmarshalText(v)
	default:
		return fmt.Errorf("id: cannot scan %T into ID", src)
	}
}
