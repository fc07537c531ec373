package id_test

import (
	"strings"
	"testing"

	"github.com/xraph/boxoffice/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"VenueID", id.NewVenueID, "venue_"},
		{"PerformanceID", id.NewPerformanceID, "perf_"},
		{"SectionID", id.NewSectionID, "sect_"},
		{"TicketTypeID", id.NewTicketTypeID, "ttype_"},
		{"AllocationID", id.NewAllocationID, "alloc_"},
		{"OptionID", id.NewOptionID, "opt_"},
		{"QuoteID", id.NewQuoteID, "quote_"},
		{"LineItemID", id.NewLineItemID, "li_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixSection)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixSection {
		t.Errorf("expected prefix %q, got %q", id.PrefixSection, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"VenueID", id.NewVenueID, id.ParseVenueID},
		{"PerformanceID", id.NewPerformanceID, id.ParsePerformanceID},
		{"SectionID", id.NewSectionID, id.ParseSectionID},
		{"TicketTypeID", id.NewTicketTypeID, id.ParseTicketTypeID},
		{"AllocationID", id.NewAllocationID, id.ParseAllocationID},
		{"OptionID", id.NewOptionID, id.ParseOptionID},
		{"QuoteID", id.NewQuoteID, id.ParseQuoteID},
		{"LineItemID", id.NewLineItemID, id.ParseLineItemID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := tt.newFn()
			parsed, err := tt.parseFn(orig.String())
			if err != nil {
				t.Fatalf("parse %q: %v", orig.String(), err)
			}
			if parsed.String() != orig.String() {
				t.Errorf("round trip: got %q, want %q", parsed.String(), orig.String())
			}
		})
	}
}

func TestParseRejectsWrongPrefix(t *testing.T) {
	venueID := id.NewVenueID()
	if _, err := id.ParseSectionID(venueID.String()); err == nil {
		t.Error("expected error parsing venue ID as section ID")
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	if _, err := id.Parse(""); err == nil {
		t.Error("expected error parsing empty string")
	}
}

func TestNilID(t *testing.T) {
	var nilID id.ID
	if !nilID.IsNil() {
		t.Error("zero value should be nil")
	}
	if nilID.String() != "" {
		t.Errorf("nil ID should stringify to empty, got %q", nilID.String())
	}
	if nilID.Prefix() != "" {
		t.Errorf("nil ID should have empty prefix, got %q", nilID.Prefix())
	}
}

func TestTextMarshalRoundTrip(t *testing.T) {
	orig := id.NewQuoteID()
	data, err := orig.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var parsed id.ID
	if err := parsed.UnmarshalText(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.String() != orig.String() {
		t.Errorf("round trip: got %q, want %q", parsed.String(), orig.String())
	}
}

func TestScanValue(t *testing.T) {
	orig := id.NewAllocationID()

	v, err := orig.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var scanned id.ID
	if err := scanned.Scan(v); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if scanned.String() != orig.String() {
		t.Errorf("scan round trip: got %q, want %q", scanned.String(), orig.String())
	}

	var fromNil id.ID
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !fromNil.IsNil() {
		t.Error("scanning nil should produce nil ID")
	}
}
