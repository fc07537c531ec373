package postgres

import (
	"time"

	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/option"
	"github.com/xraph/boxoffice/section"
	"github.com/xraph/boxoffice/tickettype"
	"github.com/xraph/boxoffice/types"
	"github.com/xraph/boxoffice/venue"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*venue.Venue, error) {
	var (
		v       venue.Venue
		rawID   string
		rawMeta []byte
	)
	err := row.Scan(&rawID, &v.TenantID, &v.Name, &v.City, &v.MaxCapacity, &v.Active, &rawMeta, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if v.ID, err = id.ParseVenueID(rawID); err != nil {
		return nil, err
	}
	if v.Metadata, err = unmarshalMetadata(rawMeta); err != nil {
		return nil, err
	}
	return &v, nil
}

func scanPerformance(row rowScanner) (*venue.Performance, error) {
	var (
		p        venue.Performance
		rawID    string
		rawVenue string
		rawMeta  []byte
		startsAt time.Time
	)
	err := row.Scan(&rawID, &rawVenue, &p.TenantID, &p.Name, &startsAt, &p.Capacity, &p.Currency,
		&p.Active, &rawMeta, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.ID, err = id.ParsePerformanceID(rawID); err != nil {
		return nil, err
	}
	if p.VenueID, err = id.ParseVenueID(rawVenue); err != nil {
		return nil, err
	}
	p.StartsAt = startsAt.UTC()
	if p.Metadata, err = unmarshalMetadata(rawMeta); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanTicketType(row rowScanner) (*tickettype.TicketType, error) {
	var (
		t       tickettype.TicketType
		rawID   string
		rawMeta []byte
	)
	err := row.Scan(&rawID, &t.TenantID, &t.Code, &t.Name, &t.Active, &rawMeta, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if t.ID, err = id.ParseTicketTypeID(rawID); err != nil {
		return nil, err
	}
	if t.Metadata, err = unmarshalMetadata(rawMeta); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanSection(row rowScanner) (*section.Section, error) {
	var (
		s         section.Section
		rawID     string
		rawPerf   string
		baseCents int64
		rawMeta   []byte
	)
	err := row.Scan(&rawID, &rawPerf, &s.Name, &s.TotalCapacity, &s.AvailableCapacity,
		&s.ReservedCapacity, &s.SoldCapacity, &baseCents, &s.Currency,
		&s.WheelchairAccessible, &s.Premium, &s.Active, &rawMeta, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if s.ID, err = id.ParseSectionID(rawID); err != nil {
		return nil, err
	}
	if s.PerformanceID, err = id.ParsePerformanceID(rawPerf); err != nil {
		return nil, err
	}
	s.BasePrice = types.Money{Amount: baseCents, Currency: s.Currency}
	if s.Metadata, err = unmarshalMetadata(rawMeta); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanAllocation(row rowScanner) (*section.SectionTicketType, error) {
	var (
		a          section.SectionTicketType
		rawID      string
		rawSection string
		rawTT      string
	)
	err := row.Scan(&rawID, &rawSection, &rawTT, &a.AllocatedCapacity, &a.AvailableCapacity,
		&a.ReservedCapacity, &a.SoldCapacity, &a.ModifierBps, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if a.ID, err = id.ParseAllocationID(rawID); err != nil {
		return nil, err
	}
	if a.SectionID, err = id.ParseSectionID(rawSection); err != nil {
		return nil, err
	}
	if a.TicketTypeID, err = id.ParseTicketTypeID(rawTT); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanOption(row rowScanner) (*option.Option, error) {
	var (
		o          option.Option
		rawID      string
		rawPerf    string
		priceCents int64
		currency   string
	)
	err := row.Scan(&rawID, &rawPerf, &o.TenantID, &o.Name, &o.Mode, &priceCents, &currency,
		&o.PercentBps, &o.MaxQuantity, &o.Active, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if o.ID, err = id.ParseOptionID(rawID); err != nil {
		return nil, err
	}
	if o.PerformanceID, err = id.ParsePerformanceID(rawPerf); err != nil {
		return nil, err
	}
	o.Price = types.Money{Amount: priceCents, Currency: currency}
	return &o, nil
}
