package mongo

import (
	"time"

	"github.com/xraph/boxoffice/id"
	optionpkg "github.com/xraph/boxoffice/option"
	"github.com/xraph/boxoffice/section"
	"github.com/xraph/boxoffice/tickettype"
	"github.com/xraph/boxoffice/types"
	"github.com/xraph/boxoffice/venue"
)

type venueDoc struct {
	ID          string            `bson:"_id"`
	TenantID    string            `bson:"tenant_id"`
	Name        string            `bson:"name"`
	City        string            `bson:"city"`
	MaxCapacity int               `bson:"max_capacity"`
	Active      bool              `bson:"active"`
	Metadata    map[string]string `bson:"metadata,omitempty"`
	CreatedAt   time.Time         `bson:"created_at"`
	UpdatedAt   time.Time         `bson:"updated_at"`
}

func toVenueDoc(v *venue.Venue) *venueDoc {
	return &venueDoc{
		ID:          v.ID.String(),
		TenantID:    v.TenantID,
		Name:        v.Name,
		City:        v.City,
		MaxCapacity: v.MaxCapacity,
		Active:      v.Active,
		Metadata:    v.Metadata,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func fromVenueDoc(d *venueDoc) (*venue.Venue, error) {
	venueID, err := id.ParseVenueID(d.ID)
	if err != nil {
		return nil, err
	}
	return &venue.Venue{
		Entity:      types.Entity{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		ID:          venueID,
		TenantID:    d.TenantID,
		Name:        d.Name,
		City:        d.City,
		MaxCapacity: d.MaxCapacity,
		Active:      d.Active,
		Metadata:    d.Metadata,
	}, nil
}

type performanceDoc struct {
	ID        string            `bson:"_id"`
	VenueID   string            `bson:"venue_id"`
	TenantID  string            `bson:"tenant_id"`
	Name      string            `bson:"name"`
	StartsAt  time.Time         `bson:"starts_at"`
	Capacity  int               `bson:"capacity"`
	Currency  string            `bson:"currency"`
	Active    bool              `bson:"active"`
	Metadata  map[string]string `bson:"metadata,omitempty"`
	CreatedAt time.Time         `bson:"created_at"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

func toPerformanceDoc(p *venue.Performance) *performanceDoc {
	return &performanceDoc{
		ID:        p.ID.String(),
		VenueID:   p.VenueID.String(),
		TenantID:  p.TenantID,
		Name:      p.Name,
		StartsAt:  p.StartsAt,
		Capacity:  p.Capacity,
		Currency:  p.Currency,
		Active:    p.Active,
		Metadata:  p.Metadata,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromPerformanceDoc(d *performanceDoc) (*venue.Performance, error) {
	perfID, err := id.ParsePerformanceID(d.ID)
	if err != nil {
		return nil, err
	}
	venueID, err := id.ParseVenueID(d.VenueID)
	if err != nil {
		return nil, err
	}
	return &venue.Performance{
		Entity:   types.Entity{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		ID:       perfID,
		VenueID:  venueID,
		TenantID: d.TenantID,
		Name:     d.Name,
		StartsAt: d.StartsAt.UTC(),
		Capacity: d.Capacity,
		Currency: d.Currency,
		Active:   d.Active,
		Metadata: d.Metadata,
	}, nil
}

type ticketTypeDoc struct {
	ID        string            `bson:"_id"`
	TenantID  string            `bson:"tenant_id"`
	Code      string            `bson:"code"`
	Name      string            `bson:"name"`
	Active    bool              `bson:"active"`
	Metadata  map[string]string `bson:"metadata,omitempty"`
	CreatedAt time.Time         `bson:"created_at"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

func toTicketTypeDoc(t *tickettype.TicketType) *ticketTypeDoc {
	return &ticketTypeDoc{
		ID:        t.ID.String(),
		TenantID:  t.TenantID,
		Code:      t.Code,
		Name:      t.Name,
		Active:    t.Active,
		Metadata:  t.Metadata,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func fromTicketTypeDoc(d *ticketTypeDoc) (*tickettype.TicketType, error) {
	ttID, err := id.ParseTicketTypeID(d.ID)
	if err != nil {
		return nil, err
	}
	return &tickettype.TicketType{
		Entity:   types.Entity{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		ID:       ttID,
		TenantID: d.TenantID,
		Code:     d.Code,
		Name:     d.Name,
		Active:   d.Active,
		Metadata: d.Metadata,
	}, nil
}

type sectionDoc struct {
	ID                   string            `bson:"_id"`
	PerformanceID        string            `bson:"performance_id"`
	Name                 string            `bson:"name"`
	TotalCapacity        int               `bson:"total_capacity"`
	AvailableCapacity    int               `bson:"available_capacity"`
	ReservedCapacity     int               `bson:"reserved_capacity"`
	SoldCapacity         int               `bson:"sold_capacity"`
	BasePriceCents       int64             `bson:"base_price_cents"`
	Currency             string            `bson:"currency"`
	WheelchairAccessible bool              `bson:"wheelchair_accessible"`
	Premium              bool              `bson:"premium"`
	Active               bool              `bson:"active"`
	Metadata             map[string]string `bson:"metadata,omitempty"`
	CreatedAt            time.Time         `bson:"created_at"`
	UpdatedAt            time.Time         `bson:"updated_at"`
}

func toSectionDoc(s *section.Section) *sectionDoc {
	return &sectionDoc{
		ID:                   s.ID.String(),
		PerformanceID:        s.PerformanceID.String(),
		Name:                 s.Name,
		TotalCapacity:        s.TotalCapacity,
		AvailableCapacity:    s.AvailableCapacity,
		ReservedCapacity:     s.ReservedCapacity,
		SoldCapacity:         s.SoldCapacity,
		BasePriceCents:       s.BasePrice.Amount,
		Currency:             s.Currency,
		WheelchairAccessible: s.WheelchairAccessible,
		Premium:              s.Premium,
		Active:               s.Active,
		Metadata:             s.Metadata,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func fromSectionDoc(d *sectionDoc) (*section.Section, error) {
	sectionID, err := id.ParseSectionID(d.ID)
	if err != nil {
		return nil, err
	}
	perfID, err := id.ParsePerformanceID(d.PerformanceID)
	if err != nil {
		return nil, err
	}
	return &section.Section{
		Entity:               types.Entity{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		ID:                   sectionID,
		PerformanceID:        perfID,
		Name:                 d.Name,
		TotalCapacity:        d.TotalCapacity,
		AvailableCapacity:    d.AvailableCapacity,
		ReservedCapacity:     d.ReservedCapacity,
		SoldCapacity:         d.SoldCapacity,
		BasePrice:            types.Money{Amount: d.BasePriceCents, Currency: d.Currency},
		Currency:             d.Currency,
		WheelchairAccessible: d.WheelchairAccessible,
		Premium:              d.Premium,
		Active:               d.Active,
		Metadata:             d.Metadata,
	}, nil
}

type allocationDoc struct {
	ID                string    `bson:"_id"`
	SectionID         string    `bson:"section_id"`
	TicketTypeID      string    `bson:"ticket_type_id"`
	AllocatedCapacity int       `bson:"allocated_capacity"`
	AvailableCapacity int       `bson:"available_capacity"`
	ReservedCapacity  int       `bson:"reserved_capacity"`
	SoldCapacity      int       `bson:"sold_capacity"`
	ModifierBps       int64     `bson:"modifier_bps"`
	CreatedAt         time.Time `bson:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at"`
}

func toAllocationDoc(a *section.SectionTicketType) *allocationDoc {
	return &allocationDoc{
		ID:                a.ID.String(),
		SectionID:         a.SectionID.String(),
		TicketTypeID:      a.TicketTypeID.String(),
		AllocatedCapacity: a.AllocatedCapacity,
		AvailableCapacity: a.AvailableCapacity,
		ReservedCapacity:  a.ReservedCapacity,
		SoldCapacity:      a.SoldCapacity,
		ModifierBps:       a.ModifierBps,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func fromAllocationDoc(d *allocationDoc) (*section.SectionTicketType, error) {
	allocID, err := id.ParseAllocationID(d.ID)
	if err != nil {
		return nil, err
	}
	sectionID, err := id.ParseSectionID(d.SectionID)
	if err != nil {
		return nil, err
	}
	ttID, err := id.ParseTicketTypeID(d.TicketTypeID)
	if err != nil {
		return nil, err
	}
	return &section.SectionTicketType{
		Entity:            types.Entity{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		ID:                allocID,
		SectionID:         sectionID,
		TicketTypeID:      ttID,
		AllocatedCapacity: d.AllocatedCapacity,
		AvailableCapacity: d.AvailableCapacity,
		ReservedCapacity:  d.ReservedCapacity,
		SoldCapacity:      d.SoldCapacity,
		ModifierBps:       d.ModifierBps,
	}, nil
}

type optionDoc struct {
	ID            string    `bson:"_id"`
	PerformanceID string    `bson:"performance_id"`
	TenantID      string    `bson:"tenant_id"`
	Name          string    `bson:"name"`
	Mode          string    `bson:"mode"`
	PriceCents    int64     `bson:"price_cents"`
	Currency      string    `bson:"currency"`
	PercentBps    int64     `bson:"percent_bps"`
	MaxQuantity   int       `bson:"max_quantity"`
	Active        bool      `bson:"active"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func toOptionDoc(o *optionpkg.Option) *optionDoc {
	return &optionDoc{
		ID:            o.ID.String(),
		PerformanceID: o.PerformanceID.String(),
		TenantID:      o.TenantID,
		Name:          o.Name,
		Mode:          string(o.Mode),
		PriceCents:    o.Price.Amount,
		Currency:      o.Price.Currency,
		PercentBps:    o.PercentBps,
		MaxQuantity:   o.MaxQuantity,
		Active:        o.Active,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func fromOptionDoc(d *optionDoc) (*optionpkg.Option, error) {
	optionID, err := id.ParseOptionID(d.ID)
	if err != nil {
		return nil, err
	}
	perfID, err := id.ParsePerformanceID(d.PerformanceID)
	if err != nil {
		return nil, err
	}
	return &optionpkg.Option{
		Entity:        types.Entity{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		ID:            optionID,
		PerformanceID: perfID,
		TenantID:      d.TenantID,
		Name:          d.Name,
		Mode:          optionpkg.Mode(d.Mode),
		Price:         types.Money{Amount: d.PriceCents, Currency: d.Currency},
		PercentBps:    d.PercentBps,
		MaxQuantity:   d.MaxQuantity,
		Active:        d.Active,
	}, nil
}
