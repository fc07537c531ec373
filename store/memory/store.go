// Package memory provides an in-memory Store for tests and
// single-process deployments.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/boxoffice"
	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/option"
	"github.com/xraph/boxoffice/section"
	"github.com/xraph/boxoffice/tickettype"
	"github.com/xraph/boxoffice/venue"
)

// Store is an in-memory implementation of store.Store. Reads return
// copies so callers can mutate freely; nothing lands until the
// corresponding update call, and UpdatePair commits both rows under
// one lock.
type Store struct {
	mu sync.RWMutex

	venues       map[string]*venue.Venue
	performances map[string]*venue.Performance
	ticketTypes  map[string]*tickettype.TicketType
	sections     map[string]*section.Section
	allocations  map[string]*section.SectionTicketType
	options      map[string]*option.Option

	// (performanceID, name) -> sectionID
	sectionsByName map[string]string

	closed bool
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		venues:         make(map[string]*venue.Venue),
		performances:   make(map[string]*venue.Performance),
		ticketTypes:    make(map[string]*tickettype.TicketType),
		sections:       make(map[string]*section.Section),
		allocations:    make(map[string]*section.SectionTicketType),
		options:        make(map[string]*option.Option),
		sectionsByName: make(map[string]string),
	}
}

// VenueStore returns the venue persistence contract.
func (s *Store) VenueStore() venue.Store { return s }

// TicketTypeStore returns the ticket-type persistence contract.
func (s *Store) TicketTypeStore() tickettype.Store { return ticketTypeStore{s} }

// SectionStore returns the section persistence contract.
func (s *Store) SectionStore() section.Store { return sectionStore{s} }

// OptionStore returns the option persistence contract.
func (s *Store) OptionStore() option.Store { return optionStore{s} }

// Migrate is a no-op for the in-memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping reports whether the store is open.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return boxoffice.ErrStoreClosed
	}
	return nil
}

// Close marks the store closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func sectionNameKey(perfID id.PerformanceID, name string) string {
	return perfID.String() + "/" + name
}

func allocationKey(sectionID id.SectionID, ticketTypeID id.TicketTypeID) string {
	return sectionID.String() + "/" + ticketTypeID.String()
}

func paginate[T any](in []*T, limit, offset int) []*T {
	start := offset
	if start > len(in) {
		start = len(in)
	}
	end := start + limit
	if limit == 0 || end > len(in) {
		end = len(in)
	}
	return in[start:end]
}

// Venue store implementation

func (s *Store) CreateVenue(_ context.Context, v *venue.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.venues[v.ID.String()]; exists {
		return boxoffice.ErrAlreadyExists
	}
	cp := *v
	s.venues[v.ID.String()] = &cp
	return nil
}

func (s *Store) GetVenue(_ context.Context, venueID id.VenueID) (*venue.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.venues[venueID.String()]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, boxoffice.ErrVenueNotFound
}

func (s *Store) ListVenues(_ context.Context, tenantID string, opts venue.ListOpts) ([]*venue.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*venue.Venue, 0)
	for _, v := range s.venues {
		if tenantID != "" && v.TenantID != tenantID {
			continue
		}
		if opts.ActiveOnly && !v.Active {
			continue
		}
		cp := *v
		result = append(result, &cp)
	}
	return paginate(result, opts.Limit, opts.Offset), nil
}

func (s *Store) CreatePerformance(_ context.Context, p *venue.Performance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.performances[p.ID.String()]; exists {
		return boxoffice.ErrAlreadyExists
	}
	cp := *p
	s.performances[p.ID.String()] = &cp
	return nil
}

func (s *Store) GetPerformance(_ context.Context, perfID id.PerformanceID) (*venue.Performance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.performances[perfID.String()]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, boxoffice.ErrPerformanceNotFound
}

func (s *Store) ListPerformances(_ context.Context, venueID id.VenueID, opts venue.ListOpts) ([]*venue.Performance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*venue.Performance, 0)
	for _, p := range s.performances {
		if p.VenueID.String() != venueID.String() {
			continue
		}
		if opts.ActiveOnly && !p.Active {
			continue
		}
		cp := *p
		result = append(result, &cp)
	}
	return paginate(result, opts.Limit, opts.Offset), nil
}
