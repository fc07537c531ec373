package memory

import (
	"context"

	"github.com/xraph/boxoffice"
	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/option"
	"github.com/xraph/boxoffice/tickettype"
)

// ticketTypeStore adapts Store to the ticket-type persistence contract.
type ticketTypeStore struct{ *Store }

func (s ticketTypeStore) Create(_ context.Context, t *tickettype.TicketType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ticketTypes[t.ID.String()]; exists {
		return boxoffice.ErrAlreadyExists
	}
	for _, existing := range s.ticketTypes {
		if existing.TenantID == t.TenantID && existing.Code == t.Code {
			return boxoffice.ErrTicketTypeExists
		}
	}
	cp := *t
	s.ticketTypes[t.ID.String()] = &cp
	return nil
}

func (s ticketTypeStore) Get(_ context.Context, ticketTypeID id.TicketTypeID) (*tickettype.TicketType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.ticketTypes[ticketTypeID.String()]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, boxoffice.ErrTicketTypeNotFound
}

func (s ticketTypeStore) GetByCode(_ context.Context, tenantID, code string) (*tickettype.TicketType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.ticketTypes {
		if t.TenantID == tenantID && t.Code == code {
			cp := *t
			return &cp, nil
		}
	}
	return nil, boxoffice.ErrTicketTypeNotFound
}

func (s ticketTypeStore) List(_ context.Context, tenantID string) ([]*tickettype.TicketType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*tickettype.TicketType, 0)
	for _, t := range s.ticketTypes {
		if tenantID == "" || t.TenantID == tenantID {
			cp := *t
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (s ticketTypeStore) Update(_ context.Context, t *tickettype.TicketType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ticketTypes[t.ID.String()]; !exists {
		return boxoffice.ErrTicketTypeNotFound
	}
	cp := *t
	s.ticketTypes[t.ID.String()] = &cp
	return nil
}

// optionStore adapts Store to the option persistence contract.
type optionStore struct{ *Store }

func (s optionStore) Create(_ context.Context, o *option.Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.options[o.ID.String()]; exists {
		return boxoffice.ErrAlreadyExists
	}
	cp := *o
	s.options[o.ID.String()] = &cp
	return nil
}

func (s optionStore) Get(_ context.Context, optionID id.OptionID) (*option.Option, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if o, ok := s.options[optionID.String()]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, boxoffice.ErrOptionNotFound
}

func (s optionStore) List(_ context.Context, perfID id.PerformanceID, opts option.ListOpts) ([]*option.Option, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*option.Option, 0)
	for _, o := range s.options {
		if o.PerformanceID.String() != perfID.String() {
			continue
		}
		if opts.ActiveOnly && !o.Active {
			continue
		}
		cp := *o
		result = append(result, &cp)
	}
	return result, nil
}

func (s optionStore) Update(_ context.Context, o *option.Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.options[o.ID.String()]; !exists {
		return boxoffice.ErrOptionNotFound
	}
	cp := *o
	s.options[o.ID.String()] = &cp
	return nil
}
