package memory

import (
	"context"

	"github.com/xraph/boxoffice"
	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/section"
)

// sectionStore adapts Store to the section persistence contract.
type sectionStore struct{ *Store }

func (s sectionStore) Create(_ context.Context, sec *section.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sections[sec.ID.String()]; exists {
		return boxoffice.ErrAlreadyExists
	}
	nameKey := sectionNameKey(sec.PerformanceID, sec.Name)
	if _, exists := s.sectionsByName[nameKey]; exists {
		return boxoffice.ErrSectionExists
	}

	cp := *sec
	s.sections[sec.ID.String()] = &cp
	s.sectionsByName[nameKey] = sec.ID.String()
	return nil
}

func (s sectionStore) Get(_ context.Context, sectionID id.SectionID) (*section.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getSectionLocked(sectionID.String())
}

func (s sectionStore) GetByName(_ context.Context, perfID id.PerformanceID, name string) (*section.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sid, ok := s.sectionsByName[sectionNameKey(perfID, name)]
	if !ok {
		return nil, boxoffice.ErrSectionNotFound
	}
	return s.getSectionLocked(sid)
}

func (s sectionStore) getSectionLocked(sid string) (*section.Section, error) {
	if sec, ok := s.sections[sid]; ok {
		cp := *sec
		return &cp, nil
	}
	return nil, boxoffice.ErrSectionNotFound
}

func (s sectionStore) List(_ context.Context, perfID id.PerformanceID) ([]*section.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*section.Section, 0)
	for _, sec := range s.sections {
		if sec.PerformanceID.String() == perfID.String() {
			cp := *sec
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (s sectionStore) Update(_ context.Context, sec *section.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sections[sec.ID.String()]; !exists {
		return boxoffice.ErrSectionNotFound
	}
	cp := *sec
	s.sections[sec.ID.String()] = &cp
	return nil
}

func (s sectionStore) CreateAllocation(_ context.Context, a *section.SectionTicketType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := allocationKey(a.SectionID, a.TicketTypeID)
	if _, exists := s.allocations[key]; exists {
		return boxoffice.ErrAllocationExists
	}
	cp := *a
	s.allocations[key] = &cp
	return nil
}

func (s sectionStore) GetAllocation(_ context.Context, sectionID id.SectionID, ticketTypeID id.TicketTypeID) (*section.SectionTicketType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.allocations[allocationKey(sectionID, ticketTypeID)]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, boxoffice.ErrAllocationNotFound
}

func (s sectionStore) ListAllocations(_ context.Context, sectionID id.SectionID) ([]*section.SectionTicketType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*section.SectionTicketType, 0)
	for _, a := range s.allocations {
		if a.SectionID.String() == sectionID.String() {
			cp := *a
			result = append(result, &cp)
		}
	}
	return result, nil
}

// UpdatePair commits a section and one of its allocations under a
// single lock acquisition, so concurrent readers never observe one
// half of a paired mutation.
func (s sectionStore) UpdatePair(_ context.Context, sec *section.Section, a *section.SectionTicketType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sections[sec.ID.String()]; !exists {
		return boxoffice.ErrSectionNotFound
	}
	key := allocationKey(a.SectionID, a.TicketTypeID)
	if _, exists := s.allocations[key]; !exists {
		return boxoffice.ErrAllocationNotFound
	}

	secCp := *sec
	allocCp := *a
	s.sections[sec.ID.String()] = &secCp
	s.allocations[key] = &allocCp
	return nil
}
