package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xraph/boxoffice"
	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/section"
)

// sectionStore adapts Store to the section persistence contract.
type sectionStore struct{ *Store }

func (s sectionStore) Create(ctx context.Context, sec *section.Section) error {
	meta, err := marshalMetadata(sec.Metadata)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO sections (id, performance_id, name, total_capacity, available_capacity, reserved_capacity,
	sold_capacity, base_price_cents, currency, wheelchair_accessible, premium, active, metadata, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = s.pool.Exec(ctx, query,
		sec.ID.String(), sec.PerformanceID.String(), sec.Name, sec.TotalCapacity, sec.AvailableCapacity,
		sec.ReservedCapacity, sec.SoldCapacity, sec.BasePrice.Amount, sec.Currency,
		sec.WheelchairAccessible, sec.Premium, sec.Active, meta, sec.CreatedAt, sec.UpdatedAt)
	if isUniqueViolation(err) {
		return boxoffice.ErrSectionExists
	}
	return err
}

const sectionColumns = `id, performance_id, name, total_capacity, available_capacity, reserved_capacity,
	sold_capacity, base_price_cents, currency, wheelchair_accessible, premium, active, metadata, created_at, updated_at`

func (s sectionStore) Get(ctx context.Context, sectionID id.SectionID) (*section.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE id = $1`
	sec, err := scanSection(s.pool.QueryRow(ctx, query, sectionID.String()))
	if isNoRows(err) {
		return nil, boxoffice.ErrSectionNotFound
	}
	return sec, err
}

func (s sectionStore) GetByName(ctx context.Context, perfID id.PerformanceID, name string) (*section.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE performance_id = $1 AND name = $2`
	sec, err := scanSection(s.pool.QueryRow(ctx, query, perfID.String(), name))
	if isNoRows(err) {
		return nil, boxoffice.ErrSectionNotFound
	}
	return sec, err
}

func (s sectionStore) List(ctx context.Context, perfID id.PerformanceID) ([]*section.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE performance_id = $1 ORDER BY created_at ASC`
	rows, err := s.pool.Query(ctx, query, perfID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*section.Section
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, sec)
	}
	return result, rows.Err()
}

func (s sectionStore) Update(ctx context.Context, sec *section.Section) error {
	meta, err := marshalMetadata(sec.Metadata)
	if err != nil {
		return err
	}
	const query = `
UPDATE sections SET available_capacity = $2, reserved_capacity = $3, sold_capacity = $4,
	wheelchair_accessible = $5, premium = $6, active = $7, metadata = $8, updated_at = $9
WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query,
		sec.ID.String(), sec.AvailableCapacity, sec.ReservedCapacity, sec.SoldCapacity,
		sec.WheelchairAccessible, sec.Premium, sec.Active, meta, sec.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return boxoffice.ErrSectionNotFound
	}
	return nil
}

func (s sectionStore) CreateAllocation(ctx context.Context, a *section.SectionTicketType) error {
	const query = `
INSERT INTO section_ticket_types (id, section_id, ticket_type_id, allocated_capacity, available_capacity,
	reserved_capacity, sold_capacity, modifier_bps, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := s.pool.Exec(ctx, query,
		a.ID.String(), a.SectionID.String(), a.TicketTypeID.String(), a.AllocatedCapacity,
		a.AvailableCapacity, a.ReservedCapacity, a.SoldCapacity, a.ModifierBps, a.CreatedAt, a.UpdatedAt)
	if isUniqueViolation(err) {
		return boxoffice.ErrAllocationExists
	}
	return err
}

const allocationColumns = `id, section_id, ticket_type_id, allocated_capacity, available_capacity,
	reserved_capacity, sold_capacity, modifier_bps, created_at, updated_at`

func (s sectionStore) GetAllocation(ctx context.Context, sectionID id.SectionID, ticketTypeID id.TicketTypeID) (*section.SectionTicketType, error) {
	query := `SELECT ` + allocationColumns + ` FROM section_ticket_types WHERE section_id = $1 AND ticket_type_id = $2`
	a, err := scanAllocation(s.pool.QueryRow(ctx, query, sectionID.String(), ticketTypeID.String()))
	if isNoRows(err) {
		return nil, boxoffice.ErrAllocationNotFound
	}
	return a, err
}

func (s sectionStore) ListAllocations(ctx context.Context, sectionID id.SectionID) ([]*section.SectionTicketType, error) {
	query := `SELECT ` + allocationColumns + ` FROM section_ticket_types WHERE section_id = $1 ORDER BY created_at ASC`
	rows, err := s.pool.Query(ctx, query, sectionID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*section.SectionTicketType
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// UpdatePair commits a section and one of its allocations inside one
// transaction, locking both rows before writing so concurrent paired
// mutations serialize at the database.
func (s sectionStore) UpdatePair(ctx context.Context, sec *section.Section, a *section.SectionTicketType) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var discard int
		err := tx.QueryRow(ctx, `SELECT total_capacity FROM sections WHERE id = $1 FOR UPDATE`, sec.ID.String()).Scan(&discard)
		if isNoRows(err) {
			return boxoffice.ErrSectionNotFound
		}
		if err != nil {
			return err
		}
		err = tx.QueryRow(ctx, `SELECT allocated_capacity FROM section_ticket_types WHERE id = $1 FOR UPDATE`, a.ID.String()).Scan(&discard)
		if isNoRows(err) {
			return boxoffice.ErrAllocationNotFound
		}
		if err != nil {
			return err
		}

		const sectionQuery = `
UPDATE sections SET available_capacity = $2, reserved_capacity = $3, sold_capacity = $4, updated_at = $5
WHERE id = $1`
		if _, err := tx.Exec(ctx, sectionQuery,
			sec.ID.String(), sec.AvailableCapacity, sec.ReservedCapacity, sec.SoldCapacity, sec.UpdatedAt); err != nil {
			return fmt.Errorf("update section: %w", err)
		}

		const allocationQuery = `
UPDATE section_ticket_types SET available_capacity = $2, reserved_capacity = $3, sold_capacity = $4, updated_at = $5
WHERE id = $1`
		if _, err := tx.Exec(ctx, allocationQuery,
			a.ID.String(), a.AvailableCapacity, a.ReservedCapacity, a.SoldCapacity, a.UpdatedAt); err != nil {
			return fmt.Errorf("update allocation: %w", err)
		}
		return nil
	})
}
