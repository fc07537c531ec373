package postgres

import (
	"context"

	"github.com/xraph/boxoffice"
	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/option"
	"github.com/xraph/boxoffice/tickettype"
)

// ticketTypeStore adapts Store to the ticket-type persistence contract.
type ticketTypeStore struct{ *Store }

const ticketTypeColumns = `id, tenant_id, code, name, active, metadata, created_at, updated_at`

func (s ticketTypeStore) Create(ctx context.Context, t *tickettype.TicketType) error {
	meta, err := marshalMetadata(t.Metadata)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO ticket_types (id, tenant_id, code, name, active, metadata, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = s.pool.Exec(ctx, query,
		t.ID.String(), t.TenantID, t.Code, t.Name, t.Active, meta, t.CreatedAt, t.UpdatedAt)
	if isUniqueViolation(err) {
		return boxoffice.ErrTicketTypeExists
	}
	return err
}

func (s ticketTypeStore) Get(ctx context.Context, ticketTypeID id.TicketTypeID) (*tickettype.TicketType, error) {
	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE id = $1`
	t, err := scanTicketType(s.pool.QueryRow(ctx, query, ticketTypeID.String()))
	if isNoRows(err) {
		return nil, boxoffice.ErrTicketTypeNotFound
	}
	return t, err
}

func (s ticketTypeStore) GetByCode(ctx context.Context, tenantID, code string) (*tickettype.TicketType, error) {
	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE tenant_id = $1 AND code = $2`
	t, err := scanTicketType(s.pool.QueryRow(ctx, query, tenantID, code))
	if isNoRows(err) {
		return nil, boxoffice.ErrTicketTypeNotFound
	}
	return t, err
}

func (s ticketTypeStore) List(ctx context.Context, tenantID string) ([]*tickettype.TicketType, error) {
	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE ($1 = '' OR tenant_id = $1) ORDER BY code ASC`
	rows, err := s.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*tickettype.TicketType
	for rows.Next() {
		t, err := scanTicketType(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (s ticketTypeStore) Update(ctx context.Context, t *tickettype.TicketType) error {
	meta, err := marshalMetadata(t.Metadata)
	if err != nil {
		return err
	}
	const query = `
UPDATE ticket_types SET name = $2, active = $3, metadata = $4, updated_at = $5 WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query, t.ID.String(), t.Name, t.Active, meta, t.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return boxoffice.ErrTicketTypeNotFound
	}
	return nil
}

// optionStore adapts Store to the option persistence contract.
type optionStore struct{ *Store }

const optionColumns = `id, performance_id, tenant_id, name, mode, price_cents, currency,
	percent_bps, max_quantity, active, created_at, updated_at`

func (s optionStore) Create(ctx context.Context, o *option.Option) error {
	const query = `
INSERT INTO options (id, performance_id, tenant_id, name, mode, price_cents, currency,
	percent_bps, max_quantity, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.pool.Exec(ctx, query,
		o.ID.String(), o.PerformanceID.String(), o.TenantID, o.Name, string(o.Mode),
		o.Price.Amount, o.Price.Currency, o.PercentBps, o.MaxQuantity, o.Active, o.CreatedAt, o.UpdatedAt)
	if isUniqueViolation(err) {
		return boxoffice.ErrAlreadyExists
	}
	return err
}

func (s optionStore) Get(ctx context.Context, optionID id.OptionID) (*option.Option, error) {
	query := `SELECT ` + optionColumns + ` FROM options WHERE id = $1`
	o, err := scanOption(s.pool.QueryRow(ctx, query, optionID.String()))
	if isNoRows(err) {
		return nil, boxoffice.ErrOptionNotFound
	}
	return o, err
}

func (s optionStore) List(ctx context.Context, perfID id.PerformanceID, opts option.ListOpts) ([]*option.Option, error) {
	query := `SELECT ` + optionColumns + ` FROM options WHERE performance_id = $1`
	if opts.ActiveOnly {
		query += ` AND active`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.pool.Query(ctx, query, perfID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*option.Option
	for rows.Next() {
		o, err := scanOption(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (s optionStore) Update(ctx context.Context, o *option.Option) error {
	const query = `
UPDATE options SET name = $2, mode = $3, price_cents = $4, currency = $5, percent_bps = $6,
	max_quantity = $7, active = $8, updated_at = $9
WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query,
		o.ID.String(), o.Name, string(o.Mode), o.Price.Amount, o.Price.Currency,
		o.PercentBps, o.MaxQuantity, o.Active, o.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return boxoffice.ErrOptionNotFound
	}
	return nil
}
