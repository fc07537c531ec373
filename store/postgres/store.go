// Package postgres provides a PostgreSQL Store backed by pgx.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xraph/boxoffice"
	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/option"
	"github.com/xraph/boxoffice/section"
	storepkg "github.com/xraph/boxoffice/store"
	"github.com/xraph/boxoffice/tickettype"
	"github.com/xraph/boxoffice/venue"
)

// compile-time interface check
var _ storepkg.Store = (*Store)(nil)

// Store implements store.Store using PostgreSQL via pgx.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new PostgreSQL store from a connection string.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("boxoffice/postgres: connect: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewFromPool wraps an existing pool.
func NewFromPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool returns the underlying connection pool for direct access.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// VenueStore returns the venue persistence contract.
func (s *Store) VenueStore() venue.Store { return s }

// TicketTypeStore returns the ticket-type persistence contract.
func (s *Store) TicketTypeStore() tickettype.Store { return ticketTypeStore{s} }

// SectionStore returns the section persistence contract.
func (s *Store) SectionStore() section.Store { return sectionStore{s} }

// OptionStore returns the option persistence contract.
func (s *Store) OptionStore() option.Store { return optionStore{s} }

// Migrate applies the embedded schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	return applyMigrations(ctx, s.pool)
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func marshalMetadata(m map[string]string) ([]byte, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func unmarshalMetadata(raw []byte) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

// Venue store implementation

func (s *Store) CreateVenue(ctx context.Context, v *venue.Venue) error {
	meta, err := marshalMetadata(v.Metadata)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO venues (id, tenant_id, name, city, max_capacity, active, metadata, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = s.pool.Exec(ctx, query,
		v.ID.String(), v.TenantID, v.Name, v.City, v.MaxCapacity, v.Active, meta, v.CreatedAt, v.UpdatedAt)
	if isUniqueViolation(err) {
		return boxoffice.ErrAlreadyExists
	}
	return err
}

func (s *Store) GetVenue(ctx context.Context, venueID id.VenueID) (*venue.Venue, error) {
	const query = `
SELECT id, tenant_id, name, city, max_capacity, active, metadata, created_at, updated_at
FROM venues WHERE id = $1`
	v, err := scanVenue(s.pool.QueryRow(ctx, query, venueID.String()))
	if isNoRows(err) {
		return nil, boxoffice.ErrVenueNotFound
	}
	return v, err
}

func (s *Store) ListVenues(ctx context.Context, tenantID string, opts venue.ListOpts) ([]*venue.Venue, error) {
	query := `
SELECT id, tenant_id, name, city, max_capacity, active, metadata, created_at, updated_at
FROM venues WHERE ($1 = '' OR tenant_id = $1)`
	if opts.ActiveOnly {
		query += ` AND active`
	}
	query += ` ORDER BY created_at ASC`
	query += limitOffset(opts.Limit, opts.Offset)

	rows, err := s.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*venue.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

func (s *Store) CreatePerformance(ctx context.Context, p *venue.Performance) error {
	meta, err := marshalMetadata(p.Metadata)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO performances (id, venue_id, tenant_id, name, starts_at, capacity, currency, active, metadata, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = s.pool.Exec(ctx, query,
		p.ID.String(), p.VenueID.String(), p.TenantID, p.Name, p.StartsAt, p.Capacity, p.Currency,
		p.Active, meta, p.CreatedAt, p.UpdatedAt)
	if isUniqueViolation(err) {
		return boxoffice.ErrAlreadyExists
	}
	return err
}

func (s *Store) GetPerformance(ctx context.Context, perfID id.PerformanceID) (*venue.Performance, error) {
	const query = `
SELECT id, venue_id, tenant_id, name, starts_at, capacity, currency, active, metadata, created_at, updated_at
FROM performances WHERE id = $1`
	p, err := scanPerformance(s.pool.QueryRow(ctx, query, perfID.String()))
	if isNoRows(err) {
		return nil, boxoffice.ErrPerformanceNotFound
	}
	return p, err
}

func (s *Store) ListPerformances(ctx context.Context, venueID id.VenueID, opts venue.ListOpts) ([]*venue.Performance, error) {
	query := `
SELECT id, venue_id, tenant_id, name, starts_at, capacity, currency, active, metadata, created_at, updated_at
FROM performances WHERE venue_id = $1`
	if opts.ActiveOnly {
		query += ` AND active`
	}
	query += ` ORDER BY starts_at ASC`
	query += limitOffset(opts.Limit, opts.Offset)

	rows, err := s.pool.Query(ctx, query, venueID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*venue.Performance
	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func limitOffset(limit, offset int) string {
	out := ""
	if limit > 0 {
		out += fmt.Sprintf(" LIMIT %d", limit)
	}
	if offset > 0 {
		out += fmt.Sprintf(" OFFSET %d", offset)
	}
	return out
}
