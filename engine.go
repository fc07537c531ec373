package boxoffice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/option"
	"github.com/xraph/boxoffice/plugin"
	"github.com/xraph/boxoffice/pricing"
	"github.com/xraph/boxoffice/section"
	"github.com/xraph/boxoffice/store"
	"github.com/xraph/boxoffice/tickettype"
	"github.com/xraph/boxoffice/types"
	"github.com/xraph/boxoffice/venue"
)

// Engine is the event inventory and pricing engine.
type Engine struct {
	store   store.Store
	policy  pricing.Policy
	plugins *plugin.Registry
	logger  *slog.Logger

	locks       *keyedLocks
	lockTimeout time.Duration
}

// New creates a new Engine instance.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:       s,
		policy:      pricing.Default("usd"),
		plugins:     plugin.NewRegistry(),
		logger:      slog.Default(),
		locks:       newKeyedLocks(),
		lockTimeout: 3 * time.Second,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPolicy sets the pricing policy.
func WithPolicy(p pricing.Policy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithLockTimeout bounds how long a capacity mutation waits for its
// per-section lock before failing with ErrLockTimeout.
func WithLockTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.lockTimeout = d
	}
}

// Start migrates the store and initializes plugins.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.store.Migrate(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}

	e.plugins.EmitInit(ctx, e)

	e.logger.Info("boxoffice started",
		"policy_currency", e.policy.Currency,
		"lock_timeout", e.lockTimeout,
		"plugins", e.plugins.Count(),
	)

	return nil
}

// Stop shuts down the Engine.
func (e *Engine) Stop() error {
	ctx := context.Background()
	e.plugins.EmitShutdown(ctx)

	if err := e.store.Close(); err != nil {
		return err
	}

	e.logger.Info("boxoffice stopped")
	return nil
}

// Policy returns the active pricing policy.
func (e *Engine) Policy() pricing.Policy {
	return e.policy
}

// Plugins returns the plugin registry.
func (e *Engine) Plugins() *plugin.Registry {
	return e.plugins
}

// ──────────────────────────────────────────────────
// Provisioning
// ──────────────────────────────────────────────────

// CreateVenueInput holds the fields for creating a venue.
type CreateVenueInput struct {
	TenantID    string
	Name        string
	City        string
	MaxCapacity int
	Metadata    map[string]string
}

// CreateVenue provisions a new venue.
func (e *Engine) CreateVenue(ctx context.Context, input CreateVenueInput) (*venue.Venue, error) {
	if input.Name == "" {
		return nil, ValidationError{Field: "name", Message: "required"}
	}
	if input.MaxCapacity <= 0 {
		return nil, ValidationError{Field: "max_capacity", Message: "must be positive"}
	}

	v := &venue.Venue{
		Entity:      types.NewEntity(),
		ID:          id.NewVenueID(),
		TenantID:    input.TenantID,
		Name:        input.Name,
		City:        input.City,
		MaxCapacity: input.MaxCapacity,
		Active:      true,
		Metadata:    input.Metadata,
	}

	if err := e.store.VenueStore().CreateVenue(ctx, v); err != nil {
		return nil, err
	}

	e.logger.Info("venue created", "venue_id", v.ID, "name", v.Name, "max_capacity", v.MaxCapacity)
	return v, nil
}

// GetVenue retrieves a venue by ID.
func (e *Engine) GetVenue(ctx context.Context, venueID id.VenueID) (*venue.Venue, error) {
	return e.store.VenueStore().GetVenue(ctx, venueID)
}

// CreatePerformanceInput holds the fields for scheduling a performance.
type CreatePerformanceInput struct {
	VenueID  id.VenueID
	TenantID string
	Name     string
	StartsAt time.Time
	Capacity int
	Currency string
	Metadata map[string]string
}

// CreatePerformance schedules a performance at a venue. The declared
// capacity may not exceed the venue's maximum.
func (e *Engine) CreatePerformance(ctx context.Context, input CreatePerformanceInput) (*venue.Performance, error) {
	if input.Name == "" {
		return nil, ValidationError{Field: "name", Message: "required"}
	}
	if input.Capacity <= 0 {
		return nil, ValidationError{Field: "capacity", Message: "must be positive"}
	}

	v, err := e.store.VenueStore().GetVenue(ctx, input.VenueID)
	if err != nil {
		return nil, err
	}
	if !v.Active {
		return nil, fmt.Errorf("%w: venue %s", ErrInactive, v.ID)
	}
	if input.Capacity > v.MaxCapacity {
		return nil, fmt.Errorf("%w: performance capacity %d exceeds venue maximum %d",
			ErrCapacityExceeded, input.Capacity, v.MaxCapacity)
	}

	currency := strings.ToLower(input.Currency)
	if currency == "" {
		currency = e.policy.Currency
	}

	p := &venue.Performance{
		Entity:   types.NewEntity(),
		ID:       id.NewPerformanceID(),
		VenueID:  v.ID,
		TenantID: input.TenantID,
		Name:     input.Name,
		StartsAt: input.StartsAt,
		Capacity: input.Capacity,
		Currency: currency,
		Active:   true,
		Metadata: input.Metadata,
	}

	if err := e.store.VenueStore().CreatePerformance(ctx, p); err != nil {
		return nil, err
	}

	e.plugins.EmitPerformanceProvisioned(ctx, p)
	e.logger.Info("performance created", "performance_id", p.ID, "venue_id", v.ID, "capacity", p.Capacity)
	return p, nil
}

// GetPerformance retrieves a performance by ID.
func (e *Engine) GetPerformance(ctx context.Context, perfID id.PerformanceID) (*venue.Performance, error) {
	return e.store.VenueStore().GetPerformance(ctx, perfID)
}

// CreateTicketTypeInput holds the fields for creating a ticket type.
type CreateTicketTypeInput struct {
	TenantID string
	Code     string
	Name     string
	Metadata map[string]string
}

// CreateTicketType registers an admission category.
func (e *Engine) CreateTicketType(ctx context.Context, input CreateTicketTypeInput) (*tickettype.TicketType, error) {
	if input.Code == "" {
		return nil, ValidationError{Field: "code", Message: "required"}
	}
	if input.Name == "" {
		return nil, ValidationError{Field: "name", Message: "required"}
	}

	t := &tickettype.TicketType{
		Entity:   types.NewEntity(),
		ID:       id.NewTicketTypeID(),
		TenantID: input.TenantID,
		Code:     strings.ToLower(input.Code),
		Name:     input.Name,
		Active:   true,
		Metadata: input.Metadata,
	}

	if err := e.store.TicketTypeStore().Create(ctx, t); err != nil {
		return nil, err
	}

	e.logger.Info("ticket type created", "ticket_type_id", t.ID, "code", t.Code)
	return t, nil
}

// GetTicketType retrieves a ticket type by ID.
func (e *Engine) GetTicketType(ctx context.Context, ticketTypeID id.TicketTypeID) (*tickettype.TicketType, error) {
	return e.store.TicketTypeStore().Get(ctx, ticketTypeID)
}

// CreateSectionInput holds the fields for creating a section.
type CreateSectionInput struct {
	PerformanceID        id.PerformanceID
	Name                 string
	TotalCapacity        int
	BasePrice            types.Money
	WheelchairAccessible bool
	Premium              bool
	Metadata             map[string]string
}

// CreateSection provisions an inventory section within a performance.
// Section names are unique per performance; the combined totals of a
// performance's sections may not exceed its declared capacity.
func (e *Engine) CreateSection(ctx context.Context, input CreateSectionInput) (*section.Section, error) {
	if input.Name == "" {
		return nil, ValidationError{Field: "name", Message: "required"}
	}
	if input.TotalCapacity <= 0 {
		return nil, ValidationError{Field: "total_capacity", Message: "must be positive"}
	}
	if !input.BasePrice.IsPositive() {
		return nil, ValidationError{Field: "base_price", Message: "must be positive"}
	}

	p, err := e.store.VenueStore().GetPerformance(ctx, input.PerformanceID)
	if err != nil {
		return nil, err
	}
	if input.BasePrice.Currency != p.Currency {
		return nil, fmt.Errorf("%w: section priced in %s, performance in %s",
			ErrCurrencyMismatch, input.BasePrice.Currency, p.Currency)
	}

	if existing, err := e.store.SectionStore().GetByName(ctx, p.ID, input.Name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %q", ErrSectionExists, input.Name)
	}

	siblings, err := e.store.SectionStore().List(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	allocated := 0
	for _, s := range siblings {
		allocated += s.TotalCapacity
	}
	if allocated+input.TotalCapacity > p.Capacity {
		return nil, fmt.Errorf("%w: sections total %d exceeds performance capacity %d",
			ErrCapacityExceeded, allocated+input.TotalCapacity, p.Capacity)
	}

	s := section.New(p.ID, input.Name, input.TotalCapacity, input.BasePrice)
	s.WheelchairAccessible = input.WheelchairAccessible
	s.Premium = input.Premium
	s.Metadata = input.Metadata

	if err := e.store.SectionStore().Create(ctx, s); err != nil {
		return nil, err
	}

	e.plugins.EmitSectionProvisioned(ctx, s)
	e.logger.Info("section created", "section_id", s.ID, "performance_id", p.ID, "name", s.Name, "capacity", s.TotalCapacity)
	return s, nil
}

// GetSection retrieves a section by ID.
func (e *Engine) GetSection(ctx context.Context, sectionID id.SectionID) (*section.Section, error) {
	return e.store.SectionStore().Get(ctx, sectionID)
}

// GetSectionByName retrieves a section by its performance-scoped name.
func (e *Engine) GetSectionByName(ctx context.Context, perfID id.PerformanceID, name string) (*section.Section, error) {
	return e.store.SectionStore().GetByName(ctx, perfID, name)
}

// CreateAllocationInput holds the fields for allocating section
// capacity to a ticket type.
type CreateAllocationInput struct {
	SectionID    id.SectionID
	TicketTypeID id.TicketTypeID
	Capacity     int
	// ModifierBps is the price modifier in basis points; 0 means 1.0x.
	ModifierBps int64
}

// CreateAllocation assigns part of a section's capacity to a ticket
// type. The combined allocated capacities of a section's ticket types
// may not exceed the section total.
func (e *Engine) CreateAllocation(ctx context.Context, input CreateAllocationInput) (*section.SectionTicketType, error) {
	if input.Capacity <= 0 {
		return nil, ValidationError{Field: "capacity", Message: "must be positive"}
	}
	if input.ModifierBps < 0 {
		return nil, ValidationError{Field: "modifier_bps", Message: "must not be negative"}
	}

	s, err := e.store.SectionStore().Get(ctx, input.SectionID)
	if err != nil {
		return nil, err
	}
	t, err := e.store.TicketTypeStore().Get(ctx, input.TicketTypeID)
	if err != nil {
		return nil, err
	}
	if !t.Active {
		return nil, fmt.Errorf("%w: ticket type %s", ErrInactive, t.ID)
	}

	if existing, err := e.store.SectionStore().GetAllocation(ctx, s.ID, t.ID); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %s in section %s", ErrAllocationExists, t.Code, s.Name)
	}

	siblings, err := e.store.SectionStore().ListAllocations(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	allocated := 0
	for _, a := range siblings {
		allocated += a.AllocatedCapacity
	}
	if allocated+input.Capacity > s.TotalCapacity {
		return nil, fmt.Errorf("%w: allocations total %d exceeds section capacity %d",
			ErrCapacityExceeded, allocated+input.Capacity, s.TotalCapacity)
	}

	a := section.NewAllocation(s.ID, t.ID, input.Capacity, input.ModifierBps)
	if err := e.store.SectionStore().CreateAllocation(ctx, a); err != nil {
		return nil, err
	}

	e.logger.Info("allocation created", "allocation_id", a.ID, "section_id", s.ID, "ticket_type_id", t.ID, "capacity", a.AllocatedCapacity)
	return a, nil
}

// CreateOptionInput holds the fields for creating a bookable add-on.
type CreateOptionInput struct {
	PerformanceID id.PerformanceID
	TenantID      string
	Name          string
	Mode          option.Mode
	Price         types.Money
	PercentBps    int64
	MaxQuantity   int
}

// CreateOption attaches a bookable add-on to a performance.
func (e *Engine) CreateOption(ctx context.Context, input CreateOptionInput) (*option.Option, error) {
	if input.Name == "" {
		return nil, ValidationError{Field: "name", Message: "required"}
	}
	switch input.Mode {
	case option.ModeFlat:
		if !input.Price.IsPositive() {
			return nil, ValidationError{Field: "price", Message: "must be positive for flat options"}
		}
	case option.ModePercentage:
		if input.PercentBps <= 0 {
			return nil, ValidationError{Field: "percent_bps", Message: "must be positive for percentage options"}
		}
	default:
		return nil, ValidationError{Field: "mode", Message: "unknown option mode"}
	}

	if _, err := e.store.VenueStore().GetPerformance(ctx, input.PerformanceID); err != nil {
		return nil, err
	}

	o := &option.Option{
		Entity:        types.NewEntity(),
		ID:            id.NewOptionID(),
		PerformanceID: input.PerformanceID,
		TenantID:      input.TenantID,
		Name:          input.Name,
		Mode:          input.Mode,
		Price:         input.Price,
		PercentBps:    input.PercentBps,
		MaxQuantity:   input.MaxQuantity,
		Active:        true,
	}

	if err := e.store.OptionStore().Create(ctx, o); err != nil {
		return nil, err
	}

	e.logger.Info("option created", "option_id", o.ID, "performance_id", o.PerformanceID, "name", o.Name)
	return o, nil
}

// DeactivateOption turns off an option without deleting it; quotes
// already referencing it simply stop including it.
func (e *Engine) DeactivateOption(ctx context.Context, optionID id.OptionID) error {
	o, err := e.store.OptionStore().Get(ctx, optionID)
	if err != nil {
		return err
	}
	o.Active = false
	o.Touch()
	return e.store.OptionStore().Update(ctx, o)
}

// ──────────────────────────────────────────────────
// Hierarchy validation
// ──────────────────────────────────────────────────

// ValidateVenueCapacity checks that the summed capacity of a venue's
// performances does not exceed the venue maximum.
func (e *Engine) ValidateVenueCapacity(ctx context.Context, venueID id.VenueID) error {
	v, err := e.store.VenueStore().GetVenue(ctx, venueID)
	if err != nil {
		return err
	}

	perfs, err := e.store.VenueStore().ListPerformances(ctx, v.ID, venue.ListOpts{ActiveOnly: true})
	if err != nil {
		return err
	}

	var total int
	for _, p := range perfs {
		total += p.Capacity
	}
	if total > v.MaxCapacity {
		return fmt.Errorf("%w: performances total %d exceeds venue maximum %d",
			ErrCapacityExceeded, total, v.MaxCapacity)
	}
	return nil
}

// ValidatePerformanceCapacity checks that a performance's section
// totals sum exactly to its declared capacity. Under-allocation is as
// much a provisioning bug as over-allocation: unallocated capacity is
// unsellable, so the check is strict equality.
func (e *Engine) ValidatePerformanceCapacity(ctx context.Context, perfID id.PerformanceID) error {
	p, err := e.store.VenueStore().GetPerformance(ctx, perfID)
	if err != nil {
		return err
	}

	sections, err := e.store.SectionStore().List(ctx, p.ID)
	if err != nil {
		return err
	}

	total := 0
	for _, s := range sections {
		total += s.TotalCapacity
	}
	if total != p.Capacity {
		return fmt.Errorf("%w: sections total %d, performance declares %d",
			ErrCapacityMismatch, total, p.Capacity)
	}
	return nil
}

// ValidateSectionCapacity checks that a section's ticket-type
// allocations sum exactly to the section total.
func (e *Engine) ValidateSectionCapacity(ctx context.Context, sectionID id.SectionID) error {
	s, err := e.store.SectionStore().Get(ctx, sectionID)
	if err != nil {
		return err
	}

	allocations, err := e.store.SectionStore().ListAllocations(ctx, s.ID)
	if err != nil {
		return err
	}

	total := 0
	for _, a := range allocations {
		total += a.AllocatedCapacity
	}
	if total != s.TotalCapacity {
		return fmt.Errorf("%w: allocations total %d, section declares %d",
			ErrCapacityMismatch, total, s.TotalCapacity)
	}
	return nil
}
