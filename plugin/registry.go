package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                   []OnInit
	onShutdown               []OnShutdown
	onPerformanceProvisioned []OnPerformanceProvisioned
	onSectionProvisioned     []OnSectionProvisioned
	onSeatsReserved          []OnSeatsReserved
	onSeatsReleased          []OnSeatsReleased
	onSeatsSold              []OnSeatsSold
	onReservationRejected    []OnReservationRejected
	onSectionFull            []OnSectionFull
	onQuoteComputed          []OnQuoteComputed
	onQuoteFailed            []OnQuoteFailed
	promoValidators          []PromoValidator
	taxCalculators           []TaxCalculator
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnPerformanceProvisioned); ok {
		r.onPerformanceProvisioned = append(r.onPerformanceProvisioned, v)
	}
	if v, ok := p.(OnSectionProvisioned); ok {
		r.onSectionProvisioned = append(r.onSectionProvisioned, v)
	}
	if v, ok := p.(OnSeatsReserved); ok {
		r.onSeatsReserved = append(r.onSeatsReserved, v)
	}
	if v, ok := p.(OnSeatsReleased); ok {
		r.onSeatsReleased = append(r.onSeatsReleased, v)
	}
	if v, ok := p.(OnSeatsSold); ok {
		r.onSeatsSold = append(r.onSeatsSold, v)
	}
	if v, ok := p.(OnReservationRejected); ok {
		r.onReservationRejected = append(r.onReservationRejected, v)
	}
	if v, ok := p.(OnSectionFull); ok {
		r.onSectionFull = append(r.onSectionFull, v)
	}
	if v, ok := p.(OnQuoteComputed); ok {
		r.onQuoteComputed = append(r.onQuoteComputed, v)
	}
	if v, ok := p.(OnQuoteFailed); ok {
		r.onQuoteFailed = append(r.onQuoteFailed, v)
	}
	if v, ok := p.(PromoValidator); ok {
		r.promoValidators = append(r.promoValidators, v)
	}
	if v, ok := p.(TaxCalculator); ok {
		r.taxCalculators = append(r.taxCalculators, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnSeatsReserved)(nil)).Elem(), "OnSeatsReserved")
	checkInterface(reflect.TypeOf((*OnSeatsSold)(nil)).Elem(), "OnSeatsSold")
	checkInterface(reflect.TypeOf((*OnReservationRejected)(nil)).Elem(), "OnReservationRejected")
	checkInterface(reflect.TypeOf((*OnQuoteComputed)(nil)).Elem(), "OnQuoteComputed")
	checkInterface(reflect.TypeOf((*PromoValidator)(nil)).Elem(), "PromoValidator")
	checkInterface(reflect.TypeOf((*TaxCalculator)(nil)).Elem(), "TaxCalculator")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// PromoValidators returns the registered promo validators.
func (r *Registry) PromoValidators() []PromoValidator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]PromoValidator, len(r.promoValidators))
	copy(result, r.promoValidators)
	return result
}

// TaxCalculators returns the registered tax calculators.
func (r *Registry) TaxCalculators() []TaxCalculator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]TaxCalculator, len(r.taxCalculators))
	copy(result, r.taxCalculators)
	return result
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitPerformanceProvisioned emits a performance provisioned event.
func (r *Registry) EmitPerformanceProvisioned(ctx context.Context, performance interface{}) {
	r.mu.RLock()
	plugins := r.onPerformanceProvisioned
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPerformanceProvisioned(ctx, performance)
		}); err != nil {
			r.logger.Warn("plugin OnPerformanceProvisioned failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSectionProvisioned emits a section provisioned event.
func (r *Registry) EmitSectionProvisioned(ctx context.Context, sec interface{}) {
	r.mu.RLock()
	plugins := r.onSectionProvisioned
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSectionProvisioned(ctx, sec)
		}); err != nil {
			r.logger.Warn("plugin OnSectionProvisioned failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSeatsReserved emits a seats reserved event.
func (r *Registry) EmitSeatsReserved(ctx context.Context, snapshot interface{}) {
	r.mu.RLock()
	plugins := r.onSeatsReserved
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSeatsReserved(ctx, snapshot)
		}); err != nil {
			r.logger.Warn("plugin OnSeatsReserved failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSeatsReleased emits a seats released event.
func (r *Registry) EmitSeatsReleased(ctx context.Context, snapshot interface{}) {
	r.mu.RLock()
	plugins := r.onSeatsReleased
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSeatsReleased(ctx, snapshot)
		}); err != nil {
			r.logger.Warn("plugin OnSeatsReleased failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSeatsSold emits a seats sold event.
func (r *Registry) EmitSeatsSold(ctx context.Context, snapshot interface{}) {
	r.mu.RLock()
	plugins := r.onSeatsSold
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSeatsSold(ctx, snapshot)
		}); err != nil {
			r.logger.Warn("plugin OnSeatsSold failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitReservationRejected emits a reservation rejected event.
func (r *Registry) EmitReservationRejected(ctx context.Context, sectionName string, requested, available int) {
	r.mu.RLock()
	plugins := r.onReservationRejected
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnReservationRejected(ctx, sectionName, requested, available)
		}); err != nil {
			r.logger.Warn("plugin OnReservationRejected failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSectionFull emits a section full event.
func (r *Registry) EmitSectionFull(ctx context.Context, sec interface{}) {
	r.mu.RLock()
	plugins := r.onSectionFull
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSectionFull(ctx, sec)
		}); err != nil {
			r.logger.Warn("plugin OnSectionFull failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitQuoteComputed emits a quote computed event.
func (r *Registry) EmitQuoteComputed(ctx context.Context, breakdown interface{}) {
	r.mu.RLock()
	plugins := r.onQuoteComputed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnQuoteComputed(ctx, breakdown)
		}); err != nil {
			r.logger.Warn("plugin OnQuoteComputed failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitQuoteFailed emits a quote failed event.
func (r *Registry) EmitQuoteFailed(ctx context.Context, cause error) {
	r.mu.RLock()
	plugins := r.onQuoteFailed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnQuoteFailed(ctx, cause)
		}); err != nil {
			r.logger.Warn("plugin OnQuoteFailed failed", "plugin", p.Name(), "error", err)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the booking pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
