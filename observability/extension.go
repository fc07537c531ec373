// Package observability provides a metrics extension for Boxoffice that
// records lifecycle event counts via an injected MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/boxoffice"
	"github.com/xraph/boxoffice/plugin"
	"github.com/xraph/boxoffice/pricing"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin                   = (*MetricsExtension)(nil)
	_ plugin.OnInit                   = (*MetricsExtension)(nil)
	_ plugin.OnPerformanceProvisioned = (*MetricsExtension)(nil)
	_ plugin.OnSectionProvisioned     = (*MetricsExtension)(nil)
	_ plugin.OnSeatsReserved          = (*MetricsExtension)(nil)
	_ plugin.OnSeatsReleased          = (*MetricsExtension)(nil)
	_ plugin.OnSeatsSold              = (*MetricsExtension)(nil)
	_ plugin.OnReservationRejected    = (*MetricsExtension)(nil)
	_ plugin.OnSectionFull            = (*MetricsExtension)(nil)
	_ plugin.OnQuoteComputed          = (*MetricsExtension)(nil)
	_ plugin.OnQuoteFailed            = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics. Register it
// as a Boxoffice plugin to automatically track inventory and pricing
// activity.
type MetricsExtension struct {
	factory MetricFactory

	// Provisioning metrics
	PerformancesProvisioned Counter
	SectionsProvisioned     Counter

	// Capacity metrics
	SeatsReserved        Counter
	SeatsReleased        Counter
	SeatsSold            Counter
	ReservationsRejected Counter
	SectionsFilled       Counter
	ReservationSize      Histogram

	// Pricing metrics
	QuotesComputed Counter
	QuotesFailed   Counter
	QuoteTotal     Histogram
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		PerformancesProvisioned: factory.Counter("boxoffice.performance.provisioned"),
		SectionsProvisioned:     factory.Counter("boxoffice.section.provisioned"),

		SeatsReserved:        factory.Counter("boxoffice.seats.reserved"),
		SeatsReleased:        factory.Counter("boxoffice.seats.released"),
		SeatsSold:            factory.Counter("boxoffice.seats.sold"),
		ReservationsRejected: factory.Counter("boxoffice.reservations.rejected"),
		SectionsFilled:       factory.Counter("boxoffice.sections.filled"),
		ReservationSize:      factory.Histogram("boxoffice.reservation.size"),

		QuotesComputed: factory.Counter("boxoffice.quotes.computed"),
		QuotesFailed:   factory.Counter("boxoffice.quotes.failed"),
		QuoteTotal:     factory.Histogram("boxoffice.quote.total_amount"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// OnPerformanceProvisioned implements plugin.OnPerformanceProvisioned.
func (m *MetricsExtension) OnPerformanceProvisioned(_ context.Context, _ interface{}) error {
	m.PerformancesProvisioned.Inc()
	return nil
}

// OnSectionProvisioned implements plugin.OnSectionProvisioned.
func (m *MetricsExtension) OnSectionProvisioned(_ context.Context, _ interface{}) error {
	m.SectionsProvisioned.Inc()
	return nil
}

// OnSeatsReserved implements plugin.OnSeatsReserved.
func (m *MetricsExtension) OnSeatsReserved(_ context.Context, snapshot interface{}) error {
	m.SeatsReserved.Inc()
	if snap, ok := snapshot.(*boxoffice.CapacitySnapshot); ok {
		m.ReservationSize.Observe(float64(snap.Quantity))
	}
	return nil
}

// OnSeatsReleased implements plugin.OnSeatsReleased.
func (m *MetricsExtension) OnSeatsReleased(_ context.Context, _ interface{}) error {
	m.SeatsReleased.Inc()
	return nil
}

// OnSeatsSold implements plugin.OnSeatsSold.
func (m *MetricsExtension) OnSeatsSold(_ context.Context, _ interface{}) error {
	m.SeatsSold.Inc()
	return nil
}

// OnReservationRejected implements plugin.OnReservationRejected.
func (m *MetricsExtension) OnReservationRejected(_ context.Context, _ string, _, _ int) error {
	m.ReservationsRejected.Inc()
	return nil
}

// OnSectionFull implements plugin.OnSectionFull.
func (m *MetricsExtension) OnSectionFull(_ context.Context, _ interface{}) error {
	m.SectionsFilled.Inc()
	return nil
}

// OnQuoteComputed implements plugin.OnQuoteComputed.
func (m *MetricsExtension) OnQuoteComputed(_ context.Context, breakdown interface{}) error {
	m.QuotesComputed.Inc()
	if b, ok := breakdown.(*pricing.Breakdown); ok {
		m.QuoteTotal.Observe(float64(b.FinalPrice.Amount))
	}
	return nil
}

// OnQuoteFailed implements plugin.OnQuoteFailed.
func (m *MetricsExtension) OnQuoteFailed(_ context.Context, _ error) error {
	m.QuotesFailed.Inc()
	return nil
}
