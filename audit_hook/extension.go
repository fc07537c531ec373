// Package audithook bridges Boxoffice lifecycle events to an audit
// trail backend.
//
// It defines a local Recorder interface so the package does not depend
// on any particular audit system. Callers inject a RecorderFunc adapter
// that bridges to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/boxoffice"
	"github.com/xraph/boxoffice/plugin"
	"github.com/xraph/boxoffice/pricing"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin                   = (*Extension)(nil)
	_ plugin.OnPerformanceProvisioned = (*Extension)(nil)
	_ plugin.OnSectionProvisioned     = (*Extension)(nil)
	_ plugin.OnSeatsReserved          = (*Extension)(nil)
	_ plugin.OnSeatsReleased          = (*Extension)(nil)
	_ plugin.OnSeatsSold              = (*Extension)(nil)
	_ plugin.OnReservationRejected    = (*Extension)(nil)
	_ plugin.OnSectionFull            = (*Extension)(nil)
	_ plugin.OnQuoteComputed          = (*Extension)(nil)
	_ plugin.OnQuoteFailed            = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement. It is
// defined locally so that this package does not import a concrete
// audit system — callers inject the backend at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Boxoffice lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Provisioning hooks
// ──────────────────────────────────────────────────

// OnPerformanceProvisioned implements plugin.OnPerformanceProvisioned.
func (e *Extension) OnPerformanceProvisioned(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionPerformanceProvisioned, SeverityInfo, OutcomeSuccess,
		ResourcePerformance, "", CategoryInventory, nil,
		"event", "performance_provisioned",
	)
}

// OnSectionProvisioned implements plugin.OnSectionProvisioned.
func (e *Extension) OnSectionProvisioned(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionSectionProvisioned, SeverityInfo, OutcomeSuccess,
		ResourceSection, "", CategoryInventory, nil,
		"event", "section_provisioned",
	)
}

// ──────────────────────────────────────────────────
// Capacity hooks
// ──────────────────────────────────────────────────

// OnSeatsReserved implements plugin.OnSeatsReserved.
func (e *Extension) OnSeatsReserved(ctx context.Context, snapshot interface{}) error {
	return e.recordCapacity(ctx, ActionSeatsReserved, snapshot)
}

// OnSeatsReleased implements plugin.OnSeatsReleased.
func (e *Extension) OnSeatsReleased(ctx context.Context, snapshot interface{}) error {
	return e.recordCapacity(ctx, ActionSeatsReleased, snapshot)
}

// OnSeatsSold implements plugin.OnSeatsSold.
func (e *Extension) OnSeatsSold(ctx context.Context, snapshot interface{}) error {
	return e.recordCapacity(ctx, ActionSeatsSold, snapshot)
}

func (e *Extension) recordCapacity(ctx context.Context, action string, snapshot interface{}) error {
	snap, ok := snapshot.(*boxoffice.CapacitySnapshot)
	if !ok {
		return e.record(ctx, action, SeverityInfo, OutcomeSuccess,
			ResourceSection, "", CategoryCapacity, nil)
	}
	return e.record(ctx, action, SeverityInfo, OutcomeSuccess,
		ResourceSection, snap.SectionID.String(), CategoryCapacity, nil,
		"section", snap.SectionName,
		"ticket_type_id", snap.TicketTypeID.String(),
		"quantity", snap.Quantity,
		"section_available", snap.SectionAvailable,
	)
}

// OnReservationRejected implements plugin.OnReservationRejected.
func (e *Extension) OnReservationRejected(ctx context.Context, sectionName string, requested, available int) error {
	return e.record(ctx, ActionReservationRejected, SeverityWarning, OutcomeFailure,
		ResourceSection, "", CategoryCapacity, nil,
		"section", sectionName,
		"requested", requested,
		"available", available,
	)
}

// OnSectionFull implements plugin.OnSectionFull.
func (e *Extension) OnSectionFull(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionSectionFull, SeverityInfo, OutcomeSuccess,
		ResourceSection, "", CategoryCapacity, nil,
		"event", "section_full",
	)
}

// ──────────────────────────────────────────────────
// Pricing hooks
// ──────────────────────────────────────────────────

// OnQuoteComputed implements plugin.OnQuoteComputed.
func (e *Extension) OnQuoteComputed(ctx context.Context, breakdown interface{}) error {
	b, ok := breakdown.(*pricing.Breakdown)
	if !ok {
		return e.record(ctx, ActionQuoteComputed, SeverityInfo, OutcomeSuccess,
			ResourceQuote, "", CategoryPricing, nil)
	}
	return e.record(ctx, ActionQuoteComputed, SeverityInfo, OutcomeSuccess,
		ResourceQuote, b.ID.String(), CategoryPricing, nil,
		"currency", b.Currency,
		"quantity", b.Quantity,
		"final_price", b.FinalPrice.Amount,
	)
}

// OnQuoteFailed implements plugin.OnQuoteFailed.
func (e *Extension) OnQuoteFailed(ctx context.Context, cause error) error {
	return e.record(ctx, ActionQuoteFailed, SeverityError, OutcomeFailure,
		ResourceQuote, "", CategoryPricing, cause,
		"event", "quote_failed",
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
