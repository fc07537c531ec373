package boxoffice

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/option"
	"github.com/xraph/boxoffice/pricing"
	"github.com/xraph/boxoffice/section"
	"github.com/xraph/boxoffice/types"
)

// OptionSelection picks an add-on option and a quantity for a quote.
type OptionSelection struct {
	OptionID id.OptionID `json:"option_id"`
	Quantity int         `json:"quantity"`
}

// QuoteInput describes a prospective booking to price. Quoting never
// mutates capacity; the same input against the same ledger state and
// policy always yields the same breakdown.
type QuoteInput struct {
	PerformanceID id.PerformanceID  `json:"performance_id"`
	SectionName   string            `json:"section_name"`
	TicketTypeID  id.TicketTypeID   `json:"ticket_type_id"`
	Quantity      int               `json:"quantity"`
	Options       []OptionSelection `json:"options,omitempty"`
	GroupBooking  bool              `json:"group_booking,omitempty"`
	PromoCode     string            `json:"promo_code,omitempty"`

	// Fees and taxes apply by default; a caller pricing an exempt
	// booking opts out per stage.
	SkipFees  bool `json:"skip_fees,omitempty"`
	SkipTaxes bool `json:"skip_taxes,omitempty"`
}

// Quote computes a fully itemized price breakdown for a prospective
// booking. Stage order is fixed: unit price, subtotal, options,
// discounts, fees, taxes. A failure at any stage yields a
// *PriceCalculationError and no partial breakdown.
func (e *Engine) Quote(ctx context.Context, input QuoteInput) (*pricing.Breakdown, error) {
	b, err := e.quote(ctx, input)
	if err != nil {
		e.plugins.EmitQuoteFailed(ctx, err)
		return nil, err
	}
	e.plugins.EmitQuoteComputed(ctx, b)
	return b, nil
}

func (e *Engine) quote(ctx context.Context, input QuoteInput) (*pricing.Breakdown, error) {
	if input.Quantity <= 0 {
		return nil, &PriceCalculationError{Stage: "input", Err: ErrInvalidQuantity}
	}

	s, err := e.store.SectionStore().GetByName(ctx, input.PerformanceID, input.SectionName)
	if err != nil {
		return nil, &PriceCalculationError{Stage: "section", Err: err}
	}
	if s.Currency != e.policy.Currency {
		return nil, &PriceCalculationError{Stage: "currency", Err: fmt.Errorf(
			"%w: section priced in %s, policy in %s",
			ErrCurrencyMismatch, s.Currency, e.policy.Currency)}
	}
	a, err := e.store.SectionStore().GetAllocation(ctx, s.ID, input.TicketTypeID)
	if err != nil {
		return nil, &PriceCalculationError{Stage: "allocation", Err: err}
	}

	b := &pricing.Breakdown{
		ID:          id.NewQuoteID(),
		Currency:    s.Currency,
		BasePrice:   s.BasePrice,
		ModifierBps: a.ModifierBps,
		Quantity:    input.Quantity,
		CreatedAt:   time.Now().UTC(),
	}

	// Stage 1: unit price and subtotal.
	b.UnitPrice = s.BasePrice.ApplyBps(a.ModifierBps)
	b.Subtotal = b.UnitPrice.Multiply(int64(input.Quantity))

	zero := types.Zero(s.Currency)
	b.OptionsTotal = zero
	b.DiscountTotal = zero
	b.FeesTotal = zero
	b.TaxesTotal = zero

	// Stage 2: options. Inactive or missing options are skipped
	// silently so a retired add-on never fails the whole quote.
	for _, sel := range input.Options {
		o, err := e.store.OptionStore().Get(ctx, sel.OptionID)
		if err != nil || o == nil || !o.Active {
			continue
		}
		if o.PerformanceID.String() != input.PerformanceID.String() {
			continue
		}
		qty := o.ClampQuantity(sel.Quantity)
		amount := o.Amount(b.Subtotal).Multiply(int64(qty))
		b.Options = append(b.Options, pricing.LineItem{
			ID:       id.NewLineItemID(),
			Type:     pricing.LineItemOption,
			Name:     o.Name,
			Quantity: qty,
			Amount:   amount,
		})
		b.OptionsTotal = b.OptionsTotal.Add(amount)
	}

	base := b.Subtotal.Add(b.OptionsTotal)

	// Stage 3: discounts, in policy order (group first, then promo).
	// Each discount is computed against the pre-discount amount, so two
	// applicable discounts never compound; the combined total is still
	// capped at that amount.
	discounts, err := e.resolveDiscounts(ctx, input, base)
	if err != nil {
		return nil, &PriceCalculationError{Stage: "discounts", Err: err}
	}
	for _, d := range discounts {
		amount := d.AmountFor(base)
		if remaining := base.Subtract(b.DiscountTotal); remaining.LessThan(amount) {
			amount = remaining
		}
		itemType := pricing.LineItemGroupDiscount
		if d.Type == pricing.DiscountPromoCode {
			itemType = pricing.LineItemPromoDiscount
		}
		b.Discounts = append(b.Discounts, pricing.LineItem{
			ID:      id.NewLineItemID(),
			Type:    itemType,
			Name:    d.Name,
			RateBps: d.PercentBps,
			Amount:  amount.Negate(),
		})
		b.DiscountTotal = b.DiscountTotal.Add(amount)
	}
	running := base.Subtract(b.DiscountTotal)

	// Stage 4: fees on the post-discount amount, clamped per fee.
	if !input.SkipFees {
		for _, f := range e.policy.Fees {
			amount := f.AmountFor(running, input.Quantity)
			if amount.IsZero() && !f.Mandatory {
				continue
			}
			b.Fees = append(b.Fees, pricing.LineItem{
				ID:      id.NewLineItemID(),
				Type:    f.Type,
				Name:    f.Name,
				RateBps: f.RateBps,
				Amount:  amount,
			})
			b.FeesTotal = b.FeesTotal.Add(amount)
		}
	}
	running = running.Add(b.FeesTotal)

	// Stage 5: taxes on the post-fee amount.
	if !input.SkipTaxes {
		taxes, err := e.resolveTaxes(ctx, running)
		if err != nil {
			return nil, &PriceCalculationError{Stage: "taxes", Err: err}
		}
		for _, t := range taxes {
			amount := t.AmountFor(running)
			b.Taxes = append(b.Taxes, pricing.LineItem{
				ID:      id.NewLineItemID(),
				Type:    pricing.LineItemTax,
				Name:    t.Name,
				RateBps: t.RateBps,
				Amount:  amount,
			})
			b.TaxesTotal = b.TaxesTotal.Add(amount)
		}
	}

	b.FinalPrice = running.Add(b.TaxesTotal)
	if b.FinalPrice.IsNegative() {
		b.FinalPrice = zero
	}

	return b, nil
}

// resolveDiscounts builds the applicable discount rules for a quote.
func (e *Engine) resolveDiscounts(ctx context.Context, input QuoteInput, running types.Money) ([]pricing.Discount, error) {
	var out []pricing.Discount
	now := time.Now().UTC()

	if input.GroupBooking {
		if e.policy.GroupMinSize > 0 && input.Quantity < e.policy.GroupMinSize {
			return nil, fmt.Errorf("%w: %d below minimum %d", ErrInvalidGroupSize, input.Quantity, e.policy.GroupMinSize)
		}
		if e.policy.GroupMaxSize > 0 && input.Quantity > e.policy.GroupMaxSize {
			return nil, fmt.Errorf("%w: %d above maximum %d", ErrInvalidGroupSize, input.Quantity, e.policy.GroupMaxSize)
		}
		group := pricing.Discount{
			Type:       pricing.DiscountGroupBooking,
			Name:       "Group booking discount",
			PercentBps: e.policy.GroupDiscountBps,
			MinAmount:  e.policy.GroupDiscountThreshold,
		}
		if group.Applicable(running, now) {
			out = append(out, group)
		}
	}

	if input.PromoCode != "" {
		promo, err := e.resolvePromo(ctx, input.PromoCode, running)
		if err != nil {
			return nil, err
		}
		if promo != nil && promo.Applicable(running, now) {
			out = append(out, *promo)
		}
	}

	return out, nil
}

// resolvePromo consults registered PromoValidator plugins; with none
// registered the policy's flat fallback rate applies to any non-empty
// code. A validator returning (nil, nil) means the code does not
// apply, which is not an error.
func (e *Engine) resolvePromo(ctx context.Context, code string, amount types.Money) (*pricing.Discount, error) {
	validators := e.plugins.PromoValidators()
	if len(validators) == 0 {
		return &pricing.Discount{
			Type:       pricing.DiscountPromoCode,
			Name:       fmt.Sprintf("Promo %s", code),
			PercentBps: e.policy.PromoDiscountBps,
		}, nil
	}

	for _, v := range validators {
		d, err := v.ValidatePromo(ctx, code, amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPromoRejected, err)
		}
		if d != nil {
			return d, nil
		}
	}
	return nil, nil
}

// resolveTaxes consults registered TaxCalculator plugins; their result
// replaces the policy's tax table entirely.
func (e *Engine) resolveTaxes(ctx context.Context, base types.Money) ([]pricing.Tax, error) {
	calculators := e.plugins.TaxCalculators()
	if len(calculators) == 0 {
		return e.policy.Taxes, nil
	}

	for _, c := range calculators {
		taxes, err := c.CalculateTaxes(ctx, base)
		if err != nil {
			return nil, err
		}
		if taxes != nil {
			return taxes, nil
		}
	}
	return e.policy.Taxes, nil
}

// ──────────────────────────────────────────────────
// Booking-facing helpers
// ──────────────────────────────────────────────────

// ListAvailableSections returns the active sections of a performance
// that still have capacity for the requested quantity.
func (e *Engine) ListAvailableSections(ctx context.Context, perfID id.PerformanceID, quantity int) ([]*section.Section, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	sections, err := e.store.SectionStore().List(ctx, perfID)
	if err != nil {
		return nil, err
	}

	out := make([]*section.Section, 0, len(sections))
	for _, s := range sections {
		if s.Active && s.CanReserve(quantity) {
			out = append(out, s)
		}
	}
	return out, nil
}

// ListAvailableOptions returns the active add-on options of a
// performance.
func (e *Engine) ListAvailableOptions(ctx context.Context, perfID id.PerformanceID) ([]*option.Option, error) {
	return e.store.OptionStore().List(ctx, perfID, option.ListOpts{ActiveOnly: true})
}

// ValidateBooking reports whether a booking of the given shape could
// currently be fulfilled, without reserving anything. An unknown
// section or ticket type answers false rather than erroring.
func (e *Engine) ValidateBooking(ctx context.Context, input QuoteInput) (bool, error) {
	ok, err := e.CheckAvailability(ctx, input.PerformanceID, input.SectionName, input.TicketTypeID, input.Quantity)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// ReserveTickets reserves capacity for a quoted booking. It is a thin
// wrapper over ReserveSeats keyed by the quote input shape.
func (e *Engine) ReserveTickets(ctx context.Context, input QuoteInput) (*CapacitySnapshot, error) {
	return e.ReserveSeats(ctx, input.PerformanceID, input.SectionName, input.TicketTypeID, input.Quantity)
}

// ReleaseTickets releases previously reserved capacity for a booking.
func (e *Engine) ReleaseTickets(ctx context.Context, input QuoteInput) (*CapacitySnapshot, error) {
	return e.ReleaseSeats(ctx, input.PerformanceID, input.SectionName, input.TicketTypeID, input.Quantity)
}
