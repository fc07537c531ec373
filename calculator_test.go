package boxoffice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xraph/boxoffice"
	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/option"
	"github.com/xraph/boxoffice/pricing"
	"github.com/xraph/boxoffice/store/memory"
	"github.com/xraph/boxoffice/types"
)

type pricingFixture struct {
	engine  *boxoffice.Engine
	perfID  id.PerformanceID
	adult   id.TicketTypeID
	student id.TicketTypeID
	parking id.OptionID
	retired id.OptionID
}

// newPricingFixture provisions a 200-seat performance with a standard
// and a premium section, two ticket types, and two add-on options (one
// deactivated).
func newPricingFixture(t *testing.T, opts ...boxoffice.Option) *pricingFixture {
	t.Helper()
	ctx := context.Background()

	eng := boxoffice.New(memory.New(), opts...)
	if err := eng.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = eng.Stop() })

	v, err := eng.CreateVenue(ctx, boxoffice.CreateVenueInput{
		TenantID: "acme", Name: "Grand Hall", MaxCapacity: 1000,
	})
	if err != nil {
		t.Fatal(err)
	}
	p, err := eng.CreatePerformance(ctx, boxoffice.CreatePerformanceInput{
		VenueID: v.ID, TenantID: "acme", Name: "Evening Show",
		StartsAt: time.Now().Add(24 * time.Hour), Capacity: 200, Currency: "usd",
	})
	if err != nil {
		t.Fatal(err)
	}

	main, err := eng.CreateSection(ctx, boxoffice.CreateSectionInput{
		PerformanceID: p.ID, Name: "Main Floor", TotalCapacity: 150, BasePrice: types.USD(5000),
	})
	if err != nil {
		t.Fatal(err)
	}
	vip, err := eng.CreateSection(ctx, boxoffice.CreateSectionInput{
		PerformanceID: p.ID, Name: "VIP", TotalCapacity: 50, BasePrice: types.USD(10000), Premium: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	adult, err := eng.CreateTicketType(ctx, boxoffice.CreateTicketTypeInput{
		TenantID: "acme", Code: "adult", Name: "Adult",
	})
	if err != nil {
		t.Fatal(err)
	}
	student, err := eng.CreateTicketType(ctx, boxoffice.CreateTicketTypeInput{
		TenantID: "acme", Code: "student", Name: "Student",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Main Floor: adult at face value, student at 80%.
	if _, err := eng.CreateAllocation(ctx, boxoffice.CreateAllocationInput{
		SectionID: main.ID, TicketTypeID: adult.ID, Capacity: 100,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.CreateAllocation(ctx, boxoffice.CreateAllocationInput{
		SectionID: main.ID, TicketTypeID: student.ID, Capacity: 50, ModifierBps: 8000,
	}); err != nil {
		t.Fatal(err)
	}
	// VIP: adult only, at 1.5x the (already higher) base.
	if _, err := eng.CreateAllocation(ctx, boxoffice.CreateAllocationInput{
		SectionID: vip.ID, TicketTypeID: adult.ID, Capacity: 50, ModifierBps: 15000,
	}); err != nil {
		t.Fatal(err)
	}

	parking, err := eng.CreateOption(ctx, boxoffice.CreateOptionInput{
		PerformanceID: p.ID, TenantID: "acme", Name: "Parking",
		Mode: option.ModeFlat, Price: types.USD(1500), MaxQuantity: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	retired, err := eng.CreateOption(ctx, boxoffice.CreateOptionInput{
		PerformanceID: p.ID, TenantID: "acme", Name: "Backstage Tour",
		Mode: option.ModeFlat, Price: types.USD(9900),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.DeactivateOption(ctx, retired.ID); err != nil {
		t.Fatal(err)
	}

	return &pricingFixture{
		engine: eng, perfID: p.ID,
		adult: adult.ID, student: student.ID,
		parking: parking.ID, retired: retired.ID,
	}
}

func TestQuoteBaseBreakdown(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	b, err := f.engine.Quote(ctx, boxoffice.QuoteInput{
		PerformanceID: f.perfID, SectionName: "Main Floor", TicketTypeID: f.adult, Quantity: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	if !b.UnitPrice.Equal(types.USD(5000)) {
		t.Errorf("UnitPrice: got %v", b.UnitPrice)
	}
	if !b.Subtotal.Equal(types.USD(10000)) {
		t.Errorf("Subtotal: got %v", b.Subtotal)
	}
	// 3% service fee + 2.50 booking fee on 100.00.
	if !b.FeesTotal.Equal(types.USD(550)) {
		t.Errorf("FeesTotal: got %v", b.FeesTotal)
	}
	// 9% VAT on 105.50.
	if !b.TaxesTotal.Equal(types.USD(950)) {
		t.Errorf("TaxesTotal: got %v", b.TaxesTotal)
	}
	if !b.FinalPrice.Equal(types.USD(11500)) {
		t.Errorf("FinalPrice: got %v", b.FinalPrice)
	}
	if len(b.Discounts) != 0 {
		t.Errorf("no discounts expected, got %d", len(b.Discounts))
	}
}

func TestQuoteModifiers(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		section  string
		ticket   id.TicketTypeID
		unit     types.Money
		modifier int64
	}{
		{"AdultFaceValue", "Main Floor", f.adult, types.USD(5000), 10000},
		{"StudentReduced", "Main Floor", f.student, types.USD(4000), 8000},
		{"VIPPremium", "VIP", f.adult, types.USD(15000), 15000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := f.engine.Quote(ctx, boxoffice.QuoteInput{
				PerformanceID: f.perfID, SectionName: tt.section, TicketTypeID: tt.ticket, Quantity: 1,
			})
			if err != nil {
				t.Fatal(err)
			}
			if !b.UnitPrice.Equal(tt.unit) {
				t.Errorf("UnitPrice: got %v, want %v", b.UnitPrice, tt.unit)
			}
			if b.ModifierBps != tt.modifier {
				t.Errorf("ModifierBps: got %d, want %d", b.ModifierBps, tt.modifier)
			}
		})
	}
}

func TestQuoteGroupDiscount(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	// 12 adult seats at 50.00 crosses the 500.00 group threshold.
	b, err := f.engine.Quote(ctx, boxoffice.QuoteInput{
		PerformanceID: f.perfID, SectionName: "Main Floor", TicketTypeID: f.adult,
		Quantity: 12, GroupBooking: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if !b.Subtotal.Equal(types.USD(60000)) {
		t.Fatalf("Subtotal: got %v", b.Subtotal)
	}
	if !b.DiscountTotal.Equal(types.USD(6000)) {
		t.Errorf("DiscountTotal: got %v, want $60.00", b.DiscountTotal)
	}
	// Fees on the discounted 540.00: 3% = 16.20, plus 2.50 flat.
	if !b.FeesTotal.Equal(types.USD(1870)) {
		t.Errorf("FeesTotal: got %v", b.FeesTotal)
	}
	// 9% VAT on 558.70.
	if !b.TaxesTotal.Equal(types.USD(5028)) {
		t.Errorf("TaxesTotal: got %v", b.TaxesTotal)
	}
	if !b.FinalPrice.Equal(types.USD(60898)) {
		t.Errorf("FinalPrice: got %v", b.FinalPrice)
	}
}

func TestQuoteCombinedDiscountsAdditive(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	// Group and promo both apply to the same quote. Each is computed
	// against the 600.00 pre-discount amount, never against the other's
	// result: 10% group = 60.00 and 5% promo = 30.00, not 27.00.
	b, err := f.engine.Quote(ctx, boxoffice.QuoteInput{
		PerformanceID: f.perfID, SectionName: "Main Floor", TicketTypeID: f.adult,
		Quantity: 12, GroupBooking: true, PromoCode: "SUMMER",
	})
	if err != nil {
		t.Fatal(err)
	}

	if !b.Subtotal.Equal(types.USD(60000)) {
		t.Fatalf("Subtotal: got %v", b.Subtotal)
	}
	if len(b.Discounts) != 2 {
		t.Fatalf("discounts: got %d line items, want 2", len(b.Discounts))
	}
	if !b.Discounts[0].Amount.Equal(types.USD(6000).Negate()) {
		t.Errorf("group line: got %v, want -$60.00", b.Discounts[0].Amount)
	}
	if !b.Discounts[1].Amount.Equal(types.USD(3000).Negate()) {
		t.Errorf("promo line: got %v, want -$30.00", b.Discounts[1].Amount)
	}
	if !b.DiscountTotal.Equal(types.USD(9000)) {
		t.Errorf("DiscountTotal: got %v, want $90.00", b.DiscountTotal)
	}
	// Fees on the discounted 510.00: 3% = 15.30, plus 2.50 flat.
	if !b.FeesTotal.Equal(types.USD(1780)) {
		t.Errorf("FeesTotal: got %v", b.FeesTotal)
	}
	// 9% VAT on 527.80.
	if !b.TaxesTotal.Equal(types.USD(4750)) {
		t.Errorf("TaxesTotal: got %v", b.TaxesTotal)
	}
	if !b.FinalPrice.Equal(types.USD(57530)) {
		t.Errorf("FinalPrice: got %v", b.FinalPrice)
	}
}

func TestQuoteGroupBelowThreshold(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	b, err := f.engine.Quote(ctx, boxoffice.QuoteInput{
		PerformanceID: f.perfID, SectionName: "Main Floor", TicketTypeID: f.adult,
		Quantity: 2, GroupBooking: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Discounts) != 0 || !b.DiscountTotal.IsZero() {
		t.Errorf("group discount below threshold: %v", b.DiscountTotal)
	}
}

func TestQuotePromoFallback(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	b, err := f.engine.Quote(ctx, boxoffice.QuoteInput{
		PerformanceID: f.perfID, SectionName: "Main Floor", TicketTypeID: f.adult,
		Quantity: 2, PromoCode: "SUMMER",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Flat 5% fallback on 100.00.
	if !b.DiscountTotal.Equal(types.USD(500)) {
		t.Errorf("DiscountTotal: got %v", b.DiscountTotal)
	}
	// Fees on 95.00: 2.85 + 2.50; VAT on 100.35 = 9.03.
	if !b.FinalPrice.Equal(types.USD(10938)) {
		t.Errorf("FinalPrice: got %v", b.FinalPrice)
	}
	if len(b.Discounts) != 1 || b.Discounts[0].Type != pricing.LineItemPromoDiscount {
		t.Errorf("promo line item: %+v", b.Discounts)
	}
}

func TestQuoteFeeAndTaxToggles(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		skipFees  bool
		skipTaxes bool
		fees      types.Money
		taxes     types.Money
		final     types.Money
	}{
		{"TaxExempt", false, true, types.USD(550), types.USD(0), types.USD(10550)},
		{"FeeExempt", true, false, types.USD(0), types.USD(900), types.USD(10900)},
		{"BothExempt", true, true, types.USD(0), types.USD(0), types.USD(10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := f.engine.Quote(ctx, boxoffice.QuoteInput{
				PerformanceID: f.perfID, SectionName: "Main Floor", TicketTypeID: f.adult, Quantity: 2,
				SkipFees: tt.skipFees, SkipTaxes: tt.skipTaxes,
			})
			if err != nil {
				t.Fatal(err)
			}
			if !b.FeesTotal.Equal(tt.fees) {
				t.Errorf("FeesTotal: got %v, want %v", b.FeesTotal, tt.fees)
			}
			if tt.skipFees && len(b.Fees) != 0 {
				t.Errorf("fee line items present on a fee-exempt quote: %d", len(b.Fees))
			}
			if !b.TaxesTotal.Equal(tt.taxes) {
				t.Errorf("TaxesTotal: got %v, want %v", b.TaxesTotal, tt.taxes)
			}
			if tt.skipTaxes && len(b.Taxes) != 0 {
				t.Errorf("tax line items present on a tax-exempt quote: %d", len(b.Taxes))
			}
			if !b.FinalPrice.Equal(tt.final) {
				t.Errorf("FinalPrice: got %v, want %v", b.FinalPrice, tt.final)
			}
		})
	}
}

func TestQuoteOptions(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	b, err := f.engine.Quote(ctx, boxoffice.QuoteInput{
		PerformanceID: f.perfID, SectionName: "Main Floor", TicketTypeID: f.adult, Quantity: 2,
		Options: []boxoffice.OptionSelection{
			{OptionID: f.parking, Quantity: 2},
			{OptionID: f.retired, Quantity: 1}, // inactive, skipped silently
			{OptionID: id.NewOptionID(), Quantity: 1},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(b.Options) != 1 {
		t.Fatalf("options: got %d line items, want 1", len(b.Options))
	}
	if !b.OptionsTotal.Equal(types.USD(3000)) {
		t.Errorf("OptionsTotal: got %v", b.OptionsTotal)
	}
	// Fees on 130.00: 3.90 + 2.50; VAT on 136.40 = 12.28.
	if !b.FinalPrice.Equal(types.USD(14868)) {
		t.Errorf("FinalPrice: got %v", b.FinalPrice)
	}
}

func TestQuoteOptionQuantityClamped(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	b, err := f.engine.Quote(ctx, boxoffice.QuoteInput{
		PerformanceID: f.perfID, SectionName: "Main Floor", TicketTypeID: f.adult, Quantity: 1,
		Options: []boxoffice.OptionSelection{{OptionID: f.parking, Quantity: 10}},
	})
	if err != nil {
		t.Fatal(err)
	}
	// Parking caps at 2.
	if !b.OptionsTotal.Equal(types.USD(3000)) {
		t.Errorf("OptionsTotal: got %v", b.OptionsTotal)
	}
}

func TestQuoteDeterministic(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	input := boxoffice.QuoteInput{
		PerformanceID: f.perfID, SectionName: "Main Floor", TicketTypeID: f.adult,
		Quantity: 7, GroupBooking: true, PromoCode: "SUMMER",
		Options: []boxoffice.OptionSelection{{OptionID: f.parking, Quantity: 1}},
	}

	first, err := f.engine.Quote(ctx, input)
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.engine.Quote(ctx, input)
	if err != nil {
		t.Fatal(err)
	}

	if !first.FinalPrice.Equal(second.FinalPrice) {
		t.Errorf("same input, different totals: %v vs %v", first.FinalPrice, second.FinalPrice)
	}
	if len(first.Discounts) != len(second.Discounts) || len(first.Fees) != len(second.Fees) {
		t.Error("same input, different line items")
	}
}

func TestQuoteDoesNotMutateCapacity(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := f.engine.Quote(ctx, boxoffice.QuoteInput{
			PerformanceID: f.perfID, SectionName: "VIP", TicketTypeID: f.adult, Quantity: 50,
		}); err != nil {
			t.Fatal(err)
		}
	}

	ok, err := f.engine.CheckAvailability(ctx, f.perfID, "VIP", f.adult, 50)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("quoting consumed capacity")
	}
}

func TestQuoteCurrencyMismatch(t *testing.T) {
	ctx := context.Background()

	// A euro performance under the default dollar policy fails the
	// quote cleanly instead of mixing currencies mid-calculation.
	eng := boxoffice.New(memory.New())
	if err := eng.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = eng.Stop() })

	v, err := eng.CreateVenue(ctx, boxoffice.CreateVenueInput{Name: "Opera House", MaxCapacity: 500})
	if err != nil {
		t.Fatal(err)
	}
	p, err := eng.CreatePerformance(ctx, boxoffice.CreatePerformanceInput{
		VenueID: v.ID, Name: "Recital", StartsAt: time.Now(), Capacity: 100, Currency: "eur",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := eng.CreateSection(ctx, boxoffice.CreateSectionInput{
		PerformanceID: p.ID, Name: "Stalls", TotalCapacity: 100, BasePrice: types.EUR(5000),
	}); err != nil {
		t.Fatal(err)
	}
	tt, err := eng.CreateTicketType(ctx, boxoffice.CreateTicketTypeInput{Code: "adult", Name: "Adult"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = eng.Quote(ctx, boxoffice.QuoteInput{
		PerformanceID: p.ID, SectionName: "Stalls", TicketTypeID: tt.ID, Quantity: 2,
	})
	var perr *boxoffice.PriceCalculationError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *PriceCalculationError", err)
	}
	if !errors.Is(err, boxoffice.ErrCurrencyMismatch) {
		t.Errorf("got %v, want ErrCurrencyMismatch", err)
	}
}

func TestQuoteEuroPolicy(t *testing.T) {
	ctx := context.Background()

	eng := boxoffice.New(memory.New(), boxoffice.WithPolicy(pricing.Default("eur")))
	if err := eng.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = eng.Stop() })

	v, err := eng.CreateVenue(ctx, boxoffice.CreateVenueInput{Name: "Opera House", MaxCapacity: 500})
	if err != nil {
		t.Fatal(err)
	}
	p, err := eng.CreatePerformance(ctx, boxoffice.CreatePerformanceInput{
		VenueID: v.ID, Name: "Recital", StartsAt: time.Now(), Capacity: 100, Currency: "eur",
	})
	if err != nil {
		t.Fatal(err)
	}
	s, err := eng.CreateSection(ctx, boxoffice.CreateSectionInput{
		PerformanceID: p.ID, Name: "Stalls", TotalCapacity: 100, BasePrice: types.EUR(5000),
	})
	if err != nil {
		t.Fatal(err)
	}
	tt, err := eng.CreateTicketType(ctx, boxoffice.CreateTicketTypeInput{Code: "adult", Name: "Adult"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := eng.CreateAllocation(ctx, boxoffice.CreateAllocationInput{
		SectionID: s.ID, TicketTypeID: tt.ID, Capacity: 100,
	}); err != nil {
		t.Fatal(err)
	}

	b, err := eng.Quote(ctx, boxoffice.QuoteInput{
		PerformanceID: p.ID, SectionName: "Stalls", TicketTypeID: tt.ID, Quantity: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if b.Currency != "eur" {
		t.Errorf("Currency: got %q, want eur", b.Currency)
	}
	if !b.FinalPrice.Equal(types.EUR(11500)) {
		t.Errorf("FinalPrice: got %v", b.FinalPrice)
	}
}

func TestQuoteUnknownSection(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	_, err := f.engine.Quote(ctx, boxoffice.QuoteInput{
		PerformanceID: f.perfID, SectionName: "Orchestra Pit", TicketTypeID: f.adult, Quantity: 1,
	})

	var calcErr *boxoffice.PriceCalculationError
	if !errors.As(err, &calcErr) {
		t.Fatalf("got %T, want *PriceCalculationError", err)
	}
	if !boxoffice.IsNotFound(err) {
		t.Errorf("cause should be a not-found error: %v", err)
	}
}

// promoRegistry is a promo validator with a fixed code table.
type promoRegistry struct {
	codes map[string]*pricing.Discount
}

func (p *promoRegistry) Name() string { return "promo-registry" }

func (p *promoRegistry) ValidatePromo(_ context.Context, code string, _ types.Money) (*pricing.Discount, error) {
	if d, ok := p.codes[code]; ok {
		return d, nil
	}
	return nil, errors.New("unknown code")
}

func TestQuotePromoValidatorPlugin(t *testing.T) {
	registry := &promoRegistry{codes: map[string]*pricing.Discount{
		"VIP20": {Type: pricing.DiscountPromoCode, Name: "VIP20", Amount: types.USD(2000)},
	}}
	f := newPricingFixture(t, boxoffice.WithPlugin(registry))
	ctx := context.Background()

	b, err := f.engine.Quote(ctx, boxoffice.QuoteInput{
		PerformanceID: f.perfID, SectionName: "Main Floor", TicketTypeID: f.adult,
		Quantity: 2, PromoCode: "VIP20",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !b.DiscountTotal.Equal(types.USD(2000)) {
		t.Errorf("validator discount: got %v, want $20.00", b.DiscountTotal)
	}

	// A rejected code fails the quote instead of silently falling back.
	_, err = f.engine.Quote(ctx, boxoffice.QuoteInput{
		PerformanceID: f.perfID, SectionName: "Main Floor", TicketTypeID: f.adult,
		Quantity: 2, PromoCode: "BOGUS",
	})
	if !errors.Is(err, boxoffice.ErrPromoRejected) {
		t.Errorf("got %v, want ErrPromoRejected", err)
	}
}

// regionalTaxes overrides the policy tax table.
type regionalTaxes struct{}

func (r *regionalTaxes) Name() string { return "regional-taxes" }

func (r *regionalTaxes) CalculateTaxes(_ context.Context, _ types.Money) ([]pricing.Tax, error) {
	return []pricing.Tax{{Name: "State tax", RateBps: 500}}, nil
}

func TestQuoteTaxCalculatorPlugin(t *testing.T) {
	f := newPricingFixture(t, boxoffice.WithPlugin(&regionalTaxes{}))
	ctx := context.Background()

	b, err := f.engine.Quote(ctx, boxoffice.QuoteInput{
		PerformanceID: f.perfID, SectionName: "Main Floor", TicketTypeID: f.adult, Quantity: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(b.Taxes) != 1 || b.Taxes[0].Name != "State tax" {
		t.Fatalf("taxes: %+v", b.Taxes)
	}
	// 5% on 105.50 replaces the default VAT.
	if !b.TaxesTotal.Equal(types.USD(528)) {
		t.Errorf("TaxesTotal: got %v", b.TaxesTotal)
	}
}

func TestQuoteNeverGoesNegative(t *testing.T) {
	registry := &promoRegistry{codes: map[string]*pricing.Discount{
		"EVERYTHING": {Type: pricing.DiscountPromoCode, Name: "Everything off", Amount: types.USD(10_000_000)},
	}}
	f := newPricingFixture(t, boxoffice.WithPlugin(registry))
	ctx := context.Background()

	b, err := f.engine.Quote(ctx, boxoffice.QuoteInput{
		PerformanceID: f.perfID, SectionName: "Main Floor", TicketTypeID: f.adult,
		Quantity: 1, PromoCode: "EVERYTHING",
	})
	if err != nil {
		t.Fatal(err)
	}
	if b.FinalPrice.IsNegative() {
		t.Errorf("FinalPrice went negative: %v", b.FinalPrice)
	}
	// Discount capped at the running amount.
	if !b.DiscountTotal.Equal(b.Subtotal) {
		t.Errorf("discount not clamped: %v vs subtotal %v", b.DiscountTotal, b.Subtotal)
	}
}

func TestListAvailableSections(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	sections, err := f.engine.ListAvailableSections(ctx, f.perfID, 60)
	if err != nil {
		t.Fatal(err)
	}
	// Only Main Floor (150 seats) fits 60; VIP has 50.
	if len(sections) != 1 || sections[0].Name != "Main Floor" {
		t.Errorf("sections fitting 60: %d", len(sections))
	}

	sections, err = f.engine.ListAvailableSections(ctx, f.perfID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 2 {
		t.Errorf("sections fitting 10: got %d, want 2", len(sections))
	}
}

func TestListAvailableOptions(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	opts, err := f.engine.ListAvailableOptions(ctx, f.perfID)
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 1 || opts[0].Name != "Parking" {
		t.Errorf("active options: %d", len(opts))
	}
}
