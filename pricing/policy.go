package pricing

import "github.com/xraph/boxoffice/types"

// Policy holds the numeric pricing constants for one deployment or
// region: discount thresholds and rates, fee definitions, tax rates.
// It is an immutable value injected into the engine — never
// process-wide state — so tenants in different regions can run
// different policies concurrently without cross-contamination.
type Policy struct {
	Currency string

	// Group-booking discount: applied when the booking is flagged as a
	// group and the running amount reaches the threshold. GroupMinSize,
	// when positive, additionally requires at least that many tickets.
	GroupDiscountThreshold types.Money
	GroupDiscountBps       int64
	GroupMinSize           int
	GroupMaxSize           int

	// Promo-code discount rate used when no PromoValidator plugin is
	// registered to resolve the code against a real registry.
	PromoDiscountBps int64

	Fees  []Fee
	Taxes []Tax
}

// Default returns the platform reference policy in the given currency:
// 10% group discount over 500.00, 5% promo fallback, 3% service fee,
// 2.50 flat booking fee, 9% VAT.
func Default(currency string) Policy {
	if currency == "" {
		currency = "usd"
	}
	return Policy{
		Currency:               currency,
		GroupDiscountThreshold: types.Money{Amount: 50000, Currency: currency},
		GroupDiscountBps:       1000,
		PromoDiscountBps:       500,
		Fees: []Fee{
			{
				Type:      LineItemServiceFee,
				Name:      "Service fee",
				Mode:      FeeModePercentage,
				RateBps:   300,
				Mandatory: true,
			},
			{
				Type:      LineItemBookingFee,
				Name:      "Booking fee",
				Mode:      FeeModeFlat,
				Amount:    types.Money{Amount: 250, Currency: currency},
				Mandatory: true,
			},
		},
		Taxes: []Tax{
			{Name: "VAT", RateBps: 900},
		},
	}
}

// Zero returns the policy's zero Money value.
func (p Policy) Zero() types.Money {
	return types.Zero(p.Currency)
}
