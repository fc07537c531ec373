package pricing

import (
	"testing"
	"time"

	"github.com/xraph/boxoffice/types"
)

func TestDiscountApplicable(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	now := time.Now()

	tests := []struct {
		name     string
		discount Discount
		amount   types.Money
		want     bool
	}{
		{
			"NoConstraints",
			Discount{Type: DiscountPromoCode, PercentBps: 500},
			types.USD(100), true,
		},
		{
			"ThresholdMet",
			Discount{Type: DiscountGroupBooking, MinAmount: types.USD(50000)},
			types.USD(50000), true,
		},
		{
			"ThresholdNotMet",
			Discount{Type: DiscountGroupBooking, MinAmount: types.USD(50000)},
			types.USD(49999), false,
		},
		{
			"RedemptionsLeft",
			Discount{Type: DiscountPromoCode, MaxRedemptions: 10, TimesRedeemed: 9},
			types.USD(100), true,
		},
		{
			"RedemptionsExhausted",
			Discount{Type: DiscountPromoCode, MaxRedemptions: 10, TimesRedeemed: 10},
			types.USD(100), false,
		},
		{
			"NotYetValid",
			Discount{Type: DiscountEarlyBird, ValidFrom: &future},
			types.USD(100), false,
		},
		{
			"Expired",
			Discount{Type: DiscountEarlyBird, ValidUntil: &past},
			types.USD(100), false,
		},
		{
			"InsideWindow",
			Discount{Type: DiscountEarlyBird, ValidFrom: &past, ValidUntil: &future},
			types.USD(100), true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.discount.Applicable(tt.amount, now); got != tt.want {
				t.Errorf("Applicable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscountAmountFor(t *testing.T) {
	percent := Discount{PercentBps: 1000}
	if got := percent.AmountFor(types.USD(60000)); !got.Equal(types.USD(6000)) {
		t.Errorf("10%% of $600.00: got %v", got)
	}

	flat := Discount{Amount: types.USD(2000)}
	if got := flat.AmountFor(types.USD(60000)); !got.Equal(types.USD(2000)) {
		t.Errorf("flat discount: got %v", got)
	}
}

func TestFeeAmountFor(t *testing.T) {
	min := types.USD(100)
	max := types.USD(500)

	tests := []struct {
		name     string
		fee      Fee
		running  types.Money
		quantity int
		want     types.Money
	}{
		{
			"Percentage",
			Fee{Mode: FeeModePercentage, RateBps: 300},
			types.USD(10000), 2, types.USD(300),
		},
		{
			"PercentageRounds",
			Fee{Mode: FeeModePercentage, RateBps: 300},
			types.USD(54000), 12, types.USD(1620),
		},
		{
			"Flat",
			Fee{Mode: FeeModeFlat, Amount: types.USD(250)},
			types.USD(10000), 2, types.USD(250),
		},
		{
			"PerUnit",
			Fee{Mode: FeeModePerUnit, Amount: types.USD(75)},
			types.USD(10000), 4, types.USD(300),
		},
		{
			"ClampedToMinimum",
			Fee{Mode: FeeModePercentage, RateBps: 300, Minimum: &min},
			types.USD(1000), 1, types.USD(100),
		},
		{
			"ClampedToMaximum",
			Fee{Mode: FeeModePercentage, RateBps: 300, Maximum: &max},
			types.USD(100000), 1, types.USD(500),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fee.AmountFor(tt.running, tt.quantity); !got.Equal(tt.want) {
				t.Errorf("AmountFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaxAmountFor(t *testing.T) {
	vat := Tax{Name: "VAT", RateBps: 900}
	if got := vat.AmountFor(types.USD(55870)); !got.Equal(types.USD(5028)) {
		t.Errorf("9%% of $558.70: got %v", got)
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := Default("eur")

	if p.Currency != "eur" {
		t.Errorf("Currency: got %q", p.Currency)
	}
	if p.GroupDiscountBps != 1000 || p.PromoDiscountBps != 500 {
		t.Errorf("discount rates: group %d, promo %d", p.GroupDiscountBps, p.PromoDiscountBps)
	}
	if !p.GroupDiscountThreshold.Equal(types.Money{Amount: 50000, Currency: "eur"}) {
		t.Errorf("group threshold: got %v", p.GroupDiscountThreshold)
	}
	if len(p.Fees) != 2 || len(p.Taxes) != 1 {
		t.Errorf("fee/tax tables: %d fees, %d taxes", len(p.Fees), len(p.Taxes))
	}
	if !p.Zero().IsZero() || p.Zero().Currency != "eur" {
		t.Errorf("Zero(): got %v", p.Zero())
	}

	// Empty currency falls back to usd.
	if got := Default("").Currency; got != "usd" {
		t.Errorf("default currency: got %q", got)
	}
}
