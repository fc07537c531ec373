// Package pricing holds the price-breakdown model and the policy
// constants consumed by the quote calculator.
package pricing

import (
	"time"

	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/types"
)

// LineItemType tags a breakdown line for client-side itemized display.
type LineItemType string

const (
	LineItemOption        LineItemType = "option"
	LineItemGroupDiscount LineItemType = "group_discount"
	LineItemPromoDiscount LineItemType = "promo_discount"
	LineItemServiceFee    LineItemType = "service_fee"
	LineItemBookingFee    LineItemType = "booking_fee"
	LineItemProcessingFee LineItemType = "processing_fee"
	LineItemTax           LineItemType = "tax"
)

// LineItem is one itemized entry of a breakdown. RateBps is zero for
// flat-amount items; Quantity is zero except for option lines.
type LineItem struct {
	ID       id.LineItemID `json:"id"`
	Type     LineItemType  `json:"type"`
	Name     string        `json:"name"`
	RateBps  int64         `json:"rate_bps,omitempty"`
	Quantity int           `json:"quantity,omitempty"`
	Amount   types.Money   `json:"amount"`
}

// Breakdown is a fully itemized quote for a prospective booking. It is
// a value: computing it never mutates capacity, and a failed
// computation never yields a partial Breakdown.
type Breakdown struct {
	ID            id.QuoteID  `json:"id"`
	Currency      string      `json:"currency"`
	BasePrice     types.Money `json:"base_price"`
	ModifierBps   int64       `json:"modifier_bps"`
	UnitPrice     types.Money `json:"unit_price"`
	Quantity      int         `json:"quantity"`
	Subtotal      types.Money `json:"subtotal"`
	Options       []LineItem  `json:"options"`
	OptionsTotal  types.Money `json:"options_total"`
	Discounts     []LineItem  `json:"discounts"`
	DiscountTotal types.Money `json:"discount_total"`
	Fees          []LineItem  `json:"fees"`
	FeesTotal     types.Money `json:"fees_total"`
	Taxes         []LineItem  `json:"taxes"`
	TaxesTotal    types.Money `json:"taxes_total"`
	FinalPrice    types.Money `json:"final_price"`
	CreatedAt     time.Time   `json:"created_at"`
}

// DiscountType tags an applied discount rule.
type DiscountType string

const (
	DiscountGroupBooking DiscountType = "group_booking"
	DiscountPromoCode    DiscountType = "promo_code"
	DiscountEarlyBird    DiscountType = "early_bird"
)

// Discount is an applied discount rule. PercentBps and Amount are
// alternatives: a percentage rule leaves Amount zero and vice versa.
type Discount struct {
	Type           DiscountType `json:"type"`
	Name           string       `json:"name"`
	PercentBps     int64        `json:"percent_bps,omitempty"`
	Amount         types.Money  `json:"amount,omitempty"`
	MinAmount      types.Money  `json:"min_amount,omitempty"`
	MaxRedemptions int          `json:"max_redemptions,omitempty"`
	TimesRedeemed  int          `json:"times_redeemed,omitempty"`
	ValidFrom      *time.Time   `json:"valid_from,omitempty"`
	ValidUntil     *time.Time   `json:"valid_until,omitempty"`
}

// Applicable reports whether the rule qualifies against the running
// amount at the given instant.
func (d *Discount) Applicable(amount types.Money, now time.Time) bool {
	if d.MinAmount.Amount > 0 && !amount.GreaterThanOrEqual(d.MinAmount) {
		return false
	}
	if d.MaxRedemptions > 0 && d.TimesRedeemed >= d.MaxRedemptions {
		return false
	}
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidUntil != nil && now.After(*d.ValidUntil) {
		return false
	}
	return true
}

// AmountFor returns the discount value against the running amount.
func (d *Discount) AmountFor(amount types.Money) types.Money {
	if d.PercentBps > 0 {
		return amount.ApplyBps(d.PercentBps)
	}
	return d.Amount
}

// FeeMode selects how a fee is calculated.
type FeeMode string

const (
	FeeModePercentage FeeMode = "percentage"
	FeeModeFlat       FeeMode = "flat"
	FeeModePerUnit    FeeMode = "per_unit"
)

// Fee is a platform charge applied after discounts. The Minimum and
// Maximum clamps apply after the raw amount is computed.
type Fee struct {
	Type      LineItemType `json:"type"`
	Name      string       `json:"name"`
	Mode      FeeMode      `json:"mode"`
	RateBps   int64        `json:"rate_bps,omitempty"`
	Amount    types.Money  `json:"amount,omitempty"`
	Minimum   *types.Money `json:"minimum,omitempty"`
	Maximum   *types.Money `json:"maximum,omitempty"`
	Mandatory bool         `json:"mandatory"`
}

// AmountFor returns the clamped fee value against the running amount.
func (f Fee) AmountFor(running types.Money, quantity int) types.Money {
	var raw types.Money
	switch f.Mode {
	case FeeModePercentage:
		raw = running.ApplyBps(f.RateBps)
	case FeeModePerUnit:
		raw = f.Amount.Multiply(int64(quantity))
	default:
		raw = f.Amount
	}
	return raw.Clamp(f.Minimum, f.Maximum)
}

// Tax is a terminal additive rate applied to the amount after fees.
// Unlike a fee it carries no clamp.
type Tax struct {
	Name    string `json:"name"`
	RateBps int64  `json:"rate_bps"`
}

// AmountFor returns the tax value against the post-fee amount.
func (t Tax) AmountFor(base types.Money) types.Money {
	return base.ApplyBps(t.RateBps)
}
