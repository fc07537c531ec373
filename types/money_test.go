package types

import (
	"encoding/json"
	"testing"
)

func TestMoneyConstructors(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		amount   int64
		currency string
		display  string
	}{
		{"USD", USD(5000), 5000, "usd", "$50.00"},
		{"EUR", EUR(12550), 12550, "eur", "€125.50"},
		{"GBP", GBP(9900), 9900, "gbp", "£99.00"},
		{"AUD", AUD(7550), 7550, "aud", "A$75.50"},
		{"Zero USD", Zero("USD"), 0, "usd", "$0.00"},
		{"Zero EUR", Zero("EUR"), 0, "eur", "€0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.money.Amount != tt.amount {
				t.Errorf("Amount: got %d, want %d", tt.money.Amount, tt.amount)
			}
			if tt.money.Currency != tt.currency {
				t.Errorf("Currency: got %s, want %s", tt.money.Currency, tt.currency)
			}
			if tt.money.String() != tt.display {
				t.Errorf("Display: got %s, want %s", tt.money.String(), tt.display)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Money
		expected Money
	}{
		{"Add", func() Money { return USD(100).Add(USD(200)) }, USD(300)},
		{"Subtract", func() Money { return USD(500).Subtract(USD(200)) }, USD(300)},
		{"Multiply", func() Money { return USD(5000).Multiply(2) }, USD(10000)},
		{"Negate", func() Money { return USD(100).Negate() }, USD(-100)},
		{"Chained", func() Money {
			return USD(1000).Add(USD(500)).Multiply(2).Subtract(USD(1000))
		}, USD(2000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMoneyApplyBps(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		bps      int64
		expected Money
	}{
		{"Identity", USD(5000), 10000, USD(5000)},
		{"ThreePercent", USD(54000), 300, USD(1620)},
		{"TenPercent", USD(60000), 1000, USD(6000)},
		{"NinePercent", USD(10000), 900, USD(900)},
		{"HalfRoundsUp", USD(101), 500, USD(5)},   // 5.05 → 5
		{"RoundUp", USD(111), 500, USD(6)},        // 5.55 → 6
		{"Modifier150", USD(5000), 15000, USD(7500)},
		{"NegativeBase", USD(-101), 500, USD(-5)},
		{"ZeroRate", USD(5000), 0, USD(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.money.ApplyBps(tt.bps)
			if !result.Equal(tt.expected) {
				t.Errorf("ApplyBps(%d): got %v, want %v", tt.bps, result, tt.expected)
			}
		})
	}
}

func TestMoneyClamp(t *testing.T) {
	minFee := USD(100)
	maxFee := USD(2500)

	tests := []struct {
		name     string
		money    Money
		min, max *Money
		expected Money
	}{
		{"WithinBounds", USD(500), &minFee, &maxFee, USD(500)},
		{"BelowMin", USD(50), &minFee, &maxFee, USD(100)},
		{"AboveMax", USD(9000), &minFee, &maxFee, USD(2500)},
		{"NoBounds", USD(9000), nil, nil, USD(9000)},
		{"OnlyMin", USD(50), &minFee, nil, USD(100)},
		{"OnlyMax", USD(9000), nil, &maxFee, USD(2500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.money.Clamp(tt.min, tt.max)
			if !result.Equal(tt.expected) {
				t.Errorf("Clamp: got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on currency mismatch")
		}
	}()
	_ = USD(100).Add(EUR(100))
}

func TestMoneyComparisons(t *testing.T) {
	if !USD(100).LessThan(USD(200)) {
		t.Error("100 should be less than 200")
	}
	if !USD(200).GreaterThanOrEqual(USD(200)) {
		t.Error("200 should be >= 200")
	}
	if !USD(0).IsZero() || USD(1).IsZero() {
		t.Error("IsZero misbehaving")
	}
	if !USD(1).IsPositive() || !USD(-1).IsNegative() {
		t.Error("sign checks misbehaving")
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(USD(5000))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Display  string `json:"display"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Amount != 5000 || decoded.Currency != "usd" || decoded.Display != "$50.00" {
		t.Errorf("unexpected JSON payload: %+v", decoded)
	}
}

func TestSum(t *testing.T) {
	total := Sum(USD(100), USD(200), USD(300))
	if !total.Equal(USD(600)) {
		t.Errorf("Sum: got %v, want %v", total, USD(600))
	}
}
