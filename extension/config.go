package extension

import "time"

// Config holds the Boxoffice extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.boxoffice" or "boxoffice" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// Currency is the policy currency code (default: "usd").
	Currency string `json:"currency" mapstructure:"currency" yaml:"currency"`

	// LockTimeout bounds how long a capacity mutation waits for its
	// per-section lock (default: 3s).
	LockTimeout time.Duration `json:"lock_timeout" mapstructure:"lock_timeout" yaml:"lock_timeout"`

	// GroupDiscountBps overrides the default group discount rate in
	// basis points when positive.
	GroupDiscountBps int64 `json:"group_discount_bps" mapstructure:"group_discount_bps" yaml:"group_discount_bps"`

	// PromoDiscountBps overrides the default promo fallback rate in
	// basis points when positive.
	PromoDiscountBps int64 `json:"promo_discount_bps" mapstructure:"promo_discount_bps" yaml:"promo_discount_bps"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Currency:    "usd",
		LockTimeout: 3 * time.Second,
	}
}
