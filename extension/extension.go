// Package extension provides the Forge extension adapter for Boxoffice.
//
// It implements the forge.Extension interface to integrate Boxoffice
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.boxoffice" or
// "boxoffice" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/boxoffice"
	"github.com/xraph/boxoffice/pricing"
	"github.com/xraph/boxoffice/store"
	"github.com/xraph/boxoffice/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "boxoffice"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Event inventory and pricing engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Boxoffice as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *boxoffice.Engine
	store      store.Store
	engineOpts []boxoffice.Option
}

// New creates a new Boxoffice Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Boxoffice instance.
// This is nil until Register is called.
func (e *Extension) Engine() *boxoffice.Engine { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	opts := e.buildEngineOpts()

	e.engine = boxoffice.New(e.store, opts...)

	return vessel.Provide(fapp.Container(), func() (*boxoffice.Engine, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("boxoffice: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("boxoffice: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildEngineOpts constructs boxoffice.Option values from the resolved config.
func (e *Extension) buildEngineOpts() []boxoffice.Option {
	opts := make([]boxoffice.Option, 0, len(e.engineOpts)+2)

	if e.config.Currency != "" {
		policy := pricing.Default(e.config.Currency)
		if e.config.GroupDiscountBps > 0 {
			policy.GroupDiscountBps = e.config.GroupDiscountBps
		}
		if e.config.PromoDiscountBps > 0 {
			policy.PromoDiscountBps = e.config.PromoDiscountBps
		}
		opts = append(opts, boxoffice.WithPolicy(policy))
	}

	if e.config.LockTimeout > 0 {
		opts = append(opts, boxoffice.WithLockTimeout(e.config.LockTimeout))
	}

	// Append any pass-through engine options.
	opts = append(opts, e.engineOpts...)

	return opts
}

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("boxoffice: configuration is required but not found in config files; " +
				"ensure 'extensions.boxoffice' or 'boxoffice' key exists in your config")
		}
		e.config = mergeWithDefaults(programmaticConfig)
	} else {
		e.config = mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("boxoffice: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("currency", e.config.Currency),
		forge.F("lock_timeout", e.config.LockTimeout),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.boxoffice" first (namespaced pattern).
	if cm.IsSet("extensions.boxoffice") {
		if err := cm.Bind("extensions.boxoffice", &cfg); err == nil {
			e.Logger().Debug("boxoffice: loaded config from file",
				forge.F("key", "extensions.boxoffice"),
			)
			return cfg, true
		}
		e.Logger().Warn("boxoffice: failed to bind extensions.boxoffice config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "boxoffice" key.
	if cm.IsSet("boxoffice") {
		if err := cm.Bind("boxoffice", &cfg); err == nil {
			e.Logger().Debug("boxoffice: loaded config from file",
				forge.F("key", "boxoffice"),
			)
			return cfg, true
		}
		e.Logger().Warn("boxoffice: failed to bind boxoffice config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.Currency == "" {
		cfg.Currency = defaults.Currency
	}
	if cfg.LockTimeout == 0 {
		cfg.LockTimeout = defaults.LockTimeout
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence; programmatic values fill gaps.
func mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}
	if yamlConfig.Currency == "" && programmaticConfig.Currency != "" {
		yamlConfig.Currency = programmaticConfig.Currency
	}
	if yamlConfig.LockTimeout == 0 && programmaticConfig.LockTimeout != 0 {
		yamlConfig.LockTimeout = programmaticConfig.LockTimeout
	}
	if yamlConfig.GroupDiscountBps == 0 && programmaticConfig.GroupDiscountBps != 0 {
		yamlConfig.GroupDiscountBps = programmaticConfig.GroupDiscountBps
	}
	if yamlConfig.PromoDiscountBps == 0 && programmaticConfig.PromoDiscountBps != 0 {
		yamlConfig.PromoDiscountBps = programmaticConfig.PromoDiscountBps
	}

	return mergeWithDefaults(yamlConfig)
}
