// Package config holds the static startup configuration for cgtop.
// Everything here is resolved before any worker goroutine starts and is
// read-only afterwards.
package config

import (
	"strings"
	"time"

	"github.com/rileyhilliard/cgtop/internal/errors"
	"github.com/spf13/viper"
)

// DefaultRoot is the standard cgroup v2 mount point.
const DefaultRoot = "/sys/fs/cgroup"

// MockEnvVar forces synthetic-data mode when set to a truthy value,
// independent of whether the real root is readable. Used for demos and
// sandboxed test environments.
const MockEnvVar = "CGTOP_USE_MOCK"

// Config is the resolved startup configuration.
type Config struct {
	// Root is the cgroup hierarchy root to monitor.
	Root string `mapstructure:"root"`
	// CollectInterval is the cadence of collection cycles.
	CollectInterval time.Duration `mapstructure:"collect_interval"`
	// CleanupInterval is the cadence of history-prune cycles.
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	// HistorySize is the number of samples retained per group.
	HistorySize int `mapstructure:"history_size"`
	// RenderInterval bounds how long the coordinator waits for events
	// before drawing a frame anyway.
	RenderInterval time.Duration `mapstructure:"render_interval"`
	// ShutdownGrace bounds how long the coordinator waits for workers
	// to stop before forcing exit.
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`
	// ForceFallback unconditionally enables synthetic-data mode.
	ForceFallback bool `mapstructure:"force_fallback"`
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
}

// Load resolves the configuration from defaults and CGTOP_* environment
// variables. Flag values are applied on top by the CLI.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("cgtop")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid configuration",
			"Check CGTOP_* environment variable values")
	}

	// CGTOP_USE_MOCK is the documented switch for synthetic data; keep it
	// separate from the viper key so any truthy spelling works.
	if truthy(v.GetString("use_mock")) {
		cfg.ForceFallback = true
	}

	if cfg.CollectInterval < 100*time.Millisecond {
		return nil, errors.New(errors.ErrConfig,
			"Collection interval too short",
			"Minimum interval is 100ms to avoid hammering the cgroup filesystem")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root", DefaultRoot)
	v.SetDefault("collect_interval", "2s")
	v.SetDefault("cleanup_interval", "30s")
	v.SetDefault("history_size", 60)
	v.SetDefault("render_interval", "250ms")
	v.SetDefault("shutdown_grace", "3s")
	v.SetDefault("force_fallback", false)
	v.SetDefault("verbose", false)
}

// truthy reports whether an environment value means "on".
func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	}
	return false
}
