// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RovingMaxScore caps each criterion value a roving judge may submit.
	RovingMaxScore int `koanf:"roving_max_score"`

	// SeedOnEmpty installs the bundled fixtures when the store starts empty.
	SeedOnEmpty bool `koanf:"seed_on_empty"`
}

// New creates a Config with defaults applied.
func New() *Config {
	c := &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		RovingMaxScore: 5,
		SeedOnEmpty:    true,
	}
	return c
}
