package validator

import (
	"github.com/erraggy/oascheck/oaserrors"
	"github.com/erraggy/oascheck/parser"
)

// Option is a function that configures a validation pass
type Option func(*validateConfig) error

// validateConfig holds configuration for a validation pass
type validateConfig struct {
	flags    Flags
	flagsSet bool
	extra    Flags
	logger   parser.Logger
}

// applyOptions applies option functions and fills in defaults
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		flags:  DefaultFlags,
		logger: parser.NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.flags = cfg.flags.With(cfg.extra)

	return cfg, nil
}

// WithFlags replaces the relaxation flags of the pass.
// Default: DefaultFlags
func WithFlags(flags Flags) Option {
	return func(cfg *validateConfig) error {
		if cfg.flagsSet {
			return &oaserrors.ConfigError{
				Option:  "WithFlags",
				Value:   flags.String(),
				Message: "flags were already set",
			}
		}
		cfg.flags = flags
		cfg.flagsSet = true
		return nil
	}
}

// WithFlag adds relaxation flags on top of WithFlags or the default set.
func WithFlag(flags ...Flags) Option {
	return func(cfg *validateConfig) error {
		cfg.extra = cfg.extra.With(flags...)
		return nil
	}
}

// WithLogger sets the logger for debug records of the pass.
// Default: parser.NopLogger
func WithLogger(logger parser.Logger) Option {
	return func(cfg *validateConfig) error {
		if logger == nil {
			return &oaserrors.ConfigError{Option: "WithLogger", Message: "logger must not be nil"}
		}
		cfg.logger = logger
		return nil
	}
}
