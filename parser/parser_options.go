package parser

import (
	"io"

	"github.com/erraggy/oascheck/internal/options"
	"github.com/erraggy/oascheck/oaserrors"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	reader io.Reader
	bytes  []byte

	strictFields bool
	logger       Logger
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		logger: NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource("parser", cfg.reader != nil, cfg.bytes != nil); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "WithReader", Message: "reader must not be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.bytes = data
		return nil
	}
}

// WithStrictFields rejects keys that are neither fixed fields nor "x-"
// extensions. By default such keys are dropped.
// Default: false
func WithStrictFields(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.strictFields = enabled
		return nil
	}
}

// WithLogger sets the logger for debug output.
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}
