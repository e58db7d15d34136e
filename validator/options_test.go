package validator

import (
	"testing"

	"github.com/erraggy/oascheck/oaserrors"
	"github.com/erraggy/oascheck/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want Flags
	}{
		{name: "defaults", want: DefaultFlags},
		{name: "replace", opts: []Option{WithFlags(NoFlags)}, want: NoFlags},
		{name: "add to default", opts: []Option{WithFlag(IgnoreMissingTags)}, want: DefaultFlags | IgnoreMissingTags},
		{
			name: "add before replace",
			opts: []Option{WithFlag(IgnoreUnusedTags), WithFlags(IgnoreInvalidUrls)},
			want: IgnoreInvalidUrls | IgnoreUnusedTags,
		},
		{
			name: "add presets",
			opts: []Option{WithFlags(NoFlags), WithFlag(IgnoreUnused, IgnoreEmptyRequiredFields)},
			want: IgnoreUnused | IgnoreEmptyRequiredFields,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := applyOptions(tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.flags)
			assert.NotNil(t, cfg.logger)
		})
	}
}

func TestOptionErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "flags set twice", opts: []Option{WithFlags(NoFlags), WithFlags(DefaultFlags)}},
		{name: "nil logger", opts: []Option{WithLogger(nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := applyOptions(tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
		})
	}

	t.Run("surfaced by Validate", func(t *testing.T) {
		err := Validate(&testDoc{}, WithLogger(nil))
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
		assert.NotErrorIs(t, err, oaserrors.ErrValidation)
	})
}

func TestWithLogger(t *testing.T) {
	var logger parser.Logger = parser.NopLogger{}
	cfg, err := applyOptions(WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, logger, cfg.logger)
}
