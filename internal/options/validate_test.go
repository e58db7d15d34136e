package options

import (
	"testing"

	"github.com/erraggy/oascheck/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSingleInputSource(t *testing.T) {
	t.Run("exactly one", func(t *testing.T) {
		assert.NoError(t, ValidateSingleInputSource("parser", false, true))
	})

	t.Run("none", func(t *testing.T) {
		err := ValidateSingleInputSource("parser", false, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
		assert.Contains(t, err.Error(), "must specify an input source")
	})

	t.Run("several", func(t *testing.T) {
		err := ValidateSingleInputSource("parser", true, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
		assert.Contains(t, err.Error(), "exactly one")
	})
}
