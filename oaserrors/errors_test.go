package oaserrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &DecodeError{
			Path:    "paths./pets",
			Line:    42,
			Column:  10,
			Message: "duplicate field `x-a`",
			Cause:   cause,
		}
		assert.Equal(t, "decode error at paths./pets (line 42, column 10): duplicate field `x-a`: underlying error", err.Error())
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &DecodeError{}
		assert.Equal(t, "decode error", err.Error())
	})

	t.Run("Error message with line only", func(t *testing.T) {
		err := &DecodeError{Line: 10, Message: "boom"}
		assert.Equal(t, "decode error (line 10): boom", err.Error())
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &DecodeError{Cause: cause}
		assert.Same(t, cause, err.Unwrap())
		assert.Nil(t, (&DecodeError{}).Unwrap())
	})

	t.Run("Is matches sentinel through wrapping", func(t *testing.T) {
		err := fmt.Errorf("parser: %w", &DecodeError{Message: "x"})
		assert.ErrorIs(t, err, ErrDecode)
		assert.NotErrorIs(t, err, ErrValidation)
	})
}

func TestReferenceError(t *testing.T) {
	notFound := &ReferenceError{Ref: "#/components/schemas/Pet"}
	assert.Equal(t, "reference `#/components/schemas/Pet` not found", notFound.Error())
	assert.ErrorIs(t, notFound, ErrReference)
	assert.NotErrorIs(t, notFound, ErrExternalReference)

	external := &ReferenceError{Ref: "other.yaml#/Pet", External: true}
	assert.Equal(t, "resolving of an external reference `other.yaml#/Pet` is not supported", external.Error())
	assert.ErrorIs(t, external, ErrReference)
	assert.ErrorIs(t, external, ErrExternalReference)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Errors: []string{
		"#.info.title: must not be empty",
		"#/components/schemas/Pet: unused",
	}}
	assert.Equal(t, "2 errors found:\n- #.info.title: must not be empty\n- #/components/schemas/Pet: unused\n", err.Error())
	assert.ErrorIs(t, err, ErrValidation)

	var target *ValidationError
	wrapped := fmt.Errorf("validator: %w", err)
	if assert.ErrorAs(t, wrapped, &target) {
		assert.Len(t, target.Errors, 2)
	}
}

func TestConfigError(t *testing.T) {
	cause := errors.New("root cause")
	err := &ConfigError{Option: "WithFlags", Value: 42, Message: "bad", Cause: cause}
	assert.Equal(t, "configuration error for WithFlags (value: 42): bad: root cause", err.Error())
	assert.ErrorIs(t, err, ErrConfig)
	assert.Same(t, cause, err.Unwrap())
	assert.Equal(t, "configuration error", (&ConfigError{}).Error())
}
