package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=admin teacher student"`
	Note     string `json:"-" validate:"max=3"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		s := testPayload{FullName: "Jane", Email: "jane@example.com", Role: "teacher"}
		assert.NoError(t, ValidateStruct(&s))
	})

	t.Run("missing required field uses json name", func(t *testing.T) {
		s := testPayload{Email: "jane@example.com", Role: "teacher"}

		err := ValidateStruct(&s)
		require.Error(t, err)
		assert.True(t, IsValidationError(err))

		fields := GetValidationFields(err)
		assert.Equal(t, "fullName is required", fields["fullName"])
	})

	t.Run("invalid email", func(t *testing.T) {
		s := testPayload{FullName: "Jane", Email: "nope", Role: "teacher"}

		fields := GetValidationFields(ValidateStruct(&s))
		assert.Equal(t, "email must be a valid email", fields["email"])
	})

	t.Run("unknown role", func(t *testing.T) {
		s := testPayload{FullName: "Jane", Email: "jane@example.com", Role: "janitor"}

		fields := GetValidationFields(ValidateStruct(&s))
		assert.Equal(t, "role must be one of: admin teacher student", fields["role"])
	})

	t.Run("ignored json name falls back to field name", func(t *testing.T) {
		s := testPayload{FullName: "Jane", Email: "jane@example.com", Role: "admin", Note: "toolong"}

		fields := GetValidationFields(ValidateStruct(&s))
		assert.Equal(t, "Note must be at most 3", fields["Note"])
	})

	t.Run("multiple failures", func(t *testing.T) {
		err := ValidateStruct(&testPayload{})
		fields := GetValidationFields(err)
		assert.Len(t, fields, 3)
		assert.Equal(t, "Validation failed", err.Error())
	})
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(&ValidationError{Message: "x"}))
	assert.False(t, IsValidationError(errors.New("plain")))
	assert.False(t, IsValidationError(nil))
	assert.Nil(t, GetValidationFields(errors.New("plain")))
}
