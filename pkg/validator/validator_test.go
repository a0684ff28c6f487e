package validator

import (
	"errors"
	"testing"

	playground "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type policyForm struct {
	Name    string `validate:"required"`
	Summary string `validate:"required"`
	Level   string `validate:"required,oneof=NATIONAL VILLAGE"`
	Email   string `validate:"omitempty,email"`
}

func TestFormatValidationErrorNamesEveryField(t *testing.T) {
	v := playground.New()

	err := v.Struct(policyForm{Level: "COUNTY"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "summary is required")
	assert.Contains(t, msg, "level must be one of: NATIONAL VILLAGE")
}

func TestFormatValidationErrorEmail(t *testing.T) {
	v := playground.New()

	err := v.Struct(policyForm{Name: "n", Summary: "s", Level: "NATIONAL", Email: "not-an-email"})
	require.Error(t, err)

	assert.Contains(t, FormatValidationError(err), "must be a valid email address")
}

func TestFormatValidationErrorPassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.Equal(t, "boom", FormatValidationError(plain))
}

func TestMissingFields(t *testing.T) {
	v := playground.New()

	err := v.Struct(policyForm{Level: "NATIONAL"})
	require.Error(t, err)

	missing := MissingFields(err)
	assert.ElementsMatch(t, []string{"name", "summary"}, missing)
}
