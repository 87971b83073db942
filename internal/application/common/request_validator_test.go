package common

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rateRequest struct {
	Good string          `validate:"required"`
	Rate decimal.Decimal `validate:"gt=0"`
}

func TestRequestValidator_DecimalRules(t *testing.T) {
	validator := NewRequestValidator()

	assert.NoError(t, validator.Validate(&rateRequest{Good: "Beer", Rate: decimal.RequireFromString("0.01")}))

	err := validator.Validate(&rateRequest{Good: "Beer", Rate: decimal.Zero})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Rate' failed validation: gt")
}

func TestRequestValidator_CollectsEveryField(t *testing.T) {
	err := NewRequestValidator().Validate(&rateRequest{Rate: decimal.NewFromInt(-1)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Good' failed validation: required")
	assert.Contains(t, err.Error(), "field 'Rate' failed validation: gt")
}
