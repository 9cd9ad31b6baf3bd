package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountToDisplay(t *testing.T) {
	assert.True(t, AmountToDisplay(2500, "gbp").Equal(decimal.RequireFromString("25")))
	assert.True(t, AmountToDisplay(2550, "usd").Equal(decimal.RequireFromString("25.5")))
	assert.True(t, AmountToDisplay(1, "eur").Equal(decimal.RequireFromString("0.01")))

	// zero-decimal currencies are already in major units
	assert.True(t, AmountToDisplay(500, "jpy").Equal(decimal.RequireFromString("500")))
	assert.True(t, AmountToDisplay(500, "JPY").Equal(decimal.RequireFromString("500")))
}
