package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBillingIntervalValidate(t *testing.T) {
	assert.NoError(t, BillingIntervalMonthly.Validate())
	assert.NoError(t, BillingIntervalQuarterly.Validate())
	assert.NoError(t, BillingIntervalYearly.Validate())
	assert.Error(t, BillingInterval("weekly").Validate())
	assert.Error(t, BillingInterval("").Validate())
}

func TestBillingIntervalBillingPeriod(t *testing.T) {
	tests := []struct {
		interval BillingInterval
		unit     string
		count    int64
	}{
		{BillingIntervalMonthly, "month", 1},
		{BillingIntervalQuarterly, "month", 3},
		{BillingIntervalYearly, "month", 12},
	}

	for _, tt := range tests {
		unit, count := tt.interval.BillingPeriod()
		assert.Equal(t, tt.unit, unit, string(tt.interval))
		assert.Equal(t, tt.count, count, string(tt.interval))
	}
}

func TestBillingIntervalFromPeriod(t *testing.T) {
	assert.Equal(t, BillingIntervalMonthly, BillingIntervalFromPeriod("month", 1))
	assert.Equal(t, BillingIntervalQuarterly, BillingIntervalFromPeriod("month", 3))
	assert.Equal(t, BillingIntervalYearly, BillingIntervalFromPeriod("month", 12))
	assert.Equal(t, BillingIntervalYearly, BillingIntervalFromPeriod("year", 1))
	// Unrecognised periods degrade to monthly
	assert.Equal(t, BillingIntervalMonthly, BillingIntervalFromPeriod("month", 2))
}

func TestPlatformIsCardPresent(t *testing.T) {
	assert.True(t, PlatformKiosk.IsCardPresent())
	assert.True(t, PlatformTapToPay.IsCardPresent())
	assert.False(t, PlatformWeb.IsCardPresent())
	assert.False(t, PlatformIOS.IsCardPresent())
	assert.False(t, PlatformAndroid.IsCardPresent())
}
