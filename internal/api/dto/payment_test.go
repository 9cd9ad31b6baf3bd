package dto

import (
	"testing"

	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCreatePaymentIntentRequestValidate(t *testing.T) {
	valid := CreatePaymentIntentRequest{
		Amount:   2500,
		Currency: "gbp",
		Metadata: DonationMetadata{CampaignID: "camp_1"},
	}
	assert.NoError(t, valid.Validate())

	zeroAmount := valid
	zeroAmount.Amount = 0
	err := zeroAmount.Validate()
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	negativeAmount := valid
	negativeAmount.Amount = -100
	assert.Error(t, negativeAmount.Validate())

	noCurrency := valid
	noCurrency.Currency = ""
	assert.Error(t, noCurrency.Validate())
}

func TestCreateSubscriptionRequestValidate(t *testing.T) {
	valid := CreateSubscriptionRequest{
		CampaignID:      "camp_1",
		Interval:        types.BillingIntervalMonthly,
		Amount:          1000,
		PaymentMethodID: "pm_123",
	}
	assert.NoError(t, valid.Validate())

	badInterval := valid
	badInterval.Interval = "weekly"
	err := badInterval.Validate()
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	noCampaign := valid
	noCampaign.CampaignID = ""
	assert.Error(t, noCampaign.Validate())

	noPaymentMethod := valid
	noPaymentMethod.PaymentMethodID = ""
	assert.Error(t, noPaymentMethod.Validate())

	zeroAmount := valid
	zeroAmount.Amount = 0
	assert.Error(t, zeroAmount.Validate())
}

func TestDonationMetadataToGatewayMetadata(t *testing.T) {
	m := DonationMetadata{
		CampaignID: "camp_1",
		DonorID:    "user_1",
		DonorName:  "Alex Donor",
		IsGiftAid:  "true",
		Platform:   "web",
	}

	got := m.ToGatewayMetadata()
	assert.Equal(t, types.Metadata{
		"campaignId": "camp_1",
		"donorId":    "user_1",
		"donorName":  "Alex Donor",
		"isGiftAid":  "true",
		"platform":   "web",
	}, got)
}
