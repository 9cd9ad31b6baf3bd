package webhook

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/givepoint/givepoint/internal/config"
	"github.com/givepoint/givepoint/internal/domain/campaign"
	ierr "github.com/givepoint/givepoint/internal/errors"
	gateway "github.com/givepoint/givepoint/internal/gateway/stripe"
	"github.com/givepoint/givepoint/internal/testutil"
	"github.com/givepoint/givepoint/internal/types"
	"github.com/stretchr/testify/suite"
	"github.com/stripe/stripe-go/v82"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"
)

const testWebhookSecret = "whsec_test_secret"

type HandlerTestSuite struct {
	testutil.BaseTestSuite
	handler *Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.BaseTestSuite.SetupTest()

	cfg := config.GetDefaultConfig()
	cfg.Stripe.SecretKey = "sk_test_123"
	cfg.Stripe.WebhookSecret = testWebhookSecret

	stores := s.GetStores()
	client := gateway.NewClient(cfg, s.GetLogger())
	s.handler = NewHandler(client,
		stores.DonationRepo,
		stores.SubscriptionRepo,
		stores.InvoiceRepo,
		stores.CampaignRepo,
		s.GetLogger())

	err := stores.CampaignRepo.Create(s.GetContext(), &campaign.Campaign{
		ID:        "camp_1",
		Name:      "Clean Water",
		BaseModel: types.GetDefaultBaseModel(),
	})
	s.NoError(err)
}

func (s *HandlerTestSuite) newEvent(eventType string, object map[string]any) *stripe.Event {
	raw, err := json.Marshal(object)
	s.NoError(err)
	return &stripe.Event{
		ID:      "evt_" + types.GenerateUUID(),
		Type:    stripe.EventType(eventType),
		Created: time.Now().Unix(),
		Data:    &stripe.EventData{Raw: raw},
	}
}

func (s *HandlerTestSuite) paymentIntentObject() map[string]any {
	return map[string]any{
		"id":       "pi_123",
		"amount":   int64(2500),
		"currency": "gbp",
		"customer": "cus_123",
		"metadata": map[string]string{
			"campaignId": "camp_1",
			"donorId":    "user_1",
			"donorName":  "Alex Donor",
			"isGiftAid":  "true",
			"platform":   "web",
		},
	}
}

func (s *HandlerTestSuite) invoiceObject(amountPaid int64) map[string]any {
	return map[string]any{
		"id":                 "in_123",
		"amount_paid":        amountPaid,
		"amount_due":         int64(1000),
		"currency":           "gbp",
		"customer":           "cus_123",
		"hosted_invoice_url": "https://pay.example.com/in_123",
		"parent": map[string]any{
			"subscription_details": map[string]any{
				"subscription": "sub_abc",
				"metadata": map[string]string{
					"campaignId": "camp_1",
					"donorId":    "user_1",
					"donorName":  "Alex Donor",
					"isGiftAid":  "false",
					"platform":   "ios",
				},
			},
		},
		"status_transitions": map[string]any{
			"paid_at": time.Now().Unix(),
		},
	}
}

func (s *HandlerTestSuite) TestParseEventValidSignature() {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{}}}`)
	now := time.Now()
	sig := stripewebhook.ComputeSignature(now, payload, testWebhookSecret)
	header := fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))

	event, err := s.handler.ParseEvent(payload, header)
	s.NoError(err)
	s.Equal("evt_1", event.ID)
}

func (s *HandlerTestSuite) TestParseEventBadSignature() {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	header := fmt.Sprintf("t=%d,v1=deadbeef", time.Now().Unix())

	_, err := s.handler.ParseEvent(payload, header)
	s.Error(err)
	s.True(ierr.IsSignature(err))
}

func (s *HandlerTestSuite) TestPaymentIntentSucceededRecordsDonation() {
	event := s.newEvent("payment_intent.succeeded", s.paymentIntentObject())

	err := s.handler.HandleEvent(s.GetContext(), event)
	s.NoError(err)

	don, err := s.GetStores().DonationRepo.GetByIntentID(s.GetContext(), "pi_123")
	s.NoError(err)
	s.Equal(int64(2500), don.Amount)
	s.Equal("camp_1", don.CampaignID)
	s.Equal("Alex Donor", don.DonorName)
	s.True(don.IsGiftAid)
	s.Equal(types.PaymentStatusSuccess, don.PaymentStatus)
	s.Equal(types.PlatformWeb, don.Platform)

	camp, err := s.GetStores().CampaignRepo.Get(s.GetContext(), "camp_1")
	s.NoError(err)
	s.Equal(int64(2500), camp.CollectedAmount)
	s.Equal(int64(1), camp.DonationCount)
	s.NotNil(camp.LastUpdated)
}

func (s *HandlerTestSuite) TestPaymentIntentReplayDoesNotDoubleCount() {
	event := s.newEvent("payment_intent.succeeded", s.paymentIntentObject())

	s.NoError(s.handler.HandleEvent(s.GetContext(), event))
	s.NoError(s.handler.HandleEvent(s.GetContext(), event))

	camp, err := s.GetStores().CampaignRepo.Get(s.GetContext(), "camp_1")
	s.NoError(err)
	s.Equal(int64(2500), camp.CollectedAmount)
	s.Equal(int64(1), camp.DonationCount)

	donations, err := s.GetStores().DonationRepo.ListByCampaign(s.GetContext(), "camp_1")
	s.NoError(err)
	s.Len(donations, 1)
}

func (s *HandlerTestSuite) TestPaymentIntentWithoutCampaignMetadataIsIgnored() {
	object := s.paymentIntentObject()
	object["metadata"] = map[string]string{}
	event := s.newEvent("payment_intent.succeeded", object)

	s.NoError(s.handler.HandleEvent(s.GetContext(), event))

	camp, err := s.GetStores().CampaignRepo.Get(s.GetContext(), "camp_1")
	s.NoError(err)
	s.Equal(int64(0), camp.CollectedAmount)
}

func (s *HandlerTestSuite) TestSubscriptionCreatedUpserts() {
	object := map[string]any{
		"id":                     "sub_abc",
		"customer":               "cus_123",
		"status":                 "active",
		"default_payment_method": "pm_123",
		"metadata": map[string]string{
			"campaignId": "camp_1",
			"donorId":    "user_1",
			"isGiftAid":  "true",
			"platform":   "ios",
		},
		"items": map[string]any{
			"data": []map[string]any{
				{
					"current_period_end": time.Now().Add(30 * 24 * time.Hour).Unix(),
					"price": map[string]any{
						"id":          "price_1",
						"unit_amount": int64(1000),
						"currency":    "gbp",
						"recurring": map[string]any{
							"interval":       "month",
							"interval_count": int64(3),
						},
					},
				},
			},
		},
	}
	event := s.newEvent("customer.subscription.created", object)

	s.NoError(s.handler.HandleEvent(s.GetContext(), event))

	sub, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), "sub_abc")
	s.NoError(err)
	s.Equal("active", sub.Status)
	s.Equal("camp_1", sub.CampaignID)
	s.Equal(types.BillingIntervalQuarterly, sub.Interval)
	s.Equal(int64(1000), sub.Amount)
	s.Equal("price_1", sub.PriceID)
	s.NotNil(sub.CurrentPeriodEnd)
	s.NotNil(sub.DefaultPaymentMethod)
	s.Equal("pm_123", *sub.DefaultPaymentMethod)
}

func (s *HandlerTestSuite) TestSubscriptionDeletedMergesStatusOnly() {
	created := map[string]any{
		"id":       "sub_abc",
		"customer": "cus_123",
		"status":   "active",
		"metadata": map[string]string{"campaignId": "camp_1", "donorId": "user_1"},
		"items": map[string]any{
			"data": []map[string]any{
				{
					"price": map[string]any{
						"id":          "price_1",
						"unit_amount": int64(1000),
						"currency":    "gbp",
						"recurring":   map[string]any{"interval": "month", "interval_count": int64(1)},
					},
				},
			},
		},
	}
	s.NoError(s.handler.HandleEvent(s.GetContext(), s.newEvent("customer.subscription.created", created)))

	// Deletion snapshot without metadata must not erase what we know
	deleted := map[string]any{
		"id":       "sub_abc",
		"customer": "cus_123",
		"status":   "canceled",
		"items":    map[string]any{"data": []map[string]any{}},
	}
	s.NoError(s.handler.HandleEvent(s.GetContext(), s.newEvent("customer.subscription.deleted", deleted)))

	sub, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), "sub_abc")
	s.NoError(err)
	s.Equal("canceled", sub.Status)
	s.Equal("camp_1", sub.CampaignID)
	s.Equal("price_1", sub.PriceID)
	s.Equal(int64(1000), sub.Amount)
}

func (s *HandlerTestSuite) TestInvoicePaymentSucceededRecordsDonation() {
	event := s.newEvent("invoice.payment_succeeded", s.invoiceObject(1000))

	s.NoError(s.handler.HandleEvent(s.GetContext(), event))

	don, err := s.GetStores().DonationRepo.GetByInvoiceID(s.GetContext(), "in_123")
	s.NoError(err)
	s.Equal(types.PaymentStatusSuccess, don.PaymentStatus)
	s.Equal(int64(1000), don.Amount)
	s.Equal(types.PlatformIOS, don.Platform)

	camp, err := s.GetStores().CampaignRepo.Get(s.GetContext(), "camp_1")
	s.NoError(err)
	s.Equal(int64(1000), camp.CollectedAmount)

	inv, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), "in_123")
	s.NoError(err)
	s.Equal("paid", inv.Status)
	s.Equal("sub_abc", inv.SubscriptionID)
	s.NotNil(inv.PaidAt)
}

func (s *HandlerTestSuite) TestInvoiceReplayDoesNotDoubleCount() {
	event := s.newEvent("invoice.payment_succeeded", s.invoiceObject(1000))

	s.NoError(s.handler.HandleEvent(s.GetContext(), event))
	s.NoError(s.handler.HandleEvent(s.GetContext(), event))

	camp, err := s.GetStores().CampaignRepo.Get(s.GetContext(), "camp_1")
	s.NoError(err)
	s.Equal(int64(1000), camp.CollectedAmount)
	s.Equal(int64(1), camp.DonationCount)
}

func (s *HandlerTestSuite) TestInvoiceFailureThenSuccessFlipsInPlace() {
	failObject := s.invoiceObject(0)
	failObject["last_finalization_error"] = map[string]any{"message": "card declined"}
	failObject["status_transitions"] = map[string]any{"paid_at": int64(0)}
	s.NoError(s.handler.HandleEvent(s.GetContext(), s.newEvent("invoice.payment_failed", failObject)))

	// Failure recorded, totals untouched
	don, err := s.GetStores().DonationRepo.GetByInvoiceID(s.GetContext(), "in_123")
	s.NoError(err)
	s.Equal(types.PaymentStatusFailed, don.PaymentStatus)
	s.NotNil(don.ErrorMessage)
	s.Equal("card declined", *don.ErrorMessage)

	camp, err := s.GetStores().CampaignRepo.Get(s.GetContext(), "camp_1")
	s.NoError(err)
	s.Equal(int64(0), camp.CollectedAmount)

	s.NoError(s.handler.HandleEvent(s.GetContext(), s.newEvent("invoice.payment_succeeded", s.invoiceObject(1000))))

	don, err = s.GetStores().DonationRepo.GetByInvoiceID(s.GetContext(), "in_123")
	s.NoError(err)
	s.Equal(types.PaymentStatusSuccess, don.PaymentStatus)
	s.Nil(don.ErrorMessage)
	s.Equal(int64(1000), don.Amount)

	camp, err = s.GetStores().CampaignRepo.Get(s.GetContext(), "camp_1")
	s.NoError(err)
	s.Equal(int64(1000), camp.CollectedAmount)
	s.Equal(int64(1), camp.DonationCount)

	donations, err := s.GetStores().DonationRepo.ListByCampaign(s.GetContext(), "camp_1")
	s.NoError(err)
	s.Len(donations, 1)
}

func (s *HandlerTestSuite) TestInvoiceFailureTracksSubscriptionStreak() {
	s.NoError(s.seedSubscription("sub_abc"))

	failObject := s.invoiceObject(0)
	failObject["last_finalization_error"] = map[string]any{"message": "card declined"}
	failObject["status_transitions"] = map[string]any{"paid_at": int64(0)}

	s.NoError(s.handler.HandleEvent(s.GetContext(), s.newEvent("invoice.payment_failed", failObject)))

	sub, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), "sub_abc")
	s.NoError(err)
	s.Equal(int64(1), sub.FailureCount)
	s.NotNil(sub.LastPaymentError)
	s.Equal("card declined", *sub.LastPaymentError)

	s.NoError(s.handler.HandleEvent(s.GetContext(), s.newEvent("invoice.payment_succeeded", s.invoiceObject(1000))))

	sub, err = s.GetStores().SubscriptionRepo.Get(s.GetContext(), "sub_abc")
	s.NoError(err)
	s.Equal(int64(0), sub.FailureCount)
	s.Nil(sub.LastPaymentError)
}

func (s *HandlerTestSuite) TestStaleFailureAfterSuccessIsIgnored() {
	s.NoError(s.handler.HandleEvent(s.GetContext(), s.newEvent("invoice.payment_succeeded", s.invoiceObject(1000))))

	failObject := s.invoiceObject(0)
	failObject["last_finalization_error"] = map[string]any{"message": "card declined"}
	s.NoError(s.handler.HandleEvent(s.GetContext(), s.newEvent("invoice.payment_failed", failObject)))

	don, err := s.GetStores().DonationRepo.GetByInvoiceID(s.GetContext(), "in_123")
	s.NoError(err)
	s.Equal(types.PaymentStatusSuccess, don.PaymentStatus)

	camp, err := s.GetStores().CampaignRepo.Get(s.GetContext(), "camp_1")
	s.NoError(err)
	s.Equal(int64(1000), camp.CollectedAmount)
}

func (s *HandlerTestSuite) TestUnknownEventTypeIsIgnored() {
	event := s.newEvent("charge.refunded", map[string]any{"id": "ch_1"})
	s.NoError(s.handler.HandleEvent(s.GetContext(), event))
}

func (s *HandlerTestSuite) seedSubscription(id string) error {
	object := map[string]any{
		"id":       id,
		"customer": "cus_123",
		"status":   "active",
		"metadata": map[string]string{"campaignId": "camp_1", "donorId": "user_1"},
		"items": map[string]any{
			"data": []map[string]any{
				{
					"price": map[string]any{
						"id":          "price_1",
						"unit_amount": int64(1000),
						"currency":    "gbp",
						"recurring":   map[string]any{"interval": "month", "interval_count": int64(1)},
					},
				},
			},
		},
	}
	return s.handler.HandleEvent(s.GetContext(), s.newEvent("customer.subscription.created", object))
}
