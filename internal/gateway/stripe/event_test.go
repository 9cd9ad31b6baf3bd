package stripe

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

func TestSubscriptionViewAccessorsWithItems(t *testing.T) {
	periodEnd := time.Date(2026, 9, 28, 12, 0, 0, 0, time.UTC)
	raw := map[string]any{
		"id":       "sub_1",
		"customer": "cus_1",
		"status":   "active",
		"items": map[string]any{
			"data": []map[string]any{
				{
					"current_period_end": periodEnd.Unix(),
					"price": map[string]any{
						"id":          "price_1",
						"unit_amount": int64(1500),
						"currency":    "gbp",
						"recurring": map[string]any{
							"interval":       "month",
							"interval_count": int64(12),
						},
					},
				},
			},
		},
	}

	var view SubscriptionView
	decodeInto(t, raw, &view)

	assert.Equal(t, "price_1", view.PriceID())
	assert.Equal(t, int64(1500), view.Amount())
	assert.Equal(t, "gbp", view.Currency())

	unit, count := view.Interval()
	assert.Equal(t, "month", unit)
	assert.Equal(t, int64(12), count)

	require.NotNil(t, view.CurrentPeriodEnd())
	assert.Equal(t, periodEnd, *view.CurrentPeriodEnd())
}

func TestSubscriptionViewAccessorsWithoutItems(t *testing.T) {
	var view SubscriptionView
	decodeInto(t, map[string]any{"id": "sub_1", "status": "canceled"}, &view)

	assert.Equal(t, "", view.PriceID())
	assert.Equal(t, int64(0), view.Amount())
	assert.Equal(t, "", view.Currency())
	assert.Nil(t, view.CurrentPeriodEnd())
}

func TestInvoiceViewAccessors(t *testing.T) {
	paidAt := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)
	raw := map[string]any{
		"id":          "in_1",
		"amount_paid": int64(1000),
		"currency":    "gbp",
		"parent": map[string]any{
			"subscription_details": map[string]any{
				"subscription": "sub_1",
				"metadata":     map[string]string{"campaignId": "camp_1"},
			},
		},
		"status_transitions": map[string]any{"paid_at": paidAt.Unix()},
	}

	var view InvoiceView
	decodeInto(t, raw, &view)

	assert.Equal(t, "sub_1", view.SubscriptionID())
	assert.Equal(t, "camp_1", view.SubscriptionMetadata()["campaignId"])
	require.NotNil(t, view.PaidAt())
	assert.Equal(t, paidAt, *view.PaidAt())
	assert.Equal(t, "payment failed", view.FailureMessage())
}

func TestInvoiceViewOneOffInvoice(t *testing.T) {
	var view InvoiceView
	decodeInto(t, map[string]any{"id": "in_1", "amount_due": int64(500)}, &view)

	assert.Equal(t, "", view.SubscriptionID())
	assert.Nil(t, view.SubscriptionMetadata())
	assert.Nil(t, view.PaidAt())
}

func TestInvoiceViewFailureMessage(t *testing.T) {
	var view InvoiceView
	decodeInto(t, map[string]any{
		"id":                      "in_1",
		"last_finalization_error": map[string]any{"message": "card declined"},
	}, &view)

	assert.Equal(t, "card declined", view.FailureMessage())
}

func decodeInto(t *testing.T, object map[string]any, v any) {
	t.Helper()
	raw, err := json.Marshal(object)
	require.NoError(t, err)
	event := &stripe.Event{ID: "evt_1", Data: &stripe.EventData{Raw: raw}}
	require.NoError(t, DecodeEventObject(event, v))
}
