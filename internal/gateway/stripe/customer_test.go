package stripe

import (
	"context"
	"testing"

	"github.com/givepoint/givepoint/internal/config"
	"github.com/givepoint/givepoint/internal/domain/user"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/givepoint/givepoint/internal/testutil"
	"github.com/givepoint/givepoint/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCustomerReturnsCachedID(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Stripe.SecretKey = "sk_test_123"

	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)

	userRepo := testutil.NewInMemoryUserStore()
	require.NoError(t, userRepo.Create(context.Background(), &user.Account{
		ID:                "user_1",
		Email:             "alex@example.com",
		Name:              "Alex Donor",
		GatewayCustomerID: lo.ToPtr("cus_cached"),
		BaseModel:         types.GetDefaultBaseModel(),
	}))

	svc := NewCustomerService(NewClient(cfg, log), userRepo, log)

	// The cached id short-circuits before any gateway call
	customerID, err := svc.EnsureCustomer(context.Background(), "user_1", "alex@example.com", "Alex Donor")
	require.NoError(t, err)
	assert.Equal(t, "cus_cached", customerID)
}
