package testutil

import (
	"context"
	"time"

	"github.com/givepoint/givepoint/internal/config"
	"github.com/givepoint/givepoint/internal/domain/campaign"
	"github.com/givepoint/givepoint/internal/domain/donation"
	"github.com/givepoint/givepoint/internal/domain/invoice"
	"github.com/givepoint/givepoint/internal/domain/subscription"
	"github.com/givepoint/givepoint/internal/domain/user"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/givepoint/givepoint/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	UserRepo         user.Repository
	CampaignRepo     campaign.Repository
	DonationRepo     donation.Repository
	SubscriptionRepo subscription.Repository
	InvoiceRepo      invoice.Repository
}

// BaseTestSuite provides common functionality for service test suites
type BaseTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseTestSuite) SetupSuite() {
	cfg := config.GetDefaultConfig()

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseTestSuite) SetupTest() {
	s.ctx = context.WithValue(context.Background(), types.CtxRequestID, types.GenerateUUID())
	s.stores = Stores{
		UserRepo:         NewInMemoryUserStore(),
		CampaignRepo:     NewInMemoryCampaignStore(),
		DonationRepo:     NewInMemoryDonationStore(),
		SubscriptionRepo: NewInMemorySubscriptionStore(),
		InvoiceRepo:      NewInMemoryInvoiceStore(),
	}
	s.now = time.Now().UTC()
}

// GetContext returns the test context
func (s *BaseTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the test repositories
func (s *BaseTestSuite) GetStores() Stores {
	return s.stores
}

// GetLogger returns the test logger
func (s *BaseTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the test configuration
func (s *BaseTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// Now returns the time captured at test setup
func (s *BaseTestSuite) Now() time.Time {
	return s.now
}
