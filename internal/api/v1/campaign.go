package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/givepoint/givepoint/internal/api/dto"
	"github.com/givepoint/givepoint/internal/domain/campaign"
	"github.com/givepoint/givepoint/internal/domain/donation"
	ierr "github.com/givepoint/givepoint/internal/errors"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/givepoint/givepoint/internal/types"
	"github.com/samber/lo"
)

// CampaignHandler exposes the read-side campaign endpoints.
type CampaignHandler struct {
	campaignRepo campaign.Repository
	donationRepo donation.Repository
	logger       *logger.Logger
}

func NewCampaignHandler(campaignRepo campaign.Repository, donationRepo donation.Repository, logger *logger.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaignRepo: campaignRepo,
		donationRepo: donationRepo,
		logger:       logger,
	}
}

// GetCampaign returns a campaign with its collection aggregates
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid campaign id").
			WithHint("Campaign id is required").
			Mark(ierr.ErrValidation))
		return
	}

	camp, err := h.campaignRepo.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.CampaignResponse{
		ID:              camp.ID,
		Name:            camp.Name,
		CollectedAmount: camp.CollectedAmount,
		DonationCount:   camp.DonationCount,
	})
}

// ListDonations returns the donation records of a campaign
func (h *CampaignHandler) ListDonations(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid campaign id").
			WithHint("Campaign id is required").
			Mark(ierr.ErrValidation))
		return
	}

	donations, err := h.donationRepo.ListByCampaign(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	items := lo.Map(donations, func(d *donation.Donation, _ int) dto.DonationResponse {
		return dto.DonationResponse{
			ID:            d.ID,
			Amount:        d.Amount,
			AmountDisplay: types.AmountToDisplay(d.Amount, d.Currency),
			Currency:      d.Currency,
			CampaignID:    d.CampaignID,
			DonorName:     d.DonorName,
			IsGiftAid:     d.IsGiftAid,
			PaymentStatus: d.PaymentStatus,
			Platform:      d.Platform,
			DonatedAt:     d.DonatedAt.UTC().Format(time.RFC3339),
		}
	})

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}
