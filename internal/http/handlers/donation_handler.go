package handlers

import (
	"strconv"

	"github.com/givehub/backend/internal/http/dto"
	"github.com/givehub/backend/internal/middleware"
	"github.com/givehub/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DonationHandler struct {
	donationService *services.DonationService
	log             *zap.Logger
}

func NewDonationHandler(donationService *services.DonationService, log *zap.Logger) *DonationHandler {
	return &DonationHandler{donationService: donationService, log: log}
}

func (h *DonationHandler) CreateDonation(c *fiber.Ctx) error {
	var req dto.CreateDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign_id"})
	}
	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "amount must be positive"})
	}

	accountID := middleware.GetAccountID(c)
	donation, checkoutURL, err := h.donationService.Initiate(c.Context(), accountID, campaignID, req.Amount)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: dto.DonationInitiatedResponse{
		Donation:    donation,
		CheckoutURL: checkoutURL,
	}})
}

func (h *DonationHandler) GetDonation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid donation id"})
	}

	donation, err := h.donationService.GetByID(c.Context(), id)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: donation})
}

func (h *DonationHandler) ListByCampaign(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	limit, offset := 20, 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}

	donations, err := h.donationService.ListByCampaign(c.Context(), campaignID, limit, offset)
	if err != nil {
		h.log.Error("list donations failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: donations})
}

// GetFeeSummary reports cumulative platform fee income. Admin only.
func (h *DonationHandler) GetFeeSummary(c *fiber.Ctx) error {
	total, err := h.donationService.TotalFees(c.Context())
	if err != nil {
		h.log.Error("fee summary failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.FeeSummaryResponse{TotalFeeAmount: total}})
}
