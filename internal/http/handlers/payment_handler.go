package handlers

import (
	"crypto/subtle"

	"github.com/givehub/backend/internal/config"
	"github.com/givehub/backend/internal/http/dto"
	"github.com/givehub/backend/internal/payments"
	"github.com/givehub/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentHandler receives the payment provider's webhook. It is the only
// unauthenticated write endpoint, gated by a shared callback secret, and
// it never trusts the callback body alone: the payment is re-fetched from
// the provider and the provider's amount and status are what get recorded.
type PaymentHandler struct {
	donationService *services.DonationService
	payments        *payments.Client
	cfg             *config.Config
	log             *zap.Logger
}

func NewPaymentHandler(donationService *services.DonationService, payments *payments.Client, cfg *config.Config, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{donationService: donationService, payments: payments, cfg: cfg, log: log}
}

func (h *PaymentHandler) Callback(c *fiber.Ctx) error {
	if h.cfg.PaymentCallbackSecret != "" {
		got := c.Get("X-Callback-Secret")
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.cfg.PaymentCallbackSecret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid callback secret"})
		}
	}

	var req dto.PaymentCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.PaymentRef == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "payment_ref is required"})
	}

	// The callback body is a hint, not evidence. Retrieve the payment from
	// the provider and record only what the provider confirms.
	payment, err := h.payments.GetPayment(c.Context(), req.PaymentRef)
	if err != nil {
		return respondErr(c, h.log, err)
	}
	if payment.Status != "paid" {
		// Failed or pending payments carry no financial effect; 200 so the
		// provider stops retrying.
		h.log.Info("ignoring callback for unpaid payment",
			zap.String("payment_ref", req.PaymentRef),
			zap.String("claimed_status", req.Status),
			zap.String("provider_status", payment.Status))
		return c.JSON(dto.SuccessResponse{OK: true})
	}
	if req.Amount != 0 && req.Amount != payment.Amount {
		h.log.Warn("callback amount disagrees with provider",
			zap.String("payment_ref", req.PaymentRef),
			zap.Int64("claimed_amount", req.Amount),
			zap.Int64("provider_amount", payment.Amount))
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "amount does not match payment provider record"})
	}

	var accountID, campaignID uuid.UUID
	if req.AccountID != "" {
		id, err := uuid.Parse(req.AccountID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid account_id"})
		}
		accountID = id
	}
	if req.CampaignID != "" {
		id, err := uuid.Parse(req.CampaignID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign_id"})
		}
		campaignID = id
	}

	result, err := h.donationService.Record(c.Context(), req.PaymentRef, accountID, campaignID, payment.Amount)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.DonationRecordedResponse{
		Donation:     result.Donation,
		PointsEarned: result.PointsEarned,
		Replayed:     result.Replayed,
	}})
}
