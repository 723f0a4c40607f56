package handlers

import (
	"github.com/givehub/backend/internal/http/dto"
	"github.com/givehub/backend/internal/repositories"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RevenueHandler exposes the platform's fee ledger to admins.
type RevenueHandler struct {
	revenueRepo *repositories.RevenueRepo
	log         *zap.Logger
}

func NewRevenueHandler(revenueRepo *repositories.RevenueRepo, log *zap.Logger) *RevenueHandler {
	return &RevenueHandler{revenueRepo: revenueRepo, log: log}
}

func (h *RevenueHandler) ListByCampaign(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	entries, err := h.revenueRepo.ListByCampaign(c.Context(), campaignID)
	if err != nil {
		h.log.Error("list revenue failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}
