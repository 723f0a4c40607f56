package handlers

import (
	"github.com/givehub/backend/internal/http/dto"
	"github.com/givehub/backend/internal/middleware"
	"github.com/givehub/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RewardHandler struct {
	rewardService *services.RewardService
	log           *zap.Logger
}

func NewRewardHandler(rewardService *services.RewardService, log *zap.Logger) *RewardHandler {
	return &RewardHandler{rewardService: rewardService, log: log}
}

func (h *RewardHandler) CreateReward(c *fiber.Ctx) error {
	var req dto.CreateRewardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	reward, err := h.rewardService.Create(c.Context(), middleware.GetAccountID(c), services.CreateRewardInput{
		Name:        req.Name,
		Description: req.Description,
		PointCost:   req.PointCost,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: reward})
}

func (h *RewardHandler) ListRewards(c *fiber.Ctx) error {
	activeOnly := c.Query("all") == ""

	rewards, err := h.rewardService.List(c.Context(), activeOnly)
	if err != nil {
		h.log.Error("list rewards failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: rewards})
}

func (h *RewardHandler) RedeemReward(c *fiber.Ctx) error {
	rewardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid reward id"})
	}

	var req dto.RedeemRewardRequest
	if err := c.BodyParser(&req); err != nil || req.ShippingAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "shipping_address is required"})
	}

	redemption, err := h.rewardService.Redeem(c.Context(), middleware.GetAccountID(c), rewardID, req.ShippingAddress)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: redemption})
}
