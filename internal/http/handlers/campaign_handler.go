package handlers

import (
	"strconv"

	"github.com/givehub/backend/internal/http/dto"
	"github.com/givehub/backend/internal/middleware"
	"github.com/givehub/backend/internal/repositories"
	"github.com/givehub/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, log: log}
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	campaign, err := h.campaignService.Create(c.Context(), services.CreateCampaignInput{
		BeneficiaryID: middleware.GetAccountID(c),
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		TargetFund:    req.TargetFund,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	})
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	campaign, err := h.campaignService.GetByID(c.Context(), id)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	filter := repositories.CampaignFilter{
		Limit:  20,
		Offset: 0,
	}

	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("approval_status"); v != "" {
		filter.ApprovalStatus = &v
	}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("beneficiary_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.BeneficiaryID = &id
		}
	}

	campaigns, err := h.campaignService.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list campaigns failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaigns})
}

func (h *CampaignHandler) ApproveCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	campaign, err := h.campaignService.Approve(c.Context(), middleware.GetAccountID(c), id)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) RejectCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	var req dto.RejectCampaignRequest
	if err := c.BodyParser(&req); err != nil || req.Notes == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "rejection notes are required"})
	}

	campaign, err := h.campaignService.Reject(c.Context(), middleware.GetAccountID(c), id, req.Notes)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}
