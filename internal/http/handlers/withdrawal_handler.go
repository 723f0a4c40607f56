package handlers

import (
	"github.com/givehub/backend/internal/http/dto"
	"github.com/givehub/backend/internal/middleware"
	"github.com/givehub/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WithdrawalHandler struct {
	withdrawalService *services.WithdrawalService
	log               *zap.Logger
}

func NewWithdrawalHandler(withdrawalService *services.WithdrawalService, log *zap.Logger) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalService: withdrawalService, log: log}
}

func (h *WithdrawalHandler) RequestWithdrawal(c *fiber.Ctx) error {
	var req dto.RequestWithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign_id"})
	}

	withdrawal, err := h.withdrawalService.Request(c.Context(), services.RequestWithdrawalInput{
		CampaignID:  campaignID,
		AccountID:   middleware.GetAccountID(c),
		BankName:    req.BankName,
		BankAccount: req.BankAccount,
	})
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: withdrawal})
}

func (h *WithdrawalHandler) ApproveWithdrawal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid withdrawal id"})
	}

	withdrawal, err := h.withdrawalService.Approve(c.Context(), middleware.GetAccountID(c), id)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: withdrawal})
}

func (h *WithdrawalHandler) RejectWithdrawal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid withdrawal id"})
	}

	var req dto.RejectWithdrawalRequest
	_ = c.BodyParser(&req) // notes are optional

	withdrawal, err := h.withdrawalService.Reject(c.Context(), middleware.GetAccountID(c), id, req.Notes)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: withdrawal})
}

func (h *WithdrawalHandler) SubmitTestimony(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid withdrawal id"})
	}

	var req dto.SubmitTestimonyRequest
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "text is required"})
	}

	if err := h.withdrawalService.SubmitTestimony(c.Context(), middleware.GetAccountID(c), id, req.Text); err != nil {
		return respondErr(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *WithdrawalHandler) GetWithdrawal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid withdrawal id"})
	}

	withdrawal, err := h.withdrawalService.GetByID(c.Context(), id)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: withdrawal})
}

func (h *WithdrawalHandler) ListByCampaign(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	withdrawals, err := h.withdrawalService.ListByCampaign(c.Context(), campaignID)
	if err != nil {
		h.log.Error("list withdrawals failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: withdrawals})
}
