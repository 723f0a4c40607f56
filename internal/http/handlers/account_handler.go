package handlers

import (
	"github.com/givehub/backend/internal/http/dto"
	"github.com/givehub/backend/internal/repositories"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountHandler struct {
	accountRepo *repositories.AccountRepo
	log         *zap.Logger
}

func NewAccountHandler(accountRepo *repositories.AccountRepo, log *zap.Logger) *AccountHandler {
	return &AccountHandler{accountRepo: accountRepo, log: log}
}

func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid account id"})
	}

	account, err := h.accountRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: account})
}

func (h *AccountHandler) GetPoints(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid account id"})
	}

	account, err := h.accountRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.PointsResponse{
		AccountID:   account.ID.String(),
		TotalPoints: account.TotalPoints,
	}})
}
