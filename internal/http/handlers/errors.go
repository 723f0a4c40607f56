package handlers

import (
	"errors"

	"github.com/givehub/backend/internal/http/dto"
	"github.com/givehub/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondErr maps domain errors onto HTTP statuses: missing entities are
// 404, broken business rules and bad input are 400 with the rule that
// broke, and everything else (driver failures, provider outages) is a
// logged 500 that never leaks internals to the client.
func respondErr(c *fiber.Ctx, log *zap.Logger, err error) error {
	switch {
	case isNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
	case isBusinessRule(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrAccountNotFound) ||
		errors.Is(err, models.ErrCampaignNotFound) ||
		errors.Is(err, models.ErrDonationNotFound) ||
		errors.Is(err, models.ErrWithdrawalNotFound) ||
		errors.Is(err, models.ErrRewardNotFound)
}

func isBusinessRule(err error) bool {
	return errors.Is(err, models.ErrCampaignNotFundable) ||
		errors.Is(err, models.ErrFundingExceeded) ||
		errors.Is(err, models.ErrInvalidTransition) ||
		errors.Is(err, models.ErrNoFundsAvailable) ||
		errors.Is(err, models.ErrWithdrawalOutstanding) ||
		errors.Is(err, models.ErrAlreadyResolved) ||
		errors.Is(err, models.ErrInsufficientPoints) ||
		errors.Is(err, models.ErrRewardUnavailable) ||
		errors.Is(err, models.ErrDuplicatePayment) ||
		errors.Is(err, models.ErrInvalidInput)
}
