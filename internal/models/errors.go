package models

import "errors"

var (
	ErrAccountNotFound       = errors.New("account not found")
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrDonationNotFound      = errors.New("donation not found")
	ErrWithdrawalNotFound    = errors.New("withdrawal request not found")
	ErrRewardNotFound        = errors.New("reward not found")
	ErrCampaignNotFundable   = errors.New("campaign is not accepting donations")
	ErrFundingExceeded       = errors.New("donation amount exceeds the campaign's target fund")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrNoFundsAvailable      = errors.New("no funds available for withdrawal")
	ErrWithdrawalOutstanding = errors.New("campaign already has a pending withdrawal request")
	ErrAlreadyResolved       = errors.New("withdrawal request is already resolved")
	ErrInsufficientPoints    = errors.New("insufficient points")
	ErrRewardUnavailable     = errors.New("reward is not available for redemption")
	ErrDuplicatePayment      = errors.New("payment reference already recorded")

	// ErrInvalidInput tags request validation failures so the HTTP layer
	// can tell them apart from infrastructure errors. Services wrap it:
	// fmt.Errorf("%w: bank name is required", ErrInvalidInput).
	ErrInvalidInput = errors.New("invalid input")
)
