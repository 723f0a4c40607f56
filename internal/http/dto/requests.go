package dto

import "time"

type CreateDonationRequest struct {
	CampaignID string `json:"campaign_id"`
	Amount     int64  `json:"amount"` // centavos
}

// PaymentCallbackRequest is the provider's webhook body. account_id,
// campaign_id and amount are only consulted when no unpaid donation row
// carries the reference.
type PaymentCallbackRequest struct {
	PaymentRef string `json:"payment_ref"`
	Status     string `json:"status"`
	AccountID  string `json:"account_id,omitempty"`
	CampaignID string `json:"campaign_id,omitempty"`
	Amount     int64  `json:"amount,omitempty"` // centavos
}

type CreateCampaignRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    *string   `json:"category,omitempty"`
	TargetFund  int64     `json:"target_fund"` // centavos
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type RejectCampaignRequest struct {
	Notes string `json:"notes"`
}

type RequestWithdrawalRequest struct {
	CampaignID  string `json:"campaign_id"`
	BankName    string `json:"bank_name"`
	BankAccount string `json:"bank_account"`
}

type RejectWithdrawalRequest struct {
	Notes string `json:"notes"`
}

type SubmitTestimonyRequest struct {
	Text string `json:"text"`
}

type CreateRewardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PointCost   int64  `json:"point_cost"`
	Quantity    int    `json:"quantity"`
}

type RedeemRewardRequest struct {
	ShippingAddress string `json:"shipping_address"`
}
