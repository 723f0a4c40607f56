package dto

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type DonationInitiatedResponse struct {
	Donation    any    `json:"donation"`
	CheckoutURL string `json:"checkout_url"`
}

type DonationRecordedResponse struct {
	Donation     any   `json:"donation"`
	PointsEarned int64 `json:"points_earned"`
	Replayed     bool  `json:"replayed"`
}

type FeeSummaryResponse struct {
	TotalFeeAmount int64 `json:"total_fee_amount"` // centavos
}

type PointsResponse struct {
	AccountID   string `json:"account_id"`
	TotalPoints int64  `json:"total_points"`
}
