package models

import (
	"time"

	"github.com/google/uuid"
)

// Revenue is one platform-fee entry, written alongside each confirmed
// donation in the same transaction.
type Revenue struct {
	ID         uuid.UUID `json:"id"`
	DonationID uuid.UUID `json:"donation_id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	FeeAmount  int64     `json:"fee_amount"` // centavos
	NetAmount  int64     `json:"net_amount"` // centavos credited to the campaign
	CreatedAt  time.Time `json:"created_at"`
}
