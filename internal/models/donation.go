package models

import (
	"time"

	"github.com/google/uuid"
)

// Donation statuses. A donation is created unpaid when the donor is sent
// to checkout and becomes confirmed when the payment provider reports
// success. Confirmed donations are immutable.
const (
	DonationStatusUnpaid    = "unpaid"
	DonationStatusConfirmed = "confirmed"
)

type Donation struct {
	ID          uuid.UUID `json:"id"`
	AccountID   uuid.UUID `json:"account_id"`
	CampaignID  uuid.UUID `json:"campaign_id"`
	GrossAmount int64     `json:"gross_amount"` // centavos
	FeeAmount   int64     `json:"fee_amount"`   // centavos, frozen at confirmation
	Status      string    `json:"status"`
	PaymentRef  *string   `json:"payment_ref,omitempty"`
	DonatedAt   time.Time `json:"donated_at"`
}
