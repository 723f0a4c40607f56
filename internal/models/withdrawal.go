package models

import (
	"time"

	"github.com/google/uuid"
)

// Withdrawal request statuses
const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
)

// Valid withdrawal transitions: from -> []to. Approved and rejected are
// terminal.
var ValidWithdrawalTransitions = map[string][]string{
	WithdrawalStatusPending:  {WithdrawalStatusApproved, WithdrawalStatusRejected},
	WithdrawalStatusApproved: {},
	WithdrawalStatusRejected: {},
}

func IsValidWithdrawalTransition(from, to string) bool {
	allowed, ok := ValidWithdrawalTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

type Withdrawal struct {
	ID              uuid.UUID `json:"id"`
	CampaignID      uuid.UUID `json:"campaign_id"`
	AccountID       uuid.UUID `json:"account_id"`
	BankName        string    `json:"bank_name"`
	BankAccount     string    `json:"bank_account"`
	RequestedAmount int64     `json:"requested_amount"` // centavos, snapshot at request time
	DisbursedAmount *int64    `json:"disbursed_amount,omitempty"`
	Status          string    `json:"status"`
	Testimony       *string   `json:"testimony,omitempty"`
	RequestedAt     time.Time `json:"requested_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}
