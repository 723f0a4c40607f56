package models

import (
	"time"

	"github.com/google/uuid"
)

// Campaign lifecycle statuses
const (
	CampaignStatusPending  = "pending"
	CampaignStatusActive   = "active"
	CampaignStatusDone     = "done"
	CampaignStatusInactive = "inactive"
)

// Campaign approval statuses
const (
	ApprovalStatusWaiting  = "waiting_approval"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
	ApprovalStatusDone     = "done"
)

// Campaign-level withdrawal statuses
const (
	CampaignWithdrawalNone     = "none"
	CampaignWithdrawalPending  = "pending"
	CampaignWithdrawalDone     = "done"
	CampaignWithdrawalRejected = "rejected"
)

// Valid approval-status transitions: from -> []to. Approval drives the
// lifecycle status, so this is the single authoritative machine.
var ValidApprovalTransitions = map[string][]string{
	ApprovalStatusWaiting:  {ApprovalStatusApproved, ApprovalStatusRejected},
	ApprovalStatusApproved: {ApprovalStatusDone},
	ApprovalStatusRejected: {},
	ApprovalStatusDone:     {},
}

func IsValidApprovalTransition(from, to string) bool {
	allowed, ok := ValidApprovalTransitions[from]
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

// LifecycleForApproval maps an approval status to the lifecycle status the
// campaign carries alongside it. The two columns always move together.
func LifecycleForApproval(approval string) string {
	switch approval {
	case ApprovalStatusApproved:
		return CampaignStatusActive
	case ApprovalStatusRejected:
		return CampaignStatusInactive
	case ApprovalStatusDone:
		return CampaignStatusDone
	default:
		return CampaignStatusPending
	}
}

type Campaign struct {
	ID               uuid.UUID `json:"id"`
	BeneficiaryID    uuid.UUID `json:"beneficiary_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Category         *string   `json:"category,omitempty"`
	TargetFund       int64     `json:"target_fund"`    // centavos
	CurrentRaised    int64     `json:"current_raised"` // centavos
	Status           string    `json:"status"`
	ApprovalStatus   string    `json:"approval_status"`
	WithdrawalStatus string    `json:"withdrawal_status"`
	RejectionNotes   *string   `json:"rejection_notes,omitempty"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Fundable reports whether the campaign may accept donations at the given
// time: approved by an admin, active, and not past its end date.
func (c *Campaign) Fundable(now time.Time) bool {
	if c.ApprovalStatus != ApprovalStatusApproved {
		return false
	}
	if c.Status != CampaignStatusActive {
		return false
	}
	return !now.After(c.EndDate)
}

// Remaining returns the centavos still needed to reach the target fund.
func (c *Campaign) Remaining() int64 {
	if c.CurrentRaised >= c.TargetFund {
		return 0
	}
	return c.TargetFund - c.CurrentRaised
}
