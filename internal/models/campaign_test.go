package models

import (
	"testing"
	"time"
)

func TestIsValidApprovalTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{ApprovalStatusWaiting, ApprovalStatusApproved, true},
		{ApprovalStatusWaiting, ApprovalStatusRejected, true},
		{ApprovalStatusApproved, ApprovalStatusDone, true},

		// Invalid transitions
		{ApprovalStatusRejected, ApprovalStatusApproved, false},
		{ApprovalStatusRejected, ApprovalStatusWaiting, false},
		{ApprovalStatusDone, ApprovalStatusApproved, false},
		{ApprovalStatusDone, ApprovalStatusWaiting, false},
		{ApprovalStatusApproved, ApprovalStatusRejected, false},
		{ApprovalStatusApproved, ApprovalStatusWaiting, false},
		{ApprovalStatusWaiting, ApprovalStatusDone, false},
		{"nonexistent", ApprovalStatusApproved, false},
		{ApprovalStatusWaiting, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidApprovalTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidApprovalTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestAllApprovalStatusesHaveTransitionEntry(t *testing.T) {
	allStatuses := []string{
		ApprovalStatusWaiting, ApprovalStatusApproved,
		ApprovalStatusRejected, ApprovalStatusDone,
	}
	for _, s := range allStatuses {
		if _, ok := ValidApprovalTransitions[s]; !ok {
			t.Errorf("status %q has no transition entry", s)
		}
	}
}

func TestLifecycleForApproval(t *testing.T) {
	tests := []struct {
		approval string
		want     string
	}{
		{ApprovalStatusWaiting, CampaignStatusPending},
		{ApprovalStatusApproved, CampaignStatusActive},
		{ApprovalStatusRejected, CampaignStatusInactive},
		{ApprovalStatusDone, CampaignStatusDone},
	}

	for _, tt := range tests {
		if got := LifecycleForApproval(tt.approval); got != tt.want {
			t.Errorf("LifecycleForApproval(%q) = %q, want %q", tt.approval, got, tt.want)
		}
	}
}

func TestCampaignFundable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(30 * 24 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name     string
		campaign Campaign
		want     bool
	}{
		{
			"approved and active",
			Campaign{ApprovalStatus: ApprovalStatusApproved, Status: CampaignStatusActive, EndDate: future},
			true,
		},
		{
			"waiting approval",
			Campaign{ApprovalStatus: ApprovalStatusWaiting, Status: CampaignStatusPending, EndDate: future},
			false,
		},
		{
			"rejected",
			Campaign{ApprovalStatus: ApprovalStatusRejected, Status: CampaignStatusInactive, EndDate: future},
			false,
		},
		{
			"done after withdrawal",
			Campaign{ApprovalStatus: ApprovalStatusDone, Status: CampaignStatusDone, EndDate: future},
			false,
		},
		{
			"past end date",
			Campaign{ApprovalStatus: ApprovalStatusApproved, Status: CampaignStatusActive, EndDate: past},
			false,
		},
		{
			"ends exactly now",
			Campaign{ApprovalStatus: ApprovalStatusApproved, Status: CampaignStatusActive, EndDate: now},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.campaign.Fundable(now); got != tt.want {
				t.Errorf("Fundable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCampaignRemaining(t *testing.T) {
	tests := []struct {
		name   string
		target int64
		raised int64
		want   int64
	}{
		{"untouched", 100_000, 0, 100_000},
		{"partially funded", 100_000, 40_000, 60_000},
		{"fully funded", 100_000, 100_000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Campaign{TargetFund: tt.target, CurrentRaised: tt.raised}
			if got := c.Remaining(); got != tt.want {
				t.Errorf("Remaining() = %d, want %d", got, tt.want)
			}
		})
	}
}
