package models

import "testing"

func TestIsValidWithdrawalTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		{WithdrawalStatusPending, WithdrawalStatusApproved, true},
		{WithdrawalStatusPending, WithdrawalStatusRejected, true},

		// Terminal states never move again
		{WithdrawalStatusApproved, WithdrawalStatusRejected, false},
		{WithdrawalStatusApproved, WithdrawalStatusPending, false},
		{WithdrawalStatusRejected, WithdrawalStatusApproved, false},
		{WithdrawalStatusRejected, WithdrawalStatusPending, false},
		{"nonexistent", WithdrawalStatusApproved, false},
		{WithdrawalStatusPending, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidWithdrawalTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidWithdrawalTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}
