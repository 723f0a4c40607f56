package models

import "testing"

func TestRewardAvailable(t *testing.T) {
	tests := []struct {
		name   string
		reward Reward
		want   bool
	}{
		{"active with stock", Reward{Status: RewardStatusActive, Quantity: 3}, true},
		{"active last unit", Reward{Status: RewardStatusActive, Quantity: 1}, true},
		{"active out of stock", Reward{Status: RewardStatusActive, Quantity: 0}, false},
		{"inactive with stock", Reward{Status: RewardStatusInactive, Quantity: 3}, false},
		{"inactive out of stock", Reward{Status: RewardStatusInactive, Quantity: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reward.Available(); got != tt.want {
				t.Errorf("Available() = %v, want %v", got, tt.want)
			}
		})
	}
}
