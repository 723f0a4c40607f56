package models

import (
	"time"

	"github.com/google/uuid"
)

// Reward statuses
const (
	RewardStatusActive   = "active"
	RewardStatusInactive = "inactive"
)

type Reward struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PointCost   int64     `json:"point_cost"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Available reports whether the reward can currently be redeemed.
func (r *Reward) Available() bool {
	return r.Status == RewardStatusActive && r.Quantity > 0
}

type RewardRedemption struct {
	ID              uuid.UUID `json:"id"`
	AccountID       uuid.UUID `json:"account_id"`
	RewardID        uuid.UUID `json:"reward_id"`
	PointsCharged   int64     `json:"points_charged"`
	ShippingAddress string    `json:"shipping_address"`
	RedeemedAt      time.Time `json:"redeemed_at"`
}
