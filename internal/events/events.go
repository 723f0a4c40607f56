package events

import "context"

// Streams
const (
	StreamDonation   = "events:donation"
	StreamCampaign   = "events:campaign"
	StreamWithdrawal = "events:withdrawal"
	StreamReward     = "events:reward"
)

// Event types
const (
	EventDonationRecorded    = "donation_recorded"
	EventHighValueDonation   = "high_value_donation"
	EventCampaignApproved    = "campaign_approved"
	EventCampaignRejected    = "campaign_rejected"
	EventCampaignEnded       = "campaign_ended"
	EventWithdrawalRequested = "withdrawal_requested"
	EventWithdrawalApproved  = "withdrawal_approved"
	EventWithdrawalRejected  = "withdrawal_rejected"
	EventRewardRedeemed      = "reward_redeemed"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
