package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/givehub/backend/internal/events"
	"github.com/givehub/backend/internal/models"
	"github.com/givehub/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CampaignService owns the campaign lifecycle: creation into the approval
// queue, the admin approve/reject decision, and reads.
type CampaignService struct {
	campaignRepo *repositories.CampaignRepo
	accountRepo  *repositories.AccountRepo
	auditRepo    *repositories.AuditRepo
	publisher    events.Publisher
	log          *zap.Logger
}

func NewCampaignService(
	campaignRepo *repositories.CampaignRepo,
	accountRepo *repositories.AccountRepo,
	auditRepo *repositories.AuditRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		accountRepo:  accountRepo,
		auditRepo:    auditRepo,
		publisher:    publisher,
		log:          log,
	}
}

type CreateCampaignInput struct {
	BeneficiaryID uuid.UUID
	Name          string
	Description   string
	Category      *string
	TargetFund    int64 // centavos
	StartDate     time.Time
	EndDate       time.Time
}

// Create places a new campaign into the approval queue. It is not
// fundable until an admin approves it.
func (s *CampaignService) Create(ctx context.Context, in CreateCampaignInput) (*models.Campaign, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: campaign name is required", models.ErrInvalidInput)
	}
	if in.TargetFund <= 0 {
		return nil, fmt.Errorf("%w: target fund must be positive", models.ErrInvalidInput)
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", models.ErrInvalidInput)
	}

	if _, err := s.accountRepo.GetByID(ctx, in.BeneficiaryID); err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		BeneficiaryID:    in.BeneficiaryID,
		Name:             in.Name,
		Description:      in.Description,
		Category:         in.Category,
		TargetFund:       in.TargetFund,
		Status:           models.CampaignStatusPending,
		ApprovalStatus:   models.ApprovalStatusWaiting,
		WithdrawalStatus: models.CampaignWithdrawalNone,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
	}
	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &in.BeneficiaryID,
		ActorType:   "user",
		Action:      "campaign_created",
		EntityType:  "campaign",
		EntityID:    &campaign.ID,
		Meta:        map[string]any{"name": campaign.Name, "target_fund": campaign.TargetFund},
	})

	return campaign, nil
}

// Approve moves a waiting campaign to approved/active. Only campaigns
// still in the approval queue can be decided.
func (s *CampaignService) Approve(ctx context.Context, adminID, campaignID uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.Approve(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &adminID,
		ActorType:   "admin",
		Action:      "campaign_approved",
		EntityType:  "campaign",
		EntityID:    &campaign.ID,
	})

	s.publishDecision(ctx, events.EventCampaignApproved, campaign, nil)
	return campaign, nil
}

// Reject moves a waiting campaign to rejected/inactive, keeping the
// admin's notes for the beneficiary.
func (s *CampaignService) Reject(ctx context.Context, adminID, campaignID uuid.UUID, notes string) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.Reject(ctx, campaignID, notes)
	if err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &adminID,
		ActorType:   "admin",
		Action:      "campaign_rejected",
		EntityType:  "campaign",
		EntityID:    &campaign.ID,
		Meta:        map[string]any{"notes": notes},
	})

	s.publishDecision(ctx, events.EventCampaignRejected, campaign, &notes)
	return campaign, nil
}

func (s *CampaignService) publishDecision(ctx context.Context, eventType string, campaign *models.Campaign, notes *string) {
	payload := map[string]any{
		"campaign_id":   campaign.ID.String(),
		"campaign_name": campaign.Name,
	}
	if notes != nil {
		payload["notes"] = *notes
	}
	if acc, err := s.accountRepo.GetByID(ctx, campaign.BeneficiaryID); err == nil {
		payload["beneficiary_email"] = acc.Email
	}

	if err := s.publisher.Publish(ctx, events.StreamCampaign, events.Event{
		Type:    eventType,
		Payload: payload,
	}); err != nil {
		s.log.Warn("failed to publish campaign decision",
			zap.String("campaign_id", campaign.ID.String()),
			zap.String("event", eventType),
			zap.Error(err),
		)
	}
}

func (s *CampaignService) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	return s.campaignRepo.GetByID(ctx, id)
}

func (s *CampaignService) List(ctx context.Context, filter repositories.CampaignFilter) ([]models.Campaign, error) {
	return s.campaignRepo.List(ctx, filter)
}
