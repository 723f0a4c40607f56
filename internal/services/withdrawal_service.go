package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/givehub/backend/internal/events"
	"github.com/givehub/backend/internal/models"
	"github.com/givehub/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// WithdrawalService runs the payout workflow: a beneficiary requests the
// campaign's funds, an admin approves (disbursing the live balance and
// retiring the campaign) or rejects (leaving the balance untouched).
type WithdrawalService struct {
	pool           *pgxpool.Pool
	withdrawalRepo *repositories.WithdrawalRepo
	campaignRepo   *repositories.CampaignRepo
	accountRepo    *repositories.AccountRepo
	auditRepo      *repositories.AuditRepo
	publisher      events.Publisher
	log            *zap.Logger
}

func NewWithdrawalService(
	pool *pgxpool.Pool,
	withdrawalRepo *repositories.WithdrawalRepo,
	campaignRepo *repositories.CampaignRepo,
	accountRepo *repositories.AccountRepo,
	auditRepo *repositories.AuditRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *WithdrawalService {
	return &WithdrawalService{
		pool:           pool,
		withdrawalRepo: withdrawalRepo,
		campaignRepo:   campaignRepo,
		accountRepo:    accountRepo,
		auditRepo:      auditRepo,
		publisher:      publisher,
		log:            log,
	}
}

type RequestWithdrawalInput struct {
	CampaignID  uuid.UUID
	AccountID   uuid.UUID
	BankName    string
	BankAccount string
}

// Request opens a withdrawal for the campaign's current balance. One open
// request per campaign; the campaign must hold funds and belong to the
// requester. The requested amount is a snapshot for the admin's review,
// the actual disbursement is taken from the live balance at approval.
func (s *WithdrawalService) Request(ctx context.Context, in RequestWithdrawalInput) (*models.Withdrawal, error) {
	if strings.TrimSpace(in.BankName) == "" || strings.TrimSpace(in.BankAccount) == "" {
		return nil, fmt.Errorf("%w: bank name and account number are required", models.ErrInvalidInput)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	campaign, err := s.campaignRepo.GetByIDForUpdate(ctx, tx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign.BeneficiaryID != in.AccountID {
		return nil, fmt.Errorf("%w: only the campaign beneficiary can request a withdrawal", models.ErrInvalidInput)
	}
	if campaign.CurrentRaised <= 0 {
		return nil, models.ErrNoFundsAvailable
	}

	open, err := s.withdrawalRepo.HasOpenRequest(ctx, tx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, models.ErrWithdrawalOutstanding
	}

	withdrawal := &models.Withdrawal{
		CampaignID:      in.CampaignID,
		AccountID:       in.AccountID,
		BankName:        in.BankName,
		BankAccount:     in.BankAccount,
		RequestedAmount: campaign.CurrentRaised,
		Status:          models.WithdrawalStatusPending,
	}
	if err := s.withdrawalRepo.Create(ctx, tx, withdrawal); err != nil {
		return nil, err
	}
	if err := s.campaignRepo.SetWithdrawalStatus(ctx, tx, in.CampaignID, models.CampaignWithdrawalPending); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &in.AccountID,
		ActorType:   "user",
		Action:      "withdrawal_requested",
		EntityType:  "withdrawal",
		EntityID:    &withdrawal.ID,
		Meta: map[string]any{
			"campaign_id":      in.CampaignID.String(),
			"requested_amount": withdrawal.RequestedAmount,
		},
	})

	_ = s.publisher.Publish(ctx, events.StreamWithdrawal, events.Event{
		Type: events.EventWithdrawalRequested,
		Payload: map[string]any{
			"withdrawal_id":    withdrawal.ID.String(),
			"campaign_id":      in.CampaignID.String(),
			"requested_amount": withdrawal.RequestedAmount,
		},
	})

	return withdrawal, nil
}

// Approve disburses the campaign's live balance to the beneficiary and
// retires the campaign: balance to zero, lifecycle to done. Disbursement
// and retirement commit together.
func (s *WithdrawalService) Approve(ctx context.Context, adminID, withdrawalID uuid.UUID) (*models.Withdrawal, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	withdrawal, err := s.withdrawalRepo.GetByIDForUpdate(ctx, tx, withdrawalID)
	if err != nil {
		return nil, err
	}
	if withdrawal.Status != models.WithdrawalStatusPending {
		return nil, models.ErrAlreadyResolved
	}

	campaign, err := s.campaignRepo.GetByIDForUpdate(ctx, tx, withdrawal.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign.CurrentRaised <= 0 {
		return nil, models.ErrNoFundsAvailable
	}

	// Donations confirmed after the request are included: the payout is
	// the balance as of approval, not the snapshot.
	amount := campaign.CurrentRaised

	if err := s.withdrawalRepo.Resolve(ctx, tx, withdrawalID, models.WithdrawalStatusApproved, &amount); err != nil {
		return nil, err
	}
	if err := s.campaignRepo.MarkDone(ctx, tx, withdrawal.CampaignID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	withdrawal.Status = models.WithdrawalStatusApproved
	withdrawal.DisbursedAmount = &amount

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &adminID,
		ActorType:   "admin",
		Action:      "withdrawal_approved",
		EntityType:  "withdrawal",
		EntityID:    &withdrawal.ID,
		Meta: map[string]any{
			"campaign_id":      withdrawal.CampaignID.String(),
			"disbursed_amount": amount,
		},
	})

	s.publishResolution(ctx, events.EventWithdrawalApproved, withdrawal, nil)
	return withdrawal, nil
}

// Reject closes the request without moving money. The campaign keeps its
// balance and the beneficiary may request again.
func (s *WithdrawalService) Reject(ctx context.Context, adminID, withdrawalID uuid.UUID, notes string) (*models.Withdrawal, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	withdrawal, err := s.withdrawalRepo.GetByIDForUpdate(ctx, tx, withdrawalID)
	if err != nil {
		return nil, err
	}
	if withdrawal.Status != models.WithdrawalStatusPending {
		return nil, models.ErrAlreadyResolved
	}

	if err := s.withdrawalRepo.Resolve(ctx, tx, withdrawalID, models.WithdrawalStatusRejected, nil); err != nil {
		return nil, err
	}
	if err := s.campaignRepo.SetWithdrawalStatus(ctx, tx, withdrawal.CampaignID, models.CampaignWithdrawalRejected); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	withdrawal.Status = models.WithdrawalStatusRejected

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &adminID,
		ActorType:   "admin",
		Action:      "withdrawal_rejected",
		EntityType:  "withdrawal",
		EntityID:    &withdrawal.ID,
		Meta:        map[string]any{"notes": notes},
	})

	s.publishResolution(ctx, events.EventWithdrawalRejected, withdrawal, &notes)
	return withdrawal, nil
}

// SubmitTestimony lets the beneficiary attach an account of how disbursed
// funds were used. Only approved withdrawals accept testimony.
func (s *WithdrawalService) SubmitTestimony(ctx context.Context, accountID, withdrawalID uuid.UUID, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: testimony text is required", models.ErrInvalidInput)
	}

	withdrawal, err := s.withdrawalRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		return err
	}
	if withdrawal.AccountID != accountID {
		return fmt.Errorf("%w: only the requester can submit testimony", models.ErrInvalidInput)
	}

	if err := s.withdrawalRepo.SubmitTestimony(ctx, withdrawalID, text); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &accountID,
		ActorType:   "user",
		Action:      "testimony_submitted",
		EntityType:  "withdrawal",
		EntityID:    &withdrawalID,
	})
	return nil
}

func (s *WithdrawalService) publishResolution(ctx context.Context, eventType string, w *models.Withdrawal, notes *string) {
	payload := map[string]any{
		"withdrawal_id": w.ID.String(),
		"campaign_id":   w.CampaignID.String(),
	}
	if w.DisbursedAmount != nil {
		payload["disbursed_amount"] = *w.DisbursedAmount
		payload["bank_name"] = w.BankName
	}
	if notes != nil {
		payload["notes"] = *notes
	}
	if acc, err := s.accountRepo.GetByID(ctx, w.AccountID); err == nil {
		payload["beneficiary_email"] = acc.Email
	}

	if err := s.publisher.Publish(ctx, events.StreamWithdrawal, events.Event{
		Type:    eventType,
		Payload: payload,
	}); err != nil {
		s.log.Warn("failed to publish withdrawal resolution",
			zap.String("withdrawal_id", w.ID.String()),
			zap.String("event", eventType),
			zap.Error(err),
		)
	}
}

func (s *WithdrawalService) GetByID(ctx context.Context, id uuid.UUID) (*models.Withdrawal, error) {
	return s.withdrawalRepo.GetByID(ctx, id)
}

func (s *WithdrawalService) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Withdrawal, error) {
	return s.withdrawalRepo.ListByCampaign(ctx, campaignID)
}
