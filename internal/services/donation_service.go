package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/givehub/backend/internal/events"
	"github.com/givehub/backend/internal/ledger"
	"github.com/givehub/backend/internal/models"
	"github.com/givehub/backend/internal/payments"
	"github.com/givehub/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DonationService is the funding recorder. Initiate opens a provider
// checkout and an unpaid donation; Record applies the full financial
// effect of a confirmed payment in one transaction.
type DonationService struct {
	pool         *pgxpool.Pool
	campaignRepo *repositories.CampaignRepo
	donationRepo *repositories.DonationRepo
	accountRepo  *repositories.AccountRepo
	revenueRepo  *repositories.RevenueRepo
	auditRepo    *repositories.AuditRepo
	payments     *payments.Client
	publisher    events.Publisher
	log          *zap.Logger
}

func NewDonationService(
	pool *pgxpool.Pool,
	campaignRepo *repositories.CampaignRepo,
	donationRepo *repositories.DonationRepo,
	accountRepo *repositories.AccountRepo,
	revenueRepo *repositories.RevenueRepo,
	auditRepo *repositories.AuditRepo,
	payments *payments.Client,
	publisher events.Publisher,
	log *zap.Logger,
) *DonationService {
	return &DonationService{
		pool:         pool,
		campaignRepo: campaignRepo,
		donationRepo: donationRepo,
		accountRepo:  accountRepo,
		revenueRepo:  revenueRepo,
		auditRepo:    auditRepo,
		payments:     payments,
		publisher:    publisher,
		log:          log,
	}
}

// Initiate validates the donation, opens a checkout with the payment
// provider and records an unpaid donation carrying the provider's
// reference. No money moves until the provider's callback confirms.
func (s *DonationService) Initiate(ctx context.Context, accountID, campaignID uuid.UUID, gross int64) (*models.Donation, string, error) {
	if gross <= 0 {
		return nil, "", fmt.Errorf("%w: donation amount must be positive", models.ErrInvalidInput)
	}

	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, "", err
	}

	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, "", err
	}
	if !campaign.Fundable(time.Now()) {
		return nil, "", models.ErrCampaignNotFundable
	}
	// Early rejection; the authoritative check runs again under the row
	// lock at confirmation time.
	if ledger.Net(gross) > campaign.Remaining() {
		return nil, "", models.ErrFundingExceeded
	}

	checkout, err := s.payments.CreateCheckout(ctx, payments.CheckoutRequest{
		Amount:      gross,
		Description: fmt.Sprintf("Donation for campaign %q", campaign.Name),
		Remarks:     "givehub donation",
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to open payment checkout: %w", err)
	}

	donation := &models.Donation{
		AccountID:   accountID,
		CampaignID:  campaignID,
		GrossAmount: gross,
		PaymentRef:  &checkout.PaymentRef,
	}
	if err := s.donationRepo.CreateUnpaid(ctx, donation); err != nil {
		return nil, "", err
	}
	donation.Status = models.DonationStatusUnpaid

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &accountID,
		ActorType:   "user",
		Action:      "donation_initiated",
		EntityType:  "donation",
		EntityID:    &donation.ID,
		Meta:        map[string]any{"campaign_id": campaignID.String(), "gross_amount": gross},
	})

	return donation, checkout.CheckoutURL, nil
}

// RecordResult is what the payment collaborator gets back.
type RecordResult struct {
	Donation     *models.Donation
	PointsEarned int64
	Replayed     bool
}

// Record applies a confirmed payment. Campaign credit, donation
// confirmation, revenue entry and point crediting commit or roll back as
// one unit; a repeat callback for the same reference returns the original
// result without crediting anything twice.
func (s *DonationService) Record(ctx context.Context, paymentRef string, accountID, campaignID uuid.UUID, gross int64) (*RecordResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	donation, err := s.donationRepo.GetByPaymentRef(ctx, tx, paymentRef)
	switch {
	case err == nil && donation.Status == models.DonationStatusConfirmed:
		// Idempotent replay.
		s.log.Info("payment callback replayed",
			zap.String("payment_ref", paymentRef),
			zap.String("donation_id", donation.ID.String()),
		)
		return &RecordResult{
			Donation:     donation,
			PointsEarned: ledger.Points(donation.GrossAmount),
			Replayed:     true,
		}, nil
	case err == nil:
		// Unpaid row from Initiate; its stored facts are authoritative.
		accountID = donation.AccountID
		campaignID = donation.CampaignID
		gross = donation.GrossAmount
	case errors.Is(err, models.ErrDonationNotFound):
		// Provider-initiated payment with no prior checkout; the callback
		// body must carry the full details.
		donation = nil
		if accountID == uuid.Nil || campaignID == uuid.Nil || gross <= 0 {
			return nil, fmt.Errorf("%w: unknown payment reference and incomplete donation details", models.ErrInvalidInput)
		}
	default:
		return nil, err
	}

	// Lock the campaign row: the fundability check, the target guard and
	// the credit all happen against the same state.
	campaign, err := s.campaignRepo.GetByIDForUpdate(ctx, tx, campaignID)
	if err != nil {
		return nil, err
	}
	if !campaign.Fundable(time.Now()) {
		return nil, models.ErrCampaignNotFundable
	}

	fee := ledger.Fee(gross)
	net := gross - fee

	raised, err := s.campaignRepo.Credit(ctx, tx, campaignID, net)
	if err != nil {
		return nil, err
	}

	if donation != nil {
		if err := s.donationRepo.Confirm(ctx, tx, donation.ID, fee); err != nil {
			return nil, err
		}
		donation.Status = models.DonationStatusConfirmed
		donation.FeeAmount = fee
	} else {
		donation = &models.Donation{
			AccountID:   accountID,
			CampaignID:  campaignID,
			GrossAmount: gross,
			FeeAmount:   fee,
			Status:      models.DonationStatusConfirmed,
			PaymentRef:  &paymentRef,
		}
		if err := s.donationRepo.CreateConfirmed(ctx, tx, donation); err != nil {
			return nil, err
		}
	}

	if err := s.revenueRepo.Create(ctx, tx, &models.Revenue{
		DonationID: donation.ID,
		CampaignID: campaignID,
		FeeAmount:  fee,
		NetAmount:  net,
	}); err != nil {
		return nil, err
	}

	// Points are earned on the gross amount and travel in the same
	// transaction as the donation itself.
	points := ledger.Points(gross)
	if points > 0 {
		if _, err := s.accountRepo.CreditPoints(ctx, tx, accountID, points); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &accountID,
		ActorType:   "system",
		Action:      "donation_recorded",
		EntityType:  "donation",
		EntityID:    &donation.ID,
		Meta: map[string]any{
			"campaign_id":  campaignID.String(),
			"gross_amount": gross,
			"fee_amount":   fee,
			"net_amount":   net,
			"points":       points,
		},
	})

	_ = s.publisher.Publish(ctx, events.StreamDonation, events.Event{
		Type: events.EventDonationRecorded,
		Payload: map[string]any{
			"donation_id":    donation.ID.String(),
			"campaign_id":    campaignID.String(),
			"gross_amount":   gross,
			"net_amount":     net,
			"current_raised": raised,
		},
	})

	// Compliance notification is best effort and must never unwind the
	// committed donation.
	if ledger.HighValue(gross) {
		payload := map[string]any{
			"donation_id":  donation.ID.String(),
			"campaign_id":  campaignID.String(),
			"account_id":   accountID.String(),
			"gross_amount": gross,
		}
		if acc, err := s.accountRepo.GetByID(ctx, accountID); err == nil {
			payload["account_email"] = acc.Email
		}
		if err := s.publisher.Publish(ctx, events.StreamDonation, events.Event{
			Type:    events.EventHighValueDonation,
			Payload: payload,
		}); err != nil {
			s.log.Warn("failed to publish high-value notification",
				zap.String("donation_id", donation.ID.String()), zap.Error(err))
		}
	}

	return &RecordResult{Donation: donation, PointsEarned: points}, nil
}

func (s *DonationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Donation, error) {
	return s.donationRepo.GetByID(ctx, id)
}

func (s *DonationService) ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]models.Donation, error) {
	return s.donationRepo.ListByCampaign(ctx, campaignID, limit, offset)
}

// TotalFees reports the platform's cumulative fee income.
func (s *DonationService) TotalFees(ctx context.Context) (int64, error) {
	return s.revenueRepo.TotalFees(ctx)
}
