package repositories

import (
	"context"
	"errors"

	"github.com/givehub/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DonationRepo struct {
	pool *pgxpool.Pool
}

func NewDonationRepo(pool *pgxpool.Pool) *DonationRepo {
	return &DonationRepo{pool: pool}
}

const donationColumns = `id, account_id, campaign_id, gross_amount, fee_amount,
	       status, payment_ref, donated_at`

func scanDonation(row pgx.Row) (*models.Donation, error) {
	var d models.Donation
	err := row.Scan(&d.ID, &d.AccountID, &d.CampaignID, &d.GrossAmount, &d.FeeAmount,
		&d.Status, &d.PaymentRef, &d.DonatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDonationNotFound
		}
		return nil, err
	}
	return &d, nil
}

// CreateUnpaid records a donation that is awaiting payment. It carries no
// fee and has no financial effect until confirmed.
func (r *DonationRepo) CreateUnpaid(ctx context.Context, d *models.Donation) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO donations (account_id, campaign_id, gross_amount, status, payment_ref)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, fee_amount, donated_at
	`, d.AccountID, d.CampaignID, d.GrossAmount, models.DonationStatusUnpaid, d.PaymentRef,
	).Scan(&d.ID, &d.FeeAmount, &d.DonatedAt)
}

// CreateConfirmed inserts a confirmed donation inside the recorder's
// transaction, for payment callbacks that have no prior unpaid row.
func (r *DonationRepo) CreateConfirmed(ctx context.Context, q Querier, d *models.Donation) error {
	return q.QueryRow(ctx, `
		INSERT INTO donations (account_id, campaign_id, gross_amount, fee_amount, status, payment_ref, donated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id, donated_at
	`, d.AccountID, d.CampaignID, d.GrossAmount, d.FeeAmount,
		models.DonationStatusConfirmed, d.PaymentRef,
	).Scan(&d.ID, &d.DonatedAt)
}

// Confirm flips an unpaid donation to confirmed and freezes the fee that
// was computed under the schedule in effect at confirmation time. The
// status guard makes repeat callbacks a no-op at this level.
func (r *DonationRepo) Confirm(ctx context.Context, q Querier, id uuid.UUID, fee int64) error {
	tag, err := q.Exec(ctx, `
		UPDATE donations
		SET status = $2, fee_amount = $3, donated_at = now()
		WHERE id = $1 AND status = $4
	`, id, models.DonationStatusConfirmed, fee, models.DonationStatusUnpaid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrDuplicatePayment
	}
	return nil
}

func (r *DonationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Donation, error) {
	return scanDonation(r.pool.QueryRow(ctx,
		`SELECT `+donationColumns+` FROM donations WHERE id = $1`, id))
}

// GetByPaymentRef is the idempotency lookup for payment callbacks. Runs on
// the recorder's transaction so the unique index and the lookup see the
// same state.
func (r *DonationRepo) GetByPaymentRef(ctx context.Context, q Querier, ref string) (*models.Donation, error) {
	return scanDonation(q.QueryRow(ctx,
		`SELECT `+donationColumns+` FROM donations WHERE payment_ref = $1`, ref))
}

func (r *DonationRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]models.Donation, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+donationColumns+` FROM donations
		WHERE campaign_id = $1
		ORDER BY donated_at DESC LIMIT $2 OFFSET $3
	`, campaignID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []models.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		donations = append(donations, *d)
	}
	return donations, rows.Err()
}
