package repositories

import (
	"context"

	"github.com/givehub/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RevenueRepo struct {
	pool *pgxpool.Pool
}

func NewRevenueRepo(pool *pgxpool.Pool) *RevenueRepo {
	return &RevenueRepo{pool: pool}
}

// Create writes the platform-fee entry for a confirmed donation. Always
// called on the recorder's transaction.
func (r *RevenueRepo) Create(ctx context.Context, q Querier, rev *models.Revenue) error {
	return q.QueryRow(ctx, `
		INSERT INTO revenue (donation_id, campaign_id, fee_amount, net_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, rev.DonationID, rev.CampaignID, rev.FeeAmount, rev.NetAmount,
	).Scan(&rev.ID, &rev.CreatedAt)
}

func (r *RevenueRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Revenue, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, donation_id, campaign_id, fee_amount, net_amount, created_at
		FROM revenue WHERE campaign_id = $1
		ORDER BY created_at DESC
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Revenue
	for rows.Next() {
		var rev models.Revenue
		if err := rows.Scan(&rev.ID, &rev.DonationID, &rev.CampaignID,
			&rev.FeeAmount, &rev.NetAmount, &rev.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, rev)
	}
	return entries, rows.Err()
}

// TotalFees returns the platform's cumulative fee income in centavos.
func (r *RevenueRepo) TotalFees(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(fee_amount), 0) FROM revenue`).Scan(&total)
	return total, err
}
