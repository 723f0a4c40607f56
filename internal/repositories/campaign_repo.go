package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/givehub/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

const campaignColumns = `id, beneficiary_id, name, description, category,
	       target_fund, current_raised, status, approval_status, withdrawal_status,
	       rejection_notes, start_date, end_date, created_at, updated_at`

func scanCampaign(row pgx.Row) (*models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(&c.ID, &c.BeneficiaryID, &c.Name, &c.Description, &c.Category,
		&c.TargetFund, &c.CurrentRaised, &c.Status, &c.ApprovalStatus, &c.WithdrawalStatus,
		&c.RejectionNotes, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCampaignNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (beneficiary_id, name, description, category,
			target_fund, status, approval_status, withdrawal_status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, current_raised, created_at, updated_at
	`, c.BeneficiaryID, c.Name, c.Description, c.Category,
		c.TargetFund, c.Status, c.ApprovalStatus, c.WithdrawalStatus,
		c.StartDate, c.EndDate,
	).Scan(&c.ID, &c.CurrentRaised, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
}

// GetByIDForUpdate locks the campaign row for the duration of the caller's
// transaction. Every financial mutation goes through this lock so two
// concurrent donations can never both pass the target check against a
// stale raised value.
func (r *CampaignRepo) GetByIDForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*models.Campaign, error) {
	return scanCampaign(q.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1 FOR UPDATE`, id))
}

// Credit atomically adds net centavos to the campaign's raised total. The
// target guard lives in the statement itself, so even without the row lock
// an overshoot is impossible.
func (r *CampaignRepo) Credit(ctx context.Context, q Querier, id uuid.UUID, net int64) (int64, error) {
	var raised int64
	err := q.QueryRow(ctx, `
		UPDATE campaigns
		SET current_raised = current_raised + $2, updated_at = now()
		WHERE id = $1 AND current_raised + $2 <= target_fund
		RETURNING current_raised
	`, id, net).Scan(&raised)
	if err == nil {
		return raised, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	// No row updated: either the campaign is gone or the credit would
	// overshoot the target.
	if _, err := scanCampaign(q.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)); err != nil {
		return 0, err
	}
	return 0, models.ErrFundingExceeded
}

// Approve flips a waiting campaign to approved/active. Returns
// ErrInvalidTransition when the campaign exists but is past waiting.
func (r *CampaignRepo) Approve(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `
		UPDATE campaigns
		SET approval_status = $2, status = $3, updated_at = now()
		WHERE id = $1 AND approval_status = $4
		RETURNING `+campaignColumns,
		id, models.ApprovalStatusApproved, models.CampaignStatusActive, models.ApprovalStatusWaiting))
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, models.ErrCampaignNotFound) {
		return nil, err
	}
	if _, lookupErr := r.GetByID(ctx, id); lookupErr != nil {
		return nil, lookupErr
	}
	return nil, models.ErrInvalidTransition
}

// Reject flips a waiting campaign to rejected/inactive and stores the
// admin's notes. The campaign is immutable for funding afterwards.
func (r *CampaignRepo) Reject(ctx context.Context, id uuid.UUID, notes string) (*models.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `
		UPDATE campaigns
		SET approval_status = $2, status = $3, rejection_notes = $4, updated_at = now()
		WHERE id = $1 AND approval_status = $5
		RETURNING `+campaignColumns,
		id, models.ApprovalStatusRejected, models.CampaignStatusInactive, notes, models.ApprovalStatusWaiting))
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, models.ErrCampaignNotFound) {
		return nil, err
	}
	if _, lookupErr := r.GetByID(ctx, id); lookupErr != nil {
		return nil, lookupErr
	}
	return nil, models.ErrInvalidTransition
}

// MarkDone zeroes the raised balance and closes the campaign after a
// disbursing withdrawal approval. Only the withdrawal workflow calls this,
// inside its own transaction with the campaign row already locked.
func (r *CampaignRepo) MarkDone(ctx context.Context, q Querier, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `
		UPDATE campaigns
		SET current_raised = 0, status = $2, approval_status = $3,
		    withdrawal_status = $4, updated_at = now()
		WHERE id = $1 AND current_raised > 0
	`, id, models.CampaignStatusDone, models.ApprovalStatusDone, models.CampaignWithdrawalDone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNoFundsAvailable
	}
	return nil
}

func (r *CampaignRepo) SetWithdrawalStatus(ctx context.Context, q Querier, id uuid.UUID, status string) error {
	tag, err := q.Exec(ctx, `
		UPDATE campaigns SET withdrawal_status = $2, updated_at = now() WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCampaignNotFound
	}
	return nil
}

// MarkEnded flags active campaigns past their end date exactly once and
// returns them so the worker can publish campaign_ended events.
func (r *CampaignRepo) MarkEnded(ctx context.Context, now time.Time) ([]models.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE campaigns SET end_notified = true, updated_at = now()
		WHERE status = $1 AND end_date < $2 AND NOT end_notified
		RETURNING `+campaignColumns,
		models.CampaignStatusActive, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

type CampaignFilter struct {
	BeneficiaryID  *uuid.UUID
	Status         *string
	ApprovalStatus *string
	Category       *string
	Limit          int
	Offset         int
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.BeneficiaryID != nil {
		where = append(where, fmt.Sprintf("beneficiary_id = $%d", argIdx))
		args = append(args, *f.BeneficiaryID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}
	if f.ApprovalStatus != nil {
		where = append(where, fmt.Sprintf("approval_status = $%d", argIdx))
		args = append(args, *f.ApprovalStatus)
		argIdx++
	}
	if f.Category != nil {
		where = append(where, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *f.Category)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}
