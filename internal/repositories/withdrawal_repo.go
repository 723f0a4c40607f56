package repositories

import (
	"context"
	"errors"

	"github.com/givehub/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WithdrawalRepo struct {
	pool *pgxpool.Pool
}

func NewWithdrawalRepo(pool *pgxpool.Pool) *WithdrawalRepo {
	return &WithdrawalRepo{pool: pool}
}

const withdrawalColumns = `id, campaign_id, account_id, bank_name, bank_account,
	       requested_amount, disbursed_amount, status, testimony, requested_at, resolved_at`

func scanWithdrawal(row pgx.Row) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := row.Scan(&w.ID, &w.CampaignID, &w.AccountID, &w.BankName, &w.BankAccount,
		&w.RequestedAmount, &w.DisbursedAmount, &w.Status, &w.Testimony,
		&w.RequestedAt, &w.ResolvedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrWithdrawalNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *WithdrawalRepo) Create(ctx context.Context, q Querier, w *models.Withdrawal) error {
	return q.QueryRow(ctx, `
		INSERT INTO withdrawals (campaign_id, account_id, bank_name, bank_account, requested_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, requested_at
	`, w.CampaignID, w.AccountID, w.BankName, w.BankAccount, w.RequestedAmount, w.Status,
	).Scan(&w.ID, &w.RequestedAt)
}

func (r *WithdrawalRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Withdrawal, error) {
	return scanWithdrawal(r.pool.QueryRow(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id))
}

// GetByIDForUpdate locks the withdrawal row so approve and reject cannot
// race each other on the same request.
func (r *WithdrawalRepo) GetByIDForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*models.Withdrawal, error) {
	return scanWithdrawal(q.QueryRow(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1 FOR UPDATE`, id))
}

// HasOpenRequest reports whether the campaign already has a pending
// withdrawal. Called with the campaign row locked, so no second request
// can slip in between check and insert.
func (r *WithdrawalRepo) HasOpenRequest(ctx context.Context, q Querier, campaignID uuid.UUID) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM withdrawals WHERE campaign_id = $1 AND status = $2)
	`, campaignID, models.WithdrawalStatusPending).Scan(&exists)
	return exists, err
}

// Resolve moves a pending request to a terminal status. The status guard
// keeps terminal requests immutable.
func (r *WithdrawalRepo) Resolve(ctx context.Context, q Querier, id uuid.UUID, status string, disbursed *int64) error {
	tag, err := q.Exec(ctx, `
		UPDATE withdrawals
		SET status = $2, disbursed_amount = $3, resolved_at = now()
		WHERE id = $1 AND status = $4
	`, id, status, disbursed, models.WithdrawalStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrAlreadyResolved
	}
	return nil
}

// SubmitTestimony attaches free-text testimony to an approved request.
func (r *WithdrawalRepo) SubmitTestimony(ctx context.Context, id uuid.UUID, text string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE withdrawals SET testimony = $2
		WHERE id = $1 AND status = $3
	`, id, text, models.WithdrawalStatusApproved)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return models.ErrInvalidTransition
	}
	return nil
}

func (r *WithdrawalRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Withdrawal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+withdrawalColumns+` FROM withdrawals
		WHERE campaign_id = $1 ORDER BY requested_at DESC
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var withdrawals []models.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, *w)
	}
	return withdrawals, rows.Err()
}
