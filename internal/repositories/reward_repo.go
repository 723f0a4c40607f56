package repositories

import (
	"context"
	"errors"

	"github.com/givehub/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RewardRepo struct {
	pool *pgxpool.Pool
}

func NewRewardRepo(pool *pgxpool.Pool) *RewardRepo {
	return &RewardRepo{pool: pool}
}

const rewardColumns = `id, name, description, point_cost, quantity, status, created_at, updated_at`

func scanReward(row pgx.Row) (*models.Reward, error) {
	var rw models.Reward
	err := row.Scan(&rw.ID, &rw.Name, &rw.Description, &rw.PointCost, &rw.Quantity,
		&rw.Status, &rw.CreatedAt, &rw.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrRewardNotFound
		}
		return nil, err
	}
	return &rw, nil
}

func (r *RewardRepo) Create(ctx context.Context, rw *models.Reward) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO rewards (name, description, point_cost, quantity, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, rw.Name, rw.Description, rw.PointCost, rw.Quantity, rw.Status,
	).Scan(&rw.ID, &rw.CreatedAt, &rw.UpdatedAt)
}

func (r *RewardRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reward, error) {
	return scanReward(r.pool.QueryRow(ctx,
		`SELECT `+rewardColumns+` FROM rewards WHERE id = $1`, id))
}

// GetByIDForUpdate locks the reward row so stock can't be oversold by
// concurrent redemptions.
func (r *RewardRepo) GetByIDForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*models.Reward, error) {
	return scanReward(q.QueryRow(ctx,
		`SELECT `+rewardColumns+` FROM rewards WHERE id = $1 FOR UPDATE`, id))
}

// DecrementQuantity takes one unit of stock and deactivates the reward
// when it runs out, in a single guarded statement.
func (r *RewardRepo) DecrementQuantity(ctx context.Context, q Querier, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `
		UPDATE rewards
		SET quantity = quantity - 1,
		    status = CASE WHEN quantity - 1 <= 0 THEN $2 ELSE status END,
		    updated_at = now()
		WHERE id = $1 AND quantity > 0 AND status = $3
	`, id, models.RewardStatusInactive, models.RewardStatusActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrRewardUnavailable
	}
	return nil
}

func (r *RewardRepo) CreateRedemption(ctx context.Context, q Querier, e *models.RewardRedemption) error {
	return q.QueryRow(ctx, `
		INSERT INTO reward_redemptions (account_id, reward_id, points_charged, shipping_address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, redeemed_at
	`, e.AccountID, e.RewardID, e.PointsCharged, e.ShippingAddress,
	).Scan(&e.ID, &e.RedeemedAt)
}

func (r *RewardRepo) List(ctx context.Context, activeOnly bool) ([]models.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards`
	args := []any{}
	if activeOnly {
		query += ` WHERE status = $1`
		args = append(args, models.RewardStatusActive)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rewards []models.Reward
	for rows.Next() {
		rw, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, *rw)
	}
	return rewards, rows.Err()
}
