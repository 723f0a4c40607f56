package repositories

import (
	"context"
	"errors"

	"github.com/givehub/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var a models.Account
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, first_name, last_name, role, total_points, created_at
		FROM accounts WHERE id = $1
	`, id).Scan(&a.ID, &a.Email, &a.FirstName, &a.LastName, &a.Role, &a.TotalPoints, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// CreditPoints adds loyalty points to the account balance. No upper bound.
func (r *AccountRepo) CreditPoints(ctx context.Context, q Querier, id uuid.UUID, points int64) (int64, error) {
	var balance int64
	err := q.QueryRow(ctx, `
		UPDATE accounts SET total_points = total_points + $2 WHERE id = $1
		RETURNING total_points
	`, id, points).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, models.ErrAccountNotFound
		}
		return 0, err
	}
	return balance, nil
}

// DebitPoints subtracts points, guarded in SQL so the balance can never go
// negative under concurrent redemptions.
func (r *AccountRepo) DebitPoints(ctx context.Context, q Querier, id uuid.UUID, points int64) (int64, error) {
	var balance int64
	err := q.QueryRow(ctx, `
		UPDATE accounts SET total_points = total_points - $2
		WHERE id = $1 AND total_points >= $2
		RETURNING total_points
	`, id, points).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	if _, lookupErr := r.existsOn(ctx, q, id); lookupErr != nil {
		return 0, lookupErr
	}
	return 0, models.ErrInsufficientPoints
}

func (r *AccountRepo) existsOn(ctx context.Context, q Querier, id uuid.UUID) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, models.ErrAccountNotFound
	}
	return true, nil
}
