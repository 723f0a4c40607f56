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

// RewardService manages the points catalog and redemption. Redemption
// debits points and takes stock atomically so a donor can never spend the
// same points twice or claim the last unit twice.
type RewardService struct {
	pool        *pgxpool.Pool
	rewardRepo  *repositories.RewardRepo
	accountRepo *repositories.AccountRepo
	auditRepo   *repositories.AuditRepo
	publisher   events.Publisher
	log         *zap.Logger
}

func NewRewardService(
	pool *pgxpool.Pool,
	rewardRepo *repositories.RewardRepo,
	accountRepo *repositories.AccountRepo,
	auditRepo *repositories.AuditRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *RewardService {
	return &RewardService{
		pool:        pool,
		rewardRepo:  rewardRepo,
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
		publisher:   publisher,
		log:         log,
	}
}

type CreateRewardInput struct {
	Name        string
	Description string
	PointCost   int64
	Quantity    int
}

func (s *RewardService) Create(ctx context.Context, adminID uuid.UUID, in CreateRewardInput) (*models.Reward, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: reward name is required", models.ErrInvalidInput)
	}
	if in.PointCost <= 0 {
		return nil, fmt.Errorf("%w: point cost must be positive", models.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", models.ErrInvalidInput)
	}

	reward := &models.Reward{
		Name:        in.Name,
		Description: in.Description,
		PointCost:   in.PointCost,
		Quantity:    in.Quantity,
		Status:      models.RewardStatusActive,
	}
	if err := s.rewardRepo.Create(ctx, reward); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &adminID,
		ActorType:   "admin",
		Action:      "reward_created",
		EntityType:  "reward",
		EntityID:    &reward.ID,
		Meta:        map[string]any{"name": reward.Name, "point_cost": reward.PointCost, "quantity": reward.Quantity},
	})

	return reward, nil
}

// Redeem exchanges points for one unit of a reward. The point debit, the
// stock decrement and the redemption record commit as one transaction;
// the charge is the catalog price at redemption time.
func (s *RewardService) Redeem(ctx context.Context, accountID, rewardID uuid.UUID, shippingAddress string) (*models.RewardRedemption, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, fmt.Errorf("%w: shipping address is required", models.ErrInvalidInput)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	reward, err := s.rewardRepo.GetByIDForUpdate(ctx, tx, rewardID)
	if err != nil {
		return nil, err
	}
	if !reward.Available() {
		return nil, models.ErrRewardUnavailable
	}

	if _, err := s.accountRepo.DebitPoints(ctx, tx, accountID, reward.PointCost); err != nil {
		return nil, err
	}
	if err := s.rewardRepo.DecrementQuantity(ctx, tx, rewardID); err != nil {
		return nil, err
	}

	redemption := &models.RewardRedemption{
		AccountID:       accountID,
		RewardID:        rewardID,
		PointsCharged:   reward.PointCost,
		ShippingAddress: shippingAddress,
	}
	if err := s.rewardRepo.CreateRedemption(ctx, tx, redemption); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &accountID,
		ActorType:   "user",
		Action:      "reward_redeemed",
		EntityType:  "reward",
		EntityID:    &rewardID,
		Meta:        map[string]any{"points_charged": reward.PointCost},
	})

	_ = s.publisher.Publish(ctx, events.StreamReward, events.Event{
		Type: events.EventRewardRedeemed,
		Payload: map[string]any{
			"redemption_id":  redemption.ID.String(),
			"reward_id":      rewardID.String(),
			"account_id":     accountID.String(),
			"points_charged": reward.PointCost,
		},
	})

	return redemption, nil
}

func (s *RewardService) GetByID(ctx context.Context, id uuid.UUID) (*models.Reward, error) {
	return s.rewardRepo.GetByID(ctx, id)
}

func (s *RewardService) List(ctx context.Context, activeOnly bool) ([]models.Reward, error) {
	return s.rewardRepo.List(ctx, activeOnly)
}
