package reward

import (
	"context"
	"time"

	"kyro-backend/domain"
	"kyro-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RewardRepository interface {
		GetActiveRewards(ctx context.Context) ([]*entities.Reward, error)
		GetRewardByID(ctx context.Context, id uuid.UUID) (*entities.Reward, error)
		// Redeem debits the reward's cost and records the redemption in one
		// transaction. The conditional decrement never drives a balance
		// negative; an unaffordable redemption fails without any mutation.
		Redeem(ctx context.Context, userID uuid.UUID, reward *entities.Reward) (*entities.RewardRedemption, int, error)
	}

	rewardRepository struct {
		db *gorm.DB
	}
)

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{
		db: db,
	}
}

func (r *rewardRepository) GetActiveRewards(ctx context.Context) ([]*entities.Reward, error) {
	var rewards []*entities.Reward
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("points_cost ASC").
		Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

func (r *rewardRepository) GetRewardByID(ctx context.Context, id uuid.UUID) (*entities.Reward, error) {
	var reward entities.Reward
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&reward).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *rewardRepository) Redeem(ctx context.Context, userID uuid.UUID, reward *entities.Reward) (*entities.RewardRedemption, int, error) {
	var redemption *entities.RewardRedemption
	var remaining int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		res := tx.Model(&entities.UserPoints{}).
			Where("user_id = ? AND total_points >= ?", userID, reward.PointsCost).
			Updates(map[string]any{
				"total_points": gorm.Expr("total_points - ?", reward.PointsCost),
				"updated_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInsufficientPoints
		}

		redemption = &entities.RewardRedemption{
			ID:          uuid.New(),
			UserID:      userID,
			RewardID:    reward.ID,
			PointsSpent: reward.PointsCost,
			Timestamp: entities.Timestamp{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		if err := tx.Create(redemption).Error; err != nil {
			return err
		}

		var up entities.UserPoints
		if err := tx.Where("user_id = ?", userID).First(&up).Error; err != nil {
			return err
		}
		remaining = up.TotalPoints
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return redemption, remaining, nil
}
