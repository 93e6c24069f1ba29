package points

import (
	"context"
	"time"

	"kyro-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	PointsRepository interface {
		GetUserPoints(ctx context.Context, userID uuid.UUID) (*entities.UserPoints, error)
		// Credit applies a settlement credit exactly once per pickup request.
		// It reports false without error when the request was already credited.
		Credit(ctx context.Context, userID, pickupRequestID uuid.UUID, amount int) (bool, error)
	}

	pointsRepository struct {
		db *gorm.DB
	}
)

func NewPointsRepository(db *gorm.DB) PointsRepository {
	return &pointsRepository{
		db: db,
	}
}

func (r *pointsRepository) GetUserPoints(ctx context.Context, userID uuid.UUID) (*entities.UserPoints, error) {
	var up entities.UserPoints
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&up).Error; err != nil {
		return nil, err
	}
	return &up, nil
}

func (r *pointsRepository) Credit(ctx context.Context, userID, pickupRequestID uuid.UUID, amount int) (bool, error) {
	credited := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// The unique index on pickup_request_id is the at-most-once guard:
		// a retried settlement inserts nothing and skips the increment.
		entry := &entities.PointsEntry{
			ID:              uuid.New(),
			UserID:          userID,
			PickupRequestID: pickupRequestID,
			Amount:          amount,
			Timestamp: entities.Timestamp{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pickup_request_id"}},
			DoNothing: true,
		}).Create(entry)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		// Atomic upsert-increment; concurrent credits for the same user both
		// land because the addition happens inside the database.
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"total_points": gorm.Expr("user_points.total_points + ?", amount),
				"updated_at":   now,
			}),
		}).Create(&entities.UserPoints{
			UserID:      userID,
			TotalPoints: amount,
			UpdatedAt:   now,
		}).Error; err != nil {
			return err
		}

		credited = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return credited, nil
}
