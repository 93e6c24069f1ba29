package pickup

import (
	"context"
	"errors"
	"time"

	"kyro-backend/domain"
	"kyro-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PickupRepository interface {
		Create(ctx context.Context, pickup *entities.PickupRequest) error
		GetByID(ctx context.Context, id uuid.UUID) (*entities.PickupRequest, error)
		// UpdateVerification atomically moves a pending request to a terminal
		// status together with its verdict. Re-applying the same terminal
		// status is a no-op; flipping to a different one is a caller error.
		UpdateVerification(ctx context.Context, id uuid.UUID, status string, verdictJSON string) (*entities.PickupRequest, error)
		GetByUser(ctx context.Context, userID uuid.UUID) ([]*entities.PickupRequest, error)
		ListVerifiedUncredited(ctx context.Context) ([]*entities.PickupRequest, error)
		ListStalePending(ctx context.Context, olderThan time.Duration) ([]*entities.PickupRequest, error)
	}

	pickupRepository struct {
		db *gorm.DB
	}
)

func NewPickupRepository(db *gorm.DB) PickupRepository {
	return &pickupRepository{
		db: db,
	}
}

func (r *pickupRepository) Create(ctx context.Context, pickup *entities.PickupRequest) error {
	return r.db.WithContext(ctx).Create(pickup).Error
}

func (r *pickupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PickupRequest, error) {
	var pickup entities.PickupRequest
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&pickup).Error; err != nil {
		return nil, err
	}
	return &pickup, nil
}

func (r *pickupRepository) UpdateVerification(ctx context.Context, id uuid.UUID, status string, verdictJSON string) (*entities.PickupRequest, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.PickupRequest{}).
		Where("id = ? AND verification_status = ?", id, domain.VerificationStatusPending).
		Updates(map[string]any{
			"verification_status": status,
			"verification_result": verdictJSON,
			"updated_at":          time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrPickupNotFound
			}
			return nil, err
		}
		if existing.VerificationStatus == status {
			return existing, nil
		}
		return nil, domain.ErrPickupAlreadySettled
	}

	return r.GetByID(ctx, id)
}

func (r *pickupRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*entities.PickupRequest, error) {
	var pickups []*entities.PickupRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&pickups).Error; err != nil {
		return nil, err
	}
	return pickups, nil
}

func (r *pickupRepository) ListVerifiedUncredited(ctx context.Context) ([]*entities.PickupRequest, error) {
	var pickups []*entities.PickupRequest
	if err := r.db.WithContext(ctx).
		Joins("LEFT JOIN points_entries ON points_entries.pickup_request_id = pickup_requests.id").
		Where("pickup_requests.verification_status = ? AND points_entries.id IS NULL", domain.VerificationStatusVerified).
		Find(&pickups).Error; err != nil {
		return nil, err
	}
	return pickups, nil
}

func (r *pickupRepository) ListStalePending(ctx context.Context, olderThan time.Duration) ([]*entities.PickupRequest, error) {
	var pickups []*entities.PickupRequest
	cutoff := time.Now().Add(-olderThan)
	if err := r.db.WithContext(ctx).
		Where("verification_status = ? AND created_at < ?", domain.VerificationStatusPending, cutoff).
		Order("created_at ASC").
		Find(&pickups).Error; err != nil {
		return nil, err
	}
	return pickups, nil
}
