package points

import (
	"context"
	"errors"

	"kyro-backend/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PointsService interface {
		GetUserPoints(ctx context.Context, userID string) (domain.UserPointsResponse, error)
		CreditForPickup(ctx context.Context, userID, pickupRequestID uuid.UUID, amount int) (bool, error)
	}

	pointsService struct {
		pointsRepository PointsRepository
	}
)

func NewPointsService(pointsRepository PointsRepository) PointsService {
	return &pointsService{
		pointsRepository: pointsRepository,
	}
}

func (s *pointsService) GetUserPoints(ctx context.Context, userID string) (domain.UserPointsResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UserPointsResponse{}, domain.ErrParseUUID
	}

	up, err := s.pointsRepository.GetUserPoints(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No credits yet; a user without a row simply has zero points.
			return domain.UserPointsResponse{UserID: userID, TotalPoints: 0}, nil
		}
		return domain.UserPointsResponse{}, err
	}

	return domain.UserPointsResponse{
		UserID:      up.UserID.String(),
		TotalPoints: up.TotalPoints,
		UpdatedAt:   up.UpdatedAt,
	}, nil
}

func (s *pointsService) CreditForPickup(ctx context.Context, userID, pickupRequestID uuid.UUID, amount int) (bool, error) {
	return s.pointsRepository.Credit(ctx, userID, pickupRequestID, amount)
}
