package reward

import (
	"context"
	"errors"
	"fmt"
	"log"

	"kyro-backend/domain"
	"kyro-backend/internal/utils/mailing"
	"kyro-backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RewardService interface {
		GetRewards(ctx context.Context) ([]domain.RewardResponse, error)
		RedeemReward(ctx context.Context, rewardID string, userID string) (domain.RedeemRewardResponse, error)
	}

	rewardService struct {
		rewardRepository RewardRepository
		userRepository   user.UserRepository
	}
)

func NewRewardService(rewardRepository RewardRepository, userRepository user.UserRepository) RewardService {
	return &rewardService{
		rewardRepository: rewardRepository,
		userRepository:   userRepository,
	}
}

func (s *rewardService) GetRewards(ctx context.Context) ([]domain.RewardResponse, error) {
	rewards, err := s.rewardRepository.GetActiveRewards(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.RewardResponse, 0, len(rewards))
	for _, r := range rewards {
		result = append(result, domain.RewardResponse{
			ID:          r.ID.String(),
			Title:       r.Title,
			Description: r.Description,
			PointsCost:  r.PointsCost,
			ImageURL:    r.ImageURL,
		})
	}
	return result, nil
}

func (s *rewardService) RedeemReward(ctx context.Context, rewardID string, userID string) (domain.RedeemRewardResponse, error) {
	rewardUUID, err := uuid.Parse(rewardID)
	if err != nil {
		return domain.RedeemRewardResponse{}, domain.ErrParseUUID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RedeemRewardResponse{}, domain.ErrParseUUID
	}

	reward, err := s.rewardRepository.GetRewardByID(ctx, rewardUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RedeemRewardResponse{}, domain.ErrRewardNotFound
		}
		return domain.RedeemRewardResponse{}, err
	}

	redemption, remaining, err := s.rewardRepository.Redeem(ctx, userUUID, reward)
	if err != nil {
		return domain.RedeemRewardResponse{}, err
	}

	// Confirmation mail is best-effort; the redemption already landed.
	if u, err := s.userRepository.GetByID(ctx, userID); err == nil {
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p>You redeemed <b>%s</b> for %d points. Your remaining balance is %d points.</p>",
			u.Name, reward.Title, reward.PointsCost, remaining,
		)
		if err := mailing.SendMail(u.Email, "Your Kyro reward", body); err != nil {
			log.Printf("redemption mail to %s failed: %v", u.Email, err)
		}
	}

	return domain.RedeemRewardResponse{
		RedemptionID:    redemption.ID.String(),
		RewardTitle:     reward.Title,
		PointsSpent:     redemption.PointsSpent,
		RemainingPoints: remaining,
		RedeemedAt:      redemption.CreatedAt,
	}, nil
}
