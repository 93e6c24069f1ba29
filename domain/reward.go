package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRewards   = "rewards retrieved successfully"
	MessageSuccessRedeemReward = "reward redeemed successfully"

	MessageFailedGetRewards   = "failed to retrieve rewards"
	MessageFailedRedeemReward = "failed to redeem reward"

	ErrRewardNotFound     = errors.New("reward not found")
	ErrInsufficientPoints = errors.New("insufficient points")
)

type (
	RewardResponse struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
		PointsCost  int    `json:"points_cost"`
		ImageURL    string `json:"image_url,omitempty"`
	}

	RedeemRewardResponse struct {
		RedemptionID    string    `json:"redemption_id"`
		RewardTitle     string    `json:"reward_title"`
		PointsSpent     int       `json:"points_spent"`
		RemainingPoints int       `json:"remaining_points"`
		RedeemedAt      time.Time `json:"redeemed_at"`
	}
)
