package handlers

import (
	"errors"

	"kyro-backend/domain"
	"kyro-backend/internal/api/presenters"
	"kyro-backend/pkg/reward"

	"github.com/gofiber/fiber/v2"
)

type (
	RewardHandler interface {
		GetRewards(c *fiber.Ctx) error
		RedeemReward(c *fiber.Ctx) error
	}

	rewardHandler struct {
		rewardService reward.RewardService
	}
)

func NewRewardHandler(rewardService reward.RewardService) RewardHandler {
	return &rewardHandler{
		rewardService: rewardService,
	}
}

func (h *rewardHandler) GetRewards(c *fiber.Ctx) error {
	rewards, err := h.rewardService.GetRewards(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRewards, err)
	}

	return presenters.SuccessResponse(c, rewards, fiber.StatusOK, domain.MessageSuccessGetRewards)
}

func (h *rewardHandler) RedeemReward(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	rewardID := c.Params("id")

	res, err := h.rewardService.RedeemReward(c.Context(), rewardID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRewardNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedRedeemReward, err)
		}
		if errors.Is(err, domain.ErrInsufficientPoints) {
			return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, domain.MessageFailedRedeemReward, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRedeemReward, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRedeemReward)
}
