package handlers

import (
	"strconv"

	"kyro-backend/domain"
	"kyro-backend/internal/api/presenters"
	"kyro-backend/pkg/leaderboard"

	"github.com/gofiber/fiber/v2"
)

type (
	LeaderboardHandler interface {
		GetLeaderboard(c *fiber.Ctx) error
		GetGlobalStats(c *fiber.Ctx) error
	}

	leaderboardHandler struct {
		leaderboardService leaderboard.LeaderboardService
	}
)

func NewLeaderboardHandler(leaderboardService leaderboard.LeaderboardService) LeaderboardHandler {
	return &leaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

func (h *leaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	entries, err := h.leaderboardService.GetLeaderboard(c.Context(), limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetLeaderboard, err)
	}

	return presenters.SuccessResponse(c, entries, fiber.StatusOK, domain.MessageSuccessGetLeaderboard)
}

func (h *leaderboardHandler) GetGlobalStats(c *fiber.Ctx) error {
	stats, err := h.leaderboardService.GetGlobalStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetGlobalStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetGlobalStats)
}
