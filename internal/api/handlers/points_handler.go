package handlers

import (
	"kyro-backend/domain"
	"kyro-backend/internal/api/presenters"
	"kyro-backend/pkg/points"

	"github.com/gofiber/fiber/v2"
)

type (
	PointsHandler interface {
		GetMyPoints(c *fiber.Ctx) error
	}

	pointsHandler struct {
		pointsService points.PointsService
	}
)

func NewPointsHandler(pointsService points.PointsService) PointsHandler {
	return &pointsHandler{
		pointsService: pointsService,
	}
}

func (h *pointsHandler) GetMyPoints(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.pointsService.GetUserPoints(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetUserPoints, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUserPoints)
}
