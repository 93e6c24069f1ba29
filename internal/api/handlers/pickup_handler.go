package handlers

import (
	"errors"

	"kyro-backend/domain"
	"kyro-backend/internal/api/presenters"
	"kyro-backend/pkg/pickup"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PickupHandler interface {
		SchedulePickup(c *fiber.Ctx) error
		VerifyPickup(c *fiber.Ctx) error
		GetPickupHistory(c *fiber.Ctx) error
	}

	pickupHandler struct {
		pickupService pickup.PickupService
		validator     *validator.Validate
	}
)

func NewPickupHandler(pickupService pickup.PickupService, validator *validator.Validate) PickupHandler {
	return &pickupHandler{
		pickupService: pickupService,
		validator:     validator,
	}
}

func (h *pickupHandler) SchedulePickup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SchedulePickupRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSchedulePickup, domain.ErrMissingImage)
	}
	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSchedulePickup, err)
	}

	res, err := h.pickupService.SchedulePickup(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSchedulePickup, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSchedulePickup)
}

func (h *pickupHandler) VerifyPickup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	pickupID := c.Params("id")

	res, err := h.pickupService.VerifyPickup(c.Context(), pickupID, userID)
	if err != nil {
		// The status write may have landed while the credit is still pending;
		// report the settled state but flag the outcome as retryable.
		if errors.Is(err, domain.ErrCreditPending) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedVerifyPickup, err)
		}
		if errors.Is(err, domain.ErrPickupNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedVerifyPickup, err)
		}
		if errors.Is(err, domain.ErrVerificationUnavailable) || errors.Is(err, domain.ErrImageFetchFailed) {
			return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedVerifyPickup, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifyPickup, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessVerifyPickup)
}

func (h *pickupHandler) GetPickupHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	history, err := h.pickupService.GetPickupHistory(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPickupHistory, err)
	}

	return presenters.SuccessResponse(c, history, fiber.StatusOK, domain.MessageSuccessGetPickupHistory)
}
