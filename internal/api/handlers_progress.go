package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/trackora/trackora/internal/services"
)

func (handler *Handler) GetTodayProgress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entry, err := handler.progressService.FetchDay(user.ID, time.Now().In(handler.location), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load progress")
	}
	return c.JSON(entry)
}

func (handler *Handler) GetDayProgress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, err := handler.progressService.FetchDay(user.ID, day, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load progress")
	}
	return c.JSON(entry)
}

// ToggleCompletion flips one protocol in today's ledger and returns the
// refreshed ledger, user aggregate and analysis text so the caller can
// re-render without extra round-trips.
func (handler *Handler) ToggleCompletion(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	protocolID, err := parseUintParam(c.Params("protocolID"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid protocol id")
	}

	now := time.Now().In(handler.location)
	entry, completedNow, err := handler.progressService.ToggleCompletion(user, protocolID, now, handler.location)
	if err != nil {
		if errors.Is(err, services.ErrProtocolNotInCatalog) {
			// Unknown or deleted protocol: the ledger was left untouched.
			return apiError(c, fiber.StatusNotFound, "protocol not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to update progress")
	}

	return c.JSON(fiber.Map{
		"progress":  entry,
		"completed": completedNow,
		"user":      user,
		"analysis":  services.DailyAnalysisText(entry, user),
	})
}

// ResetDay clears today's ledger record. The user aggregate is untouched.
func (handler *Handler) ResetDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entry, err := handler.progressService.ResetDay(user.ID, time.Now().In(handler.location), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to reset progress")
	}
	return c.JSON(entry)
}
