package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/trackora/trackora/internal/services"
)

// GetDashboard hydrates everything a dashboard page needs in one request:
// the user aggregate, the catalog, today's ledger, the weekly snapshot and
// the analysis text.
func (handler *Handler) GetDashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	now := time.Now().In(handler.location)
	protocols, err := handler.protocolService.List(user.ID, "")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load protocols")
	}

	today, err := handler.progressService.FetchDay(user.ID, now, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load progress")
	}

	week, err := handler.dashboardService.BuildWeeklySnapshot(user.ID, len(protocols), now, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load weekly snapshot")
	}

	return c.JSON(fiber.Map{
		"user":      user,
		"protocols": protocols,
		"today":     today,
		"week":      week,
		"analysis":  services.DailyAnalysisText(today, user),
	})
}
