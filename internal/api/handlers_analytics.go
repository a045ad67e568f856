package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetAnalyticsOverview(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	overview, err := handler.analyticsService.BuildOverview(user, time.Now().In(handler.location), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build analytics")
	}
	return c.JSON(overview)
}
