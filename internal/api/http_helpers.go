package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

const dayParamLayout = "2006-01-02"

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseDayParam(raw string, location *time.Location) (time.Time, error) {
	return time.ParseInLocation(dayParamLayout, raw, location)
}

func parseUintParam(raw string) (uint, error) {
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
