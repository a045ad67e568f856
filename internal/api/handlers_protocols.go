package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/trackora/trackora/internal/services"
)

// ListProtocols returns the catalog in stored order. `category` narrows to
// one category, `q` runs a substring search; `q` wins when both are given.
func (handler *Handler) ListProtocols(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if query := strings.TrimSpace(c.Query("q")); query != "" {
		protocols, err := handler.protocolService.Search(user.ID, query)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load protocols")
		}
		return c.JSON(protocols)
	}

	protocols, err := handler.protocolService.List(user.ID, strings.TrimSpace(c.Query("category")))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load protocols")
	}
	return c.JSON(protocols)
}

func (handler *Handler) CreateProtocol(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := protocolInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	protocol, err := handler.protocolService.Add(user.ID, services.ProtocolInput{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Time:        input.Time,
		XP:          input.XP,
		Priority:    input.Priority,
	}, time.Now().In(handler.location))
	if err != nil {
		if errors.Is(err, services.ErrProtocolTitleRequired) ||
			errors.Is(err, services.ErrProtocolInvalidCategory) ||
			errors.Is(err, services.ErrProtocolInvalidTime) ||
			errors.Is(err, services.ErrProtocolInvalidPriority) {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to create protocol")
	}
	return c.Status(fiber.StatusCreated).JSON(protocol)
}

// DeleteProtocol removes a catalog entry. Historical ledger rows are not
// rewritten; stale IDs in them are skipped on read.
func (handler *Handler) DeleteProtocol(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	protocolID, err := parseUintParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid protocol id")
	}

	if err := handler.protocolService.Remove(user.ID, protocolID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete protocol")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
