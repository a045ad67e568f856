package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ExportJSON dumps the full ledger plus the catalog so a user can take
// their data elsewhere.
func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	protocols, err := handler.repositories.Protocols.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export data")
	}
	entries, err := handler.repositories.Progress.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export data")
	}

	c.Set(fiber.HeaderContentDisposition, exportAttachment("json"))
	return c.JSON(fiber.Map{
		"exportedAt": time.Now().In(handler.location),
		"user":       user,
		"protocols":  protocols,
		"progress":   entries,
	})
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.repositories.Progress.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export data")
	}

	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)
	if err := writer.Write([]string{"date", "completed_count", "completed_ids", "total_time_minutes", "xp_earned"}); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export data")
	}

	for _, entry := range entries {
		ids := make([]string, 0, len(entry.Completed))
		for _, id := range entry.Completed {
			ids = append(ids, strconv.FormatUint(uint64(id), 10))
		}
		record := []string{
			entry.Date.In(handler.location).Format("2006-01-02"),
			strconv.Itoa(len(entry.Completed)),
			strings.Join(ids, " "),
			strconv.Itoa(entry.TotalTime),
			strconv.Itoa(entry.XPEarned),
		}
		if err := writer.Write(record); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to export data")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export data")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, exportAttachment("csv"))
	return c.Send(buffer.Bytes())
}

func exportAttachment(extension string) string {
	return fmt.Sprintf(`attachment; filename="trackora-export.%s"`, extension)
}
