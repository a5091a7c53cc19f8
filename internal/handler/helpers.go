package handler

import (
	"time"

	"go-retail-pos/internal/service"
	"go-retail-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// getUserID extracts the authenticated user's id from the JWT context
// (set by the auth middleware).
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// respondServiceError maps domain error kinds onto HTTP statuses.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case service.IsNotFound(err):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case service.IsConflict(err):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
}

// respondValidation writes the standard 400 validation failure body.
func respondValidation(c *fiber.Ctx, errs []*validator.ErrorResponse) error {
	return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
}

// parseDateRange reads optional from/to query params (YYYY-MM-DD). The "to"
// bound is pushed to end of day so the range is inclusive.
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, err
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}
