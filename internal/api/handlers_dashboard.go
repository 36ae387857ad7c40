package api

import (
	"github.com/gofiber/fiber/v2"
)

// Dashboard returns one decorated weather entry per saved preference, in
// preference order. Cities whose fetch failed are omitted; a partially or
// fully empty list is not an error.
func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.dashboard.Assemble(c.Context(), user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to assemble dashboard")
	}

	return c.JSON(fiber.Map{"weather_list": entries})
}
