package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/skycast/internal/services"
)

func (handler *Handler) ListPreferences(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	preferences, err := handler.preferences.ListForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load preferences")
	}
	return c.JSON(fiber.Map{"preferences": preferences})
}

func (handler *Handler) CreatePreference(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input preferenceInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid preference input")
	}

	favorite := true
	if input.IsFavorite != nil {
		favorite = *input.IsFavorite
	}

	preference, err := handler.preferences.CreateForUser(user.ID, input.CityName, input.CountryCode, input.TemperatureUnit, favorite)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPreferenceExists):
			return apiError(c, fiber.StatusConflict, input.CityName+" is already in your preferences")
		case errors.Is(err, services.ErrInvalidCityName), errors.Is(err, services.ErrInvalidUnit):
			return apiError(c, fiber.StatusBadRequest, "invalid preference input")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to create preference")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(preference)
}

func (handler *Handler) DeletePreference(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	preferenceID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid preference id")
	}

	if err := handler.preferences.DeleteForUser(user.ID, uint(preferenceID)); err != nil {
		if errors.Is(err, services.ErrPreferenceNotFound) {
			return apiError(c, fiber.StatusNotFound, "preference not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete preference")
	}

	return c.JSON(fiber.Map{"ok": true})
}
