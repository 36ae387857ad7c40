package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/skycast/internal/models"
	"github.com/terraincognita07/skycast/internal/services"
	"github.com/terraincognita07/skycast/internal/weather"
)

type weatherResponse struct {
	weather.Reading
	IconURL       string `json:"icon_url"`
	TempFormatted string `json:"temp_formatted"`
}

// Weather serves AJAX lookups. City and units fall back to the application
// defaults; the city value is dispatched upstream as-is.
func (handler *Handler) Weather(c *fiber.Ctx) error {
	cityName := c.Query("city", models.DefaultCityName)
	units := c.Query("units", models.UnitImperial)

	reading, err := handler.fetcher.Fetch(c.Context(), cityName, units)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "could not fetch weather data")
	}

	return c.JSON(weatherResponse{
		Reading:       reading,
		IconURL:       weather.IconURL(reading.WeatherIcon),
		TempFormatted: weather.FormatTemperature(reading.Temperature, reading.Units),
	})
}

// WeatherDetail serves the single-city view: units come from the user's
// saved preference for the exact city name (imperial otherwise) and a fetch
// failure is reported, unlike the dashboard's silent omission.
func (handler *Handler) WeatherDetail(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cityName := c.Params("city")
	if cityName == "" {
		return apiError(c, fiber.StatusBadRequest, "city is required")
	}

	detail, err := handler.dashboard.CityDetail(c.Context(), user.ID, cityName)
	if err != nil {
		if errors.Is(err, services.ErrWeatherUnavailable) {
			return apiError(c, fiber.StatusNotFound, "could not fetch weather data for "+cityName)
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load weather detail")
	}

	return c.JSON(detail)
}
