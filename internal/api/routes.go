package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Delete("/account", handler.AuthRequired, handler.DeleteAccount)

	api.Get("/dashboard", handler.AuthRequired, handler.Dashboard)
	api.Get("/weather", handler.AuthRequired, handler.Weather)
	api.Get("/weather/:city", handler.AuthRequired, handler.WeatherDetail)

	preferences := api.Group("/preferences", handler.AuthRequired)
	preferences.Get("", handler.ListPreferences)
	preferences.Post("", handler.CreatePreference)
	preferences.Delete("/:id", handler.DeletePreference)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Put("", handler.UpdateProfile)
}
