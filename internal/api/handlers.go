package api

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/skycast/internal/db"
	"github.com/terraincognita07/skycast/internal/services"
)

var validate = validator.New()

// Handler carries the request-scoped dependencies of every route.
type Handler struct {
	secretKey    []byte
	cookieSecure bool
	users        *db.UserRepository
	profiles     *services.ProfileService
	preferences  *services.PreferenceService
	dashboard    *services.DashboardService
	fetcher      services.WeatherFetcher
}

type credentialsInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

type preferenceInput struct {
	CityName        string `json:"city_name" form:"city_name" validate:"required,max=100"`
	CountryCode     string `json:"country_code" form:"country_code" validate:"omitempty,max=10"`
	TemperatureUnit string `json:"temperature_unit" form:"temperature_unit" validate:"omitempty,oneof=imperial metric"`
	IsFavorite      *bool  `json:"is_favorite" form:"is_favorite"`
}

type profileInput struct {
	PhoneNumber string `json:"phone_number" form:"phone_number" validate:"omitempty,max=20"`
	DateOfBirth string `json:"date_of_birth" form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Avatar      string `json:"avatar" form:"avatar" validate:"omitempty,max=200"`
}

type deleteAccountInput struct {
	Password string `json:"password" form:"password" validate:"required"`
}

const defaultAuthTokenTTL = 7 * 24 * time.Hour

func NewHandler(repositories *db.Repositories, secret string, fetcher services.WeatherFetcher, cookieSecure bool) *Handler {
	preferences := services.NewPreferenceService(repositories.Preferences)
	return &Handler{
		secretKey:    []byte(secret),
		cookieSecure: cookieSecure,
		users:        repositories.Users,
		profiles:     services.NewProfileService(repositories.Profiles),
		preferences:  preferences,
		dashboard:    services.NewDashboardService(preferences, fetcher),
		fetcher:      fetcher,
	}
}
