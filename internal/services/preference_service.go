package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/skycast/internal/models"
)

var (
	ErrInvalidCityName     = errors.New("invalid city name")
	ErrInvalidUnit         = errors.New("invalid temperature unit")
	ErrPreferenceExists    = errors.New("preference already exists")
	ErrPreferenceNotFound  = errors.New("preference not found")
	ErrCreatePreference    = errors.New("create preference failed")
	ErrListPreferences     = errors.New("list preferences failed")
	ErrBootstrapPreference = errors.New("bootstrap default preference failed")
)

const maxCityNameLength = 100

type PreferenceRepository interface {
	ListByUser(userID uint) ([]models.WeatherPreference, error)
	CountByUser(userID uint) (int64, error)
	ExistsByUserAndCity(userID uint, cityName string) (bool, error)
	FindByUserAndCity(userID uint, cityName string) (models.WeatherPreference, bool, error)
	Create(preference *models.WeatherPreference) error
	DeleteByIDForUser(preferenceID uint, userID uint) (int64, error)
}

type PreferenceService struct {
	preferences PreferenceRepository
}

func NewPreferenceService(preferences PreferenceRepository) *PreferenceService {
	return &PreferenceService{preferences: preferences}
}

// ListForUser returns the user's saved cities, favorites first then
// alphabetical. A user with zero preferences gets exactly one default
// preference persisted before the list is returned; the bootstrap never
// repeats once any preference exists.
func (service *PreferenceService) ListForUser(userID uint) ([]models.WeatherPreference, error) {
	count, err := service.preferences.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListPreferences, err)
	}
	if count == 0 {
		defaultPreference := models.WeatherPreference{
			UserID:          userID,
			CityName:        models.DefaultCityName,
			CountryCode:     models.DefaultCountryCode,
			IsFavorite:      true,
			TemperatureUnit: models.UnitImperial,
			CreatedAt:       time.Now().UTC(),
		}
		if err := service.preferences.Create(&defaultPreference); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBootstrapPreference, err)
		}
	}

	preferences, err := service.preferences.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListPreferences, err)
	}
	return preferences, nil
}

// CreateForUser saves one city for the user. The (user, city) pair is unique
// case-sensitively; a duplicate leaves the store unchanged.
func (service *PreferenceService) CreateForUser(userID uint, cityName string, countryCode string, unit string, favorite bool) (models.WeatherPreference, error) {
	cityName = strings.TrimSpace(cityName)
	countryCode = strings.TrimSpace(countryCode)
	if cityName == "" || len(cityName) > maxCityNameLength {
		return models.WeatherPreference{}, ErrInvalidCityName
	}
	if unit == "" {
		unit = models.UnitImperial
	}
	if !models.ValidUnit(unit) {
		return models.WeatherPreference{}, ErrInvalidUnit
	}

	exists, err := service.preferences.ExistsByUserAndCity(userID, cityName)
	if err != nil {
		return models.WeatherPreference{}, fmt.Errorf("%w: %v", ErrCreatePreference, err)
	}
	if exists {
		return models.WeatherPreference{}, ErrPreferenceExists
	}

	preference := models.WeatherPreference{
		UserID:          userID,
		CityName:        cityName,
		CountryCode:     countryCode,
		IsFavorite:      favorite,
		TemperatureUnit: unit,
		CreatedAt:       time.Now().UTC(),
	}
	if err := service.preferences.Create(&preference); err != nil {
		// The unique index backstops the existence check under races.
		return models.WeatherPreference{}, ErrPreferenceExists
	}
	return preference, nil
}

// DeleteForUser removes the preference only when it belongs to userID, so a
// user can never affect another user's preference.
func (service *PreferenceService) DeleteForUser(userID uint, preferenceID uint) error {
	deleted, err := service.preferences.DeleteByIDForUser(preferenceID, userID)
	if err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	if deleted == 0 {
		return ErrPreferenceNotFound
	}
	return nil
}

// ResolveUnits returns the unit system of the user's saved preference for the
// exact city name, or imperial when no such preference exists.
func (service *PreferenceService) ResolveUnits(userID uint, cityName string) (string, error) {
	preference, found, err := service.preferences.FindByUserAndCity(userID, cityName)
	if err != nil {
		return "", fmt.Errorf("resolve units: %w", err)
	}
	if !found || !models.ValidUnit(preference.TemperatureUnit) {
		return models.UnitImperial, nil
	}
	return preference.TemperatureUnit, nil
}
