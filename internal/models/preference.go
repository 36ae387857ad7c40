package models

import "time"

const (
	UnitImperial = "imperial"
	UnitMetric   = "metric"
)

const (
	DefaultCityName    = "Poughkeepsie"
	DefaultCountryCode = "US"
)

// WeatherPreference is one saved city for one user. The (user, city name)
// pair is unique, matched case-sensitively as stored.
type WeatherPreference struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;uniqueIndex:uidx_user_city" json:"user_id"`
	CityName        string    `gorm:"not null;uniqueIndex:uidx_user_city" json:"city_name"`
	CountryCode     string    `gorm:"not null;default:''" json:"country_code"`
	IsFavorite      bool      `gorm:"not null" json:"is_favorite"`
	TemperatureUnit string    `gorm:"not null;default:imperial" json:"temperature_unit"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}

// ValidUnit reports whether unit is one of the supported unit systems.
func ValidUnit(unit string) bool {
	return unit == UnitImperial || unit == UnitMetric
}
