package models

import "time"

// WeatherSnapshot is one immutable recorded upstream reading. Snapshots are
// append-only: they carry no foreign keys, multiple rows may exist per city,
// and the application never updates them.
type WeatherSnapshot struct {
	ID                 uint      `gorm:"primaryKey"`
	CityName           string    `gorm:"not null;index:idx_city_captured"`
	CountryCode        string    `gorm:"not null;default:''"`
	Temperature        float64   `gorm:"not null"`
	FeelsLike          float64   `gorm:"not null"`
	TempMin            float64   `gorm:"not null"`
	TempMax            float64   `gorm:"not null"`
	Pressure           int       `gorm:"not null"`
	Humidity           int       `gorm:"not null"`
	WeatherMain        string    `gorm:"not null"`
	WeatherDescription string    `gorm:"not null"`
	WeatherIcon        string    `gorm:"not null"`
	WindSpeed          float64   `gorm:"not null"`
	WindDeg            int       `gorm:"not null;default:0"`
	Clouds             int       `gorm:"not null"`
	CapturedAt         time.Time `gorm:"not null;index:idx_city_captured"`
}
