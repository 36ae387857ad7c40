package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/terraincognita07/skycast/internal/weather"
)

var ErrWeatherUnavailable = errors.New("weather data unavailable")

const (
	defaultFetchWorkers = 4
	defaultFetchTimeout = 10 * time.Second
)

// WeatherFetcher is the retrieval pipeline contract the dashboard depends on.
type WeatherFetcher interface {
	Fetch(ctx context.Context, cityName string, units string) (weather.Reading, error)
}

// Entry is one dashboard row: a normalized reading decorated for display.
type Entry struct {
	PreferenceID  uint            `json:"preference_id"`
	Reading       weather.Reading `json:"reading"`
	IconURL       string          `json:"icon_url"`
	TempFormatted string          `json:"temp_formatted"`
}

// DetailEntry carries the four formatted temperatures of the single-city view.
type DetailEntry struct {
	Reading            weather.Reading `json:"reading"`
	IconURL            string          `json:"icon_url"`
	TempFormatted      string          `json:"temp_formatted"`
	FeelsLikeFormatted string          `json:"feels_like_formatted"`
	TempMinFormatted   string          `json:"temp_min_formatted"`
	TempMaxFormatted   string          `json:"temp_max_formatted"`
}

type DashboardService struct {
	preferences  *PreferenceService
	fetcher      WeatherFetcher
	fetchWorkers int
	fetchTimeout time.Duration
}

func NewDashboardService(preferences *PreferenceService, fetcher WeatherFetcher) *DashboardService {
	return &DashboardService{
		preferences:  preferences,
		fetcher:      fetcher,
		fetchWorkers: defaultFetchWorkers,
		fetchTimeout: defaultFetchTimeout,
	}
}

// Assemble produces one decorated entry per saved preference. Fetches run
// concurrently under a worker limit with a per-entry timeout; results keep
// the preference order and entries whose fetch failed are omitted. One city
// failing never prevents the others from displaying.
func (service *DashboardService) Assemble(ctx context.Context, userID uint) ([]Entry, error) {
	preferences, err := service.preferences.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	results := make([]*Entry, len(preferences))
	semaphore := make(chan struct{}, service.fetchWorkers)
	var group sync.WaitGroup

	for index, preference := range preferences {
		group.Add(1)
		go func(index int, cityName string, units string, preferenceID uint) {
			defer group.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			fetchCtx, cancel := context.WithTimeout(ctx, service.fetchTimeout)
			defer cancel()

			reading, err := service.fetcher.Fetch(fetchCtx, cityName, units)
			if err != nil {
				log.Printf("dashboard: omit %q for user %d: %v", cityName, userID, err)
				return
			}
			results[index] = &Entry{
				PreferenceID:  preferenceID,
				Reading:       reading,
				IconURL:       weather.IconURL(reading.WeatherIcon),
				TempFormatted: weather.FormatTemperature(reading.Temperature, reading.Units),
			}
		}(index, preference.CityName, preference.TemperatureUnit, preference.ID)
	}
	group.Wait()

	entries := make([]Entry, 0, len(results))
	for _, entry := range results {
		if entry != nil {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

// CityDetail fetches one city using the unit system of the user's saved
// preference for that exact name, falling back to imperial. Unlike Assemble,
// a fetch failure here is reported to the caller.
func (service *DashboardService) CityDetail(ctx context.Context, userID uint, cityName string) (DetailEntry, error) {
	units, err := service.preferences.ResolveUnits(userID, cityName)
	if err != nil {
		return DetailEntry{}, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, service.fetchTimeout)
	defer cancel()

	reading, err := service.fetcher.Fetch(fetchCtx, cityName, units)
	if err != nil {
		return DetailEntry{}, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}

	return DecorateDetail(reading), nil
}

// DecorateDetail formats a reading for the single-city view.
func DecorateDetail(reading weather.Reading) DetailEntry {
	return DetailEntry{
		Reading:            reading,
		IconURL:            weather.IconURL(reading.WeatherIcon),
		TempFormatted:      weather.FormatTemperature(reading.Temperature, reading.Units),
		FeelsLikeFormatted: weather.FormatTemperature(reading.FeelsLike, reading.Units),
		TempMinFormatted:   weather.FormatTemperature(reading.TempMin, reading.Units),
		TempMaxFormatted:   weather.FormatTemperature(reading.TempMax, reading.Units),
	}
}
