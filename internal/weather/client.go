package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/terraincognita07/skycast/internal/models"
)

const (
	// DefaultBaseURL is the OpenWeatherMap current-weather-by-name endpoint.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

	// DefaultTimeout bounds each upstream call.
	DefaultTimeout = 10 * time.Second
)

// Failure variants callers can match with errors.Is. Transport covers
// timeouts, connection errors, and non-2xx statuses; Schema covers
// missing or mis-shaped fields in an otherwise successful response.
var (
	ErrTransport = errors.New("weather upstream unreachable")
	ErrSchema    = errors.New("weather response malformed")
)

// SnapshotAppender persists one cache row per successful fetch.
type SnapshotAppender interface {
	Append(snapshot *models.WeatherSnapshot) error
}

// Client fetches and normalizes current weather from OpenWeatherMap. The
// credential and base URL are injected at construction so tests can point the
// client at a fake upstream; an empty credential is sent as-is and surfaces
// as an ordinary transport failure.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	snapshots  SnapshotAppender
}

func NewClient(httpClient *http.Client, apiKey string, baseURL string, snapshots SnapshotAppender) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    baseURL,
		snapshots:  snapshots,
	}
}

// Fetch performs one live upstream call for cityName in the given unit
// system, appends exactly one snapshot row on success, and returns the
// normalized reading tagged with the requested units. There is no caching,
// retry, or backoff: every call hits the upstream.
func (client *Client) Fetch(ctx context.Context, cityName string, units string) (Reading, error) {
	values := url.Values{}
	values.Set("q", cityName)
	values.Set("appid", client.apiKey)
	values.Set("units", units)

	requestURL := fmt.Sprintf("%s?%s", client.baseURL, values.Encode())
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return Reading{}, fmt.Errorf("build weather request: %w", err)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		log.Printf("weather: fetch %q failed: %v", cityName, err)
		return Reading{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		log.Printf("weather: fetch %q returned status %d", cityName, response.StatusCode)
		return Reading{}, fmt.Errorf("%w: status %d", ErrTransport, response.StatusCode)
	}

	var payload upstreamPayload
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		log.Printf("weather: decode response for %q failed: %v", cityName, err)
		return Reading{}, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	reading, err := normalizeReading(payload, units)
	if err != nil {
		log.Printf("weather: normalize response for %q failed: %v", cityName, err)
		return Reading{}, err
	}

	snapshot := snapshotFromReading(reading)
	if err := client.snapshots.Append(&snapshot); err != nil {
		return Reading{}, fmt.Errorf("cache weather snapshot: %w", err)
	}

	return reading, nil
}

// upstreamPayload mirrors the subset of the OpenWeatherMap response the
// pipeline consumes. Required fields are pointers so absence is
// distinguishable from zero values.
type upstreamPayload struct {
	Name *string `json:"name"`
	Sys  struct {
		Country *string `json:"country"`
	} `json:"sys"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		TempMin   *float64 `json:"temp_min"`
		TempMax   *float64 `json:"temp_max"`
		Pressure  *int     `json:"pressure"`
		Humidity  *int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        *string `json:"main"`
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
		Deg   *int     `json:"deg"`
	} `json:"wind"`
	Clouds *struct {
		All *int `json:"all"`
	} `json:"clouds"`
}

// normalizeReading remaps the upstream payload into a Reading. Any missing
// required field is a schema failure; no partial reading is ever produced.
// wind.deg is the one optional field and defaults to 0.
func normalizeReading(payload upstreamPayload, units string) (Reading, error) {
	if payload.Name == nil {
		return Reading{}, fmt.Errorf("%w: missing name", ErrSchema)
	}
	if payload.Sys.Country == nil {
		return Reading{}, fmt.Errorf("%w: missing sys.country", ErrSchema)
	}
	main := payload.Main
	if main == nil || main.Temp == nil || main.FeelsLike == nil || main.TempMin == nil ||
		main.TempMax == nil || main.Pressure == nil || main.Humidity == nil {
		return Reading{}, fmt.Errorf("%w: missing main fields", ErrSchema)
	}
	if len(payload.Weather) == 0 {
		return Reading{}, fmt.Errorf("%w: empty weather list", ErrSchema)
	}
	// The provider may return several conditions; only the first is used.
	condition := payload.Weather[0]
	if condition.Main == nil || condition.Description == nil || condition.Icon == nil {
		return Reading{}, fmt.Errorf("%w: missing weather condition fields", ErrSchema)
	}
	if payload.Wind == nil || payload.Wind.Speed == nil {
		return Reading{}, fmt.Errorf("%w: missing wind.speed", ErrSchema)
	}
	if payload.Clouds == nil || payload.Clouds.All == nil {
		return Reading{}, fmt.Errorf("%w: missing clouds.all", ErrSchema)
	}

	windDeg := 0
	if payload.Wind.Deg != nil {
		windDeg = *payload.Wind.Deg
	}

	return Reading{
		CityName:           *payload.Name,
		CountryCode:        *payload.Sys.Country,
		Temperature:        *main.Temp,
		FeelsLike:          *main.FeelsLike,
		TempMin:            *main.TempMin,
		TempMax:            *main.TempMax,
		Pressure:           *main.Pressure,
		Humidity:           *main.Humidity,
		WeatherMain:        *condition.Main,
		WeatherDescription: *condition.Description,
		WeatherIcon:        *condition.Icon,
		WindSpeed:          *payload.Wind.Speed,
		WindDeg:            windDeg,
		Clouds:             *payload.Clouds.All,
		Units:              units,
	}, nil
}

func snapshotFromReading(reading Reading) models.WeatherSnapshot {
	return models.WeatherSnapshot{
		CityName:           reading.CityName,
		CountryCode:        reading.CountryCode,
		Temperature:        reading.Temperature,
		FeelsLike:          reading.FeelsLike,
		TempMin:            reading.TempMin,
		TempMax:            reading.TempMax,
		Pressure:           reading.Pressure,
		Humidity:           reading.Humidity,
		WeatherMain:        reading.WeatherMain,
		WeatherDescription: reading.WeatherDescription,
		WeatherIcon:        reading.WeatherIcon,
		WindSpeed:          reading.WindSpeed,
		WindDeg:            reading.WindDeg,
		Clouds:             reading.Clouds,
		CapturedAt:         time.Now().UTC(),
	}
}
