package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/terraincognita07/skycast/internal/models"
)

type recordingAppender struct {
	snapshots []models.WeatherSnapshot
	appendErr error
}

func (recorder *recordingAppender) Append(snapshot *models.WeatherSnapshot) error {
	if recorder.appendErr != nil {
		return recorder.appendErr
	}
	recorder.snapshots = append(recorder.snapshots, *snapshot)
	return nil
}

const fullPayload = `{
	"name": "Denver",
	"sys": {"country": "US"},
	"main": {"temp": 72.3, "feels_like": 70.1, "temp_min": 65.0, "temp_max": 78.2, "pressure": 1015, "humidity": 40},
	"weather": [
		{"main": "Clouds", "description": "scattered clouds", "icon": "03d"},
		{"main": "Mist", "description": "mist", "icon": "50d"}
	],
	"wind": {"speed": 5.4, "deg": 210},
	"clouds": {"all": 40}
}`

func newTestClient(t *testing.T, upstream http.HandlerFunc) (*Client, *recordingAppender, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	recorder := &recordingAppender{}
	client := NewClient(server.Client(), "test-key", server.URL, recorder)
	return client, recorder, server
}

func TestFetchNormalizesAndAppendsOneSnapshot(t *testing.T) {
	var gotQuery map[string]string
	client, recorder, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":     r.URL.Query().Get("q"),
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fullPayload))
	})

	reading, err := client.Fetch(context.Background(), "denver", models.UnitImperial)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}

	if gotQuery["q"] != "denver" || gotQuery["appid"] != "test-key" || gotQuery["units"] != "imperial" {
		t.Fatalf("upstream query = %#v, want q=denver appid=test-key units=imperial", gotQuery)
	}

	// The provider-resolved spelling wins over the requested one.
	if reading.CityName != "Denver" || reading.CountryCode != "US" {
		t.Fatalf("reading location = %q/%q, want Denver/US", reading.CityName, reading.CountryCode)
	}
	if reading.Temperature != 72.3 || reading.FeelsLike != 70.1 || reading.TempMin != 65.0 || reading.TempMax != 78.2 {
		t.Fatalf("reading temperatures = %#v", reading)
	}
	if reading.Pressure != 1015 || reading.Humidity != 40 || reading.Clouds != 40 {
		t.Fatalf("reading pressure/humidity/clouds = %d/%d/%d", reading.Pressure, reading.Humidity, reading.Clouds)
	}
	// Only the first condition entry is used.
	if reading.WeatherMain != "Clouds" || reading.WeatherDescription != "scattered clouds" || reading.WeatherIcon != "03d" {
		t.Fatalf("reading condition = %q/%q/%q", reading.WeatherMain, reading.WeatherDescription, reading.WeatherIcon)
	}
	if reading.WindSpeed != 5.4 || reading.WindDeg != 210 {
		t.Fatalf("reading wind = %v/%d", reading.WindSpeed, reading.WindDeg)
	}
	if reading.Units != models.UnitImperial {
		t.Fatalf("reading units = %q, want imperial", reading.Units)
	}

	if len(recorder.snapshots) != 1 {
		t.Fatalf("appended %d snapshots, want 1", len(recorder.snapshots))
	}
	snapshot := recorder.snapshots[0]
	if snapshot.CityName != "Denver" || snapshot.Temperature != 72.3 || snapshot.WindDeg != 210 {
		t.Fatalf("snapshot = %#v", snapshot)
	}
	if snapshot.CapturedAt.IsZero() {
		t.Fatal("snapshot captured_at is zero")
	}
}

func TestFetchAppendsOneSnapshotPerCall(t *testing.T) {
	client, recorder, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fullPayload))
	})

	for call := 0; call < 2; call++ {
		if _, err := client.Fetch(context.Background(), "Denver", models.UnitImperial); err != nil {
			t.Fatalf("Fetch() call %d unexpected error: %v", call, err)
		}
	}

	if len(recorder.snapshots) != 2 {
		t.Fatalf("appended %d snapshots, want 2 (no dedup)", len(recorder.snapshots))
	}
}

func TestFetchMissingWindDegDefaultsToZero(t *testing.T) {
	payload := `{
		"name": "Calm City",
		"sys": {"country": "NL"},
		"main": {"temp": 18.0, "feels_like": 17.5, "temp_min": 15.0, "temp_max": 20.0, "pressure": 1020, "humidity": 60},
		"weather": [{"main": "Clear", "description": "clear sky", "icon": "01d"}],
		"wind": {"speed": 1.2},
		"clouds": {"all": 0}
	}`
	client, recorder, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	})

	reading, err := client.Fetch(context.Background(), "Calm City", models.UnitMetric)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if reading.WindDeg != 0 {
		t.Fatalf("reading wind_deg = %d, want 0", reading.WindDeg)
	}
	if len(recorder.snapshots) != 1 {
		t.Fatalf("appended %d snapshots, want 1", len(recorder.snapshots))
	}
}

func TestFetchMissingRequiredFieldIsSchemaFailure(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name: "missing main.temp",
			payload: `{
				"name": "Denver",
				"sys": {"country": "US"},
				"main": {"feels_like": 70.1, "temp_min": 65.0, "temp_max": 78.2, "pressure": 1015, "humidity": 40},
				"weather": [{"main": "Clouds", "description": "scattered clouds", "icon": "03d"}],
				"wind": {"speed": 5.4, "deg": 210},
				"clouds": {"all": 40}
			}`,
		},
		{
			name: "missing sys.country",
			payload: `{
				"name": "Denver",
				"main": {"temp": 72.3, "feels_like": 70.1, "temp_min": 65.0, "temp_max": 78.2, "pressure": 1015, "humidity": 40},
				"weather": [{"main": "Clouds", "description": "scattered clouds", "icon": "03d"}],
				"wind": {"speed": 5.4},
				"clouds": {"all": 40}
			}`,
		},
		{
			name: "empty weather list",
			payload: `{
				"name": "Denver",
				"sys": {"country": "US"},
				"main": {"temp": 72.3, "feels_like": 70.1, "temp_min": 65.0, "temp_max": 78.2, "pressure": 1015, "humidity": 40},
				"weather": [],
				"wind": {"speed": 5.4},
				"clouds": {"all": 40}
			}`,
		},
		{
			name:    "not json",
			payload: `<html>rate limited</html>`,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			client, recorder, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(test.payload))
			})

			_, err := client.Fetch(context.Background(), "Denver", models.UnitImperial)
			if !errors.Is(err, ErrSchema) {
				t.Fatalf("Fetch() error = %v, want ErrSchema", err)
			}
			if len(recorder.snapshots) != 0 {
				t.Fatalf("appended %d snapshots on schema failure, want 0", len(recorder.snapshots))
			}
		})
	}
}

func TestFetchNonSuccessStatusIsTransportFailure(t *testing.T) {
	client, recorder, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":401,"message":"Invalid API key"}`, http.StatusUnauthorized)
	})

	_, err := client.Fetch(context.Background(), "Denver", models.UnitImperial)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("Fetch() error = %v, want ErrTransport", err)
	}
	if len(recorder.snapshots) != 0 {
		t.Fatalf("appended %d snapshots on transport failure, want 0", len(recorder.snapshots))
	}
}

func TestFetchConnectionErrorIsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	recorder := &recordingAppender{}
	client := NewClient(&http.Client{Timeout: time.Second}, "test-key", server.URL, recorder)
	server.Close()

	_, err := client.Fetch(context.Background(), "Denver", models.UnitImperial)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("Fetch() error = %v, want ErrTransport", err)
	}
	if len(recorder.snapshots) != 0 {
		t.Fatalf("appended %d snapshots on transport failure, want 0", len(recorder.snapshots))
	}
}
