package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/skycast/internal/db"
	"github.com/terraincognita07/skycast/internal/weather"
)

// fakeUpstream imitates the current-weather provider: it echoes the requested
// city back in the payload and can be told to fail specific cities.
type fakeUpstream struct {
	server *httptest.Server

	mu         sync.Mutex
	failCities map[string]bool
	requests   int
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()

	upstream := &fakeUpstream{failCities: map[string]bool{}}
	upstream.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cityName := r.URL.Query().Get("q")

		upstream.mu.Lock()
		upstream.requests++
		shouldFail := upstream.failCities[cityName]
		upstream.mu.Unlock()

		if shouldFail {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"cod":"404","message":"city not found"}`)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"name": %q,
			"sys": {"country": "US"},
			"main": {"temp": 72.3, "feels_like": 70.1, "temp_min": 65.0, "temp_max": 78.0, "pressure": 1014, "humidity": 48},
			"weather": [{"main": "Clear", "description": "clear sky", "icon": "01d"}],
			"wind": {"speed": 4.6, "deg": 210},
			"clouds": {"all": 5}
		}`, cityName)
	}))
	t.Cleanup(upstream.server.Close)

	return upstream
}

func (upstream *fakeUpstream) setFail(cityName string, fail bool) {
	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	upstream.failCities[cityName] = fail
}

func (upstream *fakeUpstream) requestCount() int {
	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	return upstream.requests
}

func newWeatherTestApp(t *testing.T) (*fiber.App, *db.Repositories, *fakeUpstream) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "skycast-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repositories := db.NewRepositories(database)
	upstream := newFakeUpstream(t)
	fetcher := weather.NewClient(upstream.server.Client(), "test-key", upstream.server.URL, repositories.Snapshots)
	handler := NewHandler(repositories, "test-secret", fetcher, false)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, repositories, upstream
}

func performJSONRequest(t *testing.T, app *fiber.App, method string, target string, body string, authCookie string) *http.Response {
	t.Helper()

	var request *http.Request
	if body != "" {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	} else {
		request = httptest.NewRequest(method, target, nil)
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, target, err)
	}
	return response
}

func registerAndExtractAuthCookie(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	body := fmt.Sprintf(`{"email": %q, "password": %q}`, email, password)
	response := performJSONRequest(t, app, http.MethodPost, "/api/auth/register", body, "")
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected status 201, got %d", email, response.StatusCode)
	}

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatalf("register %s: auth cookie not set", email)
	return ""
}

func decodeJSONBody(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}
