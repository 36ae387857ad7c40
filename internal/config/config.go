package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config collects every environment-provided setting, read once at startup.
type Config struct {
	Port         string
	DBPath       string
	SecretKey    string
	CookieSecure bool

	// OpenWeatherAPIKey is passed upstream as-is. An empty key is not
	// rejected here; provider-side auth failures surface as ordinary
	// fetch failures.
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	FetchTimeout       time.Duration

	// SnapshotRetention of 0 keeps the snapshot cache forever (the
	// default); a positive value enables periodic pruning.
	SnapshotRetention     time.Duration
	SnapshotPruneInterval time.Duration
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:               getenvDefault("PORT", "8080"),
		DBPath:             getenvDefault("DB_PATH", filepath.Join("data", "skycast.db")),
		SecretKey:          os.Getenv("SECRET_KEY"),
		CookieSecure:       getenvBool("COOKIE_SECURE", false),
		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: getenvDefault("OPENWEATHER_BASE_URL", ""),
	}

	fetchTimeout, err := getenvDuration("FETCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.FetchTimeout = fetchTimeout

	retention, err := getenvDuration("SNAPSHOT_RETENTION", 0)
	if err != nil {
		return nil, err
	}
	cfg.SnapshotRetention = retention

	pruneInterval, err := getenvDuration("SNAPSHOT_PRUNE_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SnapshotPruneInterval = pruneInterval

	return cfg, nil
}

func getenvDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes":
		return true
	case "0", "false", "FALSE", "False", "no":
		return false
	default:
		return fallback
	}
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
