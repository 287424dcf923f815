package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all runtime options for the panel backend.
type AppConfig struct {
	// OpenWeatherAPIKey is the optional credential for the remote source.
	// Empty forces fallback-only behavior; it is never an error.
	OpenWeatherAPIKey string

	// CacheFile persists the last-known report per location.
	CacheFile string

	// CatalogFile holds the static fallback dataset.
	CatalogFile string

	// LocationsFile persists the user-managed location list.
	LocationsFile string

	// CacheTTL is the freshness window for cached reports.
	CacheTTL time.Duration

	// FetchTimeout bounds the single remote attempt per request.
	FetchTimeout time.Duration

	// RefreshInterval controls background refresh of the saved locations.
	// Zero disables the scheduler.
	RefreshInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		CacheFile:         getenvDefault("CACHE_FILE", "weather_cache.json"),
		CatalogFile:       getenvDefault("CATALOG_FILE", "static_weather.json"),
		LocationsFile:     getenvDefault("LOCATIONS_FILE", "locations.json"),
		Port:              getenvDefault("PORT", "8080"),
	}

	ttl, err := getenvDuration("CACHE_TTL", 600*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = ttl

	fetchTimeout, err := getenvDuration("FETCH_TIMEOUT", 7*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.FetchTimeout = fetchTimeout

	refresh, err := getenvDuration("REFRESH_INTERVAL", 0)
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = refresh

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
