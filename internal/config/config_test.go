package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("FETCH_TIMEOUT", "")
	t.Setenv("REFRESH_INTERVAL", "")
	t.Setenv("PORT", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Empty(t, cfg.OpenWeatherAPIKey)
	assert.Equal(t, "weather_cache.json", cfg.CacheFile)
	assert.Equal(t, "static_weather.json", cfg.CatalogFile)
	assert.Equal(t, "locations.json", cfg.LocationsFile)
	assert.Equal(t, 600*time.Second, cfg.CacheTTL)
	assert.Equal(t, 7*time.Second, cfg.FetchTimeout)
	assert.Equal(t, time.Duration(0), cfg.RefreshInterval)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("REFRESH_INTERVAL", "15m")
	t.Setenv("PORT", "9090")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.OpenWeatherAPIKey)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Setenv("CACHE_TTL", "ten minutes")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_TTL")
}
