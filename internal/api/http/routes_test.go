package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apolar-scc/Hava-Durumu/internal/cache"
	"github.com/Apolar-scc/Hava-Durumu/internal/catalog"
	"github.com/Apolar-scc/Hava-Durumu/internal/locations"
	"github.com/Apolar-scc/Hava-Durumu/internal/weather"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dir := t.TempDir()

	cat, err := catalog.Load(filepath.Join(dir, "static_weather.json"))
	require.NoError(t, err)

	store, err := cache.Open(filepath.Join(dir, "weather_cache.json"), 0)
	require.NoError(t, err)

	list, err := locations.Open(filepath.Join(dir, "locations.json"))
	require.NoError(t, err)

	w := weather.NewWorker(nil, cat, store, time.Second)
	w.Start()
	t.Cleanup(w.Stop)

	app := fiber.New()
	RegisterRoutes(app, weather.NewService(store, w), list)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestCurrentWeatherRequiresLocation(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/weather/current", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCurrentWeatherKnownLocation(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/v1/weather/current?location=Ankara", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Location string         `json:"location"`
		Report   weather.Report `json:"report"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Ankara", body.Location)
	assert.Equal(t, "Güneşli", body.Report.Description)
	require.NotNil(t, body.Report.Temperature)
	assert.Equal(t, float64(12), *body.Report.Temperature)
}

func TestCurrentWeatherUnknownLocation(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/weather/current?location=Atlantis", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLocationListCRUD(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/v1/locations", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listBody struct {
		Locations []string `json:"locations"`
	}
	require.NoError(t, json.Unmarshal(raw, &listBody))
	assert.Contains(t, listBody.Locations, "Ankara")

	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/locations", `{"name":"Antalya"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Duplicate add conflicts.
	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/locations", `{"name":"Antalya"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Missing name is rejected by validation.
	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/locations", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, "/api/v1/locations/Antalya", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, "/api/v1/locations/Antalya", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatsCountsHitsAndMisses(t *testing.T) {
	app := newTestApp(t)

	doRequest(t, app, http.MethodGet, "/api/v1/weather/current?location=Ankara", "")
	doRequest(t, app, http.MethodGet, "/api/v1/weather/current?location=Ankara", "")

	resp, raw := doRequest(t, app, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		CacheHits   int `json:"cacheHits"`
		CacheMisses int `json:"cacheMisses"`
	}
	require.NoError(t, json.Unmarshal(raw, &stats))
	assert.Equal(t, 1, stats.CacheHits)
	assert.Equal(t, 1, stats.CacheMisses)
}
