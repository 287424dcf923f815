package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// FetchTimeout bounds the single outbound attempt per request.
const FetchTimeout = 7 * time.Second

// Source abstracts the remote weather provider. Implementations make exactly
// one bounded attempt; the fetch worker collapses any returned error to
// "no network result".
type Source interface {
	Name() string
	Current(ctx context.Context, location string) (Report, error)
}

// Store is the contract the persisted cache must satisfy for the worker and
// the gateway.
type Store interface {
	Get(location string) (Report, bool)
	Put(location string, report Report) error
	IsFresh(report Report, now time.Time) bool
}

// Fallback supplies baseline reports when live acquisition is unavailable.
// Returned reports carry no acquisition timestamp; the worker stamps the copy
// at read time.
type Fallback interface {
	Baseline(location string) (Report, bool)
}

// OpenWeatherSource fetches current conditions from OpenWeatherMap. A circuit
// breaker skips the call while the provider is misbehaving; an open circuit is
// just another way of having no network result.
type OpenWeatherSource struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherSource builds a source using apiKey. The client falls back to
// one with the fixed fetch timeout when nil.
func NewOpenWeatherSource(client *http.Client, apiKey string) *OpenWeatherSource {
	if client == nil {
		client = &http.Client{Timeout: FetchTimeout}
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherSource{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		client:  client,
		circuit: cb,
	}
}

func (s *OpenWeatherSource) Name() string {
	return s.name
}

// Current performs the single bounded attempt for a location. Metric units
// and Turkish descriptions are fixed query parameters.
func (s *OpenWeatherSource) Current(ctx context.Context, location string) (Report, error) {
	if s.apiKey == "" {
		return Report{}, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("q", location)
	values.Set("appid", s.apiKey)
	values.Set("units", "metric")
	values.Set("lang", "tr")

	u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Report{}, err
	}

	result, err := s.circuit.Execute(func() (interface{}, error) {
		resp, execErr := s.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var payload struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp     float64 `json:"temp"`
				Humidity float64 `json:"humidity"`
			} `json:"main"`
			Weather []struct {
				Description string `json:"description"`
			} `json:"weather"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
			return nil, decodeErr
		}

		observedAt := payload.Dt
		if observedAt == 0 {
			observedAt = time.Now().Unix()
		}

		description := ""
		if len(payload.Weather) > 0 {
			description = payload.Weather[0].Description
		}

		return Report{
			Temperature: Float64(payload.Main.Temp),
			Humidity:    Float64(payload.Main.Humidity),
			Description: description,
			ObservedAt:  observedAt,
		}, nil
	})
	if err != nil {
		return Report{}, err
	}

	report, ok := result.(Report)
	if !ok {
		return Report{}, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return report, nil
}
