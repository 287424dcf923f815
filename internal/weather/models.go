package weather

import (
	"time"
)

// Report is the normalized current-weather view for a single location.
// Temperature and humidity are optional: a catalog entry or a sparse provider
// payload may omit either. A Report is immutable once built; cache entries
// are replaced wholesale, never merged.
type Report struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Description string   `json:"description"`

	// ObservedAt is the unix timestamp of acquisition: the provider's
	// observation time for live data, or the stamp time for a catalog copy.
	ObservedAt int64 `json:"observedAt"`
}

// Age returns how long ago the report was acquired relative to now.
func (r Report) Age(now time.Time) time.Duration {
	return now.Sub(time.Unix(r.ObservedAt, 0))
}

// Float64 returns a pointer to v. Convenience for optional fields.
func Float64(v float64) *float64 {
	return &v
}
