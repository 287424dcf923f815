// Package catalog provides the static fallback dataset: a fixed mapping from
// location name to a baseline weather record used when live acquisition is
// unavailable. The catalog is read-only after Load.
package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/Apolar-scc/Hava-Durumu/internal/weather"
)

// Entry is a baseline record for one location. It carries no observation
// timestamp; callers stamp the copy at read time.
type Entry struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Description string   `json:"description"`
}

// Catalog is an immutable name → baseline record mapping.
type Catalog struct {
	entries map[string]Entry
}

// defaultEntries is the bootstrap dataset written when no catalog file exists.
func defaultEntries() map[string]Entry {
	return map[string]Entry{
		"Ankara":    {Temperature: weather.Float64(12), Humidity: weather.Float64(45), Description: "Güneşli"},
		"İstanbul":  {Temperature: weather.Float64(15), Humidity: weather.Float64(72), Description: "Parçalı Bulutlu"},
		"İzmir":     {Temperature: weather.Float64(19), Humidity: weather.Float64(60), Description: "Açık"},
		"Antalya":   {Temperature: weather.Float64(24), Humidity: weather.Float64(55), Description: "Güneşli"},
		"Trabzon":   {Temperature: weather.Float64(11), Humidity: weather.Float64(80), Description: "Yağmurlu"},
		"Erzurum":   {Temperature: weather.Float64(-2), Humidity: weather.Float64(65), Description: "Karlı"},
	}
}

// Load reads the catalog from path. A missing file is bootstrap-created with
// the fixed example set before loading.
func Load(path string) (*Catalog, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeBootstrap(path); err != nil {
			return nil, fmt.Errorf("bootstrap catalog: %w", err)
		}
		log.Printf("catalog: created %s with %d example locations", path, len(defaultEntries()))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	entries := make(map[string]Entry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	return &Catalog{entries: entries}, nil
}

func writeBootstrap(path string) error {
	data, err := json.MarshalIndent(defaultEntries(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Lookup returns the baseline entry for an exact, case-sensitive name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// Baseline implements weather.Fallback. The returned report carries no
// acquisition timestamp; the fetch worker stamps the copy at read time.
func (c *Catalog) Baseline(name string) (weather.Report, bool) {
	e, ok := c.entries[name]
	if !ok {
		return weather.Report{}, false
	}
	return weather.Report{
		Temperature: e.Temperature,
		Humidity:    e.Humidity,
		Description: e.Description,
	}, true
}

// Len reports how many locations the catalog covers.
func (c *Catalog) Len() int {
	return len(c.entries)
}
