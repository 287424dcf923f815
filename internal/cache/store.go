// Package cache holds last-known weather reports keyed by location name,
// persisted as a flat JSON object so the mapping round-trips exactly between
// runs.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Apolar-scc/Hava-Durumu/internal/weather"
)

// DefaultTTL is how long an entry stays fresh after acquisition.
const DefaultTTL = 600 * time.Second

// Store is the persisted name → last-known report mapping. Writes happen only
// on the fetch worker goroutine; the RWMutex makes concurrent freshness checks
// from the gateway safe eventually-consistent snapshots.
type Store struct {
	path string
	ttl  time.Duration

	mu      sync.RWMutex
	entries map[string]weather.Report
}

// Open loads the store from path, starting from an empty mapping when the
// file does not exist. ttl <= 0 falls back to DefaultTTL.
func Open(path string, ttl time.Duration) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &Store{
		path:    path,
		ttl:     ttl,
		entries: make(map[string]weather.Report),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache file: %w", err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("parse cache file %s: %w", path, err)
	}
	return s, nil
}

// Get returns the cached report for a location, if one was ever acquired.
func (s *Store) Get(location string) (weather.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.entries[location]
	return r, ok
}

// Put replaces the entry for a location and synchronously persists the full
// mapping. The in-memory entry is updated even when persistence fails, so the
// caller can still deliver the result; the returned error reports the failed
// write.
func (s *Store) Put(location string, report weather.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[location] = report
	return s.persistLocked()
}

// IsFresh reports whether the entry is still valid for reuse at now.
func (s *Store) IsFresh(report weather.Report, now time.Time) bool {
	return now.Sub(time.Unix(report.ObservedAt, 0)) < s.ttl
}

// TTL returns the configured freshness window.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Len returns the number of cached locations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Snapshot returns a copy of the full mapping.
func (s *Store) Snapshot() map[string]weather.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]weather.Report, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}
