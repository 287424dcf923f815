// Package locations manages the user's list of named locations. It is plain
// state mutation around a JSON file; the acquisition core tolerates any name
// and does not depend on this list.
package locations

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
)

var (
	// ErrExists is returned when adding a name that is already listed.
	ErrExists = errors.New("location already listed")
	// ErrNotFound is returned when removing a name that is not listed.
	ErrNotFound = errors.New("location not listed")
)

// defaultNames seeds the list when no file exists yet.
var defaultNames = []string{"Ankara", "İstanbul", "İzmir"}

// Manager is the persisted, unique list of location names.
type Manager struct {
	path string

	mu    sync.RWMutex
	names map[string]struct{}
}

// Open loads the list from path, bootstrap-creating it with the default names
// when the file is absent.
func Open(path string) (*Manager, error) {
	m := &Manager{
		path:  path,
		names: make(map[string]struct{}),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		for _, n := range defaultNames {
			m.names[n] = struct{}{}
		}
		if err := m.persistLocked(); err != nil {
			return nil, fmt.Errorf("bootstrap locations: %w", err)
		}
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read locations file: %w", err)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse locations file %s: %w", path, err)
	}
	for _, n := range list {
		m.names[n] = struct{}{}
	}
	return m, nil
}

// List returns the names in sorted order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.names))
	for n := range m.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Add appends a unique name and persists the list.
func (m *Manager) Add(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.names[name]; ok {
		return ErrExists
	}
	m.names[name] = struct{}{}
	if err := m.persistLocked(); err != nil {
		delete(m.names, name)
		return err
	}
	return nil
}

// Remove deletes a name and persists the list.
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.names[name]; !ok {
		return ErrNotFound
	}
	delete(m.names, name)
	if err := m.persistLocked(); err != nil {
		m.names[name] = struct{}{}
		return err
	}
	return nil
}

func (m *Manager) persistLocked() error {
	list := make([]string, 0, len(m.names))
	for n := range m.names {
		list = append(list, n)
	}
	sort.Strings(list)

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0644)
}
