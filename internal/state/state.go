// Package state persists the watcher's last-seen episode identifier.
package state

import (
	"encoding/json"
	"fmt"
	"os"
)

// State is the watcher's persisted record. An empty LastGUID means no
// episode has been acknowledged yet; the file is only ever written after a
// confirmed webhook delivery, so on disk the value is always non-empty.
type State struct {
	LastGUID string `json:"last_guid"`
}

// Store reads and writes the state file.
type Store struct {
	path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the state file. A missing file is not an error: it means no
// prior episode was seen.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("read state: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("parse state: %w", err)
	}
	return st, nil
}

// Save writes the state file, pretty-printed.
func (s *Store) Save(st State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
