package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Condition is one entry of the provider "weather" array
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description,omitempty"`
}

// Sys carries the sun times of the provider payload
type Sys struct {
	Sunrise int64 `json:"sunrise"`
	Sunset  int64 `json:"sunset"`
}

// Snapshot is the current-conditions payload consumed by the scene
// Treated as immutable once handed to the engine
type Snapshot struct {
	Weather []Condition `json:"weather"`
	Dt      int64       `json:"dt"`
	Sys     Sys         `json:"sys"`
	Name    string      `json:"name,omitempty"`
}

// Primary returns the first condition, ok is false when none is present
func (s *Snapshot) Primary() (Condition, bool) {
	if s == nil || len(s.Weather) == 0 {
		return Condition{}, false
	}
	return s.Weather[0], true
}

// DecodeSnapshot reads one JSON document, a literal null yields a nil snapshot
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
