// Package fixtures embeds sample locker payloads used by tests and the mock locker.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// StatusJSON is a status response captured from a five-cell locker:
// ids 1-5, cell 5 inactive, no open sessions.
//
//go:embed status.json
var StatusJSON []byte

// Status decodes StatusJSON into a fresh generic value, so callers may mutate it.
func Status() (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal(StatusJSON, &payload); err != nil {
		return nil, fmt.Errorf("decode status fixture: %w", err)
	}
	return payload, nil
}

// StatusCells returns the "data" list of the status fixture.
func StatusCells() ([]any, error) {
	payload, err := Status()
	if err != nil {
		return nil, err
	}
	cells, ok := payload["data"].([]any)
	if !ok {
		return nil, fmt.Errorf("status fixture: data is %T, not a list", payload["data"])
	}
	return cells, nil
}
