// Package store holds the user registry backends.
package store

import (
	"bytes"
	"ciesta/internal/core/domain"
	"encoding/json"
	"fmt"
)

// decode reads the registry document. Blank input is an empty registry.
func decode(data []byte) (domain.State, error) {
	var state domain.State
	if len(bytes.TrimSpace(data)) == 0 {
		return state, nil
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return domain.State{}, fmt.Errorf("error decoding user registry: %w", err)
	}

	return state, nil
}

func encode(state domain.State) ([]byte, error) {
	if state.Users == nil {
		state.Users = []domain.User{}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding user registry: %w", err)
	}

	return data, nil
}
