// Package store persists the scorekeeper state as one JSON blob under a
// single namespaced key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaronzipp/flip7-scorekeeper/internal/models"
)

const (
	// StorageKey is the key the state blob lives under
	StorageKey = "flip7_scorekeeper_v1"

	// SchemaVersion is the version written into every saved blob
	SchemaVersion = 1
)

// Slot is a key/value store holding raw blobs
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, blob []byte) error
}

// StateStore saves and loads AppState through a Slot
type StateStore struct {
	slot Slot
	key  string
}

// NewStateStore creates a state store using the default key
func NewStateStore(slot Slot) *StateStore {
	return &StateStore{slot: slot, key: StorageKey}
}

type persistedState struct {
	Version int `json:"version"`
	models.AppState
}

// Save writes the whole state in one put
func (s *StateStore) Save(ctx context.Context, state *models.AppState) error {
	blob, err := Encode(state)
	if err != nil {
		return err
	}
	if err := s.slot.Put(ctx, s.key, blob); err != nil {
		return fmt.Errorf("put %s: %w", s.key, err)
	}
	return nil
}

// Load reads the state. It returns (nil, nil) when nothing usable is stored:
// an absent key and a malformed blob look the same to the caller.
func (s *StateStore) Load(ctx context.Context) (*models.AppState, error) {
	blob, found, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.key, err)
	}
	if !found {
		return nil, nil
	}
	state, err := Decode(blob)
	if err != nil {
		return nil, nil
	}
	return state, nil
}

// Raw returns the stored blob as is
func (s *StateStore) Raw(ctx context.Context) ([]byte, bool, error) {
	return s.slot.Get(ctx, s.key)
}

// Encode serializes the state with the schema version
func Encode(state *models.AppState) ([]byte, error) {
	blob, err := json.Marshal(persistedState{Version: SchemaVersion, AppState: *state})
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return blob, nil
}

var errMalformed = errors.New("malformed state")

// Decode validates and parses a stored blob. The top level must be an object
// whose players and rounds are arrays. A missing version is read as 1.
func Decode(blob []byte) (*models.AppState, error) {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(blob, &shape); err != nil || shape == nil {
		return nil, errMalformed
	}
	for _, field := range []string{"players", "rounds"} {
		raw, ok := shape[field]
		if !ok || !isArray(raw) {
			return nil, fmt.Errorf("%w: %s is not an array", errMalformed, field)
		}
	}
	if raw, ok := shape["version"]; ok {
		var version int
		if err := json.Unmarshal(raw, &version); err != nil || version > SchemaVersion {
			return nil, fmt.Errorf("%w: unsupported version", errMalformed)
		}
	}

	var decoded persistedState
	if err := json.Unmarshal(blob, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	state := decoded.AppState
	if state.PendingInputs == nil {
		state.PendingInputs = make(map[string]string)
	}
	if !state.View.Valid() {
		state.View = models.ViewSetup
	}
	return &state, nil
}

func isArray(raw json.RawMessage) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
