package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
)

// State is the durable session record: the resolved user id, the cached
// profile, and the optional backend-issued access token. The whole record is
// written and cleared as one unit so the id and the profile can never
// diverge.
type State struct {
	UserID      string              `json:"userId"`
	Profile     models.UserIdentity `json:"profile"`
	AccessToken string              `json:"accessToken,omitempty"`
}

// Store persists session state to a single file, replacing the original
// frontend's pair of localStorage keys.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted state. A missing file means no session and is not
// an error; a corrupt file is treated the same way so a damaged cache never
// blocks startup.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session store: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, nil
	}
	if state.UserID == "" {
		return nil, nil
	}
	return &state, nil
}

// Save writes the state atomically: temp file in the same directory, then
// rename over the target.
func (s *Store) Save(state *State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "session-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write session state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp session file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Clear removes the persisted state. Clearing an absent session is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session store: %w", err)
	}
	return nil
}
