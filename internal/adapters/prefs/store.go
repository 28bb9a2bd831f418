// Package prefs persists UI preferences as JSON values in a diskv store.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

// Preference keys, one file each
const (
	KeyCurrentTabID   = "current_tab_id"
	KeyCurrentTabName = "current_tab_name"
	KeyOpenStates     = "note_open_states"
	KeyUIVisibility   = "ui_visibility"
)

// Store implements ports.PreferenceStore
type Store struct {
	d *diskv.Diskv
}

// Ensure Store implements PreferenceStore
var _ ports.PreferenceStore = (*Store)(nil)

// Open creates a store rooted at dir
func Open(dir string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     dir,
		TempDir:      filepath.Join(dir, ".tmp"),
		CacheSizeMax: 64 * 1024,
	})}
}

// Load reads every preference. Missing keys keep their defaults.
func (s *Store) Load() (ports.Preferences, error) {
	p := ports.Preferences{UI: ports.DefaultUIVisibility()}

	if err := s.read(KeyCurrentTabID, &p.CurrentTabID); err != nil {
		return p, err
	}
	if err := s.read(KeyCurrentTabName, &p.CurrentTabName); err != nil {
		return p, err
	}
	if err := s.read(KeyOpenStates, &p.OpenStates); err != nil {
		return p, err
	}
	if err := s.read(KeyUIVisibility, &p.UI); err != nil {
		return p, err
	}
	return p, nil
}

// SaveSelection stores the selected tab. A nil id records "no selection".
func (s *Store) SaveSelection(tabID *int64, tabName string) error {
	if err := s.write(KeyCurrentTabID, tabID); err != nil {
		return err
	}
	return s.write(KeyCurrentTabName, tabName)
}

// SaveOpenStates stores the per-tab expansion map
func (s *Store) SaveOpenStates(states domain.OpenStates) error {
	if states == nil {
		states = domain.OpenStates{}
	}
	return s.write(KeyOpenStates, states)
}

// SaveUI stores panel visibility
func (s *Store) SaveUI(ui ports.UIVisibility) error {
	return s.write(KeyUIVisibility, ui)
}

func (s *Store) read(key string, v any) error {
	raw, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) write(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.d.Write(key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
