// Package history persists the running high score and the append-only match
// history as JSON files under the XDG data directory.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"golang.org/x/exp/slices"

	"hexsolo/types"
)

const (
	highScoreFile = "highscore.json"
	historyFile   = "history.json"
)

// Store reads and writes the persisted files of one directory.
type Store struct {
	dir string
}

type highScore struct {
	HighScore int `json:"high_score"`
}

// DefaultDir returns the directory used when none is configured.
func DefaultDir() string {
	return filepath.Join(xdg.DataHome, "hexsolo")
}

// NewStore creates dir if needed and returns a store rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// HighScore returns the recorded high score, 0 if none was saved yet.
func (s *Store) HighScore() (int, error) {
	var hs highScore
	if err := s.read(highScoreFile, &hs); err != nil {
		return 0, err
	}
	return hs.HighScore, nil
}

// SaveHighScore overwrites the recorded high score.
func (s *Store) SaveHighScore(score int) error {
	return s.write(highScoreFile, highScore{HighScore: score})
}

// AppendHistory adds a record after every existing one.
func (s *Store) AppendHistory(record types.MatchHistoryRecord) error {
	var records []types.MatchHistoryRecord
	if err := s.read(historyFile, &records); err != nil {
		return err
	}
	records = append(records, record)
	return s.write(historyFile, records)
}

// Records returns every record, newest first.
func (s *Store) Records() ([]types.MatchHistoryRecord, error) {
	var records []types.MatchHistoryRecord
	if err := s.read(historyFile, &records); err != nil {
		return nil, err
	}
	slices.Reverse(records)
	return records, nil
}

// read decodes a file into v. A missing file leaves v untouched.
func (s *Store) read(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// write rewrites a file from scratch through a temporary file.
func (s *Store) write(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
