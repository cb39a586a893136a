package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"hexsolo/types"
)

var (
	cfgFile = "hexsolo/config.json"
	logFile = "hexsolo/debug.log"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// ConfigColors holds 256-color palette indices.
type ConfigColors struct {
	Yellow     int `json:"yellow"`
	Blue       int `json:"blue"`
	White      int `json:"white"`
	Red        int `json:"red"`
	Empty      int `json:"empty"`
	Grid       int `json:"grid"`
	Highlight  int `json:"highlight"`
	Preview    int `json:"preview"`
	LastPlayed int `json:"last_played"`
}

type ConfigSymbols struct {
	Up      rune `json:"up"`
	Down    rune `json:"down"`
	Center  rune `json:"center"`
	Hexagon rune `json:"hexagon"`
}

type Theme struct {
	Colors  ConfigColors  `json:"colors"`
	Symbols ConfigSymbols `json:"symbols"`
}

// MatchConfig holds the defaults for new matches.
type MatchConfig struct {
	Difficulty   types.Difficulty `json:"difficulty"`
	Preview      bool             `json:"preview"`
	BoardRadius  int              `json:"board_radius"`
	ThinkDelayMs int              `json:"think_delay_ms"`
	HumanName    string           `json:"human_name"`
}

// ThinkDelay returns the opponent's thinking pause.
func (m MatchConfig) ThinkDelay() time.Duration {
	return time.Duration(m.ThinkDelayMs) * time.Millisecond
}

type Config struct {
	Theme Theme       `json:"theme"`
	Match MatchConfig `json:"match"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.Up, c.Theme.Symbols.Down, c.Theme.Symbols.Center, c.Theme.Symbols.Hexagon} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if _, err := types.ParseDifficulty(string(c.Match.Difficulty)); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.Match.BoardRadius < 2 || c.Match.BoardRadius > 5 {
		return &InvalidConfig{"board radius must be between 2 and 5"}
	}
	if c.Match.ThinkDelayMs < 0 {
		return &InvalidConfig{"think delay must not be negative"}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

// OpenLog opens the debug log under the XDG state directory for appending.
func OpenLog() (*os.File, error) {
	absPath, err := xdg.StateFile(logFile)
	if err != nil {
		return nil, err
	}
	return os.OpenFile(absPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(configReader, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %s", filePath, err)}
	}
	return nil
}
