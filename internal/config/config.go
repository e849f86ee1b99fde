// Package config loads and saves the host's JSON configuration: window
// sizing, the graphics backend choice, and keyboard mappings for the two
// controller ports.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all host configuration. Unlike the teacher's Config this
// carries no Audio or Debug sections — there is no audio synthesis to
// configure and no host debugger in scope.
type Config struct {
	Window WindowConfig `json:"window"`
	Video  VideoConfig  `json:"video"`
	Input  InputConfig  `json:"input"`
	Paths  PathsConfig  `json:"paths"`

	configPath string
}

// WindowConfig controls the host window the Ebitengine backend opens.
type WindowConfig struct {
	Fullscreen bool `json:"fullscreen"`
	Scale      int  `json:"scale"` // NES resolution multiplier
}

// VideoConfig selects the rendering backend and its filter.
type VideoConfig struct {
	VSync   bool   `json:"vsync"`
	Filter  string `json:"filter"`  // "nearest", "linear"
	Backend string `json:"backend"` // "ebitengine", "headless"
}

// InputConfig maps keyboard keys to the two NES controller ports.
type InputConfig struct {
	Player1Keys KeyMapping `json:"player1_keys"`
	Player2Keys KeyMapping `json:"player2_keys"`
}

// KeyMapping names one controller's eight buttons to keyboard keys, as
// strings understood by internal/graphics.EbitengineBackend's key lookup.
type KeyMapping struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	A      string `json:"a"`
	B      string `json:"b"`
	Start  string `json:"start"`
	Select string `json:"select"`
}

// PathsConfig holds the ROM search directory.
type PathsConfig struct {
	ROMs string `json:"roms"`
}

// New returns a Config with the same default values the teacher ships.
func New() *Config {
	return &Config{
		Window: WindowConfig{
			Fullscreen: false,
			Scale:      2,
		},
		Video: VideoConfig{
			VSync:   true,
			Filter:  "nearest",
			Backend: "ebitengine",
		},
		Input: InputConfig{
			Player1Keys: KeyMapping{
				Up: "W", Down: "S", Left: "A", Right: "D",
				A: "J", B: "K", Start: "Return", Select: "Space",
			},
			Player2Keys: KeyMapping{
				Up: "Up", Down: "Down", Left: "Left", Right: "Right",
				A: "N", B: "M", Start: "RShift", Select: "RCtrl",
			},
		},
		Paths: PathsConfig{ROMs: "./roms"},
	}
}

// LoadFromFile reads and parses a JSON config file, writing out the
// default config first if the file doesn't exist yet.
func LoadFromFile(path string) (*Config, error) {
	c := New()
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := c.SaveToFile(path); err != nil {
			return nil, err
		}
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	c.validate()
	c.configPath = path
	return c, nil
}

// SaveToFile writes the config as indented JSON, creating its parent
// directory if needed.
func (c *Config) SaveToFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	c.configPath = path
	return nil
}

// validate clamps out-of-range values read from a hand-edited file back
// to sane defaults instead of rejecting the whole file.
func (c *Config) validate() {
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
	if c.Video.Backend != "ebitengine" && c.Video.Backend != "headless" {
		c.Video.Backend = "ebitengine"
	}
}

// WindowResolution returns the host window size in pixels: the NES's
// native 256x240 multiplied by the configured scale.
func (c *Config) WindowResolution() (int, int) {
	return 256 * c.Window.Scale, 240 * c.Window.Scale
}

// DefaultPath is where cmd/nesgo looks for a config file absent a -config
// flag.
func DefaultPath() string {
	return "./config/nesgo.json"
}
