// Package config persists instrument defaults as JSON under
// ~/.config/chordwheel.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// KeyConfig is the saved key selection.
type KeyConfig struct {
	Root  int  `json:"root"` // pitch class 0-11
	Minor bool `json:"minor,omitempty"`
}

// ControllerConfig describes an external MIDI keyboard mapped onto the
// pad surface.
type ControllerConfig struct {
	PortName    string `json:"portName"`
	AutoConnect bool   `json:"autoConnect"`
	BaseNote    uint8  `json:"baseNote,omitempty"` // pitch of the key mapped to degree 1
}

// OutputConfig selects the MIDI output port.
type OutputConfig struct {
	PreferredPorts []string `json:"preferredPorts,omitempty"`
	ExcludedPorts  []string `json:"excludedPorts,omitempty"`
	Channel        uint8    `json:"channel,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	Key         KeyConfig          `json:"key"`
	BaseOctave  int                `json:"baseOctave,omitempty"`
	Velocity    uint8              `json:"velocity,omitempty"`
	Output      OutputConfig       `json:"output,omitempty"`
	Controllers []ControllerConfig `json:"controllers,omitempty"`
}

// Default returns a config with sensible defaults: C major, octave 4,
// no preferred port (auto-pick a lone real port), virtual ports
// excluded.
func Default() *Config {
	return &Config{
		Key:        KeyConfig{Root: 0},
		BaseOctave: 4,
		Velocity:   100,
		Output: OutputConfig{
			ExcludedPorts: []string{"Midi Through", "Through Port", "Dummy"},
		},
	}
}

// Dir returns the config directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chordwheel"), nil
}

// Path returns the full path to config.json.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := Path()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// AutoConnectControllers returns controllers with autoConnect enabled.
func (c *Config) AutoConnectControllers() []ControllerConfig {
	var out []ControllerConfig
	for _, ctrl := range c.Controllers {
		if ctrl.AutoConnect {
			out = append(out, ctrl)
		}
	}
	return out
}
