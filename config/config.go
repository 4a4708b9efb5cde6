package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// HostConfig selects the MIDI port pair that links to the host
type HostConfig struct {
	Port   string `toml:"port"`
	PollMS int    `toml:"poll_ms"`
}

// KnobsConfig describes an optional MIDI knob box
type KnobsConfig struct {
	Port      string `toml:"port"`
	FirstCC   uint8  `toml:"first_cc"`
	FirstNote uint8  `toml:"first_note"`
	Channel   uint8  `toml:"channel"`
}

// EncoderConfig tunes how turns map to value changes
type EncoderConfig struct {
	Sensitivity float32 `toml:"sensitivity"`
	Coarse      float32 `toml:"coarse"`
}

type DebugConfig struct {
	Enabled bool   `toml:"enabled"`
	LogPath string `toml:"log_path"`
}

// CaptureConfig enables recording of every frame to a bbolt file
type CaptureConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `toml:"palette"`
}

// Config is the main configuration structure
type Config struct {
	Host     HostConfig    `toml:"host"`
	Knobs    KnobsConfig   `toml:"knobs"`
	Encoders EncoderConfig `toml:"encoders"`
	Debug    DebugConfig   `toml:"debug"`
	Capture  CaptureConfig `toml:"capture"`
	UI       UIConfig      `toml:"ui"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Host: HostConfig{
			Port:   "Surface",
			PollMS: 1000,
		},
		Knobs: KnobsConfig{
			FirstCC:   16,
			FirstNote: 36,
		},
		Encoders: EncoderConfig{
			Sensitivity: 0.01,
			Coarse:      10,
		},
	}
}

// Validate rejects values the surface cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Host.PollMS < 0 {
		errs = append(errs, fmt.Errorf("host.poll_ms: %d is negative", c.Host.PollMS))
	}
	if c.Encoders.Sensitivity < 0 || c.Encoders.Sensitivity > 1 {
		errs = append(errs, fmt.Errorf("encoders.sensitivity: %v outside 0..1", c.Encoders.Sensitivity))
	}
	if c.Encoders.Coarse < 0 {
		errs = append(errs, fmt.Errorf("encoders.coarse: %v is negative", c.Encoders.Coarse))
	}
	if c.Knobs.Channel > 15 {
		errs = append(errs, fmt.Errorf("knobs.channel: %d outside 0..15", c.Knobs.Channel))
	}
	return errors.Join(errs...)
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-surface"), nil
}

// ConfigPath returns the full path to config.toml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults. A missing file yields the
// defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

func (c *Config) SaveFile(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// DebugPath returns the log path, defaulting to debug.log in the config
// directory.
func (c *Config) DebugPath() string {
	if c.Debug.LogPath != "" {
		return c.Debug.LogPath
	}
	dir, err := ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "debug.log")
}

// CapturePath returns the capture database path, defaulting to
// capture.db in the config directory.
func (c *Config) CapturePath() string {
	if c.Capture.Path != "" {
		return c.Capture.Path
	}
	dir, err := ConfigDir()
	if err != nil {
		return "capture.db"
	}
	return filepath.Join(dir, "capture.db")
}
