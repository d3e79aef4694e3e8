// ABOUTME: Configuration management for the livetv browser
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio/v2"
)

// Config holds all user-tunable settings
type Config struct {
	Playlist PlaylistConfig `toml:"playlist"`
	Browser  BrowserConfig  `toml:"browser"`
	HTTP     HTTPConfig     `toml:"http"`
	Player   PlayerConfig   `toml:"player"`
	Log      LogConfig      `toml:"log"`
}

// PlaylistConfig selects the playlist loaded at startup
type PlaylistConfig struct {
	Source string `toml:"source"` // built-in source name or "custom"
	URL    string `toml:"url"`    // location used when Source is "custom"
}

// BrowserConfig tunes the channel list
type BrowserConfig struct {
	RowHeight  int  `toml:"row_height"`  // lines per channel row
	Overscan   int  `toml:"overscan"`    // extra rows rendered above and below
	DebounceMS int  `toml:"debounce_ms"` // search settle delay
	Watch      bool `toml:"watch"`       // reload local playlists when they change
}

// HTTPConfig controls playlist downloads
type HTTPConfig struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	UserAgent      string `toml:"user_agent"`
	MaxBytes       int64  `toml:"max_bytes"`
}

// PlayerConfig names the external player
type PlayerConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// LogConfig controls debug logging
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Debounce returns the search settle delay
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Browser.DebounceMS) * time.Millisecond
}

// Timeout returns the HTTP request timeout
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/livetv/config.toml
func GetConfigPath() string {
	// First try current directory
	if _, err := os.Stat("./livetv.toml"); err == nil {
		return "./livetv.toml"
	}

	// Then try ~/.config/livetv/config.toml
	home, err := os.UserHomeDir()
	if err != nil {
		return "./livetv.toml"
	}

	return filepath.Join(home, ".config", "livetv", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist or fails to load, returns default config
// Keys missing from the file keep their default values
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return normalize(config), nil
}

// SaveConfig atomically writes configuration to a TOML file
func SaveConfig(path string, config Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(normalize(config)); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// Readers never observe a half-written file
	if err := renameio.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Playlist: PlaylistConfig{
			Source: "global",
		},
		Browser: BrowserConfig{
			RowHeight:  2,
			Overscan:   2,
			DebounceMS: 300,
			Watch:      true,
		},
		HTTP: HTTPConfig{
			TimeoutSeconds: 30,
			UserAgent:      "livetv/1.0",
			MaxBytes:       64 << 20,
		},
		Player: PlayerConfig{
			Command: "mpv",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// normalize replaces out-of-range values with defaults
func normalize(config Config) Config {
	defaults := DefaultConfig()

	if config.Playlist.Source == "" {
		config.Playlist.Source = defaults.Playlist.Source
	}

	if config.Browser.RowHeight < 1 {
		config.Browser.RowHeight = 1
	}

	if config.Browser.Overscan < 0 {
		config.Browser.Overscan = 0
	}

	if config.Browser.DebounceMS < 0 {
		config.Browser.DebounceMS = 0
	}

	if config.HTTP.TimeoutSeconds <= 0 {
		config.HTTP.TimeoutSeconds = defaults.HTTP.TimeoutSeconds
	}

	if config.HTTP.MaxBytes <= 0 {
		config.HTTP.MaxBytes = defaults.HTTP.MaxBytes
	}

	if config.HTTP.UserAgent == "" {
		config.HTTP.UserAgent = defaults.HTTP.UserAgent
	}

	if config.Player.Command == "" {
		config.Player.Command = defaults.Player.Command
	}

	return config
}
