// ABOUTME: TUI mode configuration and injected dependencies
// ABOUTME: Defines input parameters for running the channel browser

package tui

import (
	"github.com/rs/zerolog"

	"livetv/config"
	"livetv/player"
	"livetv/source"
)

// Options contains configuration for running the TUI
type Options struct {
	Source     source.Source // Playlist loaded on start
	Config     config.Config // Browser, player and source settings
	ConfigPath string        // Where the last source is saved on quit
	DryRun     bool          // If true, don't save config on quit
}

// Dependencies holds all external dependencies for the TUI
// This allows for clean dependency injection and easy testing
type Dependencies struct {
	Fetcher Fetcher
	Player  player.Player
	Watch   WatchFunc // nil disables reloading local playlists on change
	Logger  zerolog.Logger
}
