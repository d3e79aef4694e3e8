// ABOUTME: Shared initialization code for all modes (dump and TUI)
// ABOUTME: Resolves the playlist source and builds logger, fetcher and player from config

package main

import (
	"errors"
	"fmt"

	"livetv/config"
	"livetv/logging"
	"livetv/player"
	"livetv/source"
)

// debugLogFile receives logs when --debug is set
const debugLogFile = "livetv-debug.log"

// ErrNoCustomURL is returned when the custom source is selected without a location
var ErrNoCustomURL = errors.New("custom source selected but no playlist url configured")

// setupLogger builds the process logger; without --debug it only keeps the
// configured level and writes to the configured file, if any
func setupLogger(cfg config.Config, debug bool) (*logging.Logger, error) {
	logCfg := logging.Config{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	}

	if debug {
		logCfg.Level = "debug"
		logCfg.File = debugLogFile
	}

	return logging.New(logCfg)
}

// resolveSource picks the playlist to open.
// An explicit location wins, then the named source, then the config.
func resolveSource(name, location string, cfg config.Config) (source.Source, error) {
	if location != "" {
		return source.Imported(location), nil
	}

	if name == "" {
		name = cfg.Playlist.Source
	}

	if name == source.Custom {
		if cfg.Playlist.URL == "" {
			return source.Source{}, ErrNoCustomURL
		}

		return source.Imported(cfg.Playlist.URL), nil
	}

	src, ok := source.Builtin(name)
	if !ok {
		return source.Source{}, fmt.Errorf("unknown source %q (want global, country, category or custom)", name)
	}

	return src, nil
}

// newFetcher builds the playlist fetcher from the [http] config section
func newFetcher(cfg config.Config, logger *logging.Logger) *source.Fetcher {
	return source.NewFetcher(source.FetcherConfig{
		Timeout:   cfg.Timeout(),
		UserAgent: cfg.HTTP.UserAgent,
		MaxBytes:  cfg.HTTP.MaxBytes,
		Logger:    logger.WithComponent("fetch"),
	})
}

// newPlayer returns the external player, or a recorder in dry-run mode
func newPlayer(cfg config.Config, dryRun bool, logger *logging.Logger) player.Player {
	if dryRun {
		return &player.Recorder{}
	}

	return player.NewCommand(cfg.Player.Command, cfg.Player.Args, logger.WithComponent("player"))
}

// reportDryRun prints the playback requests a dry run recorded
func reportDryRun(p player.Player) {
	rec, ok := p.(*player.Recorder)
	if !ok {
		return
	}

	played := rec.Played()
	if len(played) == 0 {
		fmt.Println("--dry-run mode: no channels played")
		return
	}

	fmt.Println("--dry-run mode: would have played")

	for _, url := range played {
		fmt.Printf("  %s\n", url)
	}
}
