// ABOUTME: Entry point for the livetv application
// ABOUTME: Handles command-line parsing and routing to the dump or TUI modes

// Package main provides the entry point for livetv, a terminal browser for live TV playlists.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"livetv/config"
	"livetv/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	sourceName := flag.String("source", "", "playlist source: global, country, category or custom (default from config)")
	location := flag.String("url", "", "import a playlist from this URL, file:// URL or local path")
	configPath := flag.String("config", "", "config file path (default ./livetv.toml or ~/.config/livetv/config.toml)")
	debug := flag.Bool("debug", false, "enable debug logging to "+debugLogFile)
	dryRun := flag.Bool("dry-run", false, "don't launch the player or save config; record playback requests only")
	dump := flag.Bool("dump", false, "print the channel list and exit instead of starting the browser")
	search := flag.String("search", "", "with --dump: only channels whose name or group contains this text")
	group := flag.String("group", "", "with --dump: only channels in this group")
	listGroups := flag.Bool("groups", false, "with --dump: print groups with channel counts instead of channels")
	flag.Parse()

	if flag.NArg() != 0 {
		fmt.Println("Usage: livetv [flags]")
		fmt.Println("Example: livetv --source country")
		fmt.Println("         livetv --url https://example.com/playlist.m3u --dump --group News")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()

		return 1
	}

	path := *configPath
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		// Defaults are still usable
		log.Printf("Warning: %v", err)
	}

	logger, err := setupLogger(cfg, *debug)
	if err != nil {
		log.Printf("Failed to setup debug log: %v", err)

		return 1
	}
	defer logger.Close()

	src, err := resolveSource(*sourceName, *location, cfg)
	if err != nil {
		log.Printf("Error: %v", err)

		return 1
	}

	fetcher := newFetcher(cfg, logger)

	if *dump {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := RunDump(ctx, fetcher, DumpOptions{
			Source:     src,
			Search:     *search,
			Group:      *group,
			ListGroups: *listGroups,
			Out:        os.Stdout,
		}); err != nil {
			log.Printf("Dump error: %v", err)

			return 1
		}

		return 0
	}

	p := newPlayer(cfg, *dryRun, logger)

	opts := tui.Options{
		Source:     src,
		Config:     cfg,
		ConfigPath: path,
		DryRun:     *dryRun,
	}

	deps := tui.Dependencies{
		Fetcher: fetcher,
		Player:  p,
		Watch:   watchPlaylist(logger),
		Logger:  logger.WithComponent("tui"),
	}

	if err := tui.Run(opts, deps); err != nil {
		log.Printf("TUI error: %v", err)

		return 1
	}

	if *dryRun {
		reportDryRun(p)
	}

	return 0
}
