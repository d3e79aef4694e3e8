// ABOUTME: Adapter implementations for TUI interfaces
// ABOUTME: Bridges the source package's file watcher to the TUI Notifier contract

package main

import (
	"livetv/logging"
	"livetv/source"
	"livetv/tui"
)

// watchPlaylist returns a WatchFunc backed by fsnotify
func watchPlaylist(logger *logging.Logger) tui.WatchFunc {
	watchLogger := logger.WithComponent("watch")

	return func(path string) (tui.Notifier, error) {
		// Return a nil interface, not a typed nil, on failure
		w, err := source.Watch(path, source.DefaultSettle, watchLogger)
		if err != nil {
			return nil, err
		}

		return w, nil
	}
}
