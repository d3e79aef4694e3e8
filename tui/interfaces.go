// ABOUTME: Interfaces defining dependencies for the TUI package
// ABOUTME: Allows clean separation and easy testing with fakes

package tui

import (
	"context"
)

// Fetcher retrieves playlist text from a location
type Fetcher interface {
	Fetch(ctx context.Context, location string) (string, error)
}

// Notifier reports changes to a watched local playlist
type Notifier interface {
	Changes() <-chan string
	Close() error
}

// WatchFunc starts watching the playlist file at path
type WatchFunc func(path string) (Notifier, error)
