// ABOUTME: File watcher for local playlists using fsnotify
// ABOUTME: Coalesces bursts of write events into one reload signal via a debouncer

package source

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"livetv/debounce"
)

// DefaultSettle is the quiet period after the last file event before a reload
const DefaultSettle = 100 * time.Millisecond

// Watcher reports changes to a single local playlist file.
// The containing directory is watched so editors that save by rename are seen.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	settled *debounce.Debouncer[string]
	logger  zerolog.Logger

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Watch starts watching path; settle <= 0 uses DefaultSettle
func Watch(path string, settle time.Duration, logger zerolog.Logger) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyLocation
	}

	if settle <= 0 {
		settle = DefaultSettle
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve playlist path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch playlist file: %w", err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fsw,
		settled: debounce.New[string](settle),
		logger:  logger,
		done:    make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Changes delivers the path once per settled burst of writes.
// Closed after Close.
func (w *Watcher) Changes() <-chan string {
	return w.settled.C()
}

// Close stops watching; safe to call more than once
func (w *Watcher) Close() error {
	var err error

	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
		w.settled.Stop()
	})

	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}

			if w.relevant(event) {
				w.settled.Set(w.path)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}

			// Keep watching
			w.logger.Warn().Err(err).Str("path", w.path).Msg("watcher error")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}

	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
