// ABOUTME: Playback boundary: hands a stream URL to an external player
// ABOUTME: Command launches a configured program; Recorder captures calls for tests and dry runs

// Package player starts playback of a selected channel.
package player

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultCommand is the player program used when none is configured
const DefaultCommand = "mpv"

// ErrEmptyURL is returned when asked to play a blank URL
var ErrEmptyURL = errors.New("empty stream URL")

// Player plays stream URLs
type Player interface {
	Play(ctx context.Context, url string) error
	Stop() error
}

// Command plays streams by running an external program with the URL as
// its last argument. Only one process runs at a time.
type Command struct {
	name   string
	args   []string
	logger zerolog.Logger

	mu      sync.Mutex
	current *exec.Cmd
	exited  chan struct{}
}

// NewCommand creates a Command player; an empty name uses DefaultCommand
func NewCommand(name string, args []string, logger zerolog.Logger) *Command {
	if name == "" {
		name = DefaultCommand
	}

	return &Command{
		name:   name,
		args:   append([]string(nil), args...),
		logger: logger,
	}
}

// Play stops any running process and starts the player on url
func (c *Command) Play(ctx context.Context, url string) error {
	if url == "" {
		return ErrEmptyURL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()

	args := append(append([]string(nil), c.args...), url)
	cmd := exec.Command(c.name, args...)

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", c.name, err)
	}

	exited := make(chan struct{})
	c.current = cmd
	c.exited = exited

	c.logger.Info().Str("player", c.name).Int("pid", cmd.Process.Pid).Str("url", url).Msg("playback started")

	go func() {
		defer close(exited)

		if err := cmd.Wait(); err != nil {
			c.logger.Debug().Err(err).Str("player", c.name).Msg("player exited")
		}
	}()

	return nil
}

// Stop kills the running player process, if any
func (c *Command) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stopLocked()
}

// Running reports whether a player process is alive
func (c *Command) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.exited == nil {
		return false
	}

	select {
	case <-c.exited:
		return false
	default:
		return true
	}
}

func (c *Command) stopLocked() error {
	if c.current == nil {
		return nil
	}

	cmd, exited := c.current, c.exited
	c.current, c.exited = nil, nil

	select {
	case <-exited:
		return nil
	default:
	}

	if err := cmd.Process.Kill(); err != nil {
		select {
		case <-exited:
			return nil
		default:
			return fmt.Errorf("stop %s: %w", c.name, err)
		}
	}

	<-exited

	return nil
}

// Recorder is an in-memory Player that records requested URLs
type Recorder struct {
	mu      sync.Mutex
	played  []string
	stopped int

	// Err, when set, is returned from Play
	Err error
}

// Play records url
func (r *Recorder) Play(ctx context.Context, url string) error {
	if url == "" {
		return ErrEmptyURL
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}

	r.played = append(r.played, url)

	return nil
}

// Stop counts the call
func (r *Recorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopped++

	return nil
}

// Played returns the URLs passed to Play in order
func (r *Recorder) Played() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.played...)
}

// Stops returns how many times Stop was called
func (r *Recorder) Stops() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.stopped
}
