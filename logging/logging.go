// ABOUTME: zerolog setup for livetv: level, output file and component loggers
// ABOUTME: The terminal UI owns stdout, so logs go to a file or nowhere

// Package logging builds the structured loggers used across livetv.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config captures logger options
type Config struct {
	Level   string    // "debug", "info", ...; defaults to info
	File    string    // append logs to this file when set
	Output  io.Writer // used when File is empty; defaults to io.Discard
	Service string    // attached to every entry; defaults to "livetv"
}

// Logger is a configured base logger plus the file it writes to
type Logger struct {
	zerolog.Logger

	file *os.File
}

// New builds a logger from cfg.
// Unknown levels fall back to info rather than failing startup.
func New(cfg Config) (*Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	}

	var file *os.File

	writer := cfg.Output
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}

		file = f
		writer = f
	}

	if writer == nil {
		writer = io.Discard
	}

	service := cfg.Service
	if service == "" {
		service = "livetv"
	}

	zerolog.TimeFieldFormat = time.RFC3339

	base := zerolog.New(writer).Level(level).With().
		Timestamp().
		Str("service", service).
		Logger()

	return &Logger{Logger: base, file: file}, nil
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithComponent returns a child logger annotated with the given component name
func (l *Logger) WithComponent(component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// Close closes the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}

	err := l.file.Close()
	l.file = nil

	return err
}
