// ABOUTME: Parses line-oriented M3U playlist text into Channel records
// ABOUTME: Single pass, degrades by skipping malformed entries instead of failing

// Package playlist parses M3U channel playlists.
// It reads #EXTINF metadata lines (name, tvg-logo, group-title) followed by a
// locator line and produces an ordered list of channels plus the sorted set of
// group labels seen while parsing.
package playlist

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
)

// maxLineSize bounds a single playlist line when reading from a stream.
// Public aggregated playlists carry long tvg attributes, 64 KiB is not enough.
const maxLineSize = 1024 * 1024

// Result holds the output of a parse
type Result struct {
	Channels []Channel // Channels in playlist order
	Groups   []string  // Sorted distinct group labels
}

// Parse converts raw playlist text into channels and group labels.
// Metadata lines without a following locator are dropped silently.
func Parse(text string) Result {
	p := newParser()

	for line := range strings.Lines(text) {
		p.feed(line)
	}

	return p.result()
}

// ParseReader parses playlist text from r.
// Only read errors are returned; malformed content never is.
func ParseReader(r io.Reader) (Result, error) {
	p := newParser()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		p.feed(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("error reading playlist: %w", err)
	}

	return p.result(), nil
}

// parser carries the pending-record state between lines
type parser struct {
	channels []Channel
	groups   map[string]struct{}
	pending  *Channel
}

func newParser() *parser {
	return &parser{
		groups: make(map[string]struct{}),
	}
}

// feed processes a single line
func (p *parser) feed(line string) {
	line = strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(line, metadataPrefix):
		// A new metadata line replaces any dangling one
		p.pending = nil

		if ch, ok := parseMetadata(line); ok {
			p.pending = &ch
		}

	case line == "" || strings.HasPrefix(line, "#"):
		// Blank lines, headers and unrelated directives

	case p.pending != nil:
		ch := *p.pending
		ch.URL = line
		p.channels = append(p.channels, ch)
		p.groups[ch.Group] = struct{}{}
		p.pending = nil
	}
}

// result finalizes the parse, dropping any pending record
func (p *parser) result() Result {
	groups := make([]string, 0, len(p.groups))
	for g := range p.groups {
		groups = append(groups, g)
	}

	slices.Sort(groups)

	return Result{
		Channels: p.channels,
		Groups:   groups,
	}
}
