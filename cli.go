// ABOUTME: Dump mode for non-interactive channel listing
// ABOUTME: Streams and filters a playlist, then prints a table of channels or groups

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"text/tabwriter"

	"livetv/channels"
	"livetv/playlist"
	"livetv/source"
	"livetv/tui"
)

// Column widths for the channel table
const (
	nameColumnWidth  = 40
	groupColumnWidth = 24
	urlColumnWidth   = 60
)

// DumpOptions contains command-line options for dump mode
type DumpOptions struct {
	Source     source.Source
	Search     string
	Group      string
	ListGroups bool
	Out        io.Writer
}

// PlaylistLoader fetches and parses a playlist in one pass
type PlaylistLoader interface {
	Load(ctx context.Context, location string) (playlist.Result, error)
}

// RunDump prints the filtered channel list of opts.Source
func RunDump(ctx context.Context, loader PlaylistLoader, opts DumpOptions) error {
	result, err := loader.Load(ctx, opts.Source.Location)
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}

	if len(result.Channels) == 0 {
		return tui.ErrNoChannels
	}

	idx := channels.New(result)

	w := tabwriter.NewWriter(opts.Out, 0, 0, 2, ' ', 0)

	if opts.ListGroups {
		writeGroupTable(w, idx)
	} else {
		view := idx.Filter(channels.FilterState{SearchText: opts.Search, SelectedGroup: opts.Group})
		writeChannelTable(w, view)

		if _, err := fmt.Fprintf(w, "\n%s of %d\n", formatChannelCount(len(view)), idx.Len()); err != nil {
			log.Printf("Warning: failed to write summary: %v", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}

// writeChannelTable writes one row per channel
func writeChannelTable(w io.Writer, view []playlist.Channel) {
	if _, err := fmt.Fprintln(w, "#\tName\tGroup\tLogo\tURL"); err != nil {
		log.Printf("Warning: failed to write header: %v", err)
	}

	if _, err := fmt.Fprintln(w, "---\t----\t-----\t----\t---"); err != nil {
		log.Printf("Warning: failed to write separator: %v", err)
	}

	for i, ch := range view {
		logo := "-"
		if ch.HasLogo() {
			logo = "yes"
		}

		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			truncate(ch.Name, nameColumnWidth),
			truncate(ch.Group, groupColumnWidth),
			logo,
			truncate(ch.URL, urlColumnWidth),
		); err != nil {
			log.Printf("Warning: failed to write channel %d: %v", i+1, err)
		}
	}
}

// writeGroupTable writes one row per group with its channel count
func writeGroupTable(w io.Writer, idx *channels.Index) {
	if _, err := fmt.Fprintln(w, "Group\tChannels"); err != nil {
		log.Printf("Warning: failed to write header: %v", err)
	}

	if _, err := fmt.Fprintln(w, "-----\t--------"); err != nil {
		log.Printf("Warning: failed to write separator: %v", err)
	}

	for _, group := range idx.Groups() {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", group, idx.GroupCount(group)); err != nil {
			log.Printf("Warning: failed to write group %s: %v", group, err)
		}
	}
}
