// ABOUTME: Channel index holding one parsed playlist snapshot
// ABOUTME: Filters channels by group label and case-folded search text, preserving order

// Package channels indexes a parsed playlist for filtered browsing.
package channels

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"livetv/playlist"
)

// AllGroups is the synthetic group label meaning "no group filter"
const AllGroups = "All"

// FilterState is the input to Filter
type FilterState struct {
	SearchText    string // Free text matched against name and group
	SelectedGroup string // Exact group label, or AllGroups
}

// Index owns an immutable snapshot of a parsed playlist.
// A new playlist builds a new Index; an Index is never patched in place.
type Index struct {
	channels []playlist.Channel
	groups   []string
	counts   map[string]int

	// Case-folded name and group per channel, aligned with channels
	foldedNames  []string
	foldedGroups []string
}

// New builds an index from a parse result.
// The channel slice is copied so the caller cannot mutate the snapshot.
func New(result playlist.Result) *Index {
	channels := make([]playlist.Channel, len(result.Channels))
	copy(channels, result.Channels)

	// A parsed group named like the synthetic one is folded into it
	groups := make([]string, 0, len(result.Groups)+1)
	groups = append(groups, AllGroups)
	for _, g := range result.Groups {
		if g != AllGroups {
			groups = append(groups, g)
		}
	}

	idx := &Index{
		channels:     channels,
		groups:       groups,
		counts:       make(map[string]int, len(result.Groups)),
		foldedNames:  make([]string, len(channels)),
		foldedGroups: make([]string, len(channels)),
	}

	fold := cases.Fold()
	for i, ch := range channels {
		idx.foldedNames[i] = fold.String(ch.Name)
		idx.foldedGroups[i] = fold.String(ch.Group)
		idx.counts[ch.Group]++
	}

	return idx
}

// All returns a copy of every channel in parse order
func (idx *Index) All() []playlist.Channel {
	return slices.Clone(idx.channels)
}

// Groups returns a copy of the group labels with AllGroups first
func (idx *Index) Groups() []string {
	return slices.Clone(idx.groups)
}

// Len returns the number of channels in the index
func (idx *Index) Len() int {
	return len(idx.channels)
}

// GroupCount returns how many channels carry the given group.
// AllGroups counts every channel.
func (idx *Index) GroupCount(group string) int {
	if group == AllGroups {
		return len(idx.channels)
	}

	return idx.counts[group]
}

// Filter returns the channels matching state in parse order.
// The group predicate is exact and case-sensitive; the search predicate is a
// case-folded substring match against name or group. Both must hold.
func (idx *Index) Filter(state FilterState) []playlist.Channel {
	query := strings.TrimSpace(state.SearchText)
	if query != "" {
		query = cases.Fold().String(query)
	}

	groupFilter := state.SelectedGroup != "" && state.SelectedGroup != AllGroups

	result := make([]playlist.Channel, 0, len(idx.channels))

	for i, ch := range idx.channels {
		if groupFilter && ch.Group != state.SelectedGroup {
			continue
		}

		if query != "" &&
			!strings.Contains(idx.foldedNames[i], query) &&
			!strings.Contains(idx.foldedGroups[i], query) {
			continue
		}

		result = append(result, ch)
	}

	return result
}
