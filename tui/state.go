// ABOUTME: Load state machine and filter state for the channel browser
// ABOUTME: Discards stale load completions by sequence number and keeps the filtered view current

package tui

import (
	"errors"
	"slices"

	"livetv/channels"
	"livetv/playlist"
	"livetv/source"
)

// ErrNoChannels is reported when a playlist parses to nothing
var ErrNoChannels = errors.New("no channels found in playlist")

// loadPhase is where the browser is in the load lifecycle
type loadPhase int

const (
	phaseIdle loadPhase = iota
	phaseLoading
	phaseReady
	phaseError
)

func (p loadPhase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseLoading:
		return "loading"
	case phaseReady:
		return "ready"
	case phaseError:
		return "error"
	default:
		return "unknown"
	}
}

// browserState holds everything derived from the loaded playlist.
// It has no UI dependencies so transitions can be tested directly.
type browserState struct {
	phase  loadPhase
	seq    uint64 // sequence of the most recent load request
	source source.Source
	errMsg string

	index    *channels.Index
	filter   channels.FilterState
	filtered []playlist.Channel

	active *playlist.Channel // channel handed to the player
}

func newBrowserState() browserState {
	return browserState{filter: channels.FilterState{SelectedGroup: channels.AllGroups}}
}

// beginLoad moves to Loading for src and returns the new request's sequence.
// Any earlier in-flight request becomes stale.
func (s *browserState) beginLoad(src source.Source) uint64 {
	s.seq++
	s.phase = phaseLoading
	s.source = src
	s.errMsg = ""
	s.active = nil

	return s.seq
}

// completeLoad applies a parse result for request seq.
// Returns false when seq is stale and the result was discarded.
func (s *browserState) completeLoad(seq uint64, res playlist.Result) bool {
	if seq != s.seq {
		return false
	}

	if len(res.Channels) == 0 {
		s.fail(ErrNoChannels)
		return true
	}

	s.index = channels.New(res)
	s.phase = phaseReady
	s.errMsg = ""

	// A group missing from the new playlist falls back to All
	if !slices.Contains(s.index.Groups(), s.filter.SelectedGroup) {
		s.filter.SelectedGroup = channels.AllGroups
	}

	s.refilter()

	return true
}

// failLoad records a fetch failure for request seq.
// Returns false when seq is stale and the failure was discarded.
func (s *browserState) failLoad(seq uint64, err error) bool {
	if seq != s.seq {
		return false
	}

	s.fail(err)

	return true
}

// fail enters Error and clears the index so no stale list stays on screen
func (s *browserState) fail(err error) {
	s.phase = phaseError
	s.errMsg = errorMessage(err)
	s.index = nil
	s.filtered = nil
}

func errorMessage(err error) string {
	if errors.Is(err, ErrNoChannels) {
		return "No channels found in playlist"
	}

	return "Failed to fetch playlist: " + err.Error()
}

// setSearch stores the settled search text and refilters.
// Returns true when the filtered view changed.
func (s *browserState) setSearch(text string) bool {
	if s.filter.SearchText == text {
		return false
	}

	s.filter.SearchText = text
	s.refilter()

	return true
}

// setGroup selects a group and refilters immediately
func (s *browserState) setGroup(group string) bool {
	if group == "" {
		group = channels.AllGroups
	}

	if s.filter.SelectedGroup == group {
		return false
	}

	s.filter.SelectedGroup = group
	s.refilter()

	return true
}

// cycleGroup moves the group selection by delta, wrapping around
func (s *browserState) cycleGroup(delta int) bool {
	groups := s.groups()
	if len(groups) == 0 {
		return false
	}

	current := max(slices.Index(groups, s.filter.SelectedGroup), 0)
	next := ((current+delta)%len(groups) + len(groups)) % len(groups)

	return s.setGroup(groups[next])
}

// groups returns the selectable groups, "All" first
func (s *browserState) groups() []string {
	if s.index == nil {
		return nil
	}

	return s.index.Groups()
}

// refilter recomputes the filtered view from the index and filter
func (s *browserState) refilter() {
	if s.index == nil {
		s.filtered = nil
		return
	}

	s.filtered = s.index.Filter(s.filter)
}

// total returns the number of channels in the loaded playlist
func (s *browserState) total() int {
	if s.index == nil {
		return 0
	}

	return s.index.Len()
}

// isActive reports whether ch is the channel being played
func (s *browserState) isActive(ch playlist.Channel) bool {
	return s.active != nil && s.active.URL == ch.URL && s.active.Name == ch.Name
}
