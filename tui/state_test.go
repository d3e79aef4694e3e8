// ABOUTME: Unit tests for the browser load state machine
// ABOUTME: Covers stale completion discard, error clearing and group/search filtering

package tui

import (
	"errors"
	"testing"

	"livetv/channels"
	"livetv/playlist"
	"livetv/source"
)

const samplePlaylist = `#EXTM3U
#EXTINF:-1 tvg-logo="http://logo/a.png" group-title="News",Alpha News
http://stream/alpha
#EXTINF:-1 group-title="Sports",Beta Sports
http://stream/beta
#EXTINF:-1 group-title="News",Gamma
http://stream/gamma
#EXTINF:-1,Delta
http://stream/delta
`

func TestLoadPhaseString(t *testing.T) {
	tests := []struct {
		phase loadPhase
		want  string
	}{
		{phaseIdle, "idle"},
		{phaseLoading, "loading"},
		{phaseReady, "ready"},
		{phaseError, "error"},
		{loadPhase(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("loadPhase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestBrowserState_BeginLoad(t *testing.T) {
	s := newBrowserState()

	if s.phase != phaseIdle {
		t.Fatalf("initial phase = %v, want idle", s.phase)
	}

	ch := playlist.Channel{Name: "X", URL: "http://x"}
	s.active = &ch

	seq := s.beginLoad(source.Imported("a.m3u"))

	if seq != 1 || s.seq != 1 {
		t.Errorf("seq = %d (state %d), want 1", seq, s.seq)
	}

	if s.phase != phaseLoading {
		t.Errorf("phase = %v, want loading", s.phase)
	}

	if s.active != nil {
		t.Error("beginLoad should clear the active channel")
	}

	if next := s.beginLoad(source.Imported("b.m3u")); next != 2 {
		t.Errorf("second beginLoad seq = %d, want 2", next)
	}
}

func TestBrowserState_CompleteLoad(t *testing.T) {
	s := newBrowserState()
	seq := s.beginLoad(source.Imported("a.m3u"))

	if !s.completeLoad(seq, playlist.Parse(samplePlaylist)) {
		t.Fatal("completeLoad rejected current sequence")
	}

	if s.phase != phaseReady {
		t.Errorf("phase = %v, want ready", s.phase)
	}

	if len(s.filtered) != 4 || s.total() != 4 {
		t.Errorf("filtered = %d, total = %d; want 4, 4", len(s.filtered), s.total())
	}

	want := []string{"All", "News", "Sports", "Uncategorized"}
	got := s.groups()

	if len(got) != len(want) {
		t.Fatalf("groups = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("groups[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBrowserState_StaleCompletionDiscarded(t *testing.T) {
	s := newBrowserState()

	first := s.beginLoad(source.Imported("slow.m3u"))
	second := s.beginLoad(source.Imported("fast.m3u"))

	// The fast request finishes first
	if !s.completeLoad(second, playlist.Parse(samplePlaylist)) {
		t.Fatal("latest completion was discarded")
	}

	// The slow one arrives late and must not replace the list
	if s.completeLoad(first, playlist.Parse("#EXTINF:-1,Late\nhttp://late\n")) {
		t.Error("stale completion was applied")
	}

	if s.failLoad(first, errors.New("late failure")) {
		t.Error("stale failure was applied")
	}

	if s.phase != phaseReady || s.total() != 4 {
		t.Errorf("state after stale results: phase %v, total %d; want ready, 4", s.phase, s.total())
	}

	if s.source.Location != "fast.m3u" {
		t.Errorf("source = %q, want fast.m3u", s.source.Location)
	}
}

func TestBrowserState_ErrorClearsList(t *testing.T) {
	s := newBrowserState()
	s.completeLoad(s.beginLoad(source.Imported("a.m3u")), playlist.Parse(samplePlaylist))

	seq := s.beginLoad(source.Imported("a.m3u"))
	if !s.failLoad(seq, errors.New("connection refused")) {
		t.Fatal("failLoad rejected current sequence")
	}

	if s.phase != phaseError {
		t.Errorf("phase = %v, want error", s.phase)
	}

	if s.index != nil || s.filtered != nil || s.total() != 0 {
		t.Error("error state should clear index and filtered view")
	}

	if s.errMsg != "Failed to fetch playlist: connection refused" {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestBrowserState_EmptyPlaylistIsError(t *testing.T) {
	s := newBrowserState()
	seq := s.beginLoad(source.Imported("a.m3u"))

	s.completeLoad(seq, playlist.Parse("#EXTM3U\n# nothing here\n"))

	if s.phase != phaseError {
		t.Fatalf("phase = %v, want error", s.phase)
	}

	if s.errMsg != "No channels found in playlist" {
		t.Errorf("errMsg = %q, want %q", s.errMsg, "No channels found in playlist")
	}
}

func TestBrowserState_Filtering(t *testing.T) {
	s := newBrowserState()
	s.completeLoad(s.beginLoad(source.Imported("a.m3u")), playlist.Parse(samplePlaylist))

	if !s.setGroup("News") {
		t.Fatal("setGroup(News) reported no change")
	}

	if len(s.filtered) != 2 {
		t.Errorf("News filter = %d channels, want 2", len(s.filtered))
	}

	if !s.setSearch("gam") || len(s.filtered) != 1 || s.filtered[0].Name != "Gamma" {
		t.Errorf("News + gam = %v, want [Gamma]", s.filtered)
	}

	if s.setSearch("gam") {
		t.Error("same search text reported a change")
	}

	// Empty result is still Ready
	s.setSearch("zzz")

	if s.phase != phaseReady || len(s.filtered) != 0 {
		t.Errorf("no-match: phase %v, filtered %d; want ready, 0", s.phase, len(s.filtered))
	}

	s.setSearch("")
	s.setGroup("")

	if s.filter.SelectedGroup != channels.AllGroups || len(s.filtered) != 4 {
		t.Errorf("reset: group %q, filtered %d; want All, 4", s.filter.SelectedGroup, len(s.filtered))
	}
}

func TestBrowserState_CycleGroup(t *testing.T) {
	s := newBrowserState()

	if s.cycleGroup(1) {
		t.Error("cycling with no playlist should do nothing")
	}

	s.completeLoad(s.beginLoad(source.Imported("a.m3u")), playlist.Parse(samplePlaylist))

	steps := []struct {
		delta int
		want  string
	}{
		{1, "News"},
		{1, "Sports"},
		{1, "Uncategorized"},
		{1, "All"},
		{-1, "Uncategorized"},
		{-2, "News"},
	}

	for _, step := range steps {
		s.cycleGroup(step.delta)

		if s.filter.SelectedGroup != step.want {
			t.Errorf("cycleGroup(%d) = %q, want %q", step.delta, s.filter.SelectedGroup, step.want)
		}
	}
}

func TestBrowserState_GroupMissingAfterReload(t *testing.T) {
	s := newBrowserState()
	s.completeLoad(s.beginLoad(source.Imported("a.m3u")), playlist.Parse(samplePlaylist))
	s.setGroup("Sports")

	s.completeLoad(s.beginLoad(source.Imported("b.m3u")), playlist.Parse("#EXTINF:-1 group-title=\"Kids\",Toons\nhttp://k\n"))

	if s.filter.SelectedGroup != channels.AllGroups {
		t.Errorf("group = %q, want fallback to All", s.filter.SelectedGroup)
	}

	if len(s.filtered) != 1 {
		t.Errorf("filtered = %d, want 1", len(s.filtered))
	}
}

func TestBrowserState_CycleGroupWithParsedAll(t *testing.T) {
	s := newBrowserState()
	s.completeLoad(s.beginLoad(source.Imported("a.m3u")), playlist.Parse(`#EXTINF:-1 group-title="All",Everything TV
http://stream/everything
#EXTINF:-1 group-title="News",Alpha News
http://stream/alpha
`))

	for _, want := range []string{"News", "All", "News"} {
		if !s.cycleGroup(1) {
			t.Fatalf("cycleGroup(1) reported no change, stuck on %q", s.filter.SelectedGroup)
		}

		if s.filter.SelectedGroup != want {
			t.Errorf("cycleGroup(1) = %q, want %q", s.filter.SelectedGroup, want)
		}
	}
}
