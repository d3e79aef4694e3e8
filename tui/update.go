// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function, message handlers and async commands

package tui

import (
	"context"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"livetv/player"
	"livetv/playlist"
	"livetv/source"
)

// loadedMsg carries the outcome of fetch request seq
type loadedMsg struct {
	seq    uint64
	result playlist.Result
	err    error
}

// searchSettledMsg carries search text after the debounce quiet period
type searchSettledMsg struct {
	text string
}

// fileChangedMsg signals that the watched playlist was rewritten
type fileChangedMsg struct {
	from Notifier
}

// playedMsg reports the outcome of handing a channel to the player
type playedMsg struct {
	channel playlist.Channel
	err     error
}

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("update panic")
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case loadedMsg:
		m.handleLoaded(msg)
		return m, nil

	case searchSettledMsg:
		if m.state.setSearch(msg.text) {
			m.resetListPosition()
		}

		// Queue next settled value
		return m, waitForSearch(m.searchDebouncer.C())

	case fileChangedMsg:
		// Ignore signals from a watcher that was replaced
		if m.watcher == nil || msg.from != m.watcher {
			return m, nil
		}

		m.logger.Info().Str("path", m.watchedPath).Msg("playlist changed on disk, reloading")

		return m, tea.Batch(m.startLoad(m.state.source), waitForFileChange(m.watcher))

	case playedMsg:
		if msg.err != nil {
			m.setStatus("Playback failed: %v", msg.err)
		} else {
			m.setStatus("Playing %s", msg.channel.Name)
		}

		return m, nil

	case spinner.TickMsg:
		// Spinner only animates while loading
		if m.state.phase != phaseLoading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeImport:
			return m.updateImport(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

// updateBrowse handles keys while the list has focus
func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m.handleQuitKey()

	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, keys.PageUp):
		m.moveCursor(-pageJumpSize)

	case key.Matches(msg, keys.PageDown):
		m.moveCursor(pageJumpSize)

	case key.Matches(msg, keys.Home):
		m.setCursor(0)

	case key.Matches(msg, keys.End):
		m.setCursor(len(m.state.filtered) - 1)

	case key.Matches(msg, keys.Play):
		return m, m.playSelected()

	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()

	case key.Matches(msg, keys.Import):
		m.mode = modeImport
		return m, m.importInput.Focus()

	case key.Matches(msg, keys.Reload):
		if m.state.source.Location == "" {
			return m, nil
		}

		return m, m.startLoad(m.state.source)

	case key.Matches(msg, keys.NextGrp):
		if m.state.cycleGroup(1) {
			m.resetListPosition()
		}

	case key.Matches(msg, keys.PrevGrp):
		if m.state.cycleGroup(-1) {
			m.resetListPosition()
		}

	case key.Matches(msg, keys.AllGrp):
		if m.state.setGroup("") {
			m.resetListPosition()
		}

	case key.Matches(msg, keys.Source1):
		return m, m.switchSource(source.Global)

	case key.Matches(msg, keys.Source2):
		return m, m.switchSource(source.Country)

	case key.Matches(msg, keys.Source3):
		return m, m.switchSource(source.Category)
	}

	return m, nil
}

// updateSearch routes keys to the search input and debounces its value
func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.ForceQ):
		return m.handleQuitKey()

	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Submit):
		m.mode = modeBrowse
		m.search.Blur()

		return m, nil
	}

	before := m.search.Value()

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if value := m.search.Value(); value != before {
		m.searchDebouncer.Set(value)
	}

	return m, cmd
}

// updateImport routes keys to the import prompt
func (m model) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.ForceQ):
		return m.handleQuitKey()

	case key.Matches(msg, keys.Escape):
		m.closeImport()
		return m, nil

	case key.Matches(msg, keys.Submit):
		location := strings.TrimSpace(m.importInput.Value())
		if location == "" {
			m.setStatus("Enter a playlist URL or file path")
			return m, nil
		}

		m.closeImport()

		return m, m.startLoad(source.Imported(location))
	}

	var cmd tea.Cmd
	m.importInput, cmd = m.importInput.Update(msg)

	return m, cmd
}

// closeImport returns focus to the list and clears the prompt
func (m *model) closeImport() {
	m.mode = modeBrowse
	m.importInput.Blur()
	m.importInput.Reset()
}

// handleQuitKey handles the quit key press
func (m *model) handleQuitKey() (model, tea.Cmd) {
	m.quitting = true
	m.saveConfig()
	m.shutdown()

	return *m, tea.Quit
}

// handleResize resizes the list surface when the content box changes
func (m *model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	size, changed := m.tracker.Observe(
		max(msg.Width, minViewportWidth),
		max(msg.Height-totalUIChrome, minViewportHeight),
	)
	if !changed {
		return
	}

	m.win.SetViewport(size.Width, size.Height)
	m.viewport.Width = size.Width
	m.viewport.Height = size.Height

	m.win.ClampOffset()
	m.ensureCursorVisible()
	m.updateViewportContent()
}

// handleLoaded applies a finished fetch unless a newer load superseded it
func (m *model) handleLoaded(msg loadedMsg) {
	var applied bool
	if msg.err != nil {
		applied = m.state.failLoad(msg.seq, msg.err)
	} else {
		applied = m.state.completeLoad(msg.seq, msg.result)
	}

	if !applied {
		m.logger.Debug().Uint64("seq", msg.seq).Uint64("current", m.state.seq).Msg("discarding stale load")
		return
	}

	if m.state.phase == phaseError {
		m.logger.Warn().Str("source", m.state.source.Location).Str("error", m.state.errMsg).Msg("load failed")
	} else {
		m.logger.Info().
			Str("source", m.state.source.Location).
			Int("channels", m.state.total()).
			Int("groups", len(m.state.groups())-1).
			Msg("playlist loaded")
	}

	m.resetListPosition()
}

// handleMouse scrolls on wheel events and selects on click
func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.state.phase != phaseReady || msg.Action != tea.MouseActionPress {
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.win.ScrollBy(-wheelStepRows * m.win.RowHeight())
		m.keepCursorInView()

	case tea.MouseButtonWheelDown:
		m.win.ScrollBy(wheelStepRows * m.win.RowHeight())
		m.keepCursorInView()

	case tea.MouseButtonLeft:
		row := m.win.RowAt(msg.Y - listTop)
		if row < 0 {
			return
		}

		m.cursor = row
	}

	m.updateViewportContent()
}

// switchSource loads a built-in source, clearing search like a fresh start
func (m *model) switchSource(name string) tea.Cmd {
	src, ok := source.Builtin(name)
	if !ok {
		return nil
	}

	m.search.Reset()
	m.searchDebouncer.Cancel()
	m.state.setSearch("")

	return m.startLoad(src)
}

// startLoad cancels any in-flight fetch and requests src.
// The returned command resolves to a loadedMsg tagged with the new sequence.
func (m *model) startLoad(src source.Source) tea.Cmd {
	if m.loadCancel != nil {
		m.loadCancel()
	}

	seq := m.state.beginLoad(src)

	ctx, cancel := context.WithCancel(m.ctx)
	m.loadCancel = cancel

	m.resetListPosition()

	m.logger.Debug().Uint64("seq", seq).Str("source", src.Name).Str("location", src.Location).Msg("loading playlist")

	return tea.Batch(
		fetchPlaylist(ctx, m.fetcher, src.Location, seq),
		m.watchSource(src),
		m.spinner.Tick,
	)
}

// watchSource follows local playlist files so edits reload the list
func (m *model) watchSource(src source.Source) tea.Cmd {
	path := src.LocalPath()

	if m.watcher != nil && path == m.watchedPath {
		return nil
	}

	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.logger.Warn().Err(err).Msg("failed to close playlist watcher")
		}

		m.watcher = nil
		m.watchedPath = ""
	}

	if path == "" || m.watch == nil || !m.cfg.Browser.Watch {
		return nil
	}

	w, err := m.watch(path)
	if err != nil {
		m.logger.Warn().Err(err).Str("path", path).Msg("cannot watch playlist")
		return nil
	}

	m.watcher = w
	m.watchedPath = path

	return waitForFileChange(w)
}

// playSelected marks the selected channel active and starts playback
func (m *model) playSelected() tea.Cmd {
	if m.state.phase != phaseReady || m.cursor < 0 || m.cursor >= len(m.state.filtered) {
		return nil
	}

	ch := m.state.filtered[m.cursor]
	m.state.active = &ch
	m.updateViewportContent()

	return playChannel(m.ctx, m.player, ch)
}

// moveCursor moves the selection by delta rows
func (m *model) moveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

// setCursor selects row index, clamped to the filtered view
func (m *model) setCursor(index int) {
	n := len(m.state.filtered)
	if n == 0 {
		m.cursor = 0
		return
	}

	m.cursor = min(max(index, 0), n-1)
	m.ensureCursorVisible()
	m.updateViewportContent()
}

// ensureCursorVisible scrolls the window so the cursor sits mid-viewport
func (m *model) ensureCursorVisible() {
	m.win.EnsureVisible(m.cursor)
}

// keepCursorInView moves the cursor onto a fully visible row after a scroll
func (m *model) keepCursorInView() {
	rowHeight := m.win.RowHeight()
	first := (m.win.ScrollOffset() + rowHeight - 1) / rowHeight
	last := (m.win.ScrollOffset()+m.win.Height())/rowHeight - 1
	last = min(last, len(m.state.filtered)-1)

	if last < first {
		return
	}

	m.cursor = min(max(m.cursor, first), last)
}

// resetListPosition returns to the top after the filtered view changed
func (m *model) resetListPosition() {
	m.cursor = 0
	m.win.SetItemCount(len(m.state.filtered))
	m.win.SetScrollOffset(0)
	m.updateViewportContent()
}

// fetchPlaylist fetches and parses location off the UI goroutine
func fetchPlaylist(ctx context.Context, f Fetcher, location string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		text, err := f.Fetch(ctx, location)
		if err != nil {
			return loadedMsg{seq: seq, err: err}
		}

		return loadedMsg{seq: seq, result: playlist.Parse(text)}
	}
}

// waitForSearch returns a command that waits for the next settled search value
func waitForSearch(settled <-chan string) tea.Cmd {
	return func() tea.Msg {
		text, ok := <-settled
		if !ok {
			return nil
		}

		return searchSettledMsg{text: text}
	}
}

// waitForFileChange returns a command that waits for the watched playlist to change
func waitForFileChange(n Notifier) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-n.Changes(); !ok {
			return nil
		}

		return fileChangedMsg{from: n}
	}
}

// playChannel hands the channel URL to the player
func playChannel(ctx context.Context, p player.Player, ch playlist.Channel) tea.Cmd {
	if p == nil {
		return nil
	}

	return func() tea.Msg {
		return playedMsg{channel: ch, err: p.Play(ctx, ch.URL)}
	}
}
