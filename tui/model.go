// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model for browsing, filtering and playing live channels

// Package tui provides an interactive terminal browser for live TV playlists.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"livetv/config"
	"livetv/debounce"
	"livetv/player"
	"livetv/source"
	"livetv/window"
)

// Layout constants for UI dimensions
const (
	// UI chrome heights (elements that reduce available viewport space)
	headerHeight    = 1 // Title and source tabs
	filterBarHeight = 2 // Search input and group selector
	spacingHeight   = 1 // Gap above the list
	statusBarHeight = 1 // Bottom status bar
	helpHeight      = 1 // Help text line
	totalUIChrome   = headerHeight + filterBarHeight + spacingHeight + statusBarHeight + helpHeight

	// First terminal line of the channel list
	listTop = headerHeight + filterBarHeight + spacingHeight

	// Minimum viewport dimensions to ensure usability
	minViewportWidth  = 20
	minViewportHeight = 2
)

// Navigation and interaction constants
const (
	pageJumpSize          = 10              // Number of channels to jump on PageUp/PageDown
	wheelStepRows         = 3               // Rows scrolled per mouse wheel notch
	statusMessageDuration = 5 * time.Second // How long to show transient status messages
)

// inputMode is which widget receives key presses
type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeImport
)

// model holds the TUI state
type model struct {
	// Dependencies
	fetcher Fetcher
	player  player.Player
	watch   WatchFunc
	logger  zerolog.Logger

	// Configuration
	cfg        config.Config
	configPath string
	dryRun     bool

	// Load lifecycle
	// Framework exception: Bubble Tea owns the model lifecycle, so the
	// application context lives in the struct and is cancelled on quit.
	ctx         context.Context    //nolint:containedctx // See framework exception above
	cancel      context.CancelFunc // Cancels ctx
	loadCancel  context.CancelFunc // Cancels the in-flight fetch
	state       browserState
	watcher     Notifier
	watchedPath string
	initCmd     tea.Cmd // First load, started by Init

	// Search
	search          textinput.Model
	importInput     textinput.Model
	mode            inputMode
	searchDebouncer *debounce.Debouncer[string]

	// List surface
	win      *window.Window
	tracker  window.Tracker
	viewport viewport.Model
	spinner  spinner.Model
	cursor   int          // Selected row in the filtered view
	rendered window.Range // Rows currently laid into the viewport

	// UI state
	width        int
	height       int
	quitting     bool
	statusMsg    string    // Temporary status message (e.g., "Playing BBC One")
	statusMsgAge time.Time // When status message was set
}

// Key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Play     key.Binding
	Search   key.Binding
	Escape   key.Binding
	Import   key.Binding
	Reload   key.Binding
	NextGrp  key.Binding
	PrevGrp  key.Binding
	AllGrp   key.Binding
	Source1  key.Binding
	Source2  key.Binding
	Source3  key.Binding
	Quit     key.Binding
	ForceQ   key.Binding
	Submit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "navigate"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "first channel"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "last channel"),
	),
	Play: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "play"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Import: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "import"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	NextGrp: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next group"),
	),
	PrevGrp: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous group"),
	),
	AllGrp: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "all groups"),
	),
	Source1: key.NewBinding(key.WithKeys("1")),
	Source2: key.NewBinding(key.WithKeys("2")),
	Source3: key.NewBinding(key.WithKeys("3")),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	ForceQ: key.NewBinding(key.WithKeys("ctrl+c")),
	Submit: key.NewBinding(key.WithKeys("enter")),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15")).
			Bold(true).
			Padding(0, 1)

	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	channelGroupStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	playingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15"))
)

// Run starts the TUI with injected dependencies
func Run(opts Options, deps Dependencies) error {
	m := initModel(opts, deps)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	finalModel, err := p.Run()
	if fm, ok := finalModel.(model); ok {
		fm.shutdown()
	} else {
		m.shutdown()
	}

	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// initModel creates the initial model and starts loading opts.Source
func initModel(opts Options, deps Dependencies) model {
	ctx, cancel := context.WithCancel(context.Background())

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search channels"

	importInput := textinput.New()
	importInput.Prompt = "URL: "
	importInput.Placeholder = "https://example.com/playlist.m3u or /path/to/file.m3u"

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := model{
		fetcher: deps.Fetcher,
		player:  deps.Player,
		watch:   deps.Watch,
		logger:  deps.Logger,

		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		dryRun:     opts.DryRun,

		ctx:    ctx,
		cancel: cancel,
		state:  newBrowserState(),

		search:          search,
		importInput:     importInput,
		searchDebouncer: debounce.New[string](opts.Config.Debounce()),

		win:      window.New(opts.Config.Browser.RowHeight, opts.Config.Browser.Overscan),
		viewport: viewport.New(0, 0), // Width and height set on first WindowSizeMsg
		spinner:  spin,
	}

	if opts.Source.Location != "" {
		m.initCmd = m.startLoad(opts.Source)
	}

	return m
}

// Init starts the first load and the background listeners
func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.initCmd,
		waitForSearch(m.searchDebouncer.C()),
		m.spinner.Tick,
	)
}

// setStatus shows a transient message in the status bar
func (m *model) setStatus(format string, args ...any) {
	m.statusMsg = fmt.Sprintf(format, args...)
	m.statusMsgAge = time.Now()
}

// shutdown releases everything the model started; safe to call more than once
func (m *model) shutdown() {
	if m.loadCancel != nil {
		m.loadCancel()
	}

	m.cancel()
	m.searchDebouncer.Stop()

	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.logger.Warn().Err(err).Msg("failed to close playlist watcher")
		}
	}

	if m.player != nil {
		if err := m.player.Stop(); err != nil {
			m.logger.Warn().Err(err).Msg("failed to stop player")
		}
	}
}

// saveConfig records the last source so the next start reopens it
func (m *model) saveConfig() {
	if m.dryRun || m.configPath == "" || m.state.source.Location == "" {
		return
	}

	cfg := m.cfg
	cfg.Playlist.Source = m.state.source.Name
	if m.state.source.Name == source.Custom {
		cfg.Playlist.URL = m.state.source.Location
	}

	if err := config.SaveConfig(m.configPath, cfg); err != nil {
		// Don't block quit on config save failure
		m.logger.Warn().Err(err).Str("path", m.configPath).Msg("failed to save config on quit")
	}
}
