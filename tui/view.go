// ABOUTME: Rendering and display functions for the TUI
// ABOUTME: Implements the Bubble Tea View() function and the chrome around the channel list

package tui

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"livetv/channels"
	"livetv/source"
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("view panic")
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return "Saving config and exiting...\n"
	}

	list := lipgloss.NewStyle().
		Height(m.viewport.Height).
		MaxHeight(m.viewport.Height).
		Render(m.renderList())

	return strings.Join([]string{
		m.renderHeader(),
		m.renderInputLine(),
		m.renderGroupLine(),
		"",
		list,
		m.renderStatus(),
		m.renderHelp(),
	}, "\n")
}

// renderHeader renders the title and source tabs
func (m model) renderHeader() string {
	parts := []string{titleStyle.Render("Live TV")}

	for i, src := range source.Builtins() {
		label := fmt.Sprintf("%d %s", i+1, src.Label)
		if m.state.source.Name == src.Name {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}

	importLabel := "i Import"
	if m.state.source.Name == source.Custom {
		parts = append(parts, activeTabStyle.Render(importLabel))
	} else {
		parts = append(parts, tabStyle.Render(importLabel))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderInputLine renders the search box, or the import prompt while open
func (m model) renderInputLine() string {
	if m.mode == modeImport {
		return m.importInput.View()
	}

	return m.search.View()
}

// renderGroupLine renders the group selector
func (m model) renderGroupLine() string {
	group := m.state.filter.SelectedGroup
	if group == "" {
		group = channels.AllGroups
	}

	line := "Group: " + groupStyle.Render(group)

	if groups := m.state.groups(); len(groups) > 0 {
		pos := 1
		for i, g := range groups {
			if g == group {
				pos = i + 1
				break
			}
		}

		line += helpStyle.Render(fmt.Sprintf("  (%d/%d)", pos, len(groups)))
	}

	return line
}

// renderList renders the list panel for the current load phase
func (m model) renderList() string {
	switch m.state.phase {
	case phaseLoading:
		return m.spinner.View() + " Loading channels..."

	case phaseError:
		return errorStyle.Render(m.state.errMsg) + "\n" +
			helpStyle.Render("Press r to retry, 1-3 to pick another source or i to import")

	case phaseReady:
		if len(m.state.filtered) == 0 {
			return helpStyle.Render(fmt.Sprintf("No channels match %q in %s",
				m.state.filter.SearchText, m.state.filter.SelectedGroup))
		}

		return m.viewport.View()

	default:
		return helpStyle.Render("Press 1-3 to load a playlist or i to import one")
	}
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	// Show status message if recent
	if m.statusMsg != "" && time.Since(m.statusMsgAge) < statusMessageDuration {
		return statusStyle.Width(m.width).Render(m.statusMsg)
	}

	status := fmt.Sprintf("%d Channels", len(m.state.filtered))

	if m.state.phase == phaseReady {
		status += fmt.Sprintf(" of %d | %d/%d", m.state.total(), min(m.cursor+1, len(m.state.filtered)), len(m.state.filtered))
	}

	if m.state.source.Location != "" {
		status += " | " + m.state.source.Location
	}

	if m.state.active != nil {
		status += " | Now playing: " + m.state.active.Name
	}

	return statusStyle.Width(m.width).Render(status)
}

// renderHelp renders the help text
func (m model) renderHelp() string {
	switch m.mode {
	case modeSearch:
		return helpStyle.Render(" type to filter | enter/esc: back to list | ctrl+c: quit")
	case modeImport:
		return helpStyle.Render(" enter: load playlist | esc: cancel | ctrl+c: quit")
	default:
		return helpStyle.Render(" ↑/↓/j/k: navigate | enter: play | /: search | [/]: group | 0: all | 1-3: source | i: import | r: reload | q: quit")
	}
}
