// ABOUTME: Channel row rendering for the virtualized list
// ABOUTME: Formats only the rows inside the window range and lays them into the viewport

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"livetv/playlist"
	"livetv/window"
)

const ellipsis = "…"

// updateViewportContent builds and sets the viewport content.
// Only rows in the window range are formatted; the viewport's offset is the
// scroll position relative to the first materialized row.
func (m *model) updateViewportContent() {
	r := m.win.Range()
	m.rendered = r

	if r.Empty() {
		m.viewport.SetContent("")
		m.viewport.SetYOffset(0)

		return
	}

	rowHeight := m.win.RowHeight()
	lines := make([]string, 0, r.Len()*rowHeight)

	for i := r.Start; i <= r.End; i++ {
		lines = append(lines, m.renderRow(i, m.state.filtered[i])...)
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.SetYOffset(m.win.ScrollOffset() - window.RowOffset(r.Start, rowHeight))
}

// renderRow formats one channel as exactly RowHeight lines
func (m *model) renderRow(index int, ch playlist.Channel) []string {
	width := max(m.win.Width(), minViewportWidth)
	rowHeight := m.win.RowHeight()

	marker := "  "
	if m.state.isActive(ch) {
		marker = "▶ "
	}

	var lines []string
	if rowHeight == 1 {
		lines = []string{rowLine(marker+ch.Name+"  "+ch.Group, width)}
	} else {
		lines = []string{
			rowLine(marker+ch.Name, width),
			rowLine("  "+ch.Group, width),
		}
	}

	for len(lines) < rowHeight {
		lines = append(lines, strings.Repeat(" ", width))
	}

	selected := index == m.cursor
	active := m.state.isActive(ch)

	for i, line := range lines {
		switch {
		case selected:
			lines[i] = cursorStyle.Render(line)
		case active && i == 0:
			lines[i] = playingStyle.Render(line)
		case i > 0:
			lines[i] = channelGroupStyle.Render(line)
		}
	}

	return lines
}

// rowLine truncates s to width cells and pads it so highlights span the row
func rowLine(s string, width int) string {
	s = ansi.Truncate(s, width, ellipsis)

	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}

	return s
}
