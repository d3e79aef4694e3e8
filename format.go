// ABOUTME: Text formatting helpers for dump output
// ABOUTME: Width-aware truncation and channel count labels

package main

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
)

// truncate shortens s to maxWidth terminal cells, adding "..." if truncated
func truncate(s string, maxWidth int) string {
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}

	if maxWidth <= 3 {
		return ansi.Truncate(s, maxWidth, "")
	}

	return ansi.Truncate(s, maxWidth, "...")
}

// formatChannelCount returns "1 Channel" or "<n> Channels"
func formatChannelCount(n int) string {
	if n == 1 {
		return "1 Channel"
	}

	return fmt.Sprintf("%d Channels", n)
}
