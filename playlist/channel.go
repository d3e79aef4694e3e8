// ABOUTME: Defines the Channel record produced by the playlist parser
// ABOUTME: Provides attribute extraction helpers for #EXTINF metadata lines

package playlist

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultGroup is assigned to channels whose metadata has no group-title
const DefaultGroup = "Uncategorized"

// metadataPrefix opens a metadata record
const metadataPrefix = "#EXTINF:"

// Channel is one playable entry from a playlist
type Channel struct {
	Name  string // Display name (last comma-delimited segment of the metadata line)
	URL   string // Playback locator, opaque to this package
	Logo  string // Icon locator, empty when absent
	Group string // Category label, DefaultGroup when absent
}

// HasLogo reports whether the channel carries an icon locator
func (c Channel) HasLogo() bool {
	return c.Logo != ""
}

// String returns a formatted string representation of the channel
func (c Channel) String() string {
	return fmt.Sprintf("%-40s [%s] %s", c.Name, c.Group, c.URL)
}

// Compile regexes once at package initialization.
// FindStringSubmatch returns the leftmost match, so the first occurrence of a
// duplicated attribute wins.
var (
	logoRegex     = regexp.MustCompile(`tvg-logo="([^"]*)"`)
	bareLogoRegex = regexp.MustCompile(`(?:^|[\s:,])logo="([^"]*)"`)
	groupRegex    = regexp.MustCompile(`group-title="([^"]*)"`)
)

// parseMetadata builds a pending channel from an #EXTINF line.
// Returns false when the line has no usable display name.
func parseMetadata(line string) (Channel, bool) {
	info := strings.TrimPrefix(line, metadataPrefix)

	// Name is the last comma-delimited segment
	name := info
	if idx := strings.LastIndex(info, ","); idx != -1 {
		name = info[idx+1:]
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Channel{}, false
	}

	group := extractAttribute(groupRegex, line)
	if group == "" {
		group = DefaultGroup
	}

	logo := extractAttribute(logoRegex, line)
	if logo == "" {
		logo = extractAttribute(bareLogoRegex, line)
	}

	return Channel{
		Name:  name,
		Logo:  logo,
		Group: group,
	}, true
}

// extractAttribute returns the first captured value of re in line, or ""
func extractAttribute(re *regexp.Regexp, line string) string {
	matches := re.FindStringSubmatch(line)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}
