// ABOUTME: Built-in playlist sources and user-imported playlist locations
// ABOUTME: A source is a named location: http(s) URL, file:// URL or local path

// Package source resolves and fetches playlist text.
package source

import (
	"net/url"
	"strings"
)

// Names of the built-in sources
const (
	Global   = "global"
	Country  = "country"
	Category = "category"

	// Custom names a user-imported location
	Custom = "custom"
)

// Source is a named playlist location
type Source struct {
	Name     string
	Label    string
	Location string
}

var builtins = []Source{
	{Name: Global, Label: "Global", Location: "https://iptv-org.github.io/iptv/index.m3u"},
	{Name: Country, Label: "By Country", Location: "https://iptv-org.github.io/iptv/index.country.m3u"},
	{Name: Category, Label: "By Category", Location: "https://iptv-org.github.io/iptv/index.category.m3u"},
}

// Builtins returns the built-in sources in display order
func Builtins() []Source {
	out := make([]Source, len(builtins))
	copy(out, builtins)

	return out
}

// Builtin looks up a built-in source by name
func Builtin(name string) (Source, bool) {
	for _, s := range builtins {
		if s.Name == name {
			return s, true
		}
	}

	return Source{}, false
}

// Imported wraps a user-supplied location as a custom source
func Imported(location string) Source {
	location = strings.TrimSpace(location)

	return Source{Name: Custom, Label: "Imported", Location: location}
}

// IsRemote reports whether the source is fetched over HTTP
func (s Source) IsRemote() bool {
	return isHTTP(s.Location)
}

// LocalPath returns the filesystem path of a local source, or "" for remote ones
func (s Source) LocalPath() string {
	return localPath(s.Location)
}

func isHTTP(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}

	return u.Scheme == "http" || u.Scheme == "https"
}

func localPath(location string) string {
	if location == "" || isHTTP(location) {
		return ""
	}

	if strings.HasPrefix(location, "file://") {
		u, err := url.Parse(location)
		if err != nil {
			return ""
		}

		return u.Path
	}

	return location
}
