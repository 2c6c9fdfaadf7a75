// Package xdg resolves the environment-derived search paths used for
// application and icon discovery: the executable path list, the XDG base
// directories and the enabled desktop environments.
package xdg

import (
	"os"
	"path/filepath"
	"strings"
)

// Defaults applied when the corresponding environment variable is unset.
// Relative fallbacks are resolved against the home directory.
const (
	fallbackDataHome   = ".local/share"
	fallbackDataDirs   = "/usr/share:/usr/local/share"
	fallbackConfigHome = ".config"
)

// Paths holds the resolved search lists. It is built once at startup and
// read-only afterwards.
type Paths struct {
	Home       string
	DataHome   string
	ConfigHome string

	// ExecDirs are the PATH entries, in declaration order.
	ExecDirs []string

	// DataDirs is the combined data directory list: the XDG_DATA_DIRS
	// entries in declaration order, with the data home appended last.
	// Consumers do first-match-wins lookups over this order.
	DataDirs []string

	// DesktopIDs are the XDG_CURRENT_DESKTOP entries.
	DesktopIDs []string
}

// Resolve reads the environment and builds the search lists. Missing
// variables are not an error, they fall back to the documented defaults.
func Resolve() *Paths {
	home := os.Getenv("HOME")

	p := &Paths{
		Home:       home,
		DataHome:   envOrDefault("XDG_DATA_HOME", fallbackDataHome, home),
		ConfigHome: envOrDefault("XDG_CONFIG_HOME", fallbackConfigHome, home),
	}
	p.ExecDirs = SplitList(os.Getenv("PATH"))
	p.DataDirs = append(
		SplitList(envOrDefault("XDG_DATA_DIRS", fallbackDataDirs, home)),
		p.DataHome,
	)
	p.DesktopIDs = SplitList(os.Getenv("XDG_CURRENT_DESKTOP"))

	return p
}

func envOrDefault(name, fallback, home string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	if !filepath.IsAbs(fallback) {
		return filepath.Join(home, fallback)
	}
	return fallback
}

// SplitList splits a colon-delimited environment value into its entries,
// dropping empty ones. Duplicates are kept.
func SplitList(value string) []string {
	var list []string
	for _, entry := range strings.Split(value, ":") {
		if entry != "" {
			list = append(list, entry)
		}
	}
	return list
}

// HasExecutable reports whether cmd names an executable regular file, either
// directly as an absolute path or inside one of the PATH directories. Only
// the owner-executable bit is checked.
func (p *Paths) HasExecutable(cmd string) bool {
	if strings.HasPrefix(cmd, "/") {
		return isExecutable(cmd)
	}
	for _, dir := range p.ExecDirs {
		if isExecutable(filepath.Join(dir, cmd)) {
			return true
		}
	}
	return false
}

func isExecutable(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular() && fi.Mode()&0o100 != 0
}

// MatchesDesktop reports whether any enabled desktop ID occurs within the
// given ;-delimited desktop list. This is a substring match, not an exact
// token match, mirroring how OnlyShowIn/NotShowIn values are checked.
func (p *Paths) MatchesDesktop(desktopList string) bool {
	for _, id := range p.DesktopIDs {
		if strings.Contains(desktopList, id) {
			return true
		}
	}
	return false
}
