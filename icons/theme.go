package icons

import (
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oliverlew/xdg-xmenu/keyfile"
	"github.com/oliverlew/xdg-xmenu/xdg"
)

// FallbackTheme is used when no theme is requested and the gtk settings do
// not name one.
const FallbackTheme = "hicolor"

// dirRule accumulates the size-matching keys of one index.theme section
// (= one theme subdirectory) while parsing. It is reset at each section
// boundary and evaluated when the section ends.
type dirRule struct {
	subdir    string
	size      int
	minSize   int
	maxSize   int
	threshold int
	scale     int
	typ       string
}

func newDirRule(subdir string) dirRule {
	// -1 marks sizes as unset so Size can backfill Min/MaxSize.
	return dirRule{
		subdir:    subdir,
		size:      -1,
		minSize:   -1,
		maxSize:   -1,
		threshold: 2,
		scale:     1,
	}
}

func (r *dirRule) set(key, value string) {
	switch key {
	case "Size":
		r.size = atoi(value)
		if r.minSize == -1 {
			r.minSize = r.size
		}
		if r.maxSize == -1 {
			r.maxSize = r.size
		}
	case "MinSize":
		r.minSize = atoi(value)
	case "MaxSize":
		r.maxSize = atoi(value)
	case "Threshold":
		r.threshold = atoi(value)
	case "Scale":
		r.scale = atoi(value)
	case "Type":
		r.typ = value
	}
}

// matches reports whether the accumulated section accepts the requested
// icon size and scale, per the icon theme spec matching rules.
func (r *dirRule) matches(size, scale int) bool {
	if r.subdir == "" || r.scale != scale {
		return false
	}
	switch r.typ {
	case "", "Threshold":
		return abs(r.size-size) <= r.threshold
	case "Fixed":
		return r.size == size
	case "Scalable":
		return r.minSize <= size && size <= r.maxSize
	}
	return false
}

// ResolveDirs builds the ordered list of directories to search for icons of
// the given theme, size and scale. Every data directory is checked for
// icons/<theme>/index.theme, so a theme spread over multiple data dirs is
// picked up without following Inherits= declarations. The fixed pixmaps
// directory is always appended last.
func ResolveDirs(paths *xdg.Paths, theme string, size, scale int) []string {
	var dirs []string

	for _, dataDir := range paths.DataDirs {
		themeDir := filepath.Join(dataDir, "icons", theme)
		index := filepath.Join(themeDir, "index.theme")
		if !fileExists(index) {
			continue
		}

		accepted, err := scanThemeIndex(index, size, scale)
		if err != nil {
			slog.Warn("icon theme index unreadable", "path", index, "err", err)
			continue
		}
		for _, subdir := range accepted {
			if !strings.HasPrefix(subdir, "/") {
				subdir = filepath.Join(themeDir, subdir)
			}
			dirs = append(dirs, subdir)
		}
	}

	return append(dirs, PixmapsDir)
}

// scanThemeIndex parses one index.theme file and returns the subdirectory
// names whose declared sizes accept the request. The accumulator is
// finalized both on section boundaries and on the parser's end-of-input
// call.
func scanThemeIndex(path string, size, scale int) ([]string, error) {
	var accepted []string

	rule := newDirRule("")
	err := keyfile.ParseFile(path, func(section, key, value string) error {
		if section != rule.subdir || key == "" {
			if rule.matches(size, scale) {
				accepted = append(accepted, rule.subdir)
			}
			rule = newDirRule(section)
		}
		if key != "" {
			rule.set(key, value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// DefaultTheme returns the icon theme named in the user's gtk-3.0 settings
// file, or the hicolor fallback when the file or the key is missing.
func DefaultTheme(paths *xdg.Paths) string {
	theme := FallbackTheme

	settings := filepath.Join(paths.ConfigHome, "gtk-3.0", "settings.ini")
	if !fileExists(settings) {
		return theme
	}
	err := keyfile.ParseFile(settings, func(section, key, value string) error {
		if section == "Settings" && key == "gtk-icon-theme-name" && value != "" {
			theme = value
		}
		return nil
	})
	if err != nil {
		slog.Warn("failed to parse gtk settings", "path", settings, "err", err)
	}
	return theme
}

// atoi is the lenient conversion used for index.theme values: anything
// unparsable counts as 0.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
