// Package desktop discovers launchable applications from freedesktop
// desktop entry files found in the data directories.
package desktop

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/oliverlew/xdg-xmenu/keyfile"
	"github.com/oliverlew/xdg-xmenu/xdg"
)

// App is one launchable application assembled from a desktop entry file.
type App struct {
	Name        string
	GenericName string
	Category    string
	Icon        string
	Exec        string
	Terminal    bool
	WorkingDir  string
	SourcePath  string

	// NotShown latches to true when any visibility rule excludes the
	// entry. It is never reset by a later key in the same file.
	NotShown bool
}

// categoryNames maps the registered freedesktop main categories to the menu
// category shown to the user. The first Categories token with a mapping
// wins.
var categoryNames = map[string]string{
	"Audio":       "Multimedia",
	"AudioVideo":  "Multimedia",
	"Development": "Development",
	"Education":   "Education",
	"Game":        "Games",
	"Graphics":    "Graphics",
	"Network":     "Internet",
	"Office":      "Office",
	"Others":      "Others",
	"Science":     "Science",
	"Settings":    "Settings",
	"System":      "System",
	"Utility":     "Accessories",
	"Video":       "Multimedia",
}

// Discover scans the applications folder of every data directory and
// returns the visible applications, in directory order and per-directory
// file name order. Entries with the same base name in multiple data
// directories are all kept; no shadowing is applied.
//
// Unreadable files are skipped; their errors are aggregated in the returned
// error while the application list stays usable.
func Discover(paths *xdg.Paths) ([]*App, error) {
	var apps []*App
	var merr *multierror.Error

	for _, dataDir := range paths.DataDirs {
		dir := filepath.Join(dataDir, "applications")
		entries, err := os.ReadDir(dir)
		if err != nil {
			// A data dir without an applications folder is normal.
			slog.Debug("skipping applications dir", "dir", dir, "err", err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".desktop") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			app, err := LoadEntry(paths, path)
			if err != nil {
				merr = multierror.Append(merr, fmt.Errorf("%s: %w", path, err))
				continue
			}
			if app.NotShown {
				continue
			}
			apps = append(apps, app)
		}
	}

	return apps, merr.ErrorOrNil()
}

// LoadEntry parses a single desktop entry file into an App. Only the
// [Desktop Entry] section is read; other sections are ignored.
func LoadEntry(paths *xdg.Paths, path string) (*App, error) {
	app := &App{SourcePath: path}

	err := keyfile.ParseFile(path, func(section, key, value string) error {
		if section != "Desktop Entry" || key == "" {
			return nil
		}
		app.applyKey(paths, key, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) applyKey(paths *xdg.Paths, key, value string) {
	switch key {
	case "Name":
		a.Name = value
	case "GenericName":
		a.GenericName = value
	case "Icon":
		a.Icon = value
	case "Exec":
		a.Exec = value
	case "Terminal":
		a.Terminal = value == "true"
	case "Categories":
		a.Category = mainCategory(value)
	case "Path":
		a.WorkingDir = value
	}

	switch {
	case key == "NoDisplay" && value == "true",
		key == "Hidden" && value == "true",
		key == "Type" && value != "Application",
		key == "TryExec" && !paths.HasExecutable(value),
		key == "NotShowIn" && paths.MatchesDesktop(value),
		key == "OnlyShowIn" && !paths.MatchesDesktop(value):
		a.NotShown = true
	}
}

// mainCategory returns the menu category for the first recognized token of
// a ;-delimited Categories value, or "" when none matches.
func mainCategory(categories string) string {
	for _, c := range strings.Split(categories, ";") {
		if name, ok := categoryNames[c]; ok {
			return name
		}
	}
	return ""
}
