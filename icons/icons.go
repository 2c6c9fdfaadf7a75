// Package icons resolves icon names to image files following the size and
// scale matching rules of the freedesktop icon theme specification.
package icons

import (
	"errors"
	"io/fs"
	"os"

	"github.com/oliverlew/xdg-xmenu/xdg"
)

// PixmapsDir is the system-wide flat icon directory searched after all
// theme directories.
const PixmapsDir = "/usr/share/pixmaps"

// Extension priority when probing for an icon file.
var extensions = []string{"svg", "png", "xpm"}

// Resolver locates icon files for one theme at a fixed requested size and
// scale. The directory list is built once; lookups are plain file probes.
type Resolver struct {
	dirs     []string
	fallback string
}

// New builds a Resolver for the theme and resolves the fallback icon right
// away, so a missing icon never needs more than one extra lookup.
func New(paths *xdg.Paths, theme, fallbackIcon string, size, scale int) *Resolver {
	r := &Resolver{dirs: ResolveDirs(paths, theme, size, scale)}
	r.fallback = r.lookup(fallbackIcon)
	return r
}

// Dirs returns the resolved search directories, first-match-wins order.
func (r *Resolver) Dirs() []string {
	return r.dirs
}

// FindIcon returns the path of the first matching icon file for name, or
// the pre-resolved fallback icon path when name cannot be found. An empty
// result means not even the fallback exists; that is not an error, the
// image reference will simply fail to render downstream.
func (r *Resolver) FindIcon(name string) string {
	if path := r.lookup(name); path != "" {
		return path
	}
	return r.fallback
}

func (r *Resolver) lookup(name string) string {
	if name == "" {
		return ""
	}
	for _, dir := range r.dirs {
		for _, ext := range extensions {
			path := dir + "/" + name + "." + ext
			if fileExists(path) {
				return path
			}
		}
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || errors.Is(err, fs.ErrExist)
}
