// Package menu renders discovered applications into the tab-separated line
// format consumed by xmenu and drives the external chooser process.
package menu

import (
	"fmt"

	"github.com/oliverlew/xdg-xmenu/desktop"
	"github.com/oliverlew/xdg-xmenu/icons"
)

// Options configures menu rendering.
type Options struct {
	// Terminal is the emulator used to wrap Terminal=true entries.
	Terminal string
	// NoIcon disables the IMG: field on every line.
	NoIcon bool
	// NoGenericName hides the "(GenericName)" suffix.
	NoGenericName bool
	// Categories groups entries into per-category submenus.
	Categories bool
}

// categoryOrder fixes the submenu order when grouping is enabled.
var categoryOrder = []string{
	"Accessories",
	"Development",
	"Education",
	"Games",
	"Graphics",
	"Internet",
	"Multimedia",
	"Office",
	"Science",
	"Settings",
	"System",
	"Others",
}

// categoryIcons names the icon shown next to each category submenu.
var categoryIcons = map[string]string{
	"Accessories": "applications-accessories",
	"Development": "applications-development",
	"Education":   "applications-education",
	"Games":       "applications-games",
	"Graphics":    "applications-graphics",
	"Internet":    "applications-internet",
	"Multimedia":  "applications-multimedia",
	"Office":      "applications-office",
	"Others":      "applications-other",
	"Science":     "applications-science",
	"Settings":    "preferences-desktop",
	"System":      "applications-system",
}

// Formatter renders menu lines for applications.
type Formatter struct {
	opts  Options
	icons *icons.Resolver // nil when icons are disabled
}

// NewFormatter returns a Formatter. The resolver may be nil if and only if
// icons are disabled.
func NewFormatter(opts Options, resolver *icons.Resolver) *Formatter {
	return &Formatter{opts: opts, icons: resolver}
}

// Render produces the full menu, one line per application. With category
// grouping enabled, each category present becomes a top-level submenu line
// followed by its entries; entries without a mapped category fall under
// Others.
func (f *Formatter) Render(apps []*desktop.App) []string {
	if !f.opts.Categories {
		lines := make([]string, 0, len(apps))
		for _, app := range apps {
			lines = append(lines, f.Line(app))
		}
		return lines
	}

	byCategory := make(map[string][]*desktop.App)
	for _, app := range apps {
		category := app.Category
		if category == "" {
			category = "Others"
		}
		byCategory[category] = append(byCategory[category], app)
	}

	var lines []string
	for _, category := range categoryOrder {
		group := byCategory[category]
		if len(group) == 0 {
			continue
		}
		if f.opts.NoIcon {
			lines = append(lines, category)
		} else {
			iconPath := f.icons.FindIcon(categoryIcons[category])
			lines = append(lines, "IMG:"+iconPath+"\t"+category)
		}
		for _, app := range group {
			lines = append(lines, f.Line(app))
		}
	}
	return lines
}

// Line renders the single menu line for one application: the launch command
// with field codes expanded, the display name, and the resolved icon path
// unless icons are disabled. The leading tab indents the entry one submenu
// level.
func (f *Formatter) Line(app *desktop.App) string {
	command := app.Exec
	if app.Terminal {
		command = f.opts.Terminal + " -e " + command
	}
	command = ExpandFieldCodes(command, app)

	name := app.Name
	if !f.opts.NoGenericName && app.GenericName != "" {
		name = fmt.Sprintf("%s (%s)", app.Name, app.GenericName)
	}

	if f.opts.NoIcon {
		return "\t" + name + "\t" + command
	}
	return "\tIMG:" + f.icons.FindIcon(app.Icon) + "\t" + name + "\t" + command
}

// ExpandFieldCodes substitutes the %-codes of a desktop entry Exec value:
// %c and %k become the entry's source path, %i becomes "--icon <name>" when
// the entry declares an icon, and every other %<letter> code is dropped.
// Codes are processed right to left, so a literal '%' introduced by a
// substitution is never re-read as a field code.
func ExpandFieldCodes(command string, app *desktop.App) string {
	var done string // fully processed suffix

	rest := command
	for {
		i := lastFieldCode(rest)
		if i < 0 {
			break
		}
		var repl string
		switch rest[i+1] {
		case 'c', 'k':
			repl = app.SourcePath
		case 'i':
			if app.Icon != "" {
				repl = "--icon " + app.Icon
			}
		}
		done = repl + rest[i+2:] + done
		rest = rest[:i]
	}
	return rest + done
}

// lastFieldCode returns the index of the rightmost '%' that is followed by
// a letter, or -1.
func lastFieldCode(s string) int {
	for i := len(s) - 2; i >= 0; i-- {
		if s[i] == '%' && isLetter(s[i+1]) {
			return i
		}
	}
	return -1
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
