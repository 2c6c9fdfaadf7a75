// xdg-xmenu generates an application menu from installed desktop entries,
// hands it to xmenu and launches the selected entry.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/oliverlew/xdg-xmenu/desktop"
	"github.com/oliverlew/xdg-xmenu/icons"
	"github.com/oliverlew/xdg-xmenu/menu"
	"github.com/oliverlew/xdg-xmenu/xdg"
)

// options is built once from the command line and passed explicitly to
// every component that needs it.
type options struct {
	fallbackIcon string
	categories   bool
	dump         bool
	noGenname    bool
	iconTheme    string
	noIcon       bool
	dryRun       bool
	iconSize     int
	scale        int
	terminal     string
	xmenuCmd     string
	verbose      bool
}

var (
	opts options

	rootCmd = &cobra.Command{
		Use:   "xdg-xmenu [flags] [-- xmenu args...]",
		Short: "Generate an XDG application menu for xmenu",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLog(opts.verbose)
			return run(&opts, args)
		},
		SilenceUsage: true,
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.fallbackIcon, "fallback-icon", "b", "application-x-executable", "Fallback icon name for entries without a resolvable icon")
	flags.BoolVarP(&opts.categories, "categories", "c", false, "Group the menu into category submenus")
	flags.BoolVarP(&opts.dump, "dump", "d", false, "Print the generated menu to stdout instead of running xmenu")
	flags.BoolVarP(&opts.noGenname, "no-genname", "G", false, "Do not show the generic name of applications")
	flags.StringVarP(&opts.iconTheme, "icon-theme", "i", "", "Icon theme for app icons. Defaults to the gtk3 settings")
	flags.BoolVarP(&opts.noIcon, "no-icon", "I", false, "Disable icons in the menu")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Print the selected command instead of launching it")
	flags.IntVarP(&opts.iconSize, "icon-size", "s", 24, "Icon size in pixels")
	flags.IntVarP(&opts.scale, "scale", "S", 1, "Icon scale factor for HiDPI screens")
	flags.StringVarP(&opts.terminal, "terminal", "t", "xterm", "Terminal emulator for Terminal=true entries")
	flags.StringVarP(&opts.xmenuCmd, "xmenu", "x", "xmenu", "Chooser command to run")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLog(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})))
}

func run(o *options, xmenuArgs []string) error {
	paths := xdg.Resolve()

	var resolver *icons.Resolver
	if !o.noIcon {
		theme := o.iconTheme
		if theme == "" {
			theme = icons.DefaultTheme(paths)
		}
		resolver = icons.New(paths, theme, o.fallbackIcon, o.iconSize, o.scale)
	}

	apps, err := desktop.Discover(paths)
	if err != nil {
		// Unparsable entries degrade to a smaller menu, never a failed run.
		slog.Warn("some desktop entries were skipped", "err", err)
	}

	formatter := menu.NewFormatter(menu.Options{
		Terminal:      o.terminal,
		NoIcon:        o.noIcon,
		NoGenericName: o.noGenname,
		Categories:    o.categories,
	}, resolver)
	lines := formatter.Render(apps)

	if o.dump {
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	}

	chooser := &menu.Chooser{
		Command: o.xmenuCmd,
		Args:    xmenuArgs,
		NoIcon:  o.noIcon,
		DryRun:  o.dryRun,
	}
	return chooser.Run(lines)
}
