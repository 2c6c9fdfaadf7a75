package icons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oliverlew/xdg-xmenu/xdg"
)

func TestDirRuleMatches(t *testing.T) {
	t.Parallel()

	cases := []struct {
		desc  string
		keys  map[string]string
		size  int
		scale int
		want  bool
	}{
		{"fixed exact", map[string]string{"Size": "48", "Type": "Fixed"}, 48, 1, true},
		{"fixed mismatch", map[string]string{"Size": "48", "Type": "Fixed"}, 32, 1, false},
		{"scalable in range", map[string]string{"Size": "48", "MinSize": "32", "MaxSize": "64", "Type": "Scalable"}, 40, 1, true},
		{"scalable out of range", map[string]string{"Size": "48", "MinSize": "32", "MaxSize": "64", "Type": "Scalable"}, 70, 1, false},
		{"threshold within", map[string]string{"Size": "48", "Threshold": "4", "Type": "Threshold"}, 50, 1, true},
		{"threshold outside", map[string]string{"Size": "48", "Threshold": "4", "Type": "Threshold"}, 60, 1, false},
		{"empty type acts as threshold", map[string]string{"Size": "48"}, 49, 1, true},
		{"default threshold is 2", map[string]string{"Size": "48"}, 51, 1, false},
		{"scale mismatch", map[string]string{"Size": "48", "Type": "Fixed", "Scale": "2"}, 48, 1, false},
		{"scale match", map[string]string{"Size": "24", "Type": "Fixed", "Scale": "2"}, 24, 2, true},
		{"min and max default to size", map[string]string{"Size": "48", "Type": "Scalable"}, 48, 1, true},
		{"unknown type rejects", map[string]string{"Size": "48", "Type": "Weird"}, 48, 1, false},
	}

	for _, c := range cases {
		rule := newDirRule("subdir")
		for key, value := range c.keys {
			rule.set(key, value)
		}
		assert.Equal(t, c.want, rule.matches(c.size, c.scale), c.desc)
	}
}

func TestDirRuleSizeBackfill(t *testing.T) {
	t.Parallel()

	// MinSize seen before Size must not be overwritten by the backfill.
	rule := newDirRule("s")
	rule.set("MinSize", "16")
	rule.set("Size", "48")
	assert.Equal(t, 16, rule.minSize)
	assert.Equal(t, 48, rule.maxSize)
}

func writeTheme(t *testing.T, dataDir, theme, content string) {
	t.Helper()

	dir := filepath.Join(dataDir, "icons", theme)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.theme"), []byte(content), 0o644))
}

func TestResolveDirs(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	writeTheme(t, dataDir, "Test", `
[Icon Theme]
Name=Test
Directories=48x48/apps,22x22/apps

[48x48/apps]
Size=48
Type=Fixed

[22x22/apps]
Size=22
Type=Fixed

[/absolute/extra]
Size=48
Type=Fixed
`)

	paths := &xdg.Paths{DataDirs: []string{dataDir, "/nonexistent"}}
	dirs := ResolveDirs(paths, "Test", 48, 1)

	themeDir := filepath.Join(dataDir, "icons", "Test")
	assert.Equal(t, []string{
		filepath.Join(themeDir, "48x48/apps"),
		"/absolute/extra",
		PixmapsDir,
	}, dirs)
}

func TestResolveDirsLastSectionMatches(t *testing.T) {
	t.Parallel()

	// The final section is only finalized by the parser's end-of-input
	// call; make sure it is not dropped.
	dataDir := t.TempDir()
	writeTheme(t, dataDir, "Tail", `
[48x48/apps]
Size=48
`)

	paths := &xdg.Paths{DataDirs: []string{dataDir}}
	dirs := ResolveDirs(paths, "Tail", 48, 1)
	require.Len(t, dirs, 2)
	assert.Equal(t, filepath.Join(dataDir, "icons", "Tail", "48x48/apps"), dirs[0])
	assert.Equal(t, PixmapsDir, dirs[1])
}

func TestResolveDirsNoTheme(t *testing.T) {
	t.Parallel()

	paths := &xdg.Paths{DataDirs: []string{t.TempDir()}}
	assert.Equal(t, []string{PixmapsDir}, ResolveDirs(paths, "Missing", 48, 1))
}

func TestResolveDirsMultipleDataDirs(t *testing.T) {
	t.Parallel()

	first := t.TempDir()
	second := t.TempDir()
	writeTheme(t, first, "Split", "[a]\nSize=48\n")
	writeTheme(t, second, "Split", "[b]\nSize=48\n")

	paths := &xdg.Paths{DataDirs: []string{first, second}}
	dirs := ResolveDirs(paths, "Split", 48, 1)

	assert.Equal(t, []string{
		filepath.Join(first, "icons", "Split", "a"),
		filepath.Join(second, "icons", "Split", "b"),
		PixmapsDir,
	}, dirs)
}

func TestFindIcon(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"both.svg", "both.png", "pngonly.png", "xpmonly.xpm"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644))
	}

	r := &Resolver{dirs: []string{dir}}

	// svg beats png at the same directory.
	assert.Equal(t, filepath.Join(dir, "both.svg"), r.FindIcon("both"))
	assert.Equal(t, filepath.Join(dir, "pngonly.png"), r.FindIcon("pngonly"))
	assert.Equal(t, filepath.Join(dir, "xpmonly.xpm"), r.FindIcon("xpmonly"))
}

func TestFindIconDirectoryOrderWins(t *testing.T) {
	t.Parallel()

	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(first, "app.png"), []byte("img"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(second, "app.svg"), []byte("img"), 0o644))

	// First directory wins even though the second has a better extension.
	r := &Resolver{dirs: []string{first, second}}
	assert.Equal(t, filepath.Join(first, "app.png"), r.FindIcon("app"))
}

func TestFindIconFallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fallback.png"), []byte("img"), 0o644))

	r := &Resolver{dirs: []string{dir}}
	r.fallback = r.lookup("fallback")
	require.NotEmpty(t, r.fallback)

	assert.Equal(t, r.fallback, r.FindIcon("no-such-icon"))
	assert.Equal(t, r.fallback, r.FindIcon(""))

	// Missing fallback degrades to an empty path, not an error.
	bare := &Resolver{dirs: []string{dir}}
	assert.Equal(t, "", bare.FindIcon("no-such-icon"))
}

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	configHome := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(configHome, "gtk-3.0"), 0o755))
	settings := "[Settings]\ngtk-icon-theme-name = Papirus\n"
	require.NoError(t, os.WriteFile(filepath.Join(configHome, "gtk-3.0", "settings.ini"), []byte(settings), 0o644))

	assert.Equal(t, "Papirus", DefaultTheme(&xdg.Paths{ConfigHome: configHome}))
	assert.Equal(t, FallbackTheme, DefaultTheme(&xdg.Paths{ConfigHome: t.TempDir()}))
}
