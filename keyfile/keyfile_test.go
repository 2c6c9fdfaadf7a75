package keyfile

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type triple struct {
	Section, Key, Value string
}

func collect(t *testing.T, content string) []triple {
	t.Helper()

	var got []triple
	err := Parse(strings.NewReader(content), func(section, key, value string) error {
		got = append(got, triple{section, key, value})
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestParse(t *testing.T) {
	t.Parallel()

	got := collect(t, `
# a comment
; another comment
[Desktop Entry]
Name=Editor
Exec = editor %f

[Other Section]
Key=Value=With=Equals
`)

	assert.Equal(t, []triple{
		{"Desktop Entry", "Name", "Editor"},
		{"Desktop Entry", "Exec", "editor %f"},
		{"Other Section", "Key", "Value=With=Equals"},
		{"Other Section", "", ""}, // terminal call
	}, got)
}

func TestParseSkipsMalformedLines(t *testing.T) {
	t.Parallel()

	got := collect(t, `
orphan=before any section
not a key value line
[Section]
no equals sign here
=empty key
Good=yes
`)

	assert.Equal(t, []triple{
		{"Section", "Good", "yes"},
		{"Section", "", ""},
	}, got)
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	got := collect(t, "")
	// Only the terminal call, with no section seen.
	assert.Equal(t, []triple{{"", "", ""}}, got)
}

func TestParseHandlerError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("stop")
	calls := 0
	err := Parse(strings.NewReader("[S]\nA=1\nB=2\n"), func(section, key, value string) error {
		calls++
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestParseFileMissing(t *testing.T) {
	t.Parallel()

	err := ParseFile("/does/not/exist.ini", func(section, key, value string) error {
		t.Fatal("handler must not be called")
		return nil
	})
	require.Error(t, err)
}
