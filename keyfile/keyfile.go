// Package keyfile implements a minimal line-oriented parser for the
// INI-style key file format shared by desktop entries, icon theme indexes
// and gtk settings files.
package keyfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// HandlerFunc receives one (section, key, value) triple per recognized line,
// in file order. After the last line the handler is invoked exactly once
// more with an empty key and value, so callers aggregating per-section state
// get a chance to finalize the last section. A recognized key is never
// empty, which makes the terminal call unambiguous.
//
// Returning an error aborts the parse; the error is passed through to the
// caller of Parse.
type HandlerFunc func(section, key, value string) error

// Parse reads key file content from r and feeds every recognized triple to
// fn. Blank lines, comment lines (# or ;) and malformed lines (no '=', or
// key-value pairs before any section header) are skipped, not errors.
func Parse(r io.Reader, fn HandlerFunc) error {
	var section string
	inSection := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";"):
			// skip
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			section = strings.TrimSpace(line[1 : len(line)-1])
			inSection = true
		default:
			if !inSection {
				continue
			}
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			if key == "" {
				continue
			}
			if err := fn(section, key, value); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read key file: %w", err)
	}

	// End of input: one terminal call with the then-current section.
	return fn(section, "", "")
}

// ParseFile opens path and parses it with fn.
func ParseFile(path string, fn HandlerFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open key file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f, fn)
}
