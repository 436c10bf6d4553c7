package fs

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultIgnorePatterns is the ignore list written at setup:
// OS metadata, temp files, backups and cache directories.
var DefaultIgnorePatterns = []string{
	"# OS metadata",
	".DS_Store",
	"._*",
	"Thumbs.db",
	"desktop.ini",
	"# Temporary files",
	"*.tmp",
	"*.temp",
	"~$*",
	"*.swp",
	"*.part",
	TempFilePrefix + "*",
	"# Backups",
	"*.bak",
	"*~",
	"# Caches",
	"__pycache__/",
	".cache/",
}

// Matcher reports whether a library path is ignored.
// It understands the subset of gitignore syntax the library writes:
// plain globs match at any depth, a trailing "/" restricts to directories and
// a leading or inner "/" anchors the pattern to the root. Negations are skipped.
type Matcher struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	glob    string
	dirOnly bool
}

// NewMatcher parses gitignore-style lines.
func NewMatcher(lines []string) *Matcher {
	m := &Matcher{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		p := ignorePattern{}
		if strings.HasSuffix(line, "/") {
			p.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		if strings.Contains(line, "/") {
			p.glob = strings.TrimPrefix(line, "/")
		} else {
			p.glob = "**/" + line
		}
		if !doublestar.ValidatePattern(p.glob) {
			continue
		}
		m.patterns = append(m.patterns, p)
	}
	return m
}

// LoadMatcher reads the ignore file at path. A missing file yields the defaults.
func LoadMatcher(path string) (*Matcher, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewMatcher(DefaultIgnorePatterns), nil
	}
	if err != nil {
		return nil, err
	}

	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return NewMatcher(lines), sc.Err()
}

// Match reports whether rel (slash separated, relative to the root) is ignored.
func (m *Matcher) Match(rel string, isDir bool) bool {
	for _, p := range m.patterns {
		if p.dirOnly {
			if isDir && matchGlob(p.glob, rel) {
				return true
			}
			// files below an ignored directory
			if matchGlob(p.glob+"/**", rel) {
				return true
			}
			continue
		}
		if matchGlob(p.glob, rel) {
			return true
		}
	}
	return false
}

// Len returns the number of active patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

func matchGlob(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
