package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher(t *testing.T) {
	m := NewMatcher(DefaultIgnorePatterns)

	cases := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{".DS_Store", false, true},
		{"Books/2023/.DS_Store", false, true},
		{"Thumbs.db", false, true},
		{"draft.tmp", false, true},
		{"a/b/c.bak", false, true},
		{"notes.txt~", false, true},
		{"~$report.docx", false, true},
		{"__pycache__", true, true},
		{"src/__pycache__/x.pyc", false, true},
		{".cache", true, true},
		{"report.pdf", false, false},
		{"Books/2023/report.pdf", false, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, m.Match(tc.path, tc.isDir), tc.path)
	}
}

func TestMatcher_Anchored(t *testing.T) {
	m := NewMatcher([]string{"# comment", "", "!keep.pdf", "/private/", "exports/*.csv"})
	assert.Equal(t, 2, m.Len())

	assert.True(t, m.Match("private", true))
	assert.True(t, m.Match("private/a.pdf", false))
	assert.False(t, m.Match("Books/private/a.pdf", false))
	assert.True(t, m.Match("exports/a.csv", false))
	assert.False(t, m.Match("Books/exports/a.csv", false))
}

func TestLoadMatcher(t *testing.T) {
	dir := t.TempDir()

	m, err := LoadMatcher(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.True(t, m.Match(".DS_Store", false), "missing file falls back to defaults")

	p := filepath.Join(dir, ".gitignore")
	require.NoError(t, os.WriteFile(p, []byte("*.log\n"), 0644))
	m, err = LoadMatcher(p)
	require.NoError(t, err)
	assert.True(t, m.Match("x/y.log", false))
	assert.False(t, m.Match(".DS_Store", false))
}
