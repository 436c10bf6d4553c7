package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/git"
	"github.com/aretw0/shelf/pkg/organize"
)

func writeConfig(t *testing.T, root, content string) string {
	t.Helper()
	p := filepath.Join(root, DefaultSystemDir, ConfigFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestResolve_Defaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Resolve(root)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, DefaultSystemDir, cfg.SystemDir)
	assert.Equal(t, DefaultSetupDirs, cfg.SetupDirs)
	assert.Equal(t, organize.DefaultTable(), cfg.Categories)
	assert.True(t, cfg.Versioning)
	assert.False(t, cfg.Push)
	assert.Equal(t, git.DefaultTimeout, cfg.CommitTimeout)
	assert.NotNil(t, cfg.Logger)
}

func TestResolve_ConfigFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
categories:
  books: [.pdf, .epub]
  comics: [.cbz]
setup_dirs: [Inbox]
push: true
commit_timeout: 5s
`)

	cfg, err := Resolve(root)
	require.NoError(t, err)

	assert.Equal(t, organize.Table{
		"Books":  {".pdf", ".epub"},
		"Comics": {".cbz"},
	}, cfg.Categories)
	assert.Equal(t, []string{"Inbox"}, cfg.SetupDirs)
	assert.True(t, cfg.Push)
	assert.Equal(t, 5*time.Second, cfg.CommitTimeout)
}

func TestResolve_OptionsWinOverFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "push: true\ncommit_timeout: 5s\nversioning: true\n")

	cfg, err := Resolve(root,
		WithPush(false),
		WithCommitTimeout(time.Minute),
		WithVersioning(false),
		WithSetupDirs("Papers"),
	)
	require.NoError(t, err)

	assert.False(t, cfg.Push)
	assert.False(t, cfg.Versioning)
	assert.Equal(t, time.Minute, cfg.CommitTimeout)
	assert.Equal(t, []string{"Papers"}, cfg.SetupDirs)
}

func TestResolve_ExplicitConfigFile(t *testing.T) {
	root := t.TempDir()
	other := filepath.Join(t.TempDir(), "shelf.yaml")
	require.NoError(t, os.WriteFile(other, []byte("setup_dirs: [Elsewhere]\n"), 0644))

	cfg, err := Resolve(root, WithConfigFile(other))
	require.NoError(t, err)
	assert.Equal(t, []string{"Elsewhere"}, cfg.SetupDirs)
}

func TestResolve_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Malformed YAML", "categories: [unclosed"},
		{"Bad Timeout", "commit_timeout: soon"},
		{"Negative Timeout", "commit_timeout: -1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeConfig(t, root, tt.content)

			_, err := Resolve(root)
			assert.ErrorIs(t, err, core.ErrSetup)
		})
	}
}

func TestFileConfig_TableTitleCases(t *testing.T) {
	fc := &FileConfig{Categories: map[string][]string{
		"books":     {".pdf"},
		" BOOKS ":   {".epub"},
		"documents": {".txt"},
	}}

	table := fc.Table()
	assert.ElementsMatch(t, []string{".pdf", ".epub"}, table["Books"])
	assert.Equal(t, []string{".txt"}, table["Documents"])
	assert.Len(t, table, 2)

	assert.Nil(t, (&FileConfig{}).Table())
}
