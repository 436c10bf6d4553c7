package platform

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/shelf/pkg/adapters/vcs"
	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/git"
	"github.com/aretw0/shelf/pkg/organize"
)

// isolateGit keeps the user's git configuration out of the test.
func isolateGit(t *testing.T) {
	t.Helper()
	if !git.IsInstalled() {
		t.Skip("git not installed")
	}
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Shelf Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@shelf.dev")
	t.Setenv("GIT_COMMITTER_NAME", "Shelf Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@shelf.dev")
}

func TestNew_Gitless(t *testing.T) {
	root := filepath.Join(t.TempDir(), "library")

	lib, err := New(context.Background(), root, WithVersioning(false))
	require.NoError(t, err)

	for _, d := range []string{"Documentation", "Books", ".shelf"} {
		assert.DirExists(t, filepath.Join(root, d))
	}
	assert.FileExists(t, filepath.Join(root, ".gitignore"))
	assert.NoDirExists(t, filepath.Join(root, ".git"))
	assert.IsType(t, vcs.NopRecorder{}, lib.Recorder)

	found, err := FindRoot(filepath.Join(root, "Books"), "")
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestNew_DuplicateExtensionIsSetupError(t *testing.T) {
	_, err := New(context.Background(), t.TempDir(),
		WithVersioning(false),
		WithCategories(organize.Table{"Books": {".pdf"}, "Papers": {".PDF"}}),
	)
	assert.ErrorIs(t, err, core.ErrSetup)
}

func TestNew_SetupFailure(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := New(context.Background(), filepath.Join(blocker, "library"), WithVersioning(false))
	assert.ErrorIs(t, err, core.ErrSetup)
}

func TestNew_VersionedEndToEnd(t *testing.T) {
	isolateGit(t)
	ctx := context.Background()
	root := t.TempDir()

	lib, err := New(ctx, root, WithCommitTimeout(10*time.Second))
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(root, ".git"))

	client := git.NewClient(root, ".shelf/shelf.lock", nil)
	log, err := client.Run(ctx, "log", "--format=%s")
	require.NoError(t, err)
	assert.Equal(t, "chore(library): initialize library", strings.TrimSpace(log))

	src := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(src, []byte("pdf"), 0644))
	stamp := time.Date(2023, 5, 1, 12, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(src, stamp, stamp))

	_, res, err := lib.Service.Add(ctx, src, core.ConflictReject)
	require.NoError(t, err)
	require.NoError(t, res.Warning)
	assert.NotEmpty(t, res.Commit)

	report, res, err := lib.Service.Organize(ctx)
	require.NoError(t, err)
	require.NoError(t, res.Warning)
	assert.Empty(t, report.Failed)
	assert.FileExists(t, filepath.Join(root, "Books", "2023", "report.pdf"))

	files, err := client.Run(ctx, "ls-files")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{".gitignore", "Books/2023/report.pdf"}, strings.Fields(files))

	// Reopening an existing library does not add another setup commit.
	_, err = New(ctx, root)
	require.NoError(t, err)
	count, err := client.Run(ctx, "rev-list", "--count", "HEAD")
	require.NoError(t, err)
	assert.Equal(t, "3", strings.TrimSpace(count))
}

func TestNew_NestedInAnotherRepository(t *testing.T) {
	isolateGit(t)
	ctx := context.Background()
	parent := t.TempDir()
	outer := git.NewClient(parent, ".shelf/shelf.lock", nil)
	require.NoError(t, outer.Init(ctx))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("s"), 0644))
	require.NoError(t, outer.Add(ctx, "secret.txt"))

	root := filepath.Join(parent, "library")
	lib, err := New(ctx, root)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(root, ".git"), "the library gets its own repository")

	src := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(src, []byte("pdf"), 0644))
	_, res, err := lib.Service.Add(ctx, src, core.ConflictReject)
	require.NoError(t, err)
	require.NoError(t, res.Warning)

	inner := git.NewClient(root, ".shelf/shelf.lock", nil)
	files, err := inner.Run(ctx, "ls-files")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{".gitignore", "report.pdf"}, strings.Fields(files))

	_, err = outer.Head(ctx)
	assert.Error(t, err, "the enclosing repository has no commits")
	staged, err := outer.Staged(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"secret.txt"}, staged)
}
