// Package vcs records library change sets as git commits.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/git"
)

// Config holds the configuration for the git recorder.
type Config struct {
	Root string
	// Push runs "git push" after every successful commit.
	Push   bool
	Logger *slog.Logger
}

// Recorder implements core.Recorder on top of git.
// It stages exactly the paths named in a ChangeSet, never the whole tree.
type Recorder struct {
	git    *git.Client
	config Config

	mu         sync.RWMutex
	commits    int
	failures   int
	lastCommit core.CommitID
}

// NewRecorder creates a recorder using client for git access.
func NewRecorder(client *git.Client, config Config) *Recorder {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Recorder{git: client, config: config}
}

// Initialize makes sure the root is the top level of its own git repository.
// A library inside another work tree gets a nested repository so its commits
// never land in the enclosing one. created reports whether git init ran.
func (r *Recorder) Initialize(ctx context.Context) (created bool, err error) {
	if !git.IsInstalled() {
		return false, fmt.Errorf("git is not installed")
	}
	if r.git.IsRepoRoot(ctx) {
		return false, nil
	}
	if err := r.git.Init(ctx); err != nil {
		return false, fmt.Errorf("failed to git init: %w", err)
	}
	r.config.Logger.Info("initialized git repository", "path", r.config.Root)
	return true, nil
}

// Commit stages the paths of cs and records them as one commit.
//
// Workflow:
//  1. Acquire the process lock for the git index.
//  2. Stage removals (renamed/moved sources, removed paths) with "git rm --cached".
//  3. Stage additions (added paths, renamed/moved destinations) with "git add".
//  4. Commit, then optionally push.
//
// Nothing is rolled back on failure: the filesystem is the source of truth.
func (r *Recorder) Commit(ctx context.Context, cs core.ChangeSet, msg string) (id core.CommitID, err error) {
	if cs.Empty() {
		return "", nil
	}
	defer func() { r.track(id, err) }()

	unlock, err := r.git.Lock(ctx)
	if err != nil {
		return "", &core.CommitError{Stage: "lock", Err: fmt.Errorf("%w: %w", core.ErrCommitFailed, err)}
	}
	defer unlock()

	present := cs.Present()
	for _, p := range present {
		if _, err := os.Lstat(filepath.Join(r.config.Root, filepath.FromSlash(p))); err != nil {
			return "", &core.CommitError{Stage: "stage", Paths: []string{p}, Err: fmt.Errorf("%w: %w", core.ErrStagingFailed, err)}
		}
	}

	gone := cs.Gone()
	// untracked sources leave nothing to record; git rejects them as pathspecs
	tracked, err := r.git.Tracked(ctx, gone...)
	if err != nil {
		return "", &core.CommitError{Stage: "stage", Paths: gone, Err: fmt.Errorf("%w: %w", core.ErrStagingFailed, err)}
	}
	if err := r.git.RmCached(ctx, gone...); err != nil {
		return "", &core.CommitError{Stage: "stage", Paths: gone, Err: fmt.Errorf("%w: %w", core.ErrStagingFailed, err)}
	}
	if err := r.git.Add(ctx, present...); err != nil {
		return "", &core.CommitError{Stage: "stage", Paths: present, Err: fmt.Errorf("%w: %w", core.ErrStagingFailed, err)}
	}

	paths := append(append([]string{}, present...), tracked...)
	r.logForeignStaged(ctx, paths)
	if err := r.git.Commit(ctx, msg, paths...); err != nil {
		return "", &core.CommitError{Stage: "commit", Paths: paths, Err: fmt.Errorf("%w: %w", core.ErrCommitFailed, err)}
	}

	head, err := r.git.Head(ctx)
	if err != nil {
		return "", &core.CommitError{Stage: "commit", Err: fmt.Errorf("%w: read HEAD: %w", core.ErrCommitFailed, err)}
	}
	id = core.CommitID(head)
	r.config.Logger.Debug("committed", "commit", id.Short(), "changeset", cs.ID, "op", cs.Op)

	if r.config.Push {
		if !r.git.HasRemote(ctx) {
			return id, &core.CommitError{Stage: "push", Err: fmt.Errorf("%w: remote 'origin' not configured", core.ErrPushFailed)}
		}
		if err := r.git.Push(ctx); err != nil {
			return id, &core.CommitError{Stage: "push", Err: fmt.Errorf("%w: %w", core.ErrPushFailed, err)}
		}
	}

	return id, nil
}

// logForeignStaged notes staged paths outside the commit. They stay staged.
func (r *Recorder) logForeignStaged(ctx context.Context, paths []string) {
	staged, err := r.git.Staged(ctx)
	if err != nil {
		return
	}
	own := make(map[string]bool, len(paths))
	for _, p := range paths {
		own[p] = true
	}
	var foreign []string
	for _, p := range staged {
		if !own[p] {
			foreign = append(foreign, p)
		}
	}
	if len(foreign) > 0 {
		r.config.Logger.Warn("leaving unrelated staged paths out of the commit", "paths", foreign)
	}
}

func (r *Recorder) track(id core.CommitID, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != "" {
		r.commits++
		r.lastCommit = id
	}
	if err != nil && !errors.Is(err, core.ErrPushFailed) {
		r.failures++
	}
}

// NopRecorder satisfies core.Recorder without a change log (gitless mode).
type NopRecorder struct{}

// Commit does nothing.
func (NopRecorder) Commit(ctx context.Context, cs core.ChangeSet, msg string) (core.CommitID, error) {
	return "", nil
}

// ComponentType implements introspection.Component.
func (NopRecorder) ComponentType() string {
	return "nop-recorder"
}

var _ core.Recorder = (*Recorder)(nil)
var _ core.Recorder = NopRecorder{}
