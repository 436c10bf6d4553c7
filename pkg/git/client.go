// Package git wraps the git binary for the change log of a library.
package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// DefaultTimeout bounds a single git invocation.
const DefaultTimeout = 30 * time.Second

// ErrTimeout is returned when a git invocation exceeds the client timeout.
var ErrTimeout = errors.New("git timed out")

// Client wraps git command execution with a file-based lock for process safety.
type Client struct {
	WorkDir string
	Logger  *slog.Logger
	Timeout time.Duration
	lock    *flock.Flock
}

// NewClient creates a new git client for the given working directory.
// lockPath is relative to workDir (e.g. ".shelf/shelf.lock").
func NewClient(workDir, lockPath string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		WorkDir: workDir,
		Logger:  logger,
		Timeout: DefaultTimeout,
		lock:    flock.New(filepath.Join(workDir, lockPath)),
	}
}

// IsInstalled reports whether the git binary is on PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Lock acquires the process lock, waiting until ctx is done.
func (c *Client) Lock(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(c.lock.Path()), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	ok, err := c.lock.TryLockContext(ctx, 10*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("failed to acquire lock: %s is held", c.lock.Path())
	}

	return func() {
		if err := c.lock.Unlock(); err != nil {
			c.Logger.Warn("failed to release git lock", "error", err)
		}
	}, nil
}

// Run executes a raw git command in the working directory under the client timeout.
// NOTE: It does NOT acquire the lock. Callers that touch the index must hold Client.Lock().
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.WorkDir
	// library file names such as "[draft].pdf" are paths, not globs
	cmd.Env = append(os.Environ(), "GIT_LITERAL_PATHSPECS=1")

	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))

	if ctx.Err() == context.DeadlineExceeded {
		return output, fmt.Errorf("git %s: %w after %s", args[0], ErrTimeout, timeout)
	}
	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}

	return output, nil
}

// IsRepoRoot reports whether WorkDir is the top level of its own work tree.
// A directory nested inside another repository is not.
func (c *Client) IsRepoRoot(ctx context.Context) bool {
	out, err := c.Run(ctx, "rev-parse", "--show-toplevel")
	if err != nil || out == "" {
		return false
	}
	return samePath(filepath.FromSlash(out), c.WorkDir)
}

func samePath(a, b string) bool {
	if ra, err := filepath.EvalSymlinks(a); err == nil {
		a = ra
	}
	if rb, err := filepath.EvalSymlinks(b); err == nil {
		b = rb
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

// Init initializes a new git repository. git init is safe to re-run.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.Run(ctx, "init")
	return err
}

// Add stages the given paths.
func (c *Client) Add(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, files...)
	_, err := c.Run(ctx, args...)
	return err
}

// RmCached stages the removal of paths that are already gone from the working tree.
// Paths git never tracked are ignored.
func (c *Client) RmCached(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"rm", "--cached", "--ignore-unmatch", "-q", "--"}, files...)
	_, err := c.Run(ctx, args...)
	return err
}

// Commit records the given paths only. Other staged entries stay in the
// index and out of the commit. Every path must be known to git, in the
// index or in HEAD.
func (c *Client) Commit(ctx context.Context, msg string, paths ...string) error {
	if len(paths) == 0 {
		return errors.New("commit: no paths given")
	}
	args := append([]string{"commit", "-m", msg, "--only", "--"}, paths...)
	_, err := c.Run(ctx, args...)
	return err
}

// Tracked returns those of paths that HEAD contains.
// Before the first commit nothing is tracked.
func (c *Client) Tracked(ctx context.Context, paths ...string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if _, err := c.Run(ctx, "rev-parse", "--verify", "-q", "HEAD"); err != nil {
		return nil, nil
	}
	args := append([]string{"ls-tree", "-r", "-z", "--name-only", "HEAD", "--"}, paths...)
	out, err := c.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return splitNUL(out), nil
}

// Head returns the hash of the current commit.
func (c *Client) Head(ctx context.Context) (string, error) {
	return c.Run(ctx, "rev-parse", "HEAD")
}

// HasRemote reports whether an "origin" remote is configured.
func (c *Client) HasRemote(ctx context.Context) bool {
	_, err := c.Run(ctx, "remote", "get-url", "origin")
	return err == nil
}

// Push pushes the current branch to its upstream.
func (c *Client) Push(ctx context.Context) error {
	_, err := c.Run(ctx, "push")
	return err
}

// Staged returns the paths whose index entry differs from HEAD.
func (c *Client) Staged(ctx context.Context) ([]string, error) {
	out, err := c.Run(ctx, "diff", "--cached", "--name-only", "-z")
	if err != nil {
		return nil, err
	}
	return splitNUL(out), nil
}

func splitNUL(out string) []string {
	var paths []string
	for _, p := range strings.Split(out, "\x00") {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
