package shelf

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/shelf/internal/platform"
	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/organize"
)

// --- Types ---

// Library is a wired library: service plus the components behind it.
type Library = platform.Library

// Config is the resolved configuration of a library.
type Config = platform.Config

// Table maps categories to the extensions filed under them.
type Table = organize.Table

// Conflict policies for Add.
const (
	ConflictReject    = core.ConflictReject
	ConflictOverwrite = core.ConflictOverwrite
	ConflictSuffix    = core.ConflictSuffix
)

// --- Configuration ---

// Option defines a functional option for configuring a library.
type Option = platform.Option

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithVersioning enables or disables the git change log.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithPush pushes to the remote after every commit.
func WithPush(enabled bool) Option {
	return platform.WithPush(enabled)
}

// WithCommitTimeout bounds every git invocation.
func WithCommitTimeout(d time.Duration) Option {
	return platform.WithCommitTimeout(d)
}

// WithCategories replaces the default extension table.
func WithCategories(t Table) Option {
	return platform.WithCategories(t)
}

// WithSystemDir sets the hidden metadata directory (default ".shelf").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithSetupDirs sets the directories created at setup.
func WithSetupDirs(dirs ...string) Option {
	return platform.WithSetupDirs(dirs...)
}

// WithConfigFile reads the YAML configuration from path.
func WithConfigFile(path string) Option {
	return platform.WithConfigFile(path)
}

// --- Factory ---

// New opens the library at root, creating its layout if needed.
func New(ctx context.Context, root string, opts ...Option) (*Library, error) {
	return platform.New(ctx, root, opts...)
}

// FindRoot looks upwards from startDir for an existing library.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir, "")
}

// DefaultTable returns the built-in extension table.
func DefaultTable() Table {
	return organize.DefaultTable()
}
