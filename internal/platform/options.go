package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/shelf/pkg/organize"
)

// Option configures a library.
type Option func(*options)

// options records what the caller set explicitly. Unset fields fall back to
// the config file and then to Config defaults.
type options struct {
	logger        *slog.Logger
	versioning    *bool
	push          *bool
	commitTimeout *time.Duration
	categories    organize.Table
	systemDir     string
	setupDirs     []string
	configFile    string
}

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithVersioning enables or disables the git change log.
// Without versioning every change is applied but nothing is committed.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.versioning = &enabled
	}
}

// WithPush pushes after every successful commit.
func WithPush(enabled bool) Option {
	return func(o *options) {
		o.push = &enabled
	}
}

// WithCommitTimeout bounds every git invocation.
func WithCommitTimeout(d time.Duration) Option {
	return func(o *options) {
		o.commitTimeout = &d
	}
}

// WithCategories replaces the extension table used for classification.
func WithCategories(t organize.Table) Option {
	return func(o *options) {
		o.categories = t
	}
}

// WithSystemDir sets the name of the metadata directory (default ".shelf").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithSetupDirs sets the directories created at setup.
func WithSetupDirs(dirs ...string) Option {
	return func(o *options) {
		o.setupDirs = dirs
	}
}

// WithConfigFile reads configuration from path instead of <root>/<system dir>/config.yaml.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}
