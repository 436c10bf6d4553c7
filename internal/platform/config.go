package platform

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/git"
	"github.com/aretw0/shelf/pkg/organize"
)

const (
	// DefaultSystemDir holds library metadata: config, lock file.
	DefaultSystemDir = ".shelf"
	// ConfigFileName is looked up inside the system directory.
	ConfigFileName = "config.yaml"
	// LockFileName guards git access across processes.
	LockFileName = "shelf.lock"
)

// DefaultSetupDirs are created at setup.
var DefaultSetupDirs = []string{"Documentation", "Books"}

// Config is the resolved configuration of a library.
type Config struct {
	Root          string
	SystemDir     string
	SetupDirs     []string
	Categories    organize.Table
	Versioning    bool
	Push          bool
	CommitTimeout time.Duration
	Logger        *slog.Logger
}

// FileConfig is the on-disk form of the configuration.
type FileConfig struct {
	Categories    map[string][]string `yaml:"categories"`
	SetupDirs     []string            `yaml:"setup_dirs"`
	Push          *bool               `yaml:"push"`
	Versioning    *bool               `yaml:"versioning"`
	CommitTimeout string              `yaml:"commit_timeout"`
}

// LoadFileConfig reads a YAML config file. A missing file yields nil.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &fc, nil
}

// Table converts the categories section. Names are title-cased so that
// "books" and "Books" name the same directory.
func (fc *FileConfig) Table() organize.Table {
	if len(fc.Categories) == 0 {
		return nil
	}
	title := cases.Title(language.Und)
	t := make(organize.Table, len(fc.Categories))
	for name, exts := range fc.Categories {
		cat := core.Category(title.String(strings.TrimSpace(name)))
		t[cat] = append(t[cat], exts...)
	}
	return t
}

// Resolve builds the Config for root: explicit options win over the config
// file, which wins over defaults.
func Resolve(root string, opts ...Option) (Config, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return Config{}, fmt.Errorf("%w: resolve root: %w", core.ErrSetup, err)
	}

	cfg := Config{
		Root:          abs,
		SystemDir:     DefaultSystemDir,
		SetupDirs:     DefaultSetupDirs,
		Categories:    organize.DefaultTable(),
		Versioning:    true,
		CommitTimeout: git.DefaultTimeout,
		Logger:        o.logger,
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.systemDir != "" {
		cfg.SystemDir = o.systemDir
	}

	path := o.configFile
	if path == "" {
		path = filepath.Join(cfg.Root, cfg.SystemDir, ConfigFileName)
	}
	fc, err := LoadFileConfig(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", core.ErrSetup, err)
	}
	if fc != nil {
		cfg.Logger.Debug("loaded config file", "path", path)
		if t := fc.Table(); t != nil {
			cfg.Categories = t
		}
		if len(fc.SetupDirs) > 0 {
			cfg.SetupDirs = fc.SetupDirs
		}
		if fc.Push != nil {
			cfg.Push = *fc.Push
		}
		if fc.Versioning != nil {
			cfg.Versioning = *fc.Versioning
		}
		if fc.CommitTimeout != "" {
			d, err := time.ParseDuration(fc.CommitTimeout)
			if err != nil || d <= 0 {
				return Config{}, fmt.Errorf("%w: invalid commit_timeout %q", core.ErrSetup, fc.CommitTimeout)
			}
			cfg.CommitTimeout = d
		}
	}

	if o.categories != nil {
		cfg.Categories = o.categories
	}
	if o.setupDirs != nil {
		cfg.SetupDirs = o.setupDirs
	}
	if o.push != nil {
		cfg.Push = *o.push
	}
	if o.versioning != nil {
		cfg.Versioning = *o.versioning
	}
	if o.commitTimeout != nil {
		cfg.CommitTimeout = *o.commitTimeout
	}
	return cfg, nil
}
