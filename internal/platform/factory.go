package platform

import (
	"context"
	"fmt"
	"path"

	"github.com/aretw0/shelf/pkg/adapters/fs"
	"github.com/aretw0/shelf/pkg/adapters/vcs"
	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/git"
	"github.com/aretw0/shelf/pkg/organize"
)

const ignoreFile = ".gitignore"

// Library bundles a wired Service with the components the CLI reaches directly.
type Library struct {
	Config     Config
	Service    *core.Service
	Store      *fs.Store
	Classifier *organize.Classifier
	Organizer  *organize.Organizer
	Recorder   core.Recorder
}

// New resolves the configuration for root, wires every component and runs setup.
// Setup failures wrap core.ErrSetup. A repository that cannot be initialized
// is not fatal: commits fail later and surface as warnings.
//
//	lib, err := shelf.New(ctx, "./library", shelf.WithVersioning(false))
func New(ctx context.Context, root string, opts ...Option) (*Library, error) {
	cfg, err := Resolve(root, opts...)
	if err != nil {
		return nil, err
	}
	return Open(ctx, cfg)
}

// Open wires the components described by cfg and runs setup.
func Open(ctx context.Context, cfg Config) (*Library, error) {
	classifier, err := organize.NewClassifier(cfg.Categories)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrSetup, err)
	}

	store := fs.NewStore(fs.Config{
		Root:       cfg.Root,
		SystemDir:  cfg.SystemDir,
		SetupDirs:  cfg.SetupDirs,
		IgnoreFile: ignoreFile,
		Logger:     cfg.Logger.With("component", "store"),
	})

	organizer := organize.New(organize.Config{
		Root:       cfg.Root,
		Classifier: classifier,
		Planner:    organize.NewPlanner(cfg.Root),
		Lister:     store,
		KeepDirs:   append([]string{cfg.SystemDir}, cfg.SetupDirs...),
		Logger:     cfg.Logger.With("component", "organizer"),
	})

	var recorder core.Recorder = vcs.NopRecorder{}
	var gitRecorder *vcs.Recorder
	if cfg.Versioning {
		client := git.NewClient(cfg.Root, path.Join(cfg.SystemDir, LockFileName), cfg.Logger.With("component", "git"))
		client.Timeout = cfg.CommitTimeout
		gitRecorder = vcs.NewRecorder(client, vcs.Config{
			Root:   cfg.Root,
			Push:   cfg.Push,
			Logger: cfg.Logger.With("component", "recorder"),
		})
		recorder = gitRecorder
	}

	svc := core.NewService(store, organizer, recorder, cfg.Logger)
	if err := svc.Setup(ctx); err != nil {
		return nil, err
	}

	if gitRecorder != nil {
		created, err := gitRecorder.Initialize(ctx)
		if err != nil {
			cfg.Logger.Warn("change log unavailable", "error", err)
		} else if created {
			cs := core.NewChangeSet(core.OpAdd, core.Change{Action: core.ActionAdded, Path: ignoreFile})
			msg := core.FormatCommitMessage(core.CommitTypeChore, "library", "initialize library", "")
			if _, err := gitRecorder.Commit(ctx, cs, msg); err != nil {
				cfg.Logger.Warn("failed to record library setup", "error", err)
			}
		}
	}

	cfg.Logger.Debug("library ready", "root", cfg.Root, "versioning", cfg.Versioning)
	return &Library{
		Config:     cfg,
		Service:    svc,
		Store:      store,
		Classifier: classifier,
		Organizer:  organizer,
		Recorder:   recorder,
	}, nil
}
