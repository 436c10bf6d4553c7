package organize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/shelf/pkg/core"
)

// Lister enumerates the files of the library in lexical path order.
type Lister interface {
	List(ctx context.Context) ([]core.Entry, error)
}

// Config holds the collaborators of an Organizer.
type Config struct {
	Root       string
	Classifier *Classifier
	Planner    *Planner
	Lister     Lister
	// KeepDirs are top-level directories that are never pruned, even when empty.
	KeepDirs []string
	Logger   *slog.Logger
}

// Organizer moves every file under the root to its planned destination.
type Organizer struct {
	config Config

	mu         sync.RWMutex
	lastRun    *time.Time
	lastMoved  int
	lastFailed int
}

// New creates an Organizer.
func New(config Config) *Organizer {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Classifier == nil {
		config.Classifier = MustClassifier(DefaultTable())
	}
	if config.Planner == nil {
		config.Planner = NewPlanner(config.Root)
	}
	return &Organizer{config: config}
}

// OrganizeAll runs an organize pass.
//
// Workflow:
//  1. List every file first, so moves never feed back into the enumeration.
//  2. Classify and plan each file; move it when the destination differs.
//  3. Per-file failures are logged and collected; the pass keeps going.
//  4. Prune directories the pass left empty.
func (o *Organizer) OrganizeAll(ctx context.Context) (core.Report, error) {
	entries, err := o.config.Lister.List(ctx)
	if err != nil {
		return core.Report{}, fmt.Errorf("failed to enumerate library: %w", err)
	}

	report := core.Report{Changes: core.NewChangeSet(core.OpOrganize)}
	emptied := make(map[string]bool)

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			o.record(report)
			return report, err
		}

		dest, err := o.config.Planner.Plan(e, o.config.Classifier.Classify(e.Ext))
		if err != nil {
			o.fail(&report, e.Path, err)
			continue
		}
		if dest == e.Path {
			continue
		}

		if err := o.move(e.Path, dest); err != nil {
			o.fail(&report, e.Path, err)
			continue
		}

		o.config.Logger.Debug("moved", "from", e.Path, "to", dest)
		report.Changes.Add(core.Change{Action: core.ActionMoved, Path: dest, From: e.Path})
		emptied[e.Dir()] = true
	}

	for dir := range emptied {
		o.prune(dir)
	}

	o.record(report)
	if len(report.Failed) > 0 {
		o.config.Logger.Warn("organize finished with failures", "moved", report.Changes.Len(), "failed", len(report.Failed))
	} else {
		o.config.Logger.Info("organize finished", "moved", report.Changes.Len())
	}
	return report, nil
}

// Preview plans an organize pass without touching the disk.
func (o *Organizer) Preview(ctx context.Context) (core.Report, error) {
	entries, err := o.config.Lister.List(ctx)
	if err != nil {
		return core.Report{}, fmt.Errorf("failed to enumerate library: %w", err)
	}

	report := core.Report{Changes: core.NewChangeSet(core.OpOrganize)}
	reserved := make(map[string]bool)

	for _, e := range entries {
		dest, err := o.config.Planner.PlanAvoiding(e, o.config.Classifier.Classify(e.Ext), reserved)
		if err != nil {
			report.Failed = append(report.Failed, core.Failure{Path: e.Path, Err: err})
			continue
		}
		reserved[dest] = true
		if dest != e.Path {
			if _, ok := reserved[e.Path]; !ok {
				reserved[e.Path] = false
			}
			report.Changes.Add(core.Change{Action: core.ActionMoved, Path: dest, From: e.Path})
		}
	}
	return report, nil
}

// move renames src to dest (both relative) without ever replacing an existing file.
func (o *Organizer) move(src, dest string) error {
	absSrc := o.abs(src)
	absDest := o.abs(dest)

	if err := os.MkdirAll(filepath.Dir(absDest), 0755); err != nil {
		return classify(fmt.Errorf("create %s: %w", path.Dir(dest), err))
	}
	if _, err := os.Lstat(absDest); err == nil {
		return fmt.Errorf("move %s: %w: %s", src, core.ErrConflict, dest)
	}
	if err := os.Rename(absSrc, absDest); err != nil {
		return classify(fmt.Errorf("move %s to %s: %w", src, dest, err))
	}
	return nil
}

// prune removes dir and its parents while they are empty, stopping at kept directories.
func (o *Organizer) prune(dir string) {
	for dir != "." && dir != "/" && dir != "" {
		if o.kept(dir) {
			return
		}
		if err := os.Remove(o.abs(dir)); err != nil {
			// not empty, or not ours to remove
			return
		}
		o.config.Logger.Debug("pruned empty directory", "dir", dir)
		dir = path.Dir(dir)
	}
}

func (o *Organizer) kept(dir string) bool {
	if path.Dir(dir) != "." {
		return false
	}
	for _, cat := range o.config.Classifier.Categories() {
		if dir == string(cat) {
			return true
		}
	}
	for _, k := range o.config.KeepDirs {
		if dir == k {
			return true
		}
	}
	return false
}

func (o *Organizer) fail(report *core.Report, p string, err error) {
	o.config.Logger.Warn("failed to organize file", "path", p, "error", err)
	report.Failed = append(report.Failed, core.Failure{Path: p, Err: err})
}

func (o *Organizer) record(report core.Report) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now()
	o.lastRun = &now
	o.lastMoved = report.Changes.Len()
	o.lastFailed = len(report.Failed)
}

func (o *Organizer) abs(rel string) string {
	return filepath.Join(o.config.Root, filepath.FromSlash(rel))
}

// classify maps filesystem errors onto the library taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", core.ErrPermissionDenied, err)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", core.ErrNotFound, err)
	}
	return err
}
