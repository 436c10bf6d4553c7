package organize

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/shelf/pkg/core"
)

// maxSuffix bounds the search for a free "name (N).ext".
const maxSuffix = 10000

// Planner computes canonical destinations.
type Planner struct {
	Root string
	// Location is the zone the year is read in. Defaults to time.Local.
	Location *time.Location
}

// NewPlanner creates a planner rooted at root.
func NewPlanner(root string) *Planner {
	return &Planner{Root: root, Location: time.Local}
}

// Plan returns the destination of e, relative to the root and slash separated.
func (p *Planner) Plan(e core.Entry, cat core.Category) (string, error) {
	return p.PlanAvoiding(e, cat, nil)
}

// PlanAvoiding is Plan with an overlay on the disk: a path mapped to true is
// taken, a path mapped to false has been vacated and is free.
func (p *Planner) PlanAvoiding(e core.Entry, cat core.Category, reserved map[string]bool) (string, error) {
	if e.Created.IsZero() {
		return "", fmt.Errorf("plan %s: entry has no timestamp", e.Path)
	}
	loc := p.Location
	if loc == nil {
		loc = time.Local
	}
	dir := path.Join(string(cat), strconv.Itoa(e.Created.In(loc).Year()))

	var self os.FileInfo
	if info, err := os.Stat(p.abs(e.Path)); err == nil {
		self = info
	}

	for i := 0; i < maxSuffix; i++ {
		candidate := path.Join(dir, SuffixName(e.Name, i))
		if candidate == e.Path {
			return candidate, nil
		}
		if taken, ok := reserved[candidate]; ok {
			if taken {
				continue
			}
			return candidate, nil
		}

		info, err := os.Stat(p.abs(candidate))
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("plan %s: %w", e.Path, err)
		}
		if self != nil && os.SameFile(self, info) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("plan %s: %w: no free name in %s", e.Path, core.ErrConflict, dir)
}

func (p *Planner) abs(rel string) string {
	return filepath.Join(p.Root, filepath.FromSlash(rel))
}

// SuffixName returns name with " (n)" inserted before the extension.
// n == 0 returns name unchanged.
func SuffixName(name string, n int) string {
	if n == 0 {
		return name
	}
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		// dotfiles such as ".bashrc" have no stem
		stem, ext = name, ""
	}
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}
