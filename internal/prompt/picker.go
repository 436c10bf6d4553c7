package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// Picker locates a file on disk. ok is false when the user cancelled.
type Picker interface {
	Pick(ctx context.Context) (path string, ok bool, err error)
}

// HasDisplay reports whether a graphical session is available.
func HasDisplay(getenv func(string) string) bool {
	return getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != ""
}

// NewPicker returns the native dialog when a display and zenity are
// available, and the terminal browser otherwise.
func NewPicker(startDir string) Picker {
	if HasDisplay(os.Getenv) {
		if bin, err := exec.LookPath("zenity"); err == nil {
			return &ZenityPicker{Bin: bin, Title: "Select a document"}
		}
	}
	return &BrowserPicker{Start: startDir}
}

// ZenityPicker opens the zenity file selection dialog.
type ZenityPicker struct {
	Bin   string
	Title string
}

// Pick runs the dialog. zenity exits 1 when the dialog is closed.
func (z *ZenityPicker) Pick(ctx context.Context) (string, bool, error) {
	cmd := exec.CommandContext(ctx, z.Bin, "--file-selection", "--title="+z.Title)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("file dialog failed: %w", err)
	}
	p := strings.TrimRight(string(out), "\r\n")
	if p == "" {
		return "", false, nil
	}
	return p, true, nil
}

// BrowserPicker walks directories with a terminal select list.
type BrowserPicker struct {
	Start string
}

type browseItem struct {
	Name  string
	Path  string
	IsDir bool
	Size  int64
}

func (b browseItem) option() SelectOption {
	if b.IsDir {
		return SelectOption{Label: b.Name + "/", Description: b.Path}
	}
	return SelectOption{Label: b.Name, Description: humanize.Bytes(uint64(b.Size))}
}

// Pick lets the user descend into directories until a file is chosen.
func (p *BrowserPicker) Pick(ctx context.Context) (string, bool, error) {
	dir := p.Start
	if dir == "" {
		dir = "."
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		items, err := listDir(dir)
		if err != nil {
			return "", false, err
		}

		options := []SelectOption{{Label: "[cancel]", Description: dir}}
		for _, it := range items {
			options = append(options, it.option())
		}

		i, err := SelectIndex(dir, options)
		if errors.Is(err, ErrAborted) || (err == nil && i == 0) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}

		chosen := items[i-1]
		if !chosen.IsDir {
			return chosen.Path, true, nil
		}
		dir = chosen.Path
	}
}

// listDir lists dir for browsing: the parent first, then directories, then
// files, each group by name. Hidden entries are skipped.
func listDir(dir string) ([]browseItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var dirs, files []browseItem
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		full := filepath.Join(dir, e.Name())
		info, err := os.Stat(full)
		if err != nil {
			continue
		}
		item := browseItem{Name: e.Name(), Path: full, IsDir: info.IsDir(), Size: info.Size()}
		if item.IsDir {
			dirs = append(dirs, item)
		} else if info.Mode().IsRegular() {
			files = append(files, item)
		}
	}

	byName := func(s []browseItem) {
		sort.Slice(s, func(i, j int) bool { return s[i].Name < s[j].Name })
	}
	byName(dirs)
	byName(files)

	var out []browseItem
	if parent := filepath.Dir(dir); parent != dir {
		out = append(out, browseItem{Name: "..", Path: parent, IsDir: true})
	}
	out = append(out, dirs...)
	return append(out, files...), nil
}
