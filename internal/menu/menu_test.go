package menu_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/shelf/internal/menu"
	"github.com/aretw0/shelf/internal/platform"
	"github.com/aretw0/shelf/pkg/core"
)

// scriptedHost replays canned answers in order.
type scriptedHost struct {
	options  []core.MenuOption
	modes    []core.AddMode
	picks    []string
	inputs   []string
	confirms []bool
	selects  []string // entry paths; "" means back
}

func (h *scriptedHost) ChooseMenuOption() (core.MenuOption, error) {
	if len(h.options) == 0 {
		return core.MenuExit, nil
	}
	o := h.options[0]
	h.options = h.options[1:]
	return o, nil
}

func (h *scriptedHost) ChooseAddMode() (core.AddMode, error) {
	m := h.modes[0]
	h.modes = h.modes[1:]
	return m, nil
}

func (h *scriptedHost) PickFile() (string, bool, error) {
	p := h.picks[0]
	h.picks = h.picks[1:]
	return p, p != "", nil
}

func (h *scriptedHost) Input(label string) (string, error) {
	if len(h.inputs) == 0 {
		return "", core.ErrCancelled
	}
	v := h.inputs[0]
	h.inputs = h.inputs[1:]
	return v, nil
}

func (h *scriptedHost) Confirm(prompt string) (bool, error) {
	c := h.confirms[0]
	h.confirms = h.confirms[1:]
	return c, nil
}

func (h *scriptedHost) SelectEntry(label string, entries []core.Entry) (core.Entry, bool, error) {
	want := h.selects[0]
	h.selects = h.selects[1:]
	for _, e := range entries {
		if e.Path == want {
			return e, true, nil
		}
	}
	return core.Entry{}, false, nil
}

func newLibrary(t *testing.T) (*core.Service, string) {
	t.Helper()
	root := t.TempDir()
	lib, err := platform.New(context.Background(), root, platform.WithVersioning(false))
	require.NoError(t, err)
	return lib.Service, root
}

func source(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(name), 0644))
	return p
}

func TestMenu_AddListExit(t *testing.T) {
	svc, root := newLibrary(t)
	src := source(t, "report.pdf")

	host := &scriptedHost{
		options: []core.MenuOption{core.MenuAdd, core.MenuAdd, core.MenuList, core.MenuExit},
		modes:   []core.AddMode{core.AddModeManual, core.AddModePicker},
		inputs:  []string{src},
		picks:   []string{source(t, "notes.txt")},
	}
	var out bytes.Buffer

	require.NoError(t, menu.New(host, svc, &out).Run(context.Background()))

	assert.FileExists(t, filepath.Join(root, "report.pdf"))
	assert.Contains(t, out.String(), "Added report.pdf")
	assert.Contains(t, out.String(), "1. notes.txt\n2. report.pdf\n")
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestMenu_AddConflictKeepsBoth(t *testing.T) {
	svc, root := newLibrary(t)
	src := source(t, "report.pdf")

	host := &scriptedHost{
		options:  []core.MenuOption{core.MenuAdd, core.MenuAdd},
		modes:    []core.AddMode{core.AddModeManual, core.AddModeManual},
		inputs:   []string{src, src},
		confirms: []bool{true},
	}
	var out bytes.Buffer

	require.NoError(t, menu.New(host, svc, &out).Run(context.Background()))
	assert.FileExists(t, filepath.Join(root, "report (1).pdf"))
}

func TestMenu_ErrorsDoNotEndLoop(t *testing.T) {
	svc, _ := newLibrary(t)

	host := &scriptedHost{
		options: []core.MenuOption{core.MenuAdd, core.MenuAdd, core.MenuRename, core.MenuList},
		modes:   []core.AddMode{core.AddModeManual, core.AddModePicker},
		inputs:  []string{"/does/not/exist.pdf"},
		picks:   []string{""},
	}
	var out bytes.Buffer

	require.NoError(t, menu.New(host, svc, &out).Run(context.Background()))

	assert.Contains(t, out.String(), "error: entry not found")
	assert.Contains(t, out.String(), "Cancelled.")
	assert.Contains(t, out.String(), "The library is empty.")
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestMenu_RenameAndRemove(t *testing.T) {
	svc, root := newLibrary(t)
	ctx := context.Background()
	_, _, err := svc.Add(ctx, source(t, "draft.txt"), core.ConflictReject)
	require.NoError(t, err)

	host := &scriptedHost{
		options:  []core.MenuOption{core.MenuRename, core.MenuRemove, core.MenuRemove},
		inputs:   []string{"final.txt"},
		selects:  []string{"draft.txt", "final.txt", "final.txt"},
		confirms: []bool{false, true},
	}
	var out bytes.Buffer

	require.NoError(t, menu.New(host, svc, &out).Run(ctx))

	assert.Contains(t, out.String(), "Renamed draft.txt to final.txt")
	assert.Contains(t, out.String(), "Kept final.txt")
	assert.Contains(t, out.String(), "Removed final.txt")
	assert.NoFileExists(t, filepath.Join(root, "final.txt"))
}

func TestMenu_Organize(t *testing.T) {
	svc, root := newLibrary(t)
	ctx := context.Background()
	_, _, err := svc.Add(ctx, source(t, "book.epub"), core.ConflictReject)
	require.NoError(t, err)

	host := &scriptedHost{options: []core.MenuOption{core.MenuOrganize, core.MenuOrganize}}
	var out bytes.Buffer

	require.NoError(t, menu.New(host, svc, &out).Run(ctx))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^Books/\d{4}/book\.epub$`, entries[0].Path)
	assert.FileExists(t, filepath.Join(root, filepath.FromSlash(entries[0].Path)))
	assert.Contains(t, out.String(), "Moved 1 file(s)")
	assert.Contains(t, out.String(), "Everything is already in place.")
}

type failingHost struct{ scriptedHost }

func (failingHost) ChooseMenuOption() (core.MenuOption, error) {
	return 0, errors.New("terminal closed")
}

func TestMenu_HostFailureEndsLoop(t *testing.T) {
	svc, _ := newLibrary(t)
	err := menu.New(&failingHost{}, svc, &bytes.Buffer{}).Run(context.Background())
	assert.ErrorContains(t, err, "terminal closed")
}

func TestMenu_ContextCancelled(t *testing.T) {
	svc, _ := newLibrary(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := menu.New(&scriptedHost{}, svc, &bytes.Buffer{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
