// Package menu runs the interactive library menu over a core.Host.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/shelf/pkg/core"
)

// Library is the part of core.Service the menu drives.
type Library interface {
	List(ctx context.Context) ([]core.Entry, error)
	Add(ctx context.Context, src string, policy core.ConflictPolicy) (core.Entry, core.Result, error)
	Rename(ctx context.Context, e core.Entry, newName string) (core.Entry, core.Result, error)
	Remove(ctx context.Context, e core.Entry) (core.Result, error)
	Organize(ctx context.Context) (core.Report, core.Result, error)
}

// Menu is one interactive session.
type Menu struct {
	host core.Host
	lib  Library
	out  io.Writer
}

// New creates a menu writing its output to out.
func New(host core.Host, lib Library, out io.Writer) *Menu {
	return &Menu{host: host, lib: lib, out: out}
}

// Run loops until the user exits, ctx is done or the host fails.
// Operation errors are printed and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		opt, err := m.host.ChooseMenuOption()
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}

		var actionErr error
		switch opt {
		case core.MenuList:
			actionErr = m.list(ctx)
		case core.MenuAdd:
			actionErr = m.add(ctx)
		case core.MenuRename:
			actionErr = m.rename(ctx)
		case core.MenuRemove:
			actionErr = m.remove(ctx)
		case core.MenuOrganize:
			actionErr = m.organize(ctx)
		case core.MenuExit:
			fmt.Fprintln(m.out, "Goodbye.")
			return nil
		default:
			actionErr = fmt.Errorf("unknown menu option %d", opt)
		}

		m.report(actionErr)
	}
}

func (m *Menu) list(ctx context.Context) error {
	entries, err := m.lib.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(m.out, "The library is empty.")
		return nil
	}
	for i, e := range entries {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, e.Path)
	}
	return nil
}

func (m *Menu) add(ctx context.Context) error {
	mode, err := m.host.ChooseAddMode()
	if err != nil {
		return err
	}

	var src string
	switch mode {
	case core.AddModeBack:
		return nil
	case core.AddModePicker:
		p, ok, err := m.host.PickFile()
		if err != nil {
			return err
		}
		if !ok {
			return core.ErrCancelled
		}
		src = p
	case core.AddModeManual:
		if src, err = m.host.Input("Path to the document"); err != nil {
			return err
		}
	}

	e, res, err := m.lib.Add(ctx, src, core.ConflictReject)
	if errors.Is(err, core.ErrConflict) {
		keep, cerr := m.host.Confirm(fmt.Sprintf("%v. Keep both?", err))
		if cerr != nil {
			return cerr
		}
		if !keep {
			return core.ErrCancelled
		}
		e, res, err = m.lib.Add(ctx, src, core.ConflictSuffix)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Added %s\n", e.Path)
	m.result(res)
	return nil
}

func (m *Menu) rename(ctx context.Context) error {
	e, ok, err := m.choose(ctx, "Rename which document?")
	if err != nil || !ok {
		return err
	}

	name, err := m.host.Input("New name")
	if err != nil {
		return err
	}

	renamed, res, err := m.lib.Rename(ctx, e, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Renamed %s to %s\n", e.Path, renamed.Path)
	m.result(res)
	return nil
}

func (m *Menu) remove(ctx context.Context) error {
	e, ok, err := m.choose(ctx, "Remove which document?")
	if err != nil || !ok {
		return err
	}

	yes, err := m.host.Confirm(fmt.Sprintf("Remove %s permanently?", e.Path))
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintf(m.out, "Kept %s\n", e.Path)
		return nil
	}

	res, err := m.lib.Remove(ctx, e)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Removed %s\n", e.Path)
	m.result(res)
	return nil
}

func (m *Menu) organize(ctx context.Context) error {
	report, res, err := m.lib.Organize(ctx)
	if err != nil {
		return err
	}

	if report.Changes.Empty() {
		fmt.Fprintln(m.out, "Everything is already in place.")
	} else {
		for _, c := range report.Changes.Changes {
			fmt.Fprintf(m.out, "  %s -> %s\n", c.From, c.Path)
		}
		fmt.Fprintf(m.out, "Moved %d file(s)\n", report.Changes.Len())
	}
	for _, f := range report.Failed {
		fmt.Fprintf(m.out, "  could not move %s: %v\n", f.Path, f.Err)
	}
	m.result(res)
	return nil
}

// choose lists the library and lets the user pick an entry.
func (m *Menu) choose(ctx context.Context, label string) (core.Entry, bool, error) {
	entries, err := m.lib.List(ctx)
	if err != nil {
		return core.Entry{}, false, err
	}
	if len(entries) == 0 {
		fmt.Fprintln(m.out, "The library is empty.")
		return core.Entry{}, false, nil
	}
	return m.host.SelectEntry(label, entries)
}

func (m *Menu) result(res core.Result) {
	if res.Commit != "" {
		fmt.Fprintf(m.out, "Recorded as %s\n", res.Commit.Short())
	}
	if res.Warning != nil {
		fmt.Fprintf(m.out, "warning: change applied but not recorded: %v\n", res.Warning)
	}
}

func (m *Menu) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, core.ErrCancelled):
		fmt.Fprintln(m.out, "Cancelled.")
	default:
		fmt.Fprintf(m.out, "error: %v\n", err)
	}
}
