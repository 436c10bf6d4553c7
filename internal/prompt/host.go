package prompt

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/aretw0/shelf/pkg/core"
)

// Host implements core.Host on the terminal.
type Host struct {
	ctx    context.Context
	picker Picker
}

// NewHost creates a terminal host. picker may be nil to disable picking.
func NewHost(ctx context.Context, picker Picker) *Host {
	return &Host{ctx: ctx, picker: picker}
}

var _ core.Host = (*Host)(nil)

// ChooseMenuOption shows the main menu. Ctrl+C exits.
func (h *Host) ChooseMenuOption() (core.MenuOption, error) {
	options := make([]SelectOption, len(core.MenuOptions))
	for i, o := range core.MenuOptions {
		options[i] = SelectOption{Label: o.String()}
	}

	i, err := SelectIndex("shelf", options)
	if IsAborted(err) {
		return core.MenuExit, nil
	}
	if err != nil {
		return 0, err
	}
	return core.MenuOptions[i], nil
}

// ChooseAddMode asks whether to use the picker or type a path.
func (h *Host) ChooseAddMode() (core.AddMode, error) {
	modes := []core.AddMode{core.AddModePicker, core.AddModeManual, core.AddModeBack}
	labels := map[core.AddMode]string{
		core.AddModePicker: "Choose with file picker",
		core.AddModeManual: "Type a path",
		core.AddModeBack:   "Back",
	}
	options := make([]SelectOption, len(modes))
	for i, m := range modes {
		options[i] = SelectOption{Label: labels[m]}
	}

	i, err := SelectIndex("Add document", options)
	if IsAborted(err) {
		return core.AddModeBack, nil
	}
	if err != nil {
		return core.AddModeBack, err
	}
	return modes[i], nil
}

// PickFile delegates to the configured picker.
func (h *Host) PickFile() (string, bool, error) {
	if h.picker == nil {
		return "", false, fmt.Errorf("no file picker available")
	}
	return h.picker.Pick(h.ctx)
}

// Input asks for a required line of text.
func (h *Host) Input(label string) (string, error) {
	v, err := InputRequired(label)
	return v, cancelled(err)
}

// Confirm asks a yes/no question defaulting to no.
func (h *Host) Confirm(question string) (bool, error) {
	ok, err := Confirm(question, false)
	return ok, cancelled(err)
}

// SelectEntry lists entries with a leading "Back" item.
func (h *Host) SelectEntry(label string, entries []core.Entry) (core.Entry, bool, error) {
	options := []SelectOption{{Label: "Back"}}
	for _, e := range entries {
		options = append(options, SelectOption{
			Label:       e.Path,
			Description: fmt.Sprintf("%s, modified %s", humanize.Bytes(uint64(e.Size)), humanize.Time(e.Created)),
		})
	}

	i, err := SelectIndex(label, options)
	if IsAborted(err) || (err == nil && i == 0) {
		return core.Entry{}, false, nil
	}
	if err != nil {
		return core.Entry{}, false, err
	}
	return entries[i-1], true, nil
}
