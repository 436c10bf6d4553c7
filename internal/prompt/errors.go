// Package prompt provides interactive terminal prompts and the terminal Host.
package prompt

import (
	"errors"

	"github.com/manifoldco/promptui"

	"github.com/aretw0/shelf/pkg/core"
)

// ErrAborted is returned when the user aborts a prompt (Ctrl+C).
var ErrAborted = errors.New("aborted")

// IsAborted returns true if the error indicates the user aborted (Ctrl+C).
func IsAborted(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, ErrAborted)
}

// wrapError converts promptui interrupt/abort errors to ErrAborted for consistent handling.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if IsAborted(err) {
		return ErrAborted
	}
	return err
}

// cancelled maps an aborted prompt to core.ErrCancelled for the menu.
func cancelled(err error) error {
	if IsAborted(err) {
		return core.ErrCancelled
	}
	return err
}
