package core

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors.
var (
	ErrSetup            = errors.New("library setup failed")
	ErrNotFound         = errors.New("entry not found")
	ErrConflict         = errors.New("destination already exists")
	ErrInvalidName      = errors.New("invalid name")
	ErrStagingFailed    = errors.New("staging failed")
	ErrCommitFailed     = errors.New("commit failed")
	ErrPushFailed       = errors.New("push failed")
	ErrPermissionDenied = errors.New("permission denied")
	// ErrCancelled is returned by a Host when the user backs out of a prompt.
	ErrCancelled = errors.New("cancelled")
)

// CommitError describes a failure to record a ChangeSet.
// Err wraps one of ErrStagingFailed, ErrCommitFailed or ErrPushFailed.
type CommitError struct {
	Stage string
	Paths []string
	Err   error
}

func (e *CommitError) Error() string {
	if len(e.Paths) == 0 {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Stage, strings.Join(e.Paths, ", "), e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
