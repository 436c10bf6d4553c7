package core

import (
	"context"
	"fmt"
	"strings"
)

// ConflictPolicy tells the store what to do when a destination name is taken.
// There is no implicit overwrite: callers choose.
type ConflictPolicy int

const (
	// ConflictReject fails the operation with ErrConflict.
	ConflictReject ConflictPolicy = iota
	// ConflictOverwrite replaces the existing file.
	ConflictOverwrite
	// ConflictSuffix picks the first free "name (N).ext".
	ConflictSuffix
)

func (p ConflictPolicy) String() string {
	switch p {
	case ConflictOverwrite:
		return "overwrite"
	case ConflictSuffix:
		return "suffix"
	default:
		return "reject"
	}
}

// ParseConflictPolicy parses the flag form of a policy.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return ConflictReject, nil
	case "overwrite":
		return ConflictOverwrite, nil
	case "suffix", "rename":
		return ConflictSuffix, nil
	}
	return ConflictReject, fmt.Errorf("unknown conflict policy %q (want reject, overwrite or suffix)", s)
}

// Store is the CRUD layer over the files under the library root.
// Every successful mutation returns the ChangeSet it produced.
type Store interface {
	// Setup creates the library layout and the ignore file. Failures wrap ErrSetup.
	Setup(ctx context.Context) error

	// Add copies src into the top level of the library.
	Add(ctx context.Context, src string, policy ConflictPolicy) (Entry, ChangeSet, error)

	// Rename gives the entry a new file name in the same directory.
	Rename(ctx context.Context, e Entry, newName string) (Entry, ChangeSet, error)

	// Remove deletes the entry. Confirmation is the caller's job.
	Remove(ctx context.Context, e Entry) (ChangeSet, error)

	// List returns every entry in lexical path order.
	List(ctx context.Context) ([]Entry, error)

	// Get resolves a single entry by its relative path.
	Get(ctx context.Context, relPath string) (Entry, error)
}

// Failure records a file the organize pass could not move.
type Failure struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// Report is the outcome of an organize pass: the moves that happened and the
// files that could not be moved.
type Report struct {
	Changes ChangeSet `json:"changes"`
	Failed  []Failure `json:"failed,omitempty"`
}

// Organizer relocates every file under the root to its canonical location.
type Organizer interface {
	OrganizeAll(ctx context.Context) (Report, error)
}

// Recorder turns a ChangeSet into one commit in the change log.
type Recorder interface {
	Commit(ctx context.Context, cs ChangeSet, msg string) (CommitID, error)
}
