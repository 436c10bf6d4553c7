// Package core holds the domain types of a shelf library and the service that
// ties filesystem mutations to the change log.
package core

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is the classification bucket derived from a file extension.
type Category string

const (
	CategoryBooks     Category = "Books"
	CategoryDocuments Category = "Documents"
	CategoryOther     Category = "Other"
)

// Entry is a file on disk under the library root.
// Its identity is its current Path (slash separated, relative to the root).
type Entry struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Ext     string    `json:"ext"`
	Created time.Time `json:"created"`
	Size    int64     `json:"size"`
}

// NewEntry builds an Entry for the given relative path.
func NewEntry(relPath string, created time.Time, size int64) Entry {
	relPath = path.Clean(strings.ReplaceAll(relPath, "\\", "/"))
	name := path.Base(relPath)
	return Entry{
		Path:    relPath,
		Name:    name,
		Ext:     strings.ToLower(path.Ext(name)),
		Created: created,
		Size:    size,
	}
}

// Dir returns the directory of the entry relative to the root ("." for top level).
func (e Entry) Dir() string {
	return path.Dir(e.Path)
}

// Action is the kind of path-level mutation recorded in a ChangeSet.
type Action string

const (
	ActionAdded   Action = "added"
	ActionRenamed Action = "renamed"
	ActionRemoved Action = "removed"
	ActionMoved   Action = "moved"
)

// Operation names the logical operation that produced a ChangeSet.
type Operation string

const (
	OpAdd      Operation = "add"
	OpRename   Operation = "rename"
	OpRemove   Operation = "remove"
	OpOrganize Operation = "organize"
)

// Change is a single (action, path) pair. From is set for renames and moves.
type Change struct {
	Action Action `json:"action"`
	Path   string `json:"path"`
	From   string `json:"from,omitempty"`
}

// ChangeSet is the ordered list of mutations produced by one logical operation.
// It is committed as a single unit or not at all.
type ChangeSet struct {
	ID      string    `json:"id"`
	Op      Operation `json:"op"`
	Changes []Change  `json:"changes"`
}

// NewChangeSet starts an empty ChangeSet for op.
func NewChangeSet(op Operation, changes ...Change) ChangeSet {
	return ChangeSet{
		ID:      uuid.NewString(),
		Op:      op,
		Changes: changes,
	}
}

// Add appends a change.
func (cs *ChangeSet) Add(c Change) {
	cs.Changes = append(cs.Changes, c)
}

// Len returns the number of changes.
func (cs ChangeSet) Len() int {
	return len(cs.Changes)
}

// Empty reports whether the set holds no changes.
func (cs ChangeSet) Empty() bool {
	return len(cs.Changes) == 0
}

// Present returns the paths that must exist on disk after the operation,
// in change order.
func (cs ChangeSet) Present() []string {
	var paths []string
	for _, c := range cs.Changes {
		switch c.Action {
		case ActionAdded, ActionRenamed, ActionMoved:
			paths = append(paths, c.Path)
		}
	}
	return paths
}

// Gone returns the paths that no longer exist after the operation,
// in change order.
func (cs ChangeSet) Gone() []string {
	var paths []string
	for _, c := range cs.Changes {
		switch c.Action {
		case ActionRemoved:
			paths = append(paths, c.Path)
		case ActionRenamed, ActionMoved:
			paths = append(paths, c.From)
		}
	}
	return paths
}

// CommitID identifies a commit created in the change log.
type CommitID string

// Short returns the abbreviated form of the id.
func (id CommitID) Short() string {
	if len(id) > 7 {
		return string(id[:7])
	}
	return string(id)
}

type contextKey string

// ChangeReasonKey is the context key for overriding the generated commit message.
const ChangeReasonKey contextKey = "change_reason"
