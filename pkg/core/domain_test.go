package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChangeSet_PresentAndGone(t *testing.T) {
	cs := NewChangeSet(OpOrganize,
		Change{Action: ActionMoved, From: "a.pdf", Path: "Books/2023/a.pdf"},
		Change{Action: ActionAdded, Path: "b.txt"},
		Change{Action: ActionRemoved, Path: "c.odt"},
		Change{Action: ActionRenamed, From: "d.doc", Path: "e.doc"},
	)

	assert.Equal(t, []string{"Books/2023/a.pdf", "b.txt", "e.doc"}, cs.Present())
	assert.Equal(t, []string{"a.pdf", "c.odt", "d.doc"}, cs.Gone())
	assert.NotEmpty(t, cs.ID)
}

func TestNewEntry(t *testing.T) {
	e := NewEntry(`Books\2023\Report.PDF`, time.Time{}, 10)
	assert.Equal(t, "Books/2023/Report.PDF", e.Path)
	assert.Equal(t, "Report.PDF", e.Name)
	assert.Equal(t, ".pdf", e.Ext)
	assert.Equal(t, "Books/2023", e.Dir())
}

func TestParseConflictPolicy(t *testing.T) {
	p, err := ParseConflictPolicy("Suffix")
	assert.NoError(t, err)
	assert.Equal(t, ConflictSuffix, p)

	p, err = ParseConflictPolicy("")
	assert.NoError(t, err)
	assert.Equal(t, ConflictReject, p)

	_, err = ParseConflictPolicy("merge")
	assert.Error(t, err)
}

func TestFormatCommitMessage(t *testing.T) {
	msg := FormatCommitMessage("feat", "library", "add x.pdf", "")
	assert.Equal(t, "feat(library): add x.pdf\n\nManaged-by: shelf", msg)

	msg = FormatCommitMessage("", "", "tidy", "  body  ")
	assert.Equal(t, "chore: tidy\n\nbody\n\nManaged-by: shelf", msg)

	assert.Equal(t, msg, AppendFooter(msg))
}

func TestMessageFor(t *testing.T) {
	rename := NewChangeSet(OpRename, Change{Action: ActionRenamed, From: "Books/old.pdf", Path: "Books/x.pdf"})
	assert.Contains(t, MessageFor(rename), "refactor(library): rename old.pdf to x.pdf")

	one := NewChangeSet(OpOrganize, Change{Action: ActionMoved, From: "a.pdf", Path: "Books/2023/a.pdf"})
	assert.Contains(t, MessageFor(one), "organize 1 file\n")
}
