package core

import (
	"fmt"
	"path"
	"strings"
)

// CommitType constants for semantic commits
const (
	CommitTypeFeat     = "feat"
	CommitTypeFix      = "fix"
	CommitTypeRefactor = "refactor"
	CommitTypeChore    = "chore"
)

// Footer is appended to every message the library writes.
const Footer = "Managed-by: shelf"

// FormatCommitMessage builds a Conventional Commit message.
//
//	<type>(<scope>): <subject>
//
//	<body>
//
//	Managed-by: shelf
func FormatCommitMessage(ctype, scope, subject, body string) string {
	var sb strings.Builder

	if ctype == "" {
		ctype = CommitTypeChore
	}
	sb.WriteString(ctype)

	if scope != "" {
		sb.WriteString("(")
		sb.WriteString(scope)
		sb.WriteString(")")
	}

	sb.WriteString(": ")
	sb.WriteString(subject)

	if body = strings.TrimSpace(body); body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(body)
	}

	sb.WriteString("\n\n")
	sb.WriteString(Footer)

	return sb.String()
}

// AppendFooter appends the footer to a free-form message if not present.
func AppendFooter(msg string) string {
	if strings.Contains(msg, Footer) {
		return msg
	}
	msg = strings.TrimRight(msg, "\n")
	return msg + "\n\n" + Footer
}

// MessageFor derives the commit message describing cs.
func MessageFor(cs ChangeSet) string {
	if cs.Empty() {
		return FormatCommitMessage(CommitTypeChore, "library", "no changes", "")
	}

	first := cs.Changes[0]
	switch cs.Op {
	case OpAdd:
		return FormatCommitMessage(CommitTypeFeat, "library", "add "+path.Base(first.Path), "")
	case OpRename:
		return FormatCommitMessage(CommitTypeRefactor, "library",
			fmt.Sprintf("rename %s to %s", path.Base(first.From), path.Base(first.Path)), "")
	case OpRemove:
		return FormatCommitMessage(CommitTypeChore, "library", "remove "+first.Path, "")
	case OpOrganize:
		noun := "files"
		if cs.Len() == 1 {
			noun = "file"
		}
		var body strings.Builder
		for _, c := range cs.Changes {
			fmt.Fprintf(&body, "%s -> %s\n", c.From, c.Path)
		}
		return FormatCommitMessage(CommitTypeChore, "organize",
			fmt.Sprintf("organize %d %s", cs.Len(), noun), body.String())
	}

	return FormatCommitMessage(CommitTypeChore, "library", fmt.Sprintf("%s %d path(s)", cs.Op, cs.Len()), "")
}
