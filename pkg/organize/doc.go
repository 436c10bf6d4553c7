// Package organize classifies library files by extension and relocates them to
// <Category>/<Year>/<filename> under the library root.
//
// The year comes from Entry.Created, which the filesystem store fills from the
// file's modification time. Collisions with a different file are resolved by
// suffixing the name ("report (1).pdf"); a file is never overwritten.
package organize
