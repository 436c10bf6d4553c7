// Package fs implements the library store on the local filesystem.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/organize"
)

// Config holds the configuration for the filesystem store.
type Config struct {
	Root       string
	SystemDir  string   // e.g. ".shelf"
	SetupDirs  []string // created at setup, e.g. "Documentation", "Books"
	IgnoreFile string   // e.g. ".gitignore"
	Logger     *slog.Logger
}

// Store implements core.Store on a directory tree.
type Store struct {
	config Config

	mu         sync.RWMutex
	lastListed int
	lastSetup  *time.Time
}

// NewStore creates a new filesystem-backed store.
func NewStore(config Config) *Store {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.SystemDir == "" {
		config.SystemDir = ".shelf"
	}
	if config.IgnoreFile == "" {
		config.IgnoreFile = ".gitignore"
	}
	return &Store{config: config}
}

// Root returns the library root.
func (s *Store) Root() string {
	return s.config.Root
}

// Timestamp is the time an entry is filed under. It is the modification time:
// every platform reports it and Add carries it over from the source file.
func Timestamp(info iofs.FileInfo) time.Time {
	return info.ModTime()
}

// Setup creates the root, the setup directories and the system directory,
// and writes the ignore file if it is absent.
func (s *Store) Setup(ctx context.Context) error {
	dirs := append([]string{"", s.config.SystemDir}, s.config.SetupDirs...)
	for _, d := range dirs {
		if err := os.MkdirAll(s.abs(d), 0755); err != nil {
			return fmt.Errorf("%w: create %s: %w", core.ErrSetup, s.abs(d), err)
		}
	}

	written, err := s.ensureIgnore()
	if err != nil {
		return fmt.Errorf("%w: ignore file: %w", core.ErrSetup, err)
	}
	if written {
		s.config.Logger.Info("wrote ignore file", "path", s.abs(s.config.IgnoreFile))
	}

	s.mu.Lock()
	now := time.Now()
	s.lastSetup = &now
	s.mu.Unlock()
	return nil
}

// ensureIgnore writes the default ignore file when none exists. An existing
// file is only amended to cover the system directory.
func (s *Store) ensureIgnore() (bool, error) {
	ignorePath := s.abs(s.config.IgnoreFile)
	ignoreEntry := s.config.SystemDir + "/"

	content, err := os.ReadFile(ignorePath)
	if errors.Is(err, os.ErrNotExist) {
		lines := append(append([]string{}, DefaultIgnorePatterns...), "# Library metadata", ignoreEntry)
		return true, os.WriteFile(ignorePath, []byte(strings.Join(lines, "\n")+"\n"), 0644)
	}
	if err != nil {
		return false, err
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == ignoreEntry {
			return false, nil
		}
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}
	if _, err := f.WriteString(ignoreEntry + "\n"); err != nil {
		return false, err
	}
	return true, nil
}

// List walks the root and returns every regular file in lexical path order.
// The .git directory, the system directory, the ignore file and ignored paths
// are skipped.
func (s *Store) List(ctx context.Context) ([]core.Entry, error) {
	matcher, err := LoadMatcher(s.abs(s.config.IgnoreFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore file: %w", err)
	}

	var entries []core.Entry
	err = filepath.WalkDir(s.config.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			if p == s.config.Root {
				return err
			}
			s.config.Logger.Warn("skipping unreadable path", "path", p, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if p == s.config.Root {
			return nil
		}

		rel, err := filepath.Rel(s.config.Root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if s.excluded(rel, true, matcher) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || s.excluded(rel, false, matcher) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			// vanished between readdir and stat
			return nil
		}
		entries = append(entries, core.NewEntry(rel, Timestamp(info), info.Size()))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk library: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	s.mu.Lock()
	s.lastListed = len(entries)
	s.mu.Unlock()
	return entries, nil
}

// Get resolves a single entry by its path relative to the root.
func (s *Store) Get(ctx context.Context, relPath string) (core.Entry, error) {
	rel, err := s.ownedRel(relPath)
	if err != nil {
		return core.Entry{}, err
	}

	info, err := os.Lstat(s.abs(rel))
	if errors.Is(err, os.ErrNotExist) {
		return core.Entry{}, fmt.Errorf("%w: %s", core.ErrNotFound, rel)
	}
	if err != nil {
		return core.Entry{}, err
	}
	if !info.Mode().IsRegular() {
		return core.Entry{}, fmt.Errorf("%w: %s is not a regular file", core.ErrNotFound, rel)
	}
	return core.NewEntry(rel, Timestamp(info), info.Size()), nil
}

// Add copies src into the top level of the library.
//
// Workflow:
//  1. Validate the source (exists, is a regular file).
//  2. Resolve the destination name according to policy.
//  3. Copy atomically, keeping the source modification time.
func (s *Store) Add(ctx context.Context, src string, policy core.ConflictPolicy) (core.Entry, core.ChangeSet, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return core.Entry{}, core.ChangeSet{}, fmt.Errorf("%w: empty source path", core.ErrNotFound)
	}

	info, err := os.Stat(src)
	if errors.Is(err, os.ErrNotExist) {
		return core.Entry{}, core.ChangeSet{}, fmt.Errorf("%w: %s", core.ErrNotFound, src)
	}
	if err != nil {
		return core.Entry{}, core.ChangeSet{}, fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return core.Entry{}, core.ChangeSet{}, fmt.Errorf("%w: %s is not a regular file", core.ErrInvalidName, src)
	}

	name, err := s.validateEntryName(filepath.Base(src))
	if err != nil {
		return core.Entry{}, core.ChangeSet{}, err
	}
	dest, err := s.resolveConflict(name, policy)
	if err != nil {
		return core.Entry{}, core.ChangeSet{}, err
	}

	if err := copyFileAtomic(src, s.abs(dest)); err != nil {
		return core.Entry{}, core.ChangeSet{}, fmt.Errorf("failed to copy %s: %w", src, err)
	}
	s.config.Logger.Debug("added file", "src", src, "path", dest, "policy", policy)

	e, err := s.Get(ctx, dest)
	if err != nil {
		return core.Entry{}, core.ChangeSet{}, err
	}
	return e, core.NewChangeSet(core.OpAdd, core.Change{Action: core.ActionAdded, Path: e.Path}), nil
}

func (s *Store) resolveConflict(name string, policy core.ConflictPolicy) (string, error) {
	if !s.exists(name) {
		return name, nil
	}
	switch policy {
	case core.ConflictOverwrite:
		return name, nil
	case core.ConflictSuffix:
		for i := 1; i < 10000; i++ {
			candidate := organize.SuffixName(name, i)
			if !s.exists(candidate) {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", core.ErrConflict, name)
}

// Rename gives e a new file name in the same directory.
func (s *Store) Rename(ctx context.Context, e core.Entry, newName string) (core.Entry, core.ChangeSet, error) {
	if _, err := s.ownedRel(e.Path); err != nil {
		return core.Entry{}, core.ChangeSet{}, err
	}
	name, err := s.validateEntryName(newName)
	if err != nil {
		return core.Entry{}, core.ChangeSet{}, err
	}

	oldInfo, err := os.Lstat(s.abs(e.Path))
	if errors.Is(err, os.ErrNotExist) {
		return core.Entry{}, core.ChangeSet{}, fmt.Errorf("%w: %s", core.ErrNotFound, e.Path)
	}
	if err != nil {
		return core.Entry{}, core.ChangeSet{}, err
	}

	target := path.Join(e.Dir(), name)
	if _, err := s.ownedRel(target); err != nil {
		return core.Entry{}, core.ChangeSet{}, fmt.Errorf("%w: %s would be ignored", core.ErrInvalidName, target)
	}
	if target == e.Path {
		return core.Entry{}, core.ChangeSet{}, fmt.Errorf("%w: %s already has that name", core.ErrInvalidName, e.Path)
	}
	if info, err := os.Lstat(s.abs(target)); err == nil && !os.SameFile(oldInfo, info) {
		// SameFile allows case-only renames on case-insensitive filesystems
		return core.Entry{}, core.ChangeSet{}, fmt.Errorf("%w: %s", core.ErrConflict, target)
	}

	if err := os.Rename(s.abs(e.Path), s.abs(target)); err != nil {
		return core.Entry{}, core.ChangeSet{}, fmt.Errorf("failed to rename %s: %w", e.Path, err)
	}
	s.config.Logger.Debug("renamed file", "from", e.Path, "to", target)

	renamed, err := s.Get(ctx, target)
	if err != nil {
		return core.Entry{}, core.ChangeSet{}, err
	}
	return renamed, core.NewChangeSet(core.OpRename, core.Change{Action: core.ActionRenamed, Path: target, From: e.Path}), nil
}

// Remove deletes e from disk.
func (s *Store) Remove(ctx context.Context, e core.Entry) (core.ChangeSet, error) {
	rel, err := s.ownedRel(e.Path)
	if err != nil {
		return core.ChangeSet{}, err
	}

	info, err := os.Lstat(s.abs(rel))
	if errors.Is(err, os.ErrNotExist) {
		return core.ChangeSet{}, fmt.Errorf("%w: %s", core.ErrNotFound, rel)
	}
	if err != nil {
		return core.ChangeSet{}, err
	}
	if !info.Mode().IsRegular() {
		return core.ChangeSet{}, fmt.Errorf("%w: %s is not a regular file", core.ErrNotFound, rel)
	}

	if err := os.Remove(s.abs(rel)); err != nil {
		return core.ChangeSet{}, fmt.Errorf("failed to remove %s: %w", rel, err)
	}
	s.config.Logger.Debug("removed file", "path", rel)

	return core.NewChangeSet(core.OpRemove, core.Change{Action: core.ActionRemoved, Path: rel}), nil
}

// ValidateName checks a bare file name and returns its NFC form.
func ValidateName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: name is empty", core.ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q contains a path separator", core.ErrInvalidName, name)
	}
	if name == "." || name == ".." || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidName, name)
	}
	return norm.NFC.String(name), nil
}

// excluded reports whether rel itself is tool metadata or ignored. List
// prunes excluded directories, so it never asks about their contents.
func (s *Store) excluded(rel string, isDir bool, m *Matcher) bool {
	if path.Base(rel) == ".git" || rel == s.config.SystemDir || rel == s.config.IgnoreFile {
		return true
	}
	return m.Match(rel, isDir)
}

// owned reports whether rel is a library entry: neither it nor any of its
// parent directories is excluded.
func (s *Store) owned(rel string, isDir bool, m *Matcher) bool {
	parts := strings.Split(rel, "/")
	for i := 1; i < len(parts); i++ {
		if s.excluded(strings.Join(parts[:i], "/"), true, m) {
			return false
		}
	}
	return !s.excluded(rel, isDir, m)
}

// ownedRel cleans relPath and rejects anything List would not return.
func (s *Store) ownedRel(relPath string) (string, error) {
	rel, err := cleanRel(relPath)
	if err != nil {
		return "", err
	}
	matcher, err := LoadMatcher(s.abs(s.config.IgnoreFile))
	if err != nil {
		return "", fmt.Errorf("failed to read ignore file: %w", err)
	}
	if !s.owned(rel, false, matcher) {
		return "", fmt.Errorf("%w: %s is not a library entry", core.ErrNotFound, rel)
	}
	return rel, nil
}

// validateEntryName checks a bare file name and refuses names the library
// would hide from List, so every added or renamed file stays visible.
func (s *Store) validateEntryName(name string) (string, error) {
	name, err := ValidateName(name)
	if err != nil {
		return "", err
	}
	matcher, err := LoadMatcher(s.abs(s.config.IgnoreFile))
	if err != nil {
		return "", fmt.Errorf("failed to read ignore file: %w", err)
	}
	if s.excluded(name, false, matcher) || strings.HasPrefix(name, TempFilePrefix) {
		return "", fmt.Errorf("%w: %q is reserved or ignored", core.ErrInvalidName, name)
	}
	return name, nil
}

func cleanRel(relPath string) (string, error) {
	rel := path.Clean(strings.ReplaceAll(relPath, "\\", "/"))
	if rel == "." || !filepath.IsLocal(filepath.FromSlash(rel)) {
		return "", fmt.Errorf("%w: %q is outside the library", core.ErrNotFound, relPath)
	}
	return rel, nil
}

func (s *Store) exists(rel string) bool {
	_, err := os.Lstat(s.abs(rel))
	return err == nil
}

func (s *Store) abs(rel string) string {
	return filepath.Join(s.config.Root, filepath.FromSlash(rel))
}
