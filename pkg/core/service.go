package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Result is what a mutating operation hands back to the caller.
// Warning is set when the filesystem change succeeded but could not be
// recorded; the change is never rolled back.
type Result struct {
	Changes ChangeSet
	Commit  CommitID
	Warning error
}

// Service runs one library operation at a time and records its ChangeSet.
type Service struct {
	store     Store
	organizer Organizer
	recorder  Recorder
	logger    *slog.Logger

	mu         sync.RWMutex
	operations int
	lastCommit CommitID
	lastErr    error
}

// NewService creates a new Service.
func NewService(store Store, organizer Organizer, recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		store:     store,
		organizer: organizer,
		recorder:  recorder,
		logger:    logger,
	}
}

// Setup prepares the library layout.
func (s *Service) Setup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Setup(ctx)
}

// List returns every entry in lexical path order.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.List(ctx)
}

// Get resolves an entry by relative path.
func (s *Service) Get(ctx context.Context, relPath string) (Entry, error) {
	if relPath == "" {
		return Entry{}, fmt.Errorf("%w: empty path", ErrNotFound)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Get(ctx, relPath)
}

// Add copies src into the library and records the addition.
func (s *Service) Add(ctx context.Context, src string, policy ConflictPolicy) (Entry, Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, cs, err := s.store.Add(ctx, src, policy)
	if err != nil {
		return Entry{}, Result{}, err
	}
	return e, s.record(ctx, cs), nil
}

// Rename renames the entry in place and records it.
func (s *Service) Rename(ctx context.Context, e Entry, newName string) (Entry, Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	renamed, cs, err := s.store.Rename(ctx, e, newName)
	if err != nil {
		return Entry{}, Result{}, err
	}
	return renamed, s.record(ctx, cs), nil
}

// Remove deletes the entry and records it. The caller must have confirmed.
func (s *Service) Remove(ctx context.Context, e Entry) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs, err := s.store.Remove(ctx, e)
	if err != nil {
		return Result{}, err
	}
	return s.record(ctx, cs), nil
}

// Organize runs an organize pass and records every successful move as one commit.
func (s *Service) Organize(ctx context.Context) (Report, Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.organizer == nil {
		return Report{}, Result{}, errors.New("organizer not configured")
	}

	report, err := s.organizer.OrganizeAll(ctx)
	if err != nil {
		return report, Result{}, err
	}
	return report, s.record(ctx, report.Changes), nil
}

// record commits cs. Failures are downgraded to a warning on the result.
func (s *Service) record(ctx context.Context, cs ChangeSet) Result {
	s.operations++
	res := Result{Changes: cs}
	if cs.Empty() {
		return res
	}

	msg := MessageFor(cs)
	if val, ok := ctx.Value(ChangeReasonKey).(string); ok && val != "" {
		msg = AppendFooter(val)
	}

	id, err := s.recorder.Commit(ctx, cs, msg)
	res.Commit = id
	if id != "" {
		s.lastCommit = id
	}
	s.lastErr = err
	if err != nil {
		s.logger.Warn("change not recorded", "op", cs.Op, "changeset", cs.ID, "error", err)
		res.Warning = err
		return res
	}

	s.logger.Debug("change recorded", "op", cs.Op, "changeset", cs.ID, "commit", id.Short(), "paths", cs.Len())
	return res
}
