package fs

import (
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/shelf/pkg/core"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Root       string     `json:"root"`
	SystemDir  string     `json:"system_dir"`
	IgnoreFile string     `json:"ignore_file"`
	SetupDirs  []string   `json:"setup_dirs"`
	LastListed int        `json:"last_listed"`
	LastSetup  *time.Time `json:"last_setup,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Root:       s.config.Root,
		SystemDir:  s.config.SystemDir,
		IgnoreFile: s.config.IgnoreFile,
		SetupDirs:  s.config.SetupDirs,
		LastListed: s.lastListed,
		LastSetup:  s.lastSetup,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "fs-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
var _ core.Store = (*Store)(nil)
