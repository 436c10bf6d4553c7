package vcs

import (
	"github.com/aretw0/introspection"
)

// RecorderState exposes internal state for observability.
type RecorderState struct {
	Root       string `json:"root"`
	Push       bool   `json:"push"`
	Commits    int    `json:"commits"`
	Failures   int    `json:"failures"`
	LastCommit string `json:"last_commit,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Recorder) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RecorderState{
		Root:       r.config.Root,
		Push:       r.config.Push,
		Commits:    r.commits,
		Failures:   r.failures,
		LastCommit: string(r.lastCommit),
	}
}

// ComponentType implements introspection.Component.
func (r *Recorder) ComponentType() string {
	return "git-recorder"
}

var _ introspection.Introspectable = (*Recorder)(nil)
var _ introspection.Component = (*Recorder)(nil)
var _ introspection.Component = NopRecorder{}
