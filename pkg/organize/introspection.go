package organize

import (
	"time"

	"github.com/aretw0/introspection"
)

// OrganizerState exposes internal state for observability.
type OrganizerState struct {
	Root       string     `json:"root"`
	Categories []string   `json:"categories"`
	LastRun    *time.Time `json:"last_run,omitempty"`
	LastMoved  int        `json:"last_moved"`
	LastFailed int        `json:"last_failed"`
}

// State implements introspection.Introspectable.
func (o *Organizer) State() any {
	o.mu.RLock()
	defer o.mu.RUnlock()

	cats := make([]string, 0)
	for _, c := range o.config.Classifier.Categories() {
		cats = append(cats, string(c))
	}

	return OrganizerState{
		Root:       o.config.Root,
		Categories: cats,
		LastRun:    o.lastRun,
		LastMoved:  o.lastMoved,
		LastFailed: o.lastFailed,
	}
}

// ComponentType implements introspection.Component.
func (o *Organizer) ComponentType() string {
	return "organizer"
}

var _ introspection.Introspectable = (*Organizer)(nil)
var _ introspection.Component = (*Organizer)(nil)
