package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	StoreType     string `json:"store_type"`
	OrganizerType string `json:"organizer_type"`
	RecorderType  string `json:"recorder_type"`
	Operations    int    `json:"operations"`
	LastCommit    string `json:"last_commit,omitempty"`
	LastError     string `json:"last_error,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := ServiceState{
		StoreType:     componentType(s.store, "store"),
		OrganizerType: componentType(s.organizer, "organizer"),
		RecorderType:  componentType(s.recorder, "recorder"),
		Operations:    s.operations,
		LastCommit:    string(s.lastCommit),
	}
	if s.lastErr != nil {
		state.LastError = s.lastErr.Error()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

// Components returns the service's collaborators that expose their own state.
func (s *Service) Components() []introspection.Introspectable {
	var out []introspection.Introspectable
	for _, c := range []any{s.store, s.organizer, s.recorder} {
		if i, ok := c.(introspection.Introspectable); ok {
			out = append(out, i)
		}
	}
	return out
}

func componentType(v any, fallback string) string {
	if v == nil {
		return "none"
	}
	if comp, ok := v.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return fallback
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
