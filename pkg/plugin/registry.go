package plugin

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrUnknownType is returned when no plugin is registered for a step's
// declared type. Match with errors.Is.
var ErrUnknownType = errors.New("unknown plugin type")

// Factory constructs a plugin. Construction is deferred until the first step
// of the matching type is executed.
type Factory func() Plugin

// Registry maps case-sensitive type identifiers to plugin factories.
// Resolution is cached: a type is constructed at most once per run.
type Registry struct {
	factories map[string]Factory
	resolved  map[string]Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		resolved:  make(map[string]Plugin),
	}
}

// Register binds a type identifier to a plugin factory.
func (r *Registry) Register(typeID string, factory Factory) {
	if _, exists := r.factories[typeID]; exists {
		panic(fmt.Sprintf("plugin type %q already registered", typeID))
	}
	slog.Debug("registering plugin", "type", typeID)
	r.factories[typeID] = factory
}

// Resolve returns the plugin for typeID, constructing it on first use.
func (r *Registry) Resolve(typeID string) (Plugin, error) {
	if p, ok := r.resolved[typeID]; ok {
		return p, nil
	}

	factory, ok := r.factories[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeID)
	}

	p := factory()
	if p == nil {
		return nil, fmt.Errorf("%w: %q (factory returned nil)", ErrUnknownType, typeID)
	}

	slog.Debug("resolved plugin", "type", typeID)
	r.resolved[typeID] = p
	return p, nil
}

// Types returns the registered type identifiers.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	return types
}
