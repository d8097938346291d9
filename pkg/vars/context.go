// Package vars holds the run-scoped variable context shared by all steps and
// implements ${NAME} placeholder substitution over configuration trees.
package vars

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// ErrUndefinedVariable is returned when a lookup or substitution references a
// name that was never set. Match with errors.Is.
var ErrUndefinedVariable = errors.New("undefined variable")

// Context is a mutable mapping of names to values. It is owned exclusively
// by the run loop; plugins only see it by reference during augmentation.
type Context struct {
	values map[string]any
}

// New creates an empty context.
func New() *Context {
	return &Context{values: make(map[string]any)}
}

// NewSeeded creates a context populated from environment pairs ("KEY=VALUE",
// as returned by os.Environ) and an optional external data document. Data
// document entries win over environment entries of the same name; both are a
// snapshot that later saves extend and overwrite.
func NewSeeded(environ []string, data map[string]any) *Context {
	c := New()
	for _, pair := range environ {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		c.values[key] = value
	}
	maps.Copy(c.values, data)
	return c
}

// Get returns the value bound to name, or an error wrapping
// ErrUndefinedVariable. Reads never mutate the context.
func (c *Context) Get(name string) (any, error) {
	value, ok := c.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUndefinedVariable, name)
	}
	return value, nil
}

// Set binds name to value, overwriting any earlier binding.
func (c *Context) Set(name string, value any) {
	c.values[name] = value
}

// Has reports whether name is bound.
func (c *Context) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Snapshot returns a shallow copy of the current bindings.
func (c *Context) Snapshot() map[string]any {
	return maps.Clone(c.values)
}
