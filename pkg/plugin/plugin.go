// Package plugin defines the contract protocol back-ends implement and the
// registry that resolves a step's declared type to its implementation.
package plugin

import (
	"context"

	"github.com/systemstart/testflow/pkg/vars"
)

// Plugin is the required part of the contract: a default call tree and an
// execution function. The default tree is a RawConfig like any user-supplied
// call data and may itself carry ${NAME} placeholders (typically pointing at
// environment-style variables such as a default host or credential).
type Plugin interface {
	// Defaults returns the plugin's default call configuration. Callers own
	// the returned tree and may mutate it; implementations must return a
	// fresh copy on every invocation.
	Defaults() map[string]any

	// Execute performs the resolved call and returns a plugin-defined result
	// value. Protocol-level failures (non-zero exit, unreachable host,
	// rejected status code, SQL error) are reported as errors.
	Execute(ctx context.Context, call map[string]any) (any, error)
}

// Augmenter is the optional part of the contract. Augment runs after call
// resolution and before execution; it may mutate the call tree or the
// variable context in place. projectDir is the directory relative paths in
// the call resolve against.
type Augmenter interface {
	Augment(call map[string]any, vc *vars.Context, projectDir string) error
}
