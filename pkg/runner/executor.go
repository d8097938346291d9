// Package runner contains the orchestration core: it resolves each step's
// call against the plugin's defaults and the variable context, drives the
// plugin through augmentation and execution, routes save/validate directives
// against the result, and aggregates per-step outcomes into a run summary.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/systemstart/testflow/pkg/api"
	"github.com/systemstart/testflow/pkg/plugin"
	"github.com/systemstart/testflow/pkg/vars"
)

// Runner executes a step list in declared order. Execution is strictly
// sequential: steps share data through the variable context, so program
// order is part of the configuration's semantics.
type Runner struct {
	registry   *plugin.Registry
	vars       *vars.Context
	projectDir string
}

// New creates a runner over a plugin registry and a seeded variable context.
// projectDir is handed to augmentation hooks for resolving relative paths.
func New(registry *plugin.Registry, vc *vars.Context, projectDir string) *Runner {
	return &Runner{registry: registry, vars: vc, projectDir: projectDir}
}

// Run attempts every configured step exactly once, in order. A failed step
// never aborts the run: later steps execute against whatever state the
// variable context holds at that point. A failed step's save is skipped, so
// dependents fail with an undefined-variable error instead of reading stale
// data.
func (r *Runner) Run(ctx context.Context, steps []api.Step) Summary {
	agg := NewAggregator()

	for i, step := range steps {
		slog.Info("running step", "step", i+1, "of", len(steps), "type", step.Type)

		result := r.runStep(ctx, step)
		if result.OK {
			slog.Info("step passed", "step", i+1, "type", step.Type)
		} else {
			slog.Error("step failed", "step", i+1, "type", step.Type, "error", result.Err)
		}

		agg.Record(i, result)
	}

	return agg.Summarize()
}

// StepResult is the per-step outcome consumed by the aggregator. It is never
// mutated after creation.
type StepResult struct {
	OK  bool
	Err error
}

// runStep walks one step through resolve → augment → execute → save/validate.
// Every failure is absorbed into the returned StepResult; nothing escapes to
// abort the loop.
func (r *Runner) runStep(ctx context.Context, step api.Step) StepResult {
	p, err := r.registry.Resolve(step.Type)
	if err != nil {
		return StepResult{Err: err}
	}

	call, err := ResolveCall(p, step, r.vars)
	if err != nil {
		return StepResult{Err: &ResolutionError{Err: err}}
	}

	if aug, ok := p.(plugin.Augmenter); ok {
		if err := aug.Augment(call, r.vars, r.projectDir); err != nil {
			return StepResult{Err: &ExecutionError{Err: fmt.Errorf("augmenting call: %w", err)}}
		}
	}

	result, err := p.Execute(ctx, call)
	if err != nil {
		return StepResult{Err: &ExecutionError{Err: err}}
	}

	if err := r.save(step.Save, result); err != nil {
		return StepResult{Err: err}
	}

	if err := r.validate(step.Validate, result); err != nil {
		return StepResult{Err: err}
	}

	return StepResult{OK: true}
}

// targetColumn maps a directive's extraction hint to an extract argument.
// Raw and column are mutually exclusive (enforced at load time); raw
// explicitly addresses the whole result, as does omitting both.
func targetColumn(raw bool, column string) string {
	if raw {
		return ""
	}
	return column
}

// save extracts the designated portion of the result and writes it into the
// variable context, overwriting any earlier binding of that name.
func (r *Runner) save(spec *api.SaveSpec, result any) error {
	if spec == nil {
		return nil
	}

	value, err := extract(result, targetColumn(spec.Raw, spec.Column))
	if err != nil {
		return &ExecutionError{Err: fmt.Errorf("save %q: %w", spec.Name, err)}
	}

	coerced, err := coerce(value, spec.Type)
	if err != nil {
		return &ExecutionError{Err: fmt.Errorf("save %q: %w", spec.Name, err)}
	}

	slog.Debug("saving result", "name", spec.Name, "type", spec.Type)
	r.vars.Set(spec.Name, coerced)
	return nil
}

// validate evaluates every directive independently; all must pass. The
// variable context is never mutated here.
func (r *Runner) validate(specs []api.ValidateSpec, result any) error {
	var failures []error

	for _, spec := range specs {
		target := "result"
		if spec.Column != "" {
			target = fmt.Sprintf("field %q", spec.Column)
		}

		actual, err := extract(result, targetColumn(spec.Raw, spec.Column))
		if err != nil {
			failures = append(failures, &AssertionError{
				Target:   target,
				Expected: spec.Value,
				Actual:   fmt.Sprintf("<%v>", err),
			})
			continue
		}

		if spec.Type != "" {
			actual, err = coerce(actual, spec.Type)
			if err != nil {
				failures = append(failures, &AssertionError{
					Target:   target,
					Expected: spec.Value,
					Actual:   fmt.Sprintf("<%v>", err),
				})
				continue
			}
		}

		if !valuesEqual(spec.Value, actual) {
			failures = append(failures, &AssertionError{
				Target:   target,
				Expected: spec.Value,
				Actual:   actual,
			})
		}
	}

	return errors.Join(failures...)
}
