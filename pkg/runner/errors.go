package runner

import (
	"fmt"
)

// ResolutionError marks a step that failed while its call was being merged
// and substituted, most commonly because a ${NAME} placeholder referenced an
// unbound variable.
type ResolutionError struct {
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving call: %v", e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ExecutionError wraps whatever the plugin's augmentation or execution call
// reported: connection failures, non-zero exit codes, rejected status codes,
// SQL errors.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing call: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// AssertionError marks a validate directive whose extracted value did not
// equal the expected one. Both sides are carried for reporting.
type AssertionError struct {
	Target   string
	Expected any
	Actual   any
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion on %s: expected %v, got %v", e.Target, e.Expected, e.Actual)
}
