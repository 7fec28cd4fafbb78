package timing

import (
	"errors"
	"fmt"
)

// Timing errors.
var (
	ErrUnresolvedReference = errors.New("unresolved timebase reference")
	ErrCyclicDependency    = errors.New("cyclic timing dependency")
	ErrMalformedExpression = errors.New("malformed timing expression")
)

// UnresolvedReferenceError reports a timebase id that names no attached
// element. The specifier stays inert until a later Initialize resolves it.
type UnresolvedReferenceError struct {
	// Owner is the id of the element whose specifier failed to resolve.
	Owner string

	// Ref is the timebase id that was not found.
	Ref string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s: timebase %q not found", e.Owner, e.Ref)
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return ErrUnresolvedReference
}

// CyclicDependencyError reports a specifier that was notified twice within
// one propagation pass. Its instants were frozen at their last value.
type CyclicDependencyError struct {
	// Owner is the id of the element owning the specifier.
	Owner string

	// Specifier describes the suppressed specifier.
	Specifier string

	// PassID identifies the propagation pass.
	PassID string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("%s: cyclic dependency through %s (pass %s)", e.Owner, e.Specifier, e.PassID)
}

func (e *CyclicDependencyError) Unwrap() error {
	return ErrCyclicDependency
}

// MalformedExpressionError reports invalid specifier parameters. It is
// returned before a specifier is constructed.
type MalformedExpressionError struct {
	// Kind is the specifier variant being built.
	Kind string

	// Reason describes the problem.
	Reason string
}

func (e *MalformedExpressionError) Error() string {
	return fmt.Sprintf("malformed %s timing: %s", e.Kind, e.Reason)
}

func (e *MalformedExpressionError) Unwrap() error {
	return ErrMalformedExpression
}

func malformed(kind, format string, args ...any) error {
	return &MalformedExpressionError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}
