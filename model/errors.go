package model

import "fmt"

// The closed error taxonomy at the model/sampler boundary (spec.md §7).
// All are surfaced to the caller; the core never panics on user input.

// CyclicDependencyError is returned when wiring an input would create a
// dependency cycle.
type CyclicDependencyError struct {
	Tag string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency introduced at %q", e.Tag)
}

// MissingTagError is returned for a reference to a non-existent component.
type MissingTagError struct {
	Tag string
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("no component with tag %q", e.Tag)
}

// DuplicateTagError is returned when creating a component with an
// already-used tag.
type DuplicateTagError struct {
	Tag string
}

func (e *DuplicateTagError) Error() string {
	return fmt.Sprintf("tag %q already exists", e.Tag)
}

// InputIndexOutOfRangeError is returned for an arity violation when wiring
// a single input slot.
type InputIndexOutOfRangeError struct {
	Component string
	NumInputs int
	Index     int
}

func (e *InputIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("component %q has %d inputs, index %d out of range", e.Component, e.NumInputs, e.Index)
}

// IncorrectInputCountError is returned when bulk-wiring an operation with
// the wrong number of source tags.
type IncorrectInputCountError struct {
	Component string
	NumInputs int
	Count     int
}

func (e *IncorrectInputCountError) Error() string {
	return fmt.Sprintf("component %q expects %d inputs, got %d", e.Component, e.NumInputs, e.Count)
}

// MissingInputError is returned at compile time when a required input
// slot is still unwired (None).
type MissingInputError struct {
	Component string
	Index     int
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("component %q has no input wired at index %d", e.Component, e.Index)
}

// CustomError covers sampler-level failures outside the wiring taxonomy
// (iso value out of narrow band, field not yet sampled, invalid bounds).
type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}
