// Package domainerr defines the error taxonomy of the settlement core.
// Services return these types; handlers translate them to HTTP responses
// without ever leaking internals.
package domainerr

import "fmt"

// ValidationError: malformed or out-of-range input (quantity exceeds
// remaining bags, negative charge component, unknown payment status).
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s: %s", e.Field, e.Msg)
	}
	return "validation: " + e.Msg
}

func Validation(field, msg string) *ValidationError { return &ValidationError{Field: field, Msg: msg} }

func Validationf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// PreconditionError: the action is not permitted in the current state
// (season reset while lots remain in stock, sale against a sold lot).
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return "precondition: " + e.Msg }

func Precondition(msg string) *PreconditionError { return &PreconditionError{Msg: msg} }

func Preconditionf(format string, args ...interface{}) *PreconditionError {
	return &PreconditionError{Msg: fmt.Sprintf(format, args...)}
}

// MissingDataError: a field required by the selected charge basis is absent,
// e.g. no net weight on a lot billed per quintal.
type MissingDataError struct {
	Field string
}

func (e *MissingDataError) Error() string { return "missing data: " + e.Field }

func MissingData(field string) *MissingDataError { return &MissingDataError{Field: field} }

// ConsistencyError: a recomputation would violate a core invariant (a running
// total going negative). The transaction is aborted and the error logged for
// manual reconciliation; totals are never silently clamped.
type ConsistencyError struct {
	Entity string
	Msg    string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency: %s: %s", e.Entity, e.Msg)
}

func Consistency(entity, msg string) *ConsistencyError {
	return &ConsistencyError{Entity: entity, Msg: msg}
}

func Consistencyf(entity, format string, args ...interface{}) *ConsistencyError {
	return &ConsistencyError{Entity: entity, Msg: fmt.Sprintf(format, args...)}
}

// NoOpWarning: an idempotent re-application, e.g. reversing an already
// reversed record. Reported to the caller, never fatal.
type NoOpWarning struct {
	Msg string
}

func (e *NoOpWarning) Error() string { return "no-op: " + e.Msg }

func NoOp(msg string) *NoOpWarning { return &NoOpWarning{Msg: msg} }
