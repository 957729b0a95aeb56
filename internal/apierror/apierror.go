// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"

	"coldstore/internal/domainerr"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
	Kind   string `json:"kind,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation error", Fields: fields}
}

// FromDomain maps a domain error to its HTTP status and envelope. Consistency
// errors surface as 500 because they signal a data-integrity problem needing
// manual reconciliation, not a caller mistake.
func FromDomain(err error) (int, *APIError) {
	var (
		ve *domainerr.ValidationError
		pe *domainerr.PreconditionError
		me *domainerr.MissingDataError
		ce *domainerr.ConsistencyError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, &APIError{Detail: ve.Error(), Kind: "validation"}
	case errors.As(err, &pe):
		return http.StatusConflict, &APIError{Detail: pe.Error(), Kind: "precondition"}
	case errors.As(err, &me):
		return http.StatusUnprocessableEntity, &APIError{Detail: me.Error(), Kind: "missing_data"}
	case errors.As(err, &ce):
		return http.StatusInternalServerError, &APIError{Detail: "ledger inconsistency detected", Kind: "consistency"}
	default:
		return http.StatusBadRequest, &APIError{Detail: err.Error()}
	}
}
