// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"errors"
	"fmt"

	"github.com/go-a2a/talentflow/schema"
)

// Kind classifies an [Error].
type Kind string

const (
	KindInvalidInput         Kind = "INVALID_INPUT"
	KindTemplateError        Kind = "TEMPLATE_ERROR"
	KindUnavailable          Kind = "UNAVAILABLE"
	KindRateLimited          Kind = "RATE_LIMITED"
	KindEmptyModelOutput     Kind = "EMPTY_MODEL_OUTPUT"
	KindMalformedModelOutput Kind = "MALFORMED_MODEL_OUTPUT"
	KindUnknownFlow          Kind = "UNKNOWN_FLOW"
)

// Error types for flow failures, one per [Kind].
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrTemplate             = errors.New("template error")
	ErrUnavailable          = errors.New("model unavailable")
	ErrRateLimited          = errors.New("model rate limited")
	ErrEmptyModelOutput     = errors.New("empty model output")
	ErrMalformedModelOutput = errors.New("malformed model output")
	ErrUnknownFlow          = errors.New("unknown flow")
)

var kindErrors = map[Kind]error{
	KindInvalidInput:         ErrInvalidInput,
	KindTemplateError:        ErrTemplate,
	KindUnavailable:          ErrUnavailable,
	KindRateLimited:          ErrRateLimited,
	KindEmptyModelOutput:     ErrEmptyModelOutput,
	KindMalformedModelOutput: ErrMalformedModelOutput,
	KindUnknownFlow:          ErrUnknownFlow,
}

// Error is a typed flow failure.
type Error struct {
	Kind Kind `json:"kind"`

	// Flow is the name of the failing flow.
	Flow string `json:"flow"`

	// Field is the path of the first offending field, for validation failures.
	Field string `json:"field,omitempty"`

	Message string `json:"message"`

	// Violations are the schema violations of a validation failure.
	Violations schema.ValidationErrors `json:"violations,omitempty"`

	// Underlying error
	Err error `json:"-"`
}

// newError builds an [Error] of kind, copying the violations carried by err.
func newError(kind Kind, flowName string, err error) *Error {
	e := &Error{
		Kind: kind,
		Flow: flowName,
		Err:  err,
	}
	if err != nil {
		e.Message = err.Error()
	} else {
		e.Message = kindErrors[kind].Error()
	}
	if ves, ok := schema.AsValidationErrors(err); ok {
		e.Violations = ves
		if first := ves.First(); first != nil {
			e.Field = first.Path
		}
	}
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Flow == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("flow %q: %s: %s", e.Flow, e.Kind, e.Message)
}

// Unwrap returns the sentinel of the kind and the underlying error.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if sentinel, ok := kindErrors[e.Kind]; ok {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Transient reports whether retrying the whole invocation may succeed.
func (e *Error) Transient() bool {
	return e.Kind == KindUnavailable || e.Kind == KindRateLimited
}

// AsError extracts the [*Error] carried by err.
func AsError(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// KindOf returns the [Kind] of err, or "" if err is not a flow error.
func KindOf(err error) Kind {
	if fe, ok := AsError(err); ok {
		return fe.Kind
	}
	return ""
}

// IsTransient reports whether err is a flow error worth retrying.
func IsTransient(err error) bool {
	fe, ok := AsError(err)
	return ok && fe.Transient()
}

// IsInvalidInput reports whether err rejects the caller's input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnknownFlow reports whether err reports an unregistered flow name.
func IsUnknownFlow(err error) bool {
	return errors.Is(err, ErrUnknownFlow)
}
