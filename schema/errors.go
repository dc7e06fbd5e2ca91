// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies a [ValidationError].
type Code string

const (
	CodeMissingField        Code = "MISSING_FIELD"
	CodeTypeMismatch        Code = "TYPE_MISMATCH"
	CodeInvalidEnumValue    Code = "INVALID_ENUM_VALUE"
	CodeConstraintViolation Code = "CONSTRAINT_VIOLATION"
)

// Error types for validation.
var (
	// ErrMissingField indicates that a required field is absent or null.
	ErrMissingField = errors.New("missing field")

	// ErrTypeMismatch indicates a value of the wrong kind that could not be coerced.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidEnumValue indicates a value that is not a member of the declared enum.
	ErrInvalidEnumValue = errors.New("invalid enum value")

	// ErrConstraintViolation indicates a length or item-count constraint violation.
	ErrConstraintViolation = errors.New("constraint violation")
)

// ValidationError describes one violation found by [Validate].
type ValidationError struct {
	// Path locates the value, e.g. "history[0].role". The root value has an empty path.
	Path string `json:"path"`

	Code Code `json:"code"`

	// Expected and Actual hold the kinds of a [CodeTypeMismatch].
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`

	// Allowed lists the members of a [CodeInvalidEnumValue].
	Allowed []string `json:"allowed,omitempty"`

	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap returns the sentinel error matching the code.
func (e *ValidationError) Unwrap() error {
	switch e.Code {
	case CodeMissingField:
		return ErrMissingField
	case CodeTypeMismatch:
		return ErrTypeMismatch
	case CodeInvalidEnumValue:
		return ErrInvalidEnumValue
	case CodeConstraintViolation:
		return ErrConstraintViolation
	}
	return nil
}

// ValidationErrors is the list of violations found in one [Validate] call, in declaration order.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return "no validation errors"
	case 1:
		return e[0].Error()
	}
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return fmt.Sprintf("%d validation errors: %s", len(e), strings.Join(msgs, "; "))
}

// Unwrap returns the individual violations.
func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, ve := range e {
		errs[i] = ve
	}
	return errs
}

// First returns the first violation, or nil.
func (e ValidationErrors) First() *ValidationError {
	if len(e) == 0 {
		return nil
	}
	return e[0]
}

// Messages returns the message of every violation.
func (e ValidationErrors) Messages() []string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Message
	}
	return msgs
}

// AsValidationErrors extracts the [ValidationErrors] carried by err.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ves ValidationErrors
	if errors.As(err, &ves) {
		return ves, true
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ValidationErrors{ve}, true
	}
	return nil, false
}

// IsMissingField checks if the error reports a missing field.
func IsMissingField(err error) bool {
	return errors.Is(err, ErrMissingField)
}

// IsTypeMismatch checks if the error reports a type mismatch.
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsInvalidEnumValue checks if the error reports a value outside an enum.
func IsInvalidEnumValue(err error) bool {
	return errors.Is(err, ErrInvalidEnumValue)
}
