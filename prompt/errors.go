// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"errors"
	"fmt"
)

// Error types for prompt operations.
var (
	// ErrInvalidTemplate indicates that a template could not be compiled.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrUnknownPlaceholder indicates a placeholder that the input schema does not declare.
	ErrUnknownPlaceholder = errors.New("unknown placeholder")

	// ErrTooManyMedia indicates a template with more than one media placeholder.
	ErrTooManyMedia = errors.New("more than one media placeholder")

	// ErrRender indicates that a compiled template failed to render.
	ErrRender = errors.New("render failed")
)

// Error represents a detailed template error.
type Error struct {
	// Code is the error code
	Code string `json:"code"`

	// Template is the name of the template
	Template string `json:"template"`

	// Placeholder is the offending placeholder, if any
	Placeholder string `json:"placeholder,omitempty"`

	// Message is the error message
	Message string `json:"message"`

	// Underlying error
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: template %q: %s: %v", e.Code, e.Template, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: template %q: %s", e.Code, e.Template, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidTemplateError creates an invalid template error.
func NewInvalidTemplateError(name string, err error) *Error {
	return &Error{
		Code:     "INVALID_TEMPLATE",
		Template: name,
		Message:  "template does not compile",
		Err:      errors.Join(ErrInvalidTemplate, err),
	}
}

// NewUnknownPlaceholderError creates an unknown placeholder error.
func NewUnknownPlaceholderError(name, placeholder string) *Error {
	return &Error{
		Code:        "UNKNOWN_PLACEHOLDER",
		Template:    name,
		Placeholder: placeholder,
		Message:     fmt.Sprintf("placeholder %q is not declared by the input schema", placeholder),
		Err:         ErrUnknownPlaceholder,
	}
}

// NewTooManyMediaError creates an error for a template binding several media fields.
func NewTooManyMediaError(name string, placeholders []string) *Error {
	return &Error{
		Code:     "TOO_MANY_MEDIA",
		Template: name,
		Message:  fmt.Sprintf("template binds %d media fields %v, at most one is allowed", len(placeholders), placeholders),
		Err:      ErrTooManyMedia,
	}
}

// NewRenderError creates a render error.
func NewRenderError(name string, err error) *Error {
	return &Error{
		Code:     "RENDER_FAILED",
		Template: name,
		Message:  "template failed to render",
		Err:      errors.Join(ErrRender, err),
	}
}

// IsUnknownPlaceholder checks if the error is an unknown placeholder error.
func IsUnknownPlaceholder(err error) bool {
	return errors.Is(err, ErrUnknownPlaceholder)
}

// IsInvalidTemplate checks if the error is an invalid template error.
func IsInvalidTemplate(err error) bool {
	return errors.Is(err, ErrInvalidTemplate)
}
