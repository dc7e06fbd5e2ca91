// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"google.golang.org/genai"
)

// Error types for invocation failures.
var (
	// ErrUnavailable indicates that the model service could not serve the request.
	ErrUnavailable = errors.New("model unavailable")

	// ErrRateLimited indicates that the model service throttled the request.
	ErrRateLimited = errors.New("model rate limited")

	// ErrRefusedOrEmpty indicates that the model declined or returned nothing usable.
	ErrRefusedOrEmpty = errors.New("model refused or returned empty output")
)

// TransientError represents a temporary error that may succeed on retry.
type TransientError struct {
	err error
}

// NewTransientError wraps an error as transient (retryable).
func NewTransientError(err error) error {
	return &TransientError{err: err}
}

func (e *TransientError) Error() string {
	return e.err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.err
}

// IsTransient returns true if the error is transient and should be retried.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// IsUnavailable reports whether err is an [ErrUnavailable].
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }

// IsRateLimited reports whether err is an [ErrRateLimited].
func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

// IsRefusedOrEmpty reports whether err is an [ErrRefusedOrEmpty].
func IsRefusedOrEmpty(err error) bool { return errors.Is(err, ErrRefusedOrEmpty) }

// Classify maps a provider or transport error onto the invocation sentinels.
//
// Errors that already carry a sentinel are returned unchanged. Caller cancellation maps to
// [ErrUnavailable] and is not transient.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrRateLimited) || errors.Is(err, ErrRefusedOrEmpty) {
		return err
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTransientError(fmt.Errorf("%w: %w", ErrUnavailable, err))
	}

	var gerr genai.APIError
	if errors.As(err, &gerr) {
		return classifyStatus(gerr.Code, err)
	}
	var aerr *anthropic.Error
	if errors.As(err, &aerr) {
		return classifyStatus(aerr.StatusCode, err)
	}

	var nerr net.Error
	if errors.As(err, &nerr) {
		return NewTransientError(fmt.Errorf("%w: %w", ErrUnavailable, err))
	}

	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// classifyStatus classifies an HTTP status returned by a provider.
func classifyStatus(code int, err error) error {
	switch {
	case code == http.StatusTooManyRequests:
		return NewTransientError(fmt.Errorf("%w: %w", ErrRateLimited, err))
	case code == http.StatusRequestTimeout, code >= http.StatusInternalServerError:
		return NewTransientError(fmt.Errorf("%w: %w", ErrUnavailable, err))
	case code >= http.StatusBadRequest:
		// Credential and request errors.
		return fmt.Errorf("%w: request rejected by provider (status %d): %w", ErrUnavailable, code, err)
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}
