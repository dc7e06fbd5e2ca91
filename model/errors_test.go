// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"google.golang.org/genai"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantSentinel  error
		wantTransient bool
	}{
		{
			name:          "rate_limited",
			err:           fmt.Errorf("gemini API error: %w", genai.APIError{Code: 429, Message: "quota", Status: "RESOURCE_EXHAUSTED"}),
			wantSentinel:  ErrRateLimited,
			wantTransient: true,
		},
		{
			name:          "server_error",
			err:           genai.APIError{Code: 503, Message: "overloaded", Status: "UNAVAILABLE"},
			wantSentinel:  ErrUnavailable,
			wantTransient: true,
		},
		{
			name:          "client_error",
			err:           genai.APIError{Code: 400, Message: "bad request", Status: "INVALID_ARGUMENT"},
			wantSentinel:  ErrUnavailable,
			wantTransient: false,
		},
		{
			name:          "caller_canceled",
			err:           context.Canceled,
			wantSentinel:  ErrUnavailable,
			wantTransient: false,
		},
		{
			name:          "deadline",
			err:           fmt.Errorf("post: %w", context.DeadlineExceeded),
			wantSentinel:  ErrUnavailable,
			wantTransient: true,
		},
		{
			name:          "network",
			err:           fmt.Errorf("dial: %w", timeoutError{}),
			wantSentinel:  ErrUnavailable,
			wantTransient: true,
		},
		{
			name:          "already_classified",
			err:           fmt.Errorf("%w: blocked", ErrRefusedOrEmpty),
			wantSentinel:  ErrRefusedOrEmpty,
			wantTransient: false,
		},
		{
			name:          "unknown",
			err:           errors.New("boom"),
			wantSentinel:  ErrUnavailable,
			wantTransient: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if !errors.Is(got, tt.wantSentinel) {
				t.Errorf("Classify(%v) = %v, want it to wrap %v", tt.err, got, tt.wantSentinel)
			}
			if !strings.Contains(got.Error(), tt.err.Error()) {
				t.Errorf("Classify(%v) = %v, lost the original error", tt.err, got)
			}
			if IsTransient(got) != tt.wantTransient {
				t.Errorf("IsTransient(%v) = %v, want %v", got, IsTransient(got), tt.wantTransient)
			}
		})
	}

	if Classify(nil) != nil {
		t.Error("Classify(nil) != nil")
	}
}

func TestClassify_ClientRejection(t *testing.T) {
	for _, code := range []int{400, 401, 403, 404} {
		got := Classify(genai.APIError{Code: code, Message: "denied"})
		if !errors.Is(got, ErrUnavailable) || IsTransient(got) {
			t.Errorf("Classify(%d) = %v, want non-transient %v", code, got, ErrUnavailable)
		}
		want := fmt.Sprintf("request rejected by provider (status %d)", code)
		if !strings.Contains(got.Error(), want) {
			t.Errorf("Classify(%d) = %q, want it to contain %q", code, got.Error(), want)
		}
	}

	got := Classify(genai.APIError{Code: 503, Message: "overloaded"})
	if strings.Contains(got.Error(), "rejected") {
		t.Errorf("Classify(503) = %q, want no rejection wording", got.Error())
	}
}
