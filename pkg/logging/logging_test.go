// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestFromContext(t *testing.T) {
	if got := FromContext(context.Background()); got != slog.Default() {
		t.Fatalf("FromContext without logger = %p, want slog.Default()", got)
	}

	var buf bytes.Buffer
	logger := New(&buf, "debug", "text")
	ctx := NewContext(context.Background(), logger)
	if got := FromContext(ctx); got != logger {
		t.Fatalf("FromContext = %p, want %p", got, logger)
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(context.Background(), New(&buf, "info", "json"))
	ctx = With(ctx, "flow", "assistantFlow")

	FromContext(ctx).Info("invoked")

	if !strings.Contains(buf.String(), `"flow":"assistantFlow"`) {
		t.Fatalf("log output %q does not carry the flow attribute", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "WARN", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "", want: slog.LevelInfo},
		{in: "verbose", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
