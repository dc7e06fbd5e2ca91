// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-carried structured logging on top of [log/slog].
//
// A logger is attached to a [context.Context] once, near the edge of the program (the CLI
// command or the HTTP middleware), and every flow invocation below it logs through
// [FromContext]:
//
//	logger := logging.New(os.Stderr, "debug", "text")
//	ctx = logging.NewContext(ctx, logger)
//
//	// deep inside a flow
//	logging.FromContext(ctx).DebugContext(ctx, "state transition", "flow", name, "to", state)
//
// [With] derives a context whose logger carries additional attributes, which is how a flow
// invocation scopes its invocation id:
//
//	ctx = logging.With(ctx, "flow", def.Name, "invocation_id", id)
//
// When no logger is attached, [FromContext] falls back to [slog.Default].
package logging
