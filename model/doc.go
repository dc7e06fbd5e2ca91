// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package model is the boundary between flows and generative model services.
//
// Flows depend only on the [Invoker] interface: a [Request] carrying the rendered prompt, an
// optional system instruction and an optional output schema goes in, and a [Response] with the
// raw model text (or a structured candidate) comes out. Failures are classified into three
// sentinels:
//
//   - [ErrUnavailable]: the service could not be reached, timed out or rejected the call
//   - [ErrRateLimited]: the service throttled the caller
//   - [ErrRefusedOrEmpty]: the model declined or produced nothing usable
//
// Throttling and server-side failures are additionally wrapped in [TransientError] so that
// callers can decide to retry with [IsTransient].
//
// # Supported Providers
//
//   - Google Gemini through google.golang.org/genai, on the Gemini API or Vertex AI
//   - Anthropic Claude through github.com/anthropics/anthropic-sdk-go
//
// # Model Registry
//
// Providers are resolved from the model name by regex pattern:
//
//	reg := model.NewRegistry(32)
//	reg.RegisterDefaults()
//	inv, err := reg.NewInvoker(ctx, "gemini-2.0-flash", model.WithAPIKey(key))
//
// The registry has no import-time side effects; [DefaultRegistry] registers the built-in
// providers on first use.
package model
