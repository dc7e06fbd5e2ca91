// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"

	"google.golang.org/genai"

	"github.com/go-a2a/talentflow/schema"
)

// Invoker sends a prompt to a generative model.
//
// Implementations must honor ctx cancellation and must be safe for concurrent use.
type Invoker interface {
	Generate(ctx context.Context, req *Request) (*Response, error)
}

// Request is a single generation request.
type Request struct {
	// System is the system instruction, if any.
	System string

	// Contents are the conversation turns, ending with the user turn to answer.
	Contents []*genai.Content

	// OutputSchema, when set, asks the model for a JSON value of this shape.
	OutputSchema *schema.Schema
}

// Response is the raw result of a generation request.
type Response struct {
	// Text is the model output text.
	Text string

	// Data is a structured candidate already decoded by the backend. When set, it takes
	// precedence over Text.
	Data any

	// FinishReason is the provider's reason for ending generation.
	FinishReason string

	// Model is the name of the model that answered.
	Model string
}

// InvokerFunc adapts a function to the [Invoker] interface.
type InvokerFunc func(ctx context.Context, req *Request) (*Response, error)

var _ Invoker = InvokerFunc(nil)

// Generate calls f(ctx, req).
func (f InvokerFunc) Generate(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
