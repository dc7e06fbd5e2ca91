// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package flow runs schema-bound generation pipelines.
//
// A [Definition] binds an input schema, an output schema and a prompt (a [prompt.Template] or a
// [RenderFunc]). A [Flow] executes one definition against a [model.Invoker] as a small state
// machine:
//
//	Idle -> InputValidating -> PromptRendering -> Invoking -> OutputValidating -> Succeeded
//	                 \                 \               \                \
//	                  +-----------------+---------------+----------------+--> Failed
//
// Input that does not match the input schema fails with [KindInvalidInput] before the model is
// called. Model output is decoded, validated and coerced against the output schema, so a
// successful [Result] always conforms to it. Every failure is an [*Error] carrying a [Kind].
//
// Flows do not retry. Callers that want to retry transient failures can check [IsTransient]
// (see package retry).
//
// # Registry
//
// Definitions are collected in a [Registry] during an explicit initialization step and the
// registry is frozen afterwards:
//
//	reg := flow.NewRegistry()
//	if err := talent.Register(reg); err != nil {
//		return err
//	}
//	reg.Freeze()
//
//	cat, err := reg.Bind(invoker, flow.WithMetrics(metrics))
//	...
//	res, err := cat.Invoke(ctx, "assistantFlow", input)
//
// Invocations share nothing mutable, so any number of them may run concurrently.
package flow
