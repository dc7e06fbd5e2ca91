// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides strongly-typed object pooling and a shared [*strings.Builder] pool.
//
// Rendered prompts are assembled from many message parts on every flow invocation; the
// builders used to join them are borrowed from [String]:
//
//	sb := pool.String.Get()
//	defer pool.String.Put(sb)
//
// [Pool.Put] resets builders and buffers before returning them, so callers never observe a
// dirty object from [Pool.Get].
package pool
