// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package types provides the small value types shared by the schema, prompt, model and flow
// packages.
//
// # Conversation Turns
//
// A [Turn] is one message of a conversation that the caller owns and persists:
//
//	history := []types.Turn{
//		{Role: types.RoleUser, Text: "hi"},
//		{Role: types.RoleModel, Text: "Hello! How can I help?"},
//	}
//
// Flows receive the history by value on every call and never keep it between calls.
//
// # Pointer Helpers
//
// [ToPtr] and [Deref] bridge optional values to the pointer fields used by
// the generative model SDKs:
//
//	schema.MinLength = types.ToPtr(int64(3))
//	n := types.Deref(schema.MinLength, 0)
package types
