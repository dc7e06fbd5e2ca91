// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema declares the shape of flow inputs and outputs and validates JSON-model values
// against it.
//
// A [Schema] is an explicit tree of typed nodes built once at process start:
//
//	in := schema.Object(
//		schema.Field("employeeRole", schema.String().Describe("The employee's role.")),
//		schema.Field("managerFeedback", schema.String().Optional().WithDefault("N/A")),
//	)
//
// [Validate] walks the tree against a value decoded from JSON (maps, slices, strings, numbers
// and booleans), coerces primitives where the conversion is lossless, and reports every
// violation as a [ValidationErrors] list in declaration order. [Normalize] resolves the
// defaults of optional fields before validation.
//
// The same tree is exported to the generation backends as a response schema by
// [ToGenaiSchema] and [ToJSONSchema].
package schema
