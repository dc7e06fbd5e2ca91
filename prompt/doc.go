// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package prompt renders flow prompts from validated inputs.
//
// Templates use the Dotprompt (Handlebars) syntax. Fields are interpolated with the
// triple-stash form so that text reaches the model without markup escaping, and a template may
// carry at most one media placeholder that binds a data URI field:
//
//	tmpl := prompt.MustCompile("resume", `Extract the details of this resume.
//
//	Resume: {{media url=resumeDataUri}}`)
//	if err := tmpl.Verify(inputSchema); err != nil {
//		// a placeholder references a field the input schema does not declare
//	}
//	rendered, err := tmpl.Render(input)
//
// Rendering is deterministic. Media references are passed through untouched; decoding is left to
// the model backend.
package prompt
