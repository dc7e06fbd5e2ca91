// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-a2a/talentflow/prompt"
	"github.com/go-a2a/talentflow/schema"
)

// RenderFunc builds the prompt of a flow that has no single static template.
// It receives the validated input.
type RenderFunc func(input map[string]any) (*prompt.Rendered, error)

// Definition binds the schemas and the prompt of a flow.
type Definition struct {
	Name        string
	Description string

	InputSchema  *schema.Schema
	OutputSchema *schema.Schema

	// Exactly one of Template and Render is set.
	Template *prompt.Template
	Render   RenderFunc
}

var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)

// Validate checks that d is well formed, including that every template placeholder is declared
// by the input schema.
func (d *Definition) Validate() error {
	if d == nil {
		return errors.New("nil flow definition")
	}
	if !namePattern.MatchString(d.Name) {
		return fmt.Errorf("invalid flow name %q", d.Name)
	}
	if d.InputSchema == nil || d.InputSchema.Kind != schema.KindObject {
		return fmt.Errorf("flow %q: input schema must be an object", d.Name)
	}
	if d.OutputSchema == nil || d.OutputSchema.Kind != schema.KindObject {
		return fmt.Errorf("flow %q: output schema must be an object", d.Name)
	}
	switch {
	case d.Template == nil && d.Render == nil:
		return fmt.Errorf("flow %q: neither a template nor a render func is set", d.Name)
	case d.Template != nil && d.Render != nil:
		return fmt.Errorf("flow %q: both a template and a render func are set", d.Name)
	case d.Template != nil:
		if err := d.Template.Verify(d.InputSchema); err != nil {
			return fmt.Errorf("flow %q: %w", d.Name, err)
		}
	}
	return nil
}

func (d *Definition) render(input map[string]any) (*prompt.Rendered, error) {
	if d.Render != nil {
		return d.Render(input)
	}
	return d.Template.Render(input)
}

// clone returns a copy of d whose schemas are not shared with the caller.
func (d *Definition) clone() *Definition {
	c := *d
	c.InputSchema = d.InputSchema.Clone()
	c.OutputSchema = d.OutputSchema.Clone()
	return &c
}

// Descriptor describes a flow for introspection.
type Descriptor struct {
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	InputSchema  map[string]any `json:"inputSchema"`
	OutputSchema map[string]any `json:"outputSchema"`
	// Template is the template text, empty for flows built by a render func.
	Template     string   `json:"template,omitempty"`
	Placeholders []string `json:"placeholders,omitempty"`
}

// Describe returns the [Descriptor] of d.
func (d *Definition) Describe() Descriptor {
	desc := Descriptor{
		Name:         d.Name,
		Description:  d.Description,
		InputSchema:  schema.ToJSONSchema(d.InputSchema),
		OutputSchema: schema.ToJSONSchema(d.OutputSchema),
	}
	if d.Template != nil {
		desc.Template = d.Template.Source()
		for _, p := range d.Template.Placeholders() {
			desc.Placeholders = append(desc.Placeholders, p.Name)
		}
	}
	return desc
}
