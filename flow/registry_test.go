// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/talentflow/model/modeltest"
	"github.com/go-a2a/talentflow/prompt"
	"github.com/go-a2a/talentflow/schema"
)

func echoDef(name string) *Definition {
	return &Definition{
		Name:         name,
		Description:  "Echoes its prompt.",
		InputSchema:  schema.Object(schema.Field("prompt", schema.String())),
		OutputSchema: schema.Object(schema.Field("response", schema.String())),
		Template:     prompt.MustCompile(name, "{{{prompt}}}"),
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(echoDef("zeta"), echoDef("alpha"))

	if err := reg.Register(echoDef("alpha")); !errors.Is(err, ErrDuplicateFlow) {
		t.Errorf("Register(duplicate) error = %v, want ErrDuplicateFlow", err)
	}
	if err := reg.Register(echoDef("not a name")); err == nil {
		t.Error("Register() with an invalid name succeeded")
	}

	reg.Freeze()
	if !reg.Frozen() {
		t.Error("Frozen() = false after Freeze()")
	}
	if err := reg.Register(echoDef("late")); !errors.Is(err, ErrRegistryFrozen) {
		t.Errorf("Register() after Freeze() error = %v, want ErrRegistryFrozen", err)
	}

	if diff := cmp.Diff([]string{"alpha", "zeta"}, reg.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	def, err := reg.Get("alpha")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if def.Name != "alpha" {
		t.Errorf("Get().Name = %q, want alpha", def.Name)
	}

	_, err = reg.Get("generateResumeFlow")
	if !IsUnknownFlow(err) || KindOf(err) != KindUnknownFlow {
		t.Errorf("Get(unknown) error = %v, want %s", err, KindUnknownFlow)
	}
}

func TestRegistry_StoresCopies(t *testing.T) {
	def := echoDef("echo")
	reg := NewRegistry()
	reg.MustRegister(def)

	def.InputSchema.Fields[0].Schema.WithMinLength(100)

	got, err := reg.Get("echo")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.InputSchema.Fields[0].Schema.MinLength != nil {
		t.Error("registered definition changed with the caller's schema")
	}
}

func TestRegistry_Definitions(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(echoDef("b"), echoDef("a"))

	defs := reg.Definitions()
	if len(defs) != 2 || defs[0].Name != "a" || defs[1].Name != "b" {
		t.Fatalf("Definitions() names = %v, want [a b]", defs)
	}

	defs[0].InputSchema.Fields[0].Schema.WithMinLength(100)
	got, err := reg.Get("a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.InputSchema.Fields[0].Schema.MinLength != nil {
		t.Error("Definitions() returned the registered definition instead of a copy")
	}
}

func TestRegistry_Describe(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(echoDef("echo"))

	want := []Descriptor{{
		Name:        "echo",
		Description: "Echoes its prompt.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{"prompt": map[string]any{"type": "string"}},
			"required":   []any{"prompt"},
		},
		OutputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{"response": map[string]any{"type": "string"}},
			"required":   []any{"response"},
		},
		Template:     "{{{prompt}}}",
		Placeholders: []string{"prompt"},
	}}
	if diff := cmp.Diff(want, reg.Describe()); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(echoDef("echo"))
	reg.Freeze()

	stub := modeltest.ReturningData(map[string]any{"response": "pong"})
	cat, err := reg.Bind(stub)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	res, err := cat.Invoke(t.Context(), "echo", map[string]any{"prompt": "ping"})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if diff := cmp.Diff(map[string]any{"response": "pong"}, res.Output); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}

	if _, err := cat.Invoke(t.Context(), "missing", nil); KindOf(err) != KindUnknownFlow {
		t.Errorf("Invoke(missing) error = %v, want %s", err, KindUnknownFlow)
	}
}
