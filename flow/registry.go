// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-a2a/talentflow/model"
)

// Errors returned by [Registry.Register].
var (
	ErrDuplicateFlow  = errors.New("flow already registered")
	ErrRegistryFrozen = errors.New("flow registry is frozen")
)

// Registry maps flow names to definitions.
//
// Definitions are registered during initialization; after [Registry.Freeze] the registry is
// read-only.
type Registry struct {
	mu     sync.RWMutex
	defs   map[string]*Definition
	frozen bool
}

// NewRegistry returns an empty [Registry].
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]*Definition),
	}
}

// Register validates def and adds a copy of it under def.Name.
func (r *Registry) Register(def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("register %q: %w", def.Name, ErrRegistryFrozen)
	}
	if _, ok := r.defs[def.Name]; ok {
		return fmt.Errorf("register %q: %w", def.Name, ErrDuplicateFlow)
	}
	r.defs[def.Name] = def.clone()
	return nil
}

// MustRegister is like [Registry.Register] for several definitions but panics on error.
func (r *Registry) MustRegister(defs ...*Definition) {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether [Registry.Freeze] was called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Get returns the definition registered under name, or an [*Error] of kind [KindUnknownFlow].
func (r *Registry) Get(name string) (*Definition, error) {
	r.mu.RLock()
	def, ok := r.defs[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &Error{
			Kind:    KindUnknownFlow,
			Flow:    name,
			Message: fmt.Sprintf("no flow named %q", name),
		}
	}
	return def, nil
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Definitions returns copies of the registered definitions in lexical order of name.
func (r *Registry) Definitions() []*Definition {
	names := r.Names()
	out := make([]*Definition, 0, len(names))
	for _, name := range names {
		if def, err := r.Get(name); err == nil {
			out = append(out, def.clone())
		}
	}
	return out
}

// Describe returns the descriptors of all flows in lexical order of name.
func (r *Registry) Describe() []Descriptor {
	names := r.Names()
	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		def, err := r.Get(name)
		if err != nil {
			continue
		}
		out = append(out, def.Describe())
	}
	return out
}

// Bind creates a [Catalog] running every registered flow against invoker.
func (r *Registry) Bind(invoker model.Invoker, opts ...Option) (*Catalog, error) {
	cat := &Catalog{
		registry: r,
		flows:    make(map[string]*Flow),
	}
	for _, name := range r.Names() {
		def, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		f, err := New(def, invoker, opts...)
		if err != nil {
			return nil, err
		}
		cat.flows[name] = f
	}
	return cat, nil
}

// Catalog is the set of registered flows bound to one invoker.
type Catalog struct {
	registry *Registry
	flows    map[string]*Flow
}

// Flow returns the flow named name, or an [*Error] of kind [KindUnknownFlow].
func (c *Catalog) Flow(name string) (*Flow, error) {
	f, ok := c.flows[name]
	if !ok {
		_, err := c.registry.Get(name)
		if err == nil {
			err = &Error{Kind: KindUnknownFlow, Flow: name, Message: fmt.Sprintf("flow %q registered after binding", name)}
		}
		return nil, err
	}
	return f, nil
}

// Registry returns the registry the catalog was bound from.
func (c *Catalog) Registry() *Registry { return c.registry }

// Invoke runs the flow named name.
func (c *Catalog) Invoke(ctx context.Context, name string, input map[string]any) (*Result, error) {
	f, err := c.Flow(name)
	if err != nil {
		return nil, err
	}
	return f.Invoke(ctx, input), nil
}
