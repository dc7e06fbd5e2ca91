// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"regexp"
	"sync"
)

// CreatorFunc creates an [Invoker] for a model name.
type CreatorFunc func(ctx context.Context, modelName string, opts ...Option) (Invoker, error)

// modelEntry represents a registry entry with a regex pattern and creator function.
type modelEntry struct {
	pattern *regexp.Regexp
	creator CreatorFunc
}

// Registry resolves model names to provider implementations by regex pattern.
type Registry struct {
	mu         sync.RWMutex
	registry   []modelEntry
	cacheSize  int
	modelCache map[string]CreatorFunc
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry, with the built-in providers registered on
// first use.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry(32)
		defaultRegistry.RegisterDefaults()
	})
	return defaultRegistry
}

// NewRegistry creates an empty registry that caches up to cacheSize resolved names.
func NewRegistry(cacheSize int) *Registry {
	return &Registry{
		cacheSize:  cacheSize,
		modelCache: make(map[string]CreatorFunc),
	}
}

// RegisterDefaults registers the Claude and Gemini providers.
func (r *Registry) RegisterDefaults() {
	r.MustRegister(
		[]string{
			`claude-.*`,
		},
		func(ctx context.Context, modelName string, opts ...Option) (Invoker, error) {
			return NewClaude(ctx, modelName, opts...)
		},
	)
	r.MustRegister(
		[]string{
			`gemini-.*`,
			`projects\/.*\/locations\/.*\/endpoints\/.*`,
			`projects\/.*\/locations\/.*\/publishers\/google\/models\/gemini-.*`,
		},
		func(ctx context.Context, modelName string, opts ...Option) (Invoker, error) {
			return NewGemini(ctx, modelName, opts...)
		},
	)
}

// Register registers a model pattern with a creator function.
// If the pattern already exists, it will be updated with the new creator.
func (r *Registry) Register(modelPattern string, creator CreatorFunc) error {
	regex, err := regexp.Compile(modelPattern)
	if err != nil {
		return fmt.Errorf("compile model pattern %q: %w", modelPattern, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.modelCache)
	for i, entry := range r.registry {
		if entry.pattern.String() == modelPattern {
			r.registry[i].creator = creator
			return nil
		}
	}
	r.registry = append(r.registry, modelEntry{
		pattern: regex,
		creator: creator,
	})
	return nil
}

// MustRegister registers several patterns for one creator and panics on an invalid pattern.
func (r *Registry) MustRegister(patterns []string, creator CreatorFunc) {
	for _, pattern := range patterns {
		if err := r.Register(pattern, creator); err != nil {
			panic(err)
		}
	}
}

// Resolve finds the creator for the given model name.
func (r *Registry) Resolve(modelName string) (CreatorFunc, error) {
	r.mu.RLock()
	if creator, ok := r.modelCache[modelName]; ok {
		r.mu.RUnlock()
		return creator, nil
	}
	var matched CreatorFunc
	for _, entry := range r.registry {
		if entry.pattern.MatchString(modelName) {
			matched = entry.creator
			break
		}
	}
	r.mu.RUnlock()

	if matched == nil {
		return nil, fmt.Errorf("model %s not found", modelName)
	}

	r.mu.Lock()
	if len(r.modelCache) >= r.cacheSize {
		// Simple eviction strategy - clear cache when full
		clear(r.modelCache)
	}
	r.modelCache[modelName] = matched
	r.mu.Unlock()

	return matched, nil
}

// NewInvoker creates an [Invoker] for the given model name.
func (r *Registry) NewInvoker(ctx context.Context, modelName string, opts ...Option) (Invoker, error) {
	creator, err := r.Resolve(modelName)
	if err != nil {
		return nil, err
	}
	return creator(ctx, modelName, opts...)
}

// NewInvoker is a convenience function that creates an invoker from the [DefaultRegistry].
func NewInvoker(ctx context.Context, modelName string, opts ...Option) (Invoker, error) {
	return DefaultRegistry().NewInvoker(ctx, modelName, opts...)
}
