// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"strings"
	"sync"
)

// Resetter is implemented by pooled values that can clear their own state.
type Resetter interface {
	Reset()
}

// Pool is a typed [sync.Pool].
type Pool[T any] struct {
	pool sync.Pool
}

// New returns a [Pool] that calls fn when it has no value to hand out.
func New[T any](fn func() T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return fn()
			},
		},
	}
}

// Get takes a value from the pool.
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put resets x when it implements [Resetter] and returns it into the pool.
func (p *Pool[T]) Put(x T) {
	if r, ok := any(x).(Resetter); ok {
		r.Reset()
	}
	p.pool.Put(x)
}

// String pools the builders used to flatten prompt and response text.
var String = New(func() *strings.Builder {
	return &strings.Builder{}
})
