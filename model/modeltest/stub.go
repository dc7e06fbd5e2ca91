// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package modeltest provides test doubles for [model.Invoker].
package modeltest

import (
	"context"
	"sync"

	"github.com/go-a2a/talentflow/model"
)

// Stub is a recording [model.Invoker] returning canned results.
//
// Responses and errors are consumed in order; the last one is repeated once exhausted.
type Stub struct {
	mu        sync.Mutex
	responses []*model.Response
	errs      []error
	requests  []*model.Request
	block     bool
}

var _ model.Invoker = (*Stub)(nil)

// Returning returns a [Stub] answering with the given responses.
func Returning(resps ...*model.Response) *Stub {
	return &Stub{responses: resps}
}

// ReturningData returns a [Stub] answering with a structured candidate.
func ReturningData(data any) *Stub {
	return Returning(&model.Response{Data: data})
}

// ReturningText returns a [Stub] answering with raw text.
func ReturningText(text string) *Stub {
	return Returning(&model.Response{Text: text})
}

// Failing returns a [Stub] failing with the given errors.
func Failing(errs ...error) *Stub {
	return &Stub{errs: errs}
}

// ThenReturning sets the responses used when the error of a call is nil.
func (s *Stub) ThenReturning(resps ...*model.Response) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = resps
	return s
}

// Blocking returns a [Stub] that waits for ctx to be done and fails with its error.
func Blocking() *Stub {
	return &Stub{block: true}
}

// Generate implements [model.Invoker].
func (s *Stub) Generate(ctx context.Context, req *model.Request) (*model.Response, error) {
	s.mu.Lock()
	n := len(s.requests)
	s.requests = append(s.requests, req)
	block := s.block
	errs := s.errs
	resps := s.responses
	s.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, model.Classify(ctx.Err())
	}
	if err := ctx.Err(); err != nil {
		return nil, model.Classify(err)
	}

	if len(errs) > 0 {
		if err := errs[min(n, len(errs)-1)]; err != nil {
			return nil, err
		}
	}
	if len(resps) == 0 {
		return nil, nil
	}
	return resps[min(n, len(resps)-1)], nil
}

// Calls returns the number of Generate calls.
func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns the recorded requests.
func (s *Stub) Requests() []*model.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.Request(nil), s.requests...)
}

// LastRequest returns the most recent request, or nil.
func (s *Stub) LastRequest() *model.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}
