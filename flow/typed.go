// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
)

// ToMap converts a JSON-tagged struct into the map form flows consume.
func ToMap(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	b, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	var m map[string]any
	if err := sonic.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal %T into map: %w", v, err)
	}
	return m, nil
}

// FromMap converts a flow output map into T.
func FromMap[T any](m map[string]any) (T, error) {
	var out T
	b, err := sonic.Marshal(m)
	if err != nil {
		return out, fmt.Errorf("marshal output: %w", err)
	}
	if err := sonic.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("unmarshal output into %T: %w", out, err)
	}
	return out, nil
}

// Call runs f with a typed input and decodes the validated output into Out.
func Call[In, Out any](ctx context.Context, f *Flow, in In) (Out, error) {
	var zero Out

	m, err := ToMap(in)
	if err != nil {
		return zero, newError(KindInvalidInput, f.Name(), err)
	}
	out, err := f.Run(ctx, m)
	if err != nil {
		return zero, err
	}
	res, err := FromMap[Out](out)
	if err != nil {
		return zero, newError(KindMalformedModelOutput, f.Name(), err)
	}
	return res, nil
}
