// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunBatch invokes f once per input with at most concurrency invocations in flight and returns
// the results in input order. A failed invocation does not stop the others.
func RunBatch(ctx context.Context, f *Flow, inputs []map[string]any, concurrency int) []*Result {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]*Result, len(inputs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			results[i] = f.Invoke(ctx, in)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
