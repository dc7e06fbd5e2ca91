// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package retry retries transient flow failures with exponential backoff.
//
// Flows never retry on their own. Only failures for which [Retryable] holds are retried;
// everything else is returned after the first attempt.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/go-a2a/talentflow/flow"
	"github.com/go-a2a/talentflow/model"
	"github.com/go-a2a/talentflow/pkg/logging"
)

// Config holds the retry policy.
type Config struct {
	// MaxAttempts is the maximum number of attempts, including the first one.
	MaxAttempts int `yaml:"max_attempts"`

	// BackoffBase is the delay before the first retry.
	BackoffBase time.Duration `yaml:"backoff_base"`

	// BackoffMultiplier is applied to the delay after each retry.
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`

	// MaxBackoff caps a single delay.
	MaxBackoff time.Duration `yaml:"max_backoff"`
}

// DefaultConfig returns the default retry policy.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       3,
		BackoffBase:       2 * time.Second,
		BackoffMultiplier: 2.0,
		MaxBackoff:        30 * time.Second,
	}
}

// Validate reports an error for a policy that cannot be applied.
func (c Config) Validate() error {
	switch {
	case c.MaxAttempts < 1:
		return errors.New("retry: max_attempts must be at least 1")
	case c.BackoffBase < 0 || c.MaxBackoff < 0:
		return errors.New("retry: backoff durations must not be negative")
	case c.BackoffMultiplier < 1:
		return errors.New("retry: backoff_multiplier must be at least 1")
	}
	return nil
}

func (c Config) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.BackoffBase
	b.Multiplier = c.BackoffMultiplier
	b.MaxInterval = c.MaxBackoff
	b.MaxElapsedTime = 0
	b.Reset()

	attempts := max(c.MaxAttempts, 1)
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)
}

// Retryable reports whether err is worth another attempt.
//
// A classified model error decides on its own; other flow failures are retryable when their
// kind is transient.
func Retryable(err error) bool {
	if model.IsTransient(err) {
		return true
	}
	if model.IsUnavailable(err) || model.IsRateLimited(err) {
		return false
	}
	return flow.IsTransient(err)
}

// Do calls op until it succeeds, fails permanently, ctx is done or the attempts are exhausted.
// The last error is returned.
func Do[T any](ctx context.Context, cfg Config, op func(context.Context) (T, error)) (T, error) {
	logger := logging.FromContext(ctx)
	attempt := 0

	return backoff.RetryNotifyWithData(func() (T, error) {
		attempt++
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if ctx.Err() != nil || !Retryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, cfg.backOff(ctx), func(err error, next time.Duration) {
		logger.DebugContext(ctx, "retrying after transient failure",
			slog.Int("attempt", attempt),
			slog.Duration("backoff", next),
			slog.String("error", err.Error()),
		)
	})
}

// Invoke runs f, invoking it again while the result carries a transient failure.
// The result of the last attempt is returned.
func Invoke(ctx context.Context, cfg Config, f *flow.Flow, input map[string]any) *flow.Result {
	var last *flow.Result
	_, _ = Do(ctx, cfg, func(ctx context.Context) (*flow.Result, error) {
		last = f.Invoke(ctx, input)
		if last.Err != nil {
			return last, last.Err
		}
		return last, nil
	})
	return last
}
