// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout bounds a whole invocation unless [WithTimeout] says otherwise.
const DefaultTimeout = 60 * time.Second

const tracerName = "github.com/go-a2a/talentflow/flow"

// Config holds the runtime settings of a [Flow].
type Config struct {
	// logger overrides the logger found in the invocation context.
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
	timeout time.Duration
}

func newConfig(opts ...Option) Config {
	cfg := Config{
		tracer:  otel.GetTracerProvider().Tracer(tracerName),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		cfg = opt.apply(cfg)
	}
	return cfg
}

// Option is a function that modifies the [Config] of a flow.
type Option interface {
	apply(base Config) Config
}

type loggerOption struct{ *slog.Logger }

func (o loggerOption) apply(base Config) Config {
	base.logger = o.Logger
	return base
}

// WithLogger sets the logger of the flow. By default the logger of the invocation context is
// used.
func WithLogger(logger *slog.Logger) Option {
	return loggerOption{logger}
}

type metricsOption struct{ *Metrics }

func (o metricsOption) apply(base Config) Config {
	base.metrics = o.Metrics
	return base
}

// WithMetrics records invocations in m.
func WithMetrics(m *Metrics) Option {
	return metricsOption{m}
}

type tracerProviderOption struct{ trace.TracerProvider }

func (o tracerProviderOption) apply(base Config) Config {
	base.tracer = o.TracerProvider.Tracer(tracerName)
	return base
}

// WithTracerProvider sets the provider of invocation spans. The global provider is used by
// default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return tracerProviderOption{tp}
}

type timeoutOption time.Duration

func (o timeoutOption) apply(base Config) Config {
	base.timeout = time.Duration(o)
	return base
}

// WithTimeout bounds each invocation. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return timeoutOption(d)
}
