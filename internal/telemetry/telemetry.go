// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry sets up OpenTelemetry tracing for the TalentFlow binaries.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporters.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config configures tracing.
type Config struct {
	ServiceName string
	Version     string

	Exporter string
	// Endpoint is the OTLP/HTTP endpoint, host:port. The OTEL_EXPORTER_OTLP_* variables apply
	// when empty.
	Endpoint string
	Insecure bool

	SampleRatio float64

	// Writer receives stdout spans. Defaults to os.Stdout.
	Writer io.Writer
}

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Init builds a tracer provider for cfg and installs it as the global provider.
func Init(ctx context.Context, cfg Config, logger *slog.Logger) (trace.TracerProvider, ShutdownFunc, error) {
	if logger == nil {
		logger = slog.Default()
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if exporter == nil {
		tp := noop.NewTracerProvider()
		return tp, func(context.Context) error { return nil }, nil
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "talentflow"
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(cfg.Version),
		),
	)
	if err != nil {
		logger.WarnContext(ctx, "otel resource init failed (continuing)", slog.String("error", err.Error()))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(cfg.SampleRatio)))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.InfoContext(ctx, "otel tracing initialized",
		slog.String("service", serviceName),
		slog.String("exporter", cfg.Exporter),
	)
	return tp, tp.Shutdown, nil
}

func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case "", ExporterNone:
		return nil, nil
	case ExporterStdout:
		w := cfg.Writer
		if w == nil {
			w = os.Stdout
		}
		return stdouttrace.New(stdouttrace.WithWriter(w))
	case ExporterOTLP:
		var opts []otlptracehttp.Option
		if cfg.Endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
		}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", cfg.Exporter)
	}
}

func clampRatio(f float64) float64 {
	return min(max(f, 0), 1)
}
