// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit_Stdout(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	tp, shutdown, err := Init(t.Context(), Config{
		ServiceName: "talentflow-test",
		Exporter:    ExporterStdout,
		SampleRatio: 1,
		Writer:      &buf,
	}, nil)
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(t.Context(), "flow assistantFlow")
	span.End()
	require.NoError(t, shutdown(t.Context()))

	assert.Contains(t, buf.String(), "flow assistantFlow")
	assert.Contains(t, buf.String(), "talentflow-test")
}

func TestInit_None(t *testing.T) {
	tp, shutdown, err := Init(t.Context(), Config{Exporter: ExporterNone}, nil)
	require.NoError(t, err)
	require.NotNil(t, tp)
	require.NoError(t, shutdown(t.Context()))
}

func TestInit_UnknownExporter(t *testing.T) {
	_, _, err := Init(t.Context(), Config{Exporter: "jaeger"}, nil)
	require.Error(t, err)
}

func TestClampRatio(t *testing.T) {
	assert.InDelta(t, 0.0, clampRatio(-1), 0)
	assert.InDelta(t, 0.5, clampRatio(0.5), 0)
	assert.InDelta(t, 1.0, clampRatio(3), 0)
}
