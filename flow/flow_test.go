// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/go-a2a/talentflow/model"
	"github.com/go-a2a/talentflow/model/modeltest"
	"github.com/go-a2a/talentflow/prompt"
	"github.com/go-a2a/talentflow/schema"
)

func skillGapDef() *Definition {
	return &Definition{
		Name: "analyzeTeamSkillGapsFlow",
		InputSchema: schema.Object(
			schema.Field("teamDescription", schema.String()),
			schema.Field("futureGoals", schema.String()),
		),
		OutputSchema: schema.Object(
			schema.Field("skillGaps", schema.String()),
			schema.Field("recommendations", schema.String()),
		),
		Template: prompt.MustCompile("skillGaps", "Team: {{{teamDescription}}}\nGoals: {{{futureGoals}}}"),
	}
}

func skillGapInput() map[string]any {
	return map[string]any{
		"teamDescription": "Five backend engineers working in Go",
		"futureGoals":     "Move to event-driven architecture",
	}
}

func newTestFlow(t *testing.T, inv model.Invoker, opts ...Option) *Flow {
	t.Helper()
	f, err := New(skillGapDef(), inv, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return f
}

var fullPath = []State{StateIdle, StateInputValidating, StatePromptRendering, StateInvoking, StateOutputValidating, StateSucceeded}

func TestFlow_InvokeSucceeded(t *testing.T) {
	want := map[string]any{"skillGaps": "Kafka, event sourcing", "recommendations": "Run an internal workshop."}
	stub := modeltest.ReturningData(want)
	f := newTestFlow(t, stub)

	res := f.Invoke(t.Context(), skillGapInput())

	if !res.OK() {
		t.Fatalf("Invoke() failed: %v", res.Err)
	}
	if diff := cmp.Diff(want, res.Output); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(fullPath, res.Path); diff != "" {
		t.Errorf("Path mismatch (-want +got):\n%s", diff)
	}
	if res.InvocationID == "" {
		t.Error("InvocationID is empty")
	}

	if got := stub.Calls(); got != 1 {
		t.Fatalf("invoker calls = %d, want 1", got)
	}
	req := stub.LastRequest()
	if req.OutputSchema == nil || req.OutputSchema.Kind != schema.KindObject {
		t.Errorf("request output schema = %v, want the flow output schema", req.OutputSchema)
	}
	text := res.Prompt.Text()
	for _, s := range []string{"Team: Five backend engineers working in Go", "Goals: Move to event-driven architecture"} {
		if !strings.Contains(text, s) {
			t.Errorf("rendered prompt %q does not contain %q", text, s)
		}
	}
}

func TestFlow_InvalidInputSkipsModel(t *testing.T) {
	tests := []struct {
		name      string
		input     map[string]any
		wantField string
	}{
		{
			name:      "missing_field",
			input:     map[string]any{"futureGoals": "Scale the platform"},
			wantField: "teamDescription",
		},
		{
			name:      "wrong_kind",
			input:     map[string]any{"teamDescription": []any{"a"}, "futureGoals": "Scale"},
			wantField: "teamDescription",
		},
		{
			name:      "nil_input",
			input:     nil,
			wantField: "teamDescription",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := modeltest.ReturningData(map[string]any{"skillGaps": "x", "recommendations": "y"})
			f := newTestFlow(t, stub)

			res := f.Invoke(t.Context(), tt.input)

			if res.Err == nil || res.Err.Kind != KindInvalidInput {
				t.Fatalf("Invoke() error = %v, want %s", res.Err, KindInvalidInput)
			}
			if res.Err.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", res.Err.Field, tt.wantField)
			}
			if stub.Calls() != 0 {
				t.Errorf("invoker calls = %d, want 0", stub.Calls())
			}
			wantPath := []State{StateIdle, StateInputValidating, StateFailed}
			if diff := cmp.Diff(wantPath, res.Path); diff != "" {
				t.Errorf("Path mismatch (-want +got):\n%s", diff)
			}
			if res.Output != nil {
				t.Errorf("Output = %v, want nil", res.Output)
			}
		})
	}
}

func TestFlow_OutputValidation(t *testing.T) {
	tests := []struct {
		name      string
		resp      *model.Response
		want      map[string]any
		wantKind  Kind
		wantField string
	}{
		{
			name: "fenced_json_text",
			resp: &model.Response{Text: "```json\n{\"skillGaps\": \"Kafka\", \"recommendations\": \"Workshop\"}\n```"},
			want: map[string]any{"skillGaps": "Kafka", "recommendations": "Workshop"},
		},
		{
			name: "coerced_and_passed_through",
			resp: &model.Response{Data: map[string]any{"skillGaps": 3.0, "recommendations": "Hire", "confidence": 0.7}},
			want: map[string]any{"skillGaps": "3", "recommendations": "Hire", "confidence": 0.7},
		},
		{
			name:     "nil_response",
			resp:     nil,
			wantKind: KindEmptyModelOutput,
		},
		{
			name:     "blank_text",
			resp:     &model.Response{Text: "  \n"},
			wantKind: KindEmptyModelOutput,
		},
		{
			name:     "empty_object",
			resp:     &model.Response{Text: "{}"},
			wantKind: KindEmptyModelOutput,
		},
		{
			name: "commas_inside_strings_kept",
			resp: &model.Response{Text: `{"skillGaps":"Missing: [Kafka, ]","recommendations":"Pair on {Go, }"}`},
			want: map[string]any{"skillGaps": "Missing: [Kafka, ]", "recommendations": "Pair on {Go, }"},
		},
		{
			name:     "all_fields_blank",
			resp:     &model.Response{Text: `{"skillGaps":"","recommendations":"  "}`},
			wantKind: KindEmptyModelOutput,
		},
		{
			name:     "all_fields_null",
			resp:     &model.Response{Data: map[string]any{"skillGaps": nil, "recommendations": nil}},
			wantKind: KindEmptyModelOutput,
		},
		{
			name: "one_field_blank",
			resp: &model.Response{Data: map[string]any{"skillGaps": "", "recommendations": "Hire"}},
			want: map[string]any{"skillGaps": "", "recommendations": "Hire"},
		},
		{
			name:     "json_null",
			resp:     &model.Response{Text: "null"},
			wantKind: KindMalformedModelOutput,
		},
		{
			name:     "prose_only",
			resp:     &model.Response{Text: "Your team needs more Kafka experience."},
			wantKind: KindMalformedModelOutput,
		},
		{
			name:      "missing_output_field",
			resp:      &model.Response{Data: map[string]any{"skillGaps": "Kafka"}},
			wantKind:  KindMalformedModelOutput,
			wantField: "recommendations",
		},
		{
			name:      "array_instead_of_object",
			resp:      &model.Response{Data: []any{"Kafka"}},
			wantKind:  KindMalformedModelOutput,
			wantField: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFlow(t, modeltest.Returning(tt.resp))
			res := f.Invoke(t.Context(), skillGapInput())

			if tt.wantKind == "" {
				if !res.OK() {
					t.Fatalf("Invoke() failed: %v", res.Err)
				}
				if diff := cmp.Diff(tt.want, res.Output); diff != "" {
					t.Errorf("Output mismatch (-want +got):\n%s", diff)
				}
				return
			}

			if res.Err == nil || res.Err.Kind != tt.wantKind {
				t.Fatalf("Invoke() error = %v, want %s", res.Err, tt.wantKind)
			}
			if res.Err.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", res.Err.Field, tt.wantField)
			}
			if res.State != StateFailed || res.Path[len(res.Path)-2] != StateOutputValidating {
				t.Errorf("Path = %v, want failure from OutputValidating", res.Path)
			}
		})
	}
}

func TestFlow_InvokerFailures(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantKind      Kind
		wantTransient bool
	}{
		{
			name:          "rate_limited",
			err:           model.NewTransientError(fmt.Errorf("%w: 429", model.ErrRateLimited)),
			wantKind:      KindRateLimited,
			wantTransient: true,
		},
		{
			name:          "unavailable",
			err:           errors.New("connection refused"),
			wantKind:      KindUnavailable,
			wantTransient: true,
		},
		{
			name:     "refused",
			err:      fmt.Errorf("%w: finish reason SAFETY", model.ErrRefusedOrEmpty),
			wantKind: KindEmptyModelOutput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFlow(t, modeltest.Failing(tt.err))
			_, err := f.Run(t.Context(), skillGapInput())

			if got := KindOf(err); got != tt.wantKind {
				t.Fatalf("KindOf(%v) = %q, want %q", err, got, tt.wantKind)
			}
			if got := IsTransient(err); got != tt.wantTransient {
				t.Errorf("IsTransient(%v) = %v, want %v", err, got, tt.wantTransient)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("error %v does not wrap the invoker error", err)
			}
		})
	}
}

func TestFlow_Timeout(t *testing.T) {
	stub := modeltest.Blocking()
	f := newTestFlow(t, stub, WithTimeout(20*time.Millisecond))

	res := f.Invoke(t.Context(), skillGapInput())

	if res.Err == nil || res.Err.Kind != KindUnavailable {
		t.Fatalf("Invoke() error = %v, want %s", res.Err, KindUnavailable)
	}
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Errorf("error %v does not wrap context.DeadlineExceeded", res.Err)
	}
}

func TestFlow_CallerCancellation(t *testing.T) {
	stub := modeltest.Blocking()
	f := newTestFlow(t, stub, WithTimeout(0))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan *Result, 1)
	go func() { done <- f.Invoke(ctx, skillGapInput()) }()

	for stub.Calls() == 0 {
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case res := <-done:
		if res.Err == nil || res.Err.Kind != KindUnavailable || !errors.Is(res.Err, context.Canceled) {
			t.Fatalf("Invoke() error = %v, want a canceled %s", res.Err, KindUnavailable)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Invoke() did not return after cancellation")
	}
}

func TestFlow_RenderFailure(t *testing.T) {
	def := skillGapDef()
	def.Template = nil
	def.Render = func(map[string]any) (*prompt.Rendered, error) {
		return nil, errors.New("history turn has no text")
	}
	stub := modeltest.ReturningData(map[string]any{"skillGaps": "x", "recommendations": "y"})
	f, err := New(def, stub)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	res := f.Invoke(t.Context(), skillGapInput())
	if res.Err == nil || res.Err.Kind != KindTemplateError {
		t.Fatalf("Invoke() error = %v, want %s", res.Err, KindTemplateError)
	}
	if stub.Calls() != 0 {
		t.Errorf("invoker calls = %d, want 0", stub.Calls())
	}
}

func TestFlow_RenderDeterministic(t *testing.T) {
	stub := modeltest.ReturningData(map[string]any{"skillGaps": "x", "recommendations": "y"})
	f := newTestFlow(t, stub)

	first := f.Invoke(t.Context(), skillGapInput())
	second := f.Invoke(t.Context(), skillGapInput())
	if diff := cmp.Diff(first.Prompt, second.Prompt); diff != "" {
		t.Errorf("rendered prompts differ (-first +second):\n%s", diff)
	}
}

func TestFlow_Observability(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	f := newTestFlow(t,
		modeltest.ReturningData(map[string]any{"skillGaps": "x", "recommendations": "y"}),
		WithMetrics(metrics), WithTracerProvider(tp), WithLogger(logger),
	)

	f.Invoke(t.Context(), skillGapInput())
	f.Invoke(t.Context(), map[string]any{})

	name := f.Name()
	if got := testutil.ToFloat64(metrics.invocations.WithLabelValues(name, "succeeded")); got != 1 {
		t.Errorf("succeeded invocations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.invocations.WithLabelValues(name, "invalid_input")); got != 1 {
		t.Errorf("invalid_input invocations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.inFlight.WithLabelValues(name)); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}
	if spans[0].Name() != "flow "+name || spans[0].Status().Code != codes.Ok {
		t.Errorf("first span = %q %v, want an ok flow span", spans[0].Name(), spans[0].Status())
	}
	if spans[1].Status().Code != codes.Error {
		t.Errorf("second span status = %v, want error", spans[1].Status())
	}

	out := logs.String()
	for _, want := range []string{"state transition", "flow failed", "kind=INVALID_INPUT", "field=teamDescription", "invocation_id="} {
		if !strings.Contains(out, want) {
			t.Errorf("logs do not contain %q:\n%s", want, out)
		}
	}
}

func TestNew_InvalidDefinition(t *testing.T) {
	stub := modeltest.ReturningText("{}")

	unknown := skillGapDef()
	unknown.Template = prompt.MustCompile("gaps", "Gaps: {{{skillGaps}}}")
	if _, err := New(unknown, stub); !prompt.IsUnknownPlaceholder(err) {
		t.Errorf("New() with an undeclared placeholder error = %v, want unknown placeholder", err)
	}

	noInvoker := skillGapDef()
	if _, err := New(noInvoker, nil); err == nil {
		t.Error("New() with a nil invoker succeeded")
	}

	both := skillGapDef()
	both.Render = func(map[string]any) (*prompt.Rendered, error) { return prompt.NewRendered(), nil }
	if _, err := New(both, stub); err == nil {
		t.Error("New() with both a template and a render func succeeded")
	}

	arrayOut := skillGapDef()
	arrayOut.OutputSchema = schema.Array(schema.String())
	if _, err := New(arrayOut, stub); err == nil {
		t.Error("New() with a non-object output schema succeeded")
	}
}
