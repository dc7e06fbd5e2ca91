// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-a2a/talentflow/model"
	"github.com/go-a2a/talentflow/pkg/logging"
	"github.com/go-a2a/talentflow/prompt"
	"github.com/go-a2a/talentflow/schema"
)

// Flow executes one [Definition] against an [model.Invoker].
//
// A Flow is safe for concurrent use.
type Flow struct {
	def     *Definition
	invoker model.Invoker
	cfg     Config
}

// New returns a [Flow] for def.
func New(def *Definition, invoker model.Invoker, opts ...Option) (*Flow, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if invoker == nil {
		return nil, fmt.Errorf("flow %q: nil invoker", def.Name)
	}
	return &Flow{
		def:     def.clone(),
		invoker: invoker,
		cfg:     newConfig(opts...),
	}, nil
}

// Name returns the flow name.
func (f *Flow) Name() string { return f.def.Name }

// Definition returns the bound definition. It must not be modified.
func (f *Flow) Definition() *Definition { return f.def }

// Result is the outcome of one invocation.
type Result struct {
	InvocationID string `json:"invocationId"`
	Flow         string `json:"flow"`

	// State is the terminal state, Succeeded or Failed.
	State State `json:"state"`
	// Path lists the states visited, starting with Idle.
	Path []State `json:"path"`

	// Output is the validated output. It is nil on failure.
	Output map[string]any `json:"output,omitempty"`
	// Err is the failure. It is nil on success.
	Err *Error `json:"error,omitempty"`

	// Prompt is the rendered prompt sent to the model, if rendering was reached.
	Prompt *prompt.Rendered `json:"-"`

	Duration time.Duration `json:"-"`
}

// OK reports whether the invocation succeeded.
func (r *Result) OK() bool { return r.State == StateSucceeded }

// Run invokes the flow and returns the validated output or an [*Error].
func (f *Flow) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	res := f.Invoke(ctx, input)
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Output, nil
}

// Invoke runs one invocation of the flow.
//
// The only blocking step is the model call, which observes ctx and the flow timeout.
func (f *Flow) Invoke(ctx context.Context, input map[string]any) *Result {
	name := f.def.Name
	res := &Result{
		InvocationID: uuid.NewString(),
		Flow:         name,
	}
	m := newMachine()
	start := time.Now()

	ctx, span := f.cfg.tracer.Start(ctx, "flow "+name,
		trace.WithAttributes(
			attribute.String("flow.name", name),
			attribute.String("flow.invocation_id", res.InvocationID),
		),
	)
	defer span.End()

	if f.cfg.logger != nil {
		ctx = logging.NewContext(ctx, f.cfg.logger)
	}
	ctx = logging.With(ctx, "flow", name, "invocation_id", res.InvocationID)
	logger := logging.FromContext(ctx)

	f.cfg.metrics.start(name)
	defer func() {
		res.State = m.state
		res.Path = m.path
		res.Duration = time.Since(start)
		f.cfg.metrics.finish(name, res.Err, res.Duration)

		if res.Err != nil {
			span.SetStatus(codes.Error, string(res.Err.Kind))
			span.RecordError(res.Err)
			logger.WarnContext(ctx, "flow failed",
				slog.String("kind", string(res.Err.Kind)),
				slog.String("field", res.Err.Field),
				slog.String("error", res.Err.Message),
				slog.Duration("duration", res.Duration),
			)
			return
		}
		span.SetStatus(codes.Ok, "")
		logger.DebugContext(ctx, "flow succeeded", slog.Duration("duration", res.Duration))
	}()

	fail := func(kind Kind, err error) *Result {
		m.to(StateFailed)
		res.Err = newError(kind, name, err)
		return res
	}
	step := func(next State) {
		m.to(next)
		logger.DebugContext(ctx, "state transition", slog.String("state", next.String()))
		span.AddEvent(next.String())
	}

	step(StateInputValidating)
	validated, err := schema.ValidateObject(f.def.InputSchema, schema.Normalize(f.def.InputSchema, input))
	if err != nil {
		return fail(KindInvalidInput, err)
	}

	step(StatePromptRendering)
	rendered, err := f.def.render(validated)
	if err != nil {
		return fail(KindTemplateError, err)
	}
	res.Prompt = rendered

	step(StateInvoking)
	resp, err := f.generate(ctx, rendered)
	if err != nil {
		return fail(invokeKind(err), err)
	}

	step(StateOutputValidating)
	raw, err := decodeOutput(resp)
	if err != nil {
		return fail(outputKind(err), err)
	}
	out, err := schema.ValidateObject(f.def.OutputSchema, raw)
	if err != nil {
		return fail(KindMalformedModelOutput, err)
	}

	m.to(StateSucceeded)
	res.Output = out
	return res
}

func (f *Flow) generate(ctx context.Context, rendered *prompt.Rendered) (*model.Response, error) {
	if f.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cfg.timeout)
		defer cancel()
	}

	resp, err := f.invoker.Generate(ctx, &model.Request{
		System:       rendered.System(),
		Contents:     rendered.Contents(),
		OutputSchema: f.def.OutputSchema,
	})
	if err != nil {
		return nil, model.Classify(err)
	}
	// an answer that raced with cancellation is discarded
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, model.Classify(ctxErr)
	}
	return resp, nil
}

func invokeKind(err error) Kind {
	switch {
	case model.IsRateLimited(err):
		return KindRateLimited
	case model.IsRefusedOrEmpty(err):
		return KindEmptyModelOutput
	default:
		return KindUnavailable
	}
}

var (
	errNoOutput = errors.New("model returned no output")
	errNoJSON   = errors.New("model output contains no JSON object")
)

func outputKind(err error) Kind {
	if errors.Is(err, errNoOutput) {
		return KindEmptyModelOutput
	}
	return KindMalformedModelOutput
}

// decodeOutput turns a model response into a JSON-model value.
//
// Text that is already valid JSON is decoded as is; otherwise the object is extracted from
// fences or surrounding prose.
func decodeOutput(resp *model.Response) (any, error) {
	if resp == nil {
		return nil, errNoOutput
	}

	raw := resp.Data
	if raw == nil {
		text := strings.TrimSpace(resp.Text)
		if text == "" {
			return nil, errNoOutput
		}
		v, err := decodeText(text)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, errNoJSON
		}
		raw = v
	}

	if isEmpty(raw) {
		return nil, errNoOutput
	}
	return raw, nil
}

func decodeText(text string) (any, error) {
	var v any
	if err := sonic.UnmarshalString(text, &v); err == nil {
		return v, nil
	}
	js := model.ExtractJSON(text)
	if js == "" {
		return nil, errNoJSON
	}
	if err := sonic.UnmarshalString(js, &v); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}
	return v, nil
}

// isEmpty reports whether v carries no content: nil, a blank string, or an object whose
// values are all nil or blank strings.
func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case map[string]any:
		for _, fv := range x {
			switch fv.(type) {
			case nil, string:
				if !isEmpty(fv) {
					return false
				}
			default:
				return false
			}
		}
		return true
	case string:
		return strings.TrimSpace(x) == ""
	}
	return false
}
